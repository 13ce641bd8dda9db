package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/vcardshell/internal/common"
	"github.com/dmitrijs2005/vcardshell/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardService_Create(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.cards.Create(ctx, " carl.vcf ", " Carl "))

	summary, err := f.cards.Load(ctx, "carl.vcf")
	require.NoError(t, err)
	assert.Equal(t, "Carl", summary.NameOr(""))
	assert.Nil(t, summary.Birthday)
	assert.Zero(t, summary.OtherProperties)

	rows := collect(t, f.contacts)
	require.Len(t, rows, 1)
	assert.Equal(t, "Carl", rows[0].Name)
	assert.Equal(t, "carl.vcf", rows[0].FileName)
}

func TestCardService_CreateDuplicate(t *testing.T) {
	f := newFixture(t)
	writeCard(t, f.dir, "carl.vcf", carlCard)

	err := f.cards.Create(context.Background(), "carl.vcf", "Carl")
	require.ErrorIs(t, err, common.ErrDuplicateFile)

	assert.Equal(t, carlCard, readFile(t, filepath.Join(f.dir, "carl.vcf")))
	assert.Empty(t, collect(t, f.contacts))
}

func TestCardService_CreateBlank(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.ErrorIs(t, f.cards.Create(ctx, "", "Carl"), common.ErrBlankField)
	require.ErrorIs(t, f.cards.Create(ctx, "carl.vcf", "   "), common.ErrBlankField)

	_, err := os.Stat(filepath.Join(f.dir, "carl.vcf"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestCardService_CreateWriteFailure(t *testing.T) {
	f := newFixture(t)
	cards := NewCardService(filepath.Join(f.dir, "missing"), f.adapter, f.contacts, logging.NewNop())

	err := cards.Create(context.Background(), "carl.vcf", "Carl")
	require.ErrorIs(t, err, common.ErrWrite)
	assert.Empty(t, collect(t, f.contacts))
}

func TestCardService_CreateRejectsPaths(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, name := range []string{"../x.vcf", filepath.Join("sub", "x.vcf"), "..", "."} {
		require.ErrorIs(t, f.cards.Create(ctx, name, "X"), common.ErrBadFileName, name)
	}

	_, err := os.Stat(filepath.Join(filepath.Dir(f.dir), "x.vcf"))
	require.ErrorIs(t, err, os.ErrNotExist)
	assert.Empty(t, collect(t, f.contacts))
}

func TestCardService_CreateReplacesStaleRow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	writeCard(t, f.dir, "carl.vcf", carlCard)
	_, err := f.contacts.RebuildFromDirectory(ctx, f.dir)
	require.NoError(t, err)
	require.NoError(t, os.Remove(filepath.Join(f.dir, "carl.vcf")))

	require.NoError(t, f.cards.Create(ctx, "carl.vcf", "Carl"))

	rows := collect(t, f.contacts)
	require.Len(t, rows, 1)
	assert.Equal(t, "Carl", rows[0].Name)
	assert.Equal(t, "carl.vcf", rows[0].FileName)
}

func TestCardService_Save(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	writeCard(t, f.dir, "eve.vcf", eveCard)
	_, err := f.contacts.RebuildFromDirectory(ctx, f.dir)
	require.NoError(t, err)

	require.NoError(t, f.cards.Save(ctx, "eve.vcf", "Eve Adams"))

	summary, err := f.cards.Load(ctx, "eve.vcf")
	require.NoError(t, err)
	assert.Equal(t, "Eve Adams", summary.NameOr(""))
	assert.Equal(t, "--06-12", summary.BirthdayOr(""))
	assert.Equal(t, "2015-05-01", summary.AnniversaryOr(""))
	assert.Equal(t, 1, summary.OtherProperties)

	assert.Equal(t, []string{"Eve Adams"}, names(collect(t, f.contacts)))
}

func TestCardService_SaveFailures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	writeCard(t, f.dir, "eve.vcf", eveCard)
	writeCard(t, f.dir, "dan.vcf", danCard)
	writeCard(t, f.dir, "bob.vcf", bobCard)

	require.ErrorIs(t, f.cards.Save(ctx, "eve.vcf", " "), common.ErrBlankField)
	require.ErrorIs(t, f.cards.Save(ctx, "bob.vcf", "Bob"), common.ErrParse)
	require.ErrorIs(t, f.cards.Save(ctx, "dan.vcf", "Daniel"), common.ErrValidation)
	assert.Equal(t, danCard, readFile(t, filepath.Join(f.dir, "dan.vcf")))

	// Written but never scanned: the file changes, the cache has no pair.
	require.ErrorIs(t, f.cards.Save(ctx, "eve.vcf", "Eve Adams"), common.ErrNotFound)
}

func TestCardService_LoadFailure(t *testing.T) {
	f := newFixture(t)
	writeCard(t, f.dir, "bob.vcf", bobCard)

	_, err := f.cards.Load(context.Background(), "bob.vcf")
	require.ErrorIs(t, err, common.ErrParse)

	_, err = f.cards.Load(context.Background(), "ghost.vcf")
	require.ErrorIs(t, err, common.ErrParse)
}
