package services

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/vcardshell/internal/cache"
	"github.com/dmitrijs2005/vcardshell/internal/cache/models"
	"github.com/dmitrijs2005/vcardshell/internal/logging"
	"github.com/dmitrijs2005/vcardshell/internal/vcf"
	"github.com/stretchr/testify/require"
)

const (
	aliceCard = "BEGIN:VCARD\r\nVERSION:4.0\r\nFN:Alice\r\nBDAY:19900615\r\nEND:VCARD\r\n"
	bobCard   = "BEGIN:VCARD\r\nthis is not a property\r\n"
	danCard   = "BEGIN:VCARD\r\nVERSION:4.0\r\nFN:Dan\r\nBDAY:not-a-date\r\nEND:VCARD\r\n"
	carlCard  = "BEGIN:VCARD\r\nVERSION:4.0\r\nFN:Carl Original\r\nEND:VCARD\r\n"
	eveCard   = "BEGIN:VCARD\r\nVERSION:4.0\r\nFN:Eve\r\nBDAY:--0612\r\nANNIVERSARY:20150501\r\nEMAIL:eve@example.com\r\nEND:VCARD\r\n"
	frankCard = "BEGIN:VCARD\r\nVERSION:4.0\r\nFN:Frank\r\nBDAY:1980-06-01\r\nEND:VCARD\r\n"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := cache.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func writeCard(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
}

type fixture struct {
	dir      string
	db       *sql.DB
	adapter  *vcf.Adapter
	contacts ContactService
	cards    CardService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{dir: t.TempDir(), db: setupDB(t), adapter: vcf.New(nil)}
	log := logging.NewNop()
	f.contacts = NewContactService(f.db, f.adapter, log)
	f.cards = NewCardService(f.dir, f.adapter, f.contacts, log)
	t.Cleanup(func() {
		require.Zero(t, f.adapter.Live(), "card handle leaked")
	})
	return f
}

func collect(t *testing.T, s ContactService) []models.ContactRow {
	t.Helper()
	var out []models.ContactRow
	for row, err := range s.QueryAllContactsOrderedByName(context.Background()) {
		require.NoError(t, err)
		out = append(out, row)
	}
	return out
}

func ptr(s string) *string { return &s }

func names(rows []models.ContactRow) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Name)
	}
	return out
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	v, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return v
}
