package tui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dmitrijs2005/vcardshell/internal/cache"
	"github.com/dmitrijs2005/vcardshell/internal/cache/models"
	"github.com/dmitrijs2005/vcardshell/internal/logging"
	"github.com/dmitrijs2005/vcardshell/internal/services"
	"github.com/dmitrijs2005/vcardshell/internal/vcf"
	"github.com/dmitrijs2005/vcardshell/internal/watch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	aliceCard = "BEGIN:VCARD\r\nVERSION:4.0\r\nFN:Alice\r\nBDAY:19900615\r\nEND:VCARD\r\n"
	frankCard = "BEGIN:VCARD\r\nVERSION:4.0\r\nFN:Frank\r\nBDAY:19800601\r\nANNIVERSARY:20100909\r\nEND:VCARD\r\n"
)

var fixedNow = time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

type env struct {
	dir      string
	adapter  *vcf.Adapter
	contacts services.ContactService
	m        Model
}

func newEnv(t *testing.T, cards map[string]string) *env {
	t.Helper()
	ctx := context.Background()

	dir := t.TempDir()
	for name, body := range cards {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
	}

	db, err := cache.Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	adapter := vcf.New(nil)
	log := logging.NewNop()
	contacts := services.NewContactService(db, adapter, log)
	_, err = contacts.RebuildFromDirectory(ctx, dir)
	require.NoError(t, err)

	e := &env{dir: dir, adapter: adapter, contacts: contacts}
	e.m = New(ctx, Deps{
		Dir:      dir,
		Contacts: contacts,
		Cards:    services.NewCardService(dir, adapter, contacts, log),
		Log:      log,
		Now:      func() time.Time { return fixedNow },
	})
	t.Cleanup(func() {
		assert.Zero(t, adapter.Live(), "card handle leaked")
	})
	return e
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func (e *env) send(msg tea.Msg) tea.Cmd {
	next, cmd := e.m.Update(msg)
	e.m = next.(Model)
	return cmd
}

func (e *env) press(keys ...string) {
	for _, k := range keys {
		e.send(keyMsg(k))
	}
}

func (e *env) rows(t *testing.T) []models.ContactRow {
	t.Helper()
	var out []models.ContactRow
	for row, err := range e.contacts.QueryAllContactsOrderedByName(context.Background()) {
		require.NoError(t, err)
		out = append(out, row)
	}
	return out
}

func TestList_ShowsCardFiles(t *testing.T) {
	e := newEnv(t, map[string]string{
		"alice.vcf": aliceCard,
		"frank.vcf": frankCard,
		"notes.txt": "x",
	})

	assert.Equal(t, SceneList, e.m.Scene())
	assert.Equal(t, "alice.vcf", e.m.Session().SelectedFile)

	view := e.m.View()
	assert.Contains(t, view, "alice.vcf")
	assert.Contains(t, view, "frank.vcf")
	assert.NotContains(t, view, "notes.txt")

	e.press("down")
	assert.Equal(t, "frank.vcf", e.m.Session().SelectedFile)
}

func TestList_Transitions(t *testing.T) {
	e := newEnv(t, map[string]string{"alice.vcf": aliceCard})

	e.press("c")
	assert.Equal(t, SceneCreate, e.m.Scene())
	assert.Empty(t, e.m.Session().SelectedFile)
	e.press("esc")
	assert.Equal(t, SceneList, e.m.Scene())

	e.press("q")
	assert.Equal(t, SceneQuery, e.m.Scene())
	e.press("esc")
	assert.Equal(t, SceneList, e.m.Scene())

	e.press("enter")
	assert.Equal(t, SceneEdit, e.m.Scene())
	e.press("esc")
	assert.Equal(t, SceneList, e.m.Scene())
	assert.Equal(t, "alice.vcf", e.m.Session().SelectedFile)
}

func TestList_Exit(t *testing.T) {
	e := newEnv(t, nil)

	cmd := e.send(keyMsg("x"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	e.press("c")
	cmd = e.send(keyMsg("ctrl+c"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestList_EditWithoutSelection(t *testing.T) {
	e := newEnv(t, nil)

	e.press("e")
	assert.Equal(t, SceneList, e.m.Scene())
	assert.Contains(t, e.m.View(), "Please select a file from the list.")
}

func TestNotice_SwallowsKeysUntilDismissed(t *testing.T) {
	e := newEnv(t, map[string]string{"alice.vcf": aliceCard})
	e.m = e.m.WithNotice("No 'cards' directory found.")

	e.press("c", "q", "e", "x")
	assert.Equal(t, SceneList, e.m.Scene())
	assert.Contains(t, e.m.View(), "No 'cards' directory found.")

	e.press("enter")
	assert.NotContains(t, e.m.View(), "No 'cards' directory found.")
	e.press("c")
	assert.Equal(t, SceneCreate, e.m.Scene())
}

func TestCreate_Submit(t *testing.T) {
	e := newEnv(t, map[string]string{"alice.vcf": aliceCard})

	e.press("c", "carl.vcf", "tab", "Carl", "enter")

	assert.Equal(t, SceneList, e.m.Scene())
	assert.Equal(t, "carl.vcf", e.m.Session().SelectedFile)
	assert.Contains(t, e.m.View(), "Card saved successfully")
	assert.FileExists(t, filepath.Join(e.dir, "carl.vcf"))

	rows := e.rows(t)
	require.Len(t, rows, 2)
	assert.Equal(t, "Carl", rows[1].Name)
	assert.Equal(t, "carl.vcf", rows[1].FileName)
}

func TestCreate_DuplicateStaysOnForm(t *testing.T) {
	e := newEnv(t, map[string]string{"alice.vcf": aliceCard})

	e.press("c", "alice.vcf", "tab", "Someone", "enter")

	assert.Equal(t, SceneCreate, e.m.Scene())
	assert.Contains(t, e.m.View(), "File already exists")

	e.press("enter")
	file, contact := e.m.create.values()
	assert.Equal(t, "alice.vcf", file)
	assert.Equal(t, "Someone", contact)

	b, err := os.ReadFile(filepath.Join(e.dir, "alice.vcf"))
	require.NoError(t, err)
	assert.Equal(t, aliceCard, string(b))
	assert.Len(t, e.rows(t), 1)
}

func TestCreate_BlankFields(t *testing.T) {
	e := newEnv(t, nil)

	e.press("c", "carl.vcf", "enter")
	assert.Equal(t, SceneCreate, e.m.Scene())
	assert.Contains(t, e.m.View(), "File name and Contact cannot be empty")
}

func TestEdit_LoadAndSave(t *testing.T) {
	e := newEnv(t, map[string]string{"frank.vcf": frankCard})

	e.press("e")
	require.Equal(t, SceneEdit, e.m.Scene())
	assert.Equal(t, "Frank", e.m.edit.contact.Value())
	view := e.m.View()
	assert.Contains(t, view, "frank.vcf")
	assert.Contains(t, view, "1980-06-01")
	assert.Contains(t, view, "2010-09-09")

	e.m.edit.contact.SetValue("Franklin")
	e.press("enter")

	assert.Equal(t, SceneList, e.m.Scene())
	assert.Contains(t, e.m.View(), "Card saved successfully")
	rows := e.rows(t)
	require.Len(t, rows, 1)
	assert.Equal(t, "Franklin", rows[0].Name)
}

func TestEdit_BlankContactStaysOnForm(t *testing.T) {
	e := newEnv(t, map[string]string{"alice.vcf": aliceCard})

	e.press("e")
	e.m.edit.contact.SetValue("  ")
	e.press("enter")

	assert.Equal(t, SceneEdit, e.m.Scene())
	assert.Contains(t, e.m.View(), "Contact cannot be empty")
}

func TestEdit_UnreadableCard(t *testing.T) {
	e := newEnv(t, map[string]string{"bob.vcf": "BEGIN:VCARD\r\nthis is not a property\r\n"})

	e.press("e")
	assert.Equal(t, SceneEdit, e.m.Scene())
	assert.Contains(t, e.m.View(), "Error reading card")
	e.press("enter")
	assert.Equal(t, loadError, e.m.edit.birthday)
}

func TestQuery_Results(t *testing.T) {
	e := newEnv(t, map[string]string{"alice.vcf": aliceCard, "frank.vcf": frankCard})

	e.press("q", "a")
	content := e.m.query.content
	assert.Equal(t, []string{
		"1, Alice, 1990-06-15, None, alice.vcf",
		"2, Frank, 1980-06-01, 2010-09-09, frank.vcf",
	}, strings.Split(content, "\n"))

	e.press("j")
	assert.Equal(t, "Alice, 1990-06-15\nFrank, 1980-06-01", e.m.query.content)
}

func TestQuery_Empty(t *testing.T) {
	e := newEnv(t, nil)

	e.press("q", "a")
	assert.Equal(t, emptyResult, e.m.query.content)
	e.press("j")
	assert.Equal(t, emptyResult, e.m.query.content)
}

func TestResize_KeepsSceneAndInput(t *testing.T) {
	e := newEnv(t, map[string]string{"alice.vcf": aliceCard})

	e.press("c", "carl.vcf")
	e.send(tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Equal(t, ResumeToken{Scene: SceneCreate}, e.m.Resume())
	file, _ := e.m.create.values()
	assert.Equal(t, "carl.vcf", file)

	e.press("esc", "e")
	e.send(tea.WindowSizeMsg{Width: 60, Height: 20})
	assert.Equal(t, ResumeToken{Scene: SceneEdit, SelectedFile: "alice.vcf"}, e.m.Resume())
	assert.Equal(t, "Alice", e.m.edit.contact.Value())

	e.press("esc", "q", "a")
	e.send(tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.Equal(t, SceneQuery, e.m.Scene())
	assert.Contains(t, e.m.query.content, "Alice")
}

func TestResize_EditDoesNotReloadCard(t *testing.T) {
	e := newEnv(t, map[string]string{"bob.vcf": "BEGIN:VCARD\r\nthis is not a property\r\n"})

	e.press("e")
	require.True(t, e.m.notices.active())
	e.press("enter")

	for _, w := range []int{100, 60, 90} {
		e.send(tea.WindowSizeMsg{Width: w, Height: 30})
	}
	assert.Equal(t, SceneEdit, e.m.Scene())
	assert.False(t, e.m.notices.active())
	assert.Equal(t, loadError, e.m.edit.birthday)
	assert.Equal(t, "bob.vcf", e.m.edit.file)
}

func TestResize_EditKeepsTypedContact(t *testing.T) {
	e := newEnv(t, map[string]string{"alice.vcf": aliceCard})

	e.press("e")
	e.m.edit.contact.SetValue("Alicia")
	e.send(tea.WindowSizeMsg{Width: 70, Height: 25})

	assert.Equal(t, "Alicia", e.m.edit.contact.Value())
	assert.Equal(t, "1990-06-15", e.m.edit.birthday)
	assert.True(t, e.m.edit.contact.Focused())
}

func TestCreate_EnteringRescansDirectory(t *testing.T) {
	e := newEnv(t, map[string]string{"alice.vcf": aliceCard})
	require.NoError(t, os.WriteFile(filepath.Join(e.dir, "frank.vcf"), []byte(frankCard), 0o600))

	e.press("c")
	assert.Equal(t, SceneCreate, e.m.Scene())
	assert.Len(t, e.m.list.list.Items(), 2)
}

func TestCardEvents_UpdateCacheAndList(t *testing.T) {
	e := newEnv(t, map[string]string{"alice.vcf": aliceCard})

	require.NoError(t, os.WriteFile(filepath.Join(e.dir, "frank.vcf"), []byte(frankCard), 0o600))
	e.send(CardEvent(watch.Event{Name: "frank.vcf", Op: watch.Changed}))
	assert.Contains(t, e.m.View(), "frank.vcf")
	assert.Len(t, e.rows(t), 2)

	require.NoError(t, os.Remove(filepath.Join(e.dir, "alice.vcf")))
	e.send(CardEvent(watch.Event{Name: "alice.vcf", Op: watch.Removed}))
	assert.NotContains(t, e.m.View(), "alice.vcf")
	rows := e.rows(t)
	require.Len(t, rows, 1)
	assert.Equal(t, "Frank", rows[0].Name)

	e.send(CardEvent(watch.Event{Name: "ghost.vcf", Op: watch.Removed}))
	assert.Len(t, e.rows(t), 1)
}
