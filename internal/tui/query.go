package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dmitrijs2005/vcardshell/internal/services"
)

const emptyResult = "Nothing to return."

type queryScene struct {
	viewport viewport.Model
	content  string
}

func newQueryScene(width, height int) queryScene {
	vp := viewport.New(width, height)
	// j runs the June query.
	vp.KeyMap.Down = key.NewBinding(key.WithKeys("down"))
	vp.KeyMap.Up = key.NewBinding(key.WithKeys("up"))
	vp.SetContent("Press a for all contacts or j for June birthdays.")
	return queryScene{viewport: vp}
}

func (s *queryScene) show(content string) {
	if content == "" {
		content = emptyResult
	}
	s.content = content
	s.viewport.SetContent(content)
	s.viewport.GotoTop()
}

func (s queryScene) update(msg tea.Msg) (queryScene, tea.Cmd) {
	var cmd tea.Cmd
	s.viewport, cmd = s.viewport.Update(msg)
	return s, cmd
}

func (s queryScene) view(st Styles) string {
	return st.Title.Render("DB Queries") + "\n" + s.viewport.View()
}

func orNone(p *string) string {
	if p == nil {
		return "None"
	}
	return *p
}

// allContacts renders the all-contacts query, one contact per line.
func allContacts(ctx context.Context, svc services.ContactService) (string, error) {
	var lines []string
	for row, err := range svc.QueryAllContactsOrderedByName(ctx) {
		if err != nil {
			return "", err
		}
		lines = append(lines, fmt.Sprintf("%d, %s, %s, %s, %s",
			row.ContactID, row.Name, orNone(row.Birthday), orNone(row.Anniversary), row.FileName))
	}
	return strings.Join(lines, "\n"), nil
}

func juneBirthdays(ctx context.Context, svc services.ContactService, now time.Time) (string, error) {
	rows, err := svc.QueryJuneBirthdaysByProximity(ctx, now)
	if err != nil {
		return "", err
	}
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, r.Name+", "+r.Birthday)
	}
	return strings.Join(lines, "\n"), nil
}
