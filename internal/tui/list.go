package tui

import (
	"errors"
	"io/fs"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dmitrijs2005/vcardshell/internal/filex"
	"github.com/dmitrijs2005/vcardshell/internal/services"
	"github.com/dustin/go-humanize"
)

type fileItem struct {
	name     string
	modified time.Time
	now      time.Time
}

func (i fileItem) Title() string { return i.name }
func (i fileItem) Description() string {
	return "modified " + humanize.RelTime(i.modified, i.now, "ago", "from now")
}
func (i fileItem) FilterValue() string { return i.name }

type listScene struct {
	list list.Model
	dir  string
}

func newListScene(dir string, s Styles, width, height int) listScene {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "vCard files"
	l.Styles.Title = s.Title
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.SetShowStatusBar(true)
	l.SetStatusBarItemName("card", "cards")
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)
	return listScene{list: l, dir: dir}
}

// reload lists the card files again and selects keep when it is still
// there. A missing directory gives an empty list.
func (s *listScene) reload(keep string, now time.Time) error {
	entries, err := filex.ListBySuffix(s.dir, services.CardSuffix)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	items := make([]list.Item, 0, len(entries))
	index := 0
	for i, e := range entries {
		if e.Name == keep {
			index = i
		}
		items = append(items, fileItem{name: e.Name, modified: e.ModTime, now: now})
	}
	s.list.SetItems(items)
	s.list.Select(index)
	return nil
}

// selected returns the highlighted file name or "" for an empty list.
func (s listScene) selected() string {
	if item, ok := s.list.SelectedItem().(fileItem); ok {
		return item.name
	}
	return ""
}

func (s listScene) update(msg tea.Msg) (listScene, tea.Cmd) {
	var cmd tea.Cmd
	s.list, cmd = s.list.Update(msg)
	return s, cmd
}

func (s listScene) view() string {
	return s.list.View()
}
