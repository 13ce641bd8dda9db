package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/vcardshell/internal/common"
	"github.com/dmitrijs2005/vcardshell/internal/logging"
	"github.com/dmitrijs2005/vcardshell/internal/services"
	"github.com/dmitrijs2005/vcardshell/internal/watch"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Deps are the services the interface drives.
type Deps struct {
	Dir      string
	Contacts services.ContactService
	Cards    services.CardService
	Log      logging.Logger
	// Now is the clock of the June query and of list descriptions.
	// Defaults to time.Now.
	Now func() time.Time
}

type cardEventMsg watch.Event

// CardEvent wraps a watcher event so it can be sent to the program.
func CardEvent(e watch.Event) tea.Msg {
	return cardEventMsg(e)
}

// Model is the root bubbletea model.
type Model struct {
	ctx     context.Context
	deps    Deps
	keys    KeyMap
	styles  Styles
	help    help.Model
	width   int
	height  int
	scene   Scene
	session Session
	notices notices

	list   listScene
	create createScene
	edit   editScene
	query  queryScene
}

// New builds the model in the List scene.
func New(ctx context.Context, deps Deps) Model {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Log == nil {
		deps.Log = logging.NewNop()
	}
	m := Model{
		ctx:    ctx,
		deps:   deps,
		keys:   DefaultKeyMap,
		styles: DefaultStyles(),
		help:   help.New(),
		width:  defaultWidth,
		height: defaultHeight,
	}
	m.rebuild()
	m, _ = m.switchTo(SceneList, "")
	return m
}

// WithNotice queues a blocking notice.
func (m Model) WithNotice(text string) Model {
	m.notices = append(m.notices, text)
	return m
}

// Resume returns the token that re-enters the current scene.
func (m Model) Resume() ResumeToken {
	return ResumeToken{Scene: m.scene, SelectedFile: m.session.SelectedFile}
}

// Scene returns the current scene.
func (m Model) Scene() Scene { return m.scene }

// Session returns the state shared between scenes.
func (m Model) Session() Session { return m.session }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m.restart(m.Resume())

	case cardEventMsg:
		return m.applyCardEvent(watch.Event(msg)), nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if m.notices.active() {
			if key.Matches(msg, m.keys.Dismiss) {
				m.notices = m.notices.dismiss()
			}
			return m, nil
		}
	}

	switch m.scene {
	case SceneCreate:
		return m.updateCreate(msg)
	case SceneEdit:
		return m.updateEdit(msg)
	case SceneQuery:
		return m.updateQuery(msg)
	}
	return m.updateList(msg)
}

func (m Model) View() string {
	if m.notices.active() {
		return m.notices.render(m.styles, m.width, m.height)
	}

	var body string
	var keys help.KeyMap
	switch m.scene {
	case SceneCreate:
		body, keys = m.create.view(m.styles), m.keys.Form
	case SceneEdit:
		body, keys = m.edit.view(m.styles), m.keys.Form
	case SceneQuery:
		body, keys = m.query.view(m.styles), m.keys.Query
	default:
		body, keys = m.list.view(), m.keys.List
	}
	return m.styles.Frame.Render(lipgloss.JoinVertical(lipgloss.Left, body, "", m.help.View(keys)))
}

// bodySize is the room left for a scene inside the frame and above the
// help line.
func (m Model) bodySize() (int, int) {
	w := m.width - m.styles.Frame.GetHorizontalFrameSize()
	h := m.height - m.styles.Frame.GetVerticalFrameSize() - 2
	return max(w, 1), max(h, 1)
}

// rebuild recreates every scene for the current size.
func (m *Model) rebuild() {
	w, h := m.bodySize()
	m.list = newListScene(m.deps.Dir, m.styles, w, h)
	m.create = newCreateScene(w)
	m.edit = newEditScene(m.session.SelectedFile, w)
	m.query = newQueryScene(w, max(h-2, 1))
}

// restart rebuilds the scenes and re-enters the scene named by token. Form
// input and query output survive the rebuild. The Edit scene keeps what it
// loaded on entry; the card is not read again.
func (m Model) restart(token ResumeToken) (Model, tea.Cmd) {
	file, contact := m.create.values()
	edit := m.edit
	result := m.query.content

	m.rebuild()

	var cmd tea.Cmd
	switch token.Scene {
	case SceneEdit:
		w, _ := m.bodySize()
		edit.contact.Width = inputWidth(w)
		m.edit = edit
		m.scene = SceneEdit
		m.session.SelectedFile = token.SelectedFile
		cmd = m.edit.contact.Focus()
	case SceneCreate:
		m, cmd = m.switchTo(token.Scene, token.SelectedFile)
		m.create.setValues(file, contact)
	case SceneQuery:
		m, cmd = m.switchTo(token.Scene, token.SelectedFile)
		if result != "" {
			m.query.show(result)
		}
	default:
		m, cmd = m.switchTo(token.Scene, token.SelectedFile)
	}
	m.deps.Log.Debug(m.ctx, "scenes rebuilt", "scene", token.Scene, "width", m.width, "height", m.height)
	return m, cmd
}

// switchTo enters scene with selected as the shared file selection.
func (m Model) switchTo(scene Scene, selected string) (Model, tea.Cmd) {
	m.scene = scene
	m.session.SelectedFile = selected
	w, h := m.bodySize()

	var cmd tea.Cmd
	switch scene {
	case SceneList:
		if err := m.list.reload(selected, m.deps.Now()); err != nil {
			m.deps.Log.Warn(m.ctx, "listing cards", "error", err)
			m = m.WithNotice("Cannot list cards: " + err.Error())
		}
		m.session.SelectedFile = m.list.selected()

	case SceneCreate:
		if err := m.list.reload(selected, m.deps.Now()); err != nil {
			m.deps.Log.Warn(m.ctx, "listing cards", "error", err)
		}
		m.session.SelectedFile = ""
		m.create = newCreateScene(w)
		cmd = m.create.focusOn(0)

	case SceneEdit:
		m.edit = newEditScene(selected, w)
		summary, err := m.deps.Cards.Load(m.ctx, selected)
		if err != nil {
			m.edit.fail()
			m = m.WithNotice(describe(err, "Please select a file from the list."))
		} else {
			m.edit.fill(summary)
		}
		cmd = m.edit.contact.Focus()

	case SceneQuery:
		m.query = newQueryScene(w, max(h-2, 1))
	}

	m.deps.Log.Debug(m.ctx, "scene entered", "scene", scene, "file", m.session.SelectedFile)
	return m, cmd
}

func (m Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, m.keys.List.Create):
			return m.switchTo(SceneCreate, "")
		case key.Matches(k, m.keys.List.Edit):
			selected := m.list.selected()
			if selected == "" {
				return m.WithNotice("Please select a file from the list."), nil
			}
			return m.switchTo(SceneEdit, selected)
		case key.Matches(k, m.keys.List.Query):
			return m.switchTo(SceneQuery, m.session.SelectedFile)
		case key.Matches(k, m.keys.List.Exit):
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.update(msg)
	m.session.SelectedFile = m.list.selected()
	return m, cmd
}

func (m Model) updateCreate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, m.keys.Form.Cancel):
			return m.switchTo(SceneList, "")
		case key.Matches(k, m.keys.Form.Next):
			return m, m.create.focusOn(m.create.focus + 1)
		case key.Matches(k, m.keys.Form.Prev):
			return m, m.create.focusOn(m.create.focus - 1)
		case key.Matches(k, m.keys.Form.Submit):
			return m.submitCreate()
		}
	}

	var cmd tea.Cmd
	m.create, cmd = m.create.update(msg)
	return m, cmd
}

func (m Model) submitCreate() (tea.Model, tea.Cmd) {
	file, contact := m.create.values()
	if err := m.deps.Cards.Create(m.ctx, file, contact); err != nil {
		m.deps.Log.Debug(m.ctx, "create rejected", "file", file, "error", err)
		return m.WithNotice(describe(err, "File name and Contact cannot be empty")), nil
	}

	m, cmd := m.switchTo(SceneList, trimmed(file))
	return m.WithNotice("Card saved successfully"), cmd
}

func (m Model) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, m.keys.Form.Cancel):
			return m.switchTo(SceneList, m.session.SelectedFile)
		case key.Matches(k, m.keys.Form.Submit):
			return m.submitEdit()
		}
	}

	var cmd tea.Cmd
	m.edit, cmd = m.edit.update(msg)
	return m, cmd
}

func (m Model) submitEdit() (tea.Model, tea.Cmd) {
	file := m.edit.file
	if err := m.deps.Cards.Save(m.ctx, file, m.edit.contact.Value()); err != nil {
		m.deps.Log.Debug(m.ctx, "edit rejected", "file", file, "error", err)
		return m.WithNotice(describe(err, "Contact cannot be empty")), nil
	}

	m, cmd := m.switchTo(SceneList, file)
	return m.WithNotice("Card saved successfully"), cmd
}

func (m Model) updateQuery(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		var (
			content string
			err     error
		)
		switch {
		case key.Matches(k, m.keys.Query.Cancel):
			return m.switchTo(SceneList, m.session.SelectedFile)
		case key.Matches(k, m.keys.Query.All):
			content, err = allContacts(m.ctx, m.deps.Contacts)
		case key.Matches(k, m.keys.Query.June):
			content, err = juneBirthdays(m.ctx, m.deps.Contacts, m.deps.Now())
		default:
			var cmd tea.Cmd
			m.query, cmd = m.query.update(msg)
			return m, cmd
		}
		if err != nil {
			m.deps.Log.Error(m.ctx, "query failed", "error", err)
			return m.WithNotice("Query failed: " + err.Error()), nil
		}
		m.query.show(content)
		return m, nil
	}

	var cmd tea.Cmd
	m.query, cmd = m.query.update(msg)
	return m, cmd
}

// applyCardEvent mirrors an external change of a card file into the cache
// and refreshes the listing.
func (m Model) applyCardEvent(e watch.Event) Model {
	var err error
	switch e.Op {
	case watch.Removed:
		err = m.deps.Contacts.ForgetFile(m.ctx, e.Name)
		if errors.Is(err, common.ErrNotFound) {
			err = nil
		}
	default:
		err = m.deps.Contacts.RefreshFile(m.ctx, m.deps.Dir, e.Name)
	}
	if err != nil {
		m.deps.Log.Debug(m.ctx, "card event not applied", "file", e.Name, "op", e.Op, "error", err)
	}

	if m.scene == SceneList {
		if err := m.list.reload(m.session.SelectedFile, m.deps.Now()); err != nil {
			m.deps.Log.Warn(m.ctx, "listing cards", "error", err)
		}
		m.session.SelectedFile = m.list.selected()
	}
	return m
}
