package tui

import "github.com/charmbracelet/bubbles/key"

type listKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Create key.Binding
	Edit   key.Binding
	Query  key.Binding
	Exit   key.Binding
}

func (k listKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Create, k.Edit, k.Query, k.Exit}
}

func (k listKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, k.ShortHelp()}
}

type formKeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Submit key.Binding
	Cancel key.Binding
}

func (k formKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Submit, k.Cancel}
}

func (k formKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Next, k.Prev}, {k.Submit, k.Cancel}}
}

type queryKeyMap struct {
	All    key.Binding
	June   key.Binding
	Cancel key.Binding
}

func (k queryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.All, k.June, k.Cancel}
}

func (k queryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// KeyMap holds the bindings of every scene.
type KeyMap struct {
	List    listKeyMap
	Form    formKeyMap
	Query   queryKeyMap
	Dismiss key.Binding
	Quit    key.Binding
}

var DefaultKeyMap = KeyMap{
	List: listKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Create: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "create")),
		Edit:   key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e/enter", "edit")),
		Query:  key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "db queries")),
		Exit:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "exit")),
	},
	Form: formKeyMap{
		Next:   key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "ok")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	},
	Query: queryKeyMap{
		All:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "all contacts")),
		June:   key.NewBinding(key.WithKeys("j"), key.WithHelp("j", "june birthdays")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	},
	Dismiss: key.NewBinding(key.WithKeys("enter", "esc"), key.WithHelp("enter", "ok")),
	Quit:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
}
