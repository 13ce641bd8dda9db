package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	fileNameLimit = 60
	contactLimit  = 256
)

type createScene struct {
	inputs []textinput.Model
	focus  int
}

func newCreateScene(width int) createScene {
	file := textinput.New()
	file.Placeholder = "name.vcf"
	file.CharLimit = fileNameLimit
	file.Width = inputWidth(width)

	contact := textinput.New()
	contact.Placeholder = "Full name"
	contact.CharLimit = contactLimit
	contact.Width = inputWidth(width)

	return createScene{inputs: []textinput.Model{file, contact}}
}

func inputWidth(width int) int {
	if w := width - 30; w > 20 {
		return w
	}
	return 20
}

func (s *createScene) focusOn(i int) tea.Cmd {
	s.focus = (i + len(s.inputs)) % len(s.inputs)
	var cmd tea.Cmd
	for j := range s.inputs {
		if j == s.focus {
			cmd = s.inputs[j].Focus()
			continue
		}
		s.inputs[j].Blur()
	}
	return cmd
}

func (s createScene) values() (file, contact string) {
	return s.inputs[0].Value(), s.inputs[1].Value()
}

func (s *createScene) setValues(file, contact string) {
	s.inputs[0].SetValue(file)
	s.inputs[1].SetValue(contact)
}

func (s createScene) update(msg tea.Msg) (createScene, tea.Cmd) {
	var cmd tea.Cmd
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	return s, cmd
}

func (s createScene) view(st Styles) string {
	var b strings.Builder
	b.WriteString(st.Title.Render("Create vCard"))
	b.WriteString("\n")
	b.WriteString(st.Label.Render("File name:") + s.inputs[0].View() + "\n")
	b.WriteString(st.Label.Render("Contact:") + s.inputs[1].View() + "\n")
	return b.String()
}

func trimmed(s string) string { return strings.TrimSpace(s) }
