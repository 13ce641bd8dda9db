package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dmitrijs2005/vcardshell/internal/vcf"
)

const loadError = "Error"

type editScene struct {
	file        string
	contact     textinput.Model
	birthday    string
	anniversary string
	other       string
}

func newEditScene(file string, width int) editScene {
	contact := textinput.New()
	contact.CharLimit = contactLimit
	contact.Width = inputWidth(width)
	return editScene{file: file, contact: contact}
}

func (s *editScene) fill(sum vcf.Summary) {
	s.contact.SetValue(sum.NameOr("No contact"))
	s.birthday = sum.BirthdayOr("No birthday")
	s.anniversary = sum.AnniversaryOr("No anniversary")
	s.other = strconv.Itoa(sum.OtherProperties)
}

func (s *editScene) fail() {
	s.contact.SetValue(loadError)
	s.birthday = loadError
	s.anniversary = loadError
	s.other = loadError
}

func (s editScene) update(msg tea.Msg) (editScene, tea.Cmd) {
	var cmd tea.Cmd
	s.contact, cmd = s.contact.Update(msg)
	return s, cmd
}

func (s editScene) view(st Styles) string {
	var b strings.Builder
	b.WriteString(st.Title.Render("Edit vCard"))
	b.WriteString("\n")
	row := func(label, value string) {
		b.WriteString(st.Label.Render(label) + st.Value.Render(value) + "\n")
	}
	row("File name:", s.file)
	b.WriteString(st.Label.Render("Contact:") + s.contact.View() + "\n")
	row("Birthday:", s.birthday)
	row("Anniversary:", s.anniversary)
	row("Other properties:", s.other)
	return b.String()
}
