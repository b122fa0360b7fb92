package help

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"learntrack/internal/keys"
	"learntrack/internal/theme"
)

// Model is the help overlay view.
type Model struct {
	keys   *keys.KeyMap
	help   help.Model
	width  int
	height int
}

// New creates a new help view model.
func New(keys *keys.KeyMap, width, height int) Model {
	h := help.New()
	h.Width = width
	return Model{
		keys:   keys,
		help:   h,
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

// screenKeys lists the lowercase keys that only exist on certain
// screens and therefore are not part of the shared keymap.
var screenKeys = []struct {
	key  string
	desc string
}{
	{"n", "new goal or task"},
	{"e", "edit the selected item"},
	{"x", "toggle a goal done / advance a task"},
	{"o", "reopen a completed task"},
	{"d", "delete, then y to confirm"},
	{"/", "search"},
	{"s, p", "cycle the status and priority filters"},
	{"c", "clear filters"},
	{"w", "cycle the chart window on the dashboard"},
	{"r", "refresh the current screen"},
}

// View renders the help overlay: the shared keymap first, then the
// per-screen keys.
func (m Model) View() string {
	m.help.Width = m.width - 4
	m.help.ShowAll = true

	sections := []string{
		theme.HeaderStyle.Render("Everywhere"),
		m.help.View(m.keys),
		"",
		theme.HeaderStyle.Render("On lists and detail screens"),
		renderScreenKeys(),
		"",
		theme.DimmedStyle.Render("Press ? to close help."),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	return theme.CardStyle.
		Width(m.width - 4).
		Height(m.height - 4).
		Render(content)
}

// renderScreenKeys formats the per-screen key table.
func renderScreenKeys() string {
	lines := make([]string, len(screenKeys))
	for i, k := range screenKeys {
		lines[i] = fmt.Sprintf("%s %s",
			theme.TitleStyle.Render(fmt.Sprintf("%4s", k.key)),
			theme.DimmedStyle.Render(k.desc),
		)
	}
	return strings.Join(lines, "\n")
}

// SetSize updates the help view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width - 4
}
