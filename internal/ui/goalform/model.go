package goalform

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"learntrack/internal/model"
	"learntrack/internal/theme"
)

// GoalCreatedMsg is dispatched when a new goal is submitted via the form.
type GoalCreatedMsg struct {
	Goal model.Goal
}

// GoalUpdatedMsg is dispatched when an existing goal is submitted via
// the form.
type GoalUpdatedMsg struct {
	Goal model.Goal
}

// CancelMsg is dispatched when the user abandons the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title       string
	description string
	category    string
	priority    string
	deadline    string
}

// Model is the Bubble Tea model for the goal create/edit form.
type Model struct {
	form     *huh.Form
	fb       *formBindings
	editMode bool
	editID   int64
	errText  string
	width    int
	height   int
}

// New creates a new goal form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{priority: model.PriorityMedium},
		width:  width,
		height: height,
	}
}

// StartCreate initializes the form for creating a new goal.
func (m *Model) StartCreate() tea.Cmd {
	m.editMode = false
	m.editID = 0
	m.errText = ""
	m.fb.title = ""
	m.fb.description = ""
	m.fb.category = ""
	m.fb.priority = model.PriorityMedium
	m.fb.deadline = ""
	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit initializes the form for editing an existing goal.
func (m *Model) StartEdit(goal model.Goal) tea.Cmd {
	m.editMode = true
	m.editID = goal.ID
	m.errText = ""
	m.fb.title = goal.Title
	m.fb.description = goal.Description
	m.fb.category = goal.Category
	m.fb.priority = goal.Priority
	if goal.Deadline != nil {
		m.fb.deadline = goal.Deadline.Format("2006-01-02")
	} else {
		m.fb.deadline = ""
	}
	m.form = m.buildForm()
	return m.form.Init()
}

// SetError shows a server-side rejection above the form. The draft is
// kept so the user can correct and resubmit.
func (m *Model) SetError(err error) tea.Cmd {
	m.errText = err.Error()
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the goal form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the goal form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Goal"
	if m.editMode {
		titleText = "Edit Goal"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(titleText) + "\n"
	if m.errText != "" {
		content += theme.OverdueStyle.Render(m.errText) + "\n\n"
	}
	content += m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// buildForm assembles the goal fields. Progress is deliberately not
// among them: the server derives it from task completion, and the only
// client-side override is the toggle-complete action on the goal list.
func (m *Model) buildForm() *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Title("Title").
			Placeholder("What do you want to learn?").
			Value(&m.fb.title).
			Validate(validateRequired("Title")),
		huh.NewText().
			Title("Description").
			Placeholder("Optional details...").
			Value(&m.fb.description),
		huh.NewInput().
			Title("Category").
			Placeholder("e.g. programming, language (optional)").
			Value(&m.fb.category),
		huh.NewSelect[string]().
			Title("Priority").
			Options(
				huh.NewOption("High", model.PriorityHigh),
				huh.NewOption("Medium", model.PriorityMedium),
				huh.NewOption("Low", model.PriorityLow),
			).
			Value(&m.fb.priority),
		huh.NewInput().
			Title("Deadline").
			Placeholder("YYYY-MM-DD (optional)").
			Value(&m.fb.deadline).
			Validate(validateOptionalDate),
	}

	return huh.NewForm(
		huh.NewGroup(fields...),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	goal := model.Goal{
		Title:       strings.TrimSpace(m.fb.title),
		Description: m.fb.description,
		Category:    strings.TrimSpace(m.fb.category),
		Priority:    m.fb.priority,
	}

	if m.fb.deadline != "" {
		t, err := time.Parse("2006-01-02", strings.TrimSpace(m.fb.deadline))
		if err == nil {
			goal.Deadline = &t
		}
	}

	if m.editMode {
		goal.ID = m.editID
		return func() tea.Msg { return GoalUpdatedMsg{Goal: goal} }
	}
	return func() tea.Msg { return GoalCreatedMsg{Goal: goal} }
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateOptionalDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	_, err := time.Parse("2006-01-02", s)
	if err != nil {
		return fmt.Errorf("invalid date format, use YYYY-MM-DD")
	}
	return nil
}

