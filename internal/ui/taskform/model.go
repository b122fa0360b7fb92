package taskform

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"learntrack/internal/model"
	"learntrack/internal/theme"
)

// TaskCreatedMsg is dispatched when a new task is submitted via the form.
type TaskCreatedMsg struct {
	Task model.Task
}

// TaskUpdatedMsg is dispatched when an existing task is submitted via
// the form.
type TaskUpdatedMsg struct {
	Task model.Task
}

// CancelMsg is dispatched when the user abandons the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title          string
	description    string
	goalID         int64
	priority       string
	status         string
	dueDate        string
	estimatedHours string
}

// Model is the Bubble Tea model for the task create/edit form.
type Model struct {
	form        *huh.Form
	fb          *formBindings
	editMode    bool
	editID      int64
	fixedGoalID int64
	goals       []model.Goal
	errText     string
	width       int
	height      int
}

// New creates a new task form model.
func New(width, height int) Model {
	return Model{
		fb: &formBindings{
			priority: model.PriorityMedium,
			status:   model.TaskNotStarted,
		},
		width:  width,
		height: height,
	}
}

// SetGoals sets the goals offered by the parent-goal selector.
func (m *Model) SetGoals(goals []model.Goal) {
	m.goals = goals
}

// StartCreate initializes the form for creating a new task. A non-zero
// fixedGoalID pins the task to that goal and hides the selector.
func (m *Model) StartCreate(fixedGoalID int64) tea.Cmd {
	m.editMode = false
	m.editID = 0
	m.fixedGoalID = fixedGoalID
	m.errText = ""
	m.fb.title = ""
	m.fb.description = ""
	m.fb.goalID = fixedGoalID
	m.fb.priority = model.PriorityMedium
	m.fb.status = model.TaskNotStarted
	m.fb.dueDate = ""
	m.fb.estimatedHours = ""
	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit initializes the form for editing an existing task.
func (m *Model) StartEdit(task model.Task) tea.Cmd {
	m.editMode = true
	m.editID = task.ID
	m.fixedGoalID = 0
	m.errText = ""
	m.fb.title = task.Title
	m.fb.description = task.Description
	m.fb.goalID = task.GoalID
	m.fb.priority = task.Priority
	m.fb.status = task.Status
	if task.DueDate != nil {
		m.fb.dueDate = task.DueDate.Format("2006-01-02")
	} else {
		m.fb.dueDate = ""
	}
	if task.EstimatedHours != nil {
		m.fb.estimatedHours = strconv.FormatFloat(*task.EstimatedHours, 'f', -1, 64)
	} else {
		m.fb.estimatedHours = ""
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

// Update handles messages for the task form.
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

// View renders the task form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Task"
	if m.editMode {
		titleText = "Edit Task"
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

func (m *Model) buildForm() *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Title("Title").
			Placeholder("What needs to be done?").
			Value(&m.fb.title).
			Validate(validateRequired("Title")),
		huh.NewText().
			Title("Description").
			Placeholder("Optional details...").
			Value(&m.fb.description),
	}

	if m.fixedGoalID == 0 {
		fields = append(fields, m.goalField())
	}

	fields = append(fields,
		huh.NewSelect[string]().
			Title("Priority").
			Options(
				huh.NewOption("High", model.PriorityHigh),
				huh.NewOption("Medium", model.PriorityMedium),
				huh.NewOption("Low", model.PriorityLow),
			).
			Value(&m.fb.priority),
		huh.NewInput().
			Title("Due Date").
			Placeholder("YYYY-MM-DD (optional)").
			Value(&m.fb.dueDate).
			Validate(validateOptionalDate),
		huh.NewInput().
			Title("Estimated Hours").
			Placeholder("e.g. 2.5 (optional)").
			Value(&m.fb.estimatedHours).
			Validate(validateOptionalHours),
	)

	if m.editMode {
		fields = append(fields,
			huh.NewSelect[string]().
				Title("Status").
				Options(
					huh.NewOption("Not started", model.TaskNotStarted),
					huh.NewOption("In progress", model.TaskInProgress),
					huh.NewOption("Completed", model.TaskCompleted),
				).
				Value(&m.fb.status),
		)
	}

	return huh.NewForm(
		huh.NewGroup(fields...),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

// goalField builds the parent-goal selector. Every task belongs to a
// goal, so there is no "none" option.
func (m *Model) goalField() huh.Field {
	opts := make([]huh.Option[int64], 0, len(m.goals))
	for _, g := range m.goals {
		opts = append(opts, huh.NewOption(g.Title, g.ID))
	}
	return huh.NewSelect[int64]().
		Title("Goal").
		Options(opts...).
		Value(&m.fb.goalID).
		Validate(func(id int64) error {
			if id == 0 {
				return fmt.Errorf("a goal is required")
			}
			return nil
		})
}

func (m Model) handleSubmit() tea.Cmd {
	task := model.Task{
		Title:       strings.TrimSpace(m.fb.title),
		Description: m.fb.description,
		GoalID:      m.fb.goalID,
		Priority:    m.fb.priority,
		Status:      m.fb.status,
	}

	if m.fb.dueDate != "" {
		t, err := time.Parse("2006-01-02", strings.TrimSpace(m.fb.dueDate))
		if err == nil {
			task.DueDate = &t
		}
	}
	if m.fb.estimatedHours != "" {
		h, err := strconv.ParseFloat(strings.TrimSpace(m.fb.estimatedHours), 64)
		if err == nil {
			task.EstimatedHours = &h
		}
	}

	if m.editMode {
		task.ID = m.editID
		return func() tea.Msg { return TaskUpdatedMsg{Task: task} }
	}
	return func() tea.Msg { return TaskCreatedMsg{Task: task} }
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

func validateOptionalHours(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	h, err := strconv.ParseFloat(s, 64)
	if err != nil || h < 0 {
		return fmt.Errorf("estimated hours must be a non-negative number")
	}
	return nil
}
