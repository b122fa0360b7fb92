package taskdetail

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"learntrack/internal/api"
	"learntrack/internal/keys"
	"learntrack/internal/model"
	"learntrack/internal/theme"
	"learntrack/internal/ui"
)

// BackMsg asks the parent to navigate back to the previous screen.
type BackMsg struct{}

// EditTaskMsg asks the parent to open the task edit form.
type EditTaskMsg struct {
	Task model.Task
}

// TaskDeletedMsg tells the parent the task is gone.
type TaskDeletedMsg struct{}

// taskLoadedMsg carries the fetched task.
type taskLoadedMsg struct {
	task *model.Task
	err  error
}

// goalLoadedMsg carries the parent goal, fetched for its title. A
// failure here is not fatal to the screen.
type goalLoadedMsg struct {
	goal *model.Goal
	err  error
}

// mutatedMsg reports the result of a status transition.
type mutatedMsg struct {
	err error
}

// deletedMsg reports the result of deleting the task.
type deletedMsg struct {
	err error
}

// Model is the task detail screen.
type Model struct {
	client        *api.Client
	keys          *keys.KeyMap
	taskID        int64
	task          *model.Task
	goalTitle     string
	loading       bool
	notFound      bool
	banner        string
	pendingDelete bool
	width         int
	height        int
}

// New creates a new task detail model.
func New(client *api.Client, k *keys.KeyMap, width, height int) Model {
	return Model{
		client: client,
		keys:   k,
		width:  width,
		height: height,
	}
}

// Load prepares the screen for the given task and returns the command
// that fetches it.
func (m *Model) Load(taskID int64) tea.Cmd {
	m.taskID = taskID
	m.task = nil
	m.goalTitle = ""
	m.loading = true
	m.notFound = false
	m.banner = ""
	return m.Reload()
}

// Reload refetches the task.
func (m *Model) Reload() tea.Cmd {
	c := m.client
	id := m.taskID
	return func() tea.Msg {
		task, err := c.GetTask(context.Background(), id)
		return taskLoadedMsg{task: task, err: err}
	}
}

// Update handles messages for the task detail screen.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case taskLoadedMsg:
		m.loading = false
		if msg.err != nil {
			if api.IsNotFound(msg.err) {
				m.notFound = true
				return m, nil
			}
			m.banner = msg.err.Error()
			return m, nil
		}
		m.task = msg.task
		return m, m.loadGoal(msg.task.GoalID)

	case goalLoadedMsg:
		if msg.err == nil && msg.goal != nil {
			m.goalTitle = msg.goal.Title
		}
		return m, nil

	case mutatedMsg:
		if msg.err != nil {
			m.banner = msg.err.Error()
			return m, nil
		}
		return m, m.Reload()

	case deletedMsg:
		if msg.err != nil {
			m.banner = msg.err.Error()
			return m, nil
		}
		return m, func() tea.Msg { return TaskDeletedMsg{} }

	case tea.KeyMsg:
		return m.handleKeys(msg)
	}

	return m, nil
}

// handleKeys processes key input for the detail screen.
func (m Model) handleKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.pendingDelete {
		if msg.String() == "y" {
			m.pendingDelete = false
			return m, m.deleteTask()
		}
		m.pendingDelete = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		if m.banner != "" {
			m.banner = ""
			return m, nil
		}
		return m, func() tea.Msg { return BackMsg{} }

	case key.Matches(msg, m.keys.Edit):
		if m.task != nil {
			task := *m.task
			return m, func() tea.Msg { return EditTaskMsg{Task: task} }
		}
		return m, nil

	case key.Matches(msg, m.keys.Advance):
		if m.task != nil {
			return m, m.setStatus(m.task.NextStatus())
		}
		return m, nil

	case key.Matches(msg, m.keys.Reopen):
		if m.task != nil && m.task.Completed() {
			return m, m.setStatus(model.TaskInProgress)
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if m.task != nil {
			m.pendingDelete = true
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, m.Reload()
	}

	return m, nil
}

// loadGoal fetches the parent goal for its title.
func (m Model) loadGoal(goalID int64) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		goal, err := c.GetGoal(context.Background(), goalID)
		return goalLoadedMsg{goal: goal, err: err}
	}
}

// setStatus persists a status transition and reloads the task so the
// server-maintained completion timestamp is reflected.
func (m Model) setStatus(status string) tea.Cmd {
	c := m.client
	id := m.taskID
	return func() tea.Msg {
		_, err := c.UpdateTask(context.Background(), id, api.TaskUpdate{
			Status: &status,
		})
		return mutatedMsg{err: err}
	}
}

// deleteTask deletes the task server-side.
func (m Model) deleteTask() tea.Cmd {
	c := m.client
	id := m.taskID
	return func() tea.Msg {
		err := c.DeleteTask(context.Background(), id)
		return deletedMsg{err: err}
	}
}

// View renders the task detail screen.
func (m Model) View() string {
	if m.loading {
		return ui.CenterStyle(m.width, m.height).Render("Loading task...")
	}

	if m.notFound {
		return ui.CenterStyle(m.width, m.height).Render(
			"Task not found.\n\nPress esc to go back.",
		)
	}

	if m.task == nil {
		return ui.CenterStyle(m.width, m.height).Render("No task selected")
	}

	t := m.task

	title := theme.TitleStyle.Render(t.Title)

	var badges []string
	badges = append(badges, theme.StatusStyle(t.Status).Render(ui.StatusLabel(t.Status)))
	if label := ui.PriorityLabel(t.Priority); label != "" {
		badges = append(badges, theme.PriorityStyle(t.Priority).Render(label))
	}
	if label := ui.DeadlineLabel(t.DueDate); label != "" {
		if t.Overdue() {
			badges = append(badges, theme.OverdueStyle.Render(label))
		} else {
			badges = append(badges, theme.DueDateStyle.Render(label))
		}
	}

	lines := []string{title, strings.Join(badges, " ")}

	if m.goalTitle != "" {
		lines = append(lines, theme.DimmedStyle.Render("Goal: "+m.goalTitle))
	}
	if t.Description != "" {
		lines = append(lines, "", t.Description)
	}

	var facts []string
	if t.EstimatedHours != nil {
		facts = append(facts, fmt.Sprintf("estimated %.1fh", *t.EstimatedHours))
	}
	if t.CompletedAt != nil {
		facts = append(facts, "completed "+ui.RelativeTime(*t.CompletedAt))
	}
	facts = append(facts, "created "+ui.RelativeTime(t.CreatedAt))
	lines = append(lines, "", theme.DimmedStyle.Render(strings.Join(facts, " | ")))

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// Banner returns the current error banner text, if any.
func (m Model) Banner() string {
	return m.banner
}

// ShowError puts an error in the banner. Used by the parent when a
// request made on this screen's behalf fails elsewhere.
func (m *Model) ShowError(err error) {
	m.banner = err.Error()
}

// Hints returns the status bar hint line for this screen.
func (m Model) Hints() string {
	if m.pendingDelete {
		return "delete task? y confirm | any other key cancel"
	}
	hints := "esc back | e edit | x advance | d delete | r refresh"
	if m.task != nil && m.task.Completed() {
		hints = "esc back | e edit | o reopen | d delete | r refresh"
	}
	return hints
}

// SetSize updates the screen dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
