package goaldetail

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
	"learntrack/internal/query"
	"learntrack/internal/theme"
	"learntrack/internal/ui"
)

// BackMsg asks the parent to navigate back to the goal list.
type BackMsg struct{}

// OpenTaskMsg asks the parent to open the task detail screen.
type OpenTaskMsg struct {
	ID int64
}

// NewTaskMsg asks the parent to open the task form with the goal fixed.
type NewTaskMsg struct {
	GoalID int64
}

// EditGoalMsg asks the parent to open the goal edit form.
type EditGoalMsg struct {
	Goal model.Goal
}

// GoalDeletedMsg tells the parent the goal is gone; it should return to
// the list and reload.
type GoalDeletedMsg struct{}

// goalLoadedMsg carries the fetched goal.
type goalLoadedMsg struct {
	goal *model.Goal
	err  error
}

// tasksLoadedMsg carries the full task collection; the screen filters
// it down to this goal client-side.
type tasksLoadedMsg struct {
	tasks []model.Task
	err   error
}

// mutatedMsg reports the result of a task mutation on this screen.
type mutatedMsg struct {
	err error
}

// goalDeleteResultMsg reports the result of deleting the goal itself.
type goalDeleteResultMsg struct {
	err error
}

// Model is the goal detail screen: the goal's fields plus its tasks and
// the derived descendant counts.
type Model struct {
	client            *api.Client
	keys              *keys.KeyMap
	goalID            int64
	goal              *model.Goal
	tasks             []model.Task
	summary           query.GoalTaskSummary
	cursor            int
	loading           bool
	notFound          bool
	banner            string
	pendingDeleteTask int64
	pendingDeleteGoal bool
	width             int
	height            int
}

// New creates a new goal detail model.
func New(client *api.Client, k *keys.KeyMap, width, height int) Model {
	return Model{
		client: client,
		keys:   k,
		width:  width,
		height: height,
	}
}

// Load prepares the screen for the given goal and returns the commands
// that fetch the goal and the full task list concurrently.
func (m *Model) Load(goalID int64) tea.Cmd {
	m.goalID = goalID
	m.goal = nil
	m.tasks = nil
	m.cursor = 0
	m.loading = true
	m.notFound = false
	m.banner = ""
	return m.Reload()
}

// Reload refetches the goal and the task collection. Called after every
// mutation so the derived counts stay accurate.
func (m *Model) Reload() tea.Cmd {
	c := m.client
	id := m.goalID

	loadGoal := func() tea.Msg {
		goal, err := c.GetGoal(context.Background(), id)
		return goalLoadedMsg{goal: goal, err: err}
	}
	loadTasks := func() tea.Msg {
		tasks, err := c.ListTasks(context.Background())
		return tasksLoadedMsg{tasks: tasks, err: err}
	}
	return tea.Batch(loadGoal, loadTasks)
}

// Update handles messages for the goal detail screen.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case goalLoadedMsg:
		m.loading = false
		if msg.err != nil {
			if api.IsNotFound(msg.err) {
				m.notFound = true
				return m, nil
			}
			m.banner = msg.err.Error()
			return m, nil
		}
		m.goal = msg.goal
		return m, nil

	case tasksLoadedMsg:
		if msg.err != nil {
			m.banner = msg.err.Error()
			return m, nil
		}
		m.tasks = query.Tasks(msg.tasks, query.TaskFilter{GoalID: m.goalID})
		m.summary = query.SummarizeGoalTasks(msg.tasks, m.goalID)
		if m.cursor >= len(m.tasks) {
			m.cursor = 0
		}
		return m, nil

	case mutatedMsg:
		if msg.err != nil {
			m.banner = msg.err.Error()
			return m, nil
		}
		return m, m.Reload()

	case goalDeleteResultMsg:
		if msg.err != nil {
			m.banner = msg.err.Error()
			return m, nil
		}
		return m, func() tea.Msg { return GoalDeletedMsg{} }

	case tea.KeyMsg:
		return m.handleKeys(msg)
	}

	return m, nil
}

// handleKeys processes key input for the detail screen.
func (m Model) handleKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.pendingDeleteTask != 0 || m.pendingDeleteGoal {
		if msg.String() == "y" {
			if m.pendingDeleteGoal {
				m.pendingDeleteGoal = false
				return m, m.deleteGoal()
			}
			id := m.pendingDeleteTask
			m.pendingDeleteTask = 0
			return m, m.deleteTask(id)
		}
		m.pendingDeleteTask = 0
		m.pendingDeleteGoal = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		if m.banner != "" {
			m.banner = ""
			return m, nil
		}
		return m, func() tea.Msg { return BackMsg{} }

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Select):
		if t, ok := m.selectedTask(); ok {
			return m, func() tea.Msg { return OpenTaskMsg{ID: t.ID} }
		}
		return m, nil

	case key.Matches(msg, m.keys.New):
		return m, func() tea.Msg { return NewTaskMsg{GoalID: m.goalID} }

	case key.Matches(msg, m.keys.Edit):
		if m.goal != nil {
			goal := *m.goal
			return m, func() tea.Msg { return EditGoalMsg{Goal: goal} }
		}
		return m, nil

	case key.Matches(msg, m.keys.Advance):
		if t, ok := m.selectedTask(); ok {
			return m, m.setTaskStatus(t.ID, t.NextStatus())
		}
		return m, nil

	case key.Matches(msg, m.keys.Reopen):
		if t, ok := m.selectedTask(); ok && t.Completed() {
			return m, m.setTaskStatus(t.ID, model.TaskInProgress)
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if t, ok := m.selectedTask(); ok {
			m.pendingDeleteTask = t.ID
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, m.Reload()
	}

	if msg.String() == "backspace" {
		m.pendingDeleteGoal = true
		return m, nil
	}

	return m, nil
}

func (m Model) selectedTask() (model.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return model.Task{}, false
	}
	return m.tasks[m.cursor], true
}

// setTaskStatus persists a status transition for one of the goal's
// tasks. A full reload follows so the progress and counts update.
func (m Model) setTaskStatus(taskID int64, status string) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		_, err := c.UpdateTask(context.Background(), taskID, api.TaskUpdate{
			Status: &status,
		})
		return mutatedMsg{err: err}
	}
}

// deleteTask deletes one of the goal's tasks.
func (m Model) deleteTask(taskID int64) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		err := c.DeleteTask(context.Background(), taskID)
		return mutatedMsg{err: err}
	}
}

// deleteGoal deletes the goal itself. The server cascades to its tasks.
func (m Model) deleteGoal() tea.Cmd {
	c := m.client
	id := m.goalID
	return func() tea.Msg {
		err := c.DeleteGoal(context.Background(), id)
		return goalDeleteResultMsg{err: err}
	}
}

// View renders the goal detail screen.
func (m Model) View() string {
	if m.loading {
		return ui.CenterStyle(m.width, m.height).Render("Loading goal...")
	}

	if m.notFound {
		return ui.CenterStyle(m.width, m.height).Render(
			"Goal not found.\n\nPress esc to go back.",
		)
	}

	if m.goal == nil {
		return ui.CenterStyle(m.width, m.height).Render("No goal selected")
	}

	var sections []string
	sections = append(sections, m.renderHeader())
	sections = append(sections, m.renderSummary())
	sections = append(sections, m.renderTasks())

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// renderHeader draws the goal's own fields.
func (m Model) renderHeader() string {
	g := m.goal

	title := theme.TitleStyle.Render(g.Title)

	bucket := g.StatusBucket()
	var badges []string
	badges = append(badges, theme.StatusStyle(bucket).Render(ui.StatusLabel(bucket)))
	if label := ui.PriorityLabel(g.Priority); label != "" {
		badges = append(badges, theme.PriorityStyle(g.Priority).Render(label))
	}
	if g.Category != "" {
		badges = append(badges, theme.DimmedStyle.Render("["+g.Category+"]"))
	}
	if label := ui.DeadlineLabel(g.Deadline); label != "" {
		if g.Overdue() {
			badges = append(badges, theme.OverdueStyle.Render(label))
		} else {
			badges = append(badges, theme.DueDateStyle.Render(label))
		}
	}

	lines := []string{
		title,
		strings.Join(badges, " "),
		m.renderProgressBar(),
	}
	if g.Description != "" {
		lines = append(lines, "", g.Description)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...) + "\n"
}

// renderProgressBar draws a text progress bar with the percentage.
func (m Model) renderProgressBar() string {
	g := m.goal
	const cells = 20
	filled := g.Progress * cells / 100
	if filled > cells {
		filled = cells
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", cells-filled)
	return theme.ProgressStyle(g.Progress).Render(
		fmt.Sprintf("%s %d%%", bar, g.Progress),
	)
}

// renderSummary draws the derived descendant counts.
func (m Model) renderSummary() string {
	line := fmt.Sprintf(
		"%d tasks | %d completed | %d in progress",
		m.summary.Total, m.summary.Completed, m.summary.InProgress,
	)
	if m.summary.Overdue > 0 {
		line += theme.OverdueStyle.Render(
			fmt.Sprintf(" | %d overdue", m.summary.Overdue),
		)
	}
	return theme.DimmedStyle.Render(line) + "\n"
}

// renderTasks draws the goal's tasks with a selection cursor.
func (m Model) renderTasks() string {
	if len(m.tasks) == 0 {
		return theme.DimmedStyle.Render("No tasks yet. Press n to add one.")
	}

	var lines []string
	for i, t := range m.tasks {
		var prefix string
		switch t.Status {
		case model.TaskCompleted:
			prefix = "✓"
		case model.TaskInProgress:
			prefix = "◐"
		default:
			prefix = "○"
		}

		line := fmt.Sprintf("%s %s %s",
			prefix,
			theme.StatusStyle(t.Status).Render(ui.StatusLabel(t.Status)),
			t.Title,
		)
		if label := ui.DeadlineLabel(t.DueDate); label != "" {
			if t.Overdue() {
				line += theme.OverdueStyle.Render(" " + label)
			} else {
				line += theme.DueDateStyle.Render(" " + label)
			}
		}

		if i == m.cursor {
			line = theme.SelectedItemStyle.Render(line)
		} else {
			line = theme.ListItemStyle.Render(line)
		}
		lines = append(lines, line)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// Banner returns the current error banner text, if any.
func (m Model) Banner() string {
	return m.banner
}

// Hints returns the status bar hint line for this screen.
func (m Model) Hints() string {
	if m.pendingDeleteGoal {
		return "delete goal and all its tasks? y confirm | any other key cancel"
	}
	if m.pendingDeleteTask != 0 {
		return "delete task? y confirm | any other key cancel"
	}
	return "esc back | n new task | e edit goal | x advance | o reopen | d delete task | backspace delete goal"
}

// SetSize updates the screen dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
