package tasklist

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"learntrack/internal/api"
	"learntrack/internal/keys"
	"learntrack/internal/model"
	"learntrack/internal/query"
	"learntrack/internal/theme"
	"learntrack/internal/ui"
)

// TasksLoadedMsg is sent when the task collection has been fetched.
type TasksLoadedMsg struct {
	Tasks []model.Task
	Err   error
}

// goalsLoadedMsg carries the goal collection used for titles and the
// goal filter cycle.
type goalsLoadedMsg struct {
	goals []model.Goal
	err   error
}

// OpenTaskMsg asks the parent to open the task detail screen.
type OpenTaskMsg struct {
	ID int64
}

// NewTaskMsg asks the parent to open the task creation form.
type NewTaskMsg struct{}

// EditTaskMsg asks the parent to open the task edit form.
type EditTaskMsg struct {
	Task model.Task
}

// advancedMsg reports the result of a status-advance mutation.
type advancedMsg struct {
	err error
}

// deletedMsg reports the result of a delete mutation.
type deletedMsg struct {
	id  int64
	err error
}

// statusCycle and priorityCycle define the filter values stepped
// through by the s and p keys. Empty string means no filter.
var (
	statusCycle = []string{
		"",
		model.TaskInProgress,
		model.TaskNotStarted,
		model.TaskCompleted,
	}
	priorityCycle = []string{
		"",
		model.PriorityHigh,
		model.PriorityMedium,
		model.PriorityLow,
	}
)

// Model is the task list screen.
type Model struct {
	client        *api.Client
	keys          *keys.KeyMap
	list          list.Model
	searchInput   textinput.Model
	searchMode    bool
	filter        query.TaskFilter
	tasks         []model.Task
	goals         []model.Goal
	goalTitles    map[int64]string
	loading       bool
	banner        string
	pendingDelete int64
	width         int
	height        int
}

// New creates a new task list model.
func New(client *api.Client, k *keys.KeyMap, width, height int) Model {
	delegate := TaskDelegate{goalTitles: map[int64]string{}}
	l := list.New([]list.Item{}, delegate, width, height-2)
	l.Title = "Tasks"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	si := textinput.New()
	si.Placeholder = "search tasks..."
	si.Prompt = "/ "
	si.Width = width - 4

	return Model{
		client:      client,
		keys:        k,
		list:        l,
		searchInput: si,
		goalTitles:  delegate.goalTitles,
		loading:     true,
		width:       width,
		height:      height,
	}
}

// Init loads tasks and the goals needed for display names.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.LoadTasks(), m.loadGoals())
}

// LoadTasks returns a tea.Cmd that fetches all tasks.
func (m Model) LoadTasks() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		tasks, err := c.ListTasks(context.Background())
		return TasksLoadedMsg{Tasks: tasks, Err: err}
	}
}

// loadGoals fetches the goal collection for titles and filtering.
func (m Model) loadGoals() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		goals, err := c.ListGoals(context.Background())
		return goalsLoadedMsg{goals: goals, err: err}
	}
}

// Update handles messages for the task list screen.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TasksLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.banner = msg.Err.Error()
			return m, nil
		}
		m.tasks = msg.Tasks
		return m, m.applyFilter()

	case goalsLoadedMsg:
		// Goal titles are decoration; a failure here is not fatal to
		// the task list itself.
		if msg.err == nil {
			m.goals = msg.goals
			for _, g := range msg.goals {
				m.goalTitles[g.ID] = g.Title
			}
		}
		return m, nil

	case advancedMsg:
		if msg.err != nil {
			m.banner = msg.err.Error()
			return m, nil
		}
		return m, m.LoadTasks()

	case deletedMsg:
		if msg.err != nil {
			m.banner = msg.err.Error()
			return m, nil
		}
		kept := m.tasks[:0]
		for _, t := range m.tasks {
			if t.ID != msg.id {
				kept = append(kept, t)
			}
		}
		m.tasks = kept
		return m, m.applyFilter()

	case tea.KeyMsg:
		if m.searchMode {
			return m.handleSearchKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleSearchKeys processes key input while the search bar is focused.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		m.filter.Search = m.searchInput.Value()
		return m, m.applyFilter()

	case "esc":
		m.searchMode = false
		m.searchInput.Reset()
		m.filter.Search = ""
		return m, m.applyFilter()
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// handleNormalKeys processes key input in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.pendingDelete != 0 {
		if msg.String() == "y" {
			id := m.pendingDelete
			m.pendingDelete = 0
			return m, m.deleteTask(id)
		}
		m.pendingDelete = 0
		return m, nil
	}

	if msg.String() == "esc" && m.banner != "" {
		m.banner = ""
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Select):
		item, ok := m.list.SelectedItem().(TaskItem)
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return OpenTaskMsg{ID: item.Task.ID}
		}

	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.searchInput.Reset()
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.FilterStatus):
		m.filter.Status = cycleNext(statusCycle, m.filter.Status)
		return m, m.applyFilter()

	case key.Matches(msg, m.keys.FilterPriority):
		m.filter.Priority = cycleNext(priorityCycle, m.filter.Priority)
		return m, m.applyFilter()

	case key.Matches(msg, m.keys.FilterGoal):
		m.filter.GoalID = m.nextGoalFilter()
		return m, m.applyFilter()

	case key.Matches(msg, m.keys.ClearFilters):
		m.filter = query.TaskFilter{}
		m.searchInput.Reset()
		return m, m.applyFilter()

	case key.Matches(msg, m.keys.New):
		return m, func() tea.Msg { return NewTaskMsg{} }

	case key.Matches(msg, m.keys.Edit):
		item, ok := m.list.SelectedItem().(TaskItem)
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return EditTaskMsg{Task: item.Task}
		}

	case key.Matches(msg, m.keys.Advance):
		item, ok := m.list.SelectedItem().(TaskItem)
		if !ok {
			return m, nil
		}
		return m, m.advanceStatus(item.Task)

	case key.Matches(msg, m.keys.Delete):
		item, ok := m.list.SelectedItem().(TaskItem)
		if !ok {
			return m, nil
		}
		m.pendingDelete = item.Task.ID
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		return m, tea.Batch(m.LoadTasks(), m.loadGoals())
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// nextGoalFilter cycles the goal filter through all known goals and
// back to "all".
func (m Model) nextGoalFilter() int64 {
	if len(m.goals) == 0 {
		return 0
	}
	if m.filter.GoalID == 0 {
		return m.goals[0].ID
	}
	for i, g := range m.goals {
		if g.ID == m.filter.GoalID {
			if i+1 < len(m.goals) {
				return m.goals[i+1].ID
			}
			return 0
		}
	}
	return 0
}

// advanceStatus moves the task one step along the status cycle and
// persists it server-side.
func (m Model) advanceStatus(task model.Task) tea.Cmd {
	c := m.client
	next := task.NextStatus()
	return func() tea.Msg {
		_, err := c.UpdateTask(context.Background(), task.ID, api.TaskUpdate{
			Status: &next,
		})
		return advancedMsg{err: err}
	}
}

// deleteTask deletes the task server-side. The local collection is
// updated only after confirmation.
func (m Model) deleteTask(id int64) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		err := c.DeleteTask(context.Background(), id)
		return deletedMsg{id: id, err: err}
	}
}

// applyFilter re-derives the visible items from the raw collection.
func (m *Model) applyFilter() tea.Cmd {
	visible := query.Tasks(m.tasks, m.filter)
	items := make([]list.Item, len(visible))
	for i, t := range visible {
		items[i] = TaskItem{Task: t}
	}
	return m.list.SetItems(items)
}

// View renders the task list screen.
func (m Model) View() string {
	if m.loading {
		return ui.CenterStyle(m.width, m.height).Render("Loading tasks...")
	}

	if m.searchMode {
		searchBar := lipgloss.NewStyle().
			Foreground(theme.ColorWhite).
			Padding(0, 1).
			Render(m.searchInput.View())
		return lipgloss.JoinVertical(lipgloss.Left, searchBar, m.list.View())
	}

	if len(m.list.Items()) == 0 {
		return m.renderEmptyState()
	}

	return m.list.View()
}

// renderEmptyState shows guidance text when no tasks are visible.
func (m Model) renderEmptyState() string {
	style := ui.CenterStyle(m.width, m.height)

	if m.hasFilters() {
		return style.Render("No tasks match your filters.\nPress c to clear them.")
	}

	return style.Render(
		"No tasks yet.\n\n" +
			"Press n to create a task under one of your goals.",
	)
}

func (m Model) hasFilters() bool {
	return m.filter != (query.TaskFilter{})
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

// InputActive reports whether the search bar is capturing keystrokes.
func (m Model) InputActive() bool {
	return m.searchMode
}

// Hints returns the status bar hint line for this screen.
func (m Model) Hints() string {
	if m.pendingDelete != 0 {
		return "delete task? y confirm | any other key cancel"
	}
	if m.searchMode {
		return "enter apply search | esc cancel"
	}

	summary := m.filterSummary()
	if summary != "" {
		return summary + " | c clear"
	}
	return "enter open | n new | e edit | x advance | d delete | / search | s status | p priority | g goal"
}

// filterSummary describes the active filters for the status bar.
func (m Model) filterSummary() string {
	var parts []string
	if m.filter.Search != "" {
		parts = append(parts, "search:"+m.filter.Search)
	}
	if m.filter.Status != "" {
		parts = append(parts, "status:"+m.filter.Status)
	}
	if m.filter.Priority != "" {
		parts = append(parts, "priority:"+m.filter.Priority)
	}
	if m.filter.GoalID != 0 {
		title := m.goalTitles[m.filter.GoalID]
		if title == "" {
			title = "?"
		}
		parts = append(parts, "goal:"+title)
	}
	if len(parts) == 0 {
		return ""
	}
	out := parts[0]
	for _, p := range parts[1:] {
		out += " " + p
	}
	return out
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
	m.searchInput.Width = width - 4
}

// cycleNext steps to the value after current in the cycle, wrapping.
func cycleNext(cycle []string, current string) string {
	for i, v := range cycle {
		if v == current {
			return cycle[(i+1)%len(cycle)]
		}
	}
	return cycle[0]
}
