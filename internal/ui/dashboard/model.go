package dashboard

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"learntrack/internal/api"
	"learntrack/internal/keys"
	"learntrack/internal/model"
	"learntrack/internal/theme"
	"learntrack/internal/ui"
)

// OpenGoalMsg asks the parent to open the goal detail screen.
type OpenGoalMsg struct {
	ID int64
}

// OpenTaskMsg asks the parent to open the task detail screen.
type OpenTaskMsg struct {
	ID int64
}

// dataLoadedMsg carries the aggregated dashboard payload.
type dataLoadedMsg struct {
	data *model.DashboardData
	err  error
}

// progressLoadedMsg carries the progress series for the current window.
type progressLoadedMsg struct {
	series *model.ProgressSeries
	err    error
}

// windows are the selectable progress chart spans in days.
var windows = []int{7, 30, 90, 180, 365}

const (
	recentGoalLimit   = 3
	upcomingTaskLimit = 4
)

// section identifies which dashboard list the cursor is in.
type section int

const (
	sectionGoals section = iota
	sectionTasks
)

// Model is the dashboard screen: summary counts, recent goals, upcoming
// tasks, and the completion trend chart.
type Model struct {
	client  *api.Client
	keys    *keys.KeyMap
	data    *model.DashboardData
	series  *model.ProgressSeries
	window  int
	cursor  int
	section section
	loading bool
	banner  string
	width   int
	height  int
}

// New creates a new dashboard model. The initial chart window comes
// from configuration.
func New(client *api.Client, k *keys.KeyMap, window, width, height int) Model {
	if !validWindow(window) {
		window = windows[0]
	}
	return Model{
		client: client,
		keys:   k,
		window: window,
		width:  width,
		height: height,
	}
}

func validWindow(days int) bool {
	for _, w := range windows {
		if w == days {
			return true
		}
	}
	return false
}

// Load returns the commands that fetch the dashboard payload and the
// progress series concurrently.
func (m *Model) Load() tea.Cmd {
	m.loading = true
	m.banner = ""
	return tea.Batch(m.loadData(), m.loadProgress())
}

func (m Model) loadData() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		data, err := c.Dashboard(context.Background())
		return dataLoadedMsg{data: data, err: err}
	}
}

func (m Model) loadProgress() tea.Cmd {
	c := m.client
	days := m.window
	return func() tea.Msg {
		series, err := c.Progress(context.Background(), days)
		return progressLoadedMsg{series: series, err: err}
	}
}

// Update handles messages for the dashboard screen.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dataLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.banner = msg.err.Error()
			return m, nil
		}
		m.data = msg.data
		m.cursor = 0
		m.section = sectionGoals
		return m, nil

	case progressLoadedMsg:
		if msg.err != nil {
			m.banner = msg.err.Error()
			return m, nil
		}
		m.series = msg.series
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)
	}

	return m, nil
}

// handleKeys processes key input for the dashboard.
func (m Model) handleKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.banner = ""
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
		return m, nil

	case key.Matches(msg, m.keys.Select):
		return m, m.openSelection()

	case key.Matches(msg, m.keys.CycleWindow):
		m.window = nextWindow(m.window)
		return m, m.loadProgress()

	case key.Matches(msg, m.keys.Refresh):
		return m, m.Load()
	}

	return m, nil
}

// moveCursor steps the cursor through the recent goals and then the
// upcoming tasks as one continuous list.
func (m *Model) moveCursor(delta int) {
	goals, tasks := m.visibleLists()
	total := len(goals) + len(tasks)
	if total == 0 {
		return
	}

	flat := m.flatIndex(len(goals)) + delta
	if flat < 0 {
		flat = 0
	}
	if flat > total-1 {
		flat = total - 1
	}

	if flat < len(goals) {
		m.section = sectionGoals
		m.cursor = flat
	} else {
		m.section = sectionTasks
		m.cursor = flat - len(goals)
	}
}

func (m Model) flatIndex(goalCount int) int {
	if m.section == sectionTasks {
		return goalCount + m.cursor
	}
	return m.cursor
}

// openSelection emits the navigation message for the highlighted entry.
func (m Model) openSelection() tea.Cmd {
	goals, tasks := m.visibleLists()
	if m.section == sectionGoals && m.cursor < len(goals) {
		id := goals[m.cursor].ID
		return func() tea.Msg { return OpenGoalMsg{ID: id} }
	}
	if m.section == sectionTasks && m.cursor < len(tasks) {
		id := tasks[m.cursor].ID
		return func() tea.Msg { return OpenTaskMsg{ID: id} }
	}
	return nil
}

// visibleLists truncates the payload to the dashboard's display limits.
func (m Model) visibleLists() ([]model.Goal, []model.Task) {
	if m.data == nil {
		return nil, nil
	}
	goals := truncateGoals(m.data.RecentGoals, recentGoalLimit)
	tasks := truncateTasks(m.data.UpcomingTasks, upcomingTaskLimit)
	return goals, tasks
}

func truncateGoals(goals []model.Goal, limit int) []model.Goal {
	if len(goals) > limit {
		return goals[:limit]
	}
	return goals
}

func truncateTasks(tasks []model.Task, limit int) []model.Task {
	if len(tasks) > limit {
		return tasks[:limit]
	}
	return tasks
}

// nextWindow steps to the next chart span, wrapping around.
func nextWindow(current int) int {
	for i, w := range windows {
		if w == current {
			return windows[(i+1)%len(windows)]
		}
	}
	return windows[0]
}

// View renders the dashboard screen.
func (m Model) View() string {
	if m.loading {
		return ui.CenterStyle(m.width, m.height).Render("Loading dashboard...")
	}

	if m.data == nil {
		return ui.CenterStyle(m.width, m.height).Render("No dashboard data")
	}

	sections := []string{
		m.renderStats(),
		m.renderRecentGoals(),
		m.renderUpcomingTasks(),
		m.renderChart(),
	}

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// renderStats draws the summary count cards.
func (m Model) renderStats() string {
	s := m.data.Stats

	cards := []string{
		statCard("Goals", s.TotalGoals),
		statCard("Tasks", s.TotalTasks),
		statCard("Done", s.CompletedTasks),
		statCard("Active", s.InProgressTasks),
		statCard("Due soon", s.UpcomingDeadlines),
	}
	if s.OverdueTasks > 0 {
		cards = append(cards, overdueCard(s.OverdueTasks))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, cards...) + "\n"
}

func statCard(label string, value int) string {
	return theme.CardStyle.Render(fmt.Sprintf(
		"%s\n%s",
		theme.DimmedStyle.Render(label),
		theme.TitleStyle.Render(fmt.Sprintf("%d", value)),
	))
}

func overdueCard(value int) string {
	return theme.CardStyle.Render(fmt.Sprintf(
		"%s\n%s",
		theme.DimmedStyle.Render("Overdue"),
		theme.OverdueStyle.Render(fmt.Sprintf("%d", value)),
	))
}

// renderRecentGoals draws the recent goals list.
func (m Model) renderRecentGoals() string {
	goals, _ := m.visibleLists()

	lines := []string{theme.HeaderStyle.Render("Recent goals")}
	if len(goals) == 0 {
		lines = append(lines, theme.DimmedStyle.Render("  No goals yet. Press G then n to create one."))
	}
	for i, g := range goals {
		line := fmt.Sprintf("%s %s",
			g.Title,
			theme.ProgressStyle(g.Progress).Render(fmt.Sprintf("%d%%", g.Progress)),
		)
		if m.section == sectionGoals && i == m.cursor {
			line = theme.SelectedItemStyle.Render(line)
		} else {
			line = theme.ListItemStyle.Render(line)
		}
		lines = append(lines, line)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...) + "\n"
}

// renderUpcomingTasks draws the upcoming tasks list.
func (m Model) renderUpcomingTasks() string {
	_, tasks := m.visibleLists()

	lines := []string{theme.HeaderStyle.Render("Upcoming tasks")}
	if len(tasks) == 0 {
		lines = append(lines, theme.DimmedStyle.Render("  Nothing due soon."))
	}
	for i, t := range tasks {
		line := t.Title
		if label := ui.DeadlineLabel(t.DueDate); label != "" {
			if t.Overdue() {
				line += theme.OverdueStyle.Render(" " + label)
			} else {
				line += theme.DueDateStyle.Render(" " + label)
			}
		}
		if m.section == sectionTasks && i == m.cursor {
			line = theme.SelectedItemStyle.Render(line)
		} else {
			line = theme.ListItemStyle.Render(line)
		}
		lines = append(lines, line)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...) + "\n"
}

// renderChart draws the completion trend for the selected window.
func (m Model) renderChart() string {
	header := theme.HeaderStyle.Render(
		fmt.Sprintf("Completion trend (%dd)", m.window),
	)

	if m.series == nil || len(m.series.ProgressData) == 0 {
		return header + "\n" + theme.DimmedStyle.Render("  No activity in this window yet.")
	}

	completed := make([]float64, len(m.series.ProgressData))
	for i, p := range m.series.ProgressData {
		completed[i] = float64(p.CompletedTasks)
	}

	chartWidth := m.width - 12
	if chartWidth < 20 {
		chartWidth = 20
	}

	graph := asciigraph.Plot(completed,
		asciigraph.Height(6),
		asciigraph.Width(chartWidth),
		asciigraph.Caption("tasks completed per day"),
	)

	last := m.series.ProgressData[len(m.series.ProgressData)-1]
	rate := theme.DimmedStyle.Render(
		fmt.Sprintf("latest completion rate: %.0f%%", last.CompletionRate),
	)

	return lipgloss.JoinVertical(lipgloss.Left, header, graph, rate)
}

// Banner returns the current error banner text, if any.
func (m Model) Banner() string {
	return m.banner
}

// Hints returns the status bar hint line for this screen.
func (m Model) Hints() string {
	return "enter open | j/k move | w cycle chart window | r refresh"
}

// SetSize updates the screen dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
