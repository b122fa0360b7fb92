package goallist

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

// GoalsLoadedMsg is sent when the goal collection has been fetched.
type GoalsLoadedMsg struct {
	Goals []model.Goal
	Err   error
}

// OpenGoalMsg asks the parent to open the goal detail screen.
type OpenGoalMsg struct {
	ID int64
}

// NewGoalMsg asks the parent to open the goal creation form.
type NewGoalMsg struct{}

// EditGoalMsg asks the parent to open the goal edit form.
type EditGoalMsg struct {
	Goal model.Goal
}

// toggledMsg reports the result of a toggle-complete mutation.
type toggledMsg struct {
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
		model.GoalNotStarted,
		model.GoalInProgress,
		model.GoalCompleted,
	}
	priorityCycle = []string{
		"",
		model.PriorityHigh,
		model.PriorityMedium,
		model.PriorityLow,
	}
)

// Model is the goal list screen.
type Model struct {
	client        *api.Client
	keys          *keys.KeyMap
	list          list.Model
	searchInput   textinput.Model
	searchMode    bool
	filter        query.GoalFilter
	goals         []model.Goal
	loading       bool
	banner        string
	pendingDelete int64
	width         int
	height        int
}

// New creates a new goal list model.
func New(client *api.Client, k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, GoalDelegate{}, width, height-2)
	l.Title = "Learning Goals"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	si := textinput.New()
	si.Placeholder = "search goals..."
	si.Prompt = "/ "
	si.Width = width - 4

	return Model{
		client:      client,
		keys:        k,
		list:        l,
		searchInput: si,
		loading:     true,
		width:       width,
		height:      height,
	}
}

// Init returns a command that loads the goal collection.
func (m Model) Init() tea.Cmd {
	return m.LoadGoals()
}

// LoadGoals returns a tea.Cmd that fetches all goals.
func (m Model) LoadGoals() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		goals, err := c.ListGoals(context.Background())
		return GoalsLoadedMsg{Goals: goals, Err: err}
	}
}

// Update handles messages for the goal list screen.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case GoalsLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.banner = msg.Err.Error()
			return m, nil
		}
		m.goals = msg.Goals
		return m, m.applyFilter()

	case toggledMsg:
		if msg.err != nil {
			m.banner = msg.err.Error()
			return m, nil
		}
		// The server recomputed progress; reload the collection.
		return m, m.LoadGoals()

	case deletedMsg:
		if msg.err != nil {
			m.banner = msg.err.Error()
			return m, nil
		}
		// Remove locally only after server confirmation.
		kept := m.goals[:0]
		for _, g := range m.goals {
			if g.ID != msg.id {
				kept = append(kept, g)
			}
		}
		m.goals = kept
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
	// A pending delete only understands confirm or cancel.
	if m.pendingDelete != 0 {
		if msg.String() == "y" {
			id := m.pendingDelete
			m.pendingDelete = 0
			return m, m.deleteGoal(id)
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
		item, ok := m.list.SelectedItem().(GoalItem)
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return OpenGoalMsg{ID: item.Goal.ID}
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

	case key.Matches(msg, m.keys.ClearFilters):
		m.filter = query.GoalFilter{}
		m.searchInput.Reset()
		return m, m.applyFilter()

	case key.Matches(msg, m.keys.New):
		return m, func() tea.Msg { return NewGoalMsg{} }

	case key.Matches(msg, m.keys.Edit):
		item, ok := m.list.SelectedItem().(GoalItem)
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return EditGoalMsg{Goal: item.Goal}
		}

	case key.Matches(msg, m.keys.Advance):
		item, ok := m.list.SelectedItem().(GoalItem)
		if !ok {
			return m, nil
		}
		return m, m.toggleComplete(item.Goal)

	case key.Matches(msg, m.keys.Delete):
		item, ok := m.list.SelectedItem().(GoalItem)
		if !ok {
			return m, nil
		}
		m.pendingDelete = item.Goal.ID
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		return m, m.LoadGoals()
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// toggleComplete flips the goal's progress between 0 and 100 and
// persists the override server-side.
func (m Model) toggleComplete(goal model.Goal) tea.Cmd {
	c := m.client
	progress := goal.ToggledProgress()
	return func() tea.Msg {
		_, err := c.UpdateGoal(context.Background(), goal.ID, api.GoalUpdate{
			Progress: &progress,
		})
		return toggledMsg{err: err}
	}
}

// deleteGoal deletes the goal server-side. The local collection is
// updated only after confirmation.
func (m Model) deleteGoal(id int64) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		err := c.DeleteGoal(context.Background(), id)
		return deletedMsg{id: id, err: err}
	}
}

// applyFilter re-derives the visible items from the raw collection.
func (m *Model) applyFilter() tea.Cmd {
	visible := query.Goals(m.goals, m.filter)
	items := make([]list.Item, len(visible))
	for i, g := range visible {
		items[i] = GoalItem{Goal: g}
	}
	return m.list.SetItems(items)
}

// View renders the goal list screen.
func (m Model) View() string {
	if m.loading {
		return ui.CenterStyle(m.width, m.height).Render("Loading goals...")
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

// renderEmptyState shows guidance text when no goals are visible.
func (m Model) renderEmptyState() string {
	style := ui.CenterStyle(m.width, m.height)

	if m.hasFilters() {
		return style.Render("No goals match your filters.\nPress c to clear them.")
	}

	return style.Render(
		"No goals yet.\n\n" +
			"Press n to create your first learning goal.",
	)
}

func (m Model) hasFilters() bool {
	return m.filter != (query.GoalFilter{})
}

// Banner returns the current error banner text, if any.
func (m Model) Banner() string {
	return m.banner
}

// InputActive reports whether the search bar is capturing keystrokes.
func (m Model) InputActive() bool {
	return m.searchMode
}

// Hints returns the status bar hint line for this screen.
func (m Model) Hints() string {
	if m.pendingDelete != 0 {
		return "delete goal? y confirm | any other key cancel"
	}
	if m.searchMode {
		return "enter apply search | esc cancel"
	}

	summary := m.filterSummary()
	if summary != "" {
		return summary + " | c clear"
	}
	return "enter open | n new | e edit | x toggle done | d delete | / search | s status | p priority"
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
