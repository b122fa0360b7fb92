package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keybindings for the application.
type KeyMap struct {
	// Navigation
	Down key.Binding
	Up   key.Binding

	// Selection
	Select key.Binding

	// Back / Quit
	Back key.Binding
	Quit key.Binding

	// Screen switching
	Dashboard key.Binding
	Goals     key.Binding
	Tasks     key.Binding

	// Search
	Search key.Binding

	// Filters
	FilterStatus   key.Binding
	FilterPriority key.Binding
	FilterGoal     key.Binding
	ClearFilters   key.Binding

	// Mutations
	New     key.Binding
	Edit    key.Binding
	Delete  key.Binding
	Advance key.Binding
	Reopen  key.Binding

	// Manual refresh
	Refresh key.Binding

	// Progress chart window
	CycleWindow key.Binding

	// Help toggle
	Help key.Binding
}

// ShortHelp implements help.KeyMap for the status bar hint row.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Search, k.New, k.Select, k.Quit}
}

// FullHelp implements help.KeyMap for the help overlay.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Back, k.Quit},
		{k.Dashboard, k.Goals, k.Tasks, k.Help, k.Refresh},
		{k.Search, k.FilterStatus, k.FilterPriority, k.FilterGoal, k.ClearFilters},
		{k.New, k.Edit, k.Delete, k.Advance, k.Reopen, k.CycleWindow},
	}
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open detail"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Dashboard: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "dashboard"),
		),
		Goals: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "goals"),
		),
		Tasks: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "tasks"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		FilterStatus: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "cycle status filter"),
		),
		FilterPriority: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "cycle priority filter"),
		),
		FilterGoal: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "cycle goal filter"),
		),
		ClearFilters: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear filters"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Advance: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "advance status"),
		),
		Reopen: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "reopen"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		CycleWindow: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "cycle chart window"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
	}
}
