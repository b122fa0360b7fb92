package goallist

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"learntrack/internal/model"
	"learntrack/internal/theme"
	"learntrack/internal/ui"
)

// GoalItem wraps a model.Goal so it can be used in a bubbles/list.
type GoalItem struct {
	Goal model.Goal
}

// FilterValue returns the string used for fuzzy filtering.
func (i GoalItem) FilterValue() string { return i.Goal.Title }

// Title returns the goal title for the list.
func (i GoalItem) Title() string { return i.Goal.Title }

// Description returns a short summary line for the list.
func (i GoalItem) Description() string {
	parts := []string{
		ui.StatusLabel(i.Goal.StatusBucket()),
		fmt.Sprintf("%d%%", i.Goal.Progress),
	}
	return strings.Join(parts, " | ")
}

// GoalDelegate implements list.ItemDelegate for rendering goal rows.
type GoalDelegate struct{}

// Height returns the number of lines each item takes.
func (d GoalDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d GoalDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d GoalDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single goal row.
func (d GoalDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	gi, ok := item.(GoalItem)
	if !ok {
		return
	}
	g := gi.Goal

	var prefix string
	if g.Progress == 100 {
		prefix = "✓"
	} else {
		prefix = "○"
	}

	bucket := g.StatusBucket()
	statusBadge := theme.StatusStyle(bucket).Render(ui.StatusLabel(bucket))

	priBadge := ""
	if label := ui.PriorityLabel(g.Priority); label != "" {
		priBadge = theme.PriorityStyle(g.Priority).Render(label) + " "
	}

	progress := theme.ProgressStyle(g.Progress).
		Render(fmt.Sprintf("%3d%%", g.Progress))

	tasks := theme.DimmedStyle.
		Render(fmt.Sprintf("%d/%d tasks", g.CompletedTasks, g.TotalTasks))

	categoryBadge := ""
	if g.Category != "" {
		categoryBadge = theme.DimmedStyle.Render(" [" + g.Category + "]")
	}

	deadlineStr := ""
	if label := ui.DeadlineLabel(g.Deadline); label != "" {
		if g.Overdue() {
			deadlineStr = theme.OverdueStyle.Render(" " + label)
		} else {
			deadlineStr = theme.DueDateStyle.Render(" " + label)
		}
	}

	line := fmt.Sprintf(
		"%s %s %s%s %s %s%s%s",
		prefix, statusBadge, priBadge, g.Title,
		progress, tasks, categoryBadge, deadlineStr,
	)

	if g.Progress == 100 {
		line = theme.DimmedStyle.Render(line)
	}

	if index == m.Index() {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}
