package tasklist

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

// TaskItem wraps a model.Task so it can be used in a bubbles/list.
type TaskItem struct {
	Task model.Task
}

// FilterValue returns the string used for fuzzy filtering.
func (i TaskItem) FilterValue() string { return i.Task.Title }

// Title returns the task title for the list.
func (i TaskItem) Title() string { return i.Task.Title }

// Description returns a short summary line for the list.
func (i TaskItem) Description() string {
	parts := []string{
		ui.StatusLabel(i.Task.Status),
		ui.RelativeTime(i.Task.UpdatedAt),
	}
	return strings.Join(parts, " | ")
}

// TaskDelegate implements list.ItemDelegate for rendering task rows.
type TaskDelegate struct {
	// goalTitles maps goal IDs to titles for the parent-goal badge.
	// Shared by reference with the tasklist Model so loads are visible.
	goalTitles map[int64]string
}

// Height returns the number of lines each item takes.
func (d TaskDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d TaskDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d TaskDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single task row.
func (d TaskDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ti, ok := item.(TaskItem)
	if !ok {
		return
	}
	t := ti.Task

	var prefix string
	switch t.Status {
	case model.TaskCompleted:
		prefix = "✓"
	case model.TaskInProgress:
		prefix = "◐"
	default:
		prefix = "○"
	}

	statusBadge := theme.StatusStyle(t.Status).Render(ui.StatusLabel(t.Status))

	priBadge := ""
	if label := ui.PriorityLabel(t.Priority); label != "" {
		priBadge = theme.PriorityStyle(t.Priority).Render(label) + " "
	}

	goalBadge := ""
	if title := d.goalTitles[t.GoalID]; title != "" {
		goalBadge = theme.DimmedStyle.Render(" ← " + title)
	}

	dueStr := ""
	if label := ui.DeadlineLabel(t.DueDate); label != "" {
		if t.Overdue() {
			dueStr = theme.OverdueStyle.Render(" " + label)
		} else {
			dueStr = theme.DueDateStyle.Render(" " + label)
		}
	}

	line := fmt.Sprintf(
		"%s %s %s%s%s%s",
		prefix, statusBadge, priBadge, t.Title, goalBadge, dueStr,
	)

	if t.Completed() {
		line = theme.DimmedStyle.Render(line)
	}

	if index == m.Index() {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}
