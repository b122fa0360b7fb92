package query

import (
	"sort"
	"strings"

	"learntrack/internal/model"
)

// TaskFilter selects tasks by search term, status, priority, and parent
// goal. Zero values match everything.
type TaskFilter struct {
	// Search matches case-insensitively against title and description.
	Search string

	// Status is an exact match against the task's stored status.
	Status string

	// Priority is an exact match ("low", "medium", "high").
	Priority string

	// GoalID restricts to one parent goal; 0 means all goals.
	GoalID int64
}

// Tasks returns the tasks matching the filter, sorted by status rank
// descending (in_progress, not_started, completed), then priority
// descending, then due date ascending (tasks without a due date after
// those with one), then creation date descending. The input slice is
// not modified.
func Tasks(tasks []model.Task, f TaskFilter) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if matchesTask(t, f) {
			out = append(out, t)
		}
	}
	SortTasks(out)
	return out
}

func matchesTask(t model.Task, f TaskFilter) bool {
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(t.Title), q) &&
			!strings.Contains(strings.ToLower(t.Description), q) {
			return false
		}
	}
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}
	if f.GoalID != 0 && t.GoalID != f.GoalID {
		return false
	}
	return true
}

// SortTasks sorts tasks in place with the list-screen ordering. The
// sort is stable so equal tasks keep their relative order.
func SortTasks(tasks []model.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]

		as, bs := model.StatusRank(a.Status), model.StatusRank(b.Status)
		if as != bs {
			return as > bs
		}

		ap, bp := model.PriorityRank(a.Priority), model.PriorityRank(b.Priority)
		if ap != bp {
			return ap > bp
		}

		switch {
		case a.DueDate != nil && b.DueDate != nil:
			if !a.DueDate.Equal(*b.DueDate) {
				return a.DueDate.Before(*b.DueDate)
			}
		case a.DueDate != nil:
			return true
		case b.DueDate != nil:
			return false
		}

		return a.CreatedAt.After(b.CreatedAt)
	})
}

// GoalTaskSummary is the derived per-goal task breakdown shown on the
// goal detail screen. It is recomputed from the full task collection
// after every mutation.
type GoalTaskSummary struct {
	Total      int
	Completed  int
	InProgress int
	Overdue    int
}

// SummarizeGoalTasks derives descendant counts for one goal by
// filtering the full task collection.
func SummarizeGoalTasks(tasks []model.Task, goalID int64) GoalTaskSummary {
	var sum GoalTaskSummary
	for _, t := range tasks {
		if t.GoalID != goalID {
			continue
		}
		sum.Total++
		switch t.Status {
		case model.TaskCompleted:
			sum.Completed++
		case model.TaskInProgress:
			sum.InProgress++
		}
		if t.Overdue() {
			sum.Overdue++
		}
	}
	return sum
}
