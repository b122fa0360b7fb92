// Package query implements the client-side view-model logic: filtering,
// sorting, and derived groupings over collections already held in
// memory. The server is the source of truth; nothing here mutates state.
package query

import (
	"sort"
	"strings"

	"learntrack/internal/model"
)

// GoalFilter selects goals by search term, priority, and derived status
// bucket. Zero values match everything.
type GoalFilter struct {
	// Search matches case-insensitively against title, description,
	// and category.
	Search string

	// Priority is an exact match ("low", "medium", "high").
	Priority string

	// Status is a derived bucket ("not_started", "in_progress",
	// "completed").
	Status string
}

// Goals returns the goals matching the filter, sorted by priority
// descending, then deadline ascending (goals without a deadline after
// those with one), then creation date descending. The input slice is
// not modified.
func Goals(goals []model.Goal, f GoalFilter) []model.Goal {
	out := make([]model.Goal, 0, len(goals))
	for _, g := range goals {
		if matchesGoal(g, f) {
			out = append(out, g)
		}
	}
	SortGoals(out)
	return out
}

func matchesGoal(g model.Goal, f GoalFilter) bool {
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(g.Title), q) &&
			!strings.Contains(strings.ToLower(g.Description), q) &&
			!strings.Contains(strings.ToLower(g.Category), q) {
			return false
		}
	}
	if f.Priority != "" && g.Priority != f.Priority {
		return false
	}
	if f.Status != "" && g.StatusBucket() != f.Status {
		return false
	}
	return true
}

// SortGoals sorts goals in place with the list-screen ordering. The
// sort is stable so equal goals keep their relative order.
func SortGoals(goals []model.Goal) {
	sort.SliceStable(goals, func(i, j int) bool {
		a, b := goals[i], goals[j]

		ar, br := model.PriorityRank(a.Priority), model.PriorityRank(b.Priority)
		if ar != br {
			return ar > br
		}

		switch {
		case a.Deadline != nil && b.Deadline != nil:
			if !a.Deadline.Equal(*b.Deadline) {
				return a.Deadline.Before(*b.Deadline)
			}
		case a.Deadline != nil:
			return true
		case b.Deadline != nil:
			return false
		}

		return a.CreatedAt.After(b.CreatedAt)
	})
}
