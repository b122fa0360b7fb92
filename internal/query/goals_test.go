package query_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learntrack/internal/model"
	"learntrack/internal/query"
)

func goalFixture(id int64, title, priority string, progress int) model.Goal {
	return model.Goal{
		ID:        id,
		Title:     title,
		Priority:  priority,
		Progress:  progress,
		CreatedAt: time.Date(2026, 1, int(id), 0, 0, 0, 0, time.UTC),
	}
}

func TestGoalsSortByPriority(t *testing.T) {
	goals := []model.Goal{
		goalFixture(1, "learn sql", model.PriorityLow, 0),
		goalFixture(2, "learn go", model.PriorityHigh, 0),
		goalFixture(3, "learn rust", model.PriorityMedium, 0),
	}

	out := query.Goals(goals, query.GoalFilter{})

	require.Len(t, out, 3)
	assert.Equal(t, "learn go", out[0].Title)
	assert.Equal(t, "learn rust", out[1].Title)
	assert.Equal(t, "learn sql", out[2].Title)
}

func TestGoalsSortDeadlineBreaksPriorityTie(t *testing.T) {
	soon := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	later := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)

	withLater := goalFixture(1, "later deadline", model.PriorityHigh, 0)
	withLater.Deadline = &later
	withSoon := goalFixture(2, "soon deadline", model.PriorityHigh, 0)
	withSoon.Deadline = &soon
	without := goalFixture(3, "no deadline", model.PriorityHigh, 0)

	out := query.Goals([]model.Goal{without, withLater, withSoon}, query.GoalFilter{})

	require.Len(t, out, 3)
	assert.Equal(t, "soon deadline", out[0].Title)
	assert.Equal(t, "later deadline", out[1].Title)
	// A goal without a deadline always sorts after dated ones.
	assert.Equal(t, "no deadline", out[2].Title)
}

func TestGoalsSortNewestFirstWhenOtherwiseEqual(t *testing.T) {
	older := goalFixture(1, "older", model.PriorityMedium, 0)
	newer := goalFixture(2, "newer", model.PriorityMedium, 0)

	out := query.Goals([]model.Goal{older, newer}, query.GoalFilter{})

	require.Len(t, out, 2)
	assert.Equal(t, "newer", out[0].Title)
	assert.Equal(t, "older", out[1].Title)
}

func TestGoalsSearchIsCaseInsensitiveAcrossFields(t *testing.T) {
	inTitle := goalFixture(1, "Learn Spanish", "", 0)
	inDescription := goalFixture(2, "other", "", 0)
	inDescription.Description = "conversational spanish practice"
	inCategory := goalFixture(3, "something", "", 0)
	inCategory.Category = "SPANISH"
	unrelated := goalFixture(4, "learn piano", "", 0)

	out := query.Goals(
		[]model.Goal{inTitle, inDescription, inCategory, unrelated},
		query.GoalFilter{Search: "spanish"},
	)

	require.Len(t, out, 3)
	for _, g := range out {
		assert.NotEqual(t, "learn piano", g.Title)
	}
}

func TestGoalsStatusFilterUsesProgressBuckets(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		expected []int64
	}{
		{"not started", model.GoalNotStarted, []int64{1}},
		{"in progress", model.GoalInProgress, []int64{2, 3}},
		{"completed", model.GoalCompleted, []int64{4}},
	}

	goals := []model.Goal{
		goalFixture(1, "untouched", "", 0),
		goalFixture(2, "barely started", "", 1),
		goalFixture(3, "almost there", "", 99),
		goalFixture(4, "done", "", 100),
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := query.Goals(goals, query.GoalFilter{Status: tt.status})
			ids := make([]int64, 0, len(out))
			for _, g := range out {
				ids = append(ids, g.ID)
			}
			assert.ElementsMatch(t, tt.expected, ids)
		})
	}
}

func TestGoalsPriorityFilterIsExact(t *testing.T) {
	goals := []model.Goal{
		goalFixture(1, "a", model.PriorityHigh, 0),
		goalFixture(2, "b", model.PriorityMedium, 0),
		goalFixture(3, "c", "", 0),
	}

	out := query.Goals(goals, query.GoalFilter{Priority: model.PriorityHigh})

	require.Len(t, out, 1)
	assert.Equal(t, int64(1), out[0].ID)
}

func TestGoalsDoesNotMutateInput(t *testing.T) {
	goals := []model.Goal{
		goalFixture(1, "low", model.PriorityLow, 0),
		goalFixture(2, "high", model.PriorityHigh, 0),
	}

	_ = query.Goals(goals, query.GoalFilter{})

	assert.Equal(t, "low", goals[0].Title)
	assert.Equal(t, "high", goals[1].Title)
}
