package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"learntrack/internal/keys"
	"learntrack/internal/model"
)

func TestTruncateGoalsCapsAtLimit(t *testing.T) {
	goals := make([]model.Goal, 5)
	assert.Len(t, truncateGoals(goals, recentGoalLimit), 3)
	assert.Len(t, truncateGoals(goals[:2], recentGoalLimit), 2)
	assert.Empty(t, truncateGoals(nil, recentGoalLimit))
}

func TestTruncateTasksCapsAtLimit(t *testing.T) {
	tasks := make([]model.Task, 9)
	assert.Len(t, truncateTasks(tasks, upcomingTaskLimit), 4)
	assert.Len(t, truncateTasks(tasks[:1], upcomingTaskLimit), 1)
}

func TestNextWindowCycles(t *testing.T) {
	assert.Equal(t, 30, nextWindow(7))
	assert.Equal(t, 90, nextWindow(30))
	assert.Equal(t, 180, nextWindow(90))
	assert.Equal(t, 365, nextWindow(180))
	assert.Equal(t, 7, nextWindow(365))
	// Unknown values reset to the first window.
	assert.Equal(t, 7, nextWindow(42))
}

func TestEmptyDashboardRendersEmptyStates(t *testing.T) {
	// A fresh account has no goals, no due tasks, and no activity; each
	// section shows a prompt instead of an error or a blank area.
	m := New(nil, keys.DefaultKeyMap(), 30, 80, 24)
	m.data = &model.DashboardData{}
	m.series = &model.ProgressSeries{}

	view := m.View()

	assert.Contains(t, view, "No goals yet")
	assert.Contains(t, view, "Nothing due soon")
	assert.Contains(t, view, "No activity in this window yet")
}
