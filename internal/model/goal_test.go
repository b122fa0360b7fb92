package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"learntrack/internal/model"
)

func TestGoalStatusBucket(t *testing.T) {
	tests := []struct {
		progress int
		expected string
	}{
		{0, model.GoalNotStarted},
		{1, model.GoalInProgress},
		{50, model.GoalInProgress},
		{99, model.GoalInProgress},
		{100, model.GoalCompleted},
	}

	for _, tt := range tests {
		g := model.Goal{Progress: tt.progress}
		assert.Equal(t, tt.expected, g.StatusBucket(), "progress %d", tt.progress)
	}
}

func TestGoalToggledProgress(t *testing.T) {
	assert.Equal(t, 100, model.Goal{Progress: 0}.ToggledProgress())
	assert.Equal(t, 100, model.Goal{Progress: 60}.ToggledProgress())
	assert.Equal(t, 0, model.Goal{Progress: 100}.ToggledProgress())
}

func TestGoalToggleTwiceFromPartialLandsAtZero(t *testing.T) {
	// Toggling a partially complete goal marks it done; toggling again
	// resets it rather than restoring the old percentage.
	g := model.Goal{Progress: 60}
	g.Progress = g.ToggledProgress()
	assert.Equal(t, 100, g.Progress)
	g.Progress = g.ToggledProgress()
	assert.Equal(t, 0, g.Progress)
}

func TestGoalOverdue(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	assert.True(t, model.Goal{Deadline: &past, Progress: 50}.Overdue())
	assert.False(t, model.Goal{Deadline: &past, Progress: 100}.Overdue())
	assert.False(t, model.Goal{Deadline: &future, Progress: 50}.Overdue())
	assert.False(t, model.Goal{Progress: 50}.Overdue())
}

func TestPriorityRank(t *testing.T) {
	assert.Greater(t, model.PriorityRank(model.PriorityHigh), model.PriorityRank(model.PriorityMedium))
	assert.Greater(t, model.PriorityRank(model.PriorityMedium), model.PriorityRank(model.PriorityLow))
	assert.Greater(t, model.PriorityRank(model.PriorityLow), model.PriorityRank(""))
}
