package goalform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learntrack/internal/model"
)

func TestCreateSubmitBuildsGoalFromDraft(t *testing.T) {
	m := New(80, 24)
	m.StartCreate()
	m.fb.title = "  Learn Go  "
	m.fb.category = "programming"
	m.fb.priority = model.PriorityHigh
	m.fb.deadline = "2026-09-15"

	msg := m.handleSubmit()()

	created, ok := msg.(GoalCreatedMsg)
	require.True(t, ok)
	assert.Equal(t, "Learn Go", created.Goal.Title)
	assert.Equal(t, "programming", created.Goal.Category)
	assert.Equal(t, model.PriorityHigh, created.Goal.Priority)
	require.NotNil(t, created.Goal.Deadline)
	assert.Equal(t, "2026-09-15", created.Goal.Deadline.Format("2006-01-02"))
}

func TestEditSubmitNeverCarriesProgress(t *testing.T) {
	deadline := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	m := New(80, 24)
	m.StartEdit(model.Goal{
		ID:       7,
		Title:    "Learn Go",
		Priority: model.PriorityMedium,
		Deadline: &deadline,
		Progress: 37,
	})

	msg := m.handleSubmit()()

	updated, ok := msg.(GoalUpdatedMsg)
	require.True(t, ok)
	assert.Equal(t, int64(7), updated.Goal.ID)
	assert.Equal(t, "Learn Go", updated.Goal.Title)
	// Progress is derived from task completion server-side; an edit
	// must not re-send the stale percentage as an override.
	assert.Zero(t, updated.Goal.Progress)
}
