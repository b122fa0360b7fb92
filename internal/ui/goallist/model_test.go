package goallist

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learntrack/internal/keys"
	"learntrack/internal/model"
)

func newLoadedModel(goals []model.Goal) Model {
	m := New(nil, keys.DefaultKeyMap(), 80, 24)
	m.loading = false
	m.goals = goals
	m.applyFilter()
	return m
}

func TestDeleteRemovesExactlyTheConfirmedGoal(t *testing.T) {
	m := newLoadedModel([]model.Goal{
		{ID: 1, Title: "go"},
		{ID: 2, Title: "rust"},
		{ID: 3, Title: "zig"},
	})

	m, _ = m.Update(deletedMsg{id: 2})

	require.Len(t, m.goals, 2)
	assert.Equal(t, int64(1), m.goals[0].ID)
	assert.Equal(t, int64(3), m.goals[1].ID)
	assert.Len(t, m.list.Items(), 2)
	assert.Empty(t, m.banner)
}

func TestDeleteFailureKeepsTheCollection(t *testing.T) {
	m := newLoadedModel([]model.Goal{
		{ID: 1, Title: "go"},
		{ID: 2, Title: "rust"},
	})

	m, _ = m.Update(deletedMsg{id: 2, err: errors.New("goal not found")})

	assert.Len(t, m.goals, 2)
	assert.Equal(t, "goal not found", m.banner)
}
