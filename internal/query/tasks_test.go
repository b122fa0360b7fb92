package query_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learntrack/internal/model"
	"learntrack/internal/query"
)

func taskFixture(id, goalID int64, title, status, priority string) model.Task {
	return model.Task{
		ID:        id,
		GoalID:    goalID,
		Title:     title,
		Status:    status,
		Priority:  priority,
		CreatedAt: time.Date(2026, 1, int(id), 0, 0, 0, 0, time.UTC),
	}
}

func TestTasksSortStatusOutranksPriority(t *testing.T) {
	// Active work comes first even when finished work has a higher
	// priority label.
	tasks := []model.Task{
		taskFixture(1, 1, "done high", model.TaskCompleted, model.PriorityHigh),
		taskFixture(2, 1, "active low", model.TaskInProgress, model.PriorityLow),
		taskFixture(3, 1, "untouched medium", model.TaskNotStarted, model.PriorityMedium),
	}

	out := query.Tasks(tasks, query.TaskFilter{})

	require.Len(t, out, 3)
	assert.Equal(t, "active low", out[0].Title)
	assert.Equal(t, "untouched medium", out[1].Title)
	assert.Equal(t, "done high", out[2].Title)
}

func TestTasksSortPriorityBreaksStatusTie(t *testing.T) {
	tasks := []model.Task{
		taskFixture(1, 1, "low", model.TaskNotStarted, model.PriorityLow),
		taskFixture(2, 1, "high", model.TaskNotStarted, model.PriorityHigh),
	}

	out := query.Tasks(tasks, query.TaskFilter{})

	require.Len(t, out, 2)
	assert.Equal(t, "high", out[0].Title)
}

func TestTasksSortDueDateNilSortsLast(t *testing.T) {
	due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	dated := taskFixture(1, 1, "dated", model.TaskNotStarted, model.PriorityMedium)
	dated.DueDate = &due
	undated := taskFixture(2, 1, "undated", model.TaskNotStarted, model.PriorityMedium)

	out := query.Tasks([]model.Task{undated, dated}, query.TaskFilter{})

	require.Len(t, out, 2)
	assert.Equal(t, "dated", out[0].Title)
	assert.Equal(t, "undated", out[1].Title)
}

func TestTasksGoalFilter(t *testing.T) {
	tasks := []model.Task{
		taskFixture(1, 10, "a", model.TaskNotStarted, ""),
		taskFixture(2, 20, "b", model.TaskNotStarted, ""),
		taskFixture(3, 10, "c", model.TaskCompleted, ""),
	}

	out := query.Tasks(tasks, query.TaskFilter{GoalID: 10})

	require.Len(t, out, 2)
	for _, task := range out {
		assert.Equal(t, int64(10), task.GoalID)
	}
}

func TestTasksZeroGoalIDMatchesAllGoals(t *testing.T) {
	tasks := []model.Task{
		taskFixture(1, 10, "a", model.TaskNotStarted, ""),
		taskFixture(2, 20, "b", model.TaskNotStarted, ""),
	}

	out := query.Tasks(tasks, query.TaskFilter{})

	assert.Len(t, out, 2)
}

func TestTasksSearchMatchesTitleAndDescription(t *testing.T) {
	inTitle := taskFixture(1, 1, "Read Chapter 3", model.TaskNotStarted, "")
	inDescription := taskFixture(2, 1, "exercise", model.TaskNotStarted, "")
	inDescription.Description = "chapter review questions"
	unrelated := taskFixture(3, 1, "flashcards", model.TaskNotStarted, "")

	out := query.Tasks(
		[]model.Task{inTitle, inDescription, unrelated},
		query.TaskFilter{Search: "CHAPTER"},
	)

	require.Len(t, out, 2)
	for _, task := range out {
		assert.NotEqual(t, "flashcards", task.Title)
	}
}

func TestTasksStatusFilterIsExact(t *testing.T) {
	tasks := []model.Task{
		taskFixture(1, 1, "a", model.TaskInProgress, ""),
		taskFixture(2, 1, "b", model.TaskCompleted, ""),
	}

	out := query.Tasks(tasks, query.TaskFilter{Status: model.TaskInProgress})

	require.Len(t, out, 1)
	assert.Equal(t, int64(1), out[0].ID)
}

func TestSummarizeGoalTasks(t *testing.T) {
	past := time.Now().Add(-24 * time.Hour)

	overdue := taskFixture(1, 10, "late", model.TaskInProgress, "")
	overdue.DueDate = &past
	doneLate := taskFixture(2, 10, "done anyway", model.TaskCompleted, "")
	doneLate.DueDate = &past

	tasks := []model.Task{
		overdue,
		doneLate,
		taskFixture(3, 10, "fresh", model.TaskNotStarted, ""),
		taskFixture(4, 99, "other goal", model.TaskInProgress, ""),
	}

	sum := query.SummarizeGoalTasks(tasks, 10)

	assert.Equal(t, 3, sum.Total)
	assert.Equal(t, 1, sum.Completed)
	assert.Equal(t, 1, sum.InProgress)
	// A completed task past its due date is not overdue.
	assert.Equal(t, 1, sum.Overdue)
}

func TestSummarizeGoalTasksEmpty(t *testing.T) {
	sum := query.SummarizeGoalTasks(nil, 10)
	assert.Zero(t, sum)
}
