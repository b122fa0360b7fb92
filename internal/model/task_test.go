package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"learntrack/internal/model"
)

func TestTaskNextStatusCycle(t *testing.T) {
	task := model.Task{Status: model.TaskNotStarted}

	task.Status = task.NextStatus()
	assert.Equal(t, model.TaskInProgress, task.Status)

	task.Status = task.NextStatus()
	assert.Equal(t, model.TaskCompleted, task.Status)

	task.Status = task.NextStatus()
	assert.Equal(t, model.TaskNotStarted, task.Status)
}

func TestTaskNextStatusUnknownFallsToInProgress(t *testing.T) {
	task := model.Task{Status: "bogus"}
	assert.Equal(t, model.TaskInProgress, task.NextStatus())
}

func TestTaskCompleted(t *testing.T) {
	assert.True(t, model.Task{Status: model.TaskCompleted}.Completed())
	assert.False(t, model.Task{Status: model.TaskInProgress}.Completed())
}

func TestTaskOverdue(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	assert.True(t, model.Task{DueDate: &past, Status: model.TaskInProgress}.Overdue())
	assert.False(t, model.Task{DueDate: &past, Status: model.TaskCompleted}.Overdue())
	assert.False(t, model.Task{DueDate: &future, Status: model.TaskInProgress}.Overdue())
	assert.False(t, model.Task{Status: model.TaskInProgress}.Overdue())
}

func TestStatusRankOrdersActiveWorkFirst(t *testing.T) {
	assert.Greater(t, model.StatusRank(model.TaskInProgress), model.StatusRank(model.TaskNotStarted))
	assert.Greater(t, model.StatusRank(model.TaskNotStarted), model.StatusRank(model.TaskCompleted))
}
