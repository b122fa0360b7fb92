package api

import (
	"context"
	"fmt"
	"time"

	"learntrack/internal/model"
)

// TaskCreate is the payload for creating a task. A parent goal is
// required at creation time.
type TaskCreate struct {
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	GoalID         int64      `json:"goal_id"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	Priority       string     `json:"priority,omitempty"`
	EstimatedHours *float64   `json:"estimated_hours,omitempty"`
}

// TaskUpdate is the payload for updating a task. Nil fields are omitted
// so the server leaves them untouched. GoalID may be set to reassign the
// task to a different goal.
type TaskUpdate struct {
	Title          *string    `json:"title,omitempty"`
	Description    *string    `json:"description,omitempty"`
	Status         *string    `json:"status,omitempty"`
	GoalID         *int64     `json:"goal_id,omitempty"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	Priority       *string    `json:"priority,omitempty"`
	EstimatedHours *float64   `json:"estimated_hours,omitempty"`
}

// ListTasks fetches all tasks across the current user's goals.
func (c *Client) ListTasks(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	if err := c.get(ctx, "/api/tasks/", &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListTasksByGoal fetches the tasks belonging to one goal.
func (c *Client) ListTasksByGoal(ctx context.Context, goalID int64) ([]model.Task, error) {
	var tasks []model.Task
	if err := c.get(ctx, fmt.Sprintf("/api/tasks/goal/%d", goalID), &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTask fetches a single task by ID.
func (c *Client) GetTask(ctx context.Context, id int64) (*model.Task, error) {
	var task model.Task
	if err := c.get(ctx, fmt.Sprintf("/api/tasks/%d", id), &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// CreateTask creates a new task under its goal.
func (c *Client) CreateTask(ctx context.Context, req TaskCreate) (*model.Task, error) {
	var task model.Task
	if err := c.post(ctx, "/api/tasks/", req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask applies a partial update to a task.
func (c *Client) UpdateTask(ctx context.Context, id int64, req TaskUpdate) (*model.Task, error) {
	var task model.Task
	if err := c.put(ctx, fmt.Sprintf("/api/tasks/%d", id), req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/api/tasks/%d", id))
}
