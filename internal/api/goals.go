package api

import (
	"context"
	"fmt"
	"time"

	"learntrack/internal/model"
)

// GoalCreate is the payload for creating a goal. Title is required;
// everything else is optional and omitted when empty.
type GoalCreate struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Category    string     `json:"category,omitempty"`
	Priority    string     `json:"priority,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
}

// GoalUpdate is the payload for updating a goal. Nil fields are omitted
// from the request so the server leaves them untouched.
type GoalUpdate struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Category    *string    `json:"category,omitempty"`
	Priority    *string    `json:"priority,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`

	// Progress overrides the server-derived percentage. Only the
	// toggle-complete action sets it.
	Progress *int `json:"progress_percentage,omitempty"`
}

// ListGoals fetches all goals owned by the current user.
func (c *Client) ListGoals(ctx context.Context) ([]model.Goal, error) {
	var goals []model.Goal
	if err := c.get(ctx, "/api/goals/", &goals); err != nil {
		return nil, err
	}
	return goals, nil
}

// GetGoal fetches a single goal by ID.
func (c *Client) GetGoal(ctx context.Context, id int64) (*model.Goal, error) {
	var goal model.Goal
	if err := c.get(ctx, fmt.Sprintf("/api/goals/%d", id), &goal); err != nil {
		return nil, err
	}
	return &goal, nil
}

// CreateGoal creates a new goal and returns the server's version of it.
func (c *Client) CreateGoal(ctx context.Context, req GoalCreate) (*model.Goal, error) {
	var goal model.Goal
	if err := c.post(ctx, "/api/goals/", req, &goal); err != nil {
		return nil, err
	}
	return &goal, nil
}

// UpdateGoal applies a partial update to a goal.
func (c *Client) UpdateGoal(ctx context.Context, id int64, req GoalUpdate) (*model.Goal, error) {
	var goal model.Goal
	if err := c.put(ctx, fmt.Sprintf("/api/goals/%d", id), req, &goal); err != nil {
		return nil, err
	}
	return &goal, nil
}

// DeleteGoal deletes a goal. The server cascades deletion to the goal's
// tasks; the client does not verify this.
func (c *Client) DeleteGoal(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/api/goals/%d", id))
}
