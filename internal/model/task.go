package model

import "time"

// Task status values as stored by the server.
const (
	TaskNotStarted = "not_started"
	TaskInProgress = "in_progress"
	TaskCompleted  = "completed"
)

// Task is an actionable unit of work belonging to exactly one goal.
// Reassignment to another goal is permitted via update.
type Task struct {
	ID             int64      `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	Status         string     `json:"status"`
	GoalID         int64      `json:"goal_id"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	Priority       string     `json:"priority,omitempty"`
	EstimatedHours *float64   `json:"estimated_hours,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// NextStatus returns the status the single "advance" affordance moves to:
// not_started -> in_progress -> completed -> not_started.
func (t Task) NextStatus() string {
	switch t.Status {
	case TaskNotStarted:
		return TaskInProgress
	case TaskInProgress:
		return TaskCompleted
	case TaskCompleted:
		return TaskNotStarted
	default:
		return TaskInProgress
	}
}

// Completed reports whether the task has reached its terminal status.
func (t Task) Completed() bool {
	return t.Status == TaskCompleted
}

// Overdue reports whether the task's due date has passed without the
// task being completed.
func (t Task) Overdue() bool {
	return t.DueDate != nil && t.DueDate.Before(time.Now()) && t.Status != TaskCompleted
}

// StatusRank maps a task status to its sort weight. Active work sorts
// before untouched work, which sorts before finished work.
func StatusRank(s string) int {
	switch s {
	case TaskInProgress:
		return 3
	case TaskNotStarted:
		return 2
	case TaskCompleted:
		return 1
	default:
		return 0
	}
}
