package model

import "time"

// Priority levels shared by goals and tasks. The empty string means
// no priority was assigned.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Goal status buckets, derived client-side from the progress percentage.
const (
	GoalNotStarted = "not_started"
	GoalInProgress = "in_progress"
	GoalCompleted  = "completed"
)

// Goal is a learning objective with a deadline and server-computed
// completion progress. Progress is derived from the goal's tasks on the
// server; the client only overrides it via the toggle-complete action.
type Goal struct {
	ID             int64      `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	Category       string     `json:"category,omitempty"`
	Priority       string     `json:"priority,omitempty"`
	Deadline       *time.Time `json:"deadline,omitempty"`
	UserID         int64      `json:"user_id"`
	Progress       int        `json:"progress_percentage"`
	TotalTasks     int        `json:"total_tasks"`
	CompletedTasks int        `json:"completed_tasks"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// StatusBucket derives the goal's status from its progress percentage:
// not_started at 0, completed at 100, in_progress in between.
func (g Goal) StatusBucket() string {
	switch {
	case g.Progress == 0:
		return GoalNotStarted
	case g.Progress >= 100:
		return GoalCompleted
	default:
		return GoalInProgress
	}
}

// Overdue reports whether the goal's deadline has passed without the
// goal reaching full progress.
func (g Goal) Overdue() bool {
	return g.Deadline != nil && g.Deadline.Before(time.Now()) && g.Progress < 100
}

// ToggledProgress returns the progress value the toggle-complete action
// should persist: 100% goals flip to 0, everything else flips to 100.
func (g Goal) ToggledProgress() int {
	if g.Progress == 100 {
		return 0
	}
	return 100
}

// PriorityRank maps a priority label to its sort weight. Higher weights
// sort first; an unset priority sorts last.
func PriorityRank(p string) int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}
