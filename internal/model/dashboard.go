package model

import "time"

// DashboardStats is the server-computed aggregate for the dashboard
// screen. It is recomputed on every fetch and never mutated locally.
type DashboardStats struct {
	TotalGoals        int `json:"total_goals"`
	TotalTasks        int `json:"total_tasks"`
	CompletedTasks    int `json:"completed_tasks"`
	InProgressTasks   int `json:"in_progress_tasks"`
	OverdueTasks      int `json:"overdue_tasks"`
	UpcomingDeadlines int `json:"upcoming_deadlines"`
}

// DashboardData bundles the stats with bounded recent/upcoming lists.
// The client additionally truncates the lists for display.
type DashboardData struct {
	Stats         DashboardStats `json:"stats"`
	RecentGoals   []Goal         `json:"recent_goals"`
	UpcomingTasks []Task         `json:"upcoming_tasks"`
}

// ProgressPoint is one day in the completion-over-time series.
type ProgressPoint struct {
	Date           time.Time `json:"date"`
	CompletedTasks int       `json:"completed_tasks"`
	TotalTasks     int       `json:"total_tasks"`
	CompletionRate float64   `json:"completion_rate"`
}

// ProgressSeries is the server response for the progress-over-time fetch.
type ProgressSeries struct {
	ProgressData []ProgressPoint `json:"progress_data"`
	TotalDays    int             `json:"total_days"`
}
