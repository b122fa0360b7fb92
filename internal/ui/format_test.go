package ui_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"learntrack/internal/ui"
)

func TestDeadlineLabel(t *testing.T) {
	now := time.Now()
	in3Days := now.AddDate(0, 0, 3)
	ago2Days := now.AddDate(0, 0, -2)
	yesterday := now.AddDate(0, 0, -1)
	y, mo, d := now.Date()
	midnightToday := time.Date(y, mo, d, 0, 0, 0, 0, time.Local)

	assert.Equal(t, "", ui.DeadlineLabel(nil))
	assert.Equal(t, "3d left", ui.DeadlineLabel(&in3Days))
	assert.Equal(t, "2d overdue", ui.DeadlineLabel(&ago2Days))
	// Calendar days, not 24h buckets: yesterday evening is already
	// "1d overdue", while a time earlier today is still "today".
	assert.Equal(t, "1d overdue", ui.DeadlineLabel(&yesterday))
	assert.Equal(t, "today", ui.DeadlineLabel(&midnightToday))
	assert.Equal(t, "today", ui.DeadlineLabel(&now))
}

func TestPriorityLabel(t *testing.T) {
	assert.Equal(t, "HIGH", ui.PriorityLabel("high"))
	assert.Equal(t, "MED", ui.PriorityLabel("medium"))
	assert.Equal(t, "LOW", ui.PriorityLabel("low"))
	assert.Equal(t, "", ui.PriorityLabel(""))
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "not started", ui.StatusLabel("not_started"))
	assert.Equal(t, "in progress", ui.StatusLabel("in_progress"))
	assert.Equal(t, "completed", ui.StatusLabel("completed"))
	// Unknown values pass through unchanged.
	assert.Equal(t, "archived", ui.StatusLabel("archived"))
}

func TestRelativeTime(t *testing.T) {
	assert.Equal(t, "", ui.RelativeTime(time.Time{}))
	assert.Equal(t, "just now", ui.RelativeTime(time.Now().Add(-30*time.Second)))
	assert.Equal(t, "5m ago", ui.RelativeTime(time.Now().Add(-5*time.Minute)))
	assert.Equal(t, "3h ago", ui.RelativeTime(time.Now().Add(-3*time.Hour-time.Minute)))
	assert.Equal(t, "2d ago", ui.RelativeTime(time.Now().Add(-49*time.Hour)))
	assert.Equal(t, "2w ago", ui.RelativeTime(time.Now().Add(-15*24*time.Hour)))
}
