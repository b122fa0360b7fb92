package ui

import (
	"fmt"
	"math"
	"time"
)

// RelativeTime returns a human-friendly "how long ago" string.
func RelativeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		mins := int(d.Minutes())
		if mins == 1 {
			return "1m ago"
		}
		return fmt.Sprintf("%dm ago", mins)
	case d < 24*time.Hour:
		hrs := int(d.Hours())
		if hrs == 1 {
			return "1h ago"
		}
		return fmt.Sprintf("%dh ago", hrs)
	case d < 7*24*time.Hour:
		days := int(d.Hours() / 24)
		if days == 1 {
			return "1d ago"
		}
		return fmt.Sprintf("%dd ago", days)
	default:
		weeks := int(d.Hours() / 24 / 7)
		if weeks == 1 {
			return "1w ago"
		}
		return fmt.Sprintf("%dw ago", weeks)
	}
}

// DeadlineLabel returns a short countdown for a deadline or due date:
// "today", "3d left", or "2d overdue". Counted in whole calendar days,
// so yesterday is "1d overdue" no matter the clock time. A nil date
// returns "".
func DeadlineLabel(t *time.Time) string {
	if t == nil {
		return ""
	}

	days := calendarDaysUntil(*t)
	switch {
	case days == 0:
		return "today"
	case days > 0:
		return fmt.Sprintf("%dd left", days)
	default:
		return fmt.Sprintf("%dd overdue", -days)
	}
}

// calendarDaysUntil counts whole local calendar days from today to t,
// negative for past dates. Rounded so DST transitions do not skew the
// count.
func calendarDaysUntil(t time.Time) int {
	y, mo, d := time.Now().Date()
	today := time.Date(y, mo, d, 0, 0, 0, 0, time.Local)
	y, mo, d = t.In(time.Local).Date()
	that := time.Date(y, mo, d, 0, 0, 0, 0, time.Local)
	return int(math.Round(that.Sub(today).Hours() / 24))
}

// PriorityLabel returns a short badge for a priority label, or "" when
// no priority is set.
func PriorityLabel(p string) string {
	switch p {
	case "high":
		return "HIGH"
	case "medium":
		return "MED"
	case "low":
		return "LOW"
	default:
		return ""
	}
}

// StatusLabel returns the display form of a status value.
func StatusLabel(s string) string {
	switch s {
	case "not_started":
		return "not started"
	case "in_progress":
		return "in progress"
	case "completed":
		return "completed"
	default:
		return s
	}
}
