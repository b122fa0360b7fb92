package ui

import (
	"github.com/charmbracelet/lipgloss"

	"learntrack/internal/theme"
)

// Layout manages the terminal layout dimensions: a one-line header, the
// content area, an optional error banner, and a one-line status bar.
type Layout struct {
	Width           int
	Height          int
	HeaderHeight    int
	StatusBarHeight int
}

// NewLayout creates a Layout with the given terminal dimensions.
func NewLayout(width, height int) Layout {
	return Layout{
		Width:           width,
		Height:          height,
		HeaderHeight:    1,
		StatusBarHeight: 1,
	}
}

// ContentWidth returns the full available width.
func (l Layout) ContentWidth() int {
	return l.Width
}

// ContentHeight returns the height available for the main content area,
// accounting for the header and status bar.
func (l Layout) ContentHeight() int {
	return l.Height - l.HeaderHeight - l.StatusBarHeight
}

// RenderHeader renders the top header bar with a title and the session
// identity on the right.
func (l Layout) RenderHeader(title string, identity string) string {
	titleRendered := theme.HeaderStyle.Render(title)

	identityRendered := theme.HeaderStyle.
		Align(lipgloss.Right).
		Render(identity)

	gap := l.Width -
		lipgloss.Width(titleRendered) -
		lipgloss.Width(identityRendered)
	if gap < 0 {
		gap = 0
	}

	filler := theme.HeaderStyle.Render(
		lipgloss.NewStyle().
			Width(gap).
			Background(theme.HeaderStyle.GetBackground()).
			Render(""),
	)

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		titleRendered,
		filler,
		identityRendered,
	)
}

// RenderBanner renders a full-width error banner line. An empty message
// renders nothing.
func (l Layout) RenderBanner(message string) string {
	if message == "" {
		return ""
	}
	return theme.BannerStyle.Width(l.Width).Render(message + "  (esc to dismiss)")
}

// RenderStatusBar renders the bottom status bar with keyboard hints.
func (l Layout) RenderStatusBar(hints string) string {
	rendered := theme.StatusBarStyle.Render(hints)

	gap := l.Width - lipgloss.Width(rendered)
	if gap < 0 {
		gap = 0
	}

	filler := theme.StatusBarStyle.Render(
		lipgloss.NewStyle().
			Width(gap).
			Background(theme.StatusBarStyle.GetBackground()).
			Render(""),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered, filler)
}

// RenderWithFrame composes a full terminal view by vertically joining
// the header, an optional banner, the content area, and the status bar.
func (l Layout) RenderWithFrame(header, banner, content, statusBar string) string {
	if banner == "" {
		return lipgloss.JoinVertical(
			lipgloss.Left,
			header,
			content,
			statusBar,
		)
	}
	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		banner,
		content,
		statusBar,
	)
}

// CenterStyle centers placeholder text (loading, empty, not-found
// states) in the content area.
func CenterStyle(width, height int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)
}
