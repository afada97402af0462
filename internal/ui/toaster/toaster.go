// Package toaster shows short-lived notices over the editor.
package toaster

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/zjrosen/ezwrite/internal/ui/overlay"
	"github.com/zjrosen/ezwrite/internal/ui/styles"
)

// Style determines the border colour, icon and lifetime of the toast.
type Style int

const (
	StyleSuccess Style = iota
	StyleError
	StyleInfo
	StyleWarn
)

type look struct {
	icon   string
	border lipgloss.AdaptiveColor
	ttl    time.Duration
}

// Warnings and errors usually ask the writer to do something, so they stay
// up longer.
var looks = map[Style]look{
	StyleSuccess: {"✓ ", styles.ToastBorderSuccessColor, DefaultDuration},
	StyleError:   {"✗ ", styles.ToastBorderErrorColor, 2 * DefaultDuration},
	StyleInfo:    {"i ", styles.ToastBorderInfoColor, DefaultDuration},
	StyleWarn:    {"! ", styles.ToastBorderWarnColor, 2 * DefaultDuration},
}

// DefaultDuration is how long a success or info toast stays up.
const DefaultDuration = 3 * time.Second

// Model holds the toaster state. Each Show bumps seq so that only the latest
// toast's dismissal hides it.
type Model struct {
	message string
	style   Style
	seq     int
}

// New creates a hidden toaster.
func New() Model {
	return Model{}
}

// Show displays message and returns the command that dismisses it.
func (m Model) Show(message string, style Style) (Model, tea.Cmd) {
	m.message = message
	m.style = style
	m.seq++
	return m, dismissAfter(m.seq, m.look().ttl)
}

// Duration reports how long a toast of style stays up.
func Duration(style Style) time.Duration {
	if l, ok := looks[style]; ok {
		return l.ttl
	}
	return DefaultDuration
}

func (m Model) look() look {
	if l, ok := looks[m.style]; ok {
		return l
	}
	return looks[StyleSuccess]
}

// Update handles DismissMsg.
func (m Model) Update(msg tea.Msg) Model {
	if d, ok := msg.(DismissMsg); ok && d.seq == m.seq {
		m.message = ""
	}
	return m
}

// Visible returns whether the toast is showing.
func (m Model) Visible() bool {
	return m.message != ""
}

// Message returns the text being shown.
func (m Model) Message() string {
	return m.message
}

// View renders the toast box, truncating the message so the box fits in
// maxWidth columns. A maxWidth of zero disables truncation.
func (m Model) View(maxWidth int) string {
	if !m.Visible() {
		return ""
	}
	l := m.look()
	content := l.icon + m.message
	if maxWidth > 0 {
		// Border and padding take two columns each side.
		content = truncate.StringWithTail(content, uint(max(maxWidth-4, 1)), "…")
	}
	return lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(l.border).
		Render(content)
}

// Overlay renders the toast one row above the bottom of bg.
func (m Model) Overlay(bg string, width, height int) string {
	if !m.Visible() {
		return bg
	}
	return overlay.Place(overlay.Config{
		Width:    width,
		Height:   height,
		Position: overlay.Bottom,
		PadY:     1,
	}, m.View(width), bg)
}

// DismissMsg hides the toast it was scheduled for.
type DismissMsg struct{ seq int }

func dismissAfter(seq int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return DismissMsg{seq: seq}
	})
}
