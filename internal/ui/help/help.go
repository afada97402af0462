// Package help renders the key binding reference shown with f1.
package help

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/glamour"

	"github.com/zjrosen/ezwrite/internal/log"
	"github.com/zjrosen/ezwrite/internal/ui/overlay"
	"github.com/zjrosen/ezwrite/internal/ui/styles"
)

// Sections names the groups returned by a KeyMap's FullHelp, in order.
var Sections = []string{"Motion", "Selection", "Editing", "General"}

// KeyMap is satisfied by keys.EditorKeyMap.
type KeyMap interface {
	FullHelp() [][]key.Binding
}

// Model is the help overlay.
type Model struct {
	keys    KeyMap
	visible bool
	width   int

	rendered string
	renderW  int
}

// New creates a hidden help overlay for km.
func New(km KeyMap) Model {
	return Model{keys: km}
}

// Toggle shows or hides the overlay.
func (m Model) Toggle() Model {
	m.visible = !m.visible
	return m
}

// Hide hides the overlay.
func (m Model) Hide() Model {
	m.visible = false
	return m
}

// Visible reports whether the overlay is showing.
func (m Model) Visible() bool {
	return m.visible
}

// SetWidth sets the terminal width the reference wraps to.
func (m Model) SetWidth(w int) Model {
	m.width = w
	return m
}

// Markdown returns the reference as a markdown document.
func Markdown(km KeyMap) string {
	var b strings.Builder
	b.WriteString("# Keys\n")
	for i, group := range km.FullHelp() {
		title := "More"
		if i < len(Sections) {
			title = Sections[i]
		}
		fmt.Fprintf(&b, "\n## %s\n\n| Key | Action |\n| --- | --- |\n", title)
		for _, binding := range group {
			if !binding.Enabled() {
				continue
			}
			h := binding.Help()
			fmt.Fprintf(&b, "| `%s` | %s |\n", h.Key, h.Desc)
		}
	}
	return b.String()
}

// Render renders the reference for width columns. glamour failures fall
// back to the raw markdown.
func Render(km KeyMap, width int) string {
	md := Markdown(km)
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(max(width-8, 20)),
	)
	if err != nil {
		log.ErrorErr(log.CatUI, "Failed to create help renderer", err)
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		log.ErrorErr(log.CatUI, "Failed to render help", err)
		return md
	}
	return strings.Trim(out, "\n")
}

// View renders the boxed reference. Rendering is cached per width.
func (m *Model) View() string {
	if m.rendered == "" || m.renderW != m.width {
		m.rendered = Render(m.keys, m.width)
		m.renderW = m.width
	}
	return styles.OverlayStyle.Render(m.rendered)
}

// Overlay draws the reference in the centre of bg.
func (m *Model) Overlay(bg string, width, height int) string {
	if !m.visible {
		return bg
	}
	return overlay.Place(overlay.Config{Width: width, Height: height, Position: overlay.Center}, m.View(), bg)
}
