// Package outline lists the chapters and headings of the edited tree so the
// cursor can jump between them.
package outline

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/reflow/truncate"

	"github.com/zjrosen/ezwrite/internal/document"
	"github.com/zjrosen/ezwrite/internal/importer"
	"github.com/zjrosen/ezwrite/internal/ui/overlay"
	"github.com/zjrosen/ezwrite/internal/ui/styles"
)

// Entry is one line of the outline.
type Entry struct {
	Title  string
	Depth  int         // 0 for a chapter, 1 for a heading inside it
	Target document.ID // first token of the entry
}

// JumpMsg asks the editor to move the cursor to Target.
type JumpMsg struct {
	Target document.ID
}

// Model is the outline panel.
type Model struct {
	entries  []Entry
	selected int
	visible  bool
	width    int
	zones    *zone.Manager
}

// New creates a hidden outline. zones may be nil, which disables mouse
// selection of entries.
func New(zones *zone.Manager) Model {
	return Model{zones: zones, width: 32}
}

// Build collects the entries under root. Every Document of a Book is a
// chapter; paragraphs whose first token is styled as a heading become
// entries beneath it.
func Build(tree *document.Tree, root document.ID) []Entry {
	docs := []document.ID{root}
	if tree.Kind(root) == document.KindBook {
		docs = tree.Children(root)
	}

	var entries []Entry
	for n, doc := range docs {
		first := tree.FirstLeaf(doc)
		if first == document.None {
			continue
		}
		if len(docs) > 1 {
			entries = append(entries, Entry{Title: fmt.Sprintf("Chapter %d", n+1), Target: first})
		}
		for _, para := range tree.Children(doc) {
			lead := tree.FirstLeaf(para)
			if lead == document.None || tree.Style(lead) != importer.StyleHeading {
				continue
			}
			depth := 0
			if len(docs) > 1 {
				depth = 1
			}
			if depth == 1 && lead == first && len(entries) > 0 {
				// The chapter's own title replaces its generic name.
				entries[len(entries)-1].Title = paragraphText(tree, para)
				continue
			}
			entries = append(entries, Entry{Title: paragraphText(tree, para), Depth: depth, Target: lead})
		}
	}
	return entries
}

func paragraphText(tree *document.Tree, para document.ID) string {
	return strings.TrimSpace(strings.ReplaceAll(tree.Content(para), "\n", " "))
}

// SetEntries replaces the entries, keeping the selection in range.
func (m Model) SetEntries(entries []Entry) Model {
	m.entries = entries
	m.selected = min(m.selected, max(len(entries)-1, 0))
	return m
}

// Entries returns the current entries.
func (m Model) Entries() []Entry {
	return m.entries
}

// Selected returns the highlighted entry index.
func (m Model) Selected() int {
	return m.selected
}

// Toggle shows or hides the panel.
func (m Model) Toggle() Model {
	m.visible = !m.visible
	return m
}

// Visible reports whether the panel is showing.
func (m Model) Visible() bool {
	return m.visible
}

// Up moves the highlight up.
func (m Model) Up() Model {
	m.selected = max(m.selected-1, 0)
	return m
}

// Down moves the highlight down.
func (m Model) Down() Model {
	m.selected = min(m.selected+1, max(len(m.entries)-1, 0))
	return m
}

// Choose hides the panel and returns the jump to the highlighted entry.
func (m Model) Choose() (Model, tea.Cmd) {
	if len(m.entries) == 0 {
		return m, nil
	}
	m.visible = false
	target := m.entries[m.selected].Target
	return m, func() tea.Msg { return JumpMsg{Target: target} }
}

// Click chooses the entry under a mouse press, if any.
func (m Model) Click(msg tea.MouseMsg) (Model, tea.Cmd) {
	if m.zones == nil || !m.visible {
		return m, nil
	}
	for i := range m.entries {
		if z := m.zones.Get(zoneID(i)); z != nil && z.InBounds(msg) {
			m.selected = i
			return m.Choose()
		}
	}
	return m, nil
}

func zoneID(i int) string {
	return fmt.Sprintf("outline-%d", i)
}

// View renders the panel.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(styles.OverlayTitleStyle.Render("Outline"))
	if len(m.entries) == 0 {
		b.WriteString("\n" + styles.StatusBarStyle.Render("no headings"))
	}
	for i, e := range m.entries {
		marker := "  "
		if i == m.selected {
			marker = "> "
		}
		line := marker + strings.Repeat("  ", e.Depth) + e.Title
		line = truncate.StringWithTail(line, uint(m.width), "…")
		if i == m.selected {
			line = styles.HeadingStyle.Render(line)
		}
		if m.zones != nil {
			line = m.zones.Mark(zoneID(i), line)
		}
		b.WriteString("\n" + line)
	}
	return styles.OverlayStyle.Render(b.String())
}

// Overlay draws the panel against the right edge of bg.
func (m Model) Overlay(bg string, width, height int) string {
	if !m.visible {
		return bg
	}
	return overlay.Place(overlay.Config{
		Width:    width,
		Height:   height,
		Position: overlay.Right,
		PadX:     1,
		PadY:     1,
	}, m.View(), bg)
}
