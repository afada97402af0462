package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/ezwrite/internal/document"
	"github.com/zjrosen/ezwrite/internal/layout"
	"github.com/zjrosen/ezwrite/internal/textseg"
	"github.com/zjrosen/ezwrite/internal/ui/styles"
)

// renderer paints laid out tokens into terminal rows.
type renderer struct {
	tree   *document.Tree
	flow   *layout.Flow
	cursor lipgloss.Style
}

// rows renders rows [offset, offset+count) of the last layout pass.
func (r renderer) rows(offset, count int) []string {
	out := make([]string, count)
	for _, line := range r.flow.Lines() {
		if len(line) == 0 {
			continue
		}
		first, ok := r.flow.Bounds(line[0])
		if !ok || first.Y < offset || first.Y >= offset+count {
			continue
		}
		out[first.Y-offset] = r.line(line)
	}
	return out
}

// line renders one row of tokens. A cursor at the end of a token is drawn
// on the first cell after it.
func (r renderer) line(tokens []document.ID) string {
	var b strings.Builder
	col := 0
	carry := false
	for _, tok := range tokens {
		rect, ok := r.flow.Bounds(tok)
		if !ok {
			continue
		}
		if rect.X > col {
			b.WriteString(strings.Repeat(" ", rect.X-col))
		}
		b.WriteString(r.token(tok, &carry))
		col = rect.X + rect.Width
	}
	if carry {
		b.WriteString(r.cursor.Render(" "))
	}
	return b.String()
}

func (r renderer) token(tok document.ID, carry *bool) string {
	text := r.tree.Text(tok)
	base := styles.TokenStyle(r.tree.Style(tok))
	sel, selected := r.tree.SelectionOf(tok)
	at := -1
	if r.tree.Focused(tok) {
		at = r.tree.CursorIndex(tok)
	}

	cell := func(i int, g string) string {
		switch {
		case i == at, i == 0 && *carry:
			*carry = false
			return r.cursor.Render(g)
		case selected && i >= sel.Start && i < sel.End:
			return base.Background(styles.SelectionBgColor).Render(g)
		default:
			return base.Render(g)
		}
	}

	n := textseg.Len(text)
	if n == 0 || textseg.ClassOf(text) == textseg.ClassNewline {
		return cell(0, " ")
	}
	var b strings.Builder
	for i := range n {
		b.WriteString(cell(i, textseg.At(text, i)))
	}
	if at == n {
		*carry = true
	}
	return b.String()
}
