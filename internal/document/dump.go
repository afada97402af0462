package document

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Dump writes an indented outline of root, one entity per line. Tokens show
// their quoted text plus cursor and selection markers.
func (t *Tree) Dump(w io.Writer, root ID) error {
	var err error
	depth := map[ID]int{}
	t.Walk(root, func(id ID) bool {
		if err != nil {
			return false
		}
		d := 0
		if p := t.Parent(id); p != None && id != root {
			d = depth[p] + 1
		}
		depth[id] = d
		_, err = fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", d), t.describe(id))
		return true
	})
	return err
}

func (t *Tree) describe(id ID) string {
	e := &t.nodes[id]
	if e.kind != KindToken {
		return fmt.Sprintf("%s (%d)", e.kind, len(e.children))
	}
	var b strings.Builder
	b.WriteString("token ")
	b.WriteString(strconv.Quote(e.text))
	if e.style != "" {
		b.WriteString(" style=")
		b.WriteString(e.style)
	}
	if e.focused {
		fmt.Fprintf(&b, " cursor=%d", e.cursor)
	}
	if e.selected {
		fmt.Fprintf(&b, " sel=[%d,%d)", e.selection.Start, e.selection.End)
	}
	return b.String()
}
