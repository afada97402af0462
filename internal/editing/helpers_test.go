package editing

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/ezwrite/internal/document"
	"github.com/zjrosen/ezwrite/internal/testutil"
)

func newEditor(t *testing.T, f *testutil.Fixture, opts ...Option) *Editor {
	t.Helper()
	return New(f.Tree, f.Root, opts...)
}

func run(t *testing.T, ed *Editor, cmd Command) bool {
	t.Helper()
	ok, err := ed.Execute(context.Background(), cmd)
	require.NoError(t, err)
	return ok
}

// cursorAt asserts the focused token's text and word index.
func cursorAt(t *testing.T, ed *Editor, text string, idx int) {
	t.Helper()
	focus := ed.Focus()
	require.NotEqual(t, document.None, focus, "no focused token")
	require.Equal(t, text, ed.Tree().Text(focus), "focused token")
	require.Equal(t, idx, ed.Tree().CursorIndex(focus), "word index")
}

// selections lists every selected token as text[start:end].
func selections(ed *Editor) []string {
	tree := ed.Tree()
	var out []string
	for _, id := range tree.Selected(ed.Root()) {
		sel, _ := tree.SelectionOf(id)
		out = append(out, fmt.Sprintf("%s[%d:%d]", tree.Text(id), sel.Start, sel.End))
	}
	return out
}

// countKind counts live entities of kind under the fixture root.
func countKind(f *testutil.Fixture, kind document.Kind) int {
	return f.Tree.Count(f.Root, kind)
}
