package editing

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/ezwrite/internal/document"
	"github.com/zjrosen/ezwrite/internal/testutil"
)

func TestClearSelection(t *testing.T) {
	f := testutil.TwoSentences(t)
	ed := newEditor(t, f)

	require.False(t, run(t, ed, ClearSelection{}), "nothing selected")

	require.True(t, run(t, ed, SelectAll{}))
	require.NotEmpty(t, selections(ed))
	focus := ed.Focus()

	require.True(t, run(t, ed, ClearSelection{}))
	require.Empty(t, selections(ed))
	require.Equal(t, focus, ed.Focus())
	require.False(t, ed.Modified())
}

func TestPlaceCursor(t *testing.T) {
	f := testutil.TwoChapters(t)
	ed := newEditor(t, f)
	require.True(t, run(t, ed, SelectAll{}))

	beta := f.Token("Beta")
	require.True(t, run(t, ed, PlaceCursor{Token: beta, Index: 2}))
	require.Equal(t, beta, ed.Focus())
	require.Equal(t, 2, f.Tree.CursorIndex(beta))
	require.Empty(t, selections(ed))
}

func TestPlaceCursor_Invalid(t *testing.T) {
	f := testutil.ItIs(t)
	ed := newEditor(t, f)

	_, err := ed.Execute(t.Context(), PlaceCursor{Token: f.Token("It"), Index: 9})
	require.ErrorIs(t, err, document.ErrInvalidCursorPosition)

	para := f.Paragraphs()[0]
	_, err = ed.Execute(t.Context(), PlaceCursor{Token: para})
	require.ErrorIs(t, err, document.ErrStructuralTypeMismatch)
}
