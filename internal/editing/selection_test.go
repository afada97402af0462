package editing

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/ezwrite/internal/document"
	"github.com/zjrosen/ezwrite/internal/testutil"
)

var helloToWorld = []string{
	"Hello[2:5]", " [0:1]", "there[0:5]", ".[0:1]", " [0:1]", "World[0:3]",
}

func TestDragSelect_AcrossSentences(t *testing.T) {
	f := testutil.TwoSentences(t)
	ed := newEditor(t, f)

	require.True(t, run(t, ed, DragSelect{
		Press: f.Token("Hello"), PressIndex: 2,
		Release: f.Token("World"), ReleaseIndex: 3,
	}))

	require.Equal(t, helloToWorld, selections(ed))
	cursorAt(t, ed, "World", 3)
	require.False(t, ed.Modified())
}

func TestDragSelect_Backwards(t *testing.T) {
	f := testutil.TwoSentences(t)
	ed := newEditor(t, f)

	require.True(t, run(t, ed, DragSelect{
		Press: f.Token("World"), PressIndex: 3,
		Release: f.Token("Hello"), ReleaseIndex: 2,
	}))

	require.Equal(t, helloToWorld, selections(ed))
	cursorAt(t, ed, "Hello", 2)
}

func TestDragSelect_WithinToken(t *testing.T) {
	f := testutil.TwoSentences(t)
	ed := newEditor(t, f)
	there := f.Token("there")

	require.True(t, run(t, ed, DragSelect{Press: there, PressIndex: 4, Release: there, ReleaseIndex: 1}))

	require.Equal(t, []string{"there[1:4]"}, selections(ed))
}

func TestDragSelect_ReplacesPreviousSelection(t *testing.T) {
	f := testutil.TwoSentences(t)
	ed := newEditor(t, f)
	require.True(t, run(t, ed, SelectAll{}))

	require.True(t, run(t, ed, DragSelect{
		Press: f.Token("peace"), PressIndex: 0,
		Release: f.Token("peace"), ReleaseIndex: 5,
	}))

	require.Equal(t, []string{"peace[0:5]"}, selections(ed))
}

func TestDragSelect_RejectsContainers(t *testing.T) {
	f := testutil.TwoSentences(t)
	ed := newEditor(t, f)

	_, err := ed.Execute(t.Context(), DragSelect{
		Press: f.Documents[0], Release: f.Token("World"), ReleaseIndex: 1,
	})

	require.ErrorIs(t, err, document.ErrStructuralTypeMismatch)
	require.Empty(t, selections(ed))
}

func TestSelectAll(t *testing.T) {
	f := testutil.ItIs(t)
	ed := newEditor(t, f)

	require.True(t, run(t, ed, SelectAll{}))

	require.Equal(t, []string{"It[0:2]", " [0:1]", "is[0:2]", ".[0:1]", "\n[0:1]"}, selections(ed))
	cursorAt(t, ed, "\n", 1)
}

func TestSelectAll_EmptyTree(t *testing.T) {
	f := testutil.NewBuilder(t).Document().Build()
	ed := newEditor(t, f)

	require.False(t, run(t, ed, SelectAll{}))
}

func TestDragSelect_OrderIndependent(t *testing.T) {
	rapid.Check(t, func(r *rapid.T) {
		f := testutil.TwoParagraphs(t)
		leaves := f.Tree.Leaves(f.Root)
		pick := func(label string) position {
			leaf := leaves[rapid.IntRange(0, len(leaves)-1).Draw(r, label)]
			idx := rapid.IntRange(0, f.Tree.Len(leaf)).Draw(r, label+"-index")
			return position{leaf, idx}
		}
		a, b := pick("a"), pick("b")

		ed := New(f.Tree, f.Root)
		_, err := ed.applySelection(a, b)
		require.NoError(r, err)
		forward := selections(ed)

		_, err = ed.applySelection(b, a)
		require.NoError(r, err)
		require.Equal(r, forward, selections(ed))

		// Every token strictly between the endpoints is selected whole.
		lo, hi := indexOf(leaves, a.leaf), indexOf(leaves, b.leaf)
		if lo > hi {
			lo, hi = hi, lo
		}
		for _, leaf := range leaves[lo+1 : max(hi, lo+1)] {
			if leaf == a.leaf || leaf == b.leaf {
				continue
			}
			sel, ok := f.Tree.SelectionOf(leaf)
			require.True(r, ok)
			require.Equal(r, document.Selection{Start: 0, End: f.Tree.Len(leaf)}, sel)
		}
	})
}

func indexOf(ids []document.ID, id document.ID) int {
	for i, x := range ids {
		if x == id {
			return i
		}
	}
	return -1
}
