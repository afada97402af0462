package editing

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/ezwrite/internal/document"
	"github.com/zjrosen/ezwrite/internal/testutil"
)

func TestInsertCharacter(t *testing.T) {
	tests := []struct {
		name      string
		at        string
		idx       int
		text      string
		wantTexts []string
		wantFocus string
		wantIdx   int
	}{
		{
			name: "grows a word", at: "It", idx: 2, text: "s",
			wantTexts: []string{"Its", " ", "is", ".", "\n"},
			wantFocus: "Its", wantIdx: 3,
		},
		{
			name: "prepends to the next word", at: "is", idx: 0, text: "x",
			wantTexts: []string{"It", " ", "xis", ".", "\n"},
			wantFocus: "xis", wantIdx: 1,
		},
		{
			name: "splits a word", at: "It", idx: 1, text: " ",
			wantTexts: []string{"I", " ", "t", " ", "is", ".", "\n"},
			wantFocus: " ", wantIdx: 1,
		},
		{
			name: "new token after punctuation", at: ".", idx: 1, text: "ab",
			wantTexts: []string{"It", " ", "is", ".", "ab", "\n"},
			wantFocus: "ab", wantIdx: 2,
		},
		{
			name: "punctuation never merges", at: ".", idx: 1, text: "!",
			wantTexts: []string{"It", " ", "is", ".", "!", "\n"},
			wantFocus: "!", wantIdx: 1,
		},
		{
			name: "grows whitespace", at: " ", idx: 1, text: " ",
			wantTexts: []string{"It", "  ", "is", ".", "\n"},
			wantFocus: "  ", wantIdx: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := testutil.ItIs(t)
			ed := newEditor(t, f)
			f.Place(tt.at, tt.idx)

			require.True(t, run(t, ed, InsertCharacter{Text: tt.text}))

			require.Equal(t, tt.wantTexts, f.Texts())
			cursorAt(t, ed, tt.wantFocus, tt.wantIdx)
			require.True(t, ed.Modified())
		})
	}
}

func TestInsertCharacter_ReplacesSelection(t *testing.T) {
	f := testutil.NewBuilder(t).Sentence(testutil.Tokens("x", "abcdef")).Build()
	ed := newEditor(t, f)
	require.NoError(t, f.Tree.Select(f.Token("abcdef"), document.Selection{Start: 2, End: 4}))

	require.True(t, run(t, ed, InsertCharacter{Text: "Z"}))

	require.Equal(t, []string{"x", "abZef"}, f.Texts())
	cursorAt(t, ed, "abZef", 3)
	require.Empty(t, selections(ed))
}

func TestInsertCharacter_Graphemes(t *testing.T) {
	f := testutil.NewBuilder(t).Sentence(testutil.Tokens("caf", "\n")).Build()
	ed := newEditor(t, f)
	f.Place("caf", 3)

	require.True(t, run(t, ed, InsertCharacter{Text: "és"}))

	cursorAt(t, ed, "cafés", 5)
}

func TestInsertCharacter_EmptyTree(t *testing.T) {
	f := testutil.NewBuilder(t).Document().Build()
	ed := newEditor(t, f)
	require.Equal(t, document.None, ed.Focus())

	require.True(t, run(t, ed, InsertCharacter{Text: "a"}))

	require.Equal(t, []string{"a"}, f.Texts())
	cursorAt(t, ed, "a", 1)
	require.Equal(t, 1, countKind(f, document.KindParagraph))
	require.Equal(t, 1, countKind(f, document.KindSentence))
}

func TestInsertCharacter_Empty(t *testing.T) {
	f := testutil.ItIs(t)
	ed := newEditor(t, f)

	require.False(t, run(t, ed, InsertCharacter{}))
	require.False(t, ed.Modified())
}

func TestInsertThenDeleteRestoresText(t *testing.T) {
	f := testutil.TwoSentences(t)
	before := f.Content()
	ed := newEditor(t, f)
	f.Place("there", 3)

	require.True(t, run(t, ed, InsertCharacter{Text: "abc"}))
	for range 3 {
		require.True(t, run(t, ed, DeleteLeft{}))
	}

	require.Equal(t, before, f.Content())
	cursorAt(t, ed, "there", 3)
}
