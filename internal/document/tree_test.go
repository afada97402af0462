package document_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/ezwrite/internal/document"
	"github.com/zjrosen/ezwrite/internal/testutil"
)

func newTree() *document.Tree {
	return document.NewTree(document.WithSubjects(&document.SequentialSubjects{}))
}

func TestNew_RejectsWrongKind(t *testing.T) {
	tree := newTree()
	doc, err := tree.NewRoot(document.KindDocument)
	require.NoError(t, err)

	_, err = tree.New(document.KindToken, doc)
	require.ErrorIs(t, err, document.ErrStructuralTypeMismatch)

	var mismatch *document.MismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, document.KindSentence, mismatch.Want)
	assert.Equal(t, document.KindDocument, mismatch.Got)
}

func TestNewRoot_OnlyBookOrDocument(t *testing.T) {
	tree := newTree()

	_, err := tree.NewRoot(document.KindParagraph)
	require.ErrorIs(t, err, document.ErrStructuralTypeMismatch)

	book, err := tree.NewRoot(document.KindBook)
	require.NoError(t, err)
	doc, err := tree.New(document.KindDocument, book)
	require.NoError(t, err)
	require.Equal(t, book, tree.Parent(doc))
}

func TestAddChild_Reparents(t *testing.T) {
	f := testutil.TwoParagraphs(t)
	tree := f.Tree
	paras := f.Paragraphs()
	moved := tree.FirstChild(paras[1])

	require.NoError(t, tree.AddChild(paras[0], moved))

	require.Equal(t, paras[0], tree.Parent(moved))
	require.Equal(t, moved, tree.LastChild(paras[0]))
	require.False(t, tree.HasChildren(paras[1]))
	require.True(t, tree.Dirty(paras[0]))
	require.True(t, tree.Dirty(paras[1]))
}

func TestAddChild_RejectsTokenInDocument(t *testing.T) {
	f := testutil.ItIs(t)

	err := f.Tree.AddChild(f.Root, f.Token("It"))
	require.ErrorIs(t, err, document.ErrStructuralTypeMismatch)
	require.Equal(t, []string{"It", " ", "is", ".", "\n"}, f.Texts())
}

func TestRemoveChild(t *testing.T) {
	f := testutil.ItIs(t)
	tree := f.Tree
	is := f.Token("is")
	sentence := tree.Parent(is)

	require.True(t, tree.RemoveChild(sentence, is))
	require.False(t, tree.RemoveChild(sentence, is))
	require.Equal(t, document.None, tree.Parent(is))
	require.True(t, tree.Alive(is))
	require.Equal(t, "It .\n", f.Content())
}

func TestChildNavigation(t *testing.T) {
	f := testutil.ItIs(t)
	tree := f.Tree
	sentence := tree.Parent(f.Token("It"))

	require.Equal(t, f.Token("It"), tree.FirstChild(sentence))
	require.Equal(t, f.Token("\n"), tree.LastChild(sentence))
	require.Equal(t, f.Token("is"), tree.ChildAfter(sentence, f.Token(" ")))
	require.Equal(t, f.Token(" "), tree.ChildBefore(sentence, f.Token("is")))
	require.Equal(t, document.None, tree.ChildBefore(sentence, f.Token("It")))
	require.Equal(t, document.None, tree.ChildAfter(sentence, f.Token("\n")))
	require.Equal(t, 2, tree.IndexOf(f.Token("is")))
}

func TestZap_RemovesSubtree(t *testing.T) {
	f := testutil.TwoParagraphs(t)
	tree := f.Tree
	second := f.Paragraphs()[1]
	leaves := tree.Leaves(second)
	require.NoError(t, tree.PlaceCursor(leaves[0], 0))

	tree.Zap(second)

	require.False(t, tree.Alive(second))
	for _, id := range leaves {
		require.False(t, tree.Alive(id))
		require.Equal(t, document.KindInvalid, tree.Kind(id))
	}
	require.Equal(t, document.None, tree.Focus())
	require.Equal(t, "First one.\n", f.Content())
	require.Len(t, f.Paragraphs(), 1)

	// Zapping twice is harmless.
	tree.Zap(second)
	require.Len(t, f.Paragraphs(), 1)
}

func TestCleanupEmptyContainers(t *testing.T) {
	f := testutil.NewBuilder(t).
		Sentence(testutil.Tokens("a")).
		Sentence().
		Paragraph().
		Paragraph().
		Sentence().
		Sentence().
		Paragraph().
		Sentence(testutil.Tokens("b")).
		Build()
	tree := f.Tree

	// one empty sentence, one empty paragraph, two empty sentences plus the
	// paragraph that held them
	require.Equal(t, 5, tree.CleanupEmptyContainers(f.Root))
	require.Equal(t, 0, tree.CleanupEmptyContainers(f.Root))
	require.Len(t, f.Paragraphs(), 2)
	require.Equal(t, []string{"a", "b"}, f.Texts())
}

func TestCleanupEmptyContainers_KeepsRoot(t *testing.T) {
	tree := newTree()
	doc, err := tree.NewRoot(document.KindDocument)
	require.NoError(t, err)
	_, err = tree.New(document.KindParagraph, doc)
	require.NoError(t, err)

	require.Equal(t, 1, tree.CleanupEmptyContainers(doc))
	require.True(t, tree.Alive(doc))
	require.False(t, tree.HasChildren(doc))
}

func TestMarkDirty_PropagatesToRoot(t *testing.T) {
	f := testutil.TwoParagraphs(t)
	tree := f.Tree
	one := f.TokenN("one", 1)

	tree.MarkDirty(one)

	require.True(t, tree.Dirty(one))
	require.True(t, tree.Dirty(tree.Parent(one)))
	require.True(t, tree.Dirty(f.Paragraphs()[1]))
	require.True(t, tree.Dirty(f.Root))
	require.False(t, tree.Dirty(f.Paragraphs()[0]))

	tree.ClearDirty(f.Root)
	require.False(t, tree.Dirty(one))
	require.False(t, tree.Dirty(f.Root))
}

func TestInsertToken(t *testing.T) {
	f := testutil.ItIs(t)
	tree := f.Tree
	is := f.Token("is")

	before, err := tree.InsertTokenBefore(is, "not", "em")
	require.NoError(t, err)
	_, err = tree.InsertTokenAfter(before, " ", "")
	require.NoError(t, err)

	require.Equal(t, "It not is.\n", f.Content())
	require.Equal(t, "em", tree.Style(before))

	_, err = tree.InsertTokenBefore(tree.Parent(is), "x", "")
	require.ErrorIs(t, err, document.ErrStructuralTypeMismatch)
}

func TestCopySentence_FreshIdentities(t *testing.T) {
	f := testutil.TwoParagraphs(t)
	tree := f.Tree
	paras := f.Paragraphs()
	src := tree.FirstChild(paras[1])

	dup, err := tree.CopySentence(paras[0], src)
	require.NoError(t, err)

	require.Equal(t, tree.Content(src), tree.Content(dup))
	orig := tree.Leaves(src)
	copied := tree.Leaves(dup)
	require.Len(t, copied, len(orig))
	for i := range orig {
		require.NotEqual(t, orig[i], copied[i])
		require.NotEqual(t, tree.Subject(orig[i]), tree.Subject(copied[i]))
	}
}

func TestSubjects(t *testing.T) {
	tree := newTree()
	doc, err := tree.NewRoot(document.KindDocument)
	require.NoError(t, err)
	require.Equal(t, "document-1", tree.Subject(doc))

	uuidTree := document.NewTree()
	doc, err = uuidTree.NewRoot(document.KindDocument)
	require.NoError(t, err)
	require.Regexp(t, `^urn:uuid:[0-9a-f-]{36}$`, uuidTree.Subject(doc))
}

func TestRootDocument(t *testing.T) {
	f := testutil.TwoChapters(t)
	tree := f.Tree

	require.Equal(t, f.Documents[0], tree.RootDocument(f.Token("Alpha")))
	require.Equal(t, f.Documents[1], tree.RootDocument(f.Token("Beta")))
	require.Equal(t, f.Root, tree.Root(f.Token("Beta")))
	require.Equal(t, document.None, tree.RootDocument(f.Root))
}

func TestDump(t *testing.T) {
	f := testutil.NewBuilder(t).Sentence(testutil.Tokens("Hi", "\n")).Build()
	require.NoError(t, f.Tree.PlaceCursor(f.Token("Hi"), 1))
	require.NoError(t, f.Tree.Select(f.Token("\n"), document.Selection{Start: 0, End: 1}))

	var buf bytes.Buffer
	require.NoError(t, f.Tree.Dump(&buf, f.Root))

	want := "document (1)\n" +
		"  paragraph (1)\n" +
		"    sentence (2)\n" +
		"      token \"Hi\" cursor=1\n" +
		"      token \"\\n\" sel=[0,1)\n"
	require.Equal(t, want, buf.String())
}
