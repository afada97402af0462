package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/ezwrite/internal/document"
)

// Builder accumulates a document tree and creates it in one go.
//
//	f := testutil.NewBuilder(t).
//		Sentence(testutil.Tokens("It", " ", "is", ".", "\n")).
//		Paragraph().
//		Sentence(testutil.Tokens("Next", "\n")).
//		Build()
type Builder struct {
	t        testing.TB
	subjects document.SubjectAllocator
	book     bool
	docs     []documentData
}

// NewBuilder creates an empty builder.
func NewBuilder(t testing.TB, opts ...BuilderOption) *Builder {
	t.Helper()
	b := &Builder{t: t, subjects: &document.SequentialSubjects{}}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Document starts a new document. More than one document implies a Book.
func (b *Builder) Document() *Builder {
	b.docs = append(b.docs, documentData{})
	return b
}

// Paragraph starts a new paragraph in the current document.
func (b *Builder) Paragraph() *Builder {
	if len(b.docs) == 0 {
		b.Document()
	}
	d := &b.docs[len(b.docs)-1]
	d.paragraphs = append(d.paragraphs, paragraphData{})
	return b
}

// Sentence adds a sentence to the current paragraph, starting one if needed.
// A sentence with no tokens is left empty.
func (b *Builder) Sentence(opts ...SentenceOption) *Builder {
	if len(b.docs) == 0 || len(b.docs[len(b.docs)-1].paragraphs) == 0 {
		b.Paragraph()
	}
	d := &b.docs[len(b.docs)-1]
	p := &d.paragraphs[len(d.paragraphs)-1]
	var s sentenceData
	for _, opt := range opts {
		opt(&s)
	}
	p.sentences = append(p.sentences, s)
	return b
}

// Build creates the tree.
func (b *Builder) Build() *Fixture {
	b.t.Helper()
	tree := document.NewTree(document.WithSubjects(b.subjects))
	f := &Fixture{t: b.t, Tree: tree}
	if len(b.docs) == 0 {
		b.Document()
	}

	parent := document.None
	if b.book || len(b.docs) > 1 {
		book, err := tree.NewRoot(document.KindBook)
		require.NoError(b.t, err)
		parent = book
	}
	for _, d := range b.docs {
		doc := b.newDocument(tree, parent)
		f.Documents = append(f.Documents, doc)
		for _, p := range d.paragraphs {
			para, err := tree.New(document.KindParagraph, doc)
			require.NoError(b.t, err)
			for _, s := range p.sentences {
				sentence, err := tree.New(document.KindSentence, para)
				require.NoError(b.t, err)
				for _, tok := range s.tokens {
					_, err := tree.NewStyledToken(sentence, tok.text, tok.style)
					require.NoError(b.t, err)
				}
			}
		}
	}
	if parent != document.None {
		f.Root = parent
	} else {
		f.Root = f.Documents[0]
	}
	tree.ClearDirty(f.Root)
	return f
}

func (b *Builder) newDocument(tree *document.Tree, book document.ID) document.ID {
	b.t.Helper()
	if book == document.None {
		doc, err := tree.NewRoot(document.KindDocument)
		require.NoError(b.t, err)
		return doc
	}
	doc, err := tree.New(document.KindDocument, book)
	require.NoError(b.t, err)
	return doc
}

// Fixture is a built tree plus lookup helpers.
type Fixture struct {
	t         testing.TB
	Tree      *document.Tree
	Root      document.ID
	Documents []document.ID
}

// Token returns the first live token with the given text. The test fails if
// there is none.
func (f *Fixture) Token(text string) document.ID {
	f.t.Helper()
	return f.TokenN(text, 0)
}

// TokenN returns the n-th (0-based) live token with the given text.
func (f *Fixture) TokenN(text string, n int) document.ID {
	f.t.Helper()
	for _, id := range f.Tree.Leaves(f.Root) {
		if f.Tree.Text(id) != text {
			continue
		}
		if n == 0 {
			return id
		}
		n--
	}
	require.Failf(f.t, "token not found", "no token %q", text)
	return document.None
}

// Texts returns the text of every token in document order.
func (f *Fixture) Texts() []string {
	leaves := f.Tree.Leaves(f.Root)
	out := make([]string, 0, len(leaves))
	for _, id := range leaves {
		out = append(out, f.Tree.Text(id))
	}
	return out
}

// Content returns the concatenated text of the whole tree.
func (f *Fixture) Content() string {
	return f.Tree.Content(f.Root)
}

// Paragraphs returns every paragraph in document order.
func (f *Fixture) Paragraphs() []document.ID {
	var out []document.ID
	f.Tree.Walk(f.Root, func(id document.ID) bool {
		if f.Tree.Kind(id) == document.KindParagraph {
			out = append(out, id)
			return false
		}
		return true
	})
	return out
}

// Place puts the cursor on the first token with the given text.
func (f *Fixture) Place(text string, idx int) document.ID {
	f.t.Helper()
	id := f.Token(text)
	require.NoError(f.t, f.Tree.PlaceCursor(id, idx))
	return id
}
