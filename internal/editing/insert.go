package editing

import (
	"github.com/rivo/uniseg"

	"github.com/zjrosen/ezwrite/internal/document"
	"github.com/zjrosen/ezwrite/internal/textseg"
)

func (ed *Editor) insert(text string) (Outcome, error) {
	if text == "" {
		return Skipped, nil
	}
	if len(ed.tree.Selected(ed.root)) > 0 {
		if _, err := ed.deleteSelection(); err != nil {
			return Skipped, err
		}
	}
	ed.anchor = nil

	state := -1
	for len(text) > 0 {
		var g string
		g, text, _, state = uniseg.StepString(text, state)
		out, err := ed.insertGrapheme(g)
		if err != nil || out != Executed {
			return out, err
		}
	}
	return Executed, nil
}

// insertGrapheme inserts one grapheme at the cursor. Text of the token's own
// class grows the token; anything else becomes a token of its own, splitting
// the token when the cursor is mid-word. Insertion never merges across
// containers.
func (ed *Editor) insertGrapheme(g string) (Outcome, error) {
	tree := ed.tree
	leaf := tree.Focus()
	if leaf == document.None {
		return ed.insertIntoEmpty(g)
	}
	idx := tree.CursorIndex(leaf)

	// The start of a token is the end of the previous one in its sentence.
	if idx == 0 {
		if prev := tree.PreviousPeer(leaf); prev != document.None && tree.Parent(prev) == tree.Parent(leaf) {
			leaf, idx = prev, tree.Len(prev)
		}
	}

	text := tree.Text(leaf)
	style := tree.Style(leaf)
	class := textseg.ClassOf(g)

	if textseg.Mergeable(class) && textseg.ClassOf(text) == class {
		return ed.growAt(leaf, idx, g)
	}

	n := textseg.Len(text)
	if idx == n {
		next := tree.NextPeer(leaf)
		if next != document.None && tree.Parent(next) == tree.Parent(leaf) &&
			textseg.Mergeable(class) && textseg.ClassOf(tree.Text(next)) == class {
			return ed.growAt(next, 0, g)
		}
	}

	ed.engine.structural = true
	var (
		tok document.ID
		err error
	)
	switch idx {
	case n:
		tok, err = tree.InsertTokenAfter(leaf, g, style)
	case 0:
		tok, err = tree.InsertTokenBefore(leaf, g, style)
	default:
		if err = tree.SetText(leaf, textseg.Slice(text, 0, idx)); err != nil {
			return Skipped, err
		}
		if tok, err = tree.InsertTokenAfter(leaf, g, style); err != nil {
			return Skipped, err
		}
		_, err = tree.InsertTokenAfter(tok, textseg.Slice(text, idx, n), style)
	}
	if err != nil {
		return Skipped, err
	}
	return Executed, tree.PlaceCursor(tok, textseg.Len(g))
}

func (ed *Editor) growAt(leaf document.ID, idx int, g string) (Outcome, error) {
	if err := ed.tree.SetText(leaf, textseg.Insert(ed.tree.Text(leaf), idx, g)); err != nil {
		return Skipped, err
	}
	return Executed, ed.tree.PlaceCursor(leaf, idx+textseg.Len(g))
}

// insertIntoEmpty starts the first paragraph of a tree with no tokens.
func (ed *Editor) insertIntoEmpty(g string) (Outcome, error) {
	tree := ed.tree
	if tree.FirstLeaf(ed.root) != document.None {
		return Skipped, nil
	}
	doc := ed.root
	if tree.Kind(doc) == document.KindBook {
		if doc = tree.FirstChild(ed.root); doc == document.None {
			return Skipped, nil
		}
	}
	para, err := tree.New(document.KindParagraph, doc)
	if err != nil {
		return Skipped, err
	}
	sentence, err := tree.New(document.KindSentence, para)
	if err != nil {
		return Skipped, err
	}
	tok, err := tree.NewToken(sentence, g)
	if err != nil {
		return Skipped, err
	}
	ed.engine.structural = true
	return Executed, tree.PlaceCursor(tok, textseg.Len(g))
}
