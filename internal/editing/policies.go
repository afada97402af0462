package editing

import (
	"github.com/zjrosen/ezwrite/internal/document"
	"github.com/zjrosen/ezwrite/internal/log"
	"github.com/zjrosen/ezwrite/internal/textseg"
)

// ============================================================================
// Token level
// ============================================================================

// tokenPolicy handles every edit confined to one token and the case where a
// token simply disappears at either end of the tree.
type tokenPolicy struct {
	e *engine
}

func (p *tokenPolicy) DeleteCharacterLeft(leaf document.ID) (Outcome, error) {
	tree := p.e.tree
	idx, n := tree.CursorIndex(leaf), tree.Len(leaf)

	switch {
	case idx == 0:
		prev := tree.PreviousPeer(leaf)
		if prev == document.None {
			return Skipped, nil
		}
		if tree.RootDocument(prev) != tree.RootDocument(leaf) {
			log.Debug(log.CatEdit, "refusing delete-left across document boundary")
			return Skipped, nil
		}
		if err := tree.PlaceCursor(prev, tree.Len(prev)); err != nil {
			return Skipped, err
		}
		out, err := p.e.deleteLeft(prev)
		if out != Executed && tree.Alive(leaf) {
			_ = tree.PlaceCursor(leaf, 0)
		}
		return out, err

	case idx == 1 && n == 1:
		prev, next := tree.PreviousPeer(leaf), tree.NextPeer(leaf)
		if prev != document.None && next != document.None {
			return PassThrough, nil
		}
		p.e.zap(leaf)
		switch {
		case prev != document.None:
			return Executed, tree.PlaceCursor(prev, tree.Len(prev))
		case next != document.None:
			return Executed, tree.PlaceCursor(next, 0)
		}
		return Executed, nil

	default:
		if err := tree.SetText(leaf, textseg.Delete(tree.Text(leaf), idx-1, idx)); err != nil {
			return Skipped, err
		}
		return Executed, tree.PlaceCursor(leaf, idx-1)
	}
}

func (p *tokenPolicy) DeleteSelection(leaf document.ID) (Outcome, error) {
	tree := p.e.tree
	sel, ok := tree.SelectionOf(leaf)
	if !ok {
		return Skipped, nil
	}
	text := tree.Text(leaf)
	n := textseg.Len(text)

	var kept string
	cursor := 0
	switch {
	case sel.Start == 0 && sel.End >= n:
		p.e.zap(leaf)
		return Executed, nil
	case sel.Start > 0 && sel.End <= n:
		kept, cursor = textseg.Delete(text, sel.Start, sel.End), sel.Start
	case sel.Start > 0:
		kept, cursor = textseg.Slice(text, 0, sel.Start), sel.Start
	case sel.End > 0:
		kept = textseg.Slice(text, sel.End, n)
	default:
		return Skipped, nil
	}
	if err := tree.SetText(leaf, kept); err != nil {
		return Skipped, err
	}
	tree.Deselect(leaf)
	return Executed, tree.PlaceCursor(leaf, cursor)
}

// ============================================================================
// Sentence level
// ============================================================================

// sentencePolicy stitches together the neighbours of a vanished token when
// both live in the same sentence.
type sentencePolicy struct {
	e *engine
}

func (p *sentencePolicy) DeleteCharacterLeft(leaf document.ID) (Outcome, error) {
	tree := p.e.tree
	prev, next := tree.PreviousPeer(leaf), tree.NextPeer(leaf)
	if p.e.parent(prev) != p.e.parent(next) {
		return PassThrough, nil
	}
	p.e.zap(leaf)
	if _, err := p.e.join(prev, next); err != nil {
		return Skipped, err
	}
	return Executed, nil
}

func (p *sentencePolicy) DeleteSelection(document.ID) (Outcome, error) {
	return PassThrough, nil
}

// ============================================================================
// Paragraph level
// ============================================================================

// paragraphPolicy joins across a sentence boundary inside one paragraph: the
// neighbouring tokens are joined and the rest of the next sentence moves into
// the previous one.
type paragraphPolicy struct {
	e *engine
}

func (p *paragraphPolicy) DeleteCharacterLeft(leaf document.ID) (Outcome, error) {
	tree := p.e.tree
	prev, next := tree.PreviousPeer(leaf), tree.NextPeer(leaf)
	prevSentence, nextSentence := p.e.parent(prev), p.e.parent(next)
	if p.e.parent(prevSentence) != p.e.parent(nextSentence) {
		return PassThrough, nil
	}

	p.e.zap(leaf)
	if _, err := p.e.join(prev, next); err != nil {
		return Skipped, err
	}
	if err := p.e.mergeSentenceInto(prevSentence, nextSentence); err != nil {
		return Skipped, err
	}
	return Executed, nil
}

func (p *paragraphPolicy) DeleteSelection(document.ID) (Outcome, error) {
	return PassThrough, nil
}

// ============================================================================
// Document level
// ============================================================================

// documentPolicy merges paragraphs. It never edits across the boundary of
// the document it was resolved for.
type documentPolicy struct {
	e    *engine
	root document.ID
}

func (p *documentPolicy) DeleteCharacterLeft(leaf document.ID) (Outcome, error) {
	tree := p.e.tree
	prev, next := tree.PreviousPeer(leaf), tree.NextPeer(leaf)
	if tree.RootDocument(prev) != p.root || tree.RootDocument(next) != p.root {
		log.Debug(log.CatEdit, "refusing merge across document boundary")
		return Skipped, nil
	}

	prevSentence, nextSentence := p.e.parent(prev), p.e.parent(next)
	prevParagraph, nextParagraph := p.e.parent(prevSentence), p.e.parent(nextSentence)
	leafSentence := p.e.parent(leaf)

	// The token opens the next paragraph, so only the token is removed. A
	// merge here would copy the paragraph back with the deleted character
	// still in it; paragraphs merge when the deleted token is in prev's
	// paragraph or in a container between the two.
	if p.e.parent(leafSentence) == nextParagraph {
		p.e.zap(leaf)
		return Executed, tree.PlaceCursor(next, 0)
	}

	if p.e.joinSpace {
		if _, err := tree.NewStyledToken(prevSentence, " ", tree.Style(prev)); err != nil {
			return Skipped, err
		}
	}
	if leafSentence != prevSentence && leafSentence != nextSentence {
		if err := p.e.mergeSentenceInto(prevSentence, leafSentence); err != nil {
			return Skipped, err
		}
	}

	cursor := document.None
	for _, sentence := range tree.Children(nextParagraph) {
		dup, err := tree.CopySentence(prevParagraph, sentence)
		if err != nil {
			return Skipped, err
		}
		if sentence == nextSentence {
			cursor = tree.Leaves(dup)[tree.IndexOf(next)]
		}
	}
	p.e.zap(nextParagraph)
	log.Debug(log.CatEdit, "merged paragraphs", "into", tree.Subject(prevParagraph))

	if cursor == document.None {
		return Executed, nil
	}
	return Executed, tree.PlaceCursor(cursor, 0)
}

func (p *documentPolicy) DeleteSelection(document.ID) (Outcome, error) {
	return Skipped, nil
}
