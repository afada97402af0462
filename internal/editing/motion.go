package editing

import (
	"github.com/zjrosen/ezwrite/internal/document"
	"github.com/zjrosen/ezwrite/internal/textseg"
)

func (ed *Editor) move(dir Direction, extend bool) (Outcome, error) {
	tree := ed.tree
	leaf := tree.Focus()
	if leaf == document.None {
		return Skipped, nil
	}
	idx := tree.CursorIndex(leaf)

	if extend && ed.anchor == nil {
		ed.anchor = &position{leaf, idx}
	}

	var (
		moved bool
		err   error
	)
	switch dir {
	case Left:
		moved, err = ed.moveLeft(leaf, idx)
	case Right:
		moved, err = ed.moveRight(leaf, idx)
	case Up, Down:
		moved, err = ed.moveVertical(leaf, idx, dir)
	}
	if err != nil || !moved {
		return Skipped, err
	}

	if !extend {
		ed.anchor = nil
		tree.DeselectAll(ed.root)
		return Executed, nil
	}
	focus := tree.Focus()
	return ed.applySelection(*ed.anchor, position{focus, tree.CursorIndex(focus)})
}

// moveLeft steps one character left. At the start of a token the step is
// taken inside the previous token.
func (ed *Editor) moveLeft(leaf document.ID, idx int) (bool, error) {
	tree := ed.tree
	for idx == 0 {
		prev := tree.PreviousPeer(leaf)
		if prev == document.None {
			return false, nil
		}
		leaf, idx = prev, tree.Len(prev)
	}
	return true, tree.PlaceCursor(leaf, idx-1)
}

// moveRight steps one character right. Stepping onto the end of a token
// lands at the start of the next one, which is the same visual position.
func (ed *Editor) moveRight(leaf document.ID, idx int) (bool, error) {
	tree := ed.tree
	n := tree.Len(leaf)
	if idx >= n-1 {
		if next := tree.NextPeer(leaf); next != document.None {
			return true, tree.PlaceCursor(next, 0)
		}
		if idx >= n {
			return false, nil
		}
	}
	return true, tree.PlaceCursor(leaf, idx+1)
}

// moveVertical moves to the closest token on the nearest row above or below.
func (ed *Editor) moveVertical(leaf document.ID, idx int, dir Direction) (bool, error) {
	if ed.geometry == nil {
		return false, nil
	}
	tree := ed.tree
	r, ok := ed.geometry.Bounds(leaf)
	if !ok {
		return false, nil
	}
	cx := r.X + ed.geometry.OffsetOf(leaf, idx)

	step := tree.NextPeer
	if dir == Up {
		step = tree.PreviousPeer
	}

	best, bestDist, row := document.None, -1, -1
	for t := step(leaf); t != document.None; t = step(t) {
		b, ok := ed.geometry.Bounds(t)
		if !ok {
			continue
		}
		if (dir == Up && b.Bottom() > r.Y) || (dir == Down && b.Y < r.Bottom()) {
			continue
		}
		if row < 0 {
			row = b.Y
		} else if b.Y != row {
			break
		}
		d := distance(cx, b.X, b.X+b.Width)
		if bestDist < 0 || d < bestDist {
			best, bestDist = t, d
		}
	}
	if best == document.None {
		return false, nil
	}
	b, _ := ed.geometry.Bounds(best)
	return true, ed.placeAtOffset(best, cx-b.X)
}

// clickAt places the cursor at the token under (x, y). A click right of the
// last token of a row lands at the end of that row.
func (ed *Editor) clickAt(x, y int) (Outcome, error) {
	if ed.geometry == nil {
		return Skipped, nil
	}
	tree := ed.tree
	rowEnd := document.None
	for _, t := range tree.Leaves(ed.root) {
		if ed.geometry.PointInside(t, x, y) {
			b, _ := ed.geometry.Bounds(t)
			ed.clearSelection()
			return Executed, ed.placeAtOffset(t, x-b.X)
		}
		if b, ok := ed.geometry.Bounds(t); ok && y >= b.Y && y < b.Bottom() && b.X <= x {
			rowEnd = t
		}
	}
	if rowEnd == document.None {
		return Skipped, nil
	}
	ed.clearSelection()
	idx := tree.Len(rowEnd)
	if textseg.ClassOf(tree.Text(rowEnd)) == textseg.ClassNewline {
		idx = 0
	}
	return Executed, tree.PlaceCursor(rowEnd, idx)
}

// placeAtOffset puts the cursor at the word index closest to dx. The end of
// a token is expressed as the start of the next token when both share a row.
func (ed *Editor) placeAtOffset(tok document.ID, dx int) error {
	tree := ed.tree
	idx := ed.geometry.WordIndexAt(tok, dx)
	if idx == tree.Len(tok) {
		if next := tree.NextPeer(tok); next != document.None {
			a, _ := ed.geometry.Bounds(tok)
			b, ok := ed.geometry.Bounds(next)
			if ok && a.Y == b.Y {
				return tree.PlaceCursor(next, 0)
			}
		}
	}
	return tree.PlaceCursor(tok, idx)
}

func (ed *Editor) clearSelection() {
	ed.anchor = nil
	ed.tree.DeselectAll(ed.root)
}

// distance from x to the span [lo, hi].
func distance(x, lo, hi int) int {
	switch {
	case x < lo:
		return lo - x
	case x > hi:
		return x - hi
	default:
		return 0
	}
}
