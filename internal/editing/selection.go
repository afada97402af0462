package editing

import (
	"github.com/zjrosen/ezwrite/internal/document"
	"github.com/zjrosen/ezwrite/internal/log"
)

// applySelection selects everything between a and b. The endpoint met first
// in document order keeps its text from its index on, the other one up to
// its index; every token in between is selected whole. The result does not
// depend on which endpoint is a and which is b.
func (ed *Editor) applySelection(a, b position) (Outcome, error) {
	tree := ed.tree
	tree.DeselectAll(ed.root)

	if a.leaf == b.leaf {
		lo, hi := min(a.idx, b.idx), max(a.idx, b.idx)
		if err := tree.Select(a.leaf, document.Selection{Start: lo, End: hi}); err != nil {
			return Skipped, err
		}
		return Executed, nil
	}

	var selectErr error
	res, err := tree.TraverseLeavesBetween(ed.root, a.leaf, b.leaf, func(id document.ID) {
		if selectErr == nil {
			selectErr = tree.Select(id, document.Selection{Start: 0, End: tree.Len(id)})
		}
	})
	if err != nil {
		return Skipped, err
	}
	if selectErr != nil {
		return Skipped, selectErr
	}
	if !res.Closed() {
		tree.DeselectAll(ed.root)
		log.Warn(log.CatEdit, "selection endpoints not in the same tree")
		return Skipped, nil
	}

	first, last := a, b
	if res.First == b.leaf {
		first, last = b, a
	}
	if err := tree.Select(first.leaf, document.Selection{Start: first.idx, End: tree.Len(first.leaf)}); err != nil {
		return Skipped, err
	}
	if err := tree.Select(last.leaf, document.Selection{Start: 0, End: last.idx}); err != nil {
		return Skipped, err
	}
	return Executed, nil
}

// dragSelect selects from press to release and leaves the cursor at release.
func (ed *Editor) dragSelect(press, release position) (Outcome, error) {
	out, err := ed.applySelection(press, release)
	if err != nil || out != Executed {
		return out, err
	}
	if err := ed.tree.PlaceCursor(release.leaf, release.idx); err != nil {
		return Skipped, err
	}
	ed.anchor = &press
	return Executed, nil
}

// deleteSelection runs delete-selection on every selected token and leaves
// the cursor where the selection started.
func (ed *Editor) deleteSelection() (Outcome, error) {
	tree := ed.tree
	selected := tree.Selected(ed.root)
	if len(selected) == 0 {
		return Skipped, nil
	}

	first := selected[0]
	firstSel, _ := tree.SelectionOf(first)
	before := tree.PreviousPeer(first)
	after := tree.NextPeer(selected[len(selected)-1])

	executed := false
	for _, leaf := range selected {
		out, err := ed.engine.deleteSelection(leaf)
		if err != nil {
			return Skipped, err
		}
		executed = executed || out == Executed
	}
	tree.DeselectAll(ed.root)
	ed.anchor = nil
	if !executed {
		return Skipped, nil
	}

	switch {
	case tree.Alive(first):
		return Executed, tree.PlaceCursor(first, min(firstSel.Start, tree.Len(first)))
	case tree.Alive(before):
		return Executed, tree.PlaceCursor(before, tree.Len(before))
	case tree.Alive(after):
		return Executed, tree.PlaceCursor(after, 0)
	}
	return Executed, nil
}
