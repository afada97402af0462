package document

import "github.com/zjrosen/ezwrite/internal/textseg"

// PlaceCursor gives id the cursor at word index idx and removes it from every
// other token of the tree, broadcasting top-down from the root.
func (t *Tree) PlaceCursor(id ID, idx int) error {
	e, err := t.token("place cursor", id)
	if err != nil {
		return err
	}
	if n := textseg.Len(e.text); idx < 0 || idx > n {
		return &CursorError{ID: id, Index: idx, Len: n}
	}
	t.RemoveCursorExcept(t.Root(id), id)
	if t.focus != None && t.focus != id {
		if old := t.get(t.focus); old != nil {
			old.focused = false
		}
	}
	e = &t.nodes[id]
	e.cursor = idx
	e.focused = true
	t.focus = id
	t.MarkDirty(id)
	return nil
}

// RemoveCursorExcept clears the cursor from every token under root except keep.
func (t *Tree) RemoveCursorExcept(root, keep ID) {
	t.Walk(root, func(id ID) bool {
		e := &t.nodes[id]
		if e.kind == KindToken && id != keep && e.focused {
			e.focused = false
			e.dirty = true
		}
		return true
	})
}

// Focus returns the token holding the cursor, or None.
func (t *Tree) Focus() ID {
	if t.get(t.focus) == nil {
		return None
	}
	return t.focus
}

// Focused reports whether id holds the cursor.
func (t *Tree) Focused(id ID) bool {
	e := t.get(id)
	return e != nil && e.focused
}

// CursorIndex returns the word index of the cursor stored on a token. It is
// meaningful only while the token is focused.
func (t *Tree) CursorIndex(id ID) int {
	if e := t.get(id); e != nil {
		return e.cursor
	}
	return 0
}

// Select stores a sub-range on a token. The range is clamped to the text;
// an empty range deselects the token.
func (t *Tree) Select(id ID, sel Selection) error {
	e, err := t.token("select", id)
	if err != nil {
		return err
	}
	n := textseg.Len(e.text)
	if sel.Start < 0 || sel.Start > n {
		return &CursorError{ID: id, Index: sel.Start, Len: n}
	}
	sel.End = min(max(sel.End, sel.Start), n)
	if sel.Empty() {
		t.Deselect(id)
		return nil
	}
	e.selected = true
	e.selection = sel
	t.MarkDirty(id)
	return nil
}

// Deselect clears the selection of a single token.
func (t *Tree) Deselect(id ID) {
	if e := t.get(id); e != nil && e.selected {
		e.selected = false
		e.selection = Selection{}
		t.MarkDirty(id)
	}
}

// DeselectAll clears every selection under root.
func (t *Tree) DeselectAll(root ID) {
	t.Walk(root, func(id ID) bool {
		if t.nodes[id].selected {
			t.Deselect(id)
		}
		return true
	})
}

// SelectionOf returns the selected sub-range of a token.
func (t *Tree) SelectionOf(id ID) (Selection, bool) {
	e := t.get(id)
	if e == nil || !e.selected {
		return Selection{}, false
	}
	return e.selection, true
}

// Selected returns every selected token under root in document order.
func (t *Tree) Selected(root ID) []ID {
	var out []ID
	t.Walk(root, func(id ID) bool {
		if t.nodes[id].selected {
			out = append(out, id)
		}
		return true
	})
	return out
}
