package document

// NextPeer returns the entity that follows id at the same structural level in
// the depth-first, left-to-right linearization of the whole tree. A token's
// next peer may live in another sentence, paragraph or document; empty
// containers on the way are skipped. Returns None at the end of the tree.
func (t *Tree) NextPeer(id ID) ID {
	e := t.get(id)
	if e == nil || e.parent == None {
		return None
	}
	if next := t.ChildAfter(e.parent, id); next != None {
		return next
	}
	for p := t.NextPeer(e.parent); p != None; p = t.NextPeer(p) {
		if c := t.FirstChild(p); c != None {
			return c
		}
	}
	return None
}

// PreviousPeer is the mirror of NextPeer.
func (t *Tree) PreviousPeer(id ID) ID {
	e := t.get(id)
	if e == nil || e.parent == None {
		return None
	}
	if prev := t.ChildBefore(e.parent, id); prev != None {
		return prev
	}
	for p := t.PreviousPeer(e.parent); p != None; p = t.PreviousPeer(p) {
		if c := t.LastChild(p); c != None {
			return c
		}
	}
	return None
}

// FirstLeaf returns the first token under root, or None.
func (t *Tree) FirstLeaf(root ID) ID {
	found := None
	t.Walk(root, func(id ID) bool {
		if found != None {
			return false
		}
		if t.nodes[id].kind == KindToken {
			found = id
		}
		return true
	})
	return found
}

// LastLeaf returns the last token under root, or None.
func (t *Tree) LastLeaf(root ID) ID {
	leaves := t.Leaves(root)
	if len(leaves) == 0 {
		return None
	}
	return leaves[len(leaves)-1]
}
