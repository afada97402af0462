package document

// RangeResult reports what a leaf range traversal saw.
type RangeResult struct {
	Count int // leaves visited, endpoints included
	First ID  // endpoint met first in document order
	Last  ID  // endpoint met second; None if it was never reached
}

// Closed reports whether both endpoints were found.
func (r RangeResult) Closed() bool {
	return r.First != None && r.Last != None
}

type rangeWalk struct {
	t     *Tree
	a, b  ID
	visit func(ID)
	res   RangeResult
	done  bool
}

// TraverseLeavesBetween visits, in document order, every token between the
// endpoints a and b inclusive. Either endpoint may come first; the visited set
// is the same both ways. The walk is a single forward pass that stops as soon
// as the second endpoint has been visited. When a == b nothing is visited.
//
// Both endpoints must be tokens.
func (t *Tree) TraverseLeavesBetween(root, a, b ID, visit func(ID)) (RangeResult, error) {
	for _, id := range []ID{a, b} {
		if k := t.Kind(id); k != KindToken {
			return RangeResult{}, &MismatchError{Op: "traverse leaves", ID: id, Want: KindToken, Got: k}
		}
	}
	if a == b {
		return RangeResult{}, nil
	}
	if visit == nil {
		visit = func(ID) {}
	}
	w := &rangeWalk{t: t, a: a, b: b, visit: visit}
	w.descend(root)
	return w.res, nil
}

func (w *rangeWalk) descend(id ID) {
	e := w.t.get(id)
	if e == nil || w.done {
		return
	}
	children := e.children
	if len(children) == 0 {
		return
	}
	if w.t.nodes[children[0]].kind == KindToken {
		w.scan(children)
		return
	}
	for i := 0; i < len(children) && !w.done; i++ {
		w.descend(children[i])
	}
}

// scan walks a leaf container's children linearly.
func (w *rangeWalk) scan(children []ID) {
	for _, leaf := range children {
		isEndpoint := leaf == w.a || leaf == w.b
		switch {
		case w.res.First == None && isEndpoint:
			w.res.First = leaf
		case w.res.First == None:
			continue
		case isEndpoint:
			w.res.Last = leaf
		}
		w.res.Count++
		w.visit(leaf)
		if w.res.Last != None {
			w.done = true
			return
		}
	}
}
