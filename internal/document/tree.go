// Package document implements the editable document tree:
// Book -> Document -> Paragraph -> Sentence -> Token.
//
// Entities live in an arena owned by a Tree and are addressed by stable
// ID handles. A container owns the ordered list of its children's handles;
// the parent link is a plain handle back-reference, so ownership never forms
// a cycle. Handles are never reused, and a zapped entity is invisible to every
// accessor and traversal.
package document

import (
	"slices"

	"github.com/zjrosen/ezwrite/internal/textseg"
)

// ID is a stable handle to an entity in a Tree. The zero value is None.
type ID int32

// None is the absent entity.
const None ID = 0

// Kind is the closed set of entity variants.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBook
	KindDocument
	KindParagraph
	KindSentence
	KindToken
)

func (k Kind) String() string {
	switch k {
	case KindBook:
		return "book"
	case KindDocument:
		return "document"
	case KindParagraph:
		return "paragraph"
	case KindSentence:
		return "sentence"
	case KindToken:
		return "token"
	default:
		return "invalid"
	}
}

// IsContainer reports whether entities of this kind may own children.
func (k Kind) IsContainer() bool {
	return k >= KindBook && k < KindToken
}

// ChildKind returns the only kind a container of kind k accepts.
func (k Kind) ChildKind() Kind {
	switch k {
	case KindBook:
		return KindDocument
	case KindDocument:
		return KindParagraph
	case KindParagraph:
		return KindSentence
	case KindSentence:
		return KindToken
	default:
		return KindInvalid
	}
}

// Selection is a half-open word-index range [Start, End) within a token.
type Selection struct {
	Start int
	End   int
}

// Empty reports whether the range selects nothing.
func (s Selection) Empty() bool {
	return s.End <= s.Start
}

type entity struct {
	kind     Kind
	subject  string
	parent   ID
	children []ID
	dirty    bool
	alive    bool

	// Token state.
	text      string
	style     string
	cursor    int
	focused   bool
	selected  bool
	selection Selection
}

// Tree is an arena of entities. It is not safe for concurrent use: the
// editing core is single-threaded and event driven.
type Tree struct {
	nodes    []entity // index 0 is reserved for None
	subjects SubjectAllocator
	focus    ID
}

// Option configures a Tree.
type Option func(*Tree)

// WithSubjects sets the allocator used for entity subjects.
func WithSubjects(a SubjectAllocator) Option {
	return func(t *Tree) {
		t.subjects = a
	}
}

// NewTree creates an empty tree.
func NewTree(opts ...Option) *Tree {
	t := &Tree{
		nodes:    make([]entity, 1, 64),
		subjects: UUIDSubjects{},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Tree) get(id ID) *entity {
	if id <= None || int(id) >= len(t.nodes) {
		return nil
	}
	e := &t.nodes[id]
	if !e.alive {
		return nil
	}
	return e
}

func (t *Tree) alloc(kind Kind) ID {
	t.nodes = append(t.nodes, entity{
		kind:    kind,
		subject: t.subjects.Allocate(kind),
		alive:   true,
	})
	return ID(len(t.nodes) - 1)
}

// NewRoot creates a parentless Book or Document.
func (t *Tree) NewRoot(kind Kind) (ID, error) {
	if kind != KindBook && kind != KindDocument {
		return None, &MismatchError{Op: "new root", Want: KindDocument, Got: kind}
	}
	return t.alloc(kind), nil
}

// New creates an entity of the given kind and appends it to parent.
func (t *Tree) New(kind Kind, parent ID) (ID, error) {
	if err := t.checkParent("new", parent, kind); err != nil {
		return None, err
	}
	id := t.alloc(kind)
	t.attach(parent, id, -1)
	return id, nil
}

// NewToken creates a token with the given text and appends it to sentence.
func (t *Tree) NewToken(sentence ID, text string) (ID, error) {
	return t.NewStyledToken(sentence, text, "")
}

// NewStyledToken is NewToken with a style.
func (t *Tree) NewStyledToken(sentence ID, text, style string) (ID, error) {
	id, err := t.New(KindToken, sentence)
	if err != nil {
		return None, err
	}
	e := &t.nodes[id]
	e.text = text
	e.style = style
	return id, nil
}

// InsertTokenBefore creates a token immediately before ref in ref's sentence.
func (t *Tree) InsertTokenBefore(ref ID, text, style string) (ID, error) {
	return t.insertToken(ref, text, style, 0)
}

// InsertTokenAfter creates a token immediately after ref in ref's sentence.
func (t *Tree) InsertTokenAfter(ref ID, text, style string) (ID, error) {
	return t.insertToken(ref, text, style, 1)
}

func (t *Tree) insertToken(ref ID, text, style string, offset int) (ID, error) {
	r := t.get(ref)
	if r == nil || r.kind != KindToken {
		return None, &MismatchError{Op: "insert token", ID: ref, Want: KindToken, Got: t.Kind(ref)}
	}
	parent := r.parent
	if t.get(parent) == nil {
		return None, &MismatchError{Op: "insert token", ID: parent, Want: KindSentence, Got: KindInvalid}
	}
	idx := slices.Index(t.nodes[parent].children, ref) + offset
	id := t.alloc(KindToken)
	e := &t.nodes[id]
	e.text = text
	e.style = style
	t.attach(parent, id, idx)
	return id, nil
}

// AddChild appends child to parent, detaching it from its previous parent.
// The child's kind must be the one parent accepts.
func (t *Tree) AddChild(parent, child ID) error {
	c := t.get(child)
	if c == nil {
		return &MismatchError{Op: "add child", ID: child, Want: t.Kind(parent).ChildKind(), Got: KindInvalid}
	}
	if err := t.checkParent("add child", parent, c.kind); err != nil {
		return err
	}
	if old := c.parent; old != None {
		t.RemoveChild(old, child)
	}
	t.attach(parent, child, -1)
	return nil
}

func (t *Tree) checkParent(op string, parent ID, kind Kind) error {
	p := t.get(parent)
	if p == nil {
		return &MismatchError{Op: op, ID: parent, Want: containerFor(kind), Got: KindInvalid}
	}
	if p.kind.ChildKind() != kind || kind == KindInvalid {
		return &MismatchError{Op: op, ID: parent, Want: containerFor(kind), Got: p.kind}
	}
	return nil
}

func containerFor(kind Kind) Kind {
	switch kind {
	case KindDocument:
		return KindBook
	case KindParagraph:
		return KindDocument
	case KindSentence:
		return KindParagraph
	case KindToken:
		return KindSentence
	default:
		return KindInvalid
	}
}

// attach inserts child at idx in parent's list (idx < 0 appends).
func (t *Tree) attach(parent, child ID, idx int) {
	p := &t.nodes[parent]
	if idx < 0 || idx > len(p.children) {
		p.children = append(p.children, child)
	} else {
		p.children = slices.Insert(p.children, idx, child)
	}
	t.nodes[child].parent = parent
	t.MarkDirty(parent)
}

// RemoveChild detaches child from parent without destroying it.
// Returns false if child is not one of parent's children.
func (t *Tree) RemoveChild(parent, child ID) bool {
	p := t.get(parent)
	if p == nil {
		return false
	}
	i := slices.Index(p.children, child)
	if i < 0 {
		return false
	}
	p.children = slices.Delete(p.children, i, i+1)
	t.nodes[child].parent = None
	t.MarkDirty(parent)
	return true
}

// Zap detaches an entity from its parent and recursively destroys it and
// all its descendants. Zapping None or an already zapped entity is a no-op.
func (t *Tree) Zap(id ID) {
	e := t.get(id)
	if e == nil {
		return
	}
	if e.parent != None {
		t.RemoveChild(e.parent, id)
	}
	t.destroy(id)
}

func (t *Tree) destroy(id ID) {
	e := &t.nodes[id]
	children := e.children
	e.children = nil
	e.parent = None
	e.alive = false
	e.focused = false
	e.selected = false
	if t.focus == id {
		t.focus = None
	}
	for _, c := range children {
		t.destroy(c)
	}
}

// CleanupEmptyContainers recurses depth-first over container children of id
// and zaps every container left without children. The root itself is never
// zapped. Returns the number of containers removed; a second call right
// after the first always returns 0.
func (t *Tree) CleanupEmptyContainers(id ID) int {
	e := t.get(id)
	if e == nil {
		return 0
	}
	count := 0
	for _, child := range slices.Clone(e.children) {
		if !t.IsContainer(child) {
			continue
		}
		count += t.CleanupEmptyContainers(child)
		if !t.HasChildren(child) {
			t.Zap(child)
			count++
		}
	}
	return count
}

// Alive reports whether id refers to an entity that has not been zapped.
func (t *Tree) Alive(id ID) bool {
	return t.get(id) != nil
}

// Kind returns the kind of id, or KindInvalid if it does not exist.
func (t *Tree) Kind(id ID) Kind {
	if e := t.get(id); e != nil {
		return e.kind
	}
	return KindInvalid
}

// IsContainer reports whether id is a live container.
func (t *Tree) IsContainer(id ID) bool {
	return t.Kind(id).IsContainer()
}

// Subject returns the identity subject allocated for id.
func (t *Tree) Subject(id ID) string {
	if e := t.get(id); e != nil {
		return e.subject
	}
	return ""
}

// Parent returns the parent of id, or None for roots.
func (t *Tree) Parent(id ID) ID {
	if e := t.get(id); e != nil {
		return e.parent
	}
	return None
}

// Children returns a copy of id's ordered child list.
func (t *Tree) Children(id ID) []ID {
	if e := t.get(id); e != nil {
		return slices.Clone(e.children)
	}
	return nil
}

// HasChildren reports whether id owns at least one child.
func (t *Tree) HasChildren(id ID) bool {
	e := t.get(id)
	return e != nil && len(e.children) > 0
}

// FirstChild returns the first child of id, or None.
func (t *Tree) FirstChild(id ID) ID {
	if e := t.get(id); e != nil && len(e.children) > 0 {
		return e.children[0]
	}
	return None
}

// LastChild returns the last child of id, or None.
func (t *Tree) LastChild(id ID) ID {
	if e := t.get(id); e != nil && len(e.children) > 0 {
		return e.children[len(e.children)-1]
	}
	return None
}

// ChildAfter returns the sibling immediately after child in parent, or None.
func (t *Tree) ChildAfter(parent, child ID) ID {
	p := t.get(parent)
	if p == nil {
		return None
	}
	i := slices.Index(p.children, child)
	if i < 0 || i+1 >= len(p.children) {
		return None
	}
	return p.children[i+1]
}

// ChildBefore returns the sibling immediately before child in parent, or None.
func (t *Tree) ChildBefore(parent, child ID) ID {
	p := t.get(parent)
	if p == nil {
		return None
	}
	i := slices.Index(p.children, child)
	if i <= 0 {
		return None
	}
	return p.children[i-1]
}

// IndexOf returns the position of id in its parent's child list, or -1.
func (t *Tree) IndexOf(id ID) int {
	e := t.get(id)
	if e == nil {
		return -1
	}
	p := t.get(e.parent)
	if p == nil {
		return -1
	}
	return slices.Index(p.children, id)
}

// Root returns the topmost ancestor-or-self of id.
func (t *Tree) Root(id ID) ID {
	if t.get(id) == nil {
		return None
	}
	for {
		parent := t.nodes[id].parent
		if t.get(parent) == nil {
			return id
		}
		id = parent
	}
}

// Ancestor returns the nearest ancestor-or-self of id with the given kind.
func (t *Tree) Ancestor(id ID, kind Kind) ID {
	for e := t.get(id); e != nil; e = t.get(e.parent) {
		if e.kind == kind {
			return id
		}
		id = e.parent
	}
	return None
}

// RootDocument returns the Document that id belongs to.
func (t *Tree) RootDocument(id ID) ID {
	return t.Ancestor(id, KindDocument)
}

// MarkDirty flags id and every ancestor up to the root as needing layout.
func (t *Tree) MarkDirty(id ID) {
	for e := t.get(id); e != nil; e = t.get(e.parent) {
		e.dirty = true
	}
}

// Dirty reports whether id needs layout.
func (t *Tree) Dirty(id ID) bool {
	e := t.get(id)
	return e != nil && e.dirty
}

// ClearDirty resets the dirty flag on id and all its descendants.
// Only the rendering collaborator calls this, after a layout pass.
func (t *Tree) ClearDirty(id ID) {
	t.Walk(id, func(n ID) bool {
		t.nodes[n].dirty = false
		return true
	})
}

// Text returns the text of a token ("" for anything else).
func (t *Tree) Text(id ID) string {
	if e := t.get(id); e != nil && e.kind == KindToken {
		return e.text
	}
	return ""
}

// Len returns the length of a token's text in word-index units.
func (t *Tree) Len(id ID) int {
	return textseg.Len(t.Text(id))
}

// Style returns the style of a token.
func (t *Tree) Style(id ID) string {
	if e := t.get(id); e != nil {
		return e.style
	}
	return ""
}

// SetText replaces a token's text and marks it dirty. The cursor is clamped
// to the new length and any selection is cleared.
func (t *Tree) SetText(id ID, text string) error {
	e, err := t.token("set text", id)
	if err != nil {
		return err
	}
	e.text = text
	e.cursor = min(e.cursor, textseg.Len(text))
	e.selected = false
	e.selection = Selection{}
	t.MarkDirty(id)
	return nil
}

func (t *Tree) token(op string, id ID) (*entity, error) {
	e := t.get(id)
	if e == nil || e.kind != KindToken {
		return nil, &MismatchError{Op: op, ID: id, Want: KindToken, Got: t.Kind(id)}
	}
	return e, nil
}

// CopyToken appends a copy of src (text and style, fresh identity) to sentence.
func (t *Tree) CopyToken(sentence, src ID) (ID, error) {
	s, err := t.token("copy token", src)
	if err != nil {
		return None, err
	}
	text, style := s.text, s.style
	return t.NewStyledToken(sentence, text, style)
}

// AppendCopyTokens appends copies of every token of src to dst.
func (t *Tree) AppendCopyTokens(dst, src ID) error {
	if k := t.Kind(src); k != KindSentence {
		return &MismatchError{Op: "append copy tokens", ID: src, Want: KindSentence, Got: k}
	}
	for _, tok := range t.Children(src) {
		if _, err := t.CopyToken(dst, tok); err != nil {
			return err
		}
	}
	return nil
}

// CopySentence appends a copy of sentence src, with copies of its tokens,
// to paragraph dst. Returns the new sentence.
func (t *Tree) CopySentence(dst, src ID) (ID, error) {
	if k := t.Kind(src); k != KindSentence {
		return None, &MismatchError{Op: "copy sentence", ID: src, Want: KindSentence, Got: k}
	}
	sentence, err := t.New(KindSentence, dst)
	if err != nil {
		return None, err
	}
	if err := t.AppendCopyTokens(sentence, src); err != nil {
		return None, err
	}
	return sentence, nil
}

// Walk visits id and its descendants depth-first, parents before children.
// Returning false from fn skips the entity's children.
func (t *Tree) Walk(id ID, fn func(ID) bool) {
	e := t.get(id)
	if e == nil {
		return
	}
	if !fn(id) {
		return
	}
	for _, c := range slices.Clone(t.nodes[id].children) {
		t.Walk(c, fn)
	}
}

// Leaves returns every token under root in document order.
func (t *Tree) Leaves(root ID) []ID {
	var out []ID
	t.Walk(root, func(id ID) bool {
		if t.nodes[id].kind == KindToken {
			out = append(out, id)
		}
		return true
	})
	return out
}

// Content returns the concatenated text of every token under root.
func (t *Tree) Content(root ID) string {
	var n int
	leaves := t.Leaves(root)
	for _, id := range leaves {
		n += len(t.nodes[id].text)
	}
	buf := make([]byte, 0, n)
	for _, id := range leaves {
		buf = append(buf, t.nodes[id].text...)
	}
	return string(buf)
}

// Count returns how many live entities of kind exist under root (inclusive).
func (t *Tree) Count(root ID, kind Kind) int {
	n := 0
	t.Walk(root, func(id ID) bool {
		if t.nodes[id].kind == kind {
			n++
		}
		return true
	})
	return n
}
