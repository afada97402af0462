package layout

import (
	"github.com/zjrosen/ezwrite/internal/document"
	"github.com/zjrosen/ezwrite/internal/log"
	"github.com/zjrosen/ezwrite/internal/textseg"
)

// Flow lays tokens out left to right, wrapping at the available width.
// Paragraphs start with a first-line indent and are separated by one blank
// row; a newline token ends its line.
type Flow struct {
	tree   *document.Tree
	indent int
	rects  map[document.ID]Rect
	lines  [][]document.ID
}

var _ Geometry = (*Flow)(nil)

// FlowOption configures a Flow.
type FlowOption func(*Flow)

// WithIndent sets the paragraph first-line indent in cells.
func WithIndent(cells int) FlowOption {
	return func(f *Flow) {
		f.indent = max(0, cells)
	}
}

// NewFlow creates a flow layout over tree.
func NewFlow(tree *document.Tree, opts ...FlowOption) *Flow {
	f := &Flow{
		tree:   tree,
		indent: 4,
		rects:  make(map[document.ID]Rect),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

type point struct {
	x, y int
}

// Layout positions every entity under root within width cells and returns
// the height consumed. Dirty flags under root are cleared.
func (f *Flow) Layout(root document.ID, width int) int {
	clear(f.rects)
	f.lines = f.lines[:0]
	width = max(width, 1)
	height := f.layout(root, point{}, width)
	f.tree.ClearDirty(root)
	log.Debug(log.CatLayout, "layout pass", "root", root, "width", width, "height", height)
	return height
}

// layout places the container id at start and returns the rows it consumed.
func (f *Flow) layout(id document.ID, start point, width int) int {
	switch f.tree.Kind(id) {
	case document.KindBook, document.KindDocument:
		return f.layoutStack(id, start, width)
	case document.KindParagraph:
		return f.layoutParagraph(id, start, width)
	default:
		return 0
	}
}

// layoutStack stacks children vertically with one blank row between them.
func (f *Flow) layoutStack(id document.ID, start point, width int) int {
	y := start.y
	box := Rect{}
	for i, child := range f.tree.Children(id) {
		if i > 0 {
			y++
		}
		y += f.layout(child, point{start.x, y}, width)
		if r, ok := f.rects[child]; ok {
			box = box.union(r)
		}
	}
	f.rects[id] = box
	return y - start.y
}

func (f *Flow) layoutParagraph(id document.ID, start point, width int) int {
	x, y := start.x+f.indent, start.y
	var line []document.ID
	box := Rect{X: start.x, Y: start.y}
	last := f.tree.LastLeaf(id)
	for _, sentence := range f.tree.Children(id) {
		sbox := Rect{}
		for _, tok := range f.tree.Children(sentence) {
			w := cellWidth(f.tree.Text(tok))
			if x+w > start.x+width && x > start.x {
				f.lines = append(f.lines, line)
				line = nil
				x, y = start.x, y+1
			}
			r := Rect{X: x, Y: y, Width: w, Height: 1}
			f.rects[tok] = r
			sbox = sbox.union(r)
			line = append(line, tok)
			x += w
			if isNewline(f.tree.Text(tok)) && tok != last {
				f.lines = append(f.lines, line)
				line = nil
				x, y = start.x, y+1
			}
		}
		f.rects[sentence] = sbox
		box = box.union(sbox)
	}
	if len(line) > 0 {
		f.lines = append(f.lines, line)
	}
	f.rects[id] = box
	return y - start.y + 1
}

// Lines returns the tokens of every laid out row, top to bottom.
func (f *Flow) Lines() [][]document.ID {
	return f.lines
}

// Bounds implements Geometry.
func (f *Flow) Bounds(id document.ID) (Rect, bool) {
	r, ok := f.rects[id]
	return r, ok
}

// PointInside implements Geometry.
func (f *Flow) PointInside(id document.ID, x, y int) bool {
	r, ok := f.rects[id]
	return ok && r.Contains(x, y)
}

// WordIndexAt implements Geometry. Ties resolve to the lower index.
func (f *Flow) WordIndexAt(id document.ID, dx int) int {
	offsets := cellOffsets(f.tree.Text(id))
	best, bestDist := 0, -1
	for i, off := range offsets {
		d := abs(dx - off)
		if bestDist >= 0 && d >= bestDist {
			break
		}
		best, bestDist = i, d
	}
	return best
}

// OffsetOf implements Geometry.
func (f *Flow) OffsetOf(id document.ID, idx int) int {
	offsets := cellOffsets(f.tree.Text(id))
	idx = min(max(idx, 0), len(offsets)-1)
	return offsets[idx]
}

func isNewline(text string) bool {
	return textseg.ClassOf(text) == textseg.ClassNewline
}

// cellWidth is the width of a token; zero-width text still needs a cell to
// show the cursor.
func cellWidth(text string) int {
	return max(1, textseg.Width(text))
}

func cellOffsets(text string) []int {
	offsets := textseg.Widths(text)
	if last := offsets[len(offsets)-1]; last == 0 && len(offsets) > 1 {
		offsets[len(offsets)-1] = 1
	}
	return offsets
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
