package app

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/ezwrite/internal/document"
	"github.com/zjrosen/ezwrite/internal/layout"
	"github.com/zjrosen/ezwrite/internal/tracing"
)

// surface owns the laid out view of the tree. It is shared by every copy of
// the Model, so a layout pass scheduled from one Update is seen by the next.
type surface struct {
	tree   *document.Tree
	root   document.ID
	flow   *layout.Flow
	indent int
	width  int
	height int // rows used by the last pass
	tracer trace.Tracer
}

func newSurface(tree *document.Tree, root document.ID, indent int, tracer trace.Tracer) *surface {
	s := &surface{indent: indent, tracer: tracer}
	s.reset(tree, root)
	return s
}

// reset points the surface at a freshly loaded tree.
func (s *surface) reset(tree *document.Tree, root document.ID) {
	s.tree = tree
	s.root = root
	s.flow = layout.NewFlow(tree, layout.WithIndent(s.indent))
	s.height = 0
}

// layout runs one pass at the current width.
func (s *surface) layout() {
	if s.width <= 0 {
		return
	}
	_, span := s.tracer.Start(context.Background(), tracing.SpanLayoutPass)
	s.height = s.flow.Layout(s.root, s.width)
	span.SetAttributes(attribute.Int("layout.width", s.width), attribute.Int("layout.height", s.height))
	span.End()
}

// relayout adapts the scheduler to editing.Relayout, remembering the latest
// generation so the owner can schedule its Fire.
type relayout struct {
	sched *layout.Scheduler
	gen   uint64
}

func (r *relayout) Request() uint64 {
	r.gen = r.sched.Request()
	return r.gen
}

// scrollTo returns the scroll offset that keeps row visible in a viewport of
// rows lines, moving as little as possible from offset.
func scrollTo(offset, row, rows int) int {
	if rows <= 0 {
		return 0
	}
	switch {
	case row < offset:
		return row
	case row >= offset+rows:
		return row - rows + 1
	default:
		return offset
	}
}
