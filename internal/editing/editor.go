package editing

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/ezwrite/internal/document"
	"github.com/zjrosen/ezwrite/internal/layout"
	"github.com/zjrosen/ezwrite/internal/log"
	"github.com/zjrosen/ezwrite/internal/pubsub"
	"github.com/zjrosen/ezwrite/internal/tracing"
)

// Relayout receives layout requests after structural edits.
// *layout.Scheduler satisfies it.
type Relayout interface {
	Request() uint64
}

// Change is published after every command that did something.
type Change struct {
	Command    string
	Structural bool
	Focus      document.ID
	Removed    int // containers removed by cleanup
}

// Editor dispatches commands against one tree. It is driven by a single
// event loop and is not safe for concurrent use.
type Editor struct {
	tree *document.Tree
	root document.ID

	engine   *engine
	geometry layout.Geometry
	relayout Relayout
	broker   pubsub.Publisher[Change]
	tracer   trace.Tracer

	joinSpace bool
	modified  bool
	anchor    *position
}

type position struct {
	leaf document.ID
	idx  int
}

// Option configures an Editor.
type Option func(*Editor)

// WithJoinSpace controls whether a paragraph merge inserts a space token.
func WithJoinSpace(on bool) Option {
	return func(ed *Editor) {
		ed.joinSpace = on
	}
}

// WithGeometry sets the collaborator used by vertical motion and clicks.
func WithGeometry(g layout.Geometry) Option {
	return func(ed *Editor) {
		ed.geometry = g
	}
}

// WithRelayout sets the receiver of layout requests.
func WithRelayout(r Relayout) Option {
	return func(ed *Editor) {
		ed.relayout = r
	}
}

// WithBroker sets where change notifications are published, usually a
// *pubsub.Broker[Change].
func WithBroker(b pubsub.Publisher[Change]) Option {
	return func(ed *Editor) {
		ed.broker = b
	}
}

// WithTracer sets the tracer commands are traced with.
func WithTracer(t trace.Tracer) Option {
	return func(ed *Editor) {
		ed.tracer = t
	}
}

// New creates an editor over the tree rooted at root (a Book or Document).
func New(tree *document.Tree, root document.ID, opts ...Option) *Editor {
	ed := &Editor{
		joinSpace: true,
		tracer:    noop.NewTracerProvider().Tracer("editing"),
	}
	for _, opt := range opts {
		opt(ed)
	}
	ed.Load(tree, root)
	return ed
}

// Load replaces the edited tree, e.g. after the source file changed on disk.
// The modified flag is reset and cached chains are dropped.
func (ed *Editor) Load(tree *document.Tree, root document.ID) {
	ed.tree = tree
	ed.root = root
	ed.engine = &engine{tree: tree, joinSpace: ed.joinSpace, ctx: context.Background()}
	ed.engine.chains = newChains(tree, ed.engine)
	ed.modified = false
	ed.anchor = nil
	if ed.tree.Focus() == document.None {
		if first := tree.FirstLeaf(root); first != document.None {
			_ = tree.PlaceCursor(first, 0)
		}
	}
	ed.publish(pubsub.ReloadEvent, Change{Command: "load", Structural: true, Focus: tree.Focus()})
}

// SetGeometry replaces the geometry collaborator.
func (ed *Editor) SetGeometry(g layout.Geometry) {
	ed.geometry = g
}

// Tree returns the edited tree.
func (ed *Editor) Tree() *document.Tree { return ed.tree }

// Root returns the edited root.
func (ed *Editor) Root() document.ID { return ed.root }

// Focus returns the token holding the cursor.
func (ed *Editor) Focus() document.ID { return ed.tree.Focus() }

// Modified reports whether any edit succeeded since the last Load.
func (ed *Editor) Modified() bool { return ed.modified }

// Chain returns the delegation chain responsible for leaf.
func (ed *Editor) Chain(ctx context.Context, leaf document.ID) (*Chain, error) {
	return ed.engine.chains.resolve(ctx, leaf)
}

// Execute runs cmd. It returns false when the command was not applicable, in
// which case the tree is unchanged. Errors are contract violations such as a
// structural type mismatch or an invalid cursor position.
func (ed *Editor) Execute(ctx context.Context, cmd Command) (bool, error) {
	focus := ed.tree.Focus()
	ctx, span := tracing.StartCommand(ctx, ed.tracer, cmd.ID(),
		attribute.String(tracing.AttrDocument, ed.tree.Subject(ed.tree.RootDocument(focus))),
		attribute.String(tracing.AttrToken, ed.tree.Subject(focus)),
		attribute.Int(tracing.AttrWordIndex, ed.tree.CursorIndex(focus)),
	)

	ed.engine.begin(ctx)
	out, err := cmd.Execute(ed)
	executed := err == nil && out == Executed

	change := Change{Command: cmd.ID(), Structural: ed.engine.structural}
	if executed && cmd.ChangesContent() {
		ed.modified = true
		if change.Structural {
			change.Removed = ed.cleanup()
			span.AddEvent(tracing.EventCleanup, trace.WithAttributes(attribute.Int(tracing.AttrRemoved, change.Removed)))
		}
		if ed.relayout != nil {
			ed.relayout.Request()
		}
	}
	change.Focus = ed.tree.Focus()
	span.SetAttributes(attribute.Bool(tracing.AttrStructural, change.Structural))

	switch {
	case err != nil:
		log.ErrorErr(log.CatEdit, "command failed", err, "command", cmd.ID())
	case executed:
		log.Debug(log.CatEdit, "command executed", "command", cmd.ID(), "structural", change.Structural, "removed", change.Removed)
		ed.publish(eventType(cmd, change), change)
	default:
		log.Debug(log.CatEdit, "command not applicable", "command", cmd.ID(), "outcome", out)
	}
	tracing.EndCommand(span, executed, err)
	return executed, err
}

// cleanup removes emptied containers. The documents of a Book are cleaned
// one by one and never removed themselves, even when emptied.
func (ed *Editor) cleanup() int {
	if ed.tree.Kind(ed.root) != document.KindBook {
		return ed.tree.CleanupEmptyContainers(ed.root)
	}
	removed := 0
	for _, doc := range ed.tree.Children(ed.root) {
		removed += ed.tree.CleanupEmptyContainers(doc)
	}
	return removed
}

func eventType(cmd Command, c Change) pubsub.EventType {
	switch {
	case !cmd.ChangesContent():
		return pubsub.CursorEvent
	case c.Structural:
		return pubsub.StructureEvent
	default:
		return pubsub.TextEvent
	}
}

func (ed *Editor) publish(t pubsub.EventType, c Change) {
	if ed.broker != nil {
		ed.broker.Publish(t, c)
	}
}
