// Package editing implements the editing state machine over a document tree:
// the per-level delegation chain, delete-left and delete-selection, cursor
// motion, range selection and character insertion.
package editing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/ezwrite/internal/cachemanager"
	"github.com/zjrosen/ezwrite/internal/document"
	"github.com/zjrosen/ezwrite/internal/log"
	"github.com/zjrosen/ezwrite/internal/tracing"
)

// Outcome indicates what a policy did with a command.
type Outcome int

const (
	// Executed means the edit was applied.
	Executed Outcome = iota
	// PassThrough means this level does not handle the edit; ask the parent level.
	PassThrough
	// Skipped means the edit is not applicable (e.g. backspace at the start of
	// the document). The tree is left untouched.
	Skipped
)

func (o Outcome) String() string {
	switch o {
	case Executed:
		return "executed"
	case PassThrough:
		return "pass-through"
	case Skipped:
		return "skipped"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Level is a tree level owning a policy.
type Level int

const (
	LevelToken Level = iota
	LevelSentence
	LevelParagraph
	LevelDocument
)

func (l Level) String() string {
	switch l {
	case LevelToken:
		return "token"
	case LevelSentence:
		return "sentence"
	case LevelParagraph:
		return "paragraph"
	case LevelDocument:
		return "document"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

// Policy is the editing capability of one tree level. A policy either
// performs the edit or returns PassThrough to delegate to the next level up.
type Policy interface {
	DeleteCharacterLeft(leaf document.ID) (Outcome, error)
	DeleteSelection(leaf document.ID) (Outcome, error)
}

// Chain is the fixed escalation Token -> Sentence -> Paragraph -> Document
// for one document root.
type Chain struct {
	root     document.ID
	policies [4]Policy
	e        *engine
}

// Token returns the token level policy.
func (c *Chain) Token() Policy { return c.policies[LevelToken] }

// Sentence returns the sentence level policy.
func (c *Chain) Sentence() Policy { return c.policies[LevelSentence] }

// Paragraph returns the paragraph level policy.
func (c *Chain) Paragraph() Policy { return c.policies[LevelParagraph] }

// Document returns the document level policy.
func (c *Chain) Document() Policy { return c.policies[LevelDocument] }

// Root returns the document the chain was resolved for.
func (c *Chain) Root() document.ID { return c.root }

// DeleteCharacterLeft runs delete-left up the chain until a level handles it.
func (c *Chain) DeleteCharacterLeft(leaf document.ID) (Outcome, error) {
	return c.escalate("delete-left", leaf, Policy.DeleteCharacterLeft)
}

// DeleteSelection runs delete-selection up the chain until a level handles it.
func (c *Chain) DeleteSelection(leaf document.ID) (Outcome, error) {
	return c.escalate("delete-selection", leaf, Policy.DeleteSelection)
}

func (c *Chain) escalate(op string, leaf document.ID, fn func(Policy, document.ID) (Outcome, error)) (Outcome, error) {
	for level, p := range c.policies {
		out, err := fn(p, leaf)
		if err != nil {
			return Skipped, fmt.Errorf("%s at %s level: %w", op, Level(level), err)
		}
		if out != PassThrough {
			log.Debug(log.CatEdit, "chain resolved", "op", op, "level", Level(level), "outcome", out)
			return out, nil
		}
		if c.e != nil && c.e.ctx != nil {
			trace.SpanFromContext(c.e.ctx).AddEvent(tracing.EventEscalated,
				trace.WithAttributes(attribute.String("chain.from", Level(level).String())))
		}
	}
	return Skipped, nil
}

// chains resolves and caches delegation chains. A chain is built once per
// document root; entities map to their root's chain through a second cache
// keyed by entity subject.
type chains struct {
	tree     *document.Tree
	engine   *engine
	byRoot   *cachemanager.ReadThroughCache[string, *Chain, document.ID]
	byEntity *cachemanager.ReadThroughCache[string, *Chain, document.ID]
	entities *cachemanager.InMemory[string, *Chain]
}

func newChains(tree *document.Tree, e *engine) *chains {
	c := &chains{
		tree:     tree,
		engine:   e,
		entities: cachemanager.NewInMemory[string, *Chain]("chain-entity", cachemanager.NoExpiration),
	}
	c.byRoot = cachemanager.NewReadThroughCache[string, *Chain, document.ID](
		cachemanager.NewInMemory[string, *Chain]("chain-root", cachemanager.NoExpiration),
		c.build,
	)
	c.byEntity = cachemanager.NewReadThroughCache[string, *Chain, document.ID](
		c.entities,
		c.forRoot,
	)
	return c
}

// resolve returns the chain responsible for leaf.
func (c *chains) resolve(ctx context.Context, leaf document.ID) (*Chain, error) {
	if k := c.tree.Kind(leaf); k != document.KindToken {
		return nil, &document.MismatchError{Op: "resolve chain", ID: leaf, Want: document.KindToken, Got: k}
	}
	return c.byEntity.Get(ctx, c.tree.Subject(leaf), leaf)
}

// forget drops the cached chains of id and everything under it. Call it
// before id is zapped; subjects are gone afterwards.
func (c *chains) forget(ctx context.Context, id document.ID) {
	leaves := c.tree.Leaves(id)
	subjects := make([]string, 0, len(leaves))
	for _, leaf := range leaves {
		subjects = append(subjects, c.tree.Subject(leaf))
	}
	c.byEntity.Invalidate(ctx, subjects...)
}

func (c *chains) forRoot(ctx context.Context, leaf document.ID) (*Chain, error) {
	root := c.tree.RootDocument(leaf)
	if root == document.None {
		return nil, &document.MismatchError{Op: "resolve chain", ID: leaf, Want: document.KindDocument, Got: c.tree.Kind(c.tree.Root(leaf))}
	}
	return c.byRoot.Get(ctx, c.tree.Subject(root), root)
}

func (c *chains) build(_ context.Context, root document.ID) (*Chain, error) {
	log.Debug(log.CatEdit, "building chain", "document", c.tree.Subject(root))
	return &Chain{
		root: root,
		e:    c.engine,
		policies: [4]Policy{
			LevelToken:     &tokenPolicy{e: c.engine},
			LevelSentence:  &sentencePolicy{e: c.engine},
			LevelParagraph: &paragraphPolicy{e: c.engine},
			LevelDocument:  &documentPolicy{e: c.engine, root: root},
		},
	}, nil
}
