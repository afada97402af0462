package editing

import (
	"context"
	"fmt"

	"github.com/zjrosen/ezwrite/internal/document"
	"github.com/zjrosen/ezwrite/internal/log"
)

// engine carries the state shared by every policy for the duration of one
// command.
type engine struct {
	tree      *document.Tree
	chains    *chains
	joinSpace bool

	ctx        context.Context
	structural bool
}

func (e *engine) begin(ctx context.Context) {
	e.ctx = ctx
	e.structural = false
}

// deleteLeft re-enters the chain of leaf.
func (e *engine) deleteLeft(leaf document.ID) (Outcome, error) {
	chain, err := e.chains.resolve(e.ctx, leaf)
	if err != nil {
		return Skipped, err
	}
	return chain.DeleteCharacterLeft(leaf)
}

func (e *engine) deleteSelection(leaf document.ID) (Outcome, error) {
	chain, err := e.chains.resolve(e.ctx, leaf)
	if err != nil {
		return Skipped, err
	}
	return chain.DeleteSelection(leaf)
}

func (e *engine) zap(id document.ID) {
	log.Debug(log.CatTree, "zap", "kind", e.tree.Kind(id), "subject", e.tree.Subject(id))
	if e.chains != nil {
		e.chains.forget(e.ctx, id)
	}
	e.tree.Zap(id)
	e.structural = true
}

// join replaces the adjacent tokens prev and next with one token holding
// their concatenated text, inserted at prev's position with prev's style.
// The cursor lands on the join point.
func (e *engine) join(prev, next document.ID) (document.ID, error) {
	prevText := e.tree.Text(prev)
	joined, err := e.tree.InsertTokenBefore(prev, prevText+e.tree.Text(next), e.tree.Style(prev))
	if err != nil {
		return document.None, fmt.Errorf("join tokens: %w", err)
	}
	if err := e.tree.PlaceCursor(joined, e.tree.Len(prev)); err != nil {
		return document.None, err
	}
	e.zap(prev)
	e.zap(next)
	log.Debug(log.CatEdit, "joined tokens", "text", e.tree.Text(joined))
	return joined, nil
}

// mergeSentenceInto appends copies of src's tokens to dst and zaps src.
func (e *engine) mergeSentenceInto(dst, src document.ID) error {
	if err := e.tree.AppendCopyTokens(dst, src); err != nil {
		return fmt.Errorf("merge sentence: %w", err)
	}
	e.zap(src)
	return nil
}

func (e *engine) parent(id document.ID) document.ID {
	return e.tree.Parent(id)
}
