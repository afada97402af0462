package editing

import (
	"github.com/zjrosen/ezwrite/internal/document"
)

// Command is one semantic input command, already resolved by the input
// collaborator from raw events.
type Command interface {
	// Execute applies the command.
	Execute(ed *Editor) (Outcome, error)

	// ID returns a hierarchical identifier used in logs and spans,
	// e.g. "delete.left" or "move.up".
	ID() string

	// ChangesContent reports whether the command edits text or structure.
	ChangesContent() bool
}

// motionBase is embedded by commands that only move the cursor or selection.
type motionBase struct{}

func (motionBase) ChangesContent() bool { return false }

// editBase is embedded by commands that edit the tree.
type editBase struct{}

func (editBase) ChangesContent() bool { return true }

// Direction is a cursor motion direction.
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}

// ============================================================================
// Editing commands
// ============================================================================

// DeleteLeft deletes the character to the left of the cursor, merging tokens,
// sentences or paragraphs as needed.
type DeleteLeft struct{ editBase }

func (DeleteLeft) ID() string { return "delete.left" }

func (DeleteLeft) Execute(ed *Editor) (Outcome, error) {
	leaf := ed.tree.Focus()
	if leaf == document.None {
		return Skipped, nil
	}
	ed.anchor = nil
	return ed.engine.deleteLeft(leaf)
}

// DeleteSelection deletes the selected part of every selected token.
type DeleteSelection struct{ editBase }

func (DeleteSelection) ID() string { return "delete.selection" }

func (DeleteSelection) Execute(ed *Editor) (Outcome, error) {
	return ed.deleteSelection()
}

// InsertCharacter inserts text at the cursor, one grapheme at a time,
// replacing the selection if there is one.
type InsertCharacter struct {
	editBase
	Text string
}

func (InsertCharacter) ID() string { return "insert.char" }

func (c InsertCharacter) Execute(ed *Editor) (Outcome, error) {
	return ed.insert(c.Text)
}

// ============================================================================
// Motion and selection commands
// ============================================================================

// MoveCursor moves the cursor one step. With Extend the selection grows from
// the position where extension started.
type MoveCursor struct {
	motionBase
	Direction Direction
	Extend    bool
}

func (c MoveCursor) ID() string {
	if c.Extend {
		return "select." + c.Direction.String()
	}
	return "move." + c.Direction.String()
}

func (c MoveCursor) Execute(ed *Editor) (Outcome, error) {
	return ed.move(c.Direction, c.Extend)
}

// ClickAt places the cursor at the root coordinate (X, Y).
type ClickAt struct {
	motionBase
	X, Y int
}

func (ClickAt) ID() string { return "move.click" }

func (c ClickAt) Execute(ed *Editor) (Outcome, error) {
	return ed.clickAt(c.X, c.Y)
}

// DragSelect selects from the press position to the release position.
// Either may come first in document order.
type DragSelect struct {
	motionBase
	Press        document.ID
	PressIndex   int
	Release      document.ID
	ReleaseIndex int
}

func (DragSelect) ID() string { return "select.drag" }

func (c DragSelect) Execute(ed *Editor) (Outcome, error) {
	return ed.dragSelect(position{c.Press, c.PressIndex}, position{c.Release, c.ReleaseIndex})
}

// SelectAll selects every token of the tree.
type SelectAll struct{ motionBase }

func (SelectAll) ID() string { return "select.all" }

func (SelectAll) Execute(ed *Editor) (Outcome, error) {
	first, last := ed.tree.FirstLeaf(ed.root), ed.tree.LastLeaf(ed.root)
	if first == document.None {
		return Skipped, nil
	}
	return ed.dragSelect(position{first, 0}, position{last, ed.tree.Len(last)})
}

// ClearSelection drops the selection, keeping the cursor where it is.
type ClearSelection struct{ motionBase }

func (ClearSelection) ID() string { return "select.clear" }

func (ClearSelection) Execute(ed *Editor) (Outcome, error) {
	if len(ed.tree.Selected(ed.root)) == 0 {
		ed.anchor = nil
		return Skipped, nil
	}
	ed.clearSelection()
	return Executed, nil
}

// PlaceCursor moves the cursor to Index of Token, e.g. when jumping to an
// outline entry. The selection is cleared.
type PlaceCursor struct {
	motionBase
	Token document.ID
	Index int
}

func (PlaceCursor) ID() string { return "move.place" }

func (c PlaceCursor) Execute(ed *Editor) (Outcome, error) {
	if err := ed.tree.PlaceCursor(c.Token, c.Index); err != nil {
		return Skipped, err
	}
	ed.clearSelection()
	return Executed, nil
}
