package document

import (
	"errors"
	"fmt"
)

// ErrStructuralTypeMismatch is returned when an entity of the wrong kind is
// passed where a specific kind is required, e.g. a Token added directly to a
// Document. It is always a programming error: the operation is aborted and
// no repair is attempted.
var ErrStructuralTypeMismatch = errors.New("structural type mismatch")

// ErrInvalidCursorPosition is returned when a word index lies outside
// [0, len(text)] of the token it addresses.
var ErrInvalidCursorPosition = errors.New("invalid cursor position")

// MismatchError describes a StructuralTypeMismatch.
type MismatchError struct {
	Op   string // operation that rejected the entity
	ID   ID     // offending entity (None when it does not exist)
	Want Kind   // kind the operation required
	Got  Kind   // kind it received (KindInvalid for a zapped or unknown handle)
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s: %v: entity %d is %s, want %s", e.Op, ErrStructuralTypeMismatch, e.ID, e.Got, e.Want)
}

func (e *MismatchError) Unwrap() error {
	return ErrStructuralTypeMismatch
}

// CursorError describes an InvalidCursorPosition.
type CursorError struct {
	ID    ID
	Index int
	Len   int
}

func (e *CursorError) Error() string {
	return fmt.Sprintf("%v: word index %d outside [0, %d] of token %d", ErrInvalidCursorPosition, e.Index, e.Len, e.ID)
}

func (e *CursorError) Unwrap() error {
	return ErrInvalidCursorPosition
}
