package document

import (
	"fmt"

	"github.com/google/uuid"
)

// SubjectAllocator hands out identity subjects for new entities.
// It is the boundary to the persistence collaborator: the tree stores the
// subject on every entity but never interprets it.
type SubjectAllocator interface {
	Allocate(kind Kind) string
}

// UUIDSubjects allocates random urn:uuid subjects.
type UUIDSubjects struct{}

// Allocate returns a fresh urn:uuid subject.
func (UUIDSubjects) Allocate(Kind) string {
	return uuid.New().URN()
}

// SequentialSubjects allocates predictable subjects such as "paragraph-3".
// Useful in tests and dumps where stable output matters.
type SequentialSubjects struct {
	next int
}

// Allocate returns "<kind>-<n>".
func (s *SequentialSubjects) Allocate(kind Kind) string {
	s.next++
	return fmt.Sprintf("%s-%d", kind, s.next)
}
