// Package textseg provides grapheme-aware text helpers for token editing.
//
// All word indices in ezwrite are grapheme indices, not byte offsets:
// a cursor at word index 3 sits after the third user-perceived character
// of a token. Display widths are terminal cells and are only used by the
// layout collaborator.
package textseg

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Class is the character class of a grapheme cluster.
type Class int

const (
	ClassSpace Class = iota
	ClassWord
	ClassPunct
	ClassNewline
)

func (c Class) String() string {
	switch c {
	case ClassSpace:
		return "space"
	case ClassWord:
		return "word"
	case ClassPunct:
		return "punct"
	case ClassNewline:
		return "newline"
	default:
		return "unknown"
	}
}

// Len returns the number of grapheme clusters in s.
// For example: "hello" = 5, "naïve" = 5.
func Len(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// ByteOffset converts a grapheme index to a byte offset.
// Returns len(s) if idx >= the grapheme count and 0 if idx <= 0.
func ByteOffset(s string, idx int) int {
	if idx <= 0 {
		return 0
	}

	n := 0
	state := -1
	original := s
	for len(s) > 0 {
		_, rest, _, newState := uniseg.StepString(s, state)
		n++
		if n == idx {
			return len(original) - len(rest)
		}
		s = rest
		state = newState
	}
	return len(original)
}

// At returns the grapheme cluster at idx, or "" when idx is out of range.
func At(s string, idx int) string {
	if idx < 0 {
		return ""
	}
	n := 0
	state := -1
	for len(s) > 0 {
		cluster, rest, _, newState := uniseg.StepString(s, state)
		if n == idx {
			return cluster
		}
		n++
		s = rest
		state = newState
	}
	return ""
}

// Slice returns the graphemes in [start, end).
// Out of range bounds are clamped; an inverted range yields "".
func Slice(s string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end < start {
		return ""
	}
	startByte := ByteOffset(s, start)
	endByte := ByteOffset(s, end)
	if startByte >= len(s) {
		return ""
	}
	return s[startByte:endByte]
}

// Insert inserts text before the grapheme at idx.
func Insert(s string, idx int, text string) string {
	off := ByteOffset(s, idx)
	return s[:off] + text + s[off:]
}

// Delete removes the graphemes in [start, end).
func Delete(s string, start, end int) string {
	if end <= start {
		return s
	}
	return s[:ByteOffset(s, start)] + s[ByteOffset(s, end):]
}

// Width returns the display width of s in terminal cells.
func Width(s string) int {
	return runewidth.StringWidth(s)
}

// Widths returns the cumulative cell offset before each grapheme of s, plus
// a final entry for the end of the string. len(result) == Len(s)+1.
func Widths(s string) []int {
	offsets := []int{0}
	x := 0
	state := -1
	for len(s) > 0 {
		cluster, rest, _, newState := uniseg.StepString(s, state)
		x += runewidth.StringWidth(cluster)
		offsets = append(offsets, x)
		s = rest
		state = newState
	}
	return offsets
}

// ClassOf classifies a grapheme cluster (or the first cluster of a string).
//
// Classification rules:
//   - Newline: '\n' or '\r'
//   - Space: space and tab
//   - Word: letters, digits and underscore
//   - Punct: everything else (including emoji)
func ClassOf(s string) Class {
	for _, r := range s {
		switch {
		case r == '\n' || r == '\r':
			return ClassNewline
		case r == ' ' || r == '\t':
			return ClassSpace
		case r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r):
			return ClassWord
		default:
			return ClassPunct
		}
	}
	return ClassSpace
}

// Mergeable reports whether text of class c may grow an existing token of
// the same class. Punctuation and newlines always stand alone.
func Mergeable(c Class) bool {
	return c == ClassWord || c == ClassSpace
}

// IsBlank reports whether s consists only of whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
