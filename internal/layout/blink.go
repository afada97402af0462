package layout

// DefaultCursorColours is the rotation used when none is configured.
var DefaultCursorColours = []string{"purple", "gold"}

// BlinkState is the cursor colour rotation of one view.
type BlinkState struct {
	colours []string
	index   int
}

// NewBlinkState creates a rotation over colours, falling back to
// DefaultCursorColours when none are given.
func NewBlinkState(colours ...string) *BlinkState {
	if len(colours) == 0 {
		colours = DefaultCursorColours
	}
	return &BlinkState{colours: append([]string(nil), colours...)}
}

// Colour returns the current cursor colour.
func (b *BlinkState) Colour() string {
	return b.colours[b.index]
}

// Next advances the rotation and returns the new colour.
func (b *BlinkState) Next() string {
	b.index = (b.index + 1) % len(b.colours)
	return b.colours[b.index]
}

// Reset restarts the rotation, e.g. after the cursor moved.
func (b *BlinkState) Reset() {
	b.index = 0
}
