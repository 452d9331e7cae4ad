package editor

// Position is a 1-indexed (line, column) location in a document.
type Position struct {
	Line   int
	Column int
}

// Host is the surface a text-editing widget must expose to have its edits
// guarded and its annotations rendered. Any widget providing these five
// operations can back a Guard and an Overlay.
type Host interface {
	// Text returns the current full buffer contents.
	Text() string

	// CursorPosition returns the current cursor position.
	CursorPosition() Position

	// ReplaceDecorations atomically removes the decorations identified by
	// previousIDs and applies decorations, returning the new ids. The
	// remove and add happen as one call so no intermediate state is
	// rendered.
	ReplaceDecorations(previousIDs []string, decorations []Decoration) []string

	// PositionAt maps a screen coordinate to a document position. It
	// reports false when the coordinate falls outside the text area.
	PositionAt(x, y float64) (Position, bool)

	// Undo reverts the most recent edit primitive.
	Undo()
}
