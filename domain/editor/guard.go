package editor

// KeyKind classifies an intercepted key event by how the guard treats it.
type KeyKind int

const (
	// KeyNavigation covers arrow keys, plain modifiers and any other key
	// that cannot mutate the buffer.
	KeyNavigation KeyKind = iota
	// KeyCharacter is printable character input.
	KeyCharacter
	// KeyBackspace deletes backwards.
	KeyBackspace
	// KeyDelete deletes forwards.
	KeyDelete
	// KeyEnter inserts a line break.
	KeyEnter
	// KeyTab inserts indentation.
	KeyTab
	// KeyPaste inserts clipboard contents as one atomic primitive.
	KeyPaste
)

// Mutates reports whether the key can change buffer contents. Only mutating
// keys are gated; everything else always passes.
func (k KeyKind) Mutates() bool {
	return k != KeyNavigation
}

// KeyEvent is one intercepted key or paste event.
type KeyEvent struct {
	kind KeyKind
}

// NewKeyEvent creates a KeyEvent of the given kind.
func NewKeyEvent(kind KeyKind) KeyEvent {
	return KeyEvent{kind: kind}
}

// Kind returns the event classification.
func (e KeyEvent) Kind() KeyKind {
	return e.kind
}

// Selection is the live cursor or selection at the moment of a key event,
// in 1-indexed line coordinates.
type Selection struct {
	startLine int
	endLine   int
}

// NewCursor creates an empty selection at line.
func NewCursor(line int) Selection {
	return Selection{startLine: line, endLine: line}
}

// NewSelection creates a selection covering [startLine, endLine].
func NewSelection(startLine, endLine int) Selection {
	if startLine > endLine {
		startLine, endLine = endLine, startLine
	}
	return Selection{startLine: startLine, endLine: endLine}
}

// StartLine returns the first selected line.
func (s Selection) StartLine() int {
	return s.startLine
}

// EndLine returns the last selected line.
func (s Selection) EndLine() int {
	return s.endLine
}

// IsCursor reports whether the selection is a bare cursor.
func (s Selection) IsCursor() bool {
	return s.startLine == s.endLine
}

// Decision is the guard's verdict on a key event.
type Decision int

const (
	// DecisionAllow lets the event through to the widget.
	DecisionAllow Decision = iota
	// DecisionBlock prevents the event before it reaches the buffer.
	DecisionBlock
	// DecisionApplyThenValidate lets the event through and requires a
	// ValidateAfterPaste call once the widget has applied it. Paste is
	// applied by the widget as one primitive the guard cannot always
	// intercept before commit, so it is validated after the fact and
	// reverted wholesale when it lands outside editable lines.
	DecisionApplyThenValidate
)

// Guard enforces region-based read-only behavior against a host widget's
// key-interception hook. It is ephemeral per editor instance and consults
// the tracker's current regions on every event.
type Guard struct {
	tracker *Tracker
}

// NewGuard creates a Guard over tracker.
func NewGuard(tracker *Tracker) *Guard {
	return &Guard{tracker: tracker}
}

// Decide returns the verdict for a key event at the given selection.
// Navigation keys always pass. A cursor keystroke needs its line editable;
// a selection needs the whole range inside one region. Paste inside an
// editable position is deferred to post-apply validation.
func (g *Guard) Decide(event KeyEvent, selection Selection) Decision {
	if !event.Kind().Mutates() {
		return DecisionAllow
	}

	var editable bool
	if selection.IsCursor() {
		editable = g.tracker.IsLineEditable(selection.StartLine())
	} else {
		editable = g.tracker.IsRangeEditable(selection.StartLine(), selection.EndLine())
	}

	if !editable {
		return DecisionBlock
	}
	if event.Kind() == KeyPaste {
		return DecisionApplyThenValidate
	}
	return DecisionAllow
}

// ValidateAfterPaste re-derives regions from the post-paste buffer and
// checks the cursor landed on an editable line. If not, the whole paste is
// reverted through the host's undo primitive. It reports whether the paste
// was kept.
func (g *Guard) ValidateAfterPaste(host Host) bool {
	g.tracker.SetText(host.Text())
	if g.tracker.IsLineEditable(host.CursorPosition().Line) {
		return true
	}
	host.Undo()
	g.tracker.SetText(host.Text())
	return false
}
