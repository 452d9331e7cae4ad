package editor

// DecorationKind distinguishes the visual treatments a host widget renders.
type DecorationKind int

const (
	// KindAnnotation marks a line carrying an annotation.
	KindAnnotation DecorationKind = iota
	// KindHighlight marks a line the step author wants emphasised.
	KindHighlight
)

// Decoration is one whole-line visual marker. Annotation decorations carry
// the index of their source annotation so a hover can recover it.
type Decoration struct {
	line            int
	kind            DecorationKind
	annotationIndex int
}

// NewDecoration creates a decoration of the given kind on line.
func NewDecoration(line int, kind DecorationKind, annotationIndex int) Decoration {
	return Decoration{line: line, kind: kind, annotationIndex: annotationIndex}
}

// Line returns the decorated line, 1-indexed.
func (d Decoration) Line() int {
	return d.line
}

// Kind returns the decoration kind.
func (d Decoration) Kind() DecorationKind {
	return d.kind
}

// AnnotationIndex returns the index of the source annotation in the list the
// decoration was computed from. It is -1 for non-annotation decorations.
func (d Decoration) AnnotationIndex() int {
	if d.kind != KindAnnotation {
		return -1
	}
	return d.annotationIndex
}

// ComputeDecorations fans each annotation out into one whole-line decoration
// per member of its line set, in annotation order then ascending line order.
func ComputeDecorations(annotations []Annotation) []Decoration {
	var decorations []Decoration
	for i, ann := range annotations {
		for _, line := range ann.Lines().Lines() {
			decorations = append(decorations, Decoration{
				line:            line,
				kind:            KindAnnotation,
				annotationIndex: i,
			})
		}
	}
	return decorations
}

// ComputeHighlights produces one highlight decoration per line.
func ComputeHighlights(lines []int) []Decoration {
	decorations := make([]Decoration, 0, len(lines))
	for _, line := range lines {
		decorations = append(decorations, Decoration{line: line, kind: KindHighlight, annotationIndex: -1})
	}
	return decorations
}

// FindAt returns the first annotation in list order whose line set contains
// line. When two annotations cover the same line, the earlier one wins. The
// second return value is false on a miss.
func FindAt(line int, annotations []Annotation) (Annotation, bool) {
	for _, ann := range annotations {
		if ann.Lines().Contains(line) {
			return ann, true
		}
	}
	return Annotation{}, false
}

// PopupAnchor is the screen-independent anchor for an annotation popup:
// rendered above the hovered line, horizontally at the hovered column.
type PopupAnchor struct {
	line       int
	column     int
	annotation Annotation
}

// Line returns the hovered line the popup anchors above.
func (p PopupAnchor) Line() int {
	return p.line
}

// Column returns the hovered column.
func (p PopupAnchor) Column() int {
	return p.column
}

// Annotation returns the annotation the popup shows.
func (p PopupAnchor) Annotation() Annotation {
	return p.annotation
}

// Overlay applies annotation decorations to one host widget and tracks the
// decoration ids it owns so updates replace rather than accumulate. Each
// editor instance owns its Overlay exclusively.
//
// Rapid step switching can fire a decoration callback after its step has
// been replaced. Every mutation therefore carries the generation it was
// computed for and is dropped when the overlay has since moved on.
type Overlay struct {
	host          Host
	generation    uint64
	decorationIDs []string
	diffMode      bool
	popup         *PopupAnchor
}

// NewOverlay creates an Overlay over host.
func NewOverlay(host Host) *Overlay {
	return &Overlay{host: host}
}

// Generation returns the current generation token. Callers snapshot it
// before any deferred work and pass it back to Apply.
func (o *Overlay) Generation() uint64 {
	return o.generation
}

// NextGeneration invalidates all outstanding callbacks, clears current
// decorations and returns the new generation token. Called on step switch.
func (o *Overlay) NextGeneration() uint64 {
	o.generation++
	o.clear()
	return o.generation
}

// SetDiffMode toggles diff view. Entering diff mode clears annotation
// decorations; diff view and annotation view are mutually exclusive per
// step.
func (o *Overlay) SetDiffMode(enabled bool) {
	o.diffMode = enabled
	if enabled {
		o.clear()
	}
}

// DiffMode reports whether diff view is active.
func (o *Overlay) DiffMode() bool {
	return o.diffMode
}

// Apply replaces the overlay's decorations with those computed from
// annotations. It no-ops when generation is stale or diff view is active.
// It reports whether the decorations were applied.
func (o *Overlay) Apply(generation uint64, annotations []Annotation) bool {
	if generation != o.generation || o.diffMode {
		return false
	}
	o.decorationIDs = o.host.ReplaceDecorations(o.decorationIDs, ComputeDecorations(annotations))
	return true
}

// ApplyHighlights adds highlight decorations alongside the current set. The
// same staleness and diff-mode rules as Apply hold.
func (o *Overlay) ApplyHighlights(generation uint64, lines []int) bool {
	if generation != o.generation || o.diffMode {
		return false
	}
	ids := o.host.ReplaceDecorations(nil, ComputeHighlights(lines))
	o.decorationIDs = append(o.decorationIDs, ids...)
	return true
}

// HoverAt maps a screen coordinate to a document line and looks up the
// annotation there. On a hit the popup anchor is recorded and returned; on
// a miss any shown popup is cleared.
func (o *Overlay) HoverAt(x, y float64, annotations []Annotation) (PopupAnchor, bool) {
	pos, ok := o.host.PositionAt(x, y)
	if !ok {
		o.popup = nil
		return PopupAnchor{}, false
	}
	ann, ok := FindAt(pos.Line, annotations)
	if !ok {
		o.popup = nil
		return PopupAnchor{}, false
	}
	anchor := PopupAnchor{line: pos.Line, column: pos.Column, annotation: ann}
	o.popup = &anchor
	return anchor, true
}

// Popup returns the currently shown popup anchor, if any.
func (o *Overlay) Popup() (PopupAnchor, bool) {
	if o.popup == nil {
		return PopupAnchor{}, false
	}
	return *o.popup, true
}

// MouseLeave clears any shown popup.
func (o *Overlay) MouseLeave() {
	o.popup = nil
}

func (o *Overlay) clear() {
	if len(o.decorationIDs) > 0 {
		o.decorationIDs = o.host.ReplaceDecorations(o.decorationIDs, nil)
	}
	o.popup = nil
}
