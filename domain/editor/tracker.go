package editor

// Tracker owns the current set of editable regions for one source buffer and
// answers line and range editability queries. Regions are re-derived from the
// full text on every change.
//
// A Tracker queried before its first SetText holds no regions, so every
// editability query answers false. This covers editor widgets whose mount
// callbacks run after the surrounding component has been constructed.
type Tracker struct {
	regions []Region
}

// NewTracker creates an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// NewTrackerFromText creates a Tracker with regions parsed from text.
func NewTrackerFromText(text string) *Tracker {
	t := NewTracker()
	t.SetText(text)
	return t
}

// SetText replaces the tracked regions with those parsed from text.
func (t *Tracker) SetText(text string) {
	t.regions = ParseRegions(text)
}

// Regions returns the current regions in source order.
func (t *Tracker) Regions() []Region {
	regions := make([]Region, len(t.regions))
	copy(regions, t.regions)
	return regions
}

// IsLineEditable reports whether line falls inside any editable region.
func (t *Tracker) IsLineEditable(line int) bool {
	for _, r := range t.regions {
		if r.Contains(line) {
			return true
		}
	}
	return false
}

// IsRangeEditable reports whether a single region fully contains
// [startLine, endLine]. A range that spans a region boundary is not
// editable, even when every line in it belongs to some region.
func (t *Tracker) IsRangeEditable(startLine, endLine int) bool {
	if startLine > endLine {
		startLine, endLine = endLine, startLine
	}
	for _, r := range t.regions {
		if r.ContainsRange(startLine, endLine) {
			return true
		}
	}
	return false
}

// ClampToDocument clips every region to [1, lineCount] and drops regions
// left empty by the clip. The tracker keeps the clamped set. Regions can
// reference lines beyond the document when they were parsed from stale text
// during an editor mount race.
func (t *Tracker) ClampToDocument(lineCount int) []Region {
	clamped := make([]Region, 0, len(t.regions))
	for _, r := range t.regions {
		if c, ok := r.clampTo(lineCount); ok {
			clamped = append(clamped, c)
		}
	}
	t.regions = clamped
	return t.Regions()
}
