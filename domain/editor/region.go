package editor

import "strings"

// Sentinel markers recognised in source text. They are matched by substring
// so leading indentation and trailing text on the line do not matter.
const (
	beginSentinel = "// @editable-begin"
	endSentinel   = "// @editable-end"
)

// Defaults applied when a begin sentinel carries no title or description.
const (
	DefaultRegionTitle       = "Editable Section"
	DefaultRegionDescription = "This section can be modified"
)

// Region is a contiguous span of source lines marked editable by sentinel
// comments. Line coordinates are 1-indexed and inclusive. Regions are derived
// from source text and replaced wholesale on every change, never patched.
type Region struct {
	startLine   int
	endLine     int
	title       string
	description string
}

// NewRegion creates a new Region.
func NewRegion(startLine, endLine int, title, description string) Region {
	return Region{
		startLine:   startLine,
		endLine:     endLine,
		title:       title,
		description: description,
	}
}

// StartLine returns the first editable line, 1-indexed.
func (r Region) StartLine() int {
	return r.startLine
}

// EndLine returns the last editable line, 1-indexed and inclusive.
func (r Region) EndLine() int {
	return r.endLine
}

// Title returns the region title.
func (r Region) Title() string {
	return r.title
}

// Description returns the region description.
func (r Region) Description() string {
	return r.description
}

// Contains reports whether line falls inside the region.
func (r Region) Contains(line int) bool {
	return line >= r.startLine && line <= r.endLine
}

// ContainsRange reports whether [startLine, endLine] falls entirely inside
// the region.
func (r Region) ContainsRange(startLine, endLine int) bool {
	return startLine >= r.startLine && endLine <= r.endLine
}

// clampTo clips the region to [1, lineCount]. The second return value is
// false when nothing of the region survives inside the document.
func (r Region) clampTo(lineCount int) (Region, bool) {
	clamped := r
	if clamped.startLine < 1 {
		clamped.startLine = 1
	}
	if clamped.endLine > lineCount {
		clamped.endLine = lineCount
	}
	if clamped.startLine > clamped.endLine {
		return Region{}, false
	}
	return clamped, true
}

// ParseRegions extracts editable regions from source text with a single
// linear scan. The begin sentinel opens a region starting at the following
// line; the end sentinel closes it at the preceding line, so neither sentinel
// line is part of the region.
//
// Malformed input never fails, it only yields fewer regions:
//   - a begin sentinel with no matching end is dropped
//   - a second begin sentinel before a matching end discards the open region
//     and starts a fresh one
//   - a region whose sentinels enclose no lines is dropped
//   - an end sentinel with no open region is ignored
func ParseRegions(text string) []Region {
	lines := strings.Split(text, "\n")

	var regions []Region
	var open *Region

	for i, line := range lines {
		lineNo := i + 1

		if idx := strings.Index(line, beginSentinel); idx >= 0 {
			title, description := parseRegionLabel(line[idx+len(beginSentinel):])
			open = &Region{
				startLine:   lineNo + 1,
				title:       title,
				description: description,
			}
			continue
		}

		if strings.Contains(line, endSentinel) {
			if open == nil {
				continue
			}
			open.endLine = lineNo - 1
			if open.startLine <= open.endLine {
				regions = append(regions, *open)
			}
			open = nil
		}
	}

	return regions
}

// parseRegionLabel splits the text following a begin sentinel into a title
// and description on the first " - " separator.
func parseRegionLabel(label string) (title, description string) {
	label = strings.TrimSpace(label)
	if label == "" {
		return DefaultRegionTitle, DefaultRegionDescription
	}

	if before, after, found := strings.Cut(label, " - "); found {
		title = strings.TrimSpace(before)
		description = strings.TrimSpace(after)
		if title == "" {
			title = DefaultRegionTitle
		}
		if description == "" {
			description = DefaultRegionDescription
		}
		return title, description
	}

	return label, DefaultRegionDescription
}
