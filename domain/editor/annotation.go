package editor

import (
	"errors"
	"sort"
)

// ErrEmptyLineSet indicates a LineSet was constructed with no valid lines.
var ErrEmptyLineSet = errors.New("line set must contain at least one positive line")

// LineSet is a non-empty set of positive 1-indexed line numbers. It keys an
// annotation to the lines it describes.
type LineSet struct {
	lines []int
}

// NewLineSet creates a LineSet from the given line numbers. Duplicates are
// collapsed and lines below 1 are rejected.
func NewLineSet(lines ...int) (LineSet, error) {
	seen := make(map[int]struct{}, len(lines))
	unique := make([]int, 0, len(lines))
	for _, line := range lines {
		if line < 1 {
			return LineSet{}, ErrEmptyLineSet
		}
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		unique = append(unique, line)
	}
	if len(unique) == 0 {
		return LineSet{}, ErrEmptyLineSet
	}
	sort.Ints(unique)
	return LineSet{lines: unique}, nil
}

// Lines returns the member lines in ascending order.
func (s LineSet) Lines() []int {
	lines := make([]int, len(s.lines))
	copy(lines, s.lines)
	return lines
}

// Len returns the number of member lines.
func (s LineSet) Len() int {
	return len(s.lines)
}

// Contains reports whether line is a member of the set.
func (s LineSet) Contains(line int) bool {
	idx := sort.SearchInts(s.lines, line)
	return idx < len(s.lines) && s.lines[idx] == line
}

// Clamp returns the set restricted to [1, lineCount]. The second return
// value is false when no member survives.
func (s LineSet) Clamp(lineCount int) (LineSet, bool) {
	kept := make([]int, 0, len(s.lines))
	for _, line := range s.lines {
		if line <= lineCount {
			kept = append(kept, line)
		}
	}
	if len(kept) == 0 {
		return LineSet{}, false
	}
	return LineSet{lines: kept}, true
}

// ImageRef identifies a stored image attached to an annotation.
type ImageRef struct {
	id  string
	url string
}

// NewImageRef creates an ImageRef.
func NewImageRef(id, url string) ImageRef {
	return ImageRef{id: id, url: url}
}

// ID returns the image identifier.
func (r ImageRef) ID() string {
	return r.id
}

// URL returns the image URL.
func (r ImageRef) URL() string {
	return r.url
}

// IsZero reports whether the reference is empty.
func (r ImageRef) IsZero() bool {
	return r.id == "" && r.url == ""
}

// Annotation binds markdown content, and optionally an image, to a set of
// source lines. Annotations are authored per workshop step and rendered as
// line decorations over the step's source buffer.
type Annotation struct {
	lines   LineSet
	content string
	image   ImageRef
}

// NewAnnotation creates an Annotation over lines with markdown content.
func NewAnnotation(lines LineSet, content string) Annotation {
	return Annotation{lines: lines, content: content}
}

// WithImage returns a copy of the annotation carrying an image reference.
func (a Annotation) WithImage(image ImageRef) Annotation {
	a.image = image
	return a
}

// Lines returns the annotated line set.
func (a Annotation) Lines() LineSet {
	return a.lines
}

// Content returns the markdown content.
func (a Annotation) Content() string {
	return a.content
}

// Image returns the attached image reference, zero when absent.
func (a Annotation) Image() ImageRef {
	return a.image
}

// Clamp returns the annotation restricted to lines within [1, lineCount].
// The second return value is false when no annotated line survives.
func (a Annotation) Clamp(lineCount int) (Annotation, bool) {
	clamped, ok := a.lines.Clamp(lineCount)
	if !ok {
		return Annotation{}, false
	}
	a.lines = clamped
	return a, true
}
