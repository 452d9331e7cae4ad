package workshop

import (
	"strings"

	"github.com/google/uuid"
	"github.com/movelabhq/movelab/domain/editor"
)

// Step is one page of a workshop: source code plus the annotations,
// highlights and diff flag rendered over it.
//
// Annotations reference the source by line number, so a source change can
// leave them pointing past the end of the document. Replacing the source
// bumps the step revision and clamps every line reference to the new
// document length, dropping annotations whose lines all vanished. Stale
// references are repaired at the moment they become stale rather than
// deferred to render time.
type Step struct {
	id               string
	title            string
	description      string
	sourceCode       string
	revision         int
	annotations      []editor.Annotation
	highlightedLines []int
	diffWithPrevious bool
}

// NewStep creates a Step with a generated id at revision 1.
func NewStep(title, description, sourceCode string) (Step, error) {
	if title == "" {
		return Step{}, ErrEmptyTitle
	}
	return Step{
		id:          uuid.New().String(),
		title:       title,
		description: description,
		sourceCode:  sourceCode,
		revision:    1,
	}, nil
}

// ReconstructStep rebuilds a Step from persisted state.
func ReconstructStep(id, title, description, sourceCode string, revision int, annotations []editor.Annotation, highlightedLines []int, diffWithPrevious bool) Step {
	s := Step{
		id:               id,
		title:            title,
		description:      description,
		sourceCode:       sourceCode,
		revision:         revision,
		diffWithPrevious: diffWithPrevious,
	}
	s.annotations = make([]editor.Annotation, len(annotations))
	copy(s.annotations, annotations)
	s.highlightedLines = make([]int, len(highlightedLines))
	copy(s.highlightedLines, highlightedLines)
	return s
}

// ID returns the step id.
func (s Step) ID() string {
	return s.id
}

// Title returns the step title.
func (s Step) Title() string {
	return s.title
}

// Description returns the step description.
func (s Step) Description() string {
	return s.description
}

// SourceCode returns the step source code.
func (s Step) SourceCode() string {
	return s.sourceCode
}

// Revision returns the source revision, starting at 1 and bumped on every
// source replacement.
func (s Step) Revision() int {
	return s.revision
}

// LineCount returns the number of lines in the source code.
func (s Step) LineCount() int {
	return strings.Count(s.sourceCode, "\n") + 1
}

// Annotations returns the step annotations in authoring order.
func (s Step) Annotations() []editor.Annotation {
	annotations := make([]editor.Annotation, len(s.annotations))
	copy(annotations, s.annotations)
	return annotations
}

// HighlightedLines returns the highlighted line numbers.
func (s Step) HighlightedLines() []int {
	lines := make([]int, len(s.highlightedLines))
	copy(lines, s.highlightedLines)
	return lines
}

// DiffWithPrevious reports whether the step renders as a diff against the
// previous step instead of an annotated buffer.
func (s Step) DiffWithPrevious() bool {
	return s.diffWithPrevious
}

// WithTitle returns a copy with the title replaced.
func (s Step) WithTitle(title string) Step {
	s.title = title
	return s
}

// WithDescription returns a copy with the description replaced.
func (s Step) WithDescription(description string) Step {
	s.description = description
	return s
}

// WithSourceCode returns a copy with the source replaced, the revision
// bumped, and every line reference clamped to the new document length.
func (s Step) WithSourceCode(sourceCode string) Step {
	if sourceCode == s.sourceCode {
		return s
	}
	s.sourceCode = sourceCode
	s.revision++

	lineCount := s.LineCount()

	kept := make([]editor.Annotation, 0, len(s.annotations))
	for _, ann := range s.annotations {
		if clamped, ok := ann.Clamp(lineCount); ok {
			kept = append(kept, clamped)
		}
	}
	s.annotations = kept

	lines := make([]int, 0, len(s.highlightedLines))
	for _, line := range s.highlightedLines {
		if line >= 1 && line <= lineCount {
			lines = append(lines, line)
		}
	}
	s.highlightedLines = lines

	return s
}

// WithAnnotations returns a copy with the annotations replaced.
func (s Step) WithAnnotations(annotations []editor.Annotation) Step {
	s.annotations = make([]editor.Annotation, len(annotations))
	copy(s.annotations, annotations)
	return s
}

// AddAnnotation returns a copy with the annotation appended.
func (s Step) AddAnnotation(annotation editor.Annotation) Step {
	annotations := make([]editor.Annotation, len(s.annotations), len(s.annotations)+1)
	copy(annotations, s.annotations)
	s.annotations = append(annotations, annotation)
	return s
}

// WithHighlightedLines returns a copy with the highlighted lines replaced.
func (s Step) WithHighlightedLines(lines []int) Step {
	s.highlightedLines = make([]int, len(lines))
	copy(s.highlightedLines, lines)
	return s
}

// WithDiffWithPrevious returns a copy with the diff flag set.
func (s Step) WithDiffWithPrevious(enabled bool) Step {
	s.diffWithPrevious = enabled
	return s
}

// EditableRegions parses the step source for editable regions.
func (s Step) EditableRegions() []editor.Region {
	return editor.ParseRegions(s.sourceCode)
}
