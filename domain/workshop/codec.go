package workshop

import (
	"fmt"
	"time"

	"github.com/movelabhq/movelab/domain/editor"
	"gopkg.in/yaml.v3"
)

// YAML document shapes for workshop import and export. Ids and timestamps
// travel with the document so an exported workshop re-imports unchanged;
// missing ids get generated on import.
type workshopDoc struct {
	ID          string    `yaml:"id,omitempty"`
	Title       string    `yaml:"title"`
	Description string    `yaml:"description,omitempty"`
	CreatedAt   time.Time `yaml:"created_at,omitempty"`
	UpdatedAt   time.Time `yaml:"updated_at,omitempty"`
	Steps       []stepDoc `yaml:"steps"`
}

type stepDoc struct {
	ID               string          `yaml:"id,omitempty"`
	Title            string          `yaml:"title"`
	Description      string          `yaml:"description,omitempty"`
	SourceCode       string          `yaml:"source_code"`
	Revision         int             `yaml:"revision,omitempty"`
	Annotations      []annotationDoc `yaml:"annotations,omitempty"`
	HighlightedLines []int           `yaml:"highlighted_lines,omitempty"`
	DiffWithPrevious bool            `yaml:"diff_with_previous,omitempty"`
}

type annotationDoc struct {
	Lines    []int  `yaml:"lines"`
	Content  string `yaml:"content"`
	ImageID  string `yaml:"image_id,omitempty"`
	ImageURL string `yaml:"image_url,omitempty"`
}

// ExportYAML serializes a workshop to a YAML document.
func ExportYAML(w Workshop) ([]byte, error) {
	doc := workshopDoc{
		ID:          w.ID(),
		Title:       w.Title(),
		Description: w.Description(),
		CreatedAt:   w.CreatedAt(),
		UpdatedAt:   w.UpdatedAt(),
	}
	for _, step := range w.Steps() {
		sd := stepDoc{
			ID:               step.ID(),
			Title:            step.Title(),
			Description:      step.Description(),
			SourceCode:       step.SourceCode(),
			Revision:         step.Revision(),
			HighlightedLines: step.HighlightedLines(),
			DiffWithPrevious: step.DiffWithPrevious(),
		}
		for _, ann := range step.Annotations() {
			sd.Annotations = append(sd.Annotations, annotationDoc{
				Lines:    ann.Lines().Lines(),
				Content:  ann.Content(),
				ImageID:  ann.Image().ID(),
				ImageURL: ann.Image().URL(),
			})
		}
		doc.Steps = append(doc.Steps, sd)
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal workshop: %w", err)
	}
	return data, nil
}

// ImportYAML parses a YAML document into a workshop. Annotations with no
// valid lines are rejected rather than silently dropped since an import is
// an explicit authoring action.
func ImportYAML(data []byte) (Workshop, error) {
	var doc workshopDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Workshop{}, fmt.Errorf("unmarshal workshop: %w", err)
	}
	if doc.Title == "" {
		return Workshop{}, fmt.Errorf("import workshop: %w", ErrEmptyTitle)
	}

	w, err := NewWorkshop(doc.Title, doc.Description)
	if err != nil {
		return Workshop{}, err
	}
	if doc.ID != "" {
		w = ReconstructWorkshop(doc.ID, doc.Title, doc.Description, orNow(doc.CreatedAt), orNow(doc.UpdatedAt), nil)
	}

	for i, sd := range doc.Steps {
		if sd.Title == "" {
			return Workshop{}, fmt.Errorf("import step %d: %w", i+1, ErrEmptyTitle)
		}

		step, err := NewStep(sd.Title, sd.Description, sd.SourceCode)
		if err != nil {
			return Workshop{}, fmt.Errorf("import step %d: %w", i+1, err)
		}
		if sd.ID != "" {
			revision := sd.Revision
			if revision < 1 {
				revision = 1
			}
			step = ReconstructStep(sd.ID, sd.Title, sd.Description, sd.SourceCode, revision, nil, nil, false)
		}

		annotations := make([]editor.Annotation, 0, len(sd.Annotations))
		for j, ad := range sd.Annotations {
			lines, err := editor.NewLineSet(ad.Lines...)
			if err != nil {
				return Workshop{}, fmt.Errorf("import step %d annotation %d: %w", i+1, j+1, err)
			}
			ann := editor.NewAnnotation(lines, ad.Content)
			if ad.ImageID != "" || ad.ImageURL != "" {
				ann = ann.WithImage(editor.NewImageRef(ad.ImageID, ad.ImageURL))
			}
			annotations = append(annotations, ann)
		}

		step = step.
			WithAnnotations(annotations).
			WithHighlightedLines(sd.HighlightedLines).
			WithDiffWithPrevious(sd.DiffWithPrevious)
		w = w.AppendStep(step)
	}

	return w, nil
}

func orNow(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t
}
