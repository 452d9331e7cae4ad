package persistence

import (
	"encoding/json"
	"fmt"

	"github.com/movelabhq/movelab/domain/editor"
	"github.com/movelabhq/movelab/domain/workshop"
)

// workshopMapper maps workshop rows without their steps. Steps are loaded
// and attached by the store.
type workshopMapper struct{}

func (workshopMapper) ToDomain(entity Workshop) workshop.Workshop {
	return workshop.ReconstructWorkshop(
		entity.ID,
		entity.Title,
		entity.Description,
		entity.CreatedAt,
		entity.UpdatedAt,
		nil,
	)
}

func (workshopMapper) ToModel(domain workshop.Workshop) Workshop {
	return Workshop{
		ID:          domain.ID(),
		Title:       domain.Title(),
		Description: domain.Description(),
		CreatedAt:   domain.CreatedAt(),
		UpdatedAt:   domain.UpdatedAt(),
	}
}

type annotationRecord struct {
	Lines    []int  `json:"lines"`
	Content  string `json:"content"`
	ImageID  string `json:"image_id,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

func stepToModel(workshopID string, position int, step workshop.Step) (Step, error) {
	annotations, err := encodeAnnotations(step.Annotations())
	if err != nil {
		return Step{}, fmt.Errorf("encode annotations for step %s: %w", step.ID(), err)
	}
	highlighted, err := json.Marshal(step.HighlightedLines())
	if err != nil {
		return Step{}, fmt.Errorf("encode highlighted lines for step %s: %w", step.ID(), err)
	}

	return Step{
		ID:               step.ID(),
		WorkshopID:       workshopID,
		Position:         position,
		Title:            step.Title(),
		Description:      step.Description(),
		SourceCode:       step.SourceCode(),
		Revision:         step.Revision(),
		Annotations:      string(annotations),
		HighlightedLines: string(highlighted),
		DiffWithPrevious: step.DiffWithPrevious(),
	}, nil
}

func stepToDomain(entity Step) (workshop.Step, error) {
	annotations, err := decodeAnnotations(entity.Annotations)
	if err != nil {
		return workshop.Step{}, fmt.Errorf("decode annotations for step %s: %w", entity.ID, err)
	}

	var highlighted []int
	if entity.HighlightedLines != "" {
		if err := json.Unmarshal([]byte(entity.HighlightedLines), &highlighted); err != nil {
			return workshop.Step{}, fmt.Errorf("decode highlighted lines for step %s: %w", entity.ID, err)
		}
	}

	return workshop.ReconstructStep(
		entity.ID,
		entity.Title,
		entity.Description,
		entity.SourceCode,
		entity.Revision,
		annotations,
		highlighted,
		entity.DiffWithPrevious,
	), nil
}

func encodeAnnotations(annotations []editor.Annotation) ([]byte, error) {
	records := make([]annotationRecord, 0, len(annotations))
	for _, ann := range annotations {
		records = append(records, annotationRecord{
			Lines:    ann.Lines().Lines(),
			Content:  ann.Content(),
			ImageID:  ann.Image().ID(),
			ImageURL: ann.Image().URL(),
		})
	}
	return json.Marshal(records)
}

func decodeAnnotations(raw string) ([]editor.Annotation, error) {
	if raw == "" {
		return nil, nil
	}

	var records []annotationRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, err
	}

	annotations := make([]editor.Annotation, 0, len(records))
	for _, rec := range records {
		lines, err := editor.NewLineSet(rec.Lines...)
		if err != nil {
			return nil, fmt.Errorf("annotation %q: %w", rec.Content, err)
		}
		ann := editor.NewAnnotation(lines, rec.Content)
		if rec.ImageID != "" || rec.ImageURL != "" {
			ann = ann.WithImage(editor.NewImageRef(rec.ImageID, rec.ImageURL))
		}
		annotations = append(annotations, ann)
	}
	return annotations, nil
}

// imageMapper maps image rows.
type imageMapper struct{}

func (imageMapper) ToDomain(entity Image) workshop.Image {
	return workshop.ReconstructImage(entity.ID, entity.Name, entity.ContentType, entity.Data, entity.CreatedAt)
}

func (imageMapper) ToModel(domain workshop.Image) Image {
	return Image{
		ID:          domain.ID(),
		Name:        domain.Name(),
		ContentType: domain.ContentType(),
		Data:        domain.Data(),
		CreatedAt:   domain.CreatedAt(),
	}
}
