package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/movelabhq/movelab/domain/editor"
	"github.com/movelabhq/movelab/domain/store"
	"github.com/movelabhq/movelab/domain/workshop"
	"github.com/movelabhq/movelab/infrastructure/render"
	"github.com/movelabhq/movelab/internal/database"
)

// WorkshopService implements workshop authoring and viewing.
type WorkshopService struct {
	workshops     workshop.Store
	images        workshop.ImageStore
	renderer      *render.Renderer
	maxImageBytes int64
}

// NewWorkshopService creates a WorkshopService.
func NewWorkshopService(workshops workshop.Store, images workshop.ImageStore, renderer *render.Renderer, maxImageBytes int64) *WorkshopService {
	return &WorkshopService{
		workshops:     workshops,
		images:        images,
		renderer:      renderer,
		maxImageBytes: maxImageBytes,
	}
}

// CreateWorkshop creates and persists an empty workshop.
func (s *WorkshopService) CreateWorkshop(ctx context.Context, title, description string) (workshop.Workshop, error) {
	w, err := workshop.NewWorkshop(title, description)
	if err != nil {
		return workshop.Workshop{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.workshops.Save(ctx, w); err != nil {
		return workshop.Workshop{}, err
	}
	return w, nil
}

// GetWorkshop returns a workshop with its steps.
func (s *WorkshopService) GetWorkshop(ctx context.Context, id string) (workshop.Workshop, error) {
	w, err := s.workshops.FindOne(ctx, store.WithID(id))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return workshop.Workshop{}, fmt.Errorf("%w: workshop %s", ErrNotFound, id)
		}
		return workshop.Workshop{}, err
	}
	return w, nil
}

// ListWorkshops returns workshops ordered by most recently updated.
func (s *WorkshopService) ListWorkshops(ctx context.Context, limit, offset int) ([]workshop.Workshop, error) {
	options := []store.Option{store.WithOrderDesc("updated_at")}
	if limit > 0 {
		options = append(options, store.WithLimit(limit))
	}
	if offset > 0 {
		options = append(options, store.WithOffset(offset))
	}
	return s.workshops.Find(ctx, options...)
}

// SearchWorkshops returns workshops whose title or description contains the
// query, case-insensitively. Listing is small enough to filter in memory.
func (s *WorkshopService) SearchWorkshops(ctx context.Context, query string) ([]workshop.Workshop, error) {
	all, err := s.workshops.Find(ctx, store.WithOrderDesc("updated_at"))
	if err != nil {
		return nil, err
	}
	if query == "" {
		return all, nil
	}

	needle := strings.ToLower(query)
	var matched []workshop.Workshop
	for _, w := range all {
		if strings.Contains(strings.ToLower(w.Title()), needle) ||
			strings.Contains(strings.ToLower(w.Description()), needle) {
			matched = append(matched, w)
		}
	}
	return matched, nil
}

// UpdateWorkshop replaces a workshop's title and description.
func (s *WorkshopService) UpdateWorkshop(ctx context.Context, id, title, description string) (workshop.Workshop, error) {
	if title == "" {
		return workshop.Workshop{}, fmt.Errorf("%w: %v", ErrInvalidInput, workshop.ErrEmptyTitle)
	}

	w, err := s.GetWorkshop(ctx, id)
	if err != nil {
		return workshop.Workshop{}, err
	}

	w = w.WithTitle(title).WithDescription(description)
	if err := s.workshops.Save(ctx, w); err != nil {
		return workshop.Workshop{}, err
	}
	return w, nil
}

// DeleteWorkshop removes a workshop and its steps.
func (s *WorkshopService) DeleteWorkshop(ctx context.Context, id string) error {
	if _, err := s.GetWorkshop(ctx, id); err != nil {
		return err
	}
	return s.workshops.Delete(ctx, id)
}

// AddStep appends a step to a workshop.
func (s *WorkshopService) AddStep(ctx context.Context, workshopID, title, description, sourceCode string) (workshop.Step, error) {
	w, err := s.GetWorkshop(ctx, workshopID)
	if err != nil {
		return workshop.Step{}, err
	}

	step, err := workshop.NewStep(title, description, sourceCode)
	if err != nil {
		return workshop.Step{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.workshops.Save(ctx, w.AppendStep(step)); err != nil {
		return workshop.Step{}, err
	}
	return step, nil
}

// StepUpdate carries the optional fields of a step update. Nil fields are
// left unchanged.
type StepUpdate struct {
	Title            *string
	Description      *string
	SourceCode       *string
	Annotations      []editor.Annotation
	SetAnnotations   bool
	HighlightedLines []int
	SetHighlights    bool
	DiffWithPrevious *bool
}

// UpdateStep applies a partial update to one step. Replacing the source
// bumps the step revision and clamps annotation lines to the new document.
func (s *WorkshopService) UpdateStep(ctx context.Context, workshopID, stepID string, update StepUpdate) (workshop.Step, error) {
	w, err := s.GetWorkshop(ctx, workshopID)
	if err != nil {
		return workshop.Step{}, err
	}

	step, err := w.Step(stepID)
	if err != nil {
		return workshop.Step{}, fmt.Errorf("%w: step %s", ErrNotFound, stepID)
	}

	if update.Title != nil {
		if *update.Title == "" {
			return workshop.Step{}, fmt.Errorf("%w: %v", ErrInvalidInput, workshop.ErrEmptyTitle)
		}
		step = step.WithTitle(*update.Title)
	}
	if update.Description != nil {
		step = step.WithDescription(*update.Description)
	}
	if update.SetAnnotations {
		step = step.WithAnnotations(update.Annotations)
	}
	if update.SetHighlights {
		step = step.WithHighlightedLines(update.HighlightedLines)
	}
	if update.SourceCode != nil {
		step = step.WithSourceCode(*update.SourceCode)
	}
	if update.DiffWithPrevious != nil {
		step = step.WithDiffWithPrevious(*update.DiffWithPrevious)
	}

	w, err = w.ReplaceStep(step)
	if err != nil {
		return workshop.Step{}, fmt.Errorf("%w: step %s", ErrNotFound, stepID)
	}
	if err := s.workshops.Save(ctx, w); err != nil {
		return workshop.Step{}, err
	}
	return step, nil
}

// RemoveStep deletes a step from a workshop.
func (s *WorkshopService) RemoveStep(ctx context.Context, workshopID, stepID string) error {
	w, err := s.GetWorkshop(ctx, workshopID)
	if err != nil {
		return err
	}

	w, err = w.RemoveStep(stepID)
	if err != nil {
		return fmt.Errorf("%w: step %s", ErrNotFound, stepID)
	}
	return s.workshops.Save(ctx, w)
}

// MoveStep reorders a step within a workshop.
func (s *WorkshopService) MoveStep(ctx context.Context, workshopID, stepID string, position int) error {
	w, err := s.GetWorkshop(ctx, workshopID)
	if err != nil {
		return err
	}

	w, err = w.MoveStep(stepID, position)
	if err != nil {
		return fmt.Errorf("%w: step %s at position %d", ErrNotFound, stepID, position)
	}
	return s.workshops.Save(ctx, w)
}

// ImportWorkshop parses a YAML export and persists it.
func (s *WorkshopService) ImportWorkshop(ctx context.Context, data []byte) (workshop.Workshop, error) {
	w, err := workshop.ImportYAML(data)
	if err != nil {
		return workshop.Workshop{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.workshops.Save(ctx, w); err != nil {
		return workshop.Workshop{}, err
	}
	return w, nil
}

// ExportWorkshop serializes a workshop to YAML.
func (s *WorkshopService) ExportWorkshop(ctx context.Context, id string) ([]byte, error) {
	w, err := s.GetWorkshop(ctx, id)
	if err != nil {
		return nil, err
	}
	return workshop.ExportYAML(w)
}

// UploadImage stores an annotation image and returns it with a generated id.
func (s *WorkshopService) UploadImage(ctx context.Context, name, contentType string, data []byte) (workshop.Image, error) {
	if len(data) == 0 {
		return workshop.Image{}, fmt.Errorf("%w: image data must not be empty", ErrInvalidInput)
	}
	if s.maxImageBytes > 0 && int64(len(data)) > s.maxImageBytes {
		return workshop.Image{}, fmt.Errorf("%w: image exceeds %d bytes", ErrTooLarge, s.maxImageBytes)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return workshop.Image{}, fmt.Errorf("%w: content type %q is not an image", ErrInvalidInput, contentType)
	}

	img := workshop.NewImage(uuid.New().String(), name, contentType, data)
	if err := s.images.SaveImage(ctx, img); err != nil {
		return workshop.Image{}, err
	}
	return img, nil
}

// GetImage returns a stored image.
func (s *WorkshopService) GetImage(ctx context.Context, id string) (workshop.Image, error) {
	img, err := s.images.FindImage(ctx, id)
	if err != nil {
		if errors.Is(err, workshop.ErrImageNotFound) {
			return workshop.Image{}, fmt.Errorf("%w: image %s", ErrNotFound, id)
		}
		return workshop.Image{}, err
	}
	return img, nil
}

// DeleteImage removes a stored image.
func (s *WorkshopService) DeleteImage(ctx context.Context, id string) error {
	return s.images.DeleteImage(ctx, id)
}

// RenderedAnnotation pairs an annotation with its markdown rendered to HTML.
type RenderedAnnotation struct {
	Lines    []int
	HTML     string
	ImageID  string
	ImageURL string
}

// RenderedStep is a step prepared for the viewer: highlighted source,
// rendered annotations, and the diff against the previous step when the
// step is flagged for diff view. Diff and annotations are mutually
// exclusive, so a diff step carries no rendered annotations.
type RenderedStep struct {
	Step        workshop.Step
	SourceHTML  string
	Annotations []RenderedAnnotation
	Diff        []render.DiffBlock
}

// RenderStep prepares one step of a workshop for display.
func (s *WorkshopService) RenderStep(ctx context.Context, workshopID, stepID string) (RenderedStep, error) {
	w, err := s.GetWorkshop(ctx, workshopID)
	if err != nil {
		return RenderedStep{}, err
	}

	step, err := w.Step(stepID)
	if err != nil {
		return RenderedStep{}, fmt.Errorf("%w: step %s", ErrNotFound, stepID)
	}

	sourceHTML, err := s.renderer.Highlight(step.SourceCode(), "move")
	if err != nil {
		return RenderedStep{}, fmt.Errorf("highlight step %s: %w", stepID, err)
	}

	rendered := RenderedStep{Step: step, SourceHTML: sourceHTML}

	if step.DiffWithPrevious() {
		previous := previousStep(w, stepID)
		rendered.Diff = render.DiffLines(previous, step.SourceCode())
		return rendered, nil
	}

	for _, ann := range step.Annotations() {
		rendered.Annotations = append(rendered.Annotations, RenderedAnnotation{
			Lines:    ann.Lines().Lines(),
			HTML:     s.renderer.Markdown(ann.Content()),
			ImageID:  ann.Image().ID(),
			ImageURL: ann.Image().URL(),
		})
	}
	return rendered, nil
}

// previousStep returns the source of the step preceding stepID, or empty
// when it is the first step.
func previousStep(w workshop.Workshop, stepID string) string {
	steps := w.Steps()
	for i, step := range steps {
		if step.ID() == stepID && i > 0 {
			return steps[i-1].SourceCode()
		}
	}
	return ""
}
