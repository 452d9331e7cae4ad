// Package dto defines the wire types of the v1 API.
package dto

import (
	"time"

	"github.com/movelabhq/movelab/application/service"
	"github.com/movelabhq/movelab/domain/workshop"
	"github.com/movelabhq/movelab/infrastructure/render"
)

// WorkshopRequest creates or updates a workshop.
type WorkshopRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// WorkshopResponse is one workshop, with steps when loaded.
type WorkshopResponse struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	Steps       []StepResponse `json:"steps,omitempty"`
}

// StepRequest creates a step.
type StepRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	SourceCode  string `json:"source_code"`
}

// StepUpdateRequest partially updates a step. Absent fields stay unchanged.
type StepUpdateRequest struct {
	Title            *string             `json:"title,omitempty"`
	Description      *string             `json:"description,omitempty"`
	SourceCode       *string             `json:"source_code,omitempty"`
	Annotations      []AnnotationRequest `json:"annotations,omitempty"`
	HighlightedLines []int               `json:"highlighted_lines,omitempty"`
	DiffWithPrevious *bool               `json:"diff_with_previous,omitempty"`
}

// AnnotationRequest is one annotation in a step update.
type AnnotationRequest struct {
	Lines    []int  `json:"lines"`
	Content  string `json:"content"`
	ImageID  string `json:"image_id,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

// AnnotationResponse is one annotation on a step.
type AnnotationResponse struct {
	Lines    []int  `json:"lines"`
	Content  string `json:"content"`
	ImageID  string `json:"image_id,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

// StepResponse is one step of a workshop.
type StepResponse struct {
	ID               string               `json:"id"`
	Title            string               `json:"title"`
	Description      string               `json:"description,omitempty"`
	SourceCode       string               `json:"source_code"`
	Revision         int                  `json:"revision"`
	Annotations      []AnnotationResponse `json:"annotations,omitempty"`
	HighlightedLines []int                `json:"highlighted_lines,omitempty"`
	DiffWithPrevious bool                 `json:"diff_with_previous"`
}

// MoveStepRequest reorders a step.
type MoveStepRequest struct {
	Position int `json:"position"`
}

// RenderedAnnotationResponse is an annotation with rendered markdown.
type RenderedAnnotationResponse struct {
	Lines    []int  `json:"lines"`
	HTML     string `json:"html"`
	ImageID  string `json:"image_id,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

// DiffBlockResponse is one run of diff lines.
type DiffBlockResponse struct {
	Op    string   `json:"op"`
	Lines []string `json:"lines"`
}

// RenderedStepResponse is a step prepared for display.
type RenderedStepResponse struct {
	Step        StepResponse                 `json:"step"`
	SourceHTML  string                       `json:"source_html"`
	Annotations []RenderedAnnotationResponse `json:"annotations,omitempty"`
	Diff        []DiffBlockResponse          `json:"diff,omitempty"`
}

// ImageResponse describes an uploaded image.
type ImageResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ContentType string    `json:"content_type"`
	Size        int       `json:"size"`
	URL         string    `json:"url"`
	CreatedAt   time.Time `json:"created_at"`
}

// FromWorkshop maps a domain workshop to its response.
func FromWorkshop(w workshop.Workshop) WorkshopResponse {
	resp := WorkshopResponse{
		ID:          w.ID(),
		Title:       w.Title(),
		Description: w.Description(),
		CreatedAt:   w.CreatedAt(),
		UpdatedAt:   w.UpdatedAt(),
	}
	for _, step := range w.Steps() {
		resp.Steps = append(resp.Steps, FromStep(step))
	}
	return resp
}

// FromWorkshops maps a workshop list.
func FromWorkshops(workshops []workshop.Workshop) []WorkshopResponse {
	responses := make([]WorkshopResponse, 0, len(workshops))
	for _, w := range workshops {
		responses = append(responses, FromWorkshop(w))
	}
	return responses
}

// FromStep maps a domain step to its response.
func FromStep(step workshop.Step) StepResponse {
	resp := StepResponse{
		ID:               step.ID(),
		Title:            step.Title(),
		Description:      step.Description(),
		SourceCode:       step.SourceCode(),
		Revision:         step.Revision(),
		HighlightedLines: step.HighlightedLines(),
		DiffWithPrevious: step.DiffWithPrevious(),
	}
	for _, ann := range step.Annotations() {
		resp.Annotations = append(resp.Annotations, AnnotationResponse{
			Lines:    ann.Lines().Lines(),
			Content:  ann.Content(),
			ImageID:  ann.Image().ID(),
			ImageURL: ann.Image().URL(),
		})
	}
	return resp
}

// FromRenderedStep maps a rendered step to its response.
func FromRenderedStep(rendered service.RenderedStep) RenderedStepResponse {
	resp := RenderedStepResponse{
		Step:       FromStep(rendered.Step),
		SourceHTML: rendered.SourceHTML,
	}
	for _, ann := range rendered.Annotations {
		resp.Annotations = append(resp.Annotations, RenderedAnnotationResponse{
			Lines:    ann.Lines,
			HTML:     ann.HTML,
			ImageID:  ann.ImageID,
			ImageURL: ann.ImageURL,
		})
	}
	for _, block := range rendered.Diff {
		resp.Diff = append(resp.Diff, DiffBlockResponse{
			Op:    diffOpName(block.Op),
			Lines: block.Lines,
		})
	}
	return resp
}

func diffOpName(op render.DiffOp) string {
	switch op {
	case render.DiffInsert:
		return "insert"
	case render.DiffDelete:
		return "delete"
	default:
		return "equal"
	}
}

// FromImage maps a stored image to its response.
func FromImage(img workshop.Image) ImageResponse {
	return ImageResponse{
		ID:          img.ID(),
		Name:        img.Name(),
		ContentType: img.ContentType(),
		Size:        img.Size(),
		URL:         "/api/v1/images/" + img.ID(),
		CreatedAt:   img.CreatedAt(),
	}
}
