package service

import (
	"context"
	"fmt"

	"github.com/movelabhq/movelab/infrastructure/provider"
	"github.com/movelabhq/movelab/infrastructure/render"
)

// maxExplainBytes caps the code submitted for explanation.
const maxExplainBytes = 32 * 1024

// ExplainService proxies code-explanation requests to an AI completion
// provider and renders the answer for display.
type ExplainService struct {
	explainer provider.Explainer
	renderer  *render.Renderer
}

// NewExplainService creates an ExplainService. A nil explainer means no
// endpoint is configured; requests then fail with ErrNotConfigured.
func NewExplainService(explainer provider.Explainer, renderer *render.Renderer) *ExplainService {
	return &ExplainService{explainer: explainer, renderer: renderer}
}

// ErrNotConfigured indicates no explanation endpoint is configured.
var ErrNotConfigured = fmt.Errorf("explain endpoint not configured")

// Explanation is an explanation in both raw markdown and rendered HTML.
type Explanation struct {
	Markdown string
	HTML     string
}

// Explain produces an explanation of the given code.
func (s *ExplainService) Explain(ctx context.Context, code, question string) (Explanation, error) {
	if s.explainer == nil {
		return Explanation{}, ErrNotConfigured
	}
	if code == "" {
		return Explanation{}, fmt.Errorf("%w: code must not be empty", ErrInvalidInput)
	}
	if len(code) > maxExplainBytes {
		return Explanation{}, fmt.Errorf("%w: code exceeds %d bytes", ErrTooLarge, maxExplainBytes)
	}

	markdown, err := s.explainer.Explain(ctx, provider.ExplainRequest{
		Code:     code,
		Language: "move",
		Question: question,
	})
	if err != nil {
		return Explanation{}, err
	}

	return Explanation{
		Markdown: markdown,
		HTML:     s.renderer.Markdown(markdown),
	}, nil
}
