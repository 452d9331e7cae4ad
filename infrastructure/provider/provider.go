// Package provider implements AI completion providers used to explain
// contract code to learners.
package provider

import "context"

// ExplainRequest asks for a natural-language explanation of a piece of
// contract code. Question is optional; when empty the provider produces a
// general walkthrough.
type ExplainRequest struct {
	Code     string
	Language string
	Question string
}

// Explainer produces explanations of contract code.
type Explainer interface {
	Explain(ctx context.Context, request ExplainRequest) (string, error)
}
