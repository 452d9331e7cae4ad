package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"
)

const (
	// DefaultModel is used when no model is configured.
	DefaultModel = "gpt-4o-mini"

	defaultMaxRetries = 3
	defaultBackoff    = 500 * time.Millisecond
)

const systemPrompt = `You are a tutor for smart-contract development in the Move language.
Explain the given code to a learner: what it declares, what each part does,
and any safety properties worth noticing. Be concise and concrete. If a
question is asked, answer it about this code specifically.`

// OpenAIExplainer explains contract code through an OpenAI-compatible chat
// completion API.
type OpenAIExplainer struct {
	client     *openai.Client
	model      string
	maxRetries int
	backoff    time.Duration
	maxTokens  int
}

// OpenAIOption configures an OpenAIExplainer.
type OpenAIOption func(*OpenAIExplainer)

// WithModel sets the completion model.
func WithModel(model string) OpenAIOption {
	return func(e *OpenAIExplainer) {
		if model != "" {
			e.model = model
		}
	}
}

// WithMaxRetries sets the number of retry attempts for transient failures.
func WithMaxRetries(n int) OpenAIOption {
	return func(e *OpenAIExplainer) {
		if n >= 0 {
			e.maxRetries = n
		}
	}
}

// WithBackoff sets the base delay between retries.
func WithBackoff(d time.Duration) OpenAIOption {
	return func(e *OpenAIExplainer) {
		if d > 0 {
			e.backoff = d
		}
	}
}

// WithMaxTokens caps the completion length. Zero leaves the server default.
func WithMaxTokens(n int) OpenAIOption {
	return func(e *OpenAIExplainer) {
		if n > 0 {
			e.maxTokens = n
		}
	}
}

// NewOpenAIExplainer creates an explainer against the given endpoint.
// baseURL may point at any OpenAI-compatible server; empty means the
// official API.
func NewOpenAIExplainer(apiKey, baseURL string, options ...OpenAIOption) *OpenAIExplainer {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	e := &OpenAIExplainer{
		client:     openai.NewClientWithConfig(cfg),
		model:      DefaultModel,
		maxRetries: defaultMaxRetries,
		backoff:    defaultBackoff,
	}
	for _, opt := range options {
		opt(e)
	}
	return e
}

// Explain produces an explanation of the requested code.
func (e *OpenAIExplainer) Explain(ctx context.Context, request ExplainRequest) (string, error) {
	if request.Code == "" {
		return "", errors.New("explain: code must not be empty")
	}

	language := request.Language
	if language == "" {
		language = "move"
	}

	user := fmt.Sprintf("```%s\n%s\n```", language, request.Code)
	if request.Question != "" {
		user += "\n\nQuestion: " + request.Question
	}

	var content string
	err := e.withRetry(ctx, func() error {
		resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:     e.model,
			MaxTokens: e.maxTokens,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
				{Role: openai.ChatMessageRoleUser, Content: user},
			},
		})
		if err != nil {
			return err
		}
		if len(resp.Choices) == 0 {
			return errors.New("completion returned no choices")
		}
		content = resp.Choices[0].Message.Content
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("explain code: %w", err)
	}
	return content, nil
}

// withRetry runs fn, retrying transient failures with linear backoff.
func (e *OpenAIExplainer) withRetry(ctx context.Context, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt <= e.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(e.backoff * time.Duration(attempt)):
			}
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !isRetryable(lastErr) {
			return lastErr
		}
	}
	return fmt.Errorf("after %d attempts: %w", e.maxRetries+1, lastErr)
}

func isRetryable(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == http.StatusTooManyRequests || apiErr.HTTPStatusCode >= 500
	}

	var reqErr *openai.RequestError
	return errors.As(err, &reqErr)
}
