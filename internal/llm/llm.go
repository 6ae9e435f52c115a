package llm

import (
	"context"
	"encoding/json"
	"errors"

	genai "google.golang.org/genai"
)

var ErrEmptyResponse = errors.New("llm: empty response from model")

// GenerationError wraps any failure of an outbound generation call,
// including schema-constrained payloads the model returned malformed.
type GenerationError struct {
	Task string
	Err  error
}

func (e *GenerationError) Error() string { return "llm: generate " + e.Task + ": " + e.Err.Error() }
func (e *GenerationError) Unwrap() error { return e.Err }

func NewGenerationError(task string, err error) error {
	return &GenerationError{Task: task, Err: err}
}

// TextRequest asks for prose output with no structural guarantee.
type TextRequest struct {
	Task            string
	Prompt          string
	System          string
	MaxOutputTokens int32
}

// ObjectRequest asks for JSON constrained by an explicit output schema.
type ObjectRequest struct {
	Task            string
	Prompt          string
	Schema          *genai.Schema
	MaxOutputTokens int32
}

// Client is the generation provider boundary. Exactly one outbound call per
// invocation: no retries, no caching. Cross-cutting concerns (logging,
// metrics) are applied via Middleware.
type Client interface {
	Name() string
	GenerateText(ctx context.Context, req TextRequest) (string, error)
	GenerateObject(ctx context.Context, req ObjectRequest) (json.RawMessage, error)
	Close() error
}
