package llm

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	genai "google.golang.org/genai"
)

// GeminiClient is a thin wrapper around the official genai client.
// It only focuses on the API call itself; logging and metrics are
// applied via Middleware.
type GeminiClient struct {
	cli   *genai.Client
	model string
}

func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		APIKey:  apiKey,
	})
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(model) == "" {
		model = "gemini-2.5-flash"
	}
	return &GeminiClient{cli: cli, model: model}, nil
}

func (g *GeminiClient) Name() string { return "Gemini:" + g.model }
func (g *GeminiClient) Close() error { return nil }

// timeoutFor bounds the wall clock of a single call in proportion to the
// requested output budget. A caller-supplied deadline always wins.
func timeoutFor(maxOutputTokens int32) time.Duration {
	if maxOutputTokens <= 0 {
		maxOutputTokens = 1024
	}
	return 10*time.Second + time.Duration(maxOutputTokens)*40*time.Millisecond
}

// GenerateText sends the prompt (and optional system instruction) and
// returns the model's prose. At most one outbound attempt.
func (g *GeminiClient) GenerateText(ctx context.Context, req TextRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeoutFor(req.MaxOutputTokens))
	defer cancel()

	cfg := &genai.GenerateContentConfig{}
	if req.MaxOutputTokens > 0 {
		cfg.MaxOutputTokens = req.MaxOutputTokens
	}
	if strings.TrimSpace(req.System) != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: req.System}}}
	}

	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: req.Prompt}}}},
		cfg,
	)
	if err != nil {
		return "", NewGenerationError(req.Task, err)
	}
	text := firstText(resp)
	if text == "" {
		return "", NewGenerationError(req.Task, ErrEmptyResponse)
	}
	return text, nil
}

// GenerateObject asks for application/json constrained by req.Schema and
// returns the raw payload. Schema enforcement happens model-side; callers
// revalidate before accepting the object.
func (g *GeminiClient) GenerateObject(ctx context.Context, req ObjectRequest) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, timeoutFor(req.MaxOutputTokens))
	defer cancel()

	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   req.Schema,
	}
	if req.MaxOutputTokens > 0 {
		cfg.MaxOutputTokens = req.MaxOutputTokens
	}

	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: req.Prompt}}}},
		cfg,
	)
	if err != nil {
		return nil, NewGenerationError(req.Task, err)
	}
	text := firstText(resp)
	if text == "" {
		return nil, NewGenerationError(req.Task, ErrEmptyResponse)
	}
	return json.RawMessage(text), nil
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	cand := resp.Candidates[0]
	if cand.Content == nil || len(cand.Content.Parts) == 0 {
		return ""
	}
	return cand.Content.Parts[0].Text
}
