package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// FakeClient returns deterministic, minimal payloads per task for
// offline runs and tests.
type FakeClient struct {
	// Fail forces every call to return a GenerationError.
	Fail bool
}

func NewFakeClient() *FakeClient { return &FakeClient{} }

func (f *FakeClient) Name() string { return "FakeLLM" }
func (f *FakeClient) Close() error { return nil }

var errFakeUnavailable = errors.New("fake provider unavailable")

func (f *FakeClient) GenerateText(ctx context.Context, req TextRequest) (string, error) {
	if f.Fail {
		return "", NewGenerationError(req.Task, errFakeUnavailable)
	}
	if err := ctx.Err(); err != nil {
		return "", NewGenerationError(req.Task, err)
	}
	switch req.Task {
	case "insights":
		return "Alert: Low stock on onions\n" +
			"Onion inventory is below the reorder threshold.\n" +
			"Action: Reorder 200kg before the weekend\n" +
			"Recommendation: Push tomato sales\n" +
			"Tomato margins are above average this week.\n", nil
	case "alerts":
		return "Critical Alert: 8 lots expire within 48 hours\n" +
			"Warning: Potato stock below minimum level\n" +
			"Prices are stable across grain categories.\n", nil
	case "pricing":
		return "Hold the current price for one more week; monsoon supply is tight.", nil
	case "customer_analysis":
		return "Steady wholesale buyer with reliable credit behavior and seasonal vegetable focus.", nil
	default:
		return "Today's revenue is tracking 12.5% above last week. Focus restocking on the top sellers.", nil
	}
}

func (f *FakeClient) GenerateObject(ctx context.Context, req ObjectRequest) (json.RawMessage, error) {
	if f.Fail {
		return nil, NewGenerationError(req.Task, errFakeUnavailable)
	}
	if err := ctx.Err(); err != nil {
		return nil, NewGenerationError(req.Task, err)
	}
	obj := map[string]any{
		"results": []any{
			map[string]any{
				"type":        "inventory",
				"title":       "Tomatoes - 120kg in stock",
				"description": "Top selling item, stock above minimum level.",
				"data":        map[string]any{"stock_kg": 120, "category": "Vegetables"},
				"relevance":   92,
				"action":      "Review tomorrow's reorder quantity",
			},
		},
		"summary":     "1 matching inventory record.",
		"suggestions": []string{"Show low stock items", "Check expiring lots"},
	}
	b, _ := json.Marshal(obj)
	return json.RawMessage(b), nil
}
