package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mandiops/internal/assistant"
	"mandiops/internal/llm"
)

func newTestHandler(t *testing.T, client llm.Client, feedTTL time.Duration) *Handler {
	t.Helper()
	snaps := assistant.NewSnapshots(assistant.DemoSource())
	require.NoError(t, snaps.Refresh(context.Background()))
	svc := assistant.New(client, snaps, assistant.Budgets{}, zap.NewNop())
	return New(svc, zap.NewNop(), feedTTL)
}

func doPost(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/assistant", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func doGet(t *testing.T, h *Handler, query string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/assistant"+query, nil)
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandleAsk_Search(t *testing.T) {
	h := newTestHandler(t, llm.NewFakeClient(), 0)
	rec := doPost(t, h, `{"message":"tomato stock","type":"search"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp searchEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "search", resp.Type)
	require.NotEmpty(t, resp.Results)
	for _, r := range resp.Results {
		assert.GreaterOrEqual(t, r.Relevance, 0)
		assert.LessOrEqual(t, r.Relevance, 100)
	}
	assert.NotEmpty(t, resp.Summary)
}

func TestHandleAsk_SearchProviderDownDegrades(t *testing.T) {
	h := newTestHandler(t, &llm.FakeClient{Fail: true}, 0)
	rec := doPost(t, h, `{"message":"q","type":"search"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp searchEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Results)
	assert.NotEmpty(t, resp.Summary)
	assert.Empty(t, resp.Suggestions)
}

func TestHandleAsk_PricingWithMalformedContext(t *testing.T) {
	h := newTestHandler(t, llm.NewFakeClient(), 0)
	rec := doPost(t, h, `{"message":"price tomatoes","context":"{not json","type":"pricing"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp adviceEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "pricing", resp.Type)
	assert.NotEmpty(t, resp.Response)
	assert.Equal(t, pricingSuggestions, resp.Suggestions)
}

func TestHandleAsk_CustomerAnalysis(t *testing.T) {
	h := newTestHandler(t, llm.NewFakeClient(), 0)
	rec := doPost(t, h, `{"message":"analyze","context":"{\"name\":\"Sharma Retail\"}","type":"customer_analysis"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp adviceEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "customer_analysis", resp.Type)
	assert.Len(t, resp.Suggestions, 4)
}

func TestHandleAsk_DefaultsToChat(t *testing.T) {
	h := newTestHandler(t, llm.NewFakeClient(), 0)
	rec := doPost(t, h, `{"message":"how is revenue?","context":"{\"currentView\":\"dashboard\"}"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp chatEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "chat", resp.Type)
	assert.NotEmpty(t, resp.Response)
	assert.Equal(t, "dashboard", resp.Context["currentView"])
	assert.Equal(t, "how is revenue?", resp.Context["userQuery"])
	assert.NotEmpty(t, resp.Timestamp)
	assert.Len(t, resp.Suggestions, 5)
}

func TestHandleAsk_UnknownTypeFallsBackToChat(t *testing.T) {
	h := newTestHandler(t, llm.NewFakeClient(), 0)
	rec := doPost(t, h, `{"message":"hi","type":"something_else"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp chatEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "chat", resp.Type)
}

func TestHandleAsk_MalformedBody(t *testing.T) {
	h := newTestHandler(t, llm.NewFakeClient(), 0)
	rec := doPost(t, h, `{"message": `)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp errorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Error)
	assert.NotEmpty(t, resp.Response)
}

func TestHandleFeed_Insights(t *testing.T) {
	h := newTestHandler(t, llm.NewFakeClient(), 0)
	rec := doGet(t, h, "?type=insights")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Insights []insightItem `json:"insights"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Insights)
	for _, in := range resp.Insights {
		assert.NotEmpty(t, in.ID)
		assert.NotEmpty(t, in.Timestamp)
		assert.Equal(t, 75, in.Confidence)
	}
}

func TestHandleFeed_DefaultTypeIsInsights(t *testing.T) {
	h := newTestHandler(t, llm.NewFakeClient(), 0)
	rec := doGet(t, h, "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"insights"`)
}

func TestHandleFeed_Alerts(t *testing.T) {
	h := newTestHandler(t, llm.NewFakeClient(), 0)
	rec := doGet(t, h, "?type=alerts")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Alerts []alertItem `json:"alerts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Alerts, 2)
	assert.Equal(t, assistant.PriorityHigh, resp.Alerts[0].Priority)
	assert.NotEmpty(t, resp.Alerts[0].ID)
}

func TestHandleFeed_UnknownType(t *testing.T) {
	h := newTestHandler(t, llm.NewFakeClient(), 0)
	rec := doGet(t, h, "?type=predictions")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp feedError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid request type", resp.Error)
	assert.Empty(t, resp.Insights)
}

func TestHandleFeed_ProviderDownYieldsEmptyLists(t *testing.T) {
	h := newTestHandler(t, &llm.FakeClient{Fail: true}, 0)
	rec := doGet(t, h, "?type=alerts")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Alerts []alertItem `json:"alerts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Alerts)
}

func TestHandleFeed_CacheServesSecondPoll(t *testing.T) {
	client := &countingClient{next: llm.NewFakeClient()}
	h := newTestHandler(t, client, time.Minute)

	first := doGet(t, h, "?type=alerts")
	second := doGet(t, h, "?type=alerts")

	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, int64(1), client.calls.Load())
}

func TestDeriveRecommendations_PriorityBoundary(t *testing.T) {
	now := time.Now().Format(time.RFC3339)
	insights := []assistant.Insight{
		{Type: assistant.InsightRecommendation, Title: "high one", Confidence: 85},
		{Type: assistant.InsightRecommendation, Title: "medium one", Confidence: 80},
		{Type: assistant.InsightAlert, Title: "filtered", Confidence: 99},
	}
	items := deriveRecommendations(insights, now)
	require.Len(t, items, 2)
	assert.Equal(t, assistant.PriorityHigh, items[0].Priority)
	assert.Equal(t, assistant.PriorityMedium, items[1].Priority)
	for _, it := range items {
		assert.Equal(t, "operational", it.Category)
		assert.NotEmpty(t, it.ID)
	}
}

// countingClient counts outbound calls to verify the feed cache.
type countingClient struct {
	next  llm.Client
	calls atomic.Int64
}

func (c *countingClient) Name() string { return c.next.Name() }
func (c *countingClient) Close() error { return c.next.Close() }

func (c *countingClient) GenerateText(ctx context.Context, req llm.TextRequest) (string, error) {
	c.calls.Add(1)
	return c.next.GenerateText(ctx, req)
}

func (c *countingClient) GenerateObject(ctx context.Context, req llm.ObjectRequest) (json.RawMessage, error) {
	c.calls.Add(1)
	return c.next.GenerateObject(ctx, req)
}
