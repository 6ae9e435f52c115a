// Package assistant turns a business snapshot plus a free-text query into
// typed search results, insights, alerts, and conversational answers backed
// by a generation provider. The façade is the single entry point; every
// pipeline failure is degraded into a benign typed result, never an error.
package assistant

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"mandiops/internal/assistant/prompt"
	"mandiops/internal/llm"
)

// User-presentable degraded responses, one per pipeline.
const (
	searchApology   = "I'm having trouble searching right now. Please try again."
	chatApology     = "I'm having trouble processing your request right now. Please try again."
	pricingApology  = "Unable to generate pricing recommendations right now."
	customerApology = "Unable to analyze customer behavior right now."
)

// Budgets caps output tokens per task to bound latency and cost.
type Budgets struct {
	Search           int32
	Insights         int32
	Chat             int32
	Alerts           int32
	CustomerAnalysis int32
	Pricing          int32
}

func DefaultBudgets() Budgets {
	return Budgets{
		Search:           1000,
		Insights:         800,
		Chat:             600,
		Alerts:           500,
		CustomerAnalysis: 500,
		Pricing:          400,
	}
}

func (b Budgets) withDefaults() Budgets {
	def := DefaultBudgets()
	if b.Search <= 0 {
		b.Search = def.Search
	}
	if b.Insights <= 0 {
		b.Insights = def.Insights
	}
	if b.Chat <= 0 {
		b.Chat = def.Chat
	}
	if b.Alerts <= 0 {
		b.Alerts = def.Alerts
	}
	if b.CustomerAnalysis <= 0 {
		b.CustomerAnalysis = def.CustomerAnalysis
	}
	if b.Pricing <= 0 {
		b.Pricing = def.Pricing
	}
	return b
}

// Service routes each request to its prompt template, generation call, and
// interpreter. Operations are independently callable and share no mutable
// state beyond the snapshot store.
type Service struct {
	client  llm.Client
	snaps   *Snapshots
	budgets Budgets
	log     *zap.Logger
	now     func() time.Time
}

func New(client llm.Client, snaps *Snapshots, budgets Budgets, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		client:  client,
		snaps:   snaps,
		budgets: budgets.withDefaults(),
		log:     log,
		now:     time.Now,
	}
}

// Search runs the schema-constrained pipeline. Either every result satisfies
// the schema or the call fails closed: empty results plus an apology summary.
func (s *Service) Search(ctx context.Context, query string) SearchResponse {
	p := prompt.Search(s.snaps.Current(), query)
	raw, err := s.client.GenerateObject(ctx, llm.ObjectRequest{
		Task:            prompt.TaskSearch,
		Prompt:          p,
		Schema:          searchGenSchema(),
		MaxOutputTokens: s.budgets.Search,
	})
	if err != nil {
		s.log.Warn("search degraded", zap.Error(err))
		return degradedSearch()
	}
	resp, err := decodeSearchResponse(raw)
	if err != nil {
		s.log.Warn("search degraded", zap.Error(err))
		return degradedSearch()
	}
	return resp
}

func degradedSearch() SearchResponse {
	return SearchResponse{
		Results:     []SearchResult{},
		Summary:     searchApology,
		Suggestions: []string{},
	}
}

// Chat answers a natural-language query against the snapshot enriched with
// caller-supplied context. The enriched context is echoed back either way.
func (s *Service) Chat(ctx context.Context, query string, extra map[string]any) QueryResult {
	enriched := s.enrichedContext(query, extra)
	text, err := s.client.GenerateText(ctx, llm.TextRequest{
		Task:            prompt.TaskChat,
		Prompt:          query,
		System:          prompt.ChatSystem(enriched),
		MaxOutputTokens: s.budgets.Chat,
	})
	if err != nil {
		s.log.Warn("chat degraded", zap.Error(err))
		text = chatApology
	}
	return QueryResult{
		Response:  text,
		Context:   enriched,
		Timestamp: s.now().Format(time.RFC3339),
	}
}

// OptimizePricing returns free-text price advice for one item.
func (s *Service) OptimizePricing(ctx context.Context, itemName string, currentPrice float64) string {
	text, err := s.client.GenerateText(ctx, llm.TextRequest{
		Task:            prompt.TaskPricing,
		Prompt:          prompt.Pricing(s.snaps.Current(), itemName, currentPrice),
		MaxOutputTokens: s.budgets.Pricing,
	})
	if err != nil {
		s.log.Warn("pricing degraded", zap.Error(err))
		return pricingApology
	}
	return text
}

// AnalyzeCustomerBehavior returns free-text behavior insights for one
// customer record.
func (s *Service) AnalyzeCustomerBehavior(ctx context.Context, customer CustomerRecord) string {
	text, err := s.client.GenerateText(ctx, llm.TextRequest{
		Task:            prompt.TaskCustomerAnalysis,
		Prompt:          prompt.CustomerAnalysis(s.snaps.Current(), customer),
		MaxOutputTokens: s.budgets.CustomerAnalysis,
	})
	if err != nil {
		s.log.Warn("customer analysis degraded", zap.Error(err))
		return customerApology
	}
	return text
}

// GenerateInsights produces typed insights from free model text. Provider
// failure yields an empty sequence, never an error.
func (s *Service) GenerateInsights(ctx context.Context) []Insight {
	text, err := s.client.GenerateText(ctx, llm.TextRequest{
		Task:            prompt.TaskInsights,
		Prompt:          prompt.Insights(s.snaps.Current()),
		MaxOutputTokens: s.budgets.Insights,
	})
	if err != nil {
		s.log.Warn("insights degraded", zap.Error(err))
		return []Insight{}
	}
	return ParseInsights(text)
}

// GenerateInventoryAlerts produces typed alerts from free model text.
// Provider failure yields an empty sequence, never an error.
func (s *Service) GenerateInventoryAlerts(ctx context.Context) []Alert {
	text, err := s.client.GenerateText(ctx, llm.TextRequest{
		Task:            prompt.TaskAlerts,
		Prompt:          prompt.Alerts(s.snaps.Current()),
		MaxOutputTokens: s.budgets.Alerts,
	})
	if err != nil {
		s.log.Warn("alerts degraded", zap.Error(err))
		return []Alert{}
	}
	return ParseAlerts(text, s.now())
}

// Refresh replaces the cached snapshot. Exposed so an external scheduler can
// drive refresh cycles without reaching into the store.
func (s *Service) Refresh(ctx context.Context) error {
	return s.snaps.Refresh(ctx)
}

// enrichedContext merges caller-supplied key/values over the snapshot and
// stamps the query and current time, mirroring what the model is shown.
func (s *Service) enrichedContext(query string, extra map[string]any) map[string]any {
	out := map[string]any{}
	b, err := json.Marshal(s.snaps.Current())
	if err == nil {
		_ = json.Unmarshal(b, &out)
	}
	for k, v := range extra {
		out[k] = v
	}
	out["currentTime"] = s.now().Format(time.RFC3339)
	out["userQuery"] = query
	return out
}
