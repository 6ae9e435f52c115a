package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mandiops/internal/assistant"
	"mandiops/internal/metrics"
)

// Feed items are the caller-facing projections of insights and alerts,
// augmented with generated ids and timestamps.
type insightItem struct {
	assistant.Insight
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
}

type alertItem struct {
	assistant.Alert
	ID string `json:"id"`
}

type recommendationItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Action      string `json:"action"`
	Priority    string `json:"priority"`
	Category    string `json:"category"`
	Timestamp   string `json:"timestamp"`
}

// deriveRecommendations keeps only recommendation-typed insights and maps
// them to actionable feed items. Confidence strictly greater than 80 yields
// high priority.
func deriveRecommendations(insights []assistant.Insight, now string) []recommendationItem {
	items := make([]recommendationItem, 0, len(insights))
	for _, in := range insights {
		if in.Type != assistant.InsightRecommendation {
			continue
		}
		priority := assistant.PriorityMedium
		if in.Confidence > 80 {
			priority = assistant.PriorityHigh
		}
		items = append(items, recommendationItem{
			ID:          uuid.NewString(),
			Title:       in.Title,
			Description: in.Description,
			Action:      in.Action,
			Priority:    priority,
			Category:    "operational",
			Timestamp:   now,
		})
	}
	return items
}

type feedError struct {
	Insights []insightItem `json:"insights"`
	Error    string        `json:"error"`
}

func (h *Handler) handleFeed(w http.ResponseWriter, r *http.Request) {
	feedType := r.URL.Query().Get("type")
	if feedType == "" {
		feedType = "insights"
	}

	if h.feedCache != nil {
		if body, ok := h.feedCache.Get(feedType); ok {
			metrics.BoundaryRequests.WithLabelValues(feedType, "cached").Inc()
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write(body)
			return
		}
	}

	ctx := r.Context()
	now := time.Now().Format(time.RFC3339)

	var body any
	switch feedType {
	case "insights":
		insights := h.svc.GenerateInsights(ctx)
		items := make([]insightItem, 0, len(insights))
		for _, in := range insights {
			items = append(items, insightItem{Insight: in, ID: uuid.NewString(), Timestamp: now})
		}
		body = map[string]any{"insights": items}

	case "alerts":
		alerts := h.svc.GenerateInventoryAlerts(ctx)
		items := make([]alertItem, 0, len(alerts))
		for _, a := range alerts {
			items = append(items, alertItem{Alert: a, ID: uuid.NewString()})
		}
		body = map[string]any{"alerts": items}

	case "recommendations":
		insights := h.svc.GenerateInsights(ctx)
		body = map[string]any{"recommendations": deriveRecommendations(insights, now)}

	default:
		metrics.BoundaryRequests.WithLabelValues(feedType, "error").Inc()
		h.writeJSON(w, http.StatusBadRequest, feedError{Insights: []insightItem{}, Error: "Invalid request type"})
		return
	}

	raw, err := json.Marshal(body)
	if err != nil {
		h.log.Error("encode feed", zap.String("type", feedType), zap.Error(err))
		h.writeJSON(w, http.StatusInternalServerError, errorEnvelope{Response: boundaryApology, Error: true})
		return
	}
	if h.feedCache != nil {
		h.feedCache.Add(feedType, raw)
	}
	metrics.BoundaryRequests.WithLabelValues(feedType, "ok").Inc()
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(raw)
}
