package handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"mandiops/internal/assistant"
	"mandiops/internal/metrics"
)

// askRequest is the caller envelope. Context carries task-specific data as a
// JSON-encoded string; Type selects the pipeline, defaulting to chat.
type askRequest struct {
	Message string `json:"message"`
	Context string `json:"context,omitempty"`
	Type    string `json:"type,omitempty"`
}

type pricingContext struct {
	ItemName     string  `json:"itemName"`
	CurrentPrice float64 `json:"currentPrice"`
}

type searchEnvelope struct {
	Type        string                   `json:"type"`
	Results     []assistant.SearchResult `json:"results"`
	Summary     string                   `json:"summary"`
	Suggestions []string                 `json:"suggestions"`
}

type adviceEnvelope struct {
	Type        string   `json:"type"`
	Response    string   `json:"response"`
	Suggestions []string `json:"suggestions"`
}

type chatEnvelope struct {
	Type        string         `json:"type"`
	Response    string         `json:"response"`
	Context     map[string]any `json:"context"`
	Timestamp   string         `json:"timestamp"`
	Suggestions []string       `json:"suggestions"`
}

type errorEnvelope struct {
	Response string `json:"response"`
	Error    bool   `json:"error"`
}

func (h *Handler) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warn("malformed request body", zap.Error(err))
		metrics.BoundaryRequests.WithLabelValues("unknown", "error").Inc()
		h.writeJSON(w, http.StatusInternalServerError, errorEnvelope{Response: boundaryApology, Error: true})
		return
	}

	ctx := r.Context()
	switch req.Type {
	case "search":
		res := h.svc.Search(ctx, req.Message)
		metrics.BoundaryRequests.WithLabelValues("search", "ok").Inc()
		h.writeJSON(w, http.StatusOK, searchEnvelope{
			Type:        "search",
			Results:     res.Results,
			Summary:     res.Summary,
			Suggestions: res.Suggestions,
		})

	case "pricing":
		var pc pricingContext
		decodeContext(req.Context, &pc)
		advice := h.svc.OptimizePricing(ctx, pc.ItemName, pc.CurrentPrice)
		metrics.BoundaryRequests.WithLabelValues("pricing", "ok").Inc()
		h.writeJSON(w, http.StatusOK, adviceEnvelope{
			Type:        "pricing",
			Response:    advice,
			Suggestions: pricingSuggestions,
		})

	case "customer_analysis":
		var rec assistant.CustomerRecord
		decodeContext(req.Context, &rec)
		analysis := h.svc.AnalyzeCustomerBehavior(ctx, rec)
		metrics.BoundaryRequests.WithLabelValues("customer_analysis", "ok").Inc()
		h.writeJSON(w, http.StatusOK, adviceEnvelope{
			Type:        "customer_analysis",
			Response:    analysis,
			Suggestions: customerAnalysisSuggestions,
		})

	default:
		// No type, or any unrecognized type, falls back to general chat.
		var extra map[string]any
		decodeContext(req.Context, &extra)
		res := h.svc.Chat(ctx, req.Message, extra)
		metrics.BoundaryRequests.WithLabelValues("chat", "ok").Inc()
		h.writeJSON(w, http.StatusOK, chatEnvelope{
			Type:        "chat",
			Response:    res.Response,
			Context:     res.Context,
			Timestamp:   res.Timestamp,
			Suggestions: chatSuggestions,
		})
	}
}
