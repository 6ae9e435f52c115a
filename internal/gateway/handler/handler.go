package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"

	"mandiops/internal/assistant"
)

const boundaryApology = "I'm having trouble processing your request. Please try again."

// Fixed per-task suggestion tables returned alongside free-text responses.
var (
	pricingSuggestions = []string{
		"Check competitor pricing",
		"Review seasonal trends",
		"Analyze demand patterns",
		"Consider bulk discounts",
	}
	customerAnalysisSuggestions = []string{
		"Review customer purchase history",
		"Create targeted offers",
		"Improve customer retention",
		"Analyze payment patterns",
	}
	chatSuggestions = []string{
		"Show me inventory insights",
		"Analyze sales trends",
		"Check customer patterns",
		"Optimize pricing strategy",
		"Review market conditions",
	}
)

// Handler is the JSON boundary in front of the assistant façade.
type Handler struct {
	svc       *assistant.Service
	log       *zap.Logger
	feedCache *expirable.LRU[string, []byte]
}

// New builds the boundary handler. feedTTL > 0 enables a short-lived cache
// on the GET feed so dashboard polling does not trigger a model call per
// poll; zero disables it.
func New(svc *assistant.Service, log *zap.Logger, feedTTL time.Duration) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	h := &Handler{svc: svc, log: log}
	if feedTTL > 0 {
		h.feedCache = expirable.NewLRU[string, []byte](8, nil, feedTTL)
	}
	return h
}

// Handle dispatches on HTTP method: POST for the request envelope, GET for
// the read-only feed.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handleAsk(w, r)
	case http.MethodGet:
		h.handleFeed(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.log.Warn("write response", zap.Error(err))
	}
}

// decodeContext parses the envelope's JSON-encoded context field. Malformed
// or empty input leaves the target at its zero value; the pipeline still
// runs.
func decodeContext(raw string, v any) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return
	}
	_ = json.Unmarshal([]byte(raw), v)
}
