package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mandiops/internal/gateway/handler"
	"mandiops/internal/gateway/middleware"
)

func NewMux(assistantHandler *handler.Handler) http.Handler {
	mux := http.NewServeMux()

	// POST: request envelope dispatch. GET: insights/alerts/recommendations feed.
	mux.HandleFunc("/api/assistant", assistantHandler.Handle)

	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return middleware.CORS(mux)
}
