package llm

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"mandiops/internal/metrics"
)

// Middleware wraps a Client with a cross-cutting concern.
type Middleware func(Client) Client

// Chain applies middlewares left to right; the first listed is outermost.
func Chain(c Client, mws ...Middleware) Client {
	for i := len(mws) - 1; i >= 0; i-- {
		c = mws[i](c)
	}
	return c
}

// WithLogging logs request sizes, latencies, and errors.
func WithLogging(log *zap.Logger) Middleware {
	if log == nil {
		log = zap.NewNop()
	}
	return func(next Client) Client {
		return &logging{next: next, log: log}
	}
}

type logging struct {
	next Client
	log  *zap.Logger
}

func (l *logging) Name() string { return l.next.Name() }
func (l *logging) Close() error { return l.next.Close() }

func (l *logging) GenerateText(ctx context.Context, req TextRequest) (string, error) {
	start := time.Now()
	l.log.Debug("llm request",
		zap.String("task", req.Task),
		zap.Int("prompt_bytes", len(req.Prompt)+len(req.System)),
		zap.Int32("max_output_tokens", req.MaxOutputTokens))
	out, err := l.next.GenerateText(ctx, req)
	if err != nil {
		l.log.Warn("llm error", zap.String("task", req.Task), zap.Error(err))
		return "", err
	}
	l.log.Debug("llm response",
		zap.String("task", req.Task),
		zap.Int("bytes", len(out)),
		zap.Duration("elapsed", time.Since(start)))
	return out, nil
}

func (l *logging) GenerateObject(ctx context.Context, req ObjectRequest) (json.RawMessage, error) {
	start := time.Now()
	l.log.Debug("llm request",
		zap.String("task", req.Task),
		zap.Int("prompt_bytes", len(req.Prompt)),
		zap.Int32("max_output_tokens", req.MaxOutputTokens))
	raw, err := l.next.GenerateObject(ctx, req)
	if err != nil {
		l.log.Warn("llm error", zap.String("task", req.Task), zap.Error(err))
		return nil, err
	}
	l.log.Debug("llm response",
		zap.String("task", req.Task),
		zap.Int("bytes", len(raw)),
		zap.Duration("elapsed", time.Since(start)))
	return raw, nil
}

// WithMetrics records call counts, failures, and durations per task.
func WithMetrics() Middleware {
	return func(next Client) Client {
		return &metered{next: next}
	}
}

type metered struct {
	next Client
}

func (m *metered) Name() string { return m.next.Name() }
func (m *metered) Close() error { return m.next.Close() }

func (m *metered) GenerateText(ctx context.Context, req TextRequest) (string, error) {
	metrics.GenerationCalls.WithLabelValues(req.Task).Inc()
	start := time.Now()
	out, err := m.next.GenerateText(ctx, req)
	metrics.GenerationDuration.WithLabelValues(req.Task).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.GenerationFailures.WithLabelValues(req.Task).Inc()
	}
	return out, err
}

func (m *metered) GenerateObject(ctx context.Context, req ObjectRequest) (json.RawMessage, error) {
	metrics.GenerationCalls.WithLabelValues(req.Task).Inc()
	start := time.Now()
	raw, err := m.next.GenerateObject(ctx, req)
	metrics.GenerationDuration.WithLabelValues(req.Task).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.GenerationFailures.WithLabelValues(req.Task).Inc()
	}
	return raw, err
}
