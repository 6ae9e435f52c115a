package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"mandiops/internal/assistant"
	"mandiops/internal/gateway/config"
	"mandiops/internal/gateway/handler"
	"mandiops/internal/gateway/logger"
	"mandiops/internal/gateway/server"
	"mandiops/internal/llm"
)

type App struct {
	server *server.Server
	client llm.Client
	log    *zap.Logger
	cancel context.CancelFunc
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	client, err := newClient(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to build generation client: %w", err)
	}
	client = llm.Chain(client, llm.WithLogging(log), llm.WithMetrics())

	snaps := assistant.NewSnapshots(assistant.DemoSource())
	if err := snaps.Refresh(ctx); err != nil {
		log.Warn("initial snapshot refresh failed", zap.Error(err))
	}

	svc := assistant.New(client, snaps, assistant.Budgets{
		Search:           int32(cfg.Budgets.Search),
		Insights:         int32(cfg.Budgets.Insights),
		Chat:             int32(cfg.Budgets.Chat),
		Alerts:           int32(cfg.Budgets.Alerts),
		CustomerAnalysis: int32(cfg.Budgets.CustomerAnalysis),
		Pricing:          int32(cfg.Budgets.Pricing),
	}, log)

	assistantHandler := handler.New(svc, log, cfg.FeedTTL)
	mux := server.NewMux(assistantHandler)
	srv := server.New(cfg.Port, mux, log)

	bg, cancel := context.WithCancel(context.Background())
	if cfg.RefreshInterval > 0 {
		go refreshLoop(bg, svc, cfg.RefreshInterval, log)
	}

	return &App{server: srv, client: client, log: log, cancel: cancel}, nil
}

func refreshLoop(ctx context.Context, svc *assistant.Service, interval time.Duration, log *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := svc.Refresh(ctx); err != nil {
				log.Warn("snapshot refresh failed", zap.Error(err))
			}
		}
	}
}

// newClient prefers the real Gemini client; without an API key it falls back
// to the deterministic offline client so the gateway stays runnable.
func newClient(ctx context.Context, cfg *config.Config, log *zap.Logger) (llm.Client, error) {
	if cfg.Gemini.APIKey == "" {
		log.Warn("GEMINI_API_KEY not set, using offline fake client")
		return llm.NewFakeClient(), nil
	}
	return llm.NewGeminiClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
}

func (a *App) Start() error { return a.server.Start() }

func (a *App) Shutdown(ctx context.Context) error {
	a.cancel()
	err := a.server.Shutdown(ctx)
	if cerr := a.client.Close(); err == nil {
		err = cerr
	}
	_ = a.log.Sync()
	return err
}

func (a *App) Logger() *zap.Logger { return a.log }
