package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	Env       string
	LogLevel  string
	LogFormat string
	Gemini    GeminiConfig
	Budgets   TokenBudgets
	FeedTTL   time.Duration
	// RefreshInterval drives the snapshot refresh cycle; zero disables it.
	RefreshInterval time.Duration
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

// TokenBudgets caps model output per task. These are configuration, not
// inline constants; env vars override the defaults.
type TokenBudgets struct {
	Search           int
	Insights         int
	Chat             int
	Alerts           int
	CustomerAnalysis int
	Pricing          int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port := flag.String("port", ":8080", "server port")
	flag.Parse()

	if envPort := os.Getenv("PORT"); envPort != "" {
		if strings.HasPrefix(envPort, ":") {
			*port = envPort
		} else {
			*port = ":" + envPort
		}
	}

	env := strings.TrimSpace(os.Getenv("APP_ENV"))
	if env == "" {
		env = "local"
	}

	return &Config{
		Port:      *port,
		Env:       env,
		LogLevel:  firstNonEmpty(strings.TrimSpace(os.Getenv("LOG_LEVEL")), "info"),
		LogFormat: firstNonEmpty(strings.TrimSpace(os.Getenv("LOG_FORMAT")), defaultLogFormat(env)),
		Gemini: GeminiConfig{
			APIKey: strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
			Model:  firstNonEmpty(strings.TrimSpace(os.Getenv("GEMINI_MODEL")), "gemini-2.5-flash"),
		},
		Budgets: TokenBudgets{
			Search:           intEnv("ASSISTANT_SEARCH_TOKENS", 1000),
			Insights:         intEnv("ASSISTANT_INSIGHTS_TOKENS", 800),
			Chat:             intEnv("ASSISTANT_CHAT_TOKENS", 600),
			Alerts:           intEnv("ASSISTANT_ALERTS_TOKENS", 500),
			CustomerAnalysis: intEnv("ASSISTANT_CUSTOMER_TOKENS", 500),
			Pricing:          intEnv("ASSISTANT_PRICING_TOKENS", 400),
		},
		FeedTTL:         time.Duration(intEnv("ASSISTANT_FEED_TTL_SECONDS", 30)) * time.Second,
		RefreshInterval: time.Duration(intEnv("SNAPSHOT_REFRESH_SECONDS", 300)) * time.Second,
	}, nil
}

func defaultLogFormat(env string) string {
	if strings.EqualFold(env, "local") {
		return "console"
	}
	return "json"
}

func intEnv(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return def
	}
	return n
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
