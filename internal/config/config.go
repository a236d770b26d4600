package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"fairness-audit/backend/internal/ai"
)

const (
	DefaultPort             = "2000"
	DefaultDBPath           = "data/fairness-audit.db"
	DefaultModelVersion     = "unversioned"
	DefaultRecommendTimeout = 15 * time.Second
)

// Config is the process configuration shared by the server and the CLI.
type Config struct {
	Port               string
	DBPath             string
	DisablePersistence bool
	AllowedOrigins     []string
	AI                 ai.Config
	RecommendTimeout   time.Duration
	ModelVersion       string
	LogLevel           logrus.Level
}

var envPaths = []string{".env", "../.env", "/app/.env"}

// Load reads the first .env file found, then the environment.
func Load() (*Config, error) {
	for _, path := range envPaths {
		if err := godotenv.Load(path); err == nil {
			logrus.WithField("path", path).Debug("loaded env file")
			break
		}
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key string) string { return strings.TrimSpace(getenv(key)) }
	or := func(key, def string) string {
		if v := get(key); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		Port:               or("PORT", DefaultPort),
		DBPath:             or("AUDIT_DB_PATH", DefaultDBPath),
		DisablePersistence: strings.EqualFold(get("DISABLE_PERSISTENCE"), "true"),
		AllowedOrigins:     splitList(get("ALLOWED_ORIGINS")),
		ModelVersion:       or("MODEL_VERSION", DefaultModelVersion),
		RecommendTimeout:   DefaultRecommendTimeout,
		LogLevel:           logrus.InfoLevel,
	}

	if v := get("RECOMMENDATION_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid RECOMMENDATION_TIMEOUT %q", v)
		}
		cfg.RecommendTimeout = d
	}
	if v := get("LOG_LEVEL"); v != "" {
		level, err := logrus.ParseLevel(v)
		if err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
		}
		cfg.LogLevel = level
	}

	provider := strings.ToLower(get("AI_SERVICE"))
	if provider == "" {
		provider = ai.ProviderMock
	}
	cfg.AI = ai.Config{
		Provider: provider,
		Timeout:  cfg.RecommendTimeout,
	}
	switch provider {
	case ai.ProviderOpenAI:
		cfg.AI.APIKey = get("OPENAI_API_KEY")
		cfg.AI.Model = get("OPENAI_MODEL")
		cfg.AI.BaseURL = get("OPENAI_BASE_URL")
	case ai.ProviderGroq:
		cfg.AI.APIKey = get("GROQ_API_KEY")
		cfg.AI.Model = get("GROQ_MODEL")
	case ai.ProviderMock:
	default:
		return nil, fmt.Errorf("invalid AI_SERVICE %q (expected openai|groq|mock)", provider)
	}
	if temp := get("OPENAI_TEMPERATURE"); temp != "" {
		if v, err := strconv.ParseFloat(temp, 64); err == nil {
			cfg.AI.Temperature = v
		}
	}
	if maxTokens := get("OPENAI_MAX_TOKENS"); maxTokens != "" {
		if v, err := strconv.Atoi(maxTokens); err == nil {
			cfg.AI.MaxTokens = v
		}
	}
	return cfg, nil
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
