package config

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fairness-audit/backend/internal/ai"
)

func lookup(env map[string]string) func(string) string {
	return func(key string) string { return env[key] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(lookup(nil))
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultDBPath, cfg.DBPath)
	assert.False(t, cfg.DisablePersistence)
	assert.Nil(t, cfg.AllowedOrigins)
	assert.Equal(t, DefaultRecommendTimeout, cfg.RecommendTimeout)
	assert.Equal(t, ai.ProviderMock, cfg.AI.Provider)
	assert.Equal(t, logrus.InfoLevel, cfg.LogLevel)
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := FromEnv(lookup(map[string]string{
		"PORT":                   "8080",
		"AUDIT_DB_PATH":          "/tmp/a.db",
		"DISABLE_PERSISTENCE":    "TRUE",
		"ALLOWED_ORIGINS":        " http://a , ,http://b",
		"AI_SERVICE":             "Groq",
		"GROQ_API_KEY":           "gk",
		"GROQ_MODEL":             "llama3-70b-8192",
		"OPENAI_TEMPERATURE":     "0.3",
		"OPENAI_MAX_TOKENS":      "400",
		"RECOMMENDATION_TIMEOUT": "3s",
		"LOG_LEVEL":              "debug",
		"MODEL_VERSION":          "v7",
	}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "/tmp/a.db", cfg.DBPath)
	assert.True(t, cfg.DisablePersistence)
	assert.Equal(t, []string{"http://a", "http://b"}, cfg.AllowedOrigins)
	assert.Equal(t, 3*time.Second, cfg.RecommendTimeout)
	assert.Equal(t, logrus.DebugLevel, cfg.LogLevel)
	assert.Equal(t, "v7", cfg.ModelVersion)
	assert.Equal(t, ai.Config{
		Provider:    ai.ProviderGroq,
		APIKey:      "gk",
		Model:       "llama3-70b-8192",
		Temperature: 0.3,
		MaxTokens:   400,
		Timeout:     3 * time.Second,
	}, cfg.AI)
}

func TestFromEnvRejectsBadValues(t *testing.T) {
	tests := map[string]map[string]string{
		"timeout":  {"RECOMMENDATION_TIMEOUT": "soon"},
		"negative": {"RECOMMENDATION_TIMEOUT": "-1s"},
		"level":    {"LOG_LEVEL": "loud"},
		"provider": {"AI_SERVICE": "anthropic"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := FromEnv(lookup(env))
			assert.Error(t, err)
		})
	}
}
