package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Recommender produces fairness mitigation recommendations for an audit.
type Recommender interface {
	Enabled() bool
	Recommend(ctx context.Context, input RecommendationInput) ([]string, error)
}

// Supported text-generation providers. Both speak the chat-completions protocol.
const (
	ProviderOpenAI = "openai"
	ProviderGroq   = "groq"
	ProviderMock   = "mock"
)

// Config holds text-generation provider configuration.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// Client implements Recommender against an OpenAI-compatible chat-completions API.
type Client struct {
	httpClient  *http.Client
	provider    string
	apiKey      string
	model       string
	baseURL     string
	temperature float64
	maxTokens   int
}

var ErrDisabled = errors.New("ai recommender disabled")

// NewClient constructs a Client if the supplied configuration is valid. The mock
// provider and a missing API key both return ErrDisabled.
func NewClient(cfg Config) (*Client, error) {
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if provider == "" {
		provider = ProviderOpenAI
	}
	defaultModel, defaultBaseURL := "", ""
	switch provider {
	case ProviderOpenAI:
		defaultModel, defaultBaseURL = "gpt-4.1-mini", "https://api.openai.com/v1"
	case ProviderGroq:
		defaultModel, defaultBaseURL = "llama3-8b-8192", "https://api.groq.com/openai/v1"
	case ProviderMock:
		return nil, ErrDisabled
	default:
		return nil, fmt.Errorf("unsupported ai provider %q", cfg.Provider)
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrDisabled
	}
	cfg.Model = strings.TrimSpace(cfg.Model)
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	temp := cfg.Temperature
	if temp <= 0 {
		temp = 0.2
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 1500
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		provider:    provider,
		apiKey:      strings.TrimSpace(cfg.APIKey),
		model:       cfg.Model,
		baseURL:     cfg.BaseURL,
		temperature: temp,
		maxTokens:   cfg.MaxTokens,
	}, nil
}

// Enabled reports whether the client can make outbound calls.
func (c *Client) Enabled() bool {
	return c != nil && c.apiKey != ""
}

// Provider returns the configured provider name.
func (c *Client) Provider() string {
	if c == nil {
		return ""
	}
	return c.provider
}

// Recommend requests mitigation recommendations for the supplied audit metrics.
func (c *Client) Recommend(ctx context.Context, input RecommendationInput) ([]string, error) {
	if c == nil || !c.Enabled() {
		return nil, ErrDisabled
	}

	payload, err := c.buildPayload(input)
	if err != nil {
		return nil, err
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request: %w", c.provider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr map[string]any
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return nil, fmt.Errorf("%s status %d: %v", c.provider, resp.StatusCode, apiErr)
	}

	var decoded chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return nil, fmt.Errorf("%s empty response", c.provider)
	}

	recs, err := parseRecommendations(decoded.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, errors.New("ai recommendations missing")
	}
	return recs, nil
}

// parseRecommendations accepts either a bare JSON array of strings or an object
// with a recommendations array, optionally wrapped in a code fence.
func parseRecommendations(content string) ([]string, error) {
	block := normalizeJSONBlock(content)
	if block == "" {
		return nil, errors.New("ai response empty")
	}
	if strings.HasPrefix(block, "[") {
		var list []string
		if err := json.Unmarshal([]byte(block), &list); err != nil {
			return nil, fmt.Errorf("parse ai response: %w", err)
		}
		return cleanRecommendations(list), nil
	}
	var wrapped struct {
		Recommendations []string `json:"recommendations"`
	}
	if err := json.Unmarshal([]byte(block), &wrapped); err != nil {
		return nil, fmt.Errorf("parse ai response: %w", err)
	}
	return cleanRecommendations(wrapped.Recommendations), nil
}

func normalizeJSONBlock(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```")
		if idx := strings.IndexRune(trimmed, '\n'); idx >= 0 {
			trimmed = trimmed[idx+1:]
		}
		trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	}
	trimmed = strings.TrimSpace(trimmed)
	open, closing := "{", "}"
	if arr := strings.Index(trimmed, "["); arr >= 0 {
		if obj := strings.Index(trimmed, "{"); obj < 0 || arr < obj {
			open, closing = "[", "]"
		}
	}
	start := strings.Index(trimmed, open)
	end := strings.LastIndex(trimmed, closing)
	if start >= 0 && end >= start {
		return strings.TrimSpace(trimmed[start : end+1])
	}
	return trimmed
}

const systemPrompt = "You are an expert in AI fairness and bias mitigation. Reply with a strict JSON array of strings, each one a specific, actionable recommendation. Address the most critical issues first, include both short-term and long-term measures, cover technical and process improvements, and suggest how to monitor the effect. Emit nothing outside the JSON array."

func (c *Client) buildPayload(input RecommendationInput) (map[string]any, error) {
	userPrompt, err := buildUserPrompt(input)
	if err != nil {
		return nil, err
	}
	payload := map[string]any{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": userPrompt},
		},
		"temperature": c.temperature,
	}
	if c.maxTokens > 0 {
		payload["max_tokens"] = c.maxTokens
	}
	return payload, nil
}

func buildUserPrompt(input RecommendationInput) (string, error) {
	metrics, err := json.MarshalIndent(input.Metrics, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal metrics: %w", err)
	}
	builder := &strings.Builder{}
	builder.WriteString("Generate fairness recommendations for the following audit.\n\n")
	fmt.Fprintf(builder, "METRICS:\n%s\n\n", metrics)
	fmt.Fprintf(builder, "RISK LEVEL: %s\n", input.RiskLevel)
	if input.ModelVersion != "" {
		fmt.Fprintf(builder, "MODEL VERSION: %s\n", input.ModelVersion)
	}
	fmt.Fprintf(builder, "AUDITED RESULTS: %d\n", input.SampleSize)
	if len(input.RiskFactors) > 0 {
		factors := make([]string, 0, len(input.RiskFactors))
		for _, f := range input.RiskFactors {
			factors = append(factors, string(f))
		}
		fmt.Fprintf(builder, "BREACHED THRESHOLDS: %s\n", strings.Join(factors, ", "))
	} else {
		builder.WriteString("BREACHED THRESHOLDS: none\n")
	}
	if input.SampleSize == 0 {
		builder.WriteString("The batch was empty; say so and recommend collecting data before anything else.\n")
	}
	builder.WriteString("Format your response as a JSON array of strings.\n")
	return builder.String(), nil
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}
