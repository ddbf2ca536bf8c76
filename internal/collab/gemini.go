package collab

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultBaseURL     = "https://generativelanguage.googleapis.com"
	defaultModel       = "gemini-2.0-flash"
	defaultTimeout     = 60 * time.Second
	defaultMaxRetries  = 3
	defaultBaseBackoff = 1 * time.Second
)

// Rate limiter defaults: 50 requests per minute.
const (
	defaultRateLimit = 50.0 / 60.0
	defaultBurst     = 5
)

// Config configures the Gemini collaborator client.
type Config struct {
	APIKey      string        `koanf:"api_key" json:"-"`
	Model       string        `koanf:"model"`
	BaseURL     string        `koanf:"base_url"`
	Timeout     int           `koanf:"timeout"`     // seconds
	MaxRetries  int           `koanf:"max_retries"` // 0 = default, negative = no retries
	BaseBackoff time.Duration `koanf:"base_backoff"`
}

// gemini implements Collaborator over the Gemini generateContent API.
type gemini struct {
	model       string
	apiKey      string `json:"-"` // Never serialize API keys
	baseURL     string
	httpClient  *http.Client
	limiter     *rate.Limiter
	maxRetries  int
	baseBackoff time.Duration
}

// NewGemini creates a Gemini-backed collaborator.
func NewGemini(cfg Config) (Collaborator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key required")
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	timeout := defaultTimeout
	if cfg.Timeout > 0 {
		timeout = time.Duration(cfg.Timeout) * time.Second
	}

	// 0 means unset; a negative value requests no retries at all.
	maxRetries := cfg.MaxRetries
	switch {
	case maxRetries == 0:
		maxRetries = defaultMaxRetries
	case maxRetries < 0:
		maxRetries = 0
	}

	baseBackoff := cfg.BaseBackoff
	if baseBackoff == 0 {
		baseBackoff = defaultBaseBackoff
	}

	return &gemini{
		model:   model,
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter:     rate.NewLimiter(rate.Limit(defaultRateLimit), defaultBurst),
		maxRetries:  maxRetries,
		baseBackoff: baseBackoff,
	}, nil
}

// geminiRequest is the generateContent request body.
type geminiRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

// geminiResponse is the generateContent response body.
type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// geminiError is the API error envelope.
type geminiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Extract implements Collaborator.
func (g *gemini) Extract(ctx context.Context, text string, hint SchemaHint) (*StructuredResult, error) {
	spec := PromptSpec{
		Mode:        ModeExtract,
		Filename:    hint.Filename,
		PriorErrors: hint.PriorErrors,
	}
	if hint.Multiple {
		spec.QueryType = "다수 조치대상 의결서"
	}

	raw, err := g.complete(ctx, spec.Render(text))
	if err != nil {
		return nil, err
	}

	var result StructuredResult
	if err := json.Unmarshal([]byte(unwrapFence(raw)), &result); err != nil {
		return nil, fmt.Errorf("failed to parse structured response: %w", err)
	}
	return &result, nil
}

// Summarize implements Collaborator.
func (g *gemini) Summarize(ctx context.Context, text string) (string, error) {
	spec := PromptSpec{Mode: ModeSummarize}
	raw, err := g.complete(ctx, spec.Render(text))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(raw), nil
}

// Classify implements Collaborator. The response must be one of the
// given categories.
func (g *gemini) Classify(ctx context.Context, text string, categories []string) (string, error) {
	spec := PromptSpec{Mode: ModeClassify, Categories: categories}
	raw, err := g.complete(ctx, spec.Render(text))
	if err != nil {
		return "", err
	}

	answer := strings.TrimSpace(unwrapFence(raw))
	for _, category := range categories {
		if answer == category {
			return category, nil
		}
	}
	for _, category := range categories {
		if strings.Contains(answer, category) {
			return category, nil
		}
	}
	return "", fmt.Errorf("classification %q not among %d categories", answer, len(categories))
}

// complete sends one prompt with rate limiting and bounded retries.
func (g *gemini) complete(ctx context.Context, prompt string) (string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter error: %w", err)
	}

	req := geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: &geminiGenerationConfig{
			Temperature:     0.1, // Extraction wants determinism, not creativity
			MaxOutputTokens: 4096,
		},
	}

	var lastErr error
	for attempt := 0; attempt <= g.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := g.baseBackoff * time.Duration(1<<(attempt-1))
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		response, err := g.doRequest(ctx, req)
		if err == nil {
			return response, nil
		}

		lastErr = err
		if !isRetryableError(err) {
			return "", err
		}
	}

	return "", fmt.Errorf("max retries exceeded: %w", lastErr)
}

// doRequest performs the actual HTTP request to the Gemini API.
func (g *gemini) doRequest(ctx context.Context, req geminiRequest) (string, error) {
	jsonData, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := g.baseURL + "/v1beta/models/" + g.model + ":generateContent"
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Goog-Api-Key", g.apiKey)

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return "", &retryableError{err: fmt.Errorf("API request failed: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", &retryableError{err: fmt.Errorf("rate limited (429)")}
	}

	if resp.StatusCode >= 500 {
		return "", &retryableError{err: fmt.Errorf("server error (%d): %s", resp.StatusCode, string(body))}
	}

	if resp.StatusCode != http.StatusOK {
		var errResp geminiError
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
			return "", fmt.Errorf("API error (%d): %s", resp.StatusCode, errResp.Error.Message)
		}
		return "", fmt.Errorf("API error (%d): %s", resp.StatusCode, string(body))
	}

	var geminiResp geminiResponse
	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from API")
	}

	return geminiResp.Candidates[0].Content.Parts[0].Text, nil
}

// unwrapFence strips a markdown code fence the model sometimes wraps
// JSON responses in.
func unwrapFence(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}

var _ Collaborator = (*gemini)(nil)
