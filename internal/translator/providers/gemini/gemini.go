// Package gemini implements the translation provider for the Google AI
// generateContent API. Like the other HTTP providers it performs a single
// attempt per call and reports typed errors for the orchestrator's retry
// policy.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/modlingo/modlingo/internal/models"
	"github.com/modlingo/modlingo/internal/translator/providers"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-2.0-flash"
	defaultTimeout = 120 * time.Second

	maxChunkSize = 50
)

// Config holds the connection settings for the Google AI API.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	Timeout     time.Duration
}

type Client struct {
	cfg    Config
	client *http.Client
}

func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

func (c *Client) Info() models.ProviderInfo {
	return models.ProviderInfo{ID: "gemini", Name: "Google AI (Gemini)"}
}

func (c *Client) MaxChunkSize() int { return maxChunkSize }

type generateRequest struct {
	SystemInstruction *content         `json:"system_instruction,omitempty"`
	Contents          []content        `json:"contents"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature float64 `json:"temperature"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	UsageMetadata struct {
		TotalTokenCount int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
}

// Translate sends one chunk to the generateContent endpoint.
func (c *Client) Translate(ctx context.Context, req *models.TranslationRequest) (*models.TranslationResponse, error) {
	if c.cfg.APIKey == "" {
		return nil, &providers.AuthError{Msg: "no API key configured"}
	}

	payload := generateRequest{
		SystemInstruction: &content{Parts: []part{{Text: providers.BuildSystemPrompt(req)}}},
		Contents: []content{
			{Role: "user", Parts: []part{{Text: providers.BuildUserPrompt(req.Content)}}},
		},
		GenerationConfig: generationConfig{Temperature: c.cfg.Temperature},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent",
		strings.TrimRight(c.cfg.BaseURL, "/"), c.cfg.Model)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.cfg.APIKey)

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if err := classifyStatus(resp.StatusCode, respBody); err != nil {
		return nil, err
	}

	var parsed generateResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("API returned no candidates")
	}

	var text strings.Builder
	for _, p := range parsed.Candidates[0].Content.Parts {
		text.WriteString(p.Text)
	}

	return &models.TranslationResponse{
		RawText: text.String(),
		Metadata: &models.CallMetadata{
			TokensUsed:  parsed.UsageMetadata.TotalTokenCount,
			TimeTakenMs: time.Since(start).Milliseconds(),
			Model:       c.cfg.Model,
		},
	}, nil
}

// ValidateCredential lists models as a cheap authenticated call.
func (c *Client) ValidateCredential(ctx context.Context) error {
	if c.cfg.APIKey == "" {
		return &providers.AuthError{Msg: "no API key configured"}
	}
	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/v1beta/models"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("x-goog-api-key", c.cfg.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("credential check failed: %w", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return classifyStatus(resp.StatusCode, body)
}

func classifyStatus(status int, body []byte) error {
	switch {
	case status == http.StatusOK:
		return nil
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &providers.AuthError{Msg: truncate(string(body), 200)}
	case status == http.StatusTooManyRequests:
		return &providers.RateLimitError{
			RetryAfter: parseRetryDelay(body),
			Msg:        truncate(string(body), 200),
		}
	default:
		return fmt.Errorf("API returned status %d: %s", status, truncate(string(body), 500))
	}
}

// parseRetryDelay extracts the retry delay from a 429 response body by
// looking for Google's RetryInfo detail with its retryDelay field.
func parseRetryDelay(body []byte) time.Duration {
	var parsed struct {
		Error struct {
			Details []struct {
				Type       string `json:"@type"`
				RetryDelay string `json:"retryDelay"`
			} `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return 0
	}
	for _, detail := range parsed.Error.Details {
		if strings.Contains(detail.Type, "RetryInfo") && detail.RetryDelay != "" {
			if d, err := time.ParseDuration(detail.RetryDelay); err == nil {
				return d
			}
		}
	}
	return 0
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
