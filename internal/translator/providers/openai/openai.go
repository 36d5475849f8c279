// Package openai implements the translation provider for OpenAI-compatible
// chat completion APIs (OpenAI itself, or any server exposing the same
// /chat/completions surface). It performs a single attempt per call; the
// orchestrator owns the retry policy.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/modlingo/modlingo/internal/models"
	"github.com/modlingo/modlingo/internal/translator/providers"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o-mini"
	defaultTimeout = 120 * time.Second

	maxChunkSize = 50
)

// Config holds the connection settings for an OpenAI-compatible endpoint.
type Config struct {
	APIKey      string
	BaseURL     string // optional, for compatible servers
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
	return models.ProviderInfo{ID: "openai", Name: "OpenAI (compatible)"}
}

func (c *Client) MaxChunkSize() int { return maxChunkSize }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature,omitempty"`
	Messages    []chatMessage `json:"messages"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Translate sends one chunk to the chat completions endpoint and returns the
// raw model text. Key/value reconstruction happens in the orchestrator.
func (c *Client) Translate(ctx context.Context, req *models.TranslationRequest) (*models.TranslationResponse, error) {
	if c.cfg.APIKey == "" {
		return nil, &providers.AuthError{Msg: "no API key configured"}
	}

	payload := chatRequest{
		Model:       c.cfg.Model,
		Temperature: c.cfg.Temperature,
		Messages: []chatMessage{
			{Role: "system", Content: providers.BuildSystemPrompt(req)},
			{Role: "user", Content: providers.BuildUserPrompt(req.Content)},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	start := time.Now()
	respBody, status, header, err := c.post(ctx, "/chat/completions", body)
	if err != nil {
		return nil, err
	}
	if err := classifyStatus(status, header, respBody); err != nil {
		return nil, err
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("API error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("API returned no choices")
	}

	return &models.TranslationResponse{
		RawText: parsed.Choices[0].Message.Content,
		Metadata: &models.CallMetadata{
			TokensUsed:  parsed.Usage.TotalTokens,
			TimeTakenMs: time.Since(start).Milliseconds(),
			Model:       parsed.Model,
		},
	}, nil
}

// ValidateCredential performs a cheap authenticated call to check the key.
func (c *Client) ValidateCredential(ctx context.Context) error {
	if c.cfg.APIKey == "" {
		return &providers.AuthError{Msg: "no API key configured"}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		strings.TrimRight(c.cfg.BaseURL, "/")+"/models", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("credential check failed: %w", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return classifyStatus(resp.StatusCode, resp.Header, body)
}

func (c *Client) post(ctx context.Context, path string, body []byte) ([]byte, int, http.Header, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(c.cfg.BaseURL, "/")+path, bytes.NewReader(body))
	if err != nil {
		return nil, 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, nil, fmt.Errorf("reading response: %w", err)
	}
	return respBody, resp.StatusCode, resp.Header, nil
}

// classifyStatus maps HTTP status codes onto the orchestrator's error
// taxonomy: auth errors are terminal, 429 carries the suggested delay.
func classifyStatus(status int, header http.Header, body []byte) error {
	switch {
	case status == http.StatusOK:
		return nil
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &providers.AuthError{Msg: truncate(string(body), 200)}
	case status == http.StatusTooManyRequests:
		return &providers.RateLimitError{
			RetryAfter: parseRetryAfter(header),
			Msg:        truncate(string(body), 200),
		}
	default:
		return fmt.Errorf("API returned status %d: %s", status, truncate(string(body), 500))
	}
}

// parseRetryAfter reads the Retry-After header (seconds form).
func parseRetryAfter(header http.Header) time.Duration {
	if header == nil {
		return 0
	}
	if secs, err := strconv.Atoi(header.Get("Retry-After")); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return 0
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
