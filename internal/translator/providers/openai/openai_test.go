package openai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modlingo/modlingo/internal/models"
	"github.com/modlingo/modlingo/internal/translator/providers"
	"github.com/modlingo/modlingo/internal/translator/providers/openai"
)

func testRequest() *models.TranslationRequest {
	ds := models.NewDataset()
	ds.Set("item.apple", "Apple")
	ds.Set("item.bread", "Bread")
	return &models.TranslationRequest{Content: ds, TargetLanguage: "German"}
}

func TestTranslate(t *testing.T) {
	var captured struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"model": "gpt-4o-mini",
			"choices": [{"message": {"content": "item.apple: Apfel\nitem.bread: Brot"}}],
			"usage": {"total_tokens": 42}
		}`))
	}))
	defer server.Close()

	client := openai.New(openai.Config{APIKey: "test-key", BaseURL: server.URL})
	resp, err := client.Translate(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, "item.apple: Apfel\nitem.bread: Brot", resp.RawText)
	assert.Equal(t, 42, resp.Metadata.TokensUsed)

	// The system prompt carries the line count and language; the user
	// message carries the ordered key: value payload.
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Contains(t, captured.Messages[0].Content, "German")
	assert.Contains(t, captured.Messages[0].Content, "2")
	assert.Equal(t, "item.apple: Apple\nitem.bread: Bread\n", captured.Messages[1].Content)
}

func TestTranslateAuthError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "invalid api key"}}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client := openai.New(openai.Config{APIKey: "bad-key", BaseURL: server.URL})
	_, err := client.Translate(context.Background(), testRequest())
	assert.True(t, providers.IsAuthError(err))
}

func TestTranslateRateLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "7")
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := openai.New(openai.Config{APIKey: "test-key", BaseURL: server.URL})
	_, err := client.Translate(context.Background(), testRequest())
	rl, ok := providers.AsRateLimit(err)
	require.True(t, ok)
	assert.Equal(t, 7*time.Second, rl.RetryAfter)
}

func TestTranslateWithoutKey(t *testing.T) {
	client := openai.New(openai.Config{})
	_, err := client.Translate(context.Background(), testRequest())
	assert.True(t, providers.IsAuthError(err))
}

func TestValidateCredential(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/models", r.URL.Path)
		if r.Header.Get("Authorization") != "Bearer good-key" {
			http.Error(w, "nope", http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"data": []}`))
	}))
	defer server.Close()

	good := openai.New(openai.Config{APIKey: "good-key", BaseURL: server.URL})
	assert.NoError(t, good.ValidateCredential(context.Background()))

	bad := openai.New(openai.Config{APIKey: "bad-key", BaseURL: server.URL})
	assert.True(t, providers.IsAuthError(bad.ValidateCredential(context.Background())))
}
