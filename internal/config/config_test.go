package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/modlingo/modlingo/internal/config"
)

func TestProviderCredentialsStayIsolated(t *testing.T) {
	cfg := &config.Config{}
	cfg.Provider.ID = "openai"
	cfg.Provider.APIKey = "sk-legacy"
	cfg.Provider.Model = "gpt-4o-mini"
	cfg.Provider.Temperature = 0.7

	// The selected backend inherits the active block.
	oa := cfg.OpenAI()
	assert.Equal(t, "sk-legacy", oa.APIKey)
	assert.Equal(t, "gpt-4o-mini", oa.Model)
	assert.Equal(t, 0.7, oa.Temperature)

	// The non-selected backend never sees the other backend's key or model.
	gm := cfg.Gemini()
	assert.Empty(t, gm.APIKey)
	assert.Empty(t, gm.Model)
}

func TestProviderCredentialsSectionWinsOverActiveBlock(t *testing.T) {
	cfg := &config.Config{}
	cfg.Provider.ID = "openai"
	cfg.Provider.APIKey = "sk-legacy"
	cfg.Providers.OpenAI.APIKey = "sk-section"
	cfg.Providers.Gemini.APIKey = "g-key"
	cfg.Providers.Gemini.Model = "gemini-2.0-flash"

	assert.Equal(t, "sk-section", cfg.OpenAI().APIKey)
	assert.Equal(t, "g-key", cfg.Gemini().APIKey)
	assert.Equal(t, "gemini-2.0-flash", cfg.Gemini().Model)
}

func TestProviderCredentialsInheritForSelectedGemini(t *testing.T) {
	cfg := &config.Config{}
	cfg.Provider.ID = "gemini"
	cfg.Provider.APIKey = "g-legacy"

	assert.Equal(t, "g-legacy", cfg.Gemini().APIKey)
	assert.Empty(t, cfg.OpenAI().APIKey)
}
