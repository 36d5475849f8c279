// Package tokens provides a heuristic token cost model used to size chunks
// for remote translation calls. The numbers are a sizing proxy, not a
// billing-accurate count.
package tokens

import (
	"math"
	"strings"

	"github.com/modlingo/modlingo/internal/models"
)

// Profile holds the per-provider estimation constants.
type Profile struct {
	WordToTokenRatio     float64
	SystemPromptOverhead int
	UserPromptOverhead   int
	JSONOverhead         int
	ResponseOverhead     int
	DefaultChunkSize     int
	MaxTokensPerChunk    int
}

// Estimate is the breakdown produced for one dataset.
type Estimate struct {
	ContentTokens    int `json:"content_tokens"`
	PromptOverhead   int `json:"prompt_overhead"`
	ResponseOverhead int `json:"response_overhead"`
	TotalTokens      int `json:"total_tokens"`
	WordCount        int `json:"word_count"`
	EntryCount       int `json:"entry_count"`
}

// profiles maps provider IDs to their tuned constants. Unknown providers
// fall back to the default profile.
var profiles = map[string]Profile{
	"openai": {
		WordToTokenRatio:     1.4,
		SystemPromptOverhead: 350,
		UserPromptOverhead:   50,
		JSONOverhead:         30,
		ResponseOverhead:     500,
		DefaultChunkSize:     50,
		MaxTokensPerChunk:    3000,
	},
	"gemini": {
		WordToTokenRatio:     1.5,
		SystemPromptOverhead: 350,
		UserPromptOverhead:   50,
		JSONOverhead:         30,
		ResponseOverhead:     600,
		DefaultChunkSize:     50,
		MaxTokensPerChunk:    3000,
	},
}

var defaultProfile = Profile{
	WordToTokenRatio:     1.5,
	SystemPromptOverhead: 400,
	UserPromptOverhead:   60,
	JSONOverhead:         40,
	ResponseOverhead:     600,
	DefaultChunkSize:     50,
	MaxTokensPerChunk:    2500,
}

// ProfileFor returns the estimation profile for a provider ID.
func ProfileFor(providerID string) Profile {
	if p, ok := profiles[providerID]; ok {
		return p
	}
	return defaultProfile
}

// Estimate computes the token cost breakdown for a dataset under the given
// profile. It is a pure function: identical input yields identical results.
func (p Profile) Estimate(content *models.Dataset) Estimate {
	words := 0
	entries := 0
	if content != nil {
		entries = content.Len()
		for _, key := range content.Keys() {
			words += len(strings.Fields(key))
			if v, ok := content.Get(key); ok {
				words += len(strings.Fields(v))
			}
		}
	}

	contentTokens := int(math.Ceil(float64(words) * p.WordToTokenRatio))
	promptOverhead := p.SystemPromptOverhead + p.UserPromptOverhead + p.JSONOverhead

	return Estimate{
		ContentTokens:    contentTokens,
		PromptOverhead:   promptOverhead,
		ResponseOverhead: p.ResponseOverhead,
		TotalTokens:      contentTokens + promptOverhead + p.ResponseOverhead,
		WordCount:        words,
		EntryCount:       entries,
	}
}
