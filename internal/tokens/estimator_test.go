package tokens_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/modlingo/modlingo/internal/models"
	"github.com/modlingo/modlingo/internal/tokens"
)

func TestEstimateEmptyDataset(t *testing.T) {
	p := tokens.ProfileFor("openai")

	est := p.Estimate(models.NewDataset())
	assert.Equal(t, 0, est.WordCount)
	assert.Equal(t, 0, est.EntryCount)
	assert.Equal(t, 0, est.ContentTokens)
	assert.Equal(t, est.PromptOverhead+est.ResponseOverhead, est.TotalTokens)

	est = p.Estimate(nil)
	assert.Equal(t, 0, est.WordCount)
	assert.Equal(t, 0, est.EntryCount)
}

func TestEstimateCountsKeysAndValues(t *testing.T) {
	d := models.NewDataset()
	d.Set("item.apple", "A red apple")     // 1 + 3 words
	d.Set("item.bread", "Fresh baked bread") // 1 + 3 words

	p := tokens.ProfileFor("openai")
	est := p.Estimate(d)

	assert.Equal(t, 8, est.WordCount)
	assert.Equal(t, 2, est.EntryCount)
	// ceil(8 * 1.4) = 12
	assert.Equal(t, 12, est.ContentTokens)
	assert.Equal(t, est.ContentTokens+est.PromptOverhead+est.ResponseOverhead, est.TotalTokens)
}

func TestEstimateIsPure(t *testing.T) {
	d := models.NewDataset()
	d.Set("a", "one two three")
	d.Set("b", "")

	p := tokens.ProfileFor("gemini")
	first := p.Estimate(d)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, p.Estimate(d))
	}
}

func TestProfileForUnknownProviderFallsBack(t *testing.T) {
	def := tokens.ProfileFor("no-such-provider")
	other := tokens.ProfileFor("definitely-not-registered")
	assert.Equal(t, def, other)
	assert.Greater(t, def.WordToTokenRatio, 0.0)
	assert.Greater(t, def.DefaultChunkSize, 0)
}

func TestEstimateWhitespaceOnlyValues(t *testing.T) {
	d := models.NewDataset()
	d.Set("blank", "   \t  ")

	est := tokens.ProfileFor("openai").Estimate(d)
	// The key itself is one word; the value contributes none.
	assert.Equal(t, 1, est.WordCount)
	assert.Equal(t, 1, est.EntryCount)
}
