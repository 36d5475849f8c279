package translator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modlingo/modlingo/internal/translator"
)

func TestReconstructExactKeyLines(t *testing.T) {
	raw := "a: Apfel\nb: Brot\nc: Karotte\n"
	result, err := translator.Reconstruct([]string{"a", "b", "c"}, raw)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "Apfel", "b": "Brot", "c": "Karotte"}, result)
}

func TestReconstructIgnoresLineOrder(t *testing.T) {
	raw := "c: Karotte\na: Apfel\nb: Brot"
	result, err := translator.Reconstruct([]string{"a", "b", "c"}, raw)
	require.NoError(t, err)
	assert.Equal(t, "Apfel", result["a"])
	assert.Equal(t, "Karotte", result["c"])
}

func TestReconstructFiltersNoiseAndZips(t *testing.T) {
	// Models often wrap output in fences and boilerplate and drop the keys.
	raw := "Here are the translations:\n```\nApfel\nBrot\n```\n"
	result, err := translator.Reconstruct([]string{"a", "b"}, raw)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "Apfel", "b": "Brot"}, result)
}

func TestReconstructStripsForeignKeyPrefix(t *testing.T) {
	// A response that kept a colon-separated structure but mangled the keys.
	raw := "item.1: Apfel\nitem.2: Brot"
	result, err := translator.Reconstruct([]string{"a", "b"}, raw)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "Apfel", "b": "Brot"}, result)
}

func TestReconstructTooFewLines(t *testing.T) {
	_, err := translator.Reconstruct([]string{"a", "b", "c"}, "Apfel\n")
	var parseErr *translator.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 3, parseErr.Expected)
	assert.Equal(t, 1, parseErr.Found)
	assert.Contains(t, parseErr.Preview, "Apfel")
}

func TestReconstructValueContainingColon(t *testing.T) {
	raw := "url: https://example.com/path"
	result, err := translator.Reconstruct([]string{"url"}, raw)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/path", result["url"])
}

func TestValidate(t *testing.T) {
	keys := []string{"a", "b"}

	assert.NoError(t, translator.Validate(keys, map[string]string{"a": "x", "b": "y"}))

	err := translator.Validate(keys, map[string]string{"a": "x"})
	var vErr *translator.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{"b"}, vErr.MissingKeys)

	err = translator.Validate(keys, map[string]string{"a": "x", "b": "   "})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{"b"}, vErr.EmptyKeys)

	// Extra keys are a mismatch even when every expected key is present.
	err = translator.Validate(keys, map[string]string{"a": "x", "b": "y", "z": "extra"})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, 3, vErr.Found)
}
