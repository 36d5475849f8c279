// Package chunker partitions a translation dataset into ordered chunks that
// each fit one remote call. Two policies are supported: a fixed entry-count
// window and a greedy token-budget accumulator with long-content splitting.
package chunker

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/modlingo/modlingo/internal/models"
	"github.com/modlingo/modlingo/internal/tokens"
)

// PolicyMode selects the splitting strategy.
type PolicyMode string

const (
	PolicyEntry PolicyMode = "entry"
	PolicyToken PolicyMode = "token"
)

// PartKeyMarker joins an original key with its part number when a long
// value is split across synthetic entries, e.g. "quest.desc_part_2".
const PartKeyMarker = "_part_"

const (
	defaultLongContentThreshold = 500
	defaultMaxPartLength        = 250
)

// EstimateFunc computes the token cost of a candidate chunk. Overridable so
// tests can exercise estimator failure and the entry-policy fallback.
type EstimateFunc func(*models.Dataset) (tokens.Estimate, error)

// Policy configures a split operation.
type Policy struct {
	Mode                  PolicyMode
	ChunkSize             int // entry policy; 0 = profile default
	MaxTokensPerChunk     int // token policy; 0 = profile default
	LongContentThreshold  int // min value length before sentence splitting
	MaxPartLength         int // max characters per synthetic part
	FallbackToEntryPolicy bool
	Profile               tokens.Profile
	Estimate              EstimateFunc // nil = Profile.Estimate
}

// SplitError is returned when token-budget splitting fails and no fallback
// is configured.
type SplitError struct {
	Reason string
	Err    error
}

func (e *SplitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("chunk split failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("chunk split failed: %s", e.Reason)
}

func (e *SplitError) Unwrap() error { return e.Err }

// Split partitions content into ordered chunks. Concatenating the produced
// chunk contents in order reconstructs the input exactly, except that a long
// value may be represented by synthetic "_part_n" entries.
func Split(content *models.Dataset, policy Policy) ([]*models.Chunk, error) {
	if content == nil || content.Len() == 0 {
		return nil, nil
	}

	switch policy.Mode {
	case PolicyToken:
		chunks, err := splitByTokens(content, policy)
		if err != nil {
			if policy.FallbackToEntryPolicy {
				log.Printf("Token-budget split failed (%v), falling back to entry policy", err)
				return splitByEntries(content, policy), nil
			}
			return nil, &SplitError{Reason: "token estimation failed", Err: err}
		}
		return chunks, nil
	default:
		return splitByEntries(content, policy), nil
	}
}

// splitByEntries slides a fixed-size window over the ordered entries.
func splitByEntries(content *models.Dataset, policy Policy) []*models.Chunk {
	size := policy.ChunkSize
	if size <= 0 {
		size = policy.Profile.DefaultChunkSize
	}
	if size <= 0 {
		size = 50
	}

	var chunks []*models.Chunk
	total := content.Len()
	for start := 0; start < total; start += size {
		end := start + size
		if end > total {
			end = total
		}
		chunks = append(chunks, &models.Chunk{
			ID:      len(chunks),
			Content: content.Slice(start, end),
			Status:  models.ChunkStatusPending,
		})
	}
	return chunks
}

// splitByTokens greedily accumulates entries until the next entry would push
// the estimated total over budget. Estimator panics are converted to errors
// so the caller can apply the fallback policy.
func splitByTokens(content *models.Dataset, policy Policy) (chunks []*models.Chunk, err error) {
	defer func() {
		if r := recover(); r != nil {
			chunks = nil
			err = fmt.Errorf("estimator panic: %v", r)
		}
	}()

	estimate := policy.Estimate
	if estimate == nil {
		estimate = func(d *models.Dataset) (tokens.Estimate, error) {
			return policy.Profile.Estimate(d), nil
		}
	}
	budget := policy.MaxTokensPerChunk
	if budget <= 0 {
		budget = policy.Profile.MaxTokensPerChunk
	}

	appendChunk := func(d *models.Dataset) {
		chunks = append(chunks, &models.Chunk{
			ID:      len(chunks),
			Content: d,
			Status:  models.ChunkStatusPending,
		})
	}

	current := models.NewDataset()
	for _, key := range content.Keys() {
		value, _ := content.Get(key)

		candidate := current.Clone()
		candidate.Set(key, value)
		est, eerr := estimate(candidate)
		if eerr != nil {
			return nil, eerr
		}

		if est.TotalTokens <= budget {
			current = candidate
			continue
		}

		// Over budget. Close the running chunk first, then decide whether
		// the entry fits on its own.
		if current.Len() > 0 {
			appendChunk(current)
			current = models.NewDataset()

			single := models.NewDataset()
			single.Set(key, value)
			est, eerr = estimate(single)
			if eerr != nil {
				return nil, eerr
			}
			if est.TotalTokens <= budget {
				current = single
				continue
			}
		}

		// The entry alone exceeds the budget.
		parts, synthetic := splitOversizedEntry(key, value, policy)
		for _, part := range parts {
			c := &models.Chunk{
				ID:      len(chunks),
				Content: part,
				Status:  models.ChunkStatusPending,
			}
			if synthetic {
				// Record fabricated keys so the re-merge step can tell
				// them apart from genuine keys that end in "_part_n".
				c.SyntheticKeys = part.Keys()
			}
			chunks = append(chunks, c)
		}
	}

	if current.Len() > 0 {
		appendChunk(current)
	}
	return chunks, nil
}

// splitOversizedEntry breaks a single over-budget entry into synthetic
// "_part_n" single-entry chunks when the value is long enough to split on
// sentence boundaries. Unsplittable values pass through unmodified; the job
// proceeds and the provider sees one oversized call. The second return
// value reports whether the returned datasets carry fabricated part keys.
func splitOversizedEntry(key, value string, policy Policy) ([]*models.Dataset, bool) {
	threshold := policy.LongContentThreshold
	if threshold <= 0 {
		threshold = defaultLongContentThreshold
	}
	maxPart := policy.MaxPartLength
	if maxPart <= 0 {
		maxPart = defaultMaxPartLength
	}

	single := func() ([]*models.Dataset, bool) {
		d := models.NewDataset()
		d.Set(key, value)
		return []*models.Dataset{d}, false
	}

	if len(value) <= threshold {
		log.Printf("Entry %q exceeds the token budget but is below the split threshold; emitting as-is", key)
		return single()
	}

	sentences := splitSentences(value)
	if len(sentences) <= 1 {
		log.Printf("Entry %q exceeds the token budget and has no sentence boundaries; emitting as-is", key)
		return single()
	}

	parts := packSentences(sentences, maxPart)
	if len(parts) <= 1 {
		return single()
	}

	out := make([]*models.Dataset, 0, len(parts))
	for i, part := range parts {
		d := models.NewDataset()
		d.Set(fmt.Sprintf("%s%s%d", key, PartKeyMarker, i+1), part)
		out = append(out, d)
	}
	log.Printf("Entry %q split into %d parts for translation", key, len(parts))
	return out, true
}

// splitSentences splits text after sentence-terminator punctuation, keeping
// the terminator with its fragment.
func splitSentences(text string) []string {
	var out []string
	start := 0
	for i, r := range text {
		if r == '.' || r == '!' || r == '?' {
			frag := strings.TrimSpace(text[start : i+1])
			if frag != "" {
				out = append(out, frag)
			}
			start = i + 1
		}
	}
	if tail := strings.TrimSpace(text[start:]); tail != "" {
		out = append(out, tail)
	}
	return out
}

// packSentences greedily joins sentence fragments into parts no longer than
// maxLen characters. A fragment longer than maxLen becomes its own part.
func packSentences(sentences []string, maxLen int) []string {
	var parts []string
	var current strings.Builder
	for _, s := range sentences {
		if current.Len() > 0 && current.Len()+1+len(s) > maxLen {
			parts = append(parts, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(s)
	}
	if current.Len() > 0 {
		parts = append(parts, current.String())
	}
	return parts
}

// IsPartKey reports whether key is a synthetic part key and, if so, returns
// the original key and the 1-based part number.
func IsPartKey(key string) (orig string, part int, ok bool) {
	idx := strings.LastIndex(key, PartKeyMarker)
	if idx < 0 {
		return "", 0, false
	}
	n, err := strconv.Atoi(key[idx+len(PartKeyMarker):])
	if err != nil || n < 1 {
		return "", 0, false
	}
	return key[:idx], n, true
}
