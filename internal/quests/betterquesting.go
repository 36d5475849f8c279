// BetterQuesting stores its quest database as JSON with NBT type suffixes
// on every key ("name:8", "desc:8"). Extraction walks the document and
// collects the text properties; apply walks it again and substitutes.

package quests

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/modlingo/modlingo/internal/models"
)

// translatableBQKeys are the property names (before the ":8" type suffix)
// that carry player-visible text.
var translatableBQKeys = map[string]bool{
	"name": true,
	"desc": true,
}

// ExtractBQ collects translatable strings from a BetterQuesting quest
// database. Keys are slash-joined paths into the document, so they are
// stable across extract/apply round trips.
func ExtractBQ(data []byte) (*models.Dataset, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid quest database: %w", err)
	}

	ds := models.NewDataset()
	walkBQ(doc, "", func(path, value string) string {
		if strings.TrimSpace(value) != "" {
			ds.Set(path, value)
		}
		return value
	})
	return ds, nil
}

// ApplyBQ writes translated values back into the quest database and
// re-serializes it. Paths absent from translations keep their original
// text.
func ApplyBQ(data []byte, translations map[string]string) ([]byte, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid quest database: %w", err)
	}

	doc = rewriteBQ(doc, "", translations)
	return json.MarshalIndent(doc, "", "  ")
}

// walkBQ visits every translatable string value depth-first, in sorted key
// order for determinism, and replaces it with fn's return value.
func walkBQ(node any, path string, fn func(path, value string) string) any {
	switch v := node.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			childPath := joinBQPath(path, k)
			if s, ok := v[k].(string); ok && isTranslatableBQKey(k) {
				v[k] = fn(childPath, s)
				continue
			}
			v[k] = walkBQ(v[k], childPath, fn)
		}
		return v
	case []any:
		for i := range v {
			v[i] = walkBQ(v[i], fmt.Sprintf("%s/%d", path, i), fn)
		}
		return v
	default:
		return node
	}
}

func rewriteBQ(doc any, path string, translations map[string]string) any {
	return walkBQ(doc, path, func(p, value string) string {
		if t, ok := translations[p]; ok {
			return t
		}
		return value
	})
}

func isTranslatableBQKey(key string) bool {
	base, _, _ := strings.Cut(key, ":")
	return translatableBQKeys[base]
}

func joinBQPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "/" + key
}
