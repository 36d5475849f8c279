package quests_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modlingo/modlingo/internal/quests"
)

const sampleSNBT = `{
	id: "1A2B3C4D"
	title: "Getting Started"
	subtitle: "The first steps"
	description: [
		"Welcome to the pack!"
		""
		"Craft a \"wooden\" pickaxe."
	]
	tasks: [{
		id: "5E6F"
		type: "item"
	}]
}`

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, quests.FormatFTBQuests, quests.DetectFormat("chapters/getting_started.snbt"))
	assert.Equal(t, quests.FormatBetterQuesting, quests.DetectFormat("config/DefaultQuests.json"))
	assert.Equal(t, quests.FormatUnknown, quests.DetectFormat("config/settings.toml"))
}

func TestExtractSNBT(t *testing.T) {
	ds := quests.ExtractSNBT(sampleSNBT)

	require.Equal(t, 4, ds.Len())
	title, _ := ds.Get("title_line_3")
	assert.Equal(t, "Getting Started", title)
	subtitle, _ := ds.Get("subtitle_line_4")
	assert.Equal(t, "The first steps", subtitle)

	// Quoted text inside description arrays is unescaped; the blank spacer
	// line is skipped.
	desc, _ := ds.Get("description_line_8")
	assert.Equal(t, `Craft a "wooden" pickaxe.`, desc)
}

func TestApplySNBTRoundTrip(t *testing.T) {
	ds := quests.ExtractSNBT(sampleSNBT)

	translations := make(map[string]string)
	for _, key := range ds.Keys() {
		value, _ := ds.Get(key)
		translations[key] = "DE " + value
	}

	out := quests.ApplySNBT(sampleSNBT, translations)
	assert.Contains(t, out, `title: "DE Getting Started"`)
	assert.Contains(t, out, `"DE Welcome to the pack!"`)
	assert.Contains(t, out, `"DE Craft a \"wooden\" pickaxe."`)
	// Untouched structure survives byte-for-byte.
	assert.Contains(t, out, `id: "1A2B3C4D"`)
	assert.Contains(t, out, `type: "item"`)

	// Applying no translations is the identity.
	assert.Equal(t, sampleSNBT, quests.ApplySNBT(sampleSNBT, nil))
}

func TestExtractAndApplyBQ(t *testing.T) {
	src := []byte(`{
		"questDatabase:9": {
			"0:10": {
				"properties:10": {
					"betterquesting:10": {
						"name:8": "First Quest",
						"desc:8": "Punch a tree.",
						"icon:10": {"id:8": "minecraft:log"}
					}
				}
			}
		}
	}`)

	ds, err := quests.ExtractBQ(src)
	require.NoError(t, err)
	require.Equal(t, 2, ds.Len())

	namePath := "questDatabase:9/0:10/properties:10/betterquesting:10/name:8"
	name, ok := ds.Get(namePath)
	require.True(t, ok)
	assert.Equal(t, "First Quest", name)

	out, err := quests.ApplyBQ(src, map[string]string{namePath: "Erste Quest"})
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(out, &doc))
	quest := doc["questDatabase:9"].(map[string]any)["0:10"].(map[string]any)
	props := quest["properties:10"].(map[string]any)["betterquesting:10"].(map[string]any)
	assert.Equal(t, "Erste Quest", props["name:8"])
	// Untranslated text keeps its original value.
	assert.Equal(t, "Punch a tree.", props["desc:8"])
	// Non-text properties are untouched.
	assert.Equal(t, "minecraft:log", props["icon:10"].(map[string]any)["id:8"])
}

func TestExtractBQInvalidJSON(t *testing.T) {
	_, err := quests.ExtractBQ([]byte("{broken"))
	assert.Error(t, err)
}
