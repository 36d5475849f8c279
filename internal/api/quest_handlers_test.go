package api_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modlingo/modlingo/internal/testutil"
)

const snbtChapter = "{\n" +
	"\tid: \"0123456789ABCDEF\"\n" +
	"\ttitle: \"Getting Started\"\n" +
	"\tquests: [{\n" +
	"\t\tdescription: [\n" +
	"\t\t\t\"Welcome to the pack.\"\n" +
	"\t\t]\n" +
	"\t}]\n" +
	"}\n"

func TestExtractAndApplyQuests(t *testing.T) {
	server, _ := testutil.SetupTestServer(t)
	router := server.Router()
	cookie := testutil.GetAuthCookie(t, server, "alice", "password123", "user")

	body, _ := json.Marshal(map[string]string{
		"filename": "chapter.snbt",
		"content":  snbtChapter,
	})
	rr := authedRequest(t, router, cookie, "POST", "/api/quests/extract", body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var extracted struct {
		Format  string            `json:"format"`
		Count   int               `json:"count"`
		Entries map[string]string `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &extracted))
	assert.Equal(t, "ftbquests", extracted.Format)
	assert.Equal(t, 2, extracted.Count)
	assert.Equal(t, "Getting Started", extracted.Entries["title_line_3"])
	assert.Equal(t, "Welcome to the pack.", extracted.Entries["description_line_6"])

	body, _ = json.Marshal(map[string]any{
		"filename": "chapter.snbt",
		"content":  snbtChapter,
		"translations": map[string]string{
			"title_line_3": "Erste Schritte",
		},
	})
	rr = authedRequest(t, router, cookie, "POST", "/api/quests/apply", body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var applied struct {
		Content string `json:"content"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &applied))
	assert.Contains(t, applied.Content, `title: "Erste Schritte"`)
	// Untranslated entries pass through unchanged.
	assert.Contains(t, applied.Content, "Welcome to the pack.")
}

func TestExtractQuestsUnknownFormat(t *testing.T) {
	server, _ := testutil.SetupTestServer(t)
	cookie := testutil.GetAuthCookie(t, server, "alice", "password123", "user")

	body, _ := json.Marshal(map[string]string{
		"filename": "notes.txt",
		"content":  "hello",
	})
	rr := authedRequest(t, server.Router(), cookie, "POST", "/api/quests/extract", body)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
