// Handlers for quest file translation. Quest files live outside the mod
// JARs, so clients post the file content directly instead of referencing a
// library entry.

package api

import (
	"encoding/json"
	"net/http"

	"github.com/modlingo/modlingo/internal/models"
	"github.com/modlingo/modlingo/internal/quests"
)

type questExtractRequest struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

type questApplyRequest struct {
	Filename     string            `json:"filename"`
	Content      string            `json:"content"`
	Translations map[string]string `json:"translations"`
}

// handleExtractQuests pulls the translatable entries out of a quest file.
// The response keys feed straight into POST /api/jobs as inline content.
func (s *Server) handleExtractQuests(w http.ResponseWriter, r *http.Request) {
	var req questExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.Filename == "" || req.Content == "" {
		RespondWithError(w, http.StatusBadRequest, "filename and content are required")
		return
	}

	format := quests.DetectFormat(req.Filename)
	var dataset *models.Dataset
	switch format {
	case quests.FormatFTBQuests:
		dataset = quests.ExtractSNBT(req.Content)
	case quests.FormatBetterQuesting:
		var err error
		dataset, err = quests.ExtractBQ([]byte(req.Content))
		if err != nil {
			RespondWithError(w, http.StatusUnprocessableEntity, "Could not parse quest file: "+err.Error())
			return
		}
	default:
		RespondWithError(w, http.StatusBadRequest, "Unrecognized quest file format")
		return
	}

	RespondWithJSON(w, http.StatusOK, map[string]any{
		"format":  string(format),
		"count":   dataset.Len(),
		"entries": dataset,
	})
}

// handleApplyQuests writes translated entries back into the original quest
// file content. Entries without a translation pass through unchanged.
func (s *Server) handleApplyQuests(w http.ResponseWriter, r *http.Request) {
	var req questApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.Filename == "" || req.Content == "" {
		RespondWithError(w, http.StatusBadRequest, "filename and content are required")
		return
	}

	format := quests.DetectFormat(req.Filename)
	var out string
	switch format {
	case quests.FormatFTBQuests:
		out = quests.ApplySNBT(req.Content, req.Translations)
	case quests.FormatBetterQuesting:
		rewritten, err := quests.ApplyBQ([]byte(req.Content), req.Translations)
		if err != nil {
			RespondWithError(w, http.StatusUnprocessableEntity, "Could not parse quest file: "+err.Error())
			return
		}
		out = string(rewritten)
	default:
		RespondWithError(w, http.StatusBadRequest, "Unrecognized quest file format")
		return
	}

	RespondWithJSON(w, http.StatusOK, map[string]any{
		"format":  string(format),
		"content": out,
	})
}
