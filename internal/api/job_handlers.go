package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/modlingo/modlingo/internal/models"
	"github.com/modlingo/modlingo/internal/translator"
)

type createJobRequest struct {
	ModID          string          `json:"mod_id"`
	Language       string          `json:"language"` // source lang file, e.g. "en_us"
	TargetLanguage string          `json:"target_language"`
	DisplayName    string          `json:"display_name"`
	Content        json.RawMessage `json:"content"` // raw key/value object, alternative to mod_id
}

// handleCreateJob registers a new translation job. Content comes either
// inline as a JSON object or from an indexed mod's language file.
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var payload createJobRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if payload.TargetLanguage == "" {
		RespondWithError(w, http.StatusBadRequest, "target_language is required")
		return
	}

	var content *models.Dataset
	displayName := payload.DisplayName

	switch {
	case len(payload.Content) > 0:
		content = models.NewDataset()
		if err := content.UnmarshalJSON(payload.Content); err != nil {
			RespondWithError(w, http.StatusBadRequest, "content must be a flat JSON object")
			return
		}
		if displayName == "" {
			displayName = "inline content"
		}
	case payload.ModID != "":
		mod, ok := s.app.Library().Get(payload.ModID)
		if !ok {
			RespondWithError(w, http.StatusNotFound, "Mod not found")
			return
		}
		language := payload.Language
		if language == "" {
			language = "en_us"
		}
		for _, lf := range mod.LangFiles {
			if strings.EqualFold(lf.Language, language) {
				content = lf.Content
				break
			}
		}
		if content == nil {
			RespondWithError(w, http.StatusNotFound, "Mod has no language file for "+language)
			return
		}
		if displayName == "" {
			displayName = mod.Name + " " + language
		}
	default:
		RespondWithError(w, http.StatusBadRequest, "Either mod_id or content is required")
		return
	}

	job, err := s.app.Translator().CreateJob(content, payload.TargetLanguage, displayName)
	if err != nil {
		RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	RespondWithJSON(w, http.StatusCreated, job)
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, s.app.Translator().ListJobs())
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	job, err := s.app.Translator().GetJob(chi.URLParam(r, "jobID"))
	if err != nil {
		RespondWithError(w, http.StatusNotFound, "Job not found")
		return
	}
	RespondWithJSON(w, http.StatusOK, job)
}

// handleRunJob starts a job in the background; progress streams over the
// websocket hub.
func (s *Server) handleRunJob(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	svc := s.app.Translator()

	if _, err := svc.GetJob(jobID); err != nil {
		RespondWithError(w, http.StatusNotFound, "Job not found")
		return
	}

	go func() {
		if err := svc.RunJob(context.Background(), jobID); err != nil &&
			!errors.Is(err, translator.ErrInterrupted) {
			log.Printf("Job %s run failed: %v", jobID, err)
		}
	}()
	RespondWithJSON(w, http.StatusAccepted, map[string]string{"status": "started"})
}

func (s *Server) handleRunBatch(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		JobIDs []string `json:"job_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || len(payload.JobIDs) == 0 {
		RespondWithError(w, http.StatusBadRequest, "job_ids is required")
		return
	}

	svc := s.app.Translator()
	go func() {
		if err := svc.RunBatch(context.Background(), payload.JobIDs); err != nil &&
			!errors.Is(err, translator.ErrInterrupted) {
			log.Printf("Batch run failed: %v", err)
		}
	}()
	RespondWithJSON(w, http.StatusAccepted, map[string]string{"status": "started"})
}

func (s *Server) handleInterruptJob(w http.ResponseWriter, r *http.Request) {
	if err := s.app.Translator().Interrupt(chi.URLParam(r, "jobID")); err != nil {
		RespondWithError(w, http.StatusNotFound, "Job not found")
		return
	}
	RespondWithJSON(w, http.StatusOK, map[string]string{"status": "interrupting"})
}

func (s *Server) handleGetJobContent(w http.ResponseWriter, r *http.Request) {
	content, err := s.app.Translator().CombinedContent(chi.URLParam(r, "jobID"))
	if err != nil {
		RespondWithError(w, http.StatusNotFound, "Job not found")
		return
	}
	RespondWithJSON(w, http.StatusOK, content)
}

func (s *Server) handleGetJobEvents(w http.ResponseWriter, r *http.Request) {
	events, err := s.store.ListEvents(chi.URLParam(r, "jobID"))
	if err != nil {
		RespondWithError(w, http.StatusInternalServerError, "Failed to load events")
		return
	}
	RespondWithJSON(w, http.StatusOK, events)
}

func (s *Server) handleClearJob(w http.ResponseWriter, r *http.Request) {
	if err := s.app.Translator().ClearJob(chi.URLParam(r, "jobID")); err != nil {
		RespondWithError(w, http.StatusNotFound, "Job not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
