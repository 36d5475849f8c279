package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/modlingo/modlingo/internal/jobs"
)

func (s *Server) handleGetVersion(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, map[string]string{"version": s.app.Version()})
}

func (s *Server) handleCheckForUpdate(w http.ResponseWriter, r *http.Request) {
	rel, newer, err := s.checker.CheckForUpdate(r.Context(), s.app.Version())
	if err != nil {
		RespondWithError(w, http.StatusBadGateway, "Update check failed: "+err.Error())
		return
	}
	resp := map[string]any{
		"current":          s.app.Version(),
		"update_available": newer,
	}
	if rel != nil {
		resp["latest"] = rel.Version
		resp["url"] = rel.URL
	}
	RespondWithJSON(w, http.StatusOK, resp)
}

// handleGetConfig reports the active configuration with the API key masked.
func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	cfg := s.app.Config()
	RespondWithJSON(w, http.StatusOK, map[string]any{
		"port":          cfg.Port,
		"scan_interval": cfg.ScanInterval,
		"mods_path":     cfg.Mods.Path,
		"output_path":   cfg.Output.Path,
		"provider": map[string]any{
			"id":          cfg.Provider.ID,
			"model":       cfg.Provider.Model,
			"has_api_key": cfg.Provider.APIKey != "",
		},
		"translation": cfg.Translation,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(); err != nil {
		RespondWithError(w, http.StatusServiceUnavailable, "Database connection failed")
		return
	}
	RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	sessions, err := s.store.ListSessions(limit)
	if err != nil {
		RespondWithError(w, http.StatusInternalServerError, "Failed to load sessions")
		return
	}
	RespondWithJSON(w, http.StatusOK, sessions)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteSession(chi.URLParam(r, "jobID")); err != nil {
		RespondWithError(w, http.StatusInternalServerError, "Failed to delete session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListBackups(w http.ResponseWriter, r *http.Request) {
	backups, err := s.store.ListBackups()
	if err != nil {
		RespondWithError(w, http.StatusInternalServerError, "Failed to load backups")
		return
	}
	RespondWithJSON(w, http.StatusOK, backups)
}

func (s *Server) handleRunAdminJob(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		JobName string `json:"job_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	err := s.app.JobManager().RunJob(payload.JobName, s.app)
	switch {
	case errors.Is(err, jobs.ErrJobAlreadyRunning):
		RespondWithError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		RespondWithError(w, http.StatusNotFound, err.Error())
		return
	}

	RespondWithJSON(w, http.StatusAccepted, map[string]string{
		"message": "Job '" + payload.JobName + "' started successfully.",
	})
}

func (s *Server) handleGetAdminJobsStatus(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, s.app.JobManager().GetStatus())
}
