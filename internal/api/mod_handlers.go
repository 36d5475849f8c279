package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/modlingo/modlingo/internal/jobs"
)

// modSummary is the list view of a mod: metadata and available languages,
// without the full lang file contents.
type modSummary struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Version   string   `json:"version"`
	JarPath   string   `json:"jar_path"`
	IconURI   string   `json:"icon_uri,omitempty"`
	Languages []string `json:"languages"`
}

func (s *Server) handleListMods(w http.ResponseWriter, r *http.Request) {
	mods := s.app.Library().Mods()
	out := make([]modSummary, 0, len(mods))
	for _, mod := range mods {
		sum := modSummary{
			ID:      mod.ID,
			Name:    mod.Name,
			Version: mod.Version,
			JarPath: mod.JarPath,
			IconURI: mod.IconURI,
		}
		for _, lf := range mod.LangFiles {
			sum.Languages = append(sum.Languages, lf.Language)
		}
		out = append(out, sum)
	}
	RespondWithJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetMod(w http.ResponseWriter, r *http.Request) {
	mod, ok := s.app.Library().Get(chi.URLParam(r, "modID"))
	if !ok {
		RespondWithError(w, http.StatusNotFound, "Mod not found")
		return
	}
	RespondWithJSON(w, http.StatusOK, mod)
}

func (s *Server) handleRescanMods(w http.ResponseWriter, r *http.Request) {
	if err := s.app.JobManager().RunJob(jobs.JobModScan, s.app); err != nil {
		RespondWithError(w, http.StatusConflict, err.Error())
		return
	}
	RespondWithJSON(w, http.StatusAccepted, map[string]string{"status": "scanning"})
}
