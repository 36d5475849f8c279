package api

import (
	"net/http"

	"github.com/modlingo/modlingo/internal/translator/providers"
)

func (s *Server) handleListProviders(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, providers.GetAll())
}

// handleValidateProvider checks the configured provider's credential with a
// cheap remote call, so a bad API key surfaces before a job burns chunks.
func (s *Server) handleValidateProvider(w http.ResponseWriter, r *http.Request) {
	providerID := s.app.Config().Provider.ID
	prov, ok := providers.Get(providerID)
	if !ok {
		RespondWithError(w, http.StatusNotFound, "Provider '"+providerID+"' is not registered")
		return
	}

	if err := prov.ValidateCredential(r.Context()); err != nil {
		RespondWithJSON(w, http.StatusOK, map[string]any{
			"provider": providerID,
			"valid":    false,
			"error":    err.Error(),
		})
		return
	}
	RespondWithJSON(w, http.StatusOK, map[string]any{
		"provider": providerID,
		"valid":    true,
	})
}
