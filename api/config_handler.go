package api

import (
	"net/http"

	"github.com/folyo/folyo/internal/config"
)

// handleGetConfigKeys returns the masked status of every upstream API key.
func (s *Server) handleGetConfigKeys(w http.ResponseWriter, r *http.Request) {
	keys := config.CheckAPIKeys(s.cfg)
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    keys,
	})
}
