package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/jonathan/outreach-assistant/internal/types"
)

// handleGetConfig returns one per-session setting, 404 when unset
func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimSpace(r.PathValue("key"))
	if key == "" {
		s.errorResponse(w, http.StatusBadRequest, "config key is required")
		return
	}

	entry, err := s.store.GetConfig(r.Context(), key, s.sessionID(r))
	if err != nil {
		s.serviceError(w, err)
		return
	}
	if entry == nil {
		s.errorResponse(w, http.StatusNotFound, "config key not set")
		return
	}
	s.jsonResponse(w, http.StatusOK, types.ConfigResponse{Key: entry.Key, Value: entry.Value})
}

// handleSetConfig stores one per-session setting, overwriting any prior value
func (s *Server) handleSetConfig(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimSpace(r.PathValue("key"))
	if key == "" {
		s.errorResponse(w, http.StatusBadRequest, "config key is required")
		return
	}

	var req types.SetConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.store.SetConfig(r.Context(), key, req.Value, s.sessionID(r)); err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, types.ConfigResponse{Key: key, Value: req.Value})
}
