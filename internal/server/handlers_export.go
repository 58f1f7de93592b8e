package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/jonathan/outreach-assistant/internal/db"
)

// NewApprovedResponse lists the approved messages not yet included in an export
type NewApprovedResponse struct {
	Messages []db.ApprovedMessage `json:"messages"`
	Count    int                  `json:"count"`
}

// handleListNewApproved previews the export selection set without side effects
func (s *Server) handleListNewApproved(w http.ResponseWriter, r *http.Request) {
	messages, err := s.messages.NewApproved(r.Context(), s.sessionID(r))
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, NewApprovedResponse{
		Messages: messages,
		Count:    len(messages),
	})
}

// handleExportApproved streams the approved-and-unexported messages as a CSV
// attachment and marks the included targets EXPORTED
func (s *Server) handleExportApproved(w http.ResponseWriter, r *http.Request) {
	data, count, err := s.messages.ExportApproved(r.Context(), s.sessionID(r))
	if err != nil {
		s.serviceError(w, err)
		return
	}

	filename := fmt.Sprintf("approved-messages-%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("X-Export-Count", fmt.Sprintf("%d", count))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
