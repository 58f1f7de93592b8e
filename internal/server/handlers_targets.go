package server

import (
	"net/http"
	"strconv"

	"github.com/jonathan/outreach-assistant/internal/db"
)

// maxImportBytes caps the in-memory size of an uploaded CSV
const maxImportBytes = 10 << 20

// ListTargetsResponse is one page of targets plus aggregate counts
type ListTargetsResponse struct {
	Items    []db.Target    `json:"items"`
	Total    int            `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"pageSize"`
	Stats    map[string]int `json:"stats"`
}

// pathID parses the {id} path value as a numeric identifier
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// handleImportTargets ingests an uploaded CSV of prospect targets
func (s *Server) handleImportTargets(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImportBytes); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	result, err := s.targets.ImportCSV(r.Context(), file, s.sessionID(r))
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleListTargets lists targets with pagination and an optional status filter
func (s *Server) handleListTargets(w http.ResponseWriter, r *http.Request) {
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			s.errorResponse(w, http.StatusBadRequest, "page must be a positive integer")
			return
		}
		page = parsed
	}
	status := r.URL.Query().Get("status")

	result, err := s.targets.List(r.Context(), s.sessionID(r), page, status)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, ListTargetsResponse{
		Items:    result.Items,
		Total:    result.Total,
		Page:     page,
		PageSize: s.targets.PageSize(),
		Stats:    result.Stats,
	})
}

// handleGetTarget retrieves a target with its profile and messages joined
func (s *Server) handleGetTarget(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "invalid target ID")
		return
	}

	target, err := s.targets.Get(r.Context(), id)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, target)
}

// handleScrapeTarget triggers one profile scrape for a target
func (s *Server) handleScrapeTarget(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "invalid target ID")
		return
	}

	snapshot, err := s.scrapes.Scrape(r.Context(), id)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, snapshot)
}

// handleReset deletes all messages, snapshots and targets
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.targets.Reset(r.Context()); err != nil {
		s.serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
