package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/outreach-assistant/internal/llm"
	"github.com/jonathan/outreach-assistant/internal/types"
)

// decodeGenerateRequest reads and validates the draft-generation body
func decodeGenerateRequest(r *http.Request) (*types.GenerateRequest, error) {
	var req types.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, &ErrValidation{Message: "invalid request body"}
	}
	if err := req.Validate(); err != nil {
		return nil, &ErrValidation{Message: err.Error()}
	}
	if req.Count == 0 {
		req.Count = llm.DefaultDraftCount
	}
	return &req, nil
}

// handleGenerateMessages drafts a fresh batch of messages for a target
func (s *Server) handleGenerateMessages(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "invalid target ID")
		return
	}
	req, err := decodeGenerateRequest(r)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	messages, err := s.messages.Generate(r.Context(), id, req.OfferContext, req.Count)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, messages)
}

// handleRegenerateMessages discards the target's current messages and drafts
// a replacement batch
func (s *Server) handleRegenerateMessages(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "invalid target ID")
		return
	}
	req, err := decodeGenerateRequest(r)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	messages, err := s.messages.Regenerate(r.Context(), id, req.OfferContext, req.Count)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, messages)
}

// handleDiscardAll discards every non-discarded message for a target
func (s *Server) handleDiscardAll(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "invalid target ID")
		return
	}
	if err := s.messages.DiscardAll(r.Context(), id); err != nil {
		s.serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleListMessages returns a target's messages, oldest first
func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "invalid target ID")
		return
	}
	messages, err := s.messages.ListByTarget(r.Context(), id)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, messages)
}

// handlePatchMessage updates a message's content and/or status
func (s *Server) handlePatchMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "invalid message ID")
		return
	}

	var req types.PatchMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	message, err := s.messages.Update(r.Context(), id, req)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, message)
}

// handleDeleteMessage removes a single message row
func (s *Server) handleDeleteMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "invalid message ID")
		return
	}
	if err := s.messages.Delete(r.Context(), id); err != nil {
		s.serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
