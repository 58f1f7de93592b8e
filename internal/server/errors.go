// Package server provides the HTTP REST API for the outreach assistant.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/outreach-assistant/internal/ingestion"
)

// ErrTargetNotFound indicates the referenced target does not exist
type ErrTargetNotFound struct {
	ID int64
}

func (e *ErrTargetNotFound) Error() string {
	return fmt.Sprintf("target not found: %d", e.ID)
}

// ErrMessageNotFound indicates the referenced message does not exist
type ErrMessageNotFound struct {
	ID int64
}

func (e *ErrMessageNotFound) Error() string {
	return fmt.Sprintf("message not found: %d", e.ID)
}

// ErrValidation indicates malformed or missing required input
type ErrValidation struct {
	Message string
}

func (e *ErrValidation) Error() string {
	return e.Message
}

// ErrExternalCapability indicates the scraper or drafting capability failed.
// Target and message state is left unchanged, so the caller can safely retry.
type ErrExternalCapability struct {
	Capability string // "scraper" or "drafting"
	Err        error
}

func (e *ErrExternalCapability) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Capability, e.Err)
}

func (e *ErrExternalCapability) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrValidation, *ingestion.ImportError:
		return http.StatusBadRequest
	case *ErrTargetNotFound, *ErrMessageNotFound:
		return http.StatusNotFound
	case *ErrExternalCapability:
		return http.StatusBadGateway
	}
	if errors.Is(err, ingestion.ErrNoRecords) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
