package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/outreach-assistant/internal/ingestion"
)

// TestHTTPStatus tests the error-to-status mapping
func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &ErrValidation{Message: "bad input"}, http.StatusBadRequest},
		{"import rows", &ingestion.ImportError{Rows: []ingestion.RowError{{Row: 2, Reason: "missing name"}}}, http.StatusBadRequest},
		{"no records", fmt.Errorf("parse: %w", ingestion.ErrNoRecords), http.StatusBadRequest},
		{"target not found", &ErrTargetNotFound{ID: 1}, http.StatusNotFound},
		{"message not found", &ErrMessageNotFound{ID: 1}, http.StatusNotFound},
		{"scraper down", &ErrExternalCapability{Capability: "scraper", Err: fmt.Errorf("boom")}, http.StatusBadGateway},
		{"unknown", fmt.Errorf("connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

// TestErrExternalCapability_Unwrap tests that the wrapped cause is reachable
func TestErrExternalCapability_Unwrap(t *testing.T) {
	cause := fmt.Errorf("timeout")
	err := &ErrExternalCapability{Capability: "drafting", Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "drafting failed")
}
