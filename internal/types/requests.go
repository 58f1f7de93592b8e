// Package types provides request and response types for the outreach assistant API.
package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// GenerateRequest asks for draft generation (or regeneration) for one target
type GenerateRequest struct {
	OfferContext string `json:"offerContext" validate:"required,min=1"`
	Count        int    `json:"count,omitempty" validate:"omitempty,min=1,max=10"`
}

// Validate validates the GenerateRequest using the validator.
func (r *GenerateRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// PatchMessageRequest updates a message's content and/or status
type PatchMessageRequest struct {
	Content *string `json:"content,omitempty"`
	Status  *string `json:"status,omitempty" validate:"omitempty,oneof=DRAFT APPROVED DISCARDED"`
}

// Validate validates the PatchMessageRequest using the validator.
// At least one of content or status must be present.
func (r *PatchMessageRequest) Validate() error {
	if r.Content == nil && r.Status == nil {
		return fmt.Errorf("either content or status is required")
	}
	validate := validator.New()
	return validate.Struct(r)
}

// SetConfigRequest stores one per-session setting value
type SetConfigRequest struct {
	Value string `json:"value"`
}

// ImportResponse reports the outcome of a successful CSV import
type ImportResponse struct {
	Imported int `json:"imported"` // rows inserted
	Skipped  int `json:"skipped"`  // duplicate rows silently skipped
}

// ConfigResponse returns one per-session setting
type ConfigResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}
