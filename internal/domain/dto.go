package domain

import (
	"time"

	"github.com/google/uuid"
)

// CreateRunRequest represents the request body for starting a new Run.
type CreateRunRequest struct {
	Document string `json:"document" validate:"required"`
}

// RunResponse represents the response returned for a Run.
type RunResponse struct {
	ID         uuid.UUID          `json:"run_id"`
	Status     RunStatus          `json:"status"`
	References []string           `json:"references"`
	Results    []StylesheetResult `json:"results"`
	Summary    *Summary           `json:"summary,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

// FontResponse describes one saved font file.
type FontResponse struct {
	FileName   string `json:"file_name"`
	Size       int64  `json:"size"`
	Family     string `json:"family,omitempty"`
	FullName   string `json:"full_name,omitempty"`
	NumGlyphs  int    `json:"num_glyphs,omitempty"`
	UnitsPerEm int    `json:"units_per_em,omitempty"`
	Error      string `json:"error,omitempty"`
}
