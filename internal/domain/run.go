package domain

import (
	"time"

	"github.com/google/uuid"
)

// RunStatus represents the current state of a Run.
type RunStatus string

const (
	RunStatusPending    RunStatus = "pending"
	RunStatusInProgress RunStatus = "in_progress"
	RunStatusCompleted  RunStatus = "completed"
)

// Run is one execution of the pipeline over a stylesheet document.
type Run struct {
	ID         uuid.UUID          `json:"id"`
	Status     RunStatus          `json:"status"`
	References []string           `json:"references"`
	Results    []StylesheetResult `json:"results,omitempty"`
	Summary    *Summary           `json:"summary,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}
