package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/fontfetch/fontfetch/internal/domain"
	errpkg "github.com/fontfetch/fontfetch/internal/errors"
	"github.com/fontfetch/fontfetch/internal/validation"
)

const maxDocumentBytes = 1 << 20

// RunServiceI defines the interface for run-related business logic.
type RunServiceI interface {
	CreateRun(ctx context.Context, req *domain.CreateRunRequest) (*domain.Run, error)
	GetRun(ctx context.Context, id uuid.UUID) (*domain.Run, error)
}

// RunHandler handles HTTP requests for runs.
type RunHandler struct {
	runService RunServiceI
	validator  *validator.Validate
	logger     *slog.Logger
}

// NewRunHandler creates a new RunHandler with the provided service and logger.
func NewRunHandler(runService RunServiceI, logger *slog.Logger) *RunHandler {
	return &RunHandler{
		runService: runService,
		validator:  validation.Validator(),
		logger:     logger,
	}
}

// CreateRun handles the HTTP POST /runs request to start a new run.
func (h *RunHandler) CreateRun(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.CreateRunRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxDocumentBytes)).Decode(&req); err != nil {
		h.logger.Error("failed to decode request", "error", err)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		h.logger.Warn("validation failed", "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	run, err := h.runService.CreateRun(ctx, &req)
	if err != nil {
		if errors.Is(err, errpkg.ErrShuttingDown) {
			writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		h.logger.Error("failed to create run", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]interface{}{
		"run_id":     run.ID,
		"references": len(run.References),
	})
}

// GetRun handles the HTTP GET /runs/{runID} request to fetch a run by ID.
func (h *RunHandler) GetRun(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	runID, err := uuid.Parse(chi.URLParam(r, "runID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid run ID")
		return
	}

	run, err := h.runService.GetRun(ctx, runID)
	if err != nil {
		h.logger.Error("failed to get run", "run_id", runID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if run == nil {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}

	results := run.Results
	if results == nil {
		results = []domain.StylesheetResult{}
	}

	writeJSON(w, http.StatusOK, domain.RunResponse{
		ID:         run.ID,
		Status:     run.Status,
		References: run.References,
		Results:    results,
		Summary:    run.Summary,
		CreatedAt:  run.CreatedAt,
		UpdatedAt:  run.UpdatedAt,
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"error": message,
	})
}
