package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fontfetch/fontfetch/internal/domain"
	errpkg "github.com/fontfetch/fontfetch/internal/errors"
	"github.com/fontfetch/fontfetch/internal/metrics"
	repo "github.com/fontfetch/fontfetch/internal/repository"
	"github.com/fontfetch/fontfetch/internal/stylesheet"
)

// Pipeline fetches a list of stylesheet references to completion.
type Pipeline interface {
	RunReferences(ctx context.Context, refs []string) []domain.StylesheetResult
}

// RunService creates runs and executes them in the background.
type RunService struct {
	runRepo  repo.RunRepo
	pipeline Pipeline
	logger   *slog.Logger

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewRunService creates a new RunService.
func NewRunService(runRepo repo.RunRepo, pipeline Pipeline, logger *slog.Logger) *RunService {
	return &RunService{
		runRepo:  runRepo,
		pipeline: pipeline,
		logger:   logger,
	}
}

// CreateRun extracts the references of the document, stores a pending run
// and starts executing it.
func (s *RunService) CreateRun(ctx context.Context, req *domain.CreateRunRequest) (*domain.Run, error) {
	now := time.Now()
	run := &domain.Run{
		ID:         uuid.New(),
		Status:     domain.RunStatusPending,
		References: stylesheet.ExtractImports(req.Document),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.runRepo.CreateRun(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}

	if err := s.dispatch(*run); err != nil {
		return nil, err
	}

	metrics.RunsStarted.Inc()
	s.logger.Info("run created", "run_id", run.ID, "references", len(run.References))
	return run, nil
}

// GetRun returns the current state of a run.
func (s *RunService) GetRun(ctx context.Context, id uuid.UUID) (*domain.Run, error) {
	run, err := s.runRepo.GetRun(ctx, id)
	if err != nil {
		if errors.Is(err, errpkg.ErrRunNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

func (s *RunService) dispatch(run domain.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errpkg.ErrShuttingDown
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.execute(run)
	}()
	return nil
}

// execute runs to completion regardless of shutdown; stored references make
// an interrupted run recoverable on the next start.
func (s *RunService) execute(run domain.Run) {
	ctx := context.Background()

	run.Status = domain.RunStatusInProgress
	if err := s.runRepo.UpdateRun(ctx, &run); err != nil {
		s.logger.Error("failed to mark run in progress", "run_id", run.ID, "error", err)
	}

	results := s.pipeline.RunReferences(ctx, run.References)
	summary := domain.Summarize(results)

	run.Results = results
	run.Summary = &summary
	run.Status = domain.RunStatusCompleted
	if err := s.runRepo.UpdateRun(ctx, &run); err != nil {
		s.logger.Error("failed to store run results", "run_id", run.ID, "error", err)
	}

	metrics.RunsCompleted.Inc()
	if summary.Failed > 0 {
		s.logger.Warn("run completed with failures",
			"run_id", run.ID,
			"saved", summary.Saved,
			"failed", summary.Failed,
		)
		return
	}
	s.logger.Info("run completed",
		"run_id", run.ID,
		"saved", summary.Saved,
	)
}

// RecoverPendingRuns re-dispatches runs left pending or in progress by a
// previous process. Re-fetching is safe because file names are deterministic.
func (s *RunService) RecoverPendingRuns(ctx context.Context) error {
	pending, err := s.runRepo.GetRunsByStatus(ctx, domain.RunStatusPending)
	if err != nil {
		return fmt.Errorf("failed to get pending runs: %w", err)
	}

	inProgress, err := s.runRepo.GetRunsByStatus(ctx, domain.RunStatusInProgress)
	if err != nil {
		return fmt.Errorf("failed to get in-progress runs: %w", err)
	}

	for _, run := range append(pending, inProgress...) {
		if err := ctx.Err(); err != nil {
			return err
		}
		run.Results = nil
		run.Summary = nil
		if err := s.dispatch(*run); err != nil {
			return fmt.Errorf("failed to recover run %s: %w", run.ID, err)
		}
		s.logger.Info("run recovered", "run_id", run.ID, "status", run.Status)
	}

	return nil
}

// Shutdown stops accepting runs and waits for in-flight runs to finish.
func (s *RunService) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down run service")

	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("run service shutdown completed")
		return nil
	case <-ctx.Done():
		s.logger.Warn("run service shutdown timed out")
		return ctx.Err()
	}
}
