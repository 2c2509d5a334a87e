package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fontfetch/fontfetch/internal/domain"
	errpkg "github.com/fontfetch/fontfetch/internal/errors"
)

// RunStorage keeps runs in memory and mirrors them to a JSON state file.
// Runs are stored by value; callers always receive copies.
type RunStorage struct {
	mu   sync.RWMutex
	runs map[uuid.UUID]domain.Run
	file string

	// serializes writers of the state file
	persistMu sync.Mutex
}

// NewRunStorage creates a new RunStorage and loads runs from the file if it exists.
func NewRunStorage(filePath string) (*RunStorage, error) {
	repo := &RunStorage{
		runs: make(map[uuid.UUID]domain.Run),
		file: filepath.Clean(filePath),
	}

	if err := repo.restoreRuns(); err != nil {
		return nil, fmt.Errorf("failed to load state from file: %w", err)
	}

	slog.Info("run repository initialized", "file_path", repo.file, "runs_count", len(repo.runs))
	return repo, nil
}

func (r *RunStorage) restoreRuns() error {
	if isFileNotExist(r.file) {
		slog.Info("state file does not exist, starting with empty state", "file_path", r.file)
		return nil
	}

	data, err := os.ReadFile(r.file)
	if err != nil {
		return fmt.Errorf("failed to read state file: %w", err)
	}

	if len(data) == 0 {
		slog.Warn("state file is empty")
		return nil
	}

	var runs []domain.Run
	if err := json.Unmarshal(data, &runs); err != nil {
		return fmt.Errorf("failed to unmarshal state file: %w", err)
	}

	for _, run := range runs {
		r.runs[run.ID] = run
	}

	slog.Info("state loaded from file", "runs_count", len(runs), "file_path", r.file)
	return nil
}

func isFileNotExist(filePath string) bool {
	_, err := os.Stat(filePath)
	return os.IsNotExist(err)
}

func (r *RunStorage) persistRuns() error {
	r.persistMu.Lock()
	defer r.persistMu.Unlock()

	r.mu.RLock()
	runs := make([]domain.Run, 0, len(r.runs))
	for _, run := range r.runs {
		runs = append(runs, run)
	}
	r.mu.RUnlock()

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].CreatedAt.Before(runs[j].CreatedAt)
	})

	data, err := json.MarshalIndent(runs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal runs: %w", err)
	}

	tempFile := r.file + ".tmp"
	if err := os.WriteFile(tempFile, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := os.Rename(tempFile, r.file); err != nil {
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	slog.Debug("state saved to file", "runs_count", len(runs), "file_path", r.file)
	return nil
}

// CreateRun adds a new run and persists it to the file.
func (r *RunStorage) CreateRun(ctx context.Context, run *domain.Run) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	r.runs[run.ID] = *run
	r.mu.Unlock()

	if err := r.persistRuns(); err != nil {
		return fmt.Errorf("failed to save state after creating run: %w", err)
	}

	slog.Debug("run created and saved", "run_id", run.ID)
	return nil
}

// GetRun retrieves a run by ID.
func (r *RunStorage) GetRun(ctx context.Context, id uuid.UUID) (*domain.Run, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	run, exists := r.runs[id]
	r.mu.RUnlock()

	if !exists {
		return nil, errpkg.ErrRunNotFound
	}
	return &run, nil
}

// UpdateRun replaces an existing run and persists it to the file.
func (r *RunStorage) UpdateRun(ctx context.Context, run *domain.Run) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	if _, exists := r.runs[run.ID]; !exists {
		r.mu.Unlock()
		return errpkg.ErrRunNotFound
	}
	run.UpdatedAt = time.Now()
	r.runs[run.ID] = *run
	r.mu.Unlock()

	if err := r.persistRuns(); err != nil {
		return fmt.Errorf("failed to save state after updating run: %w", err)
	}

	slog.Debug("run updated and saved", "run_id", run.ID, "status", run.Status)
	return nil
}

// GetRunsByStatus returns all runs with the specified status, oldest first.
func (r *RunStorage) GetRunsByStatus(ctx context.Context, status domain.RunStatus) ([]*domain.Run, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	var filtered []*domain.Run
	for _, run := range r.runs {
		if run.Status == status {
			run := run
			filtered = append(filtered, &run)
		}
	}
	r.mu.RUnlock()

	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.Before(filtered[j].CreatedAt)
	})
	return filtered, nil
}
