package worker

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/fontfetch/fontfetch/internal/config"
	"github.com/fontfetch/fontfetch/internal/domain"
	"github.com/fontfetch/fontfetch/internal/metrics"
	"github.com/fontfetch/fontfetch/internal/stylesheet"
)

// DefaultPoolSize is the number of stylesheet tasks allowed in flight.
const DefaultPoolSize = config.DefaultWorkerPoolSize

// Fetcher processes one stylesheet reference to completion.
type Fetcher interface {
	Fetch(ctx context.Context, ref string) []domain.Outcome
}

// Observer receives outcomes as soon as the task producing them finishes.
// It is called from worker goroutines and must be safe for concurrent use.
type Observer func(domain.Outcome)

// Scheduler runs one Fetcher task per stylesheet reference with a fixed cap
// on tasks in flight.
type Scheduler struct {
	fetcher   Fetcher
	limit     int
	logger    *slog.Logger
	observers []Observer
}

// SchedulerOption customizes a Scheduler.
type SchedulerOption func(*Scheduler)

// WithObserver registers an Observer.
func WithObserver(o Observer) SchedulerOption {
	return func(s *Scheduler) {
		s.observers = append(s.observers, o)
	}
}

// NewScheduler creates a Scheduler. A non-positive limit falls back to DefaultPoolSize.
func NewScheduler(fetcher Fetcher, limit int, logger *slog.Logger, opts ...SchedulerOption) *Scheduler {
	if limit <= 0 {
		limit = DefaultPoolSize
	}
	s := &Scheduler{
		fetcher: fetcher,
		limit:   limit,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run extracts the @import references of document and fetches all of them.
func (s *Scheduler) Run(ctx context.Context, document string) []domain.StylesheetResult {
	refs := stylesheet.ExtractImports(document)
	s.logger.Info("stylesheet references discovered", "count", len(refs))
	return s.RunReferences(ctx, refs)
}

// RunReferences dispatches refs in order and blocks until every task has
// reported. Results are indexed like refs. Cancelling ctx does not abort
// dispatched or pending tasks; only the per-request timeouts bound them.
func (s *Scheduler) RunReferences(ctx context.Context, refs []string) []domain.StylesheetResult {
	ctx = context.WithoutCancel(ctx)
	results := make([]domain.StylesheetResult, len(refs))

	var g errgroup.Group
	g.SetLimit(s.limit)

	for i, ref := range refs {
		i, ref := i, ref
		g.Go(func() error {
			metrics.StylesheetsInFlight.Inc()
			defer metrics.StylesheetsInFlight.Dec()

			s.logger.Debug("stylesheet task started", "index", i, "url", ref)
			outcomes := s.fetcher.Fetch(ctx, ref)
			results[i] = domain.StylesheetResult{Reference: ref, Outcomes: outcomes}

			for _, o := range outcomes {
				metrics.Outcomes.WithLabelValues(string(o.Kind)).Inc()
				for _, observe := range s.observers {
					observe(o)
				}
			}
			return nil
		})
	}

	// tasks never return an error
	_ = g.Wait()

	summary := domain.Summarize(results)
	s.logger.Info("all stylesheet tasks finished",
		"stylesheets", summary.Stylesheets,
		"saved", summary.Saved,
		"failed", summary.Failed,
	)
	return results
}
