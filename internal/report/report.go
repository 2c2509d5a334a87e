package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fontfetch/fontfetch/internal/domain"
)

// Printer writes one line per outcome. It is safe for concurrent use and can
// be registered as a scheduler observer.
type Printer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewPrinter creates a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Print writes a single outcome line.
func (p *Printer) Print(o domain.Outcome) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.w, o.String())
}

// WriteSummary prints totals followed by every failure, with enough detail
// to re-run just the failed items.
func WriteSummary(w io.Writer, results []domain.StylesheetResult) {
	summary := domain.Summarize(results)

	fmt.Fprintf(w, "\nDownload Summary:\n")
	fmt.Fprintf(w, "Stylesheets processed: %d\n", summary.Stylesheets)
	fmt.Fprintf(w, "Fonts saved: %d\n", summary.Saved)

	failed := domain.FailedOutcomes(results)
	if len(failed) == 0 {
		return
	}

	fmt.Fprintf(w, "Failures: %d\n", len(failed))
	for _, o := range failed {
		fmt.Fprintf(w, "  - [%s] %s\n", o.Kind, o.String())
	}
}

// Report is the JSON document written after a run.
type Report struct {
	RunID      uuid.UUID                 `json:"run_id"`
	OutputDir  string                    `json:"output_dir"`
	StartedAt  time.Time                 `json:"started_at"`
	FinishedAt time.Time                 `json:"finished_at"`
	Summary    domain.Summary            `json:"summary"`
	Results    []domain.StylesheetResult `json:"results"`
}

// New assembles a Report for results.
func New(runID uuid.UUID, outputDir string, startedAt time.Time, results []domain.StylesheetResult) Report {
	return Report{
		RunID:      runID,
		OutputDir:  outputDir,
		StartedAt:  startedAt,
		FinishedAt: time.Now(),
		Summary:    domain.Summarize(results),
		Results:    results,
	}
}

// WriteJSON encodes r to w.
func (r Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// WriteFile writes r as JSON to path.
func (r Report) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	if err := r.WriteJSON(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
