package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/fontfetch/fontfetch/internal/config"
	"github.com/fontfetch/fontfetch/internal/domain"
	"github.com/fontfetch/fontfetch/internal/report"
	"github.com/fontfetch/fontfetch/internal/storage"
	"github.com/fontfetch/fontfetch/internal/worker"
)

const defaultStylesheet = "fonts.css"

var fetchCmd = &cobra.Command{
	Use:   "fetch [stylesheet]",
	Short: "Download every font imported by a stylesheet",
	Long: `Download every font imported by a stylesheet.

The stylesheet defaults to fonts.css; use "-" to read it from stdin.
Each outcome is printed as it completes, followed by a summary listing
every failure so it can be retried.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		cfg, err := loadConfig(cmd, func(c *config.Config) {
			if flags.Changed("concurrency") {
				c.WorkerPoolSize, _ = flags.GetInt("concurrency")
			}
			if flags.Changed("timeout") {
				c.RequestTimeout, _ = flags.GetDuration("timeout")
			}
			if flags.Changed("user-agent") {
				c.UserAgent, _ = flags.GetString("user-agent")
			}
		})
		if err != nil {
			return err
		}

		path := defaultStylesheet
		if len(args) == 1 {
			path = args[0]
		}
		document, err := readDocument(cmd, path)
		if err != nil {
			return err
		}

		runID := uuid.New()
		logger := config.SetupLogger(cfg, cmd.ErrOrStderr()).With("run_id", runID)

		fileStorage := storage.NewFileStorage(cfg.OutputDir)
		if err := fileStorage.EnsureDir(); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		printer := report.NewPrinter(out)
		fetcher := worker.NewFontFetcher(fileStorage, cfg, logger)
		scheduler := worker.NewScheduler(fetcher, cfg.WorkerPoolSize, logger, worker.WithObserver(printer.Print))

		fmt.Fprintf(out, "Fetching fonts from %s into %s...\n", path, cfg.OutputDir)
		startedAt := time.Now()
		results := scheduler.Run(cmd.Context(), document)
		report.WriteSummary(out, results)

		if reportPath, _ := flags.GetString("report"); reportPath != "" {
			if err := report.New(runID, cfg.OutputDir, startedAt, results).WriteFile(reportPath); err != nil {
				return fmt.Errorf("writing report: %w", err)
			}
			fmt.Fprintf(out, "Report written to %s\n", reportPath)
		}

		failOnError, _ := flags.GetBool("fail-on-error")
		if summary := domain.Summarize(results); failOnError && summary.Failed > 0 {
			return fmt.Errorf("%d font fetch outcomes failed", summary.Failed)
		}
		return nil
	},
}

func readDocument(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading stylesheet from stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading stylesheet: %w", err)
	}
	return string(data), nil
}

func init() {
	fetchCmd.Flags().IntP("concurrency", "c", config.DefaultWorkerPoolSize, "Maximum stylesheets fetched at once (FF_WORKER_POOL_SIZE)")
	fetchCmd.Flags().Duration("timeout", config.DefaultRequestTimeout, "Timeout for each HTTP request (FF_REQUEST_TIMEOUT)")
	fetchCmd.Flags().String("user-agent", "", "User-Agent sent with every request (FF_USER_AGENT)")
	fetchCmd.Flags().String("report", "", "Write a JSON report of every outcome to this file")
	fetchCmd.Flags().Bool("fail-on-error", false, "Exit non-zero when any font or stylesheet failed")
}
