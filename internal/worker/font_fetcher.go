package worker

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/fontfetch/fontfetch/internal/config"
	"github.com/fontfetch/fontfetch/internal/domain"
	errs "github.com/fontfetch/fontfetch/internal/errors"
	"github.com/fontfetch/fontfetch/internal/metrics"
	"github.com/fontfetch/fontfetch/internal/storage"
	"github.com/fontfetch/fontfetch/internal/stylesheet"
	"github.com/fontfetch/fontfetch/internal/validation"
)

// FontFetcher retrieves one stylesheet, parses its @font-face blocks and
// stores every font binary it can download in FileStorage.
type FontFetcher struct {
	fileStorage *storage.FileStorage
	httpClient  *http.Client
	logger      *slog.Logger

	requestTimeout    time.Duration
	maxFontSize       int64
	maxStylesheetSize int64
	userAgent         string
	blockPrivate      bool

	// fontSem caps concurrent font downloads across all stylesheets; nil means no cap.
	fontSem *semaphore.Weighted
}

// FetcherOption customizes a FontFetcher.
type FetcherOption func(*FontFetcher)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) FetcherOption {
	return func(f *FontFetcher) {
		f.httpClient = c
	}
}

// NewFontFetcher creates a FontFetcher writing into fileStorage. Every
// request is bounded by cfg.RequestTimeout.
func NewFontFetcher(fileStorage *storage.FileStorage, cfg *config.Config, logger *slog.Logger, opts ...FetcherOption) *FontFetcher {
	f := &FontFetcher{
		fileStorage: fileStorage,
		httpClient: &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger:            logger,
		requestTimeout:    cfg.RequestTimeout,
		maxFontSize:       cfg.MaxFontSize,
		maxStylesheetSize: cfg.MaxStylesheetSize,
		userAgent:         cfg.UserAgent,
		blockPrivate:      cfg.BlockPrivateHosts,
	}
	if cfg.FontConcurrency > 0 {
		f.fontSem = semaphore.NewWeighted(int64(cfg.FontConcurrency))
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch downloads the stylesheet at ref and every font it declares. It never
// fails as a whole: each problem becomes an Outcome. A stylesheet that cannot
// be fetched yields exactly one stylesheet_fetch_failed outcome.
func (f *FontFetcher) Fetch(ctx context.Context, ref string) []domain.Outcome {
	body, err := f.get(ctx, ref, f.maxStylesheetSize)
	if err != nil {
		f.logger.Error("stylesheet fetch failed",
			"url", ref,
			"error", err,
		)
		return []domain.Outcome{{
			Kind:       domain.OutcomeStylesheetFetchFailed,
			Stylesheet: ref,
			URL:        ref,
			StatusCode: errs.StatusCode(err),
			Reason:     err.Error(),
		}}
	}

	parsed := stylesheet.ParseFontFaces(string(body))
	f.logger.Debug("stylesheet parsed",
		"url", ref,
		"faces", len(parsed.Faces),
		"malformed", len(parsed.Malformed),
	)

	outcomes := make([]domain.Outcome, 0, len(parsed.Faces)+len(parsed.Malformed))
	for _, raw := range parsed.Malformed {
		f.logger.Warn("font-face block skipped",
			"url", ref,
			"block", raw,
		)
		outcomes = append(outcomes, domain.Outcome{
			Kind:       domain.OutcomeParseFailed,
			Stylesheet: ref,
			RawBlock:   raw,
			Reason:     errs.ErrParse.Error(),
		})
	}

	for _, face := range parsed.Faces {
		outcomes = append(outcomes, f.fetchFace(ctx, ref, face))
	}

	return outcomes
}

func (f *FontFetcher) fetchFace(ctx context.Context, ref string, face domain.FontFace) domain.Outcome {
	face.SourceURL = resolveSource(ref, face.SourceURL)
	result := domain.Outcome{
		Stylesheet: ref,
		URL:        face.SourceURL,
		Face:       &face,
	}

	if err := validation.ValidateFetchURL(face.SourceURL, f.blockPrivate); err != nil {
		result.Kind = domain.OutcomeFontFetchFailed
		result.Reason = fmt.Errorf("%w: %w", errs.ErrInvalidURL, err).Error()
		f.logger.Error("font fetch failed",
			"url", face.SourceURL,
			"error", result.Reason,
		)
		return result
	}

	if f.fontSem != nil {
		if err := f.fontSem.Acquire(ctx, 1); err != nil {
			result.Kind = domain.OutcomeFontFetchFailed
			result.Reason = err.Error()
			return result
		}
		defer f.fontSem.Release(1)
	}

	start := time.Now()
	data, err := f.get(ctx, face.SourceURL, f.maxFontSize)
	metrics.FontDownloadDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		result.Kind = domain.OutcomeFontFetchFailed
		result.StatusCode = errs.StatusCode(err)
		result.Reason = err.Error()
		f.logger.Error("font fetch failed",
			"url", face.SourceURL,
			"error", err,
		)
		return result
	}

	result.FileName = stylesheet.AssetName(face)
	result.Replaced = f.fileStorage.FileExists(result.FileName)
	if err := f.fileStorage.WriteFile(result.FileName, data); err != nil {
		result.Kind = domain.OutcomeIOError
		result.Reason = fmt.Errorf("%w: %w", errs.ErrIO, err).Error()
		f.logger.Error("font write failed",
			"file_name", result.FileName,
			"error", err,
		)
		return result
	}

	result.Kind = domain.OutcomeSaved
	result.Bytes = int64(len(data))
	metrics.FontBytes.Add(float64(len(data)))
	f.logger.Info("font saved",
		"file_name", result.FileName,
		"bytes", result.Bytes,
		"replaced", result.Replaced,
	)
	return result
}

// resolveSource resolves a src url() against the stylesheet it was declared
// in. Unparseable values are returned unchanged for validation to reject.
func resolveSource(ref, src string) string {
	base, err := url.Parse(ref)
	if err != nil {
		return src
	}
	u, err := url.Parse(src)
	if err != nil {
		return src
	}
	return base.ResolveReference(u).String()
}

// get performs a single GET bounded by the request timeout and reads at most
// limit bytes of a 200 response.
func (f *FontFetcher) get(ctx context.Context, rawURL string, limit int64) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, f.requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %w", errs.ErrTransport, err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &errs.StatusError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	limited := &io.LimitedReader{R: resp.Body, N: limit + 1}
	data, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", errs.ErrTransport, err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: limit %d bytes", errs.ErrTooLarge, limit)
	}
	return data, nil
}
