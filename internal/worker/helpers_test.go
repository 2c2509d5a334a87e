package worker

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fontfetch/fontfetch/internal/config"
	"github.com/fontfetch/fontfetch/internal/storage"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() *config.Config {
	return &config.Config{
		WorkerPoolSize:    DefaultPoolSize,
		RequestTimeout:    2 * time.Second,
		MaxFontSize:       1 << 20,
		MaxStylesheetSize: 1 << 16,
		UserAgent:         "fontfetch-test",
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

// handlerClient serves every request, whatever its host, from h.
func handlerClient(h http.Handler) *http.Client {
	return &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, r)
		return rec.Result(), nil
	})}
}

func newTestFetcher(t *testing.T, h http.Handler, cfg *config.Config) (*FontFetcher, string) {
	t.Helper()
	dir := t.TempDir()
	fs := storage.NewFileStorage(dir)
	return NewFontFetcher(fs, cfg, newTestLogger(), WithHTTPClient(handlerClient(h))), dir
}
