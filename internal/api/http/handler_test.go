package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/fontfetch/fontfetch/internal/domain"
	errpkg "github.com/fontfetch/fontfetch/internal/errors"
	"github.com/fontfetch/fontfetch/internal/storage"
)

type mockRunService struct {
	runs      map[uuid.UUID]*domain.Run
	createErr error
	lastDoc   string
}

func newMockRunService() *mockRunService {
	return &mockRunService{runs: make(map[uuid.UUID]*domain.Run)}
}

func (m *mockRunService) CreateRun(ctx context.Context, req *domain.CreateRunRequest) (*domain.Run, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.lastDoc = req.Document
	run := &domain.Run{ID: uuid.New(), Status: domain.RunStatusPending, References: []string{"https://fonts.googleapis.com/css2?family=Roboto"}}
	m.runs[run.ID] = run
	return run, nil
}

func (m *mockRunService) GetRun(ctx context.Context, id uuid.UUID) (*domain.Run, error) {
	return m.runs[id], nil
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRouter(t *testing.T, svc RunServiceI) (http.Handler, *storage.FileStorage) {
	t.Helper()
	fs := storage.NewFileStorage(t.TempDir())
	return NewRouter(svc, fs, newTestLogger()), fs
}

func TestRunHandler_CreateRun(t *testing.T) {
	svc := newMockRunService()
	router, _ := newTestRouter(t, svc)

	body, _ := json.Marshal(domain.CreateRunRequest{Document: "@import url('https://fonts.googleapis.com/css2?family=Roboto');"})
	req := httptest.NewRequest(http.MethodPost, "/runs/", bytes.NewReader(body))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	resp := w.Result()
	defer resp.Body.Close()
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)

	var data map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&data))
	assert.Contains(t, data, "run_id")
	assert.Equal(t, float64(1), data["references"])
	assert.Contains(t, svc.lastDoc, "family=Roboto")
}

func TestRunHandler_CreateRun_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid json", "{"},
		{"missing document", `{}`},
		{"empty document", `{"document": ""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewRunHandler(newMockRunService(), newTestLogger())
			req := httptest.NewRequest(http.MethodPost, "/runs", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.CreateRun(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestRunHandler_CreateRun_ShuttingDown(t *testing.T) {
	svc := newMockRunService()
	svc.createErr = errpkg.ErrShuttingDown
	handler := NewRunHandler(svc, newTestLogger())

	req := httptest.NewRequest(http.MethodPost, "/runs", strings.NewReader(`{"document": "x"}`))
	w := httptest.NewRecorder()
	handler.CreateRun(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRunHandler_GetRun(t *testing.T) {
	svc := newMockRunService()
	id := uuid.New()
	summary := domain.Summary{Stylesheets: 1, Saved: 1}
	svc.runs[id] = &domain.Run{
		ID:         id,
		Status:     domain.RunStatusCompleted,
		References: []string{"https://fonts.googleapis.com/css2?family=Roboto"},
		Results: []domain.StylesheetResult{{
			Reference: "https://fonts.googleapis.com/css2?family=Roboto",
			Outcomes:  []domain.Outcome{{Kind: domain.OutcomeSaved, FileName: "Roboto_normal_400.ttf"}},
		}},
		Summary:   &summary,
		CreatedAt: time.Now(),
	}
	router, _ := newTestRouter(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/runs/"+id.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := w.Result()
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var data domain.RunResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&data))
	assert.Equal(t, id, data.ID)
	assert.Equal(t, domain.RunStatusCompleted, data.Status)
	require.Len(t, data.Results, 1)
	assert.Equal(t, "Roboto_normal_400.ttf", data.Results[0].Outcomes[0].FileName)
	require.NotNil(t, data.Summary)
	assert.Equal(t, 1, data.Summary.Saved)
}

func TestRunHandler_GetRun_Errors(t *testing.T) {
	router, _ := newTestRouter(t, newMockRunService())

	for path, want := range map[string]int{
		"/runs/not-a-uuid":          http.StatusBadRequest,
		"/runs/" + uuid.NewString(): http.StatusNotFound,
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code, path)
	}
}

func TestFontHandler_ListAndGet(t *testing.T) {
	router, fs := newTestRouter(t, newMockRunService())
	require.NoError(t, fs.WriteFile("Go_normal_400.ttf", goregular.TTF))
	require.NoError(t, fs.WriteFile("Broken_normal_400.ttf", []byte("not a font")))

	req := httptest.NewRequest(http.MethodGet, "/fonts/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var fonts []domain.FontResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&fonts))
	require.Len(t, fonts, 2)
	assert.Equal(t, "Broken_normal_400.ttf", fonts[0].FileName)
	assert.NotEmpty(t, fonts[0].Error)
	assert.Equal(t, int64(len("not a font")), fonts[0].Size)
	assert.Equal(t, "Go_normal_400.ttf", fonts[1].FileName)
	assert.NotEmpty(t, fonts[1].Family)
	assert.Greater(t, fonts[1].NumGlyphs, 0)

	req = httptest.NewRequest(http.MethodGet, "/fonts/Go_normal_400.ttf", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "font/ttf", w.Header().Get("Content-Type"))
	assert.Equal(t, goregular.TTF, w.Body.Bytes())
}

func TestFontHandler_GetFont_Missing(t *testing.T) {
	router, _ := newTestRouter(t, newMockRunService())

	req := httptest.NewRequest(http.MethodGet, "/fonts/Nope_normal_400.ttf", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_Health(t *testing.T) {
	router, _ := newTestRouter(t, newMockRunService())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
