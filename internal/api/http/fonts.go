package http

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/fontfetch/fontfetch/internal/domain"
	"github.com/fontfetch/fontfetch/internal/fontinfo"
	"github.com/fontfetch/fontfetch/internal/storage"
)

// FontHandler exposes the saved fonts by their file names.
type FontHandler struct {
	fileStorage *storage.FileStorage
	logger      *slog.Logger
}

// NewFontHandler creates a FontHandler serving files from fileStorage.
func NewFontHandler(fileStorage *storage.FileStorage, logger *slog.Logger) *FontHandler {
	return &FontHandler{fileStorage: fileStorage, logger: logger}
}

// ListFonts handles GET /fonts.
func (h *FontHandler) ListFonts(w http.ResponseWriter, r *http.Request) {
	names, err := h.fileStorage.List(".ttf")
	if err != nil {
		h.logger.Error("failed to list fonts", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	fonts := make([]domain.FontResponse, 0, len(names))
	for _, name := range names {
		fonts = append(fonts, h.describe(name))
	}
	writeJSON(w, http.StatusOK, fonts)
}

func (h *FontHandler) describe(name string) domain.FontResponse {
	resp := domain.FontResponse{FileName: name}
	info, err := fontinfo.ParseFile(filepath.Join(h.fileStorage.Dir(), name))
	if err != nil {
		resp.Error = err.Error()
		if size, serr := h.fileStorage.GetFileSize(name); serr == nil {
			resp.Size = size
		}
		return resp
	}
	resp.Size = info.Size
	resp.Family = info.Family
	resp.FullName = info.FullName
	resp.NumGlyphs = info.NumGlyphs
	resp.UnitsPerEm = info.UnitsPerEm
	return resp
}

// GetFont handles GET /fonts/{name} and streams the raw font file.
func (h *FontHandler) GetFont(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	f, err := h.fileStorage.Open(name)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrInvalidName):
			writeError(w, http.StatusBadRequest, "invalid font name")
		case errors.Is(err, os.ErrNotExist):
			writeError(w, http.StatusNotFound, "font not found")
		default:
			h.logger.Error("failed to open font", "name", name, "error", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		writeError(w, http.StatusNotFound, "font not found")
		return
	}

	w.Header().Set("Content-Type", "font/ttf")
	http.ServeContent(w, r, name, info.ModTime(), f)
}
