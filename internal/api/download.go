package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/IlyasAtabaev731/expense-tracker/internal/export"
)

type workbookSpec struct {
	sheet    string
	header   string
	prefix   string
	filename string
}

// sendWorkbook renders rows to a per-request temp file, streams it and removes it.
func (s *APIServer) sendWorkbook(w http.ResponseWriter, r *http.Request, spec workbookSpec, rows []export.Row) {
	f, err := export.Workbook(spec.sheet, spec.header, rows)
	if err != nil {
		s.serverError(w, r, "Failed to build workbook", err)
		return
	}
	defer f.Close()

	path, err := export.SaveTemp(f, s.config.Export.Dir, spec.prefix)
	if err != nil {
		s.serverError(w, r, "Failed to write workbook", err)
		return
	}
	defer func() {
		if err := os.Remove(path); err != nil {
			s.logger.Warn("Failed to remove export file", slog.String("path", path), "error", err)
		}
	}()

	file, err := os.Open(path)
	if err != nil {
		s.serverError(w, r, "Failed to open workbook", err)
		return
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		s.serverError(w, r, "Failed to stat workbook", err)
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", spec.filename))
	http.ServeContent(w, r, spec.filename, stat.ModTime(), file)
}
