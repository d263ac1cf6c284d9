package web

// handlers_import.go serves the sponsor CSV import: the template download,
// a dry-run preview and the import itself.
//
// Both preview and import run the full validation pipeline. A file with any
// row problem is rejected as a whole with 422 and the per-row errors; only a
// clean file reaches the store, which creates sponsors one by one remotely.

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/JonMunkholm/SponsorDesk/internal/core"
	"github.com/JonMunkholm/SponsorDesk/internal/logging"
)

// multipartMemory is how much of an upload is buffered in memory.
const multipartMemory = 32 << 20

// ImportResponse reports a finished import.
type ImportResponse struct {
	Imported int `json:"imported"`
	Total    int `json:"total"`
}

// importFailure is returned when the store stops partway through an import.
type importFailure struct {
	ErrorResponse
	Imported int `json:"imported"`
	Total    int `json:"total"`
}

// handleImportTemplate downloads the import template.
func (s *Server) handleImportTemplate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, core.TemplateFileName))
	if _, err := w.Write([]byte(core.SponsorTemplateCSV())); err != nil {
		logging.FromContext(r.Context()).Error("write import template", "error", err)
	}
}

// handleImportPreview validates an uploaded file without importing it.
func (s *Server) handleImportPreview(w http.ResponseWriter, r *http.Request) {
	result, ok := s.parseUpload(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleImport validates an uploaded file and creates every sponsor in it.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	result, ok := s.parseUpload(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	if err := s.imports.Acquire(ctx); err != nil {
		s.fail(w, r, err)
		return
	}
	defer s.imports.Release()

	log := logging.WithFields(ctx, "rows", len(result.Sponsors))
	log.Info("import started")

	total := len(result.Sponsors)
	imported, err := s.store.ImportSponsors(ctx, result.Sponsors)
	if err != nil {
		log.Error("import stopped", "imported", imported, "error", err)
		status := statusFor(err)
		writeJSON(w, status, importFailure{
			ErrorResponse: errorResponse(err, status),
			Imported:      imported,
			Total:         total,
		})
		return
	}

	log.Info("import completed", "imported", imported)
	writeJSON(w, http.StatusCreated, ImportResponse{Imported: imported, Total: total})
}

// parseUpload reads the "file" part and runs the import pipeline against the
// current categories. It writes the error response itself and reports
// whether the caller should continue.
func (s *Server) parseUpload(w http.ResponseWriter, r *http.Request) (*core.ImportResult, bool) {
	file, err := s.uploadedFile(w, r)
	if err != nil {
		s.fail(w, r, err)
		return nil, false
	}
	defer file.Close()

	result, err := core.ParseSponsorCSV(file, s.store.Snapshot().Categories)
	if err != nil {
		s.fail(w, r, err)
		return nil, false
	}
	if !result.OK() {
		writeJSON(w, http.StatusUnprocessableEntity, result)
		return nil, false
	}
	return result, true
}

// uploadedFile enforces the configured size limit and returns the "file"
// form part.
func (s *Server) uploadedFile(w http.ResponseWriter, r *http.Request) (multipart.File, error) {
	maxSize := s.cfg.Import.MaxFileSize
	if maxSize <= 0 {
		maxSize = core.ImportMaxFileSize
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, fmt.Errorf("file too large: %w", err)
		}
		return nil, badRequest(fmt.Errorf("invalid upload: %w", err))
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, badRequest(errNoFile)
	}
	return file, nil
}
