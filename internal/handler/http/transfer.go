package http

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Comraich/sortr-sub001/internal/logger"
	"github.com/Comraich/sortr-sub001/models"
)

// maxCSVBody caps an uploaded CSV file.
const maxCSVBody = 8 << 20

// exportItemsCSV renders the whole export before sending it, so a failure
// half way still yields a proper error response.
func (h *Handler) exportItemsCSV(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.services.TransferService.ExportItemsCSV(r.Context(), &buf); err != nil {
		writeError(w, r, err)
		return
	}

	filename := fmt.Sprintf("sortr-items-%s.csv", time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		logger.FromRequest(r).Err(err).Msg("csv export interrupted")
	}
}

func (h *Handler) previewImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxCSVBody)

	preview, err := h.services.TransferService.PreviewImport(r.Context(), r.Body)
	if err != nil {
		writeError(w, r, bodyError(err))
		return
	}
	writeJSON(w, r, preview, http.StatusOK)
}

// importItems creates every valid row in one transaction; invalid rows are
// reported back and skipped.
func (h *Handler) importItems(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxCSVBody)

	result, err := h.services.TransferService.Import(r.Context(), r.Body)
	if err != nil {
		writeError(w, r, bodyError(err))
		return
	}

	logger.FromRequest(r).Info().
		Int("created", result.Created).
		Int("skipped", result.Skipped).
		Msg("items imported")
	writeJSON(w, r, result, http.StatusOK)
}

func (h *Handler) backup(w http.ResponseWriter, r *http.Request) {
	backup, err := h.services.TransferService.Backup(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	filename := fmt.Sprintf("sortr-backup-%s.json", backup.ExportedAt.UTC().Format("2006-01-02"))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	writeJSON(w, r, backup, http.StatusOK)
}

func (h *Handler) restore(w http.ResponseWriter, r *http.Request) {
	backup, err := decodeJSON[models.Backup](w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.services.TransferService.Restore(r.Context(), backup)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().
		Int("locations", result.Locations).
		Int("boxes", result.Boxes).
		Int("items", result.Items).
		Msg("backup restored")
	writeJSON(w, r, result, http.StatusOK)
}

// bodyError maps an oversized upload to 413.
func bodyError(err error) error {
	var tooBig *http.MaxBytesError
	if errors.As(err, &tooBig) {
		return ErrBodyTooBig
	}
	return err
}
