package http

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/Comraich/sortr-sub001/internal/logger"
	"github.com/Comraich/sortr-sub001/internal/validators"
	"github.com/Comraich/sortr-sub001/models"
)

const (
	imageFormField = "image"
	// multipartOverhead is allowed on top of the image size for boundaries
	// and part headers.
	multipartOverhead = 64 << 10
)

var errNoImagePart = validators.NewValidationError(models.FieldError{
	Field:   imageFormField,
	Rule:    "required",
	Message: "is required",
})

// uploadImage streams the "image" part of a multipart body to the image
// service, which enforces size and type.
func (h *Handler) uploadImage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.Storage.Files.MaxImageBytes+multipartOverhead)
	part, err := imagePart(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer part.Close()

	item, err := h.services.ImageService.Upload(r.Context(), id, part)
	if err != nil {
		writeError(w, r, bodyError(err))
		return
	}
	writeJSON(w, r, item, http.StatusOK)
}

func imagePart(r *http.Request) (*multipart.Part, error) {
	reader, err := r.MultipartReader()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotMultipart, err)
	}

	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			return nil, errNoImagePart
		}
		if err != nil {
			if errors.Is(bodyError(err), ErrBodyTooBig) {
				return nil, ErrBodyTooBig
			}
			return nil, fmt.Errorf("%w: %w", ErrNotMultipart, err)
		}
		if part.FormName() == imageFormField {
			return part, nil
		}
		part.Close()
	}
}

// getImage serves the original or, with ?thumb=true, the thumbnail.
func (h *Handler) getImage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	thumb, err := queryBool(r, "thumb")
	if err != nil {
		writeError(w, r, err)
		return
	}

	file, contentType, err := h.services.ImageService.Open(r.Context(), id, thumb)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "private, max-age=300")
	w.WriteHeader(http.StatusOK)
	if n, err := io.Copy(w, file); err != nil {
		logger.FromRequest(r).Err(err).Int64("item_id", id).Int64("written", n).Msg("image copy interrupted")
	}
}

func (h *Handler) deleteImage(w http.ResponseWriter, r *http.Request) {
	handleGet(w, r, h.services.ImageService.Delete)
}
