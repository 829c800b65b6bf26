package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/Comraich/sortr-sub001/internal/logger"
	"github.com/Comraich/sortr-sub001/internal/utils"
	"github.com/Comraich/sortr-sub001/models"
	"github.com/go-chi/chi/v5"
)

// maxJSONBody caps every JSON request body; backups are the largest.
const maxJSONBody = 32 << 20

// decodeJSON reads the request body into a T. Unknown fields are ignored.
func decodeJSON[T any](w http.ResponseWriter, r *http.Request) (T, error) {
	var v T
	body := http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(body).Decode(&v); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return v, ErrBodyTooBig
		}
		if errors.Is(err, io.EOF) {
			return v, fmt.Errorf("%w: empty body", ErrInvalidJSON)
		}
		return v, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return v, nil
}

// decodeAndValidate decodes the body and runs the struct tag rules, so
// handlers only ever see well-formed input.
func decodeAndValidate[T any](h *Handler, w http.ResponseWriter, r *http.Request) (T, error) {
	v, err := decodeJSON[T](w, r)
	if err != nil {
		return v, err
	}
	if err = h.validator.Validate(r.Context(), v); err != nil {
		return v, err
	}
	return v, nil
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}

func queryInt64(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return nil, fmt.Errorf("%w: %s must be a positive integer", ErrBadQuery, name)
	}
	return &v, nil
}

func queryBool(r *http.Request, name string) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: %s must be true or false", ErrBadQuery, name)
	}
	return v, nil
}

// pageFromQuery reads ?limit=&offset= and clamps them into range.
func pageFromQuery(r *http.Request) (models.Page, error) {
	q := r.URL.Query()
	var page models.Page

	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return page, fmt.Errorf("%w: limit must be an integer", ErrBadQuery)
		}
		page.Limit = limit
	}
	if raw := q.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return page, fmt.Errorf("%w: offset must be a non-negative integer", ErrBadQuery)
		}
		page.Offset = offset
	}

	return page.Normalized(), nil
}

// identity returns the authenticated caller. Routes behind auth always have
// one; the zero value is returned otherwise.
func identity(r *http.Request) models.Identity {
	id, _ := utils.GetIdentityFromContext(r.Context())
	return id
}

func writeJSON(w http.ResponseWriter, r *http.Request, data any, status int) {
	if _, err := utils.WriteJSON(w, data, status); err != nil {
		logger.FromRequest(r).Err(err).Msg("writing response failed")
	}
}
