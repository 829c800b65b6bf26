package http

import (
	"context"
	"net/http"

	"github.com/Comraich/sortr-sub001/models"
)

// The helpers below carry the shared request flow of the location, box and
// item endpoints. Input validation happens in the service layer, which
// reports all violated fields at once.

func handleGet[T any](w http.ResponseWriter, r *http.Request, get func(context.Context, int64) (T, error)) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	v, err := get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, v, http.StatusOK)
}

func handleCreate[In, T any](w http.ResponseWriter, r *http.Request, create func(context.Context, In) (T, error)) {
	in, err := decodeJSON[In](w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	v, err := create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, v, http.StatusCreated)
}

// handleUpdate serves both PATCH and PUT; the service decides how absent
// fields are treated.
func handleUpdate[In, T any](w http.ResponseWriter, r *http.Request, update func(context.Context, int64, In) (models.Updated[T], error)) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	in, err := decodeJSON[In](w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	updated, err := update(r.Context(), id, in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	noteUpdate(r, updated.Changes)
	writeJSON(w, r, updated.After, http.StatusOK)
}

// handleDelete answers with the removed entity.
func handleDelete[T any](w http.ResponseWriter, r *http.Request, del func(context.Context, int64) (T, error)) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	v, err := del(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	noteDeleted(r, v)
	writeJSON(w, r, v, http.StatusOK)
}
