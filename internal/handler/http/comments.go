package http

import (
	"net/http"

	"github.com/Comraich/sortr-sub001/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) listComments(w http.ResponseWriter, r *http.Request) {
	kind, err := models.ParseResourceKind(chi.URLParam(r, "resourceType"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	id, err := pathID(r, "resourceId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	ref, err := models.NewResourceRef(kind, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	page, err := pageFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	list, err := h.services.CommentService.List(r.Context(), ref, page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, list, http.StatusOK)
}

// createComment notifies every @mentioned user.
func (h *Handler) createComment(w http.ResponseWriter, r *http.Request) {
	in, err := decodeAndValidate[models.CommentInput](h, w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	comment, err := h.services.CommentService.Create(r.Context(), identity(r), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, comment, http.StatusCreated)
}

// deleteComment is allowed to the author and to admins.
func (h *Handler) deleteComment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	comment, err := h.services.CommentService.Delete(r.Context(), identity(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, comment, http.StatusOK)
}
