package http

import (
	"net/http"

	"github.com/Comraich/sortr-sub001/internal/logger"
	"github.com/Comraich/sortr-sub001/models"
)

// Admin endpoints. requireAdmin guards the whole group.

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	page, err := pageFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	list, err := h.services.UserService.List(r.Context(), page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, list, http.StatusOK)
}

func (h *Handler) setAdmin(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	req, err := decodeAndValidate[models.SetAdminRequest](h, w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.UserService.SetAdmin(r.Context(), identity(r), id, *req.IsAdmin)
	if err != nil {
		writeError(w, r, err)
		return
	}

	changes := models.FieldChanges{}
	changes.Add("isAdmin", !user.IsAdmin, user.IsAdmin)
	noteUpdate(r, changes)
	noteName(r, user.Username)

	logger.FromRequest(r).Info().
		Int64("user_id", user.ID).
		Bool("is_admin", user.IsAdmin).
		Msg("admin flag changed")
	writeJSON(w, r, user, http.StatusOK)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.UserService.Delete(r.Context(), identity(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	noteDeleted(r, user)
	noteName(r, user.Username)
	writeJSON(w, r, user, http.StatusOK)
}
