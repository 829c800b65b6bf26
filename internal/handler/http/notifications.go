package http

import (
	"net/http"

	"github.com/Comraich/sortr-sub001/models"
)

func (h *Handler) listNotifications(w http.ResponseWriter, r *http.Request) {
	page, err := pageFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	unread, err := queryBool(r, "unread")
	if err != nil {
		writeError(w, r, err)
		return
	}

	list, err := h.services.NotificationService.List(r.Context(), models.NotificationFilter{
		UserID:     identity(r).UserID,
		UnreadOnly: unread,
		Page:       page,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, list, http.StatusOK)
}

func (h *Handler) unreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.services.NotificationService.UnreadCount(r.Context(), identity(r).UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, models.UnreadCount{Count: count}, http.StatusOK)
}

func (h *Handler) markNotificationRead(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	n, err := h.services.NotificationService.MarkRead(r.Context(), identity(r).UserID, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, n, http.StatusOK)
}

func (h *Handler) markAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	updated, err := h.services.NotificationService.MarkAllRead(r.Context(), identity(r).UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, map[string]int64{"updated": updated}, http.StatusOK)
}
