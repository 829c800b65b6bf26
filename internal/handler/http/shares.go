package http

import (
	"context"
	"net/http"

	"github.com/Comraich/sortr-sub001/models"
)

func (h *Handler) listReceivedShares(w http.ResponseWriter, r *http.Request) {
	h.listShares(w, r, h.services.ShareService.ListReceived)
}

func (h *Handler) listSentShares(w http.ResponseWriter, r *http.Request) {
	h.listShares(w, r, h.services.ShareService.ListSent)
}

func (h *Handler) listShares(w http.ResponseWriter, r *http.Request, list func(context.Context, int64, models.Page) (models.ListResponse[models.Share], error)) {
	page, err := pageFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	shares, err := list(r.Context(), identity(r).UserID, page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, shares, http.StatusOK)
}

// createShare notifies the recipient; the share service records the
// activity row.
func (h *Handler) createShare(w http.ResponseWriter, r *http.Request) {
	in, err := decodeAndValidate[models.ShareInput](h, w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if in.Permission == "" {
		in.Permission = models.PermissionView
	}

	share, err := h.services.ShareService.Create(r.Context(), identity(r), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, share, http.StatusCreated)
}

func (h *Handler) deleteShare(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	share, err := h.services.ShareService.Delete(r.Context(), identity(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, share, http.StatusOK)
}
