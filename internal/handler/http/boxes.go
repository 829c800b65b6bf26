package http

import (
	"net/http"

	"github.com/Comraich/sortr-sub001/models"
)

func (h *Handler) listBoxes(w http.ResponseWriter, r *http.Request) {
	page, err := pageFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	locationID, err := queryInt64(r, "locationId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	list, err := h.services.BoxService.List(r.Context(), models.BoxFilter{LocationID: locationID, Page: page})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, list, http.StatusOK)
}

func (h *Handler) getBox(w http.ResponseWriter, r *http.Request) {
	handleGet(w, r, h.services.BoxService.Get)
}

func (h *Handler) createBox(w http.ResponseWriter, r *http.Request) {
	handleCreate(w, r, h.services.BoxService.Create)
}

func (h *Handler) updateBox(w http.ResponseWriter, r *http.Request) {
	handleUpdate(w, r, h.services.BoxService.Update)
}

func (h *Handler) replaceBox(w http.ResponseWriter, r *http.Request) {
	handleUpdate(w, r, h.services.BoxService.Replace)
}

// deleteBox orphans the box's items; they stay with boxId null.
func (h *Handler) deleteBox(w http.ResponseWriter, r *http.Request) {
	handleDelete(w, r, h.services.BoxService.Delete)
}
