package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/Comraich/sortr-sub001/models"
)

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	filter, err := itemFilterFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	list, err := h.services.ItemService.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, list, http.StatusOK)
}

func itemFilterFromQuery(r *http.Request) (models.ItemFilter, error) {
	var filter models.ItemFilter
	var err error

	if filter.Page, err = pageFromQuery(r); err != nil {
		return filter, err
	}
	if filter.BoxID, err = queryInt64(r, "boxId"); err != nil {
		return filter, err
	}
	if filter.Orphaned, err = queryBool(r, "orphaned"); err != nil {
		return filter, err
	}
	if filter.Orphaned && filter.BoxID != nil {
		return filter, fmt.Errorf("%w: boxId and orphaned exclude each other", ErrBadQuery)
	}

	q := r.URL.Query()
	filter.Category = strings.TrimSpace(q.Get("category"))
	filter.Query = strings.TrimSpace(q.Get("q"))

	return filter, nil
}

func (h *Handler) getItem(w http.ResponseWriter, r *http.Request) {
	handleGet(w, r, h.services.ItemService.Get)
}

func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) {
	handleCreate(w, r, h.services.ItemService.Create)
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	handleUpdate(w, r, h.services.ItemService.Update)
}

func (h *Handler) replaceItem(w http.ResponseWriter, r *http.Request) {
	handleUpdate(w, r, h.services.ItemService.Replace)
}

func (h *Handler) deleteItem(w http.ResponseWriter, r *http.Request) {
	handleDelete(w, r, h.services.ItemService.Delete)
}
