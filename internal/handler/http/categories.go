package http

import (
	"net/http"

	"github.com/Comraich/sortr-sub001/models"
)

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.services.CategoryService.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, categories, http.StatusOK)
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	in, err := decodeAndValidate[models.CategoryInput](h, w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	category, err := h.services.CategoryService.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, category, http.StatusCreated)
}

func (h *Handler) updateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	in, err := decodeAndValidate[models.CategoryInput](h, w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	category, err := h.services.CategoryService.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, category, http.StatusOK)
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	handleDelete(w, r, h.services.CategoryService.Delete)
}
