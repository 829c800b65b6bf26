package http

import "net/http"

func (h *Handler) listLocations(w http.ResponseWriter, r *http.Request) {
	page, err := pageFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	list, err := h.services.LocationService.List(r.Context(), page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, list, http.StatusOK)
}

func (h *Handler) locationTree(w http.ResponseWriter, r *http.Request) {
	tree, err := h.services.LocationService.Tree(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, tree, http.StatusOK)
}

func (h *Handler) locationChildren(w http.ResponseWriter, r *http.Request) {
	handleGet(w, r, h.services.LocationService.Children)
}

func (h *Handler) getLocation(w http.ResponseWriter, r *http.Request) {
	handleGet(w, r, h.services.LocationService.Get)
}

func (h *Handler) createLocation(w http.ResponseWriter, r *http.Request) {
	handleCreate(w, r, h.services.LocationService.Create)
}

func (h *Handler) updateLocation(w http.ResponseWriter, r *http.Request) {
	handleUpdate(w, r, h.services.LocationService.Update)
}

func (h *Handler) replaceLocation(w http.ResponseWriter, r *http.Request) {
	handleUpdate(w, r, h.services.LocationService.Replace)
}

// deleteLocation is refused with 409 while boxes remain in the location.
func (h *Handler) deleteLocation(w http.ResponseWriter, r *http.Request) {
	handleDelete(w, r, h.services.LocationService.Delete)
}
