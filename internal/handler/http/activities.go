package http

import (
	"fmt"
	"net/http"

	"github.com/Comraich/sortr-sub001/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) listActivities(w http.ResponseWriter, r *http.Request) {
	filter, err := activityFilterFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	list, err := h.services.ActivityService.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, list, http.StatusOK)
}

// entityActivities is the history of one entity, newest first.
func (h *Handler) entityActivities(w http.ResponseWriter, r *http.Request) {
	kind, err := models.ParseResourceKind(chi.URLParam(r, "entityType"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	id, err := pathID(r, "entityId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	page, err := pageFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	list, err := h.services.ActivityService.List(r.Context(), models.ActivityFilter{
		EntityType: &kind,
		EntityID:   &id,
		Page:       page,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, list, http.StatusOK)
}

func activityFilterFromQuery(r *http.Request) (models.ActivityFilter, error) {
	var filter models.ActivityFilter
	var err error

	if filter.Page, err = pageFromQuery(r); err != nil {
		return filter, err
	}
	if filter.UserID, err = queryInt64(r, "userId"); err != nil {
		return filter, err
	}
	if filter.EntityID, err = queryInt64(r, "entityId"); err != nil {
		return filter, err
	}

	q := r.URL.Query()
	if raw := q.Get("entityType"); raw != "" {
		kind, err := models.ParseResourceKind(raw)
		if err != nil {
			return filter, err
		}
		filter.EntityType = &kind
	}
	if raw := q.Get("action"); raw != "" {
		action := models.ActivityAction(raw)
		if !action.Valid() {
			return filter, fmt.Errorf("%w: unknown action %q", ErrBadQuery, raw)
		}
		filter.Action = &action
	}

	return filter, nil
}
