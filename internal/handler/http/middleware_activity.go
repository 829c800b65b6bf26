package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/Comraich/sortr-sub001/internal/logger"
	"github.com/Comraich/sortr-sub001/internal/utils"
	"github.com/Comraich/sortr-sub001/models"
)

// activityWriteTimeout bounds the audit insert after the response is out.
const activityWriteTimeout = 5 * time.Second

// moveFields are the foreign keys whose sole change turns an update into a
// move.
var moveFields = []string{"boxId", "locationId", "parentId"}

type activityNoteKey struct{}

// activityNote lets a handler refine the row its observer will write. Unset
// fields fall back to what the observer reads from the request and response.
type activityNote struct {
	action     models.ActivityAction
	entityID   *int64
	entityName string
	changes    any

	once sync.Once
}

func noteFromRequest(r *http.Request) *activityNote {
	note, _ := r.Context().Value(activityNoteKey{}).(*activityNote)
	return note
}

// noteUpdate records the changed fields of an update and marks it a move
// when only a foreign key changed.
func noteUpdate(r *http.Request, changes models.FieldChanges) {
	note := noteFromRequest(r)
	if note == nil {
		return
	}
	note.changes = changes
	if isMove(changes) {
		note.action = models.ActionMove
	}
}

// noteDeleted stores a snapshot of the removed entity as the changes.
func noteDeleted(r *http.Request, snapshot any) {
	if note := noteFromRequest(r); note != nil {
		note.changes = snapshot
	}
}

// noteName names the entity for payloads without a "name" field.
func noteName(r *http.Request, name string) {
	if note := noteFromRequest(r); note != nil {
		note.entityName = name
	}
}

func isMove(changes models.FieldChanges) bool {
	if len(changes) == 0 {
		return false
	}
	for field := range changes {
		if !slices.Contains(moveFields, field) {
			return false
		}
	}
	return true
}

// observe records one activity row for every successful response of the
// wrapped route. The response is flushed to the client first; the insert
// then runs on a context detached from client cancellation. Failures are
// logged and never change the response.
func (h *Handler) observe(action models.ActivityAction, kind models.ResourceKind) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestBody := peekBody(r)

			note := &activityNote{action: action}
			r = r.WithContext(context.WithValue(r.Context(), activityNoteKey{}, note))

			rw := &responseWriter{ResponseWriter: w, capture: true}
			next.ServeHTTP(rw, r)

			if !rw.success() {
				return
			}
			_ = http.NewResponseController(rw).Flush()

			note.once.Do(func() {
				activity := buildActivity(r, note, kind, requestBody, rw.body.Bytes())
				h.recordActivity(r, activity)
			})
		})
	}
}

func (h *Handler) recordActivity(r *http.Request, activity models.Activity) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), activityWriteTimeout)
	defer cancel()

	if err := h.services.ActivityService.Record(ctx, activity); err != nil {
		logger.FromRequest(r).Err(err).
			Str("func", "Handler.recordActivity").
			Str("action", string(activity.Action)).
			Str("entity_type", activity.EntityType.String()).
			Msg("activity not recorded")
	}
}

func buildActivity(r *http.Request, note *activityNote, kind models.ResourceKind, requestBody, responseBody []byte) models.Activity {
	payload := jsonFields(responseBody)
	request := jsonFields(requestBody)

	activity := models.Activity{
		Action:     note.action,
		EntityType: kind,
		EntityID:   note.entityID,
		EntityName: note.entityName,
		Metadata:   utils.GetActivityMetadataFromContext(r.Context()),
	}

	if id, ok := utils.GetUserIDFromContext(r.Context()); ok {
		activity.UserID = &id
	}

	if activity.EntityID == nil {
		if note.action == models.ActionCreate {
			activity.EntityID = int64Field(payload, "id")
		} else if id, err := pathID(r, "id"); err == nil {
			activity.EntityID = &id
		} else {
			activity.EntityID = int64Field(payload, "id")
		}
	}

	if activity.EntityName == "" {
		activity.EntityName = stringField(payload, "name")
	}
	if activity.EntityName == "" {
		activity.EntityName = stringField(request, "name")
	}

	switch {
	case note.changes != nil:
		activity.Changes = models.ActivityChanges(note.changes)
	case note.action == models.ActionUpdate || note.action == models.ActionMove:
		activity.Changes = models.ActivityChanges(touchedFields(request))
	}

	return activity
}

// peekBody reads the JSON body for the observer and puts it back for the
// handler.
func peekBody(r *http.Request) []byte {
	if r.Body == nil || r.Body == http.NoBody {
		return nil
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxJSONBody+1))
	r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil {
		return nil
	}
	return body
}

func jsonFields(b []byte) map[string]json.RawMessage {
	var fields map[string]json.RawMessage
	if len(b) == 0 || json.Unmarshal(b, &fields) != nil {
		return nil
	}
	return fields
}

func touchedFields(fields map[string]json.RawMessage) []string {
	if len(fields) == 0 {
		return nil
	}
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func int64Field(fields map[string]json.RawMessage, name string) *int64 {
	raw, ok := fields[name]
	if !ok {
		return nil
	}
	v, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

func stringField(fields map[string]json.RawMessage, name string) string {
	raw, ok := fields[name]
	if !ok {
		return ""
	}
	var s string
	if json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}
