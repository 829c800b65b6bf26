package http

import (
	"errors"
	"net/http"

	"github.com/Comraich/sortr-sub001/internal/logger"
	"github.com/Comraich/sortr-sub001/internal/service"
	"github.com/Comraich/sortr-sub001/internal/store"
	"github.com/Comraich/sortr-sub001/internal/utils"
	"github.com/Comraich/sortr-sub001/internal/validators"
	"github.com/Comraich/sortr-sub001/models"
)

type errorMapping struct {
	status int
	code   models.ErrorCode
}

var (
	badRequest      = errorMapping{http.StatusBadRequest, models.CodeValidationFailed}
	unauthenticated = errorMapping{http.StatusUnauthorized, models.CodeUnauthenticated}
	invalidToken    = errorMapping{http.StatusUnauthorized, models.CodeInvalidToken}
	forbidden       = errorMapping{http.StatusForbidden, models.CodeForbidden}
	notFound        = errorMapping{http.StatusNotFound, models.CodeNotFound}
	conflict        = errorMapping{http.StatusConflict, models.CodeConflict}
	tooLarge        = errorMapping{http.StatusRequestEntityTooLarge, models.CodeValidationFailed}
	badGateway      = errorMapping{http.StatusBadGateway, models.CodeInternal}
	internal        = errorMapping{http.StatusInternalServerError, models.CodeInternal}
)

var errorStatusMap = map[error]errorMapping{
	ErrEmptyAuthorizationHeader: unauthenticated,
	utils.ErrMissingBearer:      unauthenticated,
	ErrAdminRequired:            forbidden,
	ErrInvalidJSON:              badRequest,
	ErrInvalidID:                badRequest,
	ErrBadQuery:                 badRequest,
	ErrBodyTooBig:               tooLarge,
	ErrInvalidGzip:              badRequest,
	ErrNotMultipart:             badRequest,

	service.ErrNotFound:            notFound,
	service.ErrInvalidCredentials:  unauthenticated,
	service.ErrInvalidToken:        invalidToken,
	service.ErrUsernameTaken:       conflict,
	service.ErrEmailTaken:          conflict,
	service.ErrUnknownProvider:     notFound,
	service.ErrProviderRejected:    unauthenticated,
	service.ErrProviderUnavailable: badGateway,
	service.ErrForbidden:           forbidden,
	service.ErrSelfModification:    conflict,
	service.ErrLocationHasBoxes:    conflict,
	service.ErrDuplicateName:       conflict,
	service.ErrAlreadyShared:       conflict,
	service.ErrNoImage:             notFound,

	models.ErrUnknownProvider:     notFound,
	models.ErrUnknownResourceKind: badRequest,
	models.ErrInvalidDeepLink:     badRequest,

	store.ErrNotFound:          notFound,
	store.ErrUsernameTaken:     conflict,
	store.ErrEmailTaken:        conflict,
	store.ErrAlreadyExists:     conflict,
	store.ErrReferenceNotFound: notFound,
	store.ErrHasDependents:     conflict,
	store.ErrImageNotFound:     notFound,
}

func mappingFromError(err error) errorMapping {
	for target, m := range errorStatusMap {
		if errors.Is(err, target) {
			return m
		}
	}
	return internal
}

func statusFromError(err error) int {
	return mappingFromError(err).status
}

// writeError renders err as an ErrorResponse. Validation errors carry their
// field list; 5xx bodies never leak the underlying error.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	var validationErr *validators.ValidationError
	if errors.As(err, &validationErr) {
		log.Debug().Err(err).Msg("request rejected by validation")
		writeErrorResponse(w, http.StatusBadRequest, models.ErrorResponse{
			Error:  "validation failed",
			Code:   models.CodeValidationFailed,
			Fields: validationErr.Fields,
		})
		return
	}

	m := mappingFromError(err)
	message := err.Error()

	var nf *service.NotFoundError
	if errors.As(err, &nf) {
		message = nf.Error()
	}

	if m.status >= http.StatusInternalServerError {
		log.Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("request failed")
		message = http.StatusText(m.status)
	} else {
		log.Debug().Err(err).Int("status", m.status).Msg("request rejected")
	}

	writeErrorResponse(w, m.status, models.ErrorResponse{Error: message, Code: m.code})
}

func writeErrorResponse(w http.ResponseWriter, status int, body models.ErrorResponse) {
	utils.WriteJSON(w, body, status)
}
