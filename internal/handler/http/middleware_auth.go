package http

import (
	"net/http"

	"github.com/Comraich/sortr-sub001/internal/logger"
	"github.com/Comraich/sortr-sub001/internal/service"
	"github.com/Comraich/sortr-sub001/internal/utils"
)

// auth enforces bearer authentication.
//
// A missing or malformed Authorization header is answered with 401
// Unauthenticated. A token whose signature, issuer or expiry does not verify
// is answered with 401 InvalidToken, never 403. On success the caller's
// [models.Identity] is stored in the request context; the database is not
// consulted.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Debug().Err(ErrEmptyAuthorizationHeader).Send()
			writeError(w, r, ErrEmptyAuthorizationHeader)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Debug().Err(err).Send()
			writeError(w, r, err)
			return
		}

		ctx := r.Context()
		id, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			log.Debug().Err(err).Msg("token rejected")
			writeError(w, r, service.ErrInvalidToken)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithIdentity(ctx, id)))
	})
}

// requireAdmin must run after auth.
func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := utils.GetIdentityFromContext(r.Context())
		if !ok {
			writeError(w, r, ErrEmptyAuthorizationHeader)
			return
		}
		if !id.IsAdmin {
			logger.FromRequest(r).Info().Int64("user_id", id.UserID).Str("path", r.URL.Path).Msg("admin route refused")
			writeError(w, r, ErrAdminRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}
