package http

import (
	"net/http"

	"github.com/Comraich/sortr-sub001/internal/logger"
	"github.com/Comraich/sortr-sub001/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	req, err := decodeAndValidate[models.RegisterRequest](h, w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp, err := h.services.AuthService.Register(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Int64("user_id", resp.User.ID).Msg("user registered")
	writeJSON(w, r, resp, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	creds, err := decodeAndValidate[models.Credentials](h, w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp, err := h.services.AuthService.Login(r.Context(), creds)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Debug().Int64("user_id", resp.User.ID).Msg("user logged in")
	writeJSON(w, r, resp, http.StatusOK)
}

// oauthMobile exchanges a provider access token obtained on a device for a
// Sortr token.
func (h *Handler) oauthMobile(w http.ResponseWriter, r *http.Request) {
	provider, err := models.ParseOAuthProvider(chi.URLParam(r, "provider"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	req, err := decodeAndValidate[models.OAuthMobileRequest](h, w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp, err := h.services.OAuthService.SignIn(r.Context(), provider, req.Token)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().
		Str("provider", string(provider)).
		Int64("user_id", resp.User.ID).
		Msg("oauth sign-in")
	writeJSON(w, r, resp, http.StatusOK)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	user, err := h.services.AuthService.Me(r.Context(), identity(r).UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, user, http.StatusOK)
}
