package http

import (
	"time"

	"github.com/Comraich/sortr-sub001/internal/config"
	"github.com/Comraich/sortr-sub001/internal/logger"
	"github.com/Comraich/sortr-sub001/internal/service"
	"github.com/Comraich/sortr-sub001/internal/utils"
	"github.com/Comraich/sortr-sub001/internal/validators"
	"golang.org/x/time/rate"
)

type Handler struct {
	services  *service.Services
	cfg       config.StructuredConfig
	validator validators.Validator

	// limiter guards the auth endpoints; nil under the test profile.
	limiter *RateLimiter
	// limitLog throttles the warning written for each rejected attempt.
	limitLog *rate.Sometimes
	// proxies may set X-Forwarded-For and X-Real-IP.
	proxies utils.TrustedProxies

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.StructuredConfig, logger *logger.Logger) *Handler {
	h := &Handler{
		services:  services,
		cfg:       cfg,
		validator: validators.NewStructValidator(),
		limitLog:  &rate.Sometimes{First: 10, Interval: time.Minute},
		logger:    logger,
	}

	proxies, err := utils.ParseTrustedProxies(cfg.Server.TrustedProxies)
	if err != nil {
		// config validation rejects bad entries; forwarded headers stay ignored
		logger.Error().Err(err).Msg("trusted proxies ignored")
	}
	h.proxies = proxies

	if cfg.App.IsTestProfile() {
		logger.Warn().Msg("auth rate limiting disabled by the test profile")
	} else {
		h.limiter = NewRateLimiter(cfg.RateLimit.AuthAttempts, cfg.RateLimit.AuthWindow, time.Now)
	}

	logger.Info().Msg("http handler created")
	return h
}

// Limiter returns the auth rate limiter so a background worker can sweep
// idle clients. It is nil when rate limiting is disabled.
func (h *Handler) Limiter() *RateLimiter {
	return h.limiter
}
