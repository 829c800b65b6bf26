package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/Comraich/sortr-sub001/internal/adapter"
	"github.com/Comraich/sortr-sub001/internal/cache"
	"github.com/Comraich/sortr-sub001/internal/crypto"
	"github.com/Comraich/sortr-sub001/internal/logger"
	"github.com/Comraich/sortr-sub001/internal/store"
	"github.com/Comraich/sortr-sub001/models"
)

// SettingServerURL is the settings key of the server address override.
const SettingServerURL = "server_url"

type clientSession struct {
	adapter  adapter.ServerAdapter
	creds    store.CredentialRepository
	settings store.SettingsRepository
	sealer   crypto.Sealer
	cache    *cache.TTLCache

	// defaultServerURL is the configured address a reset returns to.
	defaultServerURL string

	mu      sync.RWMutex
	current models.Session
	active  bool

	subsMu sync.Mutex
	subs   map[chan models.SessionEvent]struct{}

	logger *logger.Logger
}

func NewClientSession(
	serverAdapter adapter.ServerAdapter,
	creds store.CredentialRepository,
	settings store.SettingsRepository,
	sealer crypto.Sealer,
	readCache *cache.TTLCache,
	defaultServerURL string,
	logger *logger.Logger,
) ClientSession {
	return &clientSession{
		adapter:          serverAdapter,
		creds:            creds,
		settings:         settings,
		sealer:           sealer,
		cache:            readCache,
		defaultServerURL: defaultServerURL,
		subs:             make(map[chan models.SessionEvent]struct{}),
		logger:           logger,
	}
}

func (s *clientSession) Restore(ctx context.Context) models.Result[models.Session] {
	s.applyServerOverride(ctx)

	blob, err := s.creds.LoadCredential(ctx)
	if errors.Is(err, store.ErrCredentialNotFound) {
		return models.Result[models.Session]{}
	}
	if err != nil {
		s.logger.Err(err).Str("func", "*clientSession.Restore").Msg("error loading credential")
		return models.Fail[models.Session]("Could not read the saved session.")
	}

	var saved models.Session
	if err = s.sealer.Open(blob, &saved); err != nil || !saved.Valid() {
		// another device secret or a damaged row: the user signs in again
		s.logger.Warn().Err(err).Str("func", "*clientSession.Restore").Msg("discarding unreadable credential")
		if clearErr := s.creds.ClearCredential(ctx); clearErr != nil {
			s.logger.Err(clearErr).Str("func", "*clientSession.Restore").Msg("error clearing credential")
		}
		return models.Result[models.Session]{}
	}

	s.adapter.SetToken(saved.Token)

	me, err := s.adapter.Me(ctx)
	switch {
	case err == nil:
		saved.Username = me.Username
		saved.DisplayName = me.DisplayName
		saved.IsAdmin = me.IsAdmin
	case errors.Is(err, adapter.ErrUnauthorized):
		s.end(ctx, models.SessionExpired)
		res := models.Fail[models.Session](msgSessionExpired)
		res.SessionExpired = true
		return res
	default:
		// offline: keep the saved session, calls will retry the server
		s.logger.Warn().Err(err).Str("func", "*clientSession.Restore").Msg("could not verify session")
		s.begin(saved)
		res := models.Ok(saved)
		res.Message = adapter.Message(err)
		return res
	}

	s.begin(saved)
	return models.Ok(saved)
}

func (s *clientSession) Login(ctx context.Context, creds models.Credentials) models.Result[models.Session] {
	creds.Username = strings.TrimSpace(creds.Username)
	if creds.Username == "" || creds.Password == "" {
		return models.Fail[models.Session]("Enter your username and password.")
	}

	resp, err := s.adapter.Login(ctx, creds)
	return s.signedIn(ctx, resp, err)
}

func (s *clientSession) Register(ctx context.Context, req models.RegisterRequest) models.Result[models.Session] {
	resp, err := s.adapter.Register(ctx, req)
	return s.signedIn(ctx, resp, err)
}

func (s *clientSession) OAuthSignIn(ctx context.Context, provider models.OAuthProvider, accessToken string) models.Result[models.Session] {
	if strings.TrimSpace(accessToken) == "" {
		return models.Fail[models.Session](providerTitle(provider) + " sign-in did not return a token.")
	}

	resp, err := s.adapter.OAuthSignIn(ctx, provider, accessToken)
	if err != nil {
		s.logger.Err(err).Str("func", "*clientSession.OAuthSignIn").Str("provider", string(provider)).Msg("provider sign-in failed")
		res := failure[models.Session](err)
		res.Message = providerTitle(provider) + " sign-in failed: " + res.Message
		return res
	}
	return s.signedIn(ctx, resp, nil)
}

// signedIn persists a fresh session. 401s here are bad credentials, not an
// expired session.
func (s *clientSession) signedIn(ctx context.Context, resp models.AuthResponse, err error) models.Result[models.Session] {
	if err != nil {
		return failure[models.Session](err)
	}

	session := models.NewSession(resp)
	s.adapter.SetToken(session.Token)
	s.cache.Clear()
	s.begin(session)

	res := models.Ok(session)
	if err = s.persist(ctx, session); err != nil {
		s.logger.Err(err).Str("func", "*clientSession.signedIn").Msg("error persisting session")
		res.Message = "Signed in, but the session could not be saved on this device."
	}
	return res
}

func (s *clientSession) persist(ctx context.Context, session models.Session) error {
	blob, err := s.sealer.Seal(session)
	if err != nil {
		return err
	}
	return s.creds.SaveCredential(ctx, blob)
}

func (s *clientSession) Logout(ctx context.Context) models.Result[struct{}] {
	if err := s.end(ctx, models.SessionEnded); err != nil {
		return models.Fail[struct{}]("Signed out, but the saved session could not be removed.")
	}
	return models.Ok(struct{}{})
}

// Expire ends an active session once; concurrent 401s after the first one
// are no-ops.
func (s *clientSession) Expire(ctx context.Context) {
	if !s.deactivate() {
		return
	}
	_ = s.teardown(ctx, models.SessionExpired)
}

func (s *clientSession) begin(session models.Session) {
	s.mu.Lock()
	s.current = session
	s.active = true
	s.mu.Unlock()

	s.broadcast(models.SessionStarted)
}

// deactivate drops the in-memory session and reports whether it was active.
func (s *clientSession) deactivate() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	wasActive := s.active
	s.current = models.Session{}
	s.active = false
	return wasActive
}

func (s *clientSession) end(ctx context.Context, event models.SessionEvent) error {
	s.deactivate()
	return s.teardown(ctx, event)
}

func (s *clientSession) teardown(ctx context.Context, event models.SessionEvent) error {
	s.adapter.SetToken("")
	s.cache.Clear()

	err := s.creds.ClearCredential(ctx)
	if err != nil {
		s.logger.Err(err).Str("func", "*clientSession.teardown").Msg("error clearing credential")
	}

	s.broadcast(event)
	return err
}

func (s *clientSession) Current() (models.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.active
}

func (s *clientSession) SetServerURL(ctx context.Context, raw string) models.Result[string] {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if err := s.settings.DeleteSetting(ctx, SettingServerURL); err != nil {
			s.logger.Err(err).Str("func", "*clientSession.SetServerURL").Msg("error removing server override")
			return models.Fail[string]("Could not reset the server address.")
		}
		if err := s.adapter.SetBaseURL(s.defaultServerURL); err != nil {
			s.logger.Err(err).Str("func", "*clientSession.SetServerURL").Msg("error restoring default server address")
			return models.Fail[string]("Could not reset the server address.")
		}
		s.cache.Clear()
		return models.Ok(s.adapter.BaseURL())
	}

	if err := s.adapter.SetBaseURL(raw); err != nil {
		return models.Fail[string](err.Error())
	}
	s.cache.Clear()

	res := models.Ok(s.adapter.BaseURL())
	if err := s.settings.SetSetting(ctx, SettingServerURL, res.Data); err != nil {
		s.logger.Err(err).Str("func", "*clientSession.SetServerURL").Msg("error saving server override")
		res.Message = "The address is used for now but could not be saved."
	}
	return res
}

func (s *clientSession) ServerURL() string {
	return s.adapter.BaseURL()
}

func (s *clientSession) applyServerOverride(ctx context.Context) {
	raw, err := s.settings.GetSetting(ctx, SettingServerURL)
	if err != nil {
		if !errors.Is(err, store.ErrSettingNotFound) {
			s.logger.Err(err).Str("func", "*clientSession.applyServerOverride").Msg("error reading server override")
		}
		return
	}
	if err = s.adapter.SetBaseURL(raw); err != nil {
		s.logger.Warn().Err(err).Str("func", "*clientSession.applyServerOverride").Msg("ignoring invalid server override")
	}
}

func (s *clientSession) Subscribe() (<-chan models.SessionEvent, func()) {
	ch := make(chan models.SessionEvent, 4)

	s.subsMu.Lock()
	s.subs[ch] = struct{}{}
	s.subsMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.subsMu.Lock()
			delete(s.subs, ch)
			s.subsMu.Unlock()
			close(ch)
		})
	}
}

// broadcast never blocks; a subscriber that is not draining its channel
// misses events.
func (s *clientSession) broadcast(event models.SessionEvent) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	for ch := range s.subs {
		select {
		case ch <- event:
		default:
			s.logger.Warn().Str("func", "*clientSession.broadcast").Stringer("event", event).Msg("subscriber is not draining events")
		}
	}
}

func providerTitle(p models.OAuthProvider) string {
	switch p {
	case models.ProviderGoogle:
		return "Google"
	case models.ProviderGithub:
		return "GitHub"
	case models.ProviderMicrosoft:
		return "Microsoft"
	}
	return string(p)
}
