package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/vivigo/internal/client/auth"
	"github.com/dmitrijs2005/vivigo/internal/client/client"
	"github.com/dmitrijs2005/vivigo/internal/client/models"
	"github.com/dmitrijs2005/vivigo/internal/common"
	"github.com/dmitrijs2005/vivigo/internal/logging"
)

// DefaultRefreshThreshold is the remaining token lifetime below which
// RefreshTokenIfNeeded asks the backend for a new token.
const DefaultRefreshThreshold = 300 * time.Second

// KeyValueStore is the persistent store the session lives in. SetMany and
// DeleteMany must be atomic.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetMany(ctx context.Context, values map[string][]byte) error
	DeleteMany(ctx context.Context, keys ...string) error
}

// SessionManager owns the session: the token and the user profile decoded
// from it. It is the only writer of the two session keys, and the two
// are always written and cleared together.
//
// Reads go to the store every time; nothing is cached in memory, so a
// second SessionManager over the same store sees the latest write.
type SessionManager struct {
	api              client.Client
	store            KeyValueStore
	log              logging.Logger
	now              func() time.Time
	refreshThreshold time.Duration
	listeners        broadcaster
}

type Option func(*SessionManager)

func WithLogger(l logging.Logger) Option {
	return func(s *SessionManager) { s.log = l }
}

// WithClock replaces time.Now for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *SessionManager) { s.now = now }
}

func WithRefreshThreshold(d time.Duration) Option {
	return func(s *SessionManager) { s.refreshThreshold = d }
}

func NewSessionManager(api client.Client, store KeyValueStore, opts ...Option) *SessionManager {
	s := &SessionManager{
		api:              api,
		store:            store,
		log:              logging.Discard(),
		now:              time.Now,
		refreshThreshold: DefaultRefreshThreshold,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With("component", "session")
	return s
}

// Login authenticates against the backend and persists the session.
// On any failure nothing is persisted and the error is one of:
// client.ErrUnavailable, *client.APIError, ErrNoToken, auth.ErrDecode, or
// a store error.
func (s *SessionManager) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = normalizeEmail(email)
	log := s.log.With("op", "login", "email", email)

	resp, err := s.api.Login(ctx, models.LoginRequest{Email: email, Password: password})
	if err != nil {
		log.Warn(ctx, "login failed", "err", err)
		return nil, err
	}
	if resp.Token == "" {
		log.Warn(ctx, "login failed", "err", ErrNoToken)
		return nil, ErrNoToken
	}

	user, err := s.adopt(ctx, resp.Token)
	if err != nil {
		log.Warn(ctx, "login failed", "err", err)
		return nil, err
	}

	log.Info(ctx, "logged in", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// Register validates the input locally, then creates the account. It does
// not sign the user in; call Login afterwards.
func (s *SessionManager) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	req.Email = normalizeEmail(req.Email)
	log := s.log.With("op", "register", "email", req.Email)

	if err := validate(ValidateEmail(req.Email), ValidatePassword(req.Password)); err != nil {
		log.Info(ctx, "registration rejected locally", "err", err)
		return nil, err
	}

	user, err := s.api.Register(ctx, req)
	if err != nil {
		log.Warn(ctx, "registration failed", "err", err)
		return nil, err
	}

	log.Info(ctx, "registered", "user_id", user.ID)
	return user, nil
}

// Logout clears the session and notifies listeners. It is safe to call
// without an active session. The notification is sent even when the store
// fails to clear.
func (s *SessionManager) Logout(ctx context.Context) error {
	err := s.store.DeleteMany(ctx, common.TokenKey, common.UserKey)
	if err != nil {
		s.log.Error(ctx, "failed to clear session", "op", "logout", "err", err)
		err = fmt.Errorf("clear session: %w", err)
	}
	s.listeners.publish(models.SessionState{})
	return err
}

// IsAuthenticated reports whether a token and a profile are both stored.
// It does not look at expiry; see IsTokenExpired and CheckAuth.
func (s *SessionManager) IsAuthenticated(ctx context.Context) bool {
	return s.Token(ctx) != "" && s.CurrentUser(ctx) != nil
}

// IsTokenExpired reports whether the stored token is missing, undecodable
// or past its exp claim.
func (s *SessionManager) IsTokenExpired(ctx context.Context) bool {
	return auth.IsExpired(s.Token(ctx), s.now())
}

// CheckAuth is the check guards must call before granting access to a
// protected view. An expired session is cleared (with a notification) and
// reported as false. Redirecting is up to the caller.
func (s *SessionManager) CheckAuth(ctx context.Context) bool {
	if !s.IsAuthenticated(ctx) {
		return false
	}
	if s.IsTokenExpired(ctx) {
		s.log.Info(ctx, "session expired, clearing", "op", "check_auth")
		_ = s.Logout(ctx)
		return false
	}
	return true
}

// RefreshTokenIfNeeded swaps the stored token for a fresh one when less
// than the refresh threshold of its lifetime is left.
//
// A nil error means the session may be used. Rejections by the backend
// and responses without a usable token are soft: the current token is
// kept and nil is returned. Transport failures, a missing or undecodable
// stored token and store failures are returned as errors.
func (s *SessionManager) RefreshTokenIfNeeded(ctx context.Context) error {
	log := s.log.With("op", "refresh")

	token := s.Token(ctx)
	if token == "" {
		return ErrNoSession
	}

	claims, err := auth.Decode(token)
	if err != nil {
		log.Warn(ctx, "stored token unreadable", "err", err)
		return err
	}
	if claims.Remaining(s.now()) >= s.refreshThreshold {
		return nil
	}

	resp, err := s.api.Refresh(ctx, token)
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			// TODO: decide with the backend team whether a rejected refresh
			// should end the session the way a rejected login does.
			log.Warn(ctx, "refresh rejected, keeping current token", "status", apiErr.StatusCode, "err", err)
			return nil
		}
		log.Warn(ctx, "refresh failed", "err", err)
		return err
	}
	if resp.Token == "" {
		log.Warn(ctx, "refresh returned no token, keeping current token")
		return nil
	}

	user, err := s.adopt(ctx, resp.Token)
	if errors.Is(err, auth.ErrDecode) {
		log.Warn(ctx, "refreshed token unreadable, keeping current token", "err", err)
		return nil
	}
	if err != nil {
		log.Error(ctx, "refresh failed", "err", err)
		return err
	}

	log.Info(ctx, "token refreshed", "user_id", user.ID)
	return nil
}

// RequestPasswordReset asks the backend to send a reset link to email.
func (s *SessionManager) RequestPasswordReset(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if err := validate(ValidateEmail(email)); err != nil {
		return err
	}

	if err := s.api.ForgotPassword(ctx, models.ForgotPasswordRequest{Email: email}); err != nil {
		s.log.Warn(ctx, "password reset request failed", "op", "forgot_password", "email", email, "err", err)
		return err
	}
	return nil
}

// ResetPassword sets newPassword using the reset token from the email link.
// The session is not touched.
func (s *SessionManager) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	if err := validate(ValidatePassword(newPassword)); err != nil {
		return err
	}

	err := s.api.ResetPassword(ctx, models.ResetPasswordRequest{Token: resetToken, Password: newPassword})
	if err != nil {
		s.log.Warn(ctx, "password reset failed", "op", "reset_password", "err", err)
		return err
	}
	return nil
}

// UserRole returns the stored user's role; false when nobody is signed in.
func (s *SessionManager) UserRole(ctx context.Context) (models.Role, bool) {
	u := s.CurrentUser(ctx)
	if u == nil {
		return "", false
	}
	return u.Role, true
}

func (s *SessionManager) IsHost(ctx context.Context) bool {
	u := s.CurrentUser(ctx)
	return u != nil && u.IsHost()
}

func (s *SessionManager) IsGuest(ctx context.Context) bool {
	u := s.CurrentUser(ctx)
	return u != nil && u.IsGuest()
}

// Token returns the stored token or "" when there is none or the store
// cannot be read.
func (s *SessionManager) Token(ctx context.Context) string {
	v, err := s.store.Get(ctx, common.TokenKey)
	if err != nil {
		s.log.Error(ctx, "failed to read token", "err", err)
		return ""
	}
	return string(v)
}

// CurrentUser returns the stored profile, or nil when there is none or it
// cannot be read.
func (s *SessionManager) CurrentUser(ctx context.Context) *models.User {
	v, err := s.store.Get(ctx, common.UserKey)
	if err != nil {
		s.log.Error(ctx, "failed to read user", "err", err)
		return nil
	}
	if v == nil {
		return nil
	}

	var u models.User
	if err := json.Unmarshal(v, &u); err != nil {
		s.log.Error(ctx, "stored user unreadable", "err", err)
		return nil
	}
	return &u
}

// AuthHeaders returns the headers for an authenticated API call.
func (s *SessionManager) AuthHeaders(ctx context.Context) http.Header {
	return client.JSONHeaders(s.Token(ctx))
}

// State is a point-in-time view: authenticated means stored and unexpired.
// It never clears anything.
func (s *SessionManager) State(ctx context.Context) models.SessionState {
	user := s.CurrentUser(ctx)
	if user == nil || s.Token(ctx) == "" || s.IsTokenExpired(ctx) {
		return models.SessionState{}
	}
	return models.SessionState{IsAuthenticated: true, User: user}
}

// Restore is run once at start-up: a stored session that has already
// expired is logged out. It returns the resulting state.
func (s *SessionManager) Restore(ctx context.Context) models.SessionState {
	if s.IsAuthenticated(ctx) && s.IsTokenExpired(ctx) {
		s.log.Info(ctx, "stored session expired", "op", "restore")
		_ = s.Logout(ctx)
	}
	return s.State(ctx)
}

// Subscribe registers fn for session transitions (login, logout, expiry
// clean-up, token refresh). Call the returned function to unsubscribe.
func (s *SessionManager) Subscribe(fn Listener) (unsubscribe func()) {
	return s.listeners.subscribe(fn)
}

// SubscribeWithState is Subscribe followed by an immediate call of fn with
// the current State, so fn never has to read the session separately.
func (s *SessionManager) SubscribeWithState(ctx context.Context, fn Listener) (unsubscribe func()) {
	unsubscribe = s.listeners.subscribe(fn)
	fn(s.State(ctx))
	return unsubscribe
}

// adopt decodes token and persists it with its profile, then notifies.
func (s *SessionManager) adopt(ctx context.Context, token string) (*models.User, error) {
	claims, err := auth.Decode(token)
	if err != nil {
		return nil, err
	}
	user := claims.User()

	if err := s.persist(ctx, token, user); err != nil {
		return nil, err
	}
	return user, nil
}

// persist writes token and user as one pair and announces the new state.
func (s *SessionManager) persist(ctx context.Context, token string, user *models.User) error {
	profile, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}

	err = s.store.SetMany(ctx, map[string][]byte{
		common.TokenKey: []byte(token),
		common.UserKey:  profile,
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	s.listeners.publish(models.SessionState{IsAuthenticated: true, User: user})
	return nil
}
