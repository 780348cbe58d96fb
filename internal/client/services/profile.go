package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/vivigo/internal/client/client"
	"github.com/dmitrijs2005/vivigo/internal/client/models"
)

// active returns the live session or ErrNoSession. An expired session is
// cleared on the way, as CheckAuth does.
func (s *SessionManager) active(ctx context.Context) (string, *models.User, error) {
	if !s.CheckAuth(ctx) {
		return "", nil, ErrNoSession
	}
	token, user := s.Token(ctx), s.CurrentUser(ctx)
	if token == "" || user == nil {
		return "", nil, ErrNoSession
	}
	return token, user, nil
}

// LoadProfile fetches the full profile from the backend and stores it in
// place of the token-derived one. The token is rewritten with it, so the
// pair stays consistent, and listeners see the enriched user.
func (s *SessionManager) LoadProfile(ctx context.Context) (*models.User, error) {
	log := s.log.With("op", "load_profile")

	token, user, err := s.active(ctx)
	if err != nil {
		return nil, err
	}

	p, err := s.api.GetUser(ctx, token, user.ID)
	if err != nil {
		log.Warn(ctx, "profile fetch failed", "user_id", user.ID, "err", err)
		return nil, err
	}

	merged := user.WithProfile(p)
	if err := s.persist(ctx, token, &merged); err != nil {
		log.Error(ctx, "profile save failed", "err", err)
		return nil, err
	}
	return &merged, nil
}

// UpdateProfile saves the editable profile fields. When the backend echoes
// the stored record it replaces the local profile; otherwise the local
// profile is left as it was.
func (s *SessionManager) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (*models.User, error) {
	log := s.log.With("op", "update_profile")

	req.Name = strings.TrimSpace(req.Name)
	if err := validate(ValidateName(req.Name)); err != nil {
		return nil, err
	}

	token, user, err := s.active(ctx)
	if err != nil {
		return nil, err
	}

	p, err := s.api.UpdateProfile(ctx, token, req)
	if err != nil {
		log.Warn(ctx, "profile update failed", "user_id", user.ID, "err", err)
		return nil, err
	}
	if p == nil {
		log.Info(ctx, "profile updated without echo", "user_id", user.ID)
		return user, nil
	}

	merged := user.WithProfile(p)
	if err := s.persist(ctx, token, &merged); err != nil {
		log.Error(ctx, "profile save failed", "err", err)
		return nil, err
	}
	log.Info(ctx, "profile updated", "user_id", user.ID)
	return &merged, nil
}

// ChangePassword replaces the password of the signed-in user. On success
// the session is ended and the user has to sign in again.
func (s *SessionManager) ChangePassword(ctx context.Context, current, newPassword string) error {
	log := s.log.With("op", "change_password")

	var missing []string
	if current == "" {
		missing = append(missing, MsgCurrentPasswordRequired)
	}
	if err := validate(missing, ValidatePassword(newPassword)); err != nil {
		return err
	}

	token, user, err := s.active(ctx)
	if err != nil {
		return err
	}

	err = s.api.ChangePassword(ctx, token, models.ChangePasswordRequest{Current: current, New: newPassword})
	if err != nil {
		log.Warn(ctx, "password change failed", "user_id", user.ID, "err", err)
		return err
	}

	log.Info(ctx, "password changed, signing out", "user_id", user.ID)
	return s.Logout(ctx)
}

// HostProfile returns the host data of the signed-in host. A host that has
// not filled it in yet gets (nil, nil).
func (s *SessionManager) HostProfile(ctx context.Context) (*models.HostProfile, error) {
	token, user, err := s.active(ctx)
	if err != nil {
		return nil, err
	}
	if !user.IsHost() {
		return nil, ErrNotHost
	}

	hp, err := s.api.GetHostProfile(ctx, token, user.ID)
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if err != nil {
		s.log.Warn(ctx, "host profile fetch failed", "op", "host_profile", "user_id", user.ID, "err", err)
		return nil, err
	}
	return hp, nil
}

func (s *SessionManager) UpdateHostProfile(ctx context.Context, hp models.HostProfile) error {
	token, user, err := s.active(ctx)
	if err != nil {
		return err
	}
	if !user.IsHost() {
		return ErrNotHost
	}

	if err := s.api.UpdateHostProfile(ctx, token, user.ID, hp); err != nil {
		s.log.Warn(ctx, "host profile update failed", "op", "update_host_profile", "user_id", user.ID, "err", err)
		return err
	}
	return nil
}
