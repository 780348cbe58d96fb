package client

import (
	"context"

	"github.com/dmitrijs2005/vivigo/internal/client/models"
)

// Client is the Backend Auth API contract.
type Client interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.TokenResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
	Refresh(ctx context.Context, token string) (*models.TokenResponse, error)
	ForgotPassword(ctx context.Context, req models.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error

	// Profile endpoints; all require the caller's token.
	GetUser(ctx context.Context, token, id string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, token string, req models.UpdateProfileRequest) (*models.Profile, error)
	ChangePassword(ctx context.Context, token string, req models.ChangePasswordRequest) error
	GetHostProfile(ctx context.Context, token, id string) (*models.HostProfile, error)
	UpdateHostProfile(ctx context.Context, token, id string, req models.HostProfile) error
}
