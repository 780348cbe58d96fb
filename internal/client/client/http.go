package client

import (
	"bytes"
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/vivigo/internal/client/models"
	"github.com/dmitrijs2005/vivigo/internal/common"
	"github.com/dmitrijs2005/vivigo/internal/logging"
	"github.com/google/uuid"
)

const (
	pathLogin          = "/api/auth/login"
	pathRegister       = "/api/auth/register"
	pathRefresh        = "/api/auth/refresh"
	pathForgotPassword = "/api/auth/forgot-password"
	pathResetPassword  = "/api/auth/reset-password"

	pathUsers          = "/api/usuarios/"
	pathProfile        = "/api/usuarios/perfil"
	pathChangePassword = "/api/usuarios/contrasena"
	pathHostProfile    = "/api/usuarios/anfitrion/"
)

// Fallback messages used when the backend sends no mensaje.
const (
	msgLoginFailed    = "login failed"
	msgRegisterFailed = "registration failed"
	msgRefreshFailed  = "token refresh failed"
	msgForgotFailed   = "password reset request failed"
	msgResetFailed    = "password reset failed"

	msgUserFailed           = "could not load user profile"
	msgProfileFailed        = "profile update failed"
	msgPasswordChangeFailed = "password change failed"
	msgHostFailed           = "could not load host profile"
	msgHostUpdateFailed     = "host profile update failed"
)

// HTTPClient talks JSON to the backend REST API.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	log     logging.Logger
}

// NewHTTPClient returns a client for baseURL (e.g. "http://localhost:8080").
// timeout bounds each request; zero means no client-side limit.
func NewHTTPClient(baseURL string, timeout time.Duration, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

func (c *HTTPClient) Login(ctx context.Context, req models.LoginRequest) (*models.TokenResponse, error) {
	data, err := call[*models.TokenResponse](ctx, c, http.MethodPost, pathLogin, "", req, msgLoginFailed)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, &APIError{StatusCode: http.StatusOK, Message: msgLoginFailed}
	}
	return data, nil
}

func (c *HTTPClient) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	data, err := call[*models.User](ctx, c, http.MethodPost, pathRegister, "", req, msgRegisterFailed)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, &APIError{StatusCode: http.StatusOK, Message: msgRegisterFailed}
	}
	return data, nil
}

// Refresh exchanges token for a new one. A 2xx response without data
// yields an empty TokenResponse rather than an error.
func (c *HTTPClient) Refresh(ctx context.Context, token string) (*models.TokenResponse, error) {
	data, err := call[*models.TokenResponse](ctx, c, http.MethodPost, pathRefresh, token, nil, msgRefreshFailed)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return &models.TokenResponse{}, nil
	}
	return data, nil
}

func (c *HTTPClient) ForgotPassword(ctx context.Context, req models.ForgotPasswordRequest) error {
	_, err := call[json.RawMessage](ctx, c, http.MethodPost, pathForgotPassword, "", req, msgForgotFailed)
	return err
}

func (c *HTTPClient) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error {
	_, err := call[json.RawMessage](ctx, c, http.MethodPost, pathResetPassword, "", req, msgResetFailed)
	return err
}

// GetUser fetches the stored profile of user id.
func (c *HTTPClient) GetUser(ctx context.Context, token, id string) (*models.Profile, error) {
	data, err := call[*models.Profile](ctx, c, http.MethodGet, pathUsers+url.PathEscape(id), token, nil, msgUserFailed)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, &APIError{StatusCode: http.StatusOK, Message: msgUserFailed}
	}
	return data, nil
}

// UpdateProfile saves the caller's editable fields. The backend may answer
// without data, in which case the result is nil and no error.
func (c *HTTPClient) UpdateProfile(ctx context.Context, token string, req models.UpdateProfileRequest) (*models.Profile, error) {
	return call[*models.Profile](ctx, c, http.MethodPut, pathProfile, token, req, msgProfileFailed)
}

func (c *HTTPClient) ChangePassword(ctx context.Context, token string, req models.ChangePasswordRequest) error {
	_, err := call[json.RawMessage](ctx, c, http.MethodPut, pathChangePassword, token, req, msgPasswordChangeFailed)
	return err
}

func (c *HTTPClient) GetHostProfile(ctx context.Context, token, id string) (*models.HostProfile, error) {
	data, err := call[*models.HostProfile](ctx, c, http.MethodGet, pathHostProfile+url.PathEscape(id), token, nil, msgHostFailed)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return &models.HostProfile{}, nil
	}
	return data, nil
}

func (c *HTTPClient) UpdateHostProfile(ctx context.Context, token, id string, req models.HostProfile) error {
	_, err := call[json.RawMessage](ctx, c, http.MethodPut, pathHostProfile+url.PathEscape(id), token, req, msgHostUpdateFailed)
	return err
}

// call sends body to path with method and unwraps the response envelope.
func call[T any](ctx context.Context, c *HTTPClient, method, path, token string, body any, fallback string) (T, error) {
	var (
		zero T
		env  models.Envelope[T]
	)

	status, err := c.do(ctx, method, path, token, body, &env)
	if err != nil {
		return zero, err
	}

	if status < 200 || status >= 300 || env.Error {
		return zero, &APIError{
			StatusCode: status,
			Message:    cmp.Or(env.Message, fallback),
			Errors:     env.Errors,
		}
	}
	return env.Data, nil
}

// do sends a JSON request and decodes the response into out. Transport
// failures and unreadable 2xx bodies wrap ErrUnavailable; an unreadable
// non-2xx body leaves out untouched so the caller reports the status.
func (c *HTTPClient) do(ctx context.Context, method, path, token string, body any, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, fmt.Errorf("%w: build request: %v", ErrUnavailable, err)
	}

	requestID := uuid.NewString()
	req.Header = JSONHeaders(token)
	req.Header.Set(common.RequestIDHeaderName, requestID)

	log := c.log.With("method", method, "path", path, "request_id", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn(ctx, "request failed", "err", err)
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	log.Debug(ctx, "response received", "status", resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	if err := json.Unmarshal(raw, out); err != nil {
		if ok {
			return resp.StatusCode, fmt.Errorf("%w: parse response: %v", ErrUnavailable, err)
		}
		log.Debug(ctx, "unparseable error body", "err", err)
	}
	return resp.StatusCode, nil
}

// JSONHeaders are the headers sent on every API call, with a Bearer
// Authorization header when token is not empty.
func JSONHeaders(token string) http.Header {
	h := make(http.Header)
	h.Set("Content-Type", "application/json")
	h.Set("Accept", "application/json")
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
