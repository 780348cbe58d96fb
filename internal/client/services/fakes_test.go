package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/vivigo/internal/client/auth/authtest"
	"github.com/dmitrijs2005/vivigo/internal/client/client"
	"github.com/dmitrijs2005/vivigo/internal/client/models"
	"github.com/dmitrijs2005/vivigo/internal/client/repositories/kv"
	"github.com/dmitrijs2005/vivigo/internal/common"
	"github.com/stretchr/testify/require"
)

// ---- fake client ----

// fakeClient implements client.Client and records the last request of each kind.
type fakeClient struct {
	mu sync.Mutex

	LoginRet    *models.TokenResponse
	LoginErr    error
	RegisterRet *models.User
	RegisterErr error
	RefreshRet  *models.TokenResponse
	RefreshErr  error
	ForgotErr   error
	ResetErr    error

	UserRet       *models.Profile
	UserErr       error
	ProfileRet    *models.Profile
	ProfileErr    error
	PasswordErr   error
	HostRet       *models.HostProfile
	HostErr       error
	HostUpdateErr error

	LastLogin    *models.LoginRequest
	LastRegister *models.RegisterRequest
	LastRefresh  string
	LastForgot   *models.ForgotPasswordRequest
	LastReset    *models.ResetPasswordRequest
	LastToken    string
	LastUserID   string
	LastProfile  *models.UpdateProfileRequest
	LastPassword *models.ChangePasswordRequest
	LastHost     *models.HostProfile

	Calls int
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) Login(_ context.Context, req models.LoginRequest) (*models.TokenResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls++
	f.LastLogin = &req
	if f.LoginErr != nil {
		return nil, f.LoginErr
	}
	return f.LoginRet, nil
}

func (f *fakeClient) Register(_ context.Context, req models.RegisterRequest) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls++
	f.LastRegister = &req
	if f.RegisterErr != nil {
		return nil, f.RegisterErr
	}
	return f.RegisterRet, nil
}

func (f *fakeClient) Refresh(_ context.Context, token string) (*models.TokenResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls++
	f.LastRefresh = token
	if f.RefreshErr != nil {
		return nil, f.RefreshErr
	}
	if f.RefreshRet == nil {
		return &models.TokenResponse{}, nil
	}
	return f.RefreshRet, nil
}

func (f *fakeClient) ForgotPassword(_ context.Context, req models.ForgotPasswordRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls++
	f.LastForgot = &req
	return f.ForgotErr
}

func (f *fakeClient) ResetPassword(_ context.Context, req models.ResetPasswordRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls++
	f.LastReset = &req
	return f.ResetErr
}

func (f *fakeClient) GetUser(_ context.Context, token, id string) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls++
	f.LastToken, f.LastUserID = token, id
	if f.UserErr != nil {
		return nil, f.UserErr
	}
	return f.UserRet, nil
}

func (f *fakeClient) UpdateProfile(_ context.Context, token string, req models.UpdateProfileRequest) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls++
	f.LastToken = token
	f.LastProfile = &req
	if f.ProfileErr != nil {
		return nil, f.ProfileErr
	}
	return f.ProfileRet, nil
}

func (f *fakeClient) ChangePassword(_ context.Context, token string, req models.ChangePasswordRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls++
	f.LastToken = token
	f.LastPassword = &req
	return f.PasswordErr
}

func (f *fakeClient) GetHostProfile(_ context.Context, token, id string) (*models.HostProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls++
	f.LastToken, f.LastUserID = token, id
	if f.HostErr != nil {
		return nil, f.HostErr
	}
	return f.HostRet, nil
}

func (f *fakeClient) UpdateHostProfile(_ context.Context, token, id string, req models.HostProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls++
	f.LastToken, f.LastUserID = token, id
	f.LastHost = &req
	return f.HostUpdateErr
}

// ---- fake store ----

// failingStore wraps a real store and fails selected operations.
type failingStore struct {
	*kv.MemoryRepository
	GetErr    error
	SetErr    error
	DeleteErr error
}

func (s *failingStore) Get(ctx context.Context, key string) ([]byte, error) {
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	return s.MemoryRepository.Get(ctx, key)
}

func (s *failingStore) SetMany(ctx context.Context, values map[string][]byte) error {
	if s.SetErr != nil {
		return s.SetErr
	}
	return s.MemoryRepository.SetMany(ctx, values)
}

func (s *failingStore) DeleteMany(ctx context.Context, keys ...string) error {
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	return s.MemoryRepository.DeleteMany(ctx, keys...)
}

var errStore = errors.New("store is broken")

// ---- helpers ----

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	api    *fakeClient
	store  *kv.MemoryRepository
	sm     *SessionManager
	events []models.SessionState
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	f := &fixture{api: &fakeClient{}, store: kv.NewMemoryRepository()}
	opts = append([]Option{WithClock(func() time.Time { return testNow })}, opts...)
	f.sm = NewSessionManager(f.api, f.store, opts...)
	f.sm.Subscribe(func(st models.SessionState) { f.events = append(f.events, st) })
	return f
}

// seed stores a session directly, bypassing Login.
func (f *fixture) seed(t *testing.T, u models.User, exp time.Time) string {
	t.Helper()
	token := authtest.Issue(t, u, exp)
	require.NoError(t, f.sm.store.SetMany(context.Background(), map[string][]byte{
		common.TokenKey: []byte(token),
		common.UserKey:  mustJSON(t, u),
	}))
	return token
}

// requirePaired fails unless token and profile are both present or both absent.
func requirePaired(t *testing.T, store KeyValueStore) {
	t.Helper()
	ctx := context.Background()
	tok, err := store.Get(ctx, common.TokenKey)
	require.NoError(t, err)
	usr, err := store.Get(ctx, common.UserKey)
	require.NoError(t, err)
	require.Equal(t, tok == nil, usr == nil, "token and user must be stored together")
}
