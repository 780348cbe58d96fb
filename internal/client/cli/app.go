package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dmitrijs2005/vivigo/internal/client/guard"
	"github.com/dmitrijs2005/vivigo/internal/client/models"
	"github.com/dmitrijs2005/vivigo/internal/logging"
)

// Session is the part of services.SessionManager the CLI drives.
type Session interface {
	Login(ctx context.Context, email, password string) (*models.User, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
	Logout(ctx context.Context) error
	CheckAuth(ctx context.Context) bool
	RefreshTokenIfNeeded(ctx context.Context) error
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, resetToken, newPassword string) error
	CurrentUser(ctx context.Context) *models.User
	Token(ctx context.Context) string
	State(ctx context.Context) models.SessionState
	Restore(ctx context.Context) models.SessionState
	SubscribeWithState(ctx context.Context, fn func(models.SessionState)) (unsubscribe func())

	LoadProfile(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (*models.User, error)
	ChangePassword(ctx context.Context, current, newPassword string) error
	HostProfile(ctx context.Context) (*models.HostProfile, error)
	UpdateHostProfile(ctx context.Context, hp models.HostProfile) error
}

// Navigator resolves a view path to an access decision.
type Navigator interface {
	Navigate(ctx context.Context, path string) guard.Decision
}

type App struct {
	session Session
	nav     Navigator
	log     logging.Logger
	reader  *bufio.Reader
	out     io.Writer
	now     func() time.Time

	// watch runs the background session watcher; replaced in tests.
	watch func(ctx context.Context, interval time.Duration)
}

func NewApp(session Session, nav Navigator, log logging.Logger, in io.Reader, out io.Writer) *App {
	a := &App{
		session: session,
		nav:     nav,
		log:     log.With("component", "cli"),
		reader:  bufio.NewReader(in),
		out:     out,
		now:     time.Now,
	}
	a.watch = a.StartSessionWatcher
	return a
}

// Run restores the stored session, starts the session watcher when
// watchInterval is positive and blocks in the REPL until the user exits or
// input ends. The watcher has stopped by the time Run returns.
func (a *App) Run(ctx context.Context, watchInterval time.Duration) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fmt.Fprintln(a.out, "Welcome to ViviGo CLI (type 'help' for commands)")
	a.session.Restore(ctx)

	unsubscribe := a.session.SubscribeWithState(ctx, a.onSessionChange)
	defer unsubscribe()

	var wg sync.WaitGroup
	if watchInterval > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.watch(ctx, watchInterval)
		}()
	}

	runREPL(ctx, a, func() string { return a.getStatus(ctx) }, a.reader)

	cancel()
	wg.Wait()
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	return a.session.State(ctx).IsAuthenticated
}

func (a *App) getStatus(ctx context.Context) string {
	st := a.session.State(ctx)
	if !st.IsAuthenticated {
		return ""
	}
	return fmt.Sprintf("(%s %s)", st.User.Email, roleLabel(st.User.Role))
}

func (a *App) onSessionChange(st models.SessionState) {
	if st.IsAuthenticated {
		fmt.Fprintf(a.out, "[session] signed in as %s\n", st.User.Email)
		return
	}
	fmt.Fprintln(a.out, "[session] signed out")
}

// StartSessionWatcher keeps the session fresh in the background: on every
// tick it refreshes a token close to expiry and clears an expired one.
func (a *App) StartSessionWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.watchTick(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) watchTick(ctx context.Context) {
	if !a.session.CheckAuth(ctx) {
		return
	}
	if err := a.session.RefreshTokenIfNeeded(ctx); err != nil {
		a.log.Warn(ctx, "background refresh failed", "err", err)
	}
}

func roleLabel(r models.Role) string {
	switch r {
	case models.RoleHost:
		return "host"
	case models.RoleGuest:
		return "guest"
	default:
		return string(r)
	}
}
