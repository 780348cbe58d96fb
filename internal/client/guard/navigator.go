package guard

import (
	"context"
	"net/url"

	"github.com/dmitrijs2005/vivigo/internal/logging"
)

const (
	HomePath  = "/"
	LoginPath = "/login"
)

// Session is what the navigator needs from the session manager.
type Session interface {
	CheckAuth(ctx context.Context) bool
	IsHost(ctx context.Context) bool
}

// Decision is the outcome of a navigation. When Allowed is false the
// caller should go to Redirect instead.
type Decision struct {
	Allowed  bool
	Route    Route
	Redirect string
}

type Navigator struct {
	session Session
	log     logging.Logger
}

func NewNavigator(session Session, log logging.Logger) *Navigator {
	return &Navigator{session: session, log: log.With("component", "guard")}
}

// Navigate checks path against the route table. Unknown paths redirect
// home. Protected routes call CheckAuth, which also clears an expired
// session; host routes additionally require the host role.
func (n *Navigator) Navigate(ctx context.Context, path string) Decision {
	route, ok := Match(path)
	if !ok {
		return Decision{Redirect: HomePath}
	}

	switch route.Access {
	case Authenticated, HostOnly:
		if !n.session.CheckAuth(ctx) {
			n.log.Info(ctx, "navigation requires sign-in", "path", path)
			return Decision{Route: route, Redirect: LoginRedirect(path)}
		}
		if route.Access == HostOnly && !n.session.IsHost(ctx) {
			n.log.Info(ctx, "navigation requires host role", "path", path)
			return Decision{Route: route, Redirect: HomePath}
		}
	}

	return Decision{Allowed: true, Route: route}
}

// LoginRedirect builds the login URL that returns to path after sign-in.
func LoginRedirect(path string) string {
	return LoginPath + "?" + url.Values{"returnUrl": {path}}.Encode()
}
