package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/vivigo/internal/client/auth"
	"github.com/dmitrijs2005/vivigo/internal/client/guard"
)

// WhoAmI prints the stored profile.
func (a *App) WhoAmI(ctx context.Context) error {
	u := a.session.CurrentUser(ctx)
	if u == nil {
		fmt.Fprintln(a.out, "Not signed in.")
		return nil
	}

	fmt.Fprintf(a.out, "%s <%s>\n", u.Name, u.Email)
	fmt.Fprintf(a.out, "  id:   %s\n", u.ID)
	fmt.Fprintf(a.out, "  role: %s\n", roleLabel(u.Role))
	if u.Phone != "" {
		fmt.Fprintf(a.out, "  phone: %s\n", u.Phone)
	}
	if u.BirthDate != "" {
		fmt.Fprintf(a.out, "  born: %s\n", u.BirthDate)
	}
	if u.Language != "" {
		fmt.Fprintf(a.out, "  lang: %s\n", u.Language)
	}
	if u.PhotoURL != "" {
		fmt.Fprintf(a.out, "  photo: %s\n", u.PhotoURL)
	}
	return nil
}

// Status prints whether the session is valid and how long the token has left.
func (a *App) Status(ctx context.Context) error {
	st := a.session.State(ctx)
	token := a.session.Token(ctx)

	switch {
	case token == "":
		fmt.Fprintln(a.out, "No session.")
	case !st.IsAuthenticated:
		fmt.Fprintln(a.out, "Session expired. Log in again.")
	default:
		fmt.Fprintf(a.out, "Signed in as %s (%s).\n", st.User.Email, roleLabel(st.User.Role))
		if claims, err := auth.Decode(token); err == nil {
			left := claims.Remaining(a.now()).Truncate(time.Second)
			fmt.Fprintf(a.out, "Token expires in %s.\n", left)
		}
	}
	return nil
}

// Refresh renews the token when it is close to expiry.
func (a *App) Refresh(ctx context.Context) error {
	before := a.session.Token(ctx)
	if err := a.session.RefreshTokenIfNeeded(ctx); err != nil {
		return err
	}
	if a.session.Token(ctx) != before {
		fmt.Fprintln(a.out, "Token refreshed.")
	} else {
		fmt.Fprintln(a.out, "Token kept.")
	}
	return nil
}

// Open navigates to a view, following guard redirects.
func (a *App) Open(ctx context.Context, path string) error {
	d := a.nav.Navigate(ctx, path)
	if d.Allowed {
		fmt.Fprintf(a.out, "Opened %s (%s)\n", d.Route.Title, path)
		return nil
	}

	switch d.Redirect {
	case guard.HomePath:
		if d.Route.Access == guard.HostOnly {
			fmt.Fprintln(a.out, "Only hosts can open this page. Redirected to /.")
		} else {
			fmt.Fprintln(a.out, "Page not found. Redirected to /.")
		}
	default:
		fmt.Fprintf(a.out, "Please log in first. Redirected to %s\n", d.Redirect)
	}
	return nil
}
