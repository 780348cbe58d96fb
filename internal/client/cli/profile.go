package cli

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/vivigo/internal/client/models"
	"github.com/dmitrijs2005/vivigo/internal/common"
)

// getPasswordAs is a test seam for labelled password prompts.
var getPasswordAs = GetPasswordAs

var errPasswordMismatch = errors.New("passwords do not match")

// Profile loads the full profile from the backend and prints it.
func (a *App) Profile(ctx context.Context) error {
	if _, err := a.session.LoadProfile(ctx); err != nil {
		return err
	}
	return a.WhoAmI(ctx)
}

// EditProfile prompts for each editable field. An empty answer keeps the
// current value.
func (a *App) EditProfile(ctx context.Context) error {
	u := a.session.CurrentUser(ctx)
	if u == nil {
		fmt.Fprintln(a.out, "Not signed in.")
		return nil
	}

	req := models.UpdateProfileRequest{}
	fields := []struct {
		label   string
		current string
		dst     *string
	}{
		{"Name", u.Name, &req.Name},
		{"Phone", u.Phone, &req.Phone},
		{"Birth date (YYYY-MM-DD)", u.BirthDate, &req.BirthDate},
		{"Language", u.Language, &req.Language},
		{"Photo URL", u.PhotoURL, &req.Photo},
	}
	for _, f := range fields {
		v, err := getSimpleText(a.reader, withCurrent(f.label, f.current), a.out)
		if err != nil {
			return err
		}
		*f.dst = cmp.Or(v, f.current)
	}

	if _, err := a.session.UpdateProfile(ctx, req); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Profile updated.")
	return nil
}

// ChangePassword asks for the current password and the new one twice. On
// success the session ends.
func (a *App) ChangePassword(ctx context.Context) error {
	current, err := getPasswordAs("Current password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(current)

	next, err := getPasswordAs("New password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(next)

	confirm, err := getPasswordAs("Repeat new password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if string(next) != string(confirm) {
		return errPasswordMismatch
	}

	if err := a.session.ChangePassword(ctx, string(current), string(next)); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Password changed. Log in again with the new password.")
	return nil
}

// HostProfile prints the host data of the signed-in host.
func (a *App) HostProfile(ctx context.Context) error {
	hp, err := a.session.HostProfile(ctx)
	if err != nil {
		return err
	}
	if hp == nil {
		fmt.Fprintln(a.out, "No host profile yet. Use 'edit-host' to create one.")
		return nil
	}

	fmt.Fprintf(a.out, "About me:      %s\n", hp.Description)
	fmt.Fprintf(a.out, "Experience:    %s\n", hp.Experience)
	fmt.Fprintf(a.out, "Response time: %s\n", hp.ResponseTime)
	fmt.Fprintf(a.out, "Services:      %s\n", strings.Join(hp.Services, ", "))
	if hp.BankAccount != "" {
		fmt.Fprintf(a.out, "Bank account:  %s\n", maskAccount(hp.BankAccount))
	}
	return nil
}

// EditHostProfile prompts for the host data, starting from what is stored.
func (a *App) EditHostProfile(ctx context.Context) error {
	hp, err := a.session.HostProfile(ctx)
	if err != nil {
		return err
	}
	if hp == nil {
		hp = &models.HostProfile{}
	}

	next := *hp
	services := strings.Join(hp.Services, ", ")
	fields := []struct {
		label   string
		current string
		dst     *string
	}{
		{"About me", hp.Description, &next.Description},
		{"Experience", hp.Experience, &next.Experience},
		{"Response time", hp.ResponseTime, &next.ResponseTime},
		{"Services (comma separated)", services, &services},
		{"Bank account", maskAccount(hp.BankAccount), &next.BankAccount},
	}
	for _, f := range fields {
		v, err := getSimpleText(a.reader, withCurrent(f.label, f.current), a.out)
		if err != nil {
			return err
		}
		if v != "" {
			*f.dst = v
		}
	}
	next.Services = splitList(services)

	if err := a.session.UpdateHostProfile(ctx, next); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Host profile updated.")
	return nil
}

func withCurrent(label, current string) string {
	if current == "" {
		return "Enter " + strings.ToLower(label[:1]) + label[1:]
	}
	return fmt.Sprintf("Enter %s [%s]", strings.ToLower(label[:1])+label[1:], current)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// maskAccount keeps the last four characters visible.
func maskAccount(acc string) string {
	if len(acc) <= 4 {
		return acc
	}
	return strings.Repeat("*", len(acc)-4) + acc[len(acc)-4:]
}
