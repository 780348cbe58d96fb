package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/vivigo/internal/client/models"
	"github.com/dmitrijs2005/vivigo/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for the account details and creates the account. It
// does not sign in.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	phone, err := getSimpleText(a.reader, "Enter phone (optional)", a.out)
	if err != nil {
		return err
	}
	role, err := getSimpleText(a.reader, "Are you signing up as a host? (y/N)", a.out)
	if err != nil {
		return err
	}

	req := models.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: string(password),
		Phone:    phone,
		Role:     models.RoleGuest,
	}
	if isYes(role) {
		req.Role = models.RoleHost
	}

	user, err := a.session.Register(ctx, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Account created for %s. You can log in now.\n", user.Email)
	return nil
}

// Login prompts for credentials and signs in.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.session.Login(ctx, email, string(password))
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Welcome, %s!\n", user.Name)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	return a.session.Logout(ctx)
}

// ForgotPassword asks the backend to email a reset link.
func (a *App) ForgotPassword(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	if err := a.session.RequestPasswordReset(ctx, email); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "If the account exists, a reset link is on its way.")
	return nil
}

// ResetPassword completes a reset with the token from the emailed link.
func (a *App) ResetPassword(ctx context.Context) error {
	token, err := getSimpleText(a.reader, "Enter reset token", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.session.ResetPassword(ctx, token, string(password)); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Password updated.")
	return nil
}

func isYes(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "s", "si", "sí":
		return true
	}
	return false
}
