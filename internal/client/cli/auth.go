package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/billed/internal/client/client"
	"github.com/dmitrijs2005/billed/internal/client/services"
	"github.com/dmitrijs2005/billed/internal/common"
)

// getSimpleText, getPassword and getMultiline are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
)

// Login prompts for credentials and logs in as an employee.
func (a *App) Login(ctx context.Context) error {
	return a.login(ctx, a.auth.SubmitEmployee)
}

// LoginAdmin prompts for credentials and logs in as an administrator.
func (a *App) LoginAdmin(ctx context.Context) error {
	return a.login(ctx, a.auth.SubmitAdmin)
}

// login reads the form and hands it to submit. The Authenticator never
// fails on a rejected store login, so an error here is either a form error
// or a local one. The password is wiped before returning.
func (a *App) login(ctx context.Context, submit func(context.Context, services.LoginForm) error) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := submit(ctx, services.LoginForm{Email: email, Password: string(password)}); err != nil {
		if errors.Is(err, common.ErrValidation) {
			fmt.Fprintln(a.out, "Please enter a valid email and password")
		} else {
			a.log.Error(ctx, "login failed", "error", err)
		}
		return err
	}

	s, err := a.auth.Current(ctx)
	if err != nil {
		return err
	}
	a.session = s

	if s.JWT == "" && client.IsConfigured(a.store) {
		fmt.Fprintf(a.out, "Logged in as %s (local session)\n", s.Email)
	} else {
		fmt.Fprintf(a.out, "Logged in as %s\n", s.Email)
	}
	return nil
}

// Logout forgets the persisted session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		a.log.Error(ctx, "logout failed", "error", err)
		return err
	}
	a.session = nil
	a.lastList = nil
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
