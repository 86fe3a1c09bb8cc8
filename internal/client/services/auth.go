// Package services contains application services for the Billed client.
// This file defines the authenticator: login form handling for both roles,
// session persistence and role-based landing.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/billed/internal/client/client"
	"github.com/dmitrijs2005/billed/internal/client/models"
	"github.com/dmitrijs2005/billed/internal/client/repositories/session"
	"github.com/dmitrijs2005/billed/internal/common"
	"github.com/dmitrijs2005/billed/internal/logging"
	"github.com/go-playground/validator/v10"
)

// Routes the client navigates between.
const (
	RouteLogin          = "/"
	RouteEmployeeBills  = "#employee/bills"
	RouteNewBill        = "#employee/bill/new"
	RouteAdminDashboard = "#admin/dashboard"
)

// Navigator switches the active view.
type Navigator interface {
	Navigate(route string)
}

// NavigatorFunc adapts a plain function to Navigator.
type NavigatorFunc func(route string)

func (f NavigatorFunc) Navigate(route string) { f(route) }

// LandingRoute returns the route a user of type t lands on after login.
func LandingRoute(t models.UserType) string {
	if t == models.UserTypeAdmin {
		return RouteAdminDashboard
	}
	return RouteEmployeeBills
}

// LoginForm is what the login page submits.
type LoginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Authenticator defines the login operations of the CLI.
//
// Contract:
//   - SubmitEmployee / SubmitAdmin: validate the form, try the store login,
//     persist the session and navigate to the role's landing route. A store
//     login failure is logged and never blocks access.
//   - Current: the session of the logged-in user.
//   - Logout: forget the session and go back to the login page.
type Authenticator interface {
	SubmitEmployee(ctx context.Context, form LoginForm) error
	SubmitAdmin(ctx context.Context, form LoginForm) error
	Current(ctx context.Context) (*models.Session, error)
	Logout(ctx context.Context) error
}

type authenticator struct {
	store    client.Store
	sessions session.Store
	nav      Navigator
	log      logging.Logger

	mu      sync.Mutex
	current *models.Session
}

// NewAuthenticator builds an Authenticator. store may be client.NotConfigured.
func NewAuthenticator(store client.Store, sessions session.Store, nav Navigator, log logging.Logger) Authenticator {
	return &authenticator{
		store:    store,
		sessions: sessions,
		nav:      nav,
		log:      log.With("component", "auth"),
	}
}

func (a *authenticator) SubmitEmployee(ctx context.Context, form LoginForm) error {
	return a.submit(ctx, models.UserTypeEmployee, form)
}

func (a *authenticator) SubmitAdmin(ctx context.Context, form LoginForm) error {
	return a.submit(ctx, models.UserTypeAdmin, form)
}

type loginResult struct {
	jwt string
	err error
}

func (a *authenticator) submit(ctx context.Context, t models.UserType, form LoginForm) error {
	if err := validate.Struct(form); err != nil {
		return fmt.Errorf("%w: %w", common.ErrValidation, err)
	}

	s := &models.Session{
		Type:     t,
		Email:    form.Email,
		Password: form.Password,
		Status:   models.SessionStatusConnected,
	}

	if client.IsConfigured(a.store) {
		res := a.login(ctx, form)
		if res.err != nil {
			a.log.Warn(ctx, "store login failed, continuing with local session", "email", form.Email, "error", res.err)
		} else {
			s.JWT = res.jwt
		}
	}

	if err := saveSession(ctx, a.sessions, s); err != nil {
		return err
	}

	a.mu.Lock()
	a.current = s
	a.mu.Unlock()

	a.log.Info(ctx, "logged in", "type", t, "email", s.Email, "token", s.JWT != "")
	a.nav.Navigate(LandingRoute(t))
	return nil
}

func (a *authenticator) login(ctx context.Context, form LoginForm) loginResult {
	creds, err := json.Marshal(models.Credentials{Email: form.Email, Password: form.Password})
	if err != nil {
		return loginResult{err: err}
	}
	resp, err := a.store.Login(ctx, string(creds))
	if err != nil {
		return loginResult{err: err}
	}
	if resp == nil {
		return loginResult{err: errors.New("empty login response")}
	}
	return loginResult{jwt: resp.JWT}
}

// Current returns the in-memory session, falling back to the persisted one
// (without a token) after a restart.
func (a *authenticator) Current(ctx context.Context) (*models.Session, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.current != nil {
		s := *a.current
		return &s, nil
	}

	s, err := loadSession(ctx, a.sessions)
	if err != nil {
		return nil, err
	}
	a.current = s
	c := *s
	return &c, nil
}

func (a *authenticator) Logout(ctx context.Context) error {
	if err := a.sessions.RemoveItem(ctx, common.UserSessionKey); err != nil {
		return fmt.Errorf("remove session: %w", err)
	}

	a.mu.Lock()
	a.current = nil
	a.mu.Unlock()

	a.nav.Navigate(RouteLogin)
	return nil
}

func saveSession(ctx context.Context, sessions session.Store, s *models.Session) error {
	b, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := sessions.SetItem(ctx, common.UserSessionKey, string(b)); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// loadSession reads the persisted session. It returns common.ErrNoSession
// when nobody is logged in.
func loadSession(ctx context.Context, sessions session.Store) (*models.Session, error) {
	v, ok, err := sessions.GetItem(ctx, common.UserSessionKey)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !ok {
		return nil, common.ErrNoSession
	}

	var s models.Session
	if err := json.Unmarshal([]byte(v), &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &s, nil
}
