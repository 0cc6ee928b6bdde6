// Package services contains application services for the storefront client.
// This file defines the authentication service: login against the backend,
// logout with session and cache teardown, and the liveness check.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/client/client"
	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/logging"
)

var ErrEmptyCredentials = errors.New("email and password are required")

// UserStore is the part of store.Store touched by login and logout.
type UserStore interface {
	SetUser(user *models.User, token string)
	ClearUser()
	DestroySession(ctx context.Context) error
}

// OrderCache is reset on logout so the next user starts clean.
type OrderCache interface {
	Reset(ctx context.Context)
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: authenticate against the server and record the user in the store.
//   - Logout: end the backend session, drop cached orders and clear the user.
//   - Ping: check server liveness.
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	Login(ctx context.Context, email string, password []byte) (*models.User, error)
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
}

type authService struct {
	client client.Client
	users  UserStore
	orders OrderCache
	log    logging.Logger
}

// NewAuthService constructs an AuthService. orders may be nil.
func NewAuthService(c client.Client, users UserStore, orders OrderCache, log logging.Logger) AuthService {
	if log == nil {
		log = logging.Nop()
	}
	return &authService{client: c, users: users, orders: orders, log: log.With("component", "auth")}
}

// Login sends the credentials and, on success, stores the returned user
// together with its access token. The password buffer is wiped before
// returning.
func (a *authService) Login(ctx context.Context, email string, password []byte) (*models.User, error) {
	defer common.WipeByteArray(password)

	email = strings.TrimSpace(email)
	if email == "" || len(password) == 0 {
		return nil, ErrEmptyCredentials
	}

	user, err := a.client.Login(ctx, email, password).Unwrap()
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}
	if user.AccessToken == "" {
		return nil, fmt.Errorf("login error: %w", common.ErrInvalidToken)
	}

	a.users.SetUser(user, user.AccessToken)
	a.log.Info(ctx, "user logged in", "user_id", user.ID)
	return user, nil
}

// Logout always leaves the store logged out. A failure to end the backend
// session is returned after the local state has been cleared.
func (a *authService) Logout(ctx context.Context) error {
	if a.orders != nil {
		a.orders.Reset(ctx)
	}

	sessErr := a.users.DestroySession(ctx)
	if sessErr != nil {
		a.log.Warn(ctx, "failed to end session", "error", sessErr)
	}

	a.users.ClearUser()
	a.log.Info(ctx, "user logged out")

	if sessErr != nil {
		return fmt.Errorf("end session: %w", sessErr)
	}
	return nil
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}
