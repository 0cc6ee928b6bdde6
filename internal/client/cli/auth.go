package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/storefront/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts the user for credentials and authenticates against the
// server. On success the user is recorded in the store (and so persisted).
// The password is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		printlnFn("Already logged in. Use 'logout' first.")
		return nil
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

	user, err := a.authService.Login(ctx, email, password)
	if err != nil {
		return a.report(ctx, "login", err)
	}

	printlnFn(fmt.Sprintf("Welcome, %s!", user.DisplayName()))
	return nil
}

// Logout ends the backend session and clears the stored user. The local
// state is cleared even when the server cannot be reached.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Not logged in.")
		return nil
	}

	if err := a.authService.Logout(ctx); err != nil {
		a.logger().Warn(ctx, "logout finished with error", "error", err)
	}
	printlnFn("Logged out.")
	return nil
}
