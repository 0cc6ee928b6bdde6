package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/storefront/internal/client/client"
	"github.com/dmitrijs2005/storefront/internal/client/orders"
	"github.com/dmitrijs2005/storefront/internal/client/suggest"
	"github.com/dmitrijs2005/storefront/internal/client/tracking"
	"github.com/dmitrijs2005/storefront/internal/common"
)

// recentOrders is how many orders the account dashboard lists.
const recentOrders = 3

// now is a test seam for the clock used by the dashboard.
var now = time.Now

// userMessage turns an error into the line shown to the user.
func userMessage(err error) string {
	var apiErr *client.APIError
	switch {
	case errors.Is(err, common.ErrNotLoggedIn):
		return "Please log in first."
	case errors.Is(err, client.ErrUnauthorized):
		return "Your session has expired or the credentials are wrong. Please log in again."
	case errors.Is(err, client.ErrUnavailable):
		return tracking.MsgFailed
	case errors.As(err, &apiErr) && apiErr.Message != "":
		return apiErr.Message
	default:
		return tracking.MsgFailed
	}
}

// report logs err and prints a user-facing message for it. A superseded
// response is only logged. err is returned unchanged.
func (a *App) report(ctx context.Context, action string, err error) error {
	if errors.Is(err, common.ErrStaleResponse) {
		a.logger().Debug(ctx, "result discarded", "action", action)
		return err
	}
	a.logger().Warn(ctx, action+" failed", "error", err)
	printlnFn(userMessage(err))
	return err
}

// Account prints the dashboard: profile, verification flags, session and
// the most recent orders. A failed order fetch still shows the profile.
func (a *App) Account(ctx context.Context) error {
	st := a.store.State()
	if !st.IsUserLoggedIn {
		return a.report(ctx, "account", common.ErrNotLoggedIn)
	}

	list, err := a.orders.Fetch(ctx)
	if err != nil && !errors.Is(err, common.ErrNotLoggedIn) {
		a.logger().Warn(ctx, "could not load orders for dashboard", "error", err)
	}
	renderAccount(a.out, st, list, err, now())
	return nil
}

// Orders fetches the order list and prints the entries matching query.
func (a *App) Orders(ctx context.Context, query string) error {
	list, err := a.orders.Fetch(ctx)
	if err != nil {
		return a.report(ctx, "orders", err)
	}
	renderOrders(a.out, orders.Filter(list, query), query)
	return nil
}

// Refresh reloads the order list from the server.
func (a *App) Refresh(ctx context.Context) error {
	list, err := a.orders.Refresh(ctx)
	if err != nil {
		return a.report(ctx, "refresh", err)
	}
	printlnFn(fmt.Sprintf("Loaded %d order(s).", len(list)))
	return nil
}

// Track runs the guest tracking form. Missing arguments are prompted for.
func (a *App) Track(ctx context.Context, args []string) error {
	var number, email string
	if len(args) > 0 {
		number = args[0]
	} else {
		v, err := getSimpleText(a.reader, "Enter order number", a.out)
		if err != nil {
			return err
		}
		number = v
	}
	if len(args) > 1 {
		email = args[1]
	} else {
		v, err := getSimpleText(a.reader, "Enter email", a.out)
		if err != nil {
			return err
		}
		email = v
	}

	out := a.tracking.Submit(ctx, number, email)
	if !out.Found() {
		printlnFn(out.Message)
		return nil
	}
	renderOrder(a.out, out.Order)
	return nil
}

// Suggest prints product names matching query.
func (a *App) Suggest(_ context.Context, query string) error {
	names := suggest.Lookup(query, suggest.DefaultLimit)
	if len(names) == 0 {
		printlnFn("No suggestions.")
		return nil
	}
	for _, n := range names {
		printlnFn("  " + n)
	}
	return nil
}

// Session shows the active backend session, or opens/closes it.
func (a *App) Session(ctx context.Context, sub string) error {
	switch sub {
	case "", "show":
		if id := a.store.State().SessionID; id != "" {
			printlnFn("Active session:", id)
		} else {
			printlnFn("No active session.")
		}

	case "start":
		if err := a.store.StartSession(ctx); err != nil {
			return a.report(ctx, "session start", err)
		}
		printlnFn("Session started:", a.store.State().SessionID)

	case "end":
		if a.store.State().SessionID == "" {
			printlnFn("No active session.")
			return nil
		}
		if err := a.store.DestroySession(ctx); err != nil {
			return a.report(ctx, "session end", err)
		}
		printlnFn("Session ended.")

	default:
		printlnFn("Usage: session [start|end]")
	}
	return nil
}
