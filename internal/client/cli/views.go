package cli

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/store"
)

const dateLayout = "2006-01-02"

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func orderTable(w io.Writer, list []models.Order) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ORDER\tSTATUS\tDATE\tITEMS\tTOTAL")
	for i := range list {
		o := &list[i]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%.2f\n", o.ID, o.Status, o.CreatedAt.Format(dateLayout), o.ItemCount(), o.Total)
	}
	tw.Flush()
}

// renderOrders prints the order list page. query is echoed when non-empty.
func renderOrders(w io.Writer, list []models.Order, query string) {
	if len(list) == 0 {
		if query != "" {
			fmt.Fprintf(w, "No orders match %q.\n", query)
		} else {
			fmt.Fprintln(w, "No orders found.")
		}
		return
	}
	orderTable(w, list)
}

// renderOrder prints a single order with its line items.
func renderOrder(w io.Writer, o *models.Order) {
	fmt.Fprintf(w, "Order %s\n", o.ID)
	fmt.Fprintf(w, "  Status:  %s\n", o.Status)
	if !o.CreatedAt.IsZero() {
		fmt.Fprintf(w, "  Placed:  %s\n", o.CreatedAt.Format(dateLayout))
	}
	if o.TrackingNumber != "" {
		fmt.Fprintf(w, "  Tracking: %s\n", o.TrackingNumber)
	}
	fmt.Fprintf(w, "  Total:   %.2f\n", o.Total)

	if len(o.Items) == 0 {
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  ITEM\tQTY\tPRICE")
	for _, it := range o.Items {
		fmt.Fprintf(tw, "  %s\t%d\t%.2f\n", it.Name, it.Quantity, it.Price)
	}
	tw.Flush()
}

// tokenLine describes the access token expiry relative to now.
func tokenLine(u *models.User, token string, now time.Time) string {
	exp, ok := models.TokenExpiry(token)
	if !ok {
		exp, ok = u.AccessTokenExpiry()
	}
	switch {
	case !ok:
		return "unknown"
	case !exp.After(now):
		return fmt.Sprintf("expired %s", exp.Format(time.RFC3339))
	default:
		return fmt.Sprintf("%s (in %s)", exp.Format(time.RFC3339), exp.Sub(now).Round(time.Minute))
	}
}

// renderAccount prints the account dashboard. ordersErr is non-nil when
// the order list could not be loaded.
func renderAccount(w io.Writer, st store.State, list []models.Order, ordersErr error, now time.Time) {
	u := st.User
	fmt.Fprintln(w, "Account")
	if u != nil {
		fmt.Fprintf(w, "  Name:   %s\n", u.DisplayName())
		fmt.Fprintf(w, "  Email:  %s\n", u.Email)
		if u.Role != "" {
			fmt.Fprintf(w, "  Role:   %s\n", u.Role)
		}
	} else {
		fmt.Fprintln(w, "  (no profile loaded)")
	}
	fmt.Fprintf(w, "  Verified user:  %s\n", yesNo(st.IsUserVerified))
	fmt.Fprintf(w, "  Verified email: %s\n", yesNo(st.IsEmailVerified))
	if st.SessionID != "" {
		fmt.Fprintf(w, "  Session: %s\n", st.SessionID)
	}
	fmt.Fprintf(w, "  Token expires: %s\n", tokenLine(u, st.Token, now))

	fmt.Fprintln(w)
	if ordersErr != nil {
		fmt.Fprintln(w, "Orders: unavailable")
		return
	}
	fmt.Fprintf(w, "Orders: %d\n", len(list))
	if len(list) == 0 {
		return
	}

	recent := append([]models.Order(nil), list...)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	if len(recent) > recentOrders {
		recent = recent[:recentOrders]
	}
	orderTable(w, recent)
}
