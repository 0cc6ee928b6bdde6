// Package tracking implements the guest order lookup form.
package tracking

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/logging"
)

const (
	MsgMissingInput = "Please enter both order number and email address."
	MsgNotFound     = "Order not found. Please check your order number and email address."
	MsgFailed       = "Something went wrong. Please try again later."
)

// Tracker looks an order up by number and email. A nil order with a nil
// error means no such order.
type Tracker interface {
	TrackGuestOrder(ctx context.Context, orderNumber, email string) (*models.Order, error)
}

// Outcome is what the form shows after a submit: either Order, or Message.
type Outcome struct {
	Order   *models.Order
	Message string
}

// Found reports whether the lookup produced an order.
func (o Outcome) Found() bool {
	return o.Order != nil
}

type Form struct {
	tracker Tracker
	log     logging.Logger
}

func NewForm(tracker Tracker, log logging.Logger) *Form {
	if log == nil {
		log = logging.Nop()
	}
	return &Form{tracker: tracker, log: log.With("component", "tracking")}
}

// Submit validates the input and runs one lookup. Empty input never
// reaches the tracker. Errors are logged and reported with MsgFailed.
func (f *Form) Submit(ctx context.Context, orderNumber, email string) Outcome {
	orderNumber = strings.TrimSpace(orderNumber)
	email = strings.TrimSpace(email)
	if orderNumber == "" || email == "" {
		return Outcome{Message: MsgMissingInput}
	}

	order, err := f.tracker.TrackGuestOrder(ctx, orderNumber, email)
	if err != nil {
		f.log.Error(ctx, "order lookup failed", "order_number", orderNumber, "error", err)
		return Outcome{Message: MsgFailed}
	}
	if order == nil {
		return Outcome{Message: MsgNotFound}
	}
	return Outcome{Order: order}
}
