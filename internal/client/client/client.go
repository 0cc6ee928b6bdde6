package client

import (
	"context"

	"github.com/dmitrijs2005/storefront/internal/client/models"
)

// Client is the storefront backend as seen by the CLI. Calls are scoped to a
// single store id fixed at construction time. Each call is attempted once.
type Client interface {
	OpenSession(ctx context.Context) Result[string]
	EndSession(ctx context.Context, sessionID string) Result[struct{}]
	Login(ctx context.Context, email string, password []byte) Result[*models.User]
	ListOrders(ctx context.Context, accessToken string) Result[[]models.Order]
	TrackOrder(ctx context.Context, orderNumber, email string) Result[*models.Order]
	Ping(ctx context.Context) error
}
