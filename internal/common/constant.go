// Package common contains shared constants and sentinel errors used across
// storefront client components.
package common

// Outbound request headers.
const (
	AuthorizationHeaderName = "Authorization"
	RequestIDHeaderName     = "X-Request-Id"
	StoreIDHeaderName       = "X-Store-Id"
)

// Keys of the durable metadata table.
const (
	// UserStoreKey holds the JSON snapshot of the session/user store.
	UserStoreKey = "storefront-user-store"
	// SessionIDKey holds the last session id opened by the store.
	SessionIDKey = "session_id"
)
