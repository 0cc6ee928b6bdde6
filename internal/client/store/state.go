// Package store holds the client's session/user state: who is logged in,
// the verification flags and the active backend session. The state is
// mirrored to durable storage on every change and loaded back once at
// startup (hydration).
package store

import "github.com/dmitrijs2005/storefront/internal/client/models"

// State is the flat record owned by Store. HasHydrated is process-local and
// never persisted.
type State struct {
	User              *models.User `json:"user"`
	Token             string       `json:"token"`
	SessionID         string       `json:"sessionId"`
	IsUserVerified    bool         `json:"isUserVerified"`
	IsEmailVerified   bool         `json:"isEmailVerified"`
	IsUserLoggedIn    bool         `json:"isUserLoggedIn"`
	IsLoginDialogOpen bool         `json:"isLoginDialogOpen"`
	HasHydrated       bool         `json:"-"`
}

// InitialState is the logged-out state with no user and no session.
func InitialState() State {
	return State{}
}

// clone returns a copy that shares no pointers with s.
func (s State) clone() State {
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}
