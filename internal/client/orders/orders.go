// Package orders is the client's order state: the logged-in user's order
// list (fetched once, then cached) and the guest lookup by order number and
// email.
package orders

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/storefront/internal/client/client"
	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/store"
	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/logging"
)

// API is the part of client.Client used for orders.
type API interface {
	ListOrders(ctx context.Context, accessToken string) client.Result[[]models.Order]
	TrackOrder(ctx context.Context, orderNumber, email string) client.Result[*models.Order]
}

// Session exposes the current login state.
type Session interface {
	State() store.State
}

// Store fetches and caches orders. Each list request takes a new
// generation; a response whose generation was overtaken by a later Fetch,
// Refresh or Reset is dropped with common.ErrStaleResponse and not cached.
type Store struct {
	mu  sync.Mutex
	gen uint64

	api     API
	session Session
	cache   Cache
	log     logging.Logger
}

func NewStore(api API, session Session, cache Cache, log logging.Logger) *Store {
	if cache == nil {
		cache = NewMemoryCache(0)
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Store{api: api, session: session, cache: cache, log: log.With("component", "orders")}
}

// credentials returns the cache key and bearer token of the logged-in user.
func (s *Store) credentials() (key, token string, err error) {
	st := s.session.State()
	if !st.IsUserLoggedIn || st.User == nil {
		return "", "", common.ErrNotLoggedIn
	}

	token = st.Token
	if token == "" {
		token = st.User.AccessToken
	}
	if token == "" {
		return "", "", common.ErrNotLoggedIn
	}

	key = st.User.ID
	if key == "" {
		key = st.User.Email
	}
	return key, token, nil
}

// Fetch returns the user's orders, from cache when present.
func (s *Store) Fetch(ctx context.Context) ([]models.Order, error) {
	key, token, err := s.credentials()
	if err != nil {
		return nil, err
	}

	cached, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.Warn(ctx, "order cache read failed", "error", err)
	}
	if ok {
		return cached, nil
	}

	return s.load(ctx, key, token)
}

// Refresh drops the cached list and fetches it again.
func (s *Store) Refresh(ctx context.Context) ([]models.Order, error) {
	key, token, err := s.credentials()
	if err != nil {
		return nil, err
	}
	if err := s.cache.Delete(ctx, key); err != nil {
		s.log.Warn(ctx, "order cache delete failed", "error", err)
	}
	return s.load(ctx, key, token)
}

// Reset invalidates in-flight fetches and drops the current user's cached
// list. Call it before the user is cleared.
func (s *Store) Reset(ctx context.Context) {
	s.mu.Lock()
	s.gen++
	s.mu.Unlock()

	key, _, err := s.credentials()
	if err != nil {
		return
	}
	if err := s.cache.Delete(ctx, key); err != nil {
		s.log.Warn(ctx, "order cache delete failed", "error", err)
	}
}

func (s *Store) load(ctx context.Context, key, token string) ([]models.Order, error) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	list, err := s.api.ListOrders(ctx, token).Unwrap()
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	s.mu.Lock()
	current := s.gen == gen
	s.mu.Unlock()
	if !current {
		s.log.Debug(ctx, "dropping superseded order list", "user", key)
		return nil, common.ErrStaleResponse
	}

	if err := s.cache.Set(ctx, key, list); err != nil {
		s.log.Warn(ctx, "order cache write failed", "error", err)
	}
	return list, nil
}

// TrackGuestOrder looks an order up by number and email without a login.
// An unknown order is (nil, nil); other failures are returned.
func (s *Store) TrackGuestOrder(ctx context.Context, orderNumber, email string) (*models.Order, error) {
	order, err := s.api.TrackOrder(ctx, orderNumber, email).Unwrap()
	if errors.Is(err, common.ErrorNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return order, nil
}
