package store

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/storefront/internal/client/client"
	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/logging"
)

// SessionAPI is the part of client.Client the store needs.
type SessionAPI interface {
	OpenSession(ctx context.Context) client.Result[string]
	EndSession(ctx context.Context, sessionID string) client.Result[struct{}]
}

// persistTimeout bounds a single snapshot write.
const persistTimeout = 5 * time.Second

// Store is the session/user state container. Only the methods below mutate
// state; each mutation is written to the Persister and then announced to
// subscribers. Persist failures are logged, never returned.
//
// Network calls run without the lock. gen is bumped by ClearUser and by
// every session request, so a response that lands after a newer request
// or a reset is discarded with common.ErrStaleResponse.
type Store struct {
	mu        sync.Mutex
	state     State
	gen       uint64
	listeners map[int]func(State)
	nextID    int

	hydrateOnce sync.Once

	api       SessionAPI
	persister Persister
	log       logging.Logger
}

func New(api SessionAPI, persister Persister, log logging.Logger) *Store {
	if log == nil {
		log = logging.Nop()
	}
	return &Store{
		state:     InitialState(),
		listeners: make(map[int]func(State)),
		api:       api,
		persister: persister,
		log:       log.With("component", "store"),
	}
}

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Subscribe registers fn to be called with the new state after every
// mutation. The returned func removes it.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// update applies fn under the lock, then persists and notifies. fn returns
// false to signal that nothing changed, which skips both.
func (s *Store) update(fn func(st *State) bool) {
	s.mu.Lock()
	if !fn(&s.state) {
		s.mu.Unlock()
		return
	}
	snap := s.state.clone()
	listeners := make([]func(State), 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	s.persist(snap)
	for _, l := range listeners {
		l(snap.clone())
	}
}

func (s *Store) persist(snap State) {
	if s.persister == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := s.persister.Save(ctx, snap); err != nil {
		s.log.Warn(ctx, "failed to persist store snapshot", "error", err)
	}
}

// SetUser stores user and token and marks the user as logged in. Neither is
// validated.
func (s *Store) SetUser(user *models.User, token string) {
	if user != nil {
		u := *user
		user = &u
	}
	s.update(func(st *State) bool {
		st.User = user
		st.Token = token
		st.IsUserLoggedIn = true
		return true
	})
}

// ClearUser resets everything to InitialState (logout). HasHydrated is kept
// and any in-flight session request becomes stale.
func (s *Store) ClearUser() {
	s.update(func(st *State) bool {
		hydrated := st.HasHydrated
		*st = InitialState()
		st.HasHydrated = hydrated
		s.gen++
		return true
	})
}

func (s *Store) SetIsUserVerified(v bool) {
	s.update(func(st *State) bool {
		st.IsUserVerified = v
		return true
	})
}

func (s *Store) SetIsEmailVerified(v bool) {
	s.update(func(st *State) bool {
		st.IsEmailVerified = v
		return true
	})
}

func (s *Store) SetIsLoginDialogOpen(v bool) {
	s.update(func(st *State) bool {
		st.IsLoginDialogOpen = v
		return true
	})
}

// ForceLoggedIn sets IsUserLoggedIn without supplying a user, so the store
// can end up logged in with User == nil. Callers that have a user must use
// SetUser instead.
func (s *Store) ForceLoggedIn() {
	s.update(func(st *State) bool {
		st.IsUserLoggedIn = true
		return true
	})
}

// SetHasHydrated records whether the durable snapshot has been loaded.
// Once true it stays true; a later false is ignored.
func (s *Store) SetHasHydrated(v bool) {
	s.update(func(st *State) bool {
		if st.HasHydrated && !v {
			return false
		}
		st.HasHydrated = v
		return true
	})
}

// Hydrate loads the persisted snapshot into memory and marks the store as
// hydrated. Only the first call does anything. A load error is returned but
// the store is still marked hydrated, starting from its current state.
// Restoring a snapshot makes any in-flight session request stale.
func (s *Store) Hydrate(ctx context.Context) error {
	var loadErr error
	s.hydrateOnce.Do(func() {
		var saved *State
		if s.persister != nil {
			saved, loadErr = s.persister.Load(ctx)
		}
		if loadErr != nil {
			s.log.Warn(ctx, "failed to load store snapshot", "error", loadErr)
		}

		if saved != nil {
			s.mu.Lock()
			restored := saved.clone()
			restored.HasHydrated = s.state.HasHydrated
			s.state = restored
			s.gen++
			s.mu.Unlock()
			s.log.Debug(ctx, "store rehydrated", "logged_in", restored.IsUserLoggedIn, "session_id", restored.SessionID)
		}

		s.SetHasHydrated(true)
	})
	return loadErr
}

// StartSession opens a backend session and records its id in state and in
// durable storage. On failure the backend error is returned and SessionID
// is left unchanged. There is no retry.
func (s *Store) StartSession(ctx context.Context) error {
	gen := s.beginRequest()

	res := s.api.OpenSession(ctx)
	if !res.Success {
		return res.Err
	}

	if !s.applyIfCurrent(gen, func(st *State) { st.SessionID = res.Data }) {
		s.log.Info(ctx, "dropping superseded session start", "session_id", res.Data)
		return common.ErrStaleResponse
	}

	if s.persister != nil {
		if err := s.persister.SaveSessionID(ctx, res.Data); err != nil {
			s.log.Warn(ctx, "failed to persist session id", "error", err)
		}
	}
	s.log.Info(ctx, "session started", "session_id", res.Data)
	return nil
}

// DestroySession ends the active backend session. Without an active session
// it does nothing. On success only the in-memory SessionID is cleared; the
// stored session id key is left as is.
func (s *Store) DestroySession(ctx context.Context) error {
	s.mu.Lock()
	id := s.state.SessionID
	if id == "" {
		s.mu.Unlock()
		return nil
	}
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	res := s.api.EndSession(ctx, id)
	if !res.Success {
		return res.Err
	}

	if !s.applyIfCurrent(gen, func(st *State) {
		if st.SessionID == id {
			st.SessionID = ""
		}
	}) {
		return common.ErrStaleResponse
	}
	s.log.Info(ctx, "session ended", "session_id", id)
	return nil
}

func (s *Store) beginRequest() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	return s.gen
}

// applyIfCurrent runs fn as a mutation only if no reset or newer request
// happened since gen was taken.
func (s *Store) applyIfCurrent(gen uint64, fn func(st *State)) bool {
	applied := false
	s.update(func(st *State) bool {
		if s.gen != gen {
			return false
		}
		fn(st)
		applied = true
		return true
	})
	return applied
}
