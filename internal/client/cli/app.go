package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/storefront/internal/client/client"
	"github.com/dmitrijs2005/storefront/internal/client/config"
	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/orders"
	"github.com/dmitrijs2005/storefront/internal/client/services"
	"github.com/dmitrijs2005/storefront/internal/client/store"
	"github.com/dmitrijs2005/storefront/internal/client/tracking"
	"github.com/dmitrijs2005/storefront/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// pingTimeout bounds a single connectivity check.
const pingTimeout = 3 * time.Second

// sessionStore is the part of store.Store the commands use.
type sessionStore interface {
	State() store.State
	StartSession(ctx context.Context) error
	DestroySession(ctx context.Context) error
}

type orderSource interface {
	Fetch(ctx context.Context) ([]models.Order, error)
	Refresh(ctx context.Context) ([]models.Order, error)
}

type trackForm interface {
	Submit(ctx context.Context, orderNumber, email string) tracking.Outcome
}

type App struct {
	config      *config.Config
	log         logging.Logger
	authService services.AuthService
	store       sessionStore
	orders      orderSource
	tracking    trackForm
	reader      *bufio.Reader
	out         io.Writer
	closers     []func() error

	modeMu sync.RWMutex
	mode   Mode
}

// NewApp opens the local database, hydrates the store from it and wires the
// services. The caller must Close the app.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	if log == nil {
		log = logging.Nop()
	}

	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}

	app := &App{
		config: c,
		log:    log,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
	app.closers = append(app.closers, db.Close)

	api := client.NewHTTPClient(c.ServerURL, c.StoreID, c.RequestTimeout, log)

	st := store.New(api, store.NewMetadataPersister(db), log)
	if err := st.Hydrate(ctx); err != nil {
		log.Warn(ctx, "starting with empty state", "error", err)
	}
	unsubscribe := st.Subscribe(func(s store.State) {
		log.Debug(context.Background(), "store updated",
			"logged_in", s.IsUserLoggedIn, "session_id", s.SessionID)
	})
	app.closers = append(app.closers, func() error {
		unsubscribe()
		return nil
	})

	var cache orders.Cache
	if c.RedisAddr != "" {
		rc := orders.NewRedisCache(c.RedisAddr, c.StoreID, c.OrderCacheTTL)
		app.closers = append(app.closers, rc.Close)
		cache = rc
	} else {
		cache = orders.NewMemoryCache(c.OrderCacheTTL)
	}
	orderStore := orders.NewStore(api, st, cache, log)

	app.store = st
	app.orders = orderStore
	app.tracking = tracking.NewForm(orderStore, log)
	app.authService = services.NewAuthService(api, st, orderStore, log)
	return app, nil
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) Mode() Mode {
	a.modeMu.RLock()
	defer a.modeMu.RUnlock()
	return a.mode
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.modeMu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.modeMu.Unlock()

	if changed {
		a.logger().Info(ctx, fmt.Sprintf("Switched to %s mode", mode))
	}
}

func (a *App) logger() logging.Logger {
	if a.log == nil {
		return logging.Nop()
	}
	return a.log
}

// Run opens a backend session if none was restored, starts the
// connectivity watcher and blocks in the REPL until the user exits or ctx
// is cancelled.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	printlnFn("Welcome to the storefront CLI (type 'help' for commands)")

	if a.store.State().SessionID == "" {
		if err := a.store.StartSession(ctx); err != nil {
			a.logger().Warn(ctx, "could not start session", "error", err)
		}
	}

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.store != nil && a.store.State().IsUserLoggedIn
}

// getStatus is shown in the prompt: the user's display name and the mode.
func (a *App) getStatus() string {
	s := ""
	if a.store != nil {
		if name := a.store.State().User.DisplayName(); name != "" {
			s = name + " "
		}
	}
	if m := a.Mode(); m != "" {
		s += string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// StartOnlineStatusWatcher pings the backend once immediately and then on
// every tick, switching Mode accordingly. It returns when ctx is done.
// A non-positive interval falls back to pingTimeout.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = pingTimeout
	}
	a.checkOnline(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	err := a.authService.Ping(pctx)
	cancel()

	if ctx.Err() != nil {
		return
	}
	if err != nil {
		a.setMode(ctx, ModeOffline)
	} else {
		a.setMode(ctx, ModeOnline)
	}
}
