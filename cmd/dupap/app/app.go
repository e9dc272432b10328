// Package app provides the application context and dependency management
// for the dupap CLI. It centralizes configuration, logging and the
// construction of the XIQ client, the quarantine store and the engine.
package app

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/dupap/internal/cmd/application"
	"github.com/agentstation/dupap/internal/xiq"
	"github.com/agentstation/dupap/pkg/errors"
	"github.com/agentstation/dupap/pkg/expiry"
	"github.com/agentstation/dupap/pkg/reconcile"
)

// App represents the dupap application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Lazily built collaborators
	mu     sync.Mutex
	remote reconcile.Remote
	store  expiry.Store
	engine *reconcile.Engine
	clock  reconcile.Clock
}

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Now returns the current time from the configured clock.
func (a *App) Now() time.Time {
	if a.clock != nil {
		return a.clock.Now()
	}
	return time.Now()
}

// Store returns the quarantine store, opening the configured file on first use.
func (a *App) Store() expiry.Store {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.store == nil {
		a.store = expiry.NewFileStore(a.config.StorePath, a.logger)
	}
	return a.store
}

// Reconciler returns the engine, building the XIQ client on first use.
// A missing token fails here, before any remote call.
func (a *App) Reconciler() (application.Reconciler, error) {
	store := a.Store()

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.engine != nil {
		return a.engine, nil
	}

	if a.remote == nil {
		client, err := xiq.New(a.config.XIQ("dupap/"+a.version), a.logger)
		if err != nil {
			return nil, err
		}
		a.remote = client
	}

	opts := []reconcile.Option{reconcile.WithLogger(a.logger)}
	if a.clock != nil {
		opts = append(opts, reconcile.WithClock(a.clock))
	}

	engine, err := reconcile.NewEngine(a.remote, store, a.config.Reconcile(), opts...)
	if err != nil {
		return nil, errors.WrapResource("create", "engine", "", err)
	}
	a.engine = engine
	return engine, nil
}

// Shutdown releases resources held by the application. A run holds no
// background work, so there is nothing to stop beyond logging the event.
func (a *App) Shutdown(_ context.Context) error {
	a.logger.Debug().Msg("Shutting down")
	return nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithRemote sets the XIQ client (useful for testing).
func WithRemote(remote reconcile.Remote) Option {
	return func(a *App) error {
		a.remote = remote
		return nil
	}
}

// WithStore sets the quarantine store (useful for testing).
func WithStore(store expiry.Store) Option {
	return func(a *App) error {
		a.store = store
		return nil
	}
}

// WithClock sets the time source (useful for testing).
func WithClock(clock reconcile.Clock) Option {
	return func(a *App) error {
		a.clock = clock
		return nil
	}
}

var _ application.Application = (*App)(nil)
