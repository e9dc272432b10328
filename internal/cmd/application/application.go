// Package application provides the application interface for dupap commands.
//
// The Application interface defines the contract between the application layer and
// command implementations, enabling dependency injection and testability.
//
// Usage in Commands:
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            r, err := app.Reconciler()
//	            if err != nil {
//	                return err
//	            }
//	            report, err := r.Run(cmd.Context())
//	            // ... render report
//	        },
//	    }
//	}
//
// Testing with Mocks:
//
//	mock := &application.Mock{
//	    StoreFunc: func() expiry.Store {
//	        return &expiry.MemoryStore{}
//	    },
//	}
//	cmd := NewCommand(mock)
package application

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/dupap/pkg/expiry"
	"github.com/agentstation/dupap/pkg/reconcile"
)

// Reconciler runs or previews a reconciliation pass. *reconcile.Engine
// implements it.
type Reconciler interface {
	Run(ctx context.Context) (*reconcile.Report, error)
	Preview(ctx context.Context) (*reconcile.Plan, *reconcile.Report, error)
}

// Application provides the application interface that commands need.
// The App struct from cmd/dupap/app implements this interface.
type Application interface {
	// Reconciler returns the engine, building the XIQ client on first use.
	// It fails when the API token is missing.
	Reconciler() (Reconciler, error)

	// Store returns the quarantine store.
	Store() expiry.Store

	// Now returns the current time.
	Now() time.Time

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (json, yaml, table, wide).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}

var _ Reconciler = (*reconcile.Engine)(nil)
