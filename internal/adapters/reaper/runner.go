// Package reaper runs the auth event retention sweep.
package reaper

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/partyhub/party-ui-api/internal/data"
	"github.com/partyhub/party-ui-api/internal/service"
)

// Runner constructs the retention service around the Postgres event
// repository and runs the sweep loop.
type Runner struct {
	retention *service.RetentionService
	logger    *slog.Logger
}

// RunnerOptions holds the dependencies for creating a Runner.
type RunnerOptions struct {
	DB        *sql.DB
	Retention time.Duration
	Interval  time.Duration
	Logger    *slog.Logger

	// Optional dependency injection for testing/decoupling
	Events service.AuthEventPurger
}

// NewRunner creates a new retention runner with the given options.
func NewRunner(opts RunnerOptions) (*Runner, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	events := opts.Events
	if events == nil {
		if opts.DB == nil {
			return nil, errors.New("database connection is required")
		}
		events = data.NewAuthEventRepo(opts.DB)
	}

	retention, err := service.NewRetentionService(service.RetentionServiceOptions{
		Events:    events,
		Retention: opts.Retention,
		Interval:  opts.Interval,
		Logger:    opts.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("wire retention service: %w", err)
	}

	return &Runner{retention: retention, logger: opts.Logger}, nil
}

// Run starts the sweep loop and runs until the context is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	r.logger.InfoContext(ctx, "starting retention runner")
	return r.retention.Run(ctx)
}
