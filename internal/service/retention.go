package service

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"
)

// AuthEventPurger removes auth events older than a cutoff. Implemented by
// the Postgres event repository.
type AuthEventPurger interface {
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// RetentionServiceOptions groups dependencies for RetentionService.
type RetentionServiceOptions struct {
	Events    AuthEventPurger // Required: event purger
	Retention time.Duration   // How long events are kept. Zero means the default.
	Interval  time.Duration   // Sweep cadence. Zero means the default.
	Logger    *slog.Logger    // Optional: structured logger
	Now       func() time.Time
}

const (
	defaultEventRetention     = 90 * 24 * time.Hour
	defaultRetentionSweep     = time.Hour
	minimumRetentionSweepTime = time.Minute
)

// RetentionService periodically deletes auth events that have aged out of
// the configured retention window.
type RetentionService struct {
	events    AuthEventPurger
	retention time.Duration
	interval  time.Duration
	logger    *slog.Logger
	now       func() time.Time
}

// NewRetentionService constructs a new RetentionService.
func NewRetentionService(opts RetentionServiceOptions) (*RetentionService, error) {
	if opts.Events == nil {
		return nil, errors.New("event purger is required")
	}
	if opts.Retention <= 0 {
		opts.Retention = defaultEventRetention
	}
	if opts.Interval < minimumRetentionSweepTime {
		opts.Interval = defaultRetentionSweep
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &RetentionService{
		events:    opts.Events,
		retention: opts.Retention,
		interval:  opts.Interval,
		logger:    opts.Logger.With("component", "retention_service"),
		now:       opts.Now,
	}, nil
}

// Run starts the sweep loop and runs until the context is cancelled.
// Returns nil on graceful shutdown (context.Canceled), error otherwise.
func (s *RetentionService) Run(ctx context.Context) error {
	s.logger.InfoContext(ctx, "starting retention sweep",
		"retention", s.retention,
		"interval", s.interval,
	)

	// Jitter so multiple replicas do not all sweep at the same instant
	s.waitWithJitter(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	if err := s.Sweep(ctx); err != nil && !isContextError(err) {
		s.logger.ErrorContext(ctx, "initial retention sweep failed", "error", err)
	}

	for {
		select {
		case <-ctx.Done():
			s.logger.InfoContext(ctx, "retention sweep stopping", "reason", ctx.Err())
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()

		case <-ticker.C:
			if err := s.Sweep(ctx); err != nil && !isContextError(err) {
				// Keep running despite sweep failures
				s.logger.ErrorContext(ctx, "retention sweep failed", "error", err)
			}
		}
	}
}

// Sweep deletes every event older than the retention window once.
func (s *RetentionService) Sweep(ctx context.Context) error {
	cutoff := s.now().Add(-s.retention)
	purged, err := s.events.PurgeOlderThan(ctx, cutoff)
	if err != nil {
		return err
	}
	if purged > 0 {
		s.logger.InfoContext(ctx, "purged expired auth events", "count", purged, "cutoff", cutoff)
	}
	return nil
}

// waitWithJitter adds a random delay up to 10% of the interval.
func (s *RetentionService) waitWithJitter(ctx context.Context) {
	maxJitter := int64(s.interval / 10)
	if maxJitter <= 0 {
		return
	}

	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// If crypto/rand fails, skip jitter rather than failing startup
		s.logger.WarnContext(ctx, "failed to generate jitter, skipping", "error", err)
		return
	}

	jitterNanos := binary.BigEndian.Uint64(buf[:]) % uint64(maxJitter)
	jitter := time.Duration(int64(jitterNanos)) // #nosec G115 - bounded by maxJitter which is int64

	select {
	case <-time.After(jitter):
	case <-ctx.Done():
	}
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
