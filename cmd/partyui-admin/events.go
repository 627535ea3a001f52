package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/partyhub/party-ui-api/internal/data"
)

type listEventsOptions struct {
	Limit int
}

type eventCountsOptions struct {
	Window time.Duration
}

type purgeEventsOptions struct {
	OlderThan time.Duration
	Yes       bool
}

func parseListEventsFlags(args []string) (listEventsOptions, error) {
	var opts listEventsOptions
	fs := flag.NewFlagSet("auth-events", flag.ContinueOnError)
	fs.IntVar(&opts.Limit, "limit", 50, "maximum number of events to list")
	if err := fs.Parse(args); err != nil {
		return opts, fmt.Errorf("parse flags: %w", err)
	}
	return opts, nil
}

func runListAuthEvents(cmdCtx *commandContext, args []string) error {
	opts, err := parseListEventsFlags(args)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, 2*time.Minute)
	defer cancel()

	db, err := connectDB(cmdCtx)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			cmdCtx.Logger.Warn("db close failed", "error", closeErr)
		}
	}()

	events, err := data.NewAuthEventRepo(db).ListRecent(ctx, opts.Limit)
	if err != nil {
		return fmt.Errorf("list auth events: %w", err)
	}

	return printAuthEvents(os.Stdout, events)
}

func printAuthEvents(w io.Writer, events []data.AuthEventRecord) error {
	if len(events) == 0 {
		return writeln(w, "No auth events recorded")
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "CREATED\tKIND\tROLE\tPRINCIPAL\tDETAIL"); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, e := range events {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
			e.CreatedAt.Format(time.RFC3339), e.Kind, e.Role, e.PrincipalID, e.Detail); err != nil {
			return fmt.Errorf("write event row: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	return nil
}

func runAuthEventCounts(cmdCtx *commandContext, args []string) error {
	var opts eventCountsOptions
	fs := flag.NewFlagSet("auth-event-counts", flag.ContinueOnError)
	fs.DurationVar(&opts.Window, "window", 24*time.Hour, "how far back to count")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, 2*time.Minute)
	defer cancel()

	db, err := connectDB(cmdCtx)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			cmdCtx.Logger.Warn("db close failed", "error", closeErr)
		}
	}()

	counts, err := data.NewAuthEventRepo(db).CountByKind(ctx, time.Now().Add(-opts.Window))
	if err != nil {
		return fmt.Errorf("count auth events: %w", err)
	}

	return printEventCounts(os.Stdout, opts.Window, counts)
}

func printEventCounts(w io.Writer, window time.Duration, counts map[string]int64) error {
	if err := writef(w, "Auth events over the last %s:\n", window); err != nil {
		return err
	}
	if len(counts) == 0 {
		return writeln(w, "  (none)")
	}

	kinds := make([]string, 0, len(counts))
	for kind := range counts {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)

	for _, kind := range kinds {
		if err := writef(w, "  %-20s %d\n", kind, counts[kind]); err != nil {
			return err
		}
	}
	return nil
}

func runPurgeAuthEvents(cmdCtx *commandContext, args []string) error {
	var opts purgeEventsOptions
	fs := flag.NewFlagSet("purge-auth-events", flag.ContinueOnError)
	fs.DurationVar(&opts.OlderThan, "older-than", 90*24*time.Hour, "delete events older than this")
	fs.BoolVar(&opts.Yes, "yes", false, "skip confirmation")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	if !opts.Yes {
		return fmt.Errorf("refusing to purge without --yes (would delete events older than %s)", opts.OlderThan)
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, 2*time.Minute)
	defer cancel()

	db, err := connectDB(cmdCtx)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			cmdCtx.Logger.Warn("db close failed", "error", closeErr)
		}
	}()

	purged, err := data.NewAuthEventRepo(db).PurgeOlderThan(ctx, time.Now().Add(-opts.OlderThan))
	if err != nil {
		return fmt.Errorf("purge auth events: %w", err)
	}

	cmdCtx.Logger.Info("purge complete", "rows_deleted", purged)
	return nil
}
