package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"
)

const sessionKeyPattern = "session:*"

type clearSessionsOptions struct {
	DryRun bool
	Yes    bool
}

func runListSessions(cmdCtx *commandContext, _ []string) error {
	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, 2*time.Minute)
	defer cancel()

	client, err := connectRedis(cmdCtx)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := client.Close(); closeErr != nil {
			cmdCtx.Logger.Warn("redis close failed", "error", closeErr)
		}
	}()

	if err := writeln(os.Stdout, "Cached sessions:"); err != nil {
		return err
	}

	total := 0
	iter := client.Scan(ctx, 0, sessionKeyPattern, 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		ttl, ttlErr := client.TTL(ctx, key).Result()
		if ttlErr != nil {
			if printErr := writef(os.Stdout, "  %s (TTL: error: %v)\n", key, ttlErr); printErr != nil {
				return printErr
			}
		} else if printErr := writef(os.Stdout, "  %s (TTL: %s)\n", key, ttl.Round(time.Second)); printErr != nil {
			return printErr
		}
		total++
	}
	if iterErr := iter.Err(); iterErr != nil {
		return fmt.Errorf("scan sessions: %w", iterErr)
	}

	return writef(os.Stdout, "\nTotal sessions: %d\n", total)
}

func runClearSessions(cmdCtx *commandContext, args []string) error {
	var opts clearSessionsOptions
	fs := flag.NewFlagSet("clear-sessions", flag.ContinueOnError)
	fs.BoolVar(&opts.DryRun, "dry-run", false, "report what would be deleted without deleting")
	fs.BoolVar(&opts.Yes, "yes", false, "skip confirmation")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	if !opts.DryRun && !opts.Yes {
		return fmt.Errorf("refusing to clear sessions without --yes (every user will be re-resolved)")
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, 2*time.Minute)
	defer cancel()

	client, err := connectRedis(cmdCtx)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := client.Close(); closeErr != nil {
			cmdCtx.Logger.Warn("redis close failed", "error", closeErr)
		}
	}()

	var total, deleted int64
	iter := client.Scan(ctx, 0, sessionKeyPattern, 100).Iterator()
	for iter.Next(ctx) {
		total++
		if opts.DryRun {
			continue
		}
		if delErr := client.Del(ctx, iter.Val()).Err(); delErr != nil {
			cmdCtx.Logger.Warn("delete session key failed", "key", iter.Val(), "error", delErr)
			continue
		}
		deleted++
	}
	if iterErr := iter.Err(); iterErr != nil {
		return fmt.Errorf("scan sessions: %w", iterErr)
	}

	if opts.DryRun {
		return writef(os.Stdout, "Dry-run: would delete %d sessions\n", total)
	}

	cmdCtx.Logger.Info("clear sessions complete", "deleted", deleted, "scanned", total)
	return nil
}
