package app

import (
	"context"
	"fmt"
	"time"

	"github.com/five82/ledgerdeck/internal/logging"
	"github.com/five82/ledgerdeck/internal/source"
	"github.com/five82/ledgerdeck/internal/state"
)

const (
	// maxBackoff caps the delay between polls while the API is failing.
	maxBackoff     = 30 * time.Second
	requestTimeout = 15 * time.Second
)

// calculateBackoff returns base·2^failures, capped at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	d := base
	for range failures {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}

// StartPoller launches a background goroutine that refetches whatever the UI
// is focused on at a fixed cadence, backing off while fetches fail. It returns
// immediately.
func StartPoller(ctx context.Context, store *state.Store, sources map[string]source.Source, interval time.Duration, logger logging.Logger) {
	if interval <= 0 {
		return
	}
	go func() {
		delay := interval
		for {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}

			failures, err := refresh(ctx, store, sources)
			if err != nil {
				logger.Warn("poll failed", "err", err, "failures", failures)
			}
			delay = calculateBackoff(failures, interval)
		}
	}()
}

// refresh refetches the focused resource, dropping cached pages first. It
// returns the resource's consecutive failure count after the fetch.
func refresh(ctx context.Context, store *state.Store, sources map[string]source.Source) (int, error) {
	focus, ok := store.Focus()
	if !ok {
		return 0, nil
	}
	src, ok := sources[focus.Resource]
	if !ok {
		return 0, fmt.Errorf("no source for %q", focus.Resource)
	}

	src.Invalidate()
	seq := store.Begin(focus.Resource)

	reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	page, err := src.List(reqCtx, focus.Query)
	store.Update(focus.Resource, seq, page, err)

	return store.Snapshot(focus.Resource).ConsecutiveFailures, err
}
