package app

import (
	"context"
	"time"

	"github.com/five82/thinkspace/internal/kv"
	"github.com/five82/thinkspace/internal/logging"
	"github.com/five82/thinkspace/internal/state"
)

const (
	defaultHealthInterval = 10 * time.Second
	healthPingTimeout     = 2 * time.Second
	maxBackoff            = time.Minute
)

// StartHealthMonitor launches a background goroutine that pings the storage
// backend and reports the result to store. Checks back off while the backend
// stays unreachable. It returns immediately.
func StartHealthMonitor(ctx context.Context, store *state.Store, backend kv.Store, interval time.Duration, log *logging.Logger) {
	if interval <= 0 {
		interval = defaultHealthInterval
	}
	go func() {
		for {
			failures := checkHealth(ctx, store, backend, log)
			timer := time.NewTimer(calculateBackoff(failures, interval))
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
		}
	}()
}

// checkHealth pings once, reports the outcome and logs transitions between
// reachable and unreachable. It returns the consecutive failure count.
func checkHealth(ctx context.Context, store *state.Store, backend kv.Store, log *logging.Logger) int {
	pingCtx, cancel := context.WithTimeout(ctx, healthPingTimeout)
	defer cancel()

	before := store.Health()
	err := kv.Ping(pingCtx, backend)
	if ctx.Err() != nil {
		return before.ConsecutiveFailures
	}
	store.ReportHealth(err)

	switch {
	case err != nil && before.ConsecutiveFailures == 0:
		log.Warnf("storage unreachable: %v", err)
	case err == nil && before.ConsecutiveFailures > 0:
		log.Infof("storage reachable again after %d failed checks", before.ConsecutiveFailures)
	}
	return store.Health().ConsecutiveFailures
}

// calculateBackoff doubles the interval for each consecutive failure, capped
// at maxBackoff.
func calculateBackoff(failures int, interval time.Duration) time.Duration {
	if failures <= 0 {
		return interval
	}
	backoff := interval
	for i := 0; i < failures; i++ {
		backoff *= 2
		if backoff >= maxBackoff {
			return maxBackoff
		}
	}
	return backoff
}
