// Package connect opens the favorites store connection, retrying until the backend answers.
package connect

import (
	"context"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/starfav/internal/logger"
)

// RetryOptions defines connection retry behavior.
type RetryOptions struct {
	ConnectTimeout time.Duration // Total time allowed for connection attempts (ex: 30s)
	RetryInterval  time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	MaxWait        time.Duration // max wait between retries (ex: 10s)
	PingTimeout    time.Duration // timeout for each ping attempt (ex: 2s)
	WarnThreshold  int           // warn after this many attempts
}

// PingFunc checks whether a backend is reachable.
type PingFunc func(ctx context.Context) error

// attemptLogger handles all connection logging for one backend.
type attemptLogger struct {
	logger  logger.Logger
	backend string
	addr    string
}

func (al *attemptLogger) logStart(timeout time.Duration) {
	al.logger.Info("connecting to store",
		logger.String("backend", al.backend),
		logger.String("addr", al.addr),
		logger.Duration("timeout", timeout))
}

func (al *attemptLogger) logSuccess(attempts int, elapsed time.Duration) {
	if attempts > 1 {
		al.logger.Warn("connected to store after retry",
			logger.String("backend", al.backend),
			logger.String("addr", al.addr),
			logger.Int("attempts", attempts),
			logger.Duration("elapsed", elapsed))
		return
	}
	al.logger.Info("connected to store",
		logger.String("backend", al.backend),
		logger.String("addr", al.addr))
}

func (al *attemptLogger) logTimeout(attempts int, timeout time.Duration, err error) {
	al.logger.Error("store unavailable - failed to connect after timeout",
		logger.String("backend", al.backend),
		logger.String("addr", al.addr),
		logger.Int("attempts", attempts),
		logger.Duration("timeout", timeout),
		logger.Error(err))
}

func (al *attemptLogger) logRetry(attempt int, remaining, nextRetry time.Duration, warnThreshold int, err error) {
	switch {
	case remaining < 10*time.Second:
		al.logger.Error("store still down - retrying but timeout approaching",
			logger.String("backend", al.backend),
			logger.Int("attempt", attempt),
			logger.Duration("remaining", remaining),
			logger.Duration("next_retry_in", nextRetry),
			logger.Error(err))
	case attempt <= warnThreshold:
		al.logger.Warn("store connection failed, retrying",
			logger.String("backend", al.backend),
			logger.Int("attempt", attempt),
			logger.Duration("next_retry_in", nextRetry),
			logger.Error(err))
	default:
		al.logger.Error("store still unavailable - connection attempts failing",
			logger.String("backend", al.backend),
			logger.Int("attempt", attempt),
			logger.Duration("next_retry_in", nextRetry),
			logger.Error(err))
	}
}

// Validate ensures all retry settings are usable.
func (o RetryOptions) Validate() error {
	if o.ConnectTimeout <= 0 {
		return fmt.Errorf("ConnectTimeout must be > 0, got %v", o.ConnectTimeout)
	}
	if o.RetryInterval <= 0 {
		return fmt.Errorf("RetryInterval must be > 0, got %v", o.RetryInterval)
	}
	if o.MaxWait <= 0 {
		return fmt.Errorf("MaxWait must be > 0, got %v", o.MaxWait)
	}
	if o.PingTimeout <= 0 {
		return fmt.Errorf("PingTimeout must be > 0, got %v", o.PingTimeout)
	}
	if o.WarnThreshold < 0 {
		return fmt.Errorf("WarnThreshold must be >= 0, got %d", o.WarnThreshold)
	}
	return nil
}

// WaitReady pings until the backend answers or ConnectTimeout runs out.
// The wait between attempts doubles each time, capped at MaxWait.
func WaitReady(ctx context.Context, backend, addr string, ping PingFunc, opts RetryOptions, log logger.Logger) error {
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("invalid %s retry options: %w", backend, err)
	}

	al := &attemptLogger{logger: log, backend: backend, addr: addr}

	ctx, cancel := context.WithTimeout(ctx, opts.ConnectTimeout)
	defer cancel()

	al.logStart(opts.ConnectTimeout)
	attempt := 0
	wait := opts.RetryInterval

	for {
		attempt++

		pingCtx, pingCancel := context.WithTimeout(ctx, opts.PingTimeout)
		err := ping(pingCtx)
		pingCancel()

		if err == nil {
			al.logSuccess(attempt, opts.ConnectTimeout-timeLeft(ctx))
			return nil
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			al.logTimeout(attempt, opts.ConnectTimeout, err)
			return fmt.Errorf("%s unavailable at %s after %d attempts (timeout: %v): %w",
				backend, addr, attempt, opts.ConnectTimeout, err)

		case <-timer.C:
			al.logRetry(attempt, timeLeft(ctx), wait, opts.WarnThreshold, err)
			wait *= 2
			if wait > opts.MaxWait {
				wait = opts.MaxWait
			}
		}
	}
}

// timeLeft returns the remaining time before context deadline.
func timeLeft(ctx context.Context) time.Duration {
	deadline, ok := ctx.Deadline()
	if !ok {
		return 0
	}
	return time.Until(deadline)
}
