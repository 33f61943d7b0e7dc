// Package retry wraps content-catalog and other filesystem/network reads
// with exponential backoff so a transient I/O error during a deploy or a
// brief network blip doesn't surface as a hard content-load failure.
package retry

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
)

// RetryConfig is one named backoff policy: how many attempts, how the
// delay between them grows, and which errors are worth retrying at all.
type RetryConfig struct {
	// MaxAttempts is the maximum number of retry attempts (including initial attempt)
	MaxAttempts int

	// InitialDelay is the initial delay before the first retry
	InitialDelay time.Duration

	// MaxDelay is the maximum delay between retries
	MaxDelay time.Duration

	// BackoffMultiplier is the multiplier for exponential backoff (typically 2.0)
	BackoffMultiplier float64

	// JitterMaxPercent is the maximum percentage of jitter to add (0-100)
	JitterMaxPercent int

	// RetryableErrors are error types that should trigger a retry
	RetryableErrors []error
}

// DefaultRetryConfig is a general-purpose policy suitable for a host's
// own I/O, not specifically tuned for content loading.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:       3,
		InitialDelay:      100 * time.Millisecond,
		MaxDelay:          30 * time.Second,
		BackoffMultiplier: 2.0,
		JitterMaxPercent:  10,
		RetryableErrors:   []error{context.DeadlineExceeded},
	}
}

// NetworkRetryConfig favors more attempts and longer backoff, for a
// content source fetched over a network rather than a local mount.
func NetworkRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:       5,
		InitialDelay:      200 * time.Millisecond,
		MaxDelay:          60 * time.Second,
		BackoffMultiplier: 2.0,
		JitterMaxPercent:  15,
		RetryableErrors:   []error{context.DeadlineExceeded},
	}
}

// FileSystemRetryConfig is tuned for reading effect-catalog YAML off a
// mounted filesystem: fewer attempts and a short cap, since a local read
// either clears up in milliseconds or isn't going to clear up at all.
func FileSystemRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:       3,
		InitialDelay:      50 * time.Millisecond,
		MaxDelay:          5 * time.Second,
		BackoffMultiplier: 1.5,
		JitterMaxPercent:  5,
		RetryableErrors:   []error{context.DeadlineExceeded},
	}
}

// Retrier runs an operation under one RetryConfig.
type Retrier struct {
	config RetryConfig
	logger *logrus.Entry
}

// NewRetrier binds a RetryConfig to a logger scoped to this component.
func NewRetrier(config RetryConfig) *Retrier {
	return &Retrier{
		config: config,
		logger: logrus.WithField("component", "retry.Retrier"),
	}
}

// Execute runs operation, retrying on failure per the bound RetryConfig.
func (r *Retrier) Execute(ctx context.Context, operation func(context.Context) error) error {
	return r.ExecuteWithResult(ctx, func(ctx context.Context) (interface{}, error) {
		return nil, operation(ctx)
	})
}

// ExecuteWithResult runs operation, retrying on failure, and discards
// whatever value it produced on a successful attempt (callers that need
// the value thread it out through a closure variable instead).
func (r *Retrier) ExecuteWithResult(ctx context.Context, operation func(context.Context) (interface{}, error)) error {
	var lastErr error

	for attempt := 1; attempt <= r.config.MaxAttempts; attempt++ {
		log := r.attemptLogger(attempt)

		if ctx.Err() != nil {
			log.Debug("context already done, not attempting")
			return ctx.Err()
		}

		_, lastErr = operation(ctx)
		if lastErr == nil {
			if attempt > 1 {
				log.WithField("total_attempts", attempt).Info("operation succeeded after retry")
			}
			return nil
		}
		log.WithError(lastErr).Debug("attempt failed")

		if r.shouldGiveUp(attempt, lastErr, log) {
			break
		}

		if err := r.backoffBeforeRetry(ctx, attempt, log); err != nil {
			return err
		}
	}

	return fmt.Errorf("operation failed after %d attempts: %w", r.config.MaxAttempts, lastErr)
}

func (r *Retrier) attemptLogger(attempt int) *logrus.Entry {
	return r.logger.WithFields(logrus.Fields{
		"attempt":      attempt,
		"max_attempts": r.config.MaxAttempts,
	})
}

// shouldGiveUp reports whether the loop should stop without another
// delay: either the budget is exhausted or the error isn't worth
// retrying.
func (r *Retrier) shouldGiveUp(attempt int, lastErr error, log *logrus.Entry) bool {
	if attempt == r.config.MaxAttempts {
		log.WithError(lastErr).Warn("retry attempts exhausted")
		return true
	}
	if !r.isRetryable(lastErr) {
		log.WithError(lastErr).Debug("error is not retryable, stopping")
		return true
	}
	return false
}

func (r *Retrier) backoffBeforeRetry(ctx context.Context, attempt int, log *logrus.Entry) error {
	delay := r.calculateDelay(attempt)
	log.WithField("delay", delay).Debug("backing off before retry")

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		log.Debug("context done during backoff")
		return ctx.Err()
	}
}

// isRetryable reports whether err should trigger another attempt. A nil
// error never retries; an error matching RetryableErrors always does;
// anything else is retryable by default since most transient I/O
// failures don't implement a specific sentinel.
func (r *Retrier) isRetryable(err error) bool {
	if err == nil {
		return false
	}
	for _, retryable := range r.config.RetryableErrors {
		if errors.Is(err, retryable) {
			return true
		}
	}
	return true
}

// calculateDelay applies exponential backoff with a cap and symmetric
// jitter: InitialDelay * BackoffMultiplier^(attempt-1), clamped to
// MaxDelay, then perturbed by up to ±JitterMaxPercent to avoid
// synchronized retries across multiple hosts loading the same content.
func (r *Retrier) calculateDelay(attempt int) time.Duration {
	delay := float64(r.config.InitialDelay) * math.Pow(r.config.BackoffMultiplier, float64(attempt-1))
	if delay > float64(r.config.MaxDelay) {
		delay = float64(r.config.MaxDelay)
	}

	if r.config.JitterMaxPercent > 0 {
		jitterRange := delay * float64(r.config.JitterMaxPercent) / 100.0
		delay += (rand.Float64() - 0.5) * 2 * jitterRange
		if delay < 0 {
			delay = float64(r.config.InitialDelay)
		}
	}

	return time.Duration(delay)
}

// isTimeoutError reports whether err is a deadline/timeout, either via
// the standard net-style Timeout() interface or context.DeadlineExceeded.
func isTimeoutError(err error) bool {
	type timeout interface{ Timeout() bool }
	if t, ok := err.(timeout); ok {
		return t.Timeout()
	}
	return errors.Is(err, context.DeadlineExceeded)
}

// Global retriers for callers that don't need a custom RetryConfig.
var (
	DefaultRetrier    = NewRetrier(DefaultRetryConfig())
	NetworkRetrier    = NewRetrier(NetworkRetryConfig())
	FileSystemRetrier = NewRetrier(FileSystemRetryConfig())
)

// Execute runs operation under DefaultRetrier.
func Execute(ctx context.Context, operation func(context.Context) error) error {
	return DefaultRetrier.Execute(ctx, operation)
}

// ExecuteNetwork runs operation under NetworkRetrier.
func ExecuteNetwork(ctx context.Context, operation func(context.Context) error) error {
	return NetworkRetrier.Execute(ctx, operation)
}

// ExecuteFileSystem runs operation under FileSystemRetrier.
func ExecuteFileSystem(ctx context.Context, operation func(context.Context) error) error {
	return FileSystemRetrier.Execute(ctx, operation)
}
