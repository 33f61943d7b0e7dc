// Package retry provides exponential backoff for the engine's content
// loader (pkg/content) and for any other I/O a host layers on top of it.
//
// # Why content loading needs this
//
// Effect catalogs are read from a mounted directory that can see
// transient errors during a deploy or a slow network filesystem.
// pkg/content wraps each file read in a Retrier built from
// FileSystemRetryConfig so a single flaky read doesn't fail catalog
// loading outright.
//
// # Building a Retrier
//
//	retrier := retry.NewRetrier(retry.FileSystemRetryConfig())
//	err := retrier.Execute(ctx, func(ctx context.Context) error {
//	    return loadOneFile(ctx, path)
//	})
//
// A custom policy works the same way:
//
//	retrier := retry.NewRetrier(retry.RetryConfig{
//	    MaxAttempts:       5,
//	    InitialDelay:      100 * time.Millisecond,
//	    MaxDelay:          30 * time.Second,
//	    BackoffMultiplier: 2.0,
//	    JitterMaxPercent:  25,
//	})
//
// # Backoff shape
//
// Delay grows exponentially between attempts and is capped at MaxDelay:
//
//	attempt 1: InitialDelay
//	attempt 2: InitialDelay * BackoffMultiplier
//	attempt 3: previous * BackoffMultiplier
//	...
//
// Jitter of up to JitterMaxPercent is applied in either direction so many hosts loading
// the same content after a shared outage don't all retry in lockstep.
//
// # Pre-configured policies
//
//	retry.Execute(ctx, op)           // DefaultRetryConfig: 3 attempts, 100ms initial
//	retry.ExecuteNetwork(ctx, op)    // NetworkRetryConfig: 5 attempts, 200ms initial, 60s cap
//	retry.ExecuteFileSystem(ctx, op) // FileSystemRetryConfig: 3 attempts, 50ms initial, 5s cap
//
// # Choosing which errors retry
//
// Every non-nil error is treated as retryable. RetryableErrors can be
// set, but it does not narrow retries: an error that matches none of
// its entries is retried as well.
//
//	config := retry.FileSystemRetryConfig()
//	config.RetryableErrors = []error{os.ErrDeadlineExceeded}
//
// # Cancellation
//
// Execute checks ctx before each attempt and during the backoff delay,
// so a canceled context stops retrying immediately rather than running
// out the configured attempt budget.
package retry
