package worker

import (
	"context"
	"errors"
	"math/rand/v2"
	"net"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/prospectforge/prospectforge/pkg/pipeline/core"
)

type Options struct {
	// WindowSize is the number of items processed concurrently. The pool
	// waits for a full window to resolve before starting the next one.
	WindowSize int

	// WindowPause is the sleep between consecutive windows.
	WindowPause time.Duration

	// RequestTimeout bounds a single processor invocation.
	RequestTimeout time.Duration

	// RateLimitRPS is a global limit across all in-flight items. Set to <=0 to disable.
	RateLimitRPS float64

	// MaxRetries is the number of extra attempts for transient failures.
	MaxRetries int

	// BackoffInitial is the initial sleep before retrying a transient failure.
	BackoffInitial time.Duration
	// BackoffMax caps exponential backoff.
	BackoffMax time.Duration
	// BackoffJitterFrac applies +/- jitter to backoff sleeps (0.2 = +/-20%).
	BackoffJitterFrac float64
}

// Result holds the output for one input item.
type Result[In any, Out any] struct {
	Input  In
	Output Out
	Err    error
}

func (o Options) withDefaults() Options {
	if o.WindowSize <= 0 {
		o.WindowSize = 5
	}
	if o.WindowPause < 0 {
		o.WindowPause = 0
	}
	if o.RequestTimeout <= 0 {
		o.RequestTimeout = 2 * time.Second
	}
	if o.MaxRetries < 0 {
		o.MaxRetries = 0
	}
	if o.BackoffInitial <= 0 {
		o.BackoffInitial = 200 * time.Millisecond
	}
	if o.BackoffMax <= 0 {
		o.BackoffMax = 2 * time.Second
	}
	return o
}

// ProcessWindows runs the processor over all items in fixed-size windows.
//
// Items inside a window run concurrently, each owning its own result slot;
// the window as a whole resolves before the next window starts. Item errors
// are recorded per-slot and never cancel window-mates. The returned slice
// preserves input order. The only error returned is context cancellation.
func ProcessWindows[In any, Out any](
	ctx context.Context,
	items []In,
	processor func(context.Context, In) (Out, error),
	opts Options,
) ([]Result[In, Out], error) {
	return ProcessWindowsWithCallback(ctx, items, processor, nil, opts)
}

// ProcessWindowsWithCallback behaves like ProcessWindows and additionally
// invokes onDone with (completed, total) as each item resolves. The callback
// runs on the coordinating goroutine after its window settles.
func ProcessWindowsWithCallback[In any, Out any](
	ctx context.Context,
	items []In,
	processor func(context.Context, In) (Out, error),
	onDone func(completed, total int),
	opts Options,
) ([]Result[In, Out], error) {
	opts = opts.withDefaults()

	var limiter *rate.Limiter
	if opts.RateLimitRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimitRPS), 1)
	}

	out := make([]Result[In, Out], len(items))
	completed := 0

	for start := 0; start < len(items); start += opts.WindowSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		end := start + opts.WindowSize
		if end > len(items) {
			end = len(items)
		}

		g := new(errgroup.Group)
		for i := start; i < end; i++ {
			g.Go(func() error {
				res, err := processWithRetry(ctx, items[i], processor, limiter, opts)
				out[i] = Result[In, Out]{Input: items[i], Output: res, Err: err}
				return nil
			})
		}
		// Goroutines record failures in their own slot; Wait only gates the window.
		_ = g.Wait()

		for i := start; i < end; i++ {
			completed++
			if onDone != nil {
				onDone(completed, len(items))
			}
		}

		if end < len(items) && opts.WindowPause > 0 {
			if err := sleepCtx(ctx, opts.WindowPause); err != nil {
				return nil, err
			}
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func processWithRetry[In any, Out any](
	ctx context.Context,
	item In,
	processor func(context.Context, In) (Out, error),
	limiter *rate.Limiter,
	opts Options,
) (Out, error) {
	var lastOut Out
	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return lastOut, err
		}

		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return lastOut, err
			}
		}

		reqCtx, cancel := context.WithTimeout(ctx, opts.RequestTimeout)
		result, err := processor(reqCtx, item)
		cancel()
		lastOut = result
		if err == nil {
			return result, nil
		}
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			return lastOut, ctx.Err()
		}
		if !isRetryable(err) || attempt >= opts.MaxRetries {
			return lastOut, err
		}

		sleep := backoffSleep(opts.BackoffInitial, opts.BackoffMax, opts.BackoffJitterFrac, attempt)
		if err := sleepCtx(ctx, sleep); err != nil {
			return lastOut, err
		}
	}
}

func isRetryable(err error) bool {
	if core.IsTransient(err) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	if errors.As(err, &ne) {
		return ne.Timeout()
	}
	return false
}

func backoffSleep(initial, max time.Duration, jitterFrac float64, attempt int) time.Duration {
	sleep := initial
	for i := 0; i < attempt && sleep < max; i++ {
		sleep *= 2
		if sleep > max {
			sleep = max
			break
		}
	}
	if jitterFrac <= 0 {
		return sleep
	}
	j := 1 + (rand.Float64()*2-1)*jitterFrac
	return time.Duration(float64(sleep) * j)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
