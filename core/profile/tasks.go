// ABOUTME: Fan-out task runner with per-call timeouts, panic recovery and outcome recording
// ABOUTME: A task either yields data or a recorded error; nothing escapes to the caller

package profile

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// errNotConfigured is recorded for requested keys whose source is not wired
var errNotConfigured = errors.New("source not configured")

// errDisabled is recorded for requested keys switched off by a feature flag
var errDisabled = errors.New("disabled")

type taskResult[T any] struct {
	value T
	err   error
}

// call runs fn with its own timeout. If fn ignores its context the call is
// abandoned when the timeout fires and its eventual result is dropped.
func call[T any](ctx context.Context, a *Aggregator, key string, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	done := make(chan taskResult[T], 1)

	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				var zero T
				done <- taskResult[T]{value: zero, err: fmt.Errorf("panic: %v", rec)}
			}
		}()
		v, err := fn(ctx)
		done <- taskResult[T]{value: v, err: err}
	}()

	var res taskResult[T]
	select {
	case res = <-done:
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			res.err = fmt.Errorf("timeout after %s", timeout)
		} else {
			res.err = ctx.Err()
		}
	}

	elapsed := time.Since(start)
	a.deps.Metrics.RecordSource(key, elapsed, res.err)
	if res.err != nil {
		a.deps.Logger.Warn("Profile source failed", map[string]interface{}{
			"source":      key,
			"duration_ms": elapsed.Milliseconds(),
			"error":       res.err.Error(),
		})
	} else {
		a.deps.Logger.Debug("Profile source completed", map[string]interface{}{
			"source":      key,
			"duration_ms": elapsed.Milliseconds(),
		})
	}

	return res.value, res.err
}

// outcomes collects which keys produced data and which failed
type outcomes struct {
	mu     sync.Mutex
	ok     map[string]bool
	failed map[string]string
}

func newOutcomes() *outcomes {
	return &outcomes{ok: map[string]bool{}, failed: map[string]string{}}
}

func (o *outcomes) record(key string, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err != nil {
		delete(o.ok, key)
		o.failed[key] = err.Error()
		return
	}
	if _, failed := o.failed[key]; !failed {
		o.ok[key] = true
	}
}

func (o *outcomes) succeeded(key string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.ok[key]
}

// report returns meta.bronnen and meta.errors in the order of keys
func (o *outcomes) report(keys []string) (sources []string, errs []string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	sources = []string{}
	errs = []string{}
	for _, k := range keys {
		if msg, failed := o.failed[k]; failed {
			errs = append(errs, k+": "+msg)
		} else if o.ok[k] {
			sources = append(sources, k)
		} else {
			errs = append(errs, k+": no result")
		}
	}
	return sources, errs
}
