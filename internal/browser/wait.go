package browser

import (
	"context"
	"fmt"
	"time"
)

// DefaultPollInterval matches the polling cadence of a WebDriver wait
const DefaultPollInterval = 500 * time.Millisecond

// WaitPolicy polls a condition until it holds or Timeout elapses
type WaitPolicy struct {
	Timeout  time.Duration
	Interval time.Duration
}

// NewWaitPolicy creates a WaitPolicy with the default poll interval
func NewWaitPolicy(timeout time.Duration) WaitPolicy {
	return WaitPolicy{
		Timeout:  timeout,
		Interval: DefaultPollInterval,
	}
}

// Until evaluates cond immediately and then on every tick. It returns nil once
// cond reports true, the first error cond returns, ctx's error if ctx ends
// first, or an error wrapping ErrTimeout.
func (w WaitPolicy) Until(ctx context.Context, cond func() (bool, error)) error {
	interval := w.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	waitCtx, cancel := context.WithTimeout(ctx, w.Timeout)
	defer cancel()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		ok, err := cond()
		if err != nil {
			return err
		}
		if ok {
			return nil
		}

		select {
		case <-waitCtx.Done():
			if err := ctx.Err(); err != nil {
				return err
			}
			return fmt.Errorf("%w after %s", ErrTimeout, w.Timeout)
		case <-ticker.C:
		}
	}
}
