package generation

import (
	"context"
	"errors"
	"time"

	"github.com/genaimarketing/api/internal/model"
)

const (
	DefaultTimeout      = 120 * time.Second
	DefaultPollInterval = 2 * time.Second
)

// WaitOption tunes a single AwaitField call
type WaitOption func(*waitOptions)

type waitOptions struct {
	timeout  time.Duration
	interval time.Duration
}

func WithTimeout(d time.Duration) WaitOption {
	return func(o *waitOptions) { o.timeout = d }
}

func WithPollInterval(d time.Duration) WaitOption {
	return func(o *waitOptions) { o.interval = d }
}

// Waiter blocks until a campaign field reaches an expected value
type Waiter struct {
	watcher Watcher
}

func NewWaiter(w Watcher) *Waiter {
	return &Waiter{watcher: w}
}

// AwaitField returns nil once field reads expected. It fails with a *StageError when the
// field reads "error" (ErrStageFailed), when the timeout elapses (ErrStageTimedOut) or when
// a read fails (ErrStoreUnavailable). The first read happens immediately.
func (w *Waiter) AwaitField(ctx context.Context, p model.Principal, campaignID, field string, expected model.StageStatus, opts ...WaitOption) error {
	o := waitOptions{timeout: DefaultTimeout, interval: DefaultPollInterval}
	for _, opt := range opts {
		opt(&o)
	}
	if err := validateWait(field, o); err != nil {
		return err
	}

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	deadline := time.NewTimer(o.timeout)
	defer deadline.Stop()

	observations := w.watcher.Watch(watchCtx, p, campaignID, field, o.interval)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline.C:
			return stageTimedOut(field)
		case obs, ok := <-observations:
			if !ok {
				if err := ctx.Err(); err != nil {
					return err
				}
				return storeUnavailable(field, errors.New("watch closed"))
			}
			if obs.Err != nil {
				if err := ctx.Err(); err != nil {
					return err
				}
				return storeUnavailable(field, obs.Err)
			}
			switch obs.Value {
			case string(expected):
				return nil
			case string(model.StageStatusError):
				return stageFailed(field)
			}
		}
	}
}

func validateWait(field string, o waitOptions) error {
	verr := &model.ValidationError{Fields: map[string]string{}}
	if !model.IsStatusField(field) && field != model.FieldStatus {
		verr.Fields["field"] = "unknown"
	}
	if o.timeout <= 0 {
		verr.Fields["timeout"] = "gt=0"
	}
	if o.interval <= 0 {
		verr.Fields["interval"] = "gt=0"
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}
