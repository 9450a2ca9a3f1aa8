// Package wait provides the bounded polling primitive used everywhere the
// engine has to tolerate UI lag: a predicate is evaluated on a fixed interval
// until it holds or a timeout elapses. The application under test updates
// asynchronously, so nothing in the engine assumes an element exists at the
// instant it is requested.
package wait

import (
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff"
)

// Default polling parameters. The interval balances responsiveness against
// load on the accessibility tree backend.
const (
	DefaultTimeout  = 5 * time.Second
	DefaultInterval = 300 * time.Millisecond
)

// ErrNotReady marks a transient predicate failure: the UI simply has not
// caught up yet. Errors wrapping ErrNotReady count as "predicate false this
// tick" and polling continues. Any other predicate error is treated as
// non-transient and aborts the wait immediately.
var ErrNotReady = errors.New("not ready")

// NotReady wraps a formatted message as a transient condition.
func NotReady(format string, v ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, v...), ErrNotReady)
}

// Transient reports whether err should be swallowed by a polling loop.
// An error is transient if it wraps ErrNotReady or implements
// interface{ Transient() bool } returning true.
func Transient(err error) bool {
	if errors.Is(err, ErrNotReady) {
		return true
	}
	var t interface{ Transient() bool }
	return errors.As(err, &t) && t.Transient()
}

// Options configures a wait.
type Options struct {
	Timeout  time.Duration
	Interval time.Duration
}

func (o Options) withDefaults() Options {
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.Interval <= 0 {
		o.Interval = DefaultInterval
	}
	return o
}

// TimeoutError reports that a wait's predicate never became true before the
// deadline. LastErr carries the last observed predicate state, if any.
type TimeoutError struct {
	Timeout time.Duration
	LastErr error
}

func (e *TimeoutError) Error() string {
	if e.LastErr != nil {
		return fmt.Sprintf("condition not satisfied within %v (last state: %v)", e.Timeout, e.LastErr)
	}
	return fmt.Sprintf("condition not satisfied within %v", e.Timeout)
}

// Transient makes a timed-out wait count as "false this tick" when it occurs
// inside an enclosing polling loop.
func (e *TimeoutError) Transient() bool { return true }

// errNotYet is the internal retry signal for a predicate that returned false.
var errNotYet = errors.New("condition not yet satisfied")

// For evaluates pred on a fixed interval until it returns true or the timeout
// elapses. The first true result ends the wait successfully. Transient
// predicate errors are swallowed and polling continues; any other error
// propagates immediately. On deadline expiry a *TimeoutError is returned,
// never earlier than the configured timeout.
func For(pred func() (bool, error), opts Options) error {
	opts = opts.withDefaults()

	var lastErr error
	op := func() error {
		ok, err := pred()
		if err != nil {
			if !Transient(err) {
				return backoff.Permanent(err)
			}
			lastErr = err
			return err
		}
		if ok {
			return nil
		}
		lastErr = nil
		return errNotYet
	}

	b := &deadlineBackOff{
		interval: opts.Interval,
		deadline: time.Now().Add(opts.Timeout),
	}
	err := backoff.Retry(op, b)
	if err == nil {
		return nil
	}
	if errors.Is(err, errNotYet) || Transient(err) {
		return &TimeoutError{Timeout: opts.Timeout, LastErr: lastErr}
	}
	return err
}

// ForTrue is a convenience wrapper for predicates that cannot fail.
func ForTrue(pred func() bool, opts Options) error {
	return For(func() (bool, error) { return pred(), nil }, opts)
}

// deadlineBackOff retries on a constant interval and stops only once the
// deadline has passed, so a wait never gives up before its full timeout.
type deadlineBackOff struct {
	interval time.Duration
	deadline time.Time
}

func (b *deadlineBackOff) NextBackOff() time.Duration {
	if time.Now().After(b.deadline) {
		return backoff.Stop
	}
	return b.interval
}

func (b *deadlineBackOff) Reset() {}
