// Package throttle spaces outbound requests so that consecutive requests are
// issued at least a fixed delay apart.
package throttle

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
)

type Option func(*Throttle)

// WithClock replaces the wall clock, mostly for tests.
func WithClock(c clock.Clock) Option {
	return func(t *Throttle) {
		t.clock = c
	}
}

// Throttle holds the timestamp of the last issued request. The zero value is
// not usable, use New.
type Throttle struct {
	clock clock.Clock
	delay time.Duration

	// slot serializes Wait so that computing the delay and recording the
	// issue time happen as one step.
	slot chan struct{}

	last   time.Time
	issued bool
}

func New(delay time.Duration, opts ...Option) *Throttle {
	t := &Throttle{
		clock: clock.New(),
		delay: max(delay, 0),
		slot:  make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Throttle) Delay() time.Duration {
	return t.delay
}

// Wait blocks until a request may be issued and records the issue time.
// The caller must issue its request right after Wait returns nil. A context
// that ends while waiting returns ctx.Err() and leaves the clock untouched.
func (t *Throttle) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	select {
	case t.slot <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-t.slot }()

	if t.issued {
		if wait := t.delay - t.clock.Since(t.last); wait > 0 {
			timer := t.clock.Timer(wait)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			}
		}
	}

	t.last = t.clock.Now()
	t.issued = true
	return nil
}

// lastIssued returns the time of the last issued request, and false if no
// request has been issued yet. It takes the slot, so it blocks while another
// caller is sleeping out the delay.
func (t *Throttle) lastIssued() (time.Time, bool) {
	t.slot <- struct{}{}
	defer func() { <-t.slot }()
	return t.last, t.issued
}
