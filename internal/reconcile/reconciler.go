// Package reconcile determines the real-world outcome of a redirect-based
// payment after the browser comes back from the provider. Payment settles
// asynchronously at the provider, so the session status is polled with a
// bounded budget: fixed delay times fixed max attempts gives a fixed
// worst-case wait. The webhook path remains the settlement authority; a
// reconciler outcome of error or timeout says "still unknown", not "failed".
package reconcile

import (
	"context"
	"time"

	"github.com/abnormalforhad/Spicy-website/internal/payments"
)

// State is the reconciler's position in its machine. Checking is the only
// non-terminal state; no transition ever leaves a terminal state.
type State string

const (
	StateChecking State = "checking"
	StateSuccess  State = "success"
	StateExpired  State = "expired"
	StateError    State = "error"
	StateTimeout  State = "timeout"
)

func (s State) IsTerminal() bool {
	return s != StateChecking
}

func (s State) String() string {
	return string(s)
}

const (
	DefaultMaxAttempts  = 5
	DefaultPollInterval = 2 * time.Second
)

// StatusSource answers session status queries; implemented by the payment
// provider client.
type StatusSource interface {
	GetSessionStatus(ctx context.Context, sessionID string) (*payments.SessionStatus, error)
}

// Clock is the reconciler's only notion of time, injected so the polling loop
// is deterministic under test.
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

// Result is where the machine ended up and how many queries it took to get
// there. Attempts counts queries actually issued.
type Result struct {
	State    State
	Attempts int
}

type Reconciler struct {
	source      StatusSource
	interval    time.Duration
	maxAttempts int
	clock       Clock
}

type Option func(*Reconciler)

func WithPollInterval(d time.Duration) Option {
	return func(r *Reconciler) { r.interval = d }
}

func WithMaxAttempts(n int) Option {
	return func(r *Reconciler) { r.maxAttempts = n }
}

func WithClock(c Clock) Option {
	return func(r *Reconciler) { r.clock = c }
}

func New(source StatusSource, opts ...Option) *Reconciler {
	r := &Reconciler{
		source:      source,
		interval:    DefaultPollInterval,
		maxAttempts: DefaultMaxAttempts,
		clock:       realClock{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run polls the session until a terminal state or until the attempt budget is
// spent. A query failure is terminal immediately: transport trouble is not
// recycled through the budget. Cancelling the context abandons the loop
// between queries; no further queries are issued and the returned state is
// still checking.
func (r *Reconciler) Run(ctx context.Context, sessionID string) (Result, error) {
	attempts := 0
	for {
		if err := ctx.Err(); err != nil {
			return Result{State: StateChecking, Attempts: attempts}, err
		}

		status, err := r.source.GetSessionStatus(ctx, sessionID)
		attempts++
		if err != nil {
			return Result{State: StateError, Attempts: attempts}, nil
		}

		switch {
		case status.PaymentStatus == payments.PaymentPaid,
			status.PaymentStatus == payments.PaymentNoPaymentRequired && status.Status == payments.SessionComplete:
			return Result{State: StateSuccess, Attempts: attempts}, nil
		case status.Status == payments.SessionExpired:
			return Result{State: StateExpired, Attempts: attempts}, nil
		}

		if attempts >= r.maxAttempts {
			return Result{State: StateTimeout, Attempts: attempts}, nil
		}

		select {
		case <-r.clock.After(r.interval):
		case <-ctx.Done():
			return Result{State: StateChecking, Attempts: attempts}, ctx.Err()
		}
	}
}
