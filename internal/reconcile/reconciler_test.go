package reconcile

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abnormalforhad/Spicy-website/internal/payments"
)

// fakeClock fires every After immediately and records the requested delays.
type fakeClock struct {
	m      sync.Mutex
	delays []time.Duration
}

func (f *fakeClock) After(d time.Duration) <-chan time.Time {
	f.m.Lock()
	f.delays = append(f.delays, d)
	f.m.Unlock()
	ch := make(chan time.Time, 1)
	ch <- time.Now()
	return ch
}

func (f *fakeClock) waits() []time.Duration {
	f.m.Lock()
	defer f.m.Unlock()
	return f.delays
}

// scriptedSource returns its responses in order; the last one repeats.
type scriptedSource struct {
	m         sync.Mutex
	responses []func() (*payments.SessionStatus, error)
	calls     int
}

func (s *scriptedSource) GetSessionStatus(_ context.Context, _ string) (*payments.SessionStatus, error) {
	s.m.Lock()
	defer s.m.Unlock()
	idx := s.calls
	if idx >= len(s.responses) {
		idx = len(s.responses) - 1
	}
	s.calls++
	return s.responses[idx]()
}

func (s *scriptedSource) queries() int {
	s.m.Lock()
	defer s.m.Unlock()
	return s.calls
}

func paid() (*payments.SessionStatus, error) {
	return &payments.SessionStatus{Status: payments.SessionComplete, PaymentStatus: payments.PaymentPaid}, nil
}

func unpaid() (*payments.SessionStatus, error) {
	return &payments.SessionStatus{Status: payments.SessionOpen, PaymentStatus: payments.PaymentUnpaid}, nil
}

func expired() (*payments.SessionStatus, error) {
	return &payments.SessionStatus{Status: payments.SessionExpired, PaymentStatus: payments.PaymentUnpaid}, nil
}

func transportFailure() (*payments.SessionStatus, error) {
	return nil, errors.New("connection refused")
}

func TestRun_PaidOnFirstQuery(t *testing.T) {
	source := &scriptedSource{responses: []func() (*payments.SessionStatus, error){paid}}
	sut := New(source, WithClock(&fakeClock{}))

	result, err := sut.Run(context.Background(), "cs_test_123")
	require.NoError(t, err)
	assert.Equal(t, StateSuccess, result.State)
	assert.Equal(t, 1, result.Attempts)
	assert.Equal(t, 1, source.queries())
}

func TestRun_AlwaysUnpaid_TimesOutAfterMaxAttempts(t *testing.T) {
	source := &scriptedSource{responses: []func() (*payments.SessionStatus, error){unpaid}}
	clock := &fakeClock{}
	sut := New(source, WithClock(clock))

	result, err := sut.Run(context.Background(), "cs_test_123")
	require.NoError(t, err)
	assert.Equal(t, StateTimeout, result.State)
	assert.Equal(t, 5, result.Attempts)
	assert.Equal(t, 5, source.queries())

	// Five queries are spaced by four fixed-interval waits.
	waits := clock.waits()
	require.Len(t, waits, 4)
	for _, d := range waits {
		assert.Equal(t, DefaultPollInterval, d)
	}
}

func TestRun_TransportFailure_ErrorsWithoutSecondQuery(t *testing.T) {
	source := &scriptedSource{responses: []func() (*payments.SessionStatus, error){transportFailure}}
	sut := New(source, WithClock(&fakeClock{}))

	result, err := sut.Run(context.Background(), "cs_test_123")
	require.NoError(t, err)
	assert.Equal(t, StateError, result.State)
	assert.Equal(t, 1, result.Attempts)
	assert.Equal(t, 1, source.queries())
}

func TestRun_SessionExpired(t *testing.T) {
	source := &scriptedSource{responses: []func() (*payments.SessionStatus, error){unpaid, expired}}
	sut := New(source, WithClock(&fakeClock{}))

	result, err := sut.Run(context.Background(), "cs_test_123")
	require.NoError(t, err)
	assert.Equal(t, StateExpired, result.State)
	assert.Equal(t, 2, result.Attempts)
}

func TestRun_PaidAfterRetries(t *testing.T) {
	source := &scriptedSource{responses: []func() (*payments.SessionStatus, error){unpaid, unpaid, paid}}
	sut := New(source, WithClock(&fakeClock{}))

	result, err := sut.Run(context.Background(), "cs_test_123")
	require.NoError(t, err)
	assert.Equal(t, StateSuccess, result.State)
	assert.Equal(t, 3, result.Attempts)
}

func TestRun_NoPaymentRequiredCompleteIsSuccess(t *testing.T) {
	source := &scriptedSource{responses: []func() (*payments.SessionStatus, error){
		func() (*payments.SessionStatus, error) {
			return &payments.SessionStatus{
				Status:        payments.SessionComplete,
				PaymentStatus: payments.PaymentNoPaymentRequired,
			}, nil
		},
	}}
	sut := New(source, WithClock(&fakeClock{}))

	result, err := sut.Run(context.Background(), "cs_test_123")
	require.NoError(t, err)
	assert.Equal(t, StateSuccess, result.State)
}

func TestRun_CancelledBetweenQueries_IssuesNoFurtherQueries(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	source := &scriptedSource{responses: []func() (*payments.SessionStatus, error){
		func() (*payments.SessionStatus, error) {
			cancel() // user navigates away after the first answer
			return unpaid()
		},
	}}
	// real clock with a long interval: cancellation must win the select
	sut := New(source, WithPollInterval(time.Minute))

	result, err := sut.Run(ctx, "cs_test_123")
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, StateChecking, result.State)
	assert.False(t, result.State.IsTerminal())
	assert.Equal(t, 1, source.queries())
}

func TestRun_CancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	source := &scriptedSource{responses: []func() (*payments.SessionStatus, error){paid}}
	sut := New(source, WithClock(&fakeClock{}))

	result, err := sut.Run(ctx, "cs_test_123")
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, source.queries())
	assert.Equal(t, 0, result.Attempts)
}

func TestRun_CustomAttemptBudget(t *testing.T) {
	source := &scriptedSource{responses: []func() (*payments.SessionStatus, error){unpaid}}
	sut := New(source, WithClock(&fakeClock{}), WithMaxAttempts(2))

	result, err := sut.Run(context.Background(), "cs_test_123")
	require.NoError(t, err)
	assert.Equal(t, StateTimeout, result.State)
	assert.Equal(t, 2, source.queries())
}

func TestState_Terminality(t *testing.T) {
	assert.False(t, StateChecking.IsTerminal())
	for _, s := range []State{StateSuccess, StateExpired, StateError, StateTimeout} {
		assert.True(t, s.IsTerminal(), "state %s should be terminal", s)
	}
}
