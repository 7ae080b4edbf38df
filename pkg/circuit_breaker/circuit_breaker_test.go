package circuit_breaker

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func newTestBreaker(clock *time.Time) *circuitBreaker {
	cb := New(Config{
		RecordLength:     10,
		Timeout:          time.Second,
		Percentile:       0.3,
		RecoveryRequests: 2,
	}).(*circuitBreaker)
	cb.now = func() time.Time { return *clock }
	return cb
}

func Test_circuitBreaker_Call(t *testing.T) {
	t.Parallel()
	clock := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	cb := newTestBreaker(&clock)

	errService := errors.New("service error")
	ok := func() error { return nil }
	failing := func() error { return errService }

	for i := 0; i < 20; i++ {
		require.NoError(t, cb.Call(ok))
	}
	require.Equal(t, Closed, cb.State())

	require.ErrorIs(t, cb.Call(failing), errService)
	require.ErrorIs(t, cb.Call(failing), errService)
	require.Equal(t, Closed, cb.State())
	require.ErrorIs(t, cb.Call(failing), errService)
	require.Equal(t, Open, cb.State())

	called := false
	err := cb.Call(func() error { called = true; return nil })
	require.ErrorIs(t, err, ErrOpenCB)
	require.False(t, called)

	clock = clock.Add(2 * time.Second)
	require.NoError(t, cb.Call(ok))
	require.Equal(t, HalfOpen, cb.State())
	require.NoError(t, cb.Call(ok))
	require.Equal(t, Closed, cb.State())
}

func Test_circuitBreaker_halfOpenFailure(t *testing.T) {
	t.Parallel()
	clock := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	cb := newTestBreaker(&clock)
	failing := func() error { return errors.New("service error") }

	for i := 0; i < 3; i++ {
		_ = cb.Call(failing)
	}
	require.Equal(t, Open, cb.State())

	clock = clock.Add(2 * time.Second)
	require.Error(t, cb.Call(failing))
	require.Equal(t, Open, cb.State())
	require.ErrorIs(t, cb.Call(failing), ErrOpenCB)

	cb.Reset()
	require.Equal(t, Closed, cb.State())
	require.NoError(t, cb.Call(func() error { return nil }))
}
