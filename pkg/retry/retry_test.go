package retry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTransient = errors.New("transient")

func TestDoSucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := Policy{MaxAttempts: 3}.Do(context.Background(), func() error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDoRetriesUntilSuccess(t *testing.T) {
	calls := 0
	err := Policy{MaxAttempts: 3}.Do(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errTransient
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDoReturnsLastErrorWhenExhausted(t *testing.T) {
	calls := 0
	err := Policy{MaxAttempts: 3}.Do(context.Background(), func() error {
		calls++
		return errTransient
	})
	assert.ErrorIs(t, err, errTransient)
	assert.Equal(t, 3, calls)
}

func TestDoStopsOnNonRetryableError(t *testing.T) {
	permanent := errors.New("permanent")
	calls := 0
	err := Policy{
		MaxAttempts: 5,
		Retryable:   func(err error) bool { return errors.Is(err, errTransient) },
	}.Do(context.Background(), func() error {
		calls++
		return permanent
	})
	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, calls)
}

func TestDoZeroAttemptsStillRunsOnce(t *testing.T) {
	calls := 0
	err := Policy{}.Do(context.Background(), func() error {
		calls++
		return errTransient
	})
	assert.ErrorIs(t, err, errTransient)
	assert.Equal(t, 1, calls)
}

func TestDoHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := Policy{MaxAttempts: 3}.Do(ctx, func() error {
		calls++
		return errTransient
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, calls)
}
