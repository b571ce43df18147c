package retry

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDo(t *testing.T) {
	cfg := RetryConfig{
		MaxAttempts: 3,
		Backoff:     LineareBackoff(time.Millisecond),
	}

	t.Run("SucceedsAfterRetries", func(t *testing.T) {
		errTemp := errors.New("temporary")

		var calls int
		err := Do(t.Context(), cfg, func() error {
			calls++
			if calls < 3 {
				return errTemp
			}
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("ExhaustsAttempts", func(t *testing.T) {
		errTemp := errors.New("temporary")

		var calls int
		err := Do(t.Context(), cfg, func() error {
			calls++
			return errTemp
		})

		require.ErrorIs(t, err, errTemp)
		assert.Equal(t, cfg.MaxAttempts, calls)
	})

	t.Run("StopsOnNonRetryable", func(t *testing.T) {
		errFatal := errors.New("fatal")
		stopCfg := cfg
		stopCfg.ShouldRetry = func(err error) bool {
			return !errors.Is(err, errFatal)
		}

		var calls int
		err := Do(t.Context(), stopCfg, func() error {
			calls++
			return errFatal
		})

		require.ErrorIs(t, err, errFatal)
		assert.Equal(t, 1, calls)
	})
}
