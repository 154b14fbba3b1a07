package retry

import (
	"context"
	"testing"

	"golang.org/x/xerrors"

	"github.com/coinbase/l2node/internal/utils/testutil"
)

func newTestRetry(opts ...Option) Retry {
	opts = append(opts, WithBackoffFactory(NewZeroBackoff))
	return New(opts...)
}

func TestRetry_Success(t *testing.T) {
	require := testutil.Require(t)

	attempts := 0
	err := newTestRetry().Retry(context.Background(), func(ctx context.Context) error {
		attempts += 1
		if attempts == 1 {
			return Retryable(xerrors.New("transient"))
		}
		return nil
	})
	require.NoError(err)
	require.Equal(2, attempts)
}

func TestRetry_PermanentError(t *testing.T) {
	require := testutil.Require(t)

	attempts := 0
	err := newTestRetry().Retry(context.Background(), func(ctx context.Context) error {
		attempts += 1
		return xerrors.New("permanent")
	})
	require.Error(err)
	require.Equal(1, attempts)
}

func TestRetry_MaxAttempts(t *testing.T) {
	require := testutil.Require(t)

	attempts := 0
	err := newTestRetry(WithMaxAttempts(3)).Retry(context.Background(), func(ctx context.Context) error {
		attempts += 1
		return RateLimit(xerrors.New("slow down"))
	})
	require.Error(err)
	require.Equal(3, attempts)

	var rateLimitErr *RateLimitError
	require.True(xerrors.As(err, &rateLimitErr))
}

func TestRetry_CustomFilter(t *testing.T) {
	require := testutil.Require(t)

	attempts := 0
	err := newTestRetry(WithFilter(func(err error) bool { return true })).Retry(context.Background(), func(ctx context.Context) error {
		attempts += 1
		if attempts < DefaultMaxAttempts {
			return xerrors.New("any")
		}
		return nil
	})
	require.NoError(err)
	require.Equal(DefaultMaxAttempts, attempts)
}
