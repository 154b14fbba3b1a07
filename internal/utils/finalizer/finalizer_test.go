package finalizer

import (
	"testing"

	"golang.org/x/xerrors"

	"github.com/coinbase/l2node/internal/utils/testutil"
)

type closerFn func() error

func (f closerFn) Close() error {
	return f()
}

func TestFinalizer(t *testing.T) {
	require := testutil.Require(t)

	calls := 0
	f := WithCloser(closerFn(func() error {
		calls += 1
		return xerrors.New("boom")
	}))

	require.Error(f.Close())
	f.Finalize()
	require.NoError(f.Close())
	require.Equal(1, calls)
}
