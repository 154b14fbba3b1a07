package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Require returns the assertions bound to t.
// Usage: `require := testutil.Require(t)`.
func Require(t testing.TB) *require.Assertions {
	return require.New(t)
}
