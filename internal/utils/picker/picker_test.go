package picker

import (
	"testing"

	"github.com/coinbase/l2node/internal/utils/testutil"
)

func TestPicker(t *testing.T) {
	require := testutil.Require(t)

	p := New([]*Choice{
		{Item: "a", Weight: 1},
		{Item: "b", Weight: 0},
		{Item: "c", Weight: 3},
	})

	counts := make(map[string]int)
	for i := 0; i < 4000; i++ {
		counts[p.Next().(string)] += 1
	}

	require.Zero(counts["b"])
	require.Greater(counts["c"], counts["a"])
	require.Greater(counts["a"], 0)
}

func TestPicker_Empty(t *testing.T) {
	require := testutil.Require(t)

	p := New(nil)
	require.Nil(p.Next())
}
