package endpoints

import (
	"testing"
	"time"

	"github.com/coinbase/l2node/internal/utils/testutil"
)

func TestHTTPClient_Default(t *testing.T) {
	require := testutil.Require(t)

	client, err := newHTTPClient()
	require.NoError(err)
	require.Equal(defaultTimeout, client.Timeout)
	require.Nil(client.Jar)
}

func TestHTTPClient_WithTimeout(t *testing.T) {
	require := testutil.Require(t)

	client, err := newHTTPClient(WithTimeout(time.Second))
	require.NoError(err)
	require.Equal(time.Second, client.Timeout)
}
