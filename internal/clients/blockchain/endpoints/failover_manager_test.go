package endpoints

import (
	"context"
	"testing"

	"go.uber.org/zap/zaptest"
	"golang.org/x/xerrors"

	"github.com/coinbase/l2node/internal/config"
	"github.com/coinbase/l2node/internal/utils/testutil"
)

func TestFailoverManager(t *testing.T) {
	require := testutil.Require(t)
	logger := zaptest.NewLogger(t)

	primary, err := newEndpointProvider(logger, &config.EndpointGroup{
		Endpoints:         []config.Endpoint{{Name: "foo", Weight: 1}},
		EndpointsFailover: []config.Endpoint{{Name: "bar", Weight: 1}},
	}, PrimaryEndpointGroupName)
	require.NoError(err)

	mgr := NewFailoverManager(FailoverManagerParams{Primary: primary})

	ctx := context.Background()
	for i := 0; i < smallNumPicks; i++ {
		endpoint, err := primary.GetEndpoint(ctx)
		require.NoError(err)
		require.Equal("foo", endpoint.Name)
	}

	ctx, err = mgr.WithFailoverContext(ctx)
	require.NoError(err)
	for i := 0; i < smallNumPicks; i++ {
		endpoint, err := primary.GetEndpoint(ctx)
		require.NoError(err)
		require.Equal("bar", endpoint.Name)
	}
}

func TestFailoverManager_MultipleGroups(t *testing.T) {
	require := testutil.Require(t)
	logger := zaptest.NewLogger(t)

	first, err := newEndpointProvider(logger, &config.EndpointGroup{
		Endpoints:         []config.Endpoint{{Name: "foo", Weight: 1}},
		EndpointsFailover: []config.Endpoint{{Name: "bar", Weight: 1}},
	}, "first")
	require.NoError(err)

	second, err := newEndpointProvider(logger, &config.EndpointGroup{
		Endpoints: []config.Endpoint{{Name: "baz", Weight: 1}},
	}, "second")
	require.NoError(err)

	_, err = newFailoverManager(first, second).WithFailoverContext(context.Background())
	require.Error(err)
	require.True(xerrors.Is(err, ErrFailoverUnavailable))
	require.Contains(err.Error(), "second")
}

func TestFailoverManager_Unavailable(t *testing.T) {
	require := testutil.Require(t)
	logger := zaptest.NewLogger(t)

	primary, err := newEndpointProvider(logger, &config.EndpointGroup{
		Endpoints: []config.Endpoint{{Name: "foo", Weight: 1}},
	}, PrimaryEndpointGroupName)
	require.NoError(err)

	_, err = NewFailoverManager(FailoverManagerParams{Primary: primary}).WithFailoverContext(context.Background())
	require.Error(err)
	require.True(xerrors.Is(err, ErrFailoverUnavailable))
}
