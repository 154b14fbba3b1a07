package endpoints

import (
	"context"
	"fmt"
	"math"
	"sort"
	"testing"

	"go.uber.org/fx"
	"go.uber.org/zap/zaptest"
	"golang.org/x/xerrors"

	"github.com/coinbase/l2node/internal/config"
	"github.com/coinbase/l2node/internal/utils/testapp"
	"github.com/coinbase/l2node/internal/utils/testutil"
)

const (
	largeNumPicks = 100000
	smallNumPicks = 10
)

func TestEndpointProvider(t *testing.T) {
	require := testutil.Require(t)
	logger := zaptest.NewLogger(t)
	ctx := context.Background()

	endpoints := make([]config.Endpoint, 5)
	totalWeights := uint32(0)
	for i := range endpoints {
		endpoints[i] = config.Endpoint{
			Url:    fmt.Sprintf("url%d", i),
			Weight: ^uint8(0) - uint8(i*2),
		}
		totalWeights += uint32(endpoints[i].Weight)
	}

	ep, err := newEndpointProvider(logger, &config.EndpointGroup{Endpoints: endpoints}, "foo")
	require.NoError(err)
	require.Equal("foo", ep.Name())
	require.Len(ep.GetAllEndpoints(), len(endpoints))

	pickStats := make(map[string]int)
	for i := 0; i < largeNumPicks; i++ {
		pick, err := ep.GetEndpoint(ctx)
		require.NoError(err)
		pickStats[pick.Url] += 1
	}

	for _, endpoint := range endpoints {
		expected := float64(endpoint.Weight) / float64(totalWeights)
		actual := float64(pickStats[endpoint.Url]) / float64(largeNumPicks)
		require.True(
			math.Abs(expected-actual) < 0.01,
			"endpoint %v: expected=%3f, actual=%3f", endpoint, expected, actual,
		)
	}

	require.False(ep.FailoverEnabled(ctx))
}

func TestEndpointProvider_WithFailoverContext(t *testing.T) {
	require := testutil.Require(t)
	logger := zaptest.NewLogger(t)
	ctx := context.Background()

	ep, err := newEndpointProvider(logger, &config.EndpointGroup{
		Endpoints:         []config.Endpoint{{Name: "foo", Weight: 1}},
		EndpointsFailover: []config.Endpoint{{Name: "bar", Weight: 1}},
	}, PrimaryEndpointGroupName)
	require.NoError(err)

	allEndpoints := ep.GetAllEndpoints()
	require.Len(allEndpoints, 2)
	require.Equal("foo", allEndpoints[0].Name)
	require.Equal("bar", allEndpoints[1].Name)

	require.Equal([]string{"foo"}, getActiveEndpoints(ctx, ep))
	for i := 0; i < smallNumPicks; i++ {
		endpoint, err := ep.GetEndpoint(ctx)
		require.NoError(err)
		require.Equal("foo", endpoint.Name)
	}
	require.False(ep.FailoverEnabled(ctx))

	ctx, err = ep.WithFailoverContext(ctx)
	require.NoError(err)
	require.True(ep.HasFailoverContext(ctx))
	require.Equal([]string{"bar"}, getActiveEndpoints(ctx, ep))
	for i := 0; i < smallNumPicks; i++ {
		endpoint, err := ep.GetEndpoint(ctx)
		require.NoError(err)
		require.Equal("bar", endpoint.Name)
	}
	require.True(ep.FailoverEnabled(ctx))
}

func TestEndpointProvider_EmptyEndpoints(t *testing.T) {
	require := testutil.Require(t)
	logger := zaptest.NewLogger(t)
	ctx := context.Background()

	ep, err := newEndpointProvider(logger, &config.EndpointGroup{}, "empty")
	require.NoError(err)
	_, err = ep.GetEndpoint(ctx)
	require.True(xerrors.Is(err, ErrNoEndpoint))

	ep, err = newEndpointProvider(logger, &config.EndpointGroup{
		Endpoints:   []config.Endpoint{{Name: "foo", Weight: 1}},
		UseFailover: true,
	}, PrimaryEndpointGroupName)
	require.NoError(err)
	require.Equal([]string{}, getActiveEndpoints(ctx, ep))
	_, err = ep.GetEndpoint(ctx)
	require.Error(err)

	ep, err = newEndpointProvider(logger, &config.EndpointGroup{
		Endpoints: []config.Endpoint{{Name: "foo", Weight: 1}},
	}, PrimaryEndpointGroupName)
	require.NoError(err)
	_, err = ep.GetEndpoint(ctx)
	require.NoError(err)
	_, err = ep.WithFailoverContext(ctx)
	require.True(xerrors.Is(err, ErrFailoverUnavailable))
	require.Equal([]string{"foo"}, getActiveEndpoints(ctx, ep))
}

func TestEndpointProvider_UseFailover(t *testing.T) {
	require := testutil.Require(t)
	logger := zaptest.NewLogger(t)
	ctx := context.Background()

	ep, err := newEndpointProvider(logger, &config.EndpointGroup{
		Endpoints:         []config.Endpoint{{Name: "main", Url: "https://main", Weight: 1}},
		EndpointsFailover: []config.Endpoint{{Name: "failover", Url: "https://failover", Weight: 1}},
		UseFailover:       true,
	}, PrimaryEndpointGroupName)
	require.NoError(err)
	require.True(ep.FailoverEnabled(ctx))
	require.Equal([]*config.Endpoint{
		{Name: "failover", Url: "https://failover", Weight: 1},
		{Name: "main", Url: "https://main", Weight: 1},
	}, ep.GetAllEndpoints())
	require.Equal([]string{"failover"}, getActiveEndpoints(ctx, ep))

	ctx, err = ep.WithFailoverContext(ctx)
	require.NoError(err)
	require.True(ep.HasFailoverContext(ctx))
	require.False(ep.FailoverEnabled(ctx))
	require.Equal([]string{"main"}, getActiveEndpoints(ctx, ep))
}

func TestNewEndpointProvider(t *testing.T) {
	require := testutil.Require(t)

	var result struct {
		fx.In
		Server  EndpointProvider `name:"server"`
		Primary EndpointProvider `name:"primary"`
	}
	app := testapp.New(t, Module, fx.Populate(&result))
	defer app.Close()

	ctx := context.Background()
	endpoint, err := result.Server.GetEndpoint(ctx)
	require.NoError(err)
	require.Equal("http://localhost:8000/v1", endpoint.Url)
	require.Equal(ServerEndpointGroupName, result.Server.Name())
	require.Equal(PrimaryEndpointGroupName, result.Primary.Name())
	require.Empty(result.Primary.GetAllEndpoints())
}

func TestNewEndpointProvider_FollowerWithoutPrimary(t *testing.T) {
	require := testutil.Require(t)

	cfg, err := config.New()
	require.NoError(err)
	cfg.Replica.Enabled = true

	_, err = NewEndpointProvider(EndpointProviderParams{
		Config: cfg,
		Logger: zaptest.NewLogger(t),
	})
	require.Error(err)
}

func getActiveEndpoints(ctx context.Context, ep EndpointProvider) []string {
	endpoints := ep.GetActiveEndpoints(ctx)
	res := make([]string, len(endpoints))
	for i, endpoint := range endpoints {
		res[i] = endpoint.Name
	}

	sort.Strings(res)
	return res
}
