package endpoints

import (
	"context"
	"math/rand"
	"net/http"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/xerrors"

	"github.com/coinbase/l2node/internal/config"
	"github.com/coinbase/l2node/internal/utils/log"
	"github.com/coinbase/l2node/internal/utils/picker"
)

type (
	// EndpointProvider routes outgoing requests to one endpoint of a group.
	// Requests are spread over the active endpoints by weight.
	// A failover context switches the active set to the standby endpoints.
	// Setting `EndpointGroup.UseFailover` swaps the two sets at startup.
	EndpointProvider interface {
		Name() string
		GetEndpoint(ctx context.Context) (*config.Endpoint, error)
		GetAllEndpoints() []*config.Endpoint
		GetActiveEndpoints(ctx context.Context) []*config.Endpoint
		NewHTTPClient() (*http.Client, error)
		// WithFailoverContext routes the requests made with the returned context to the standby endpoints.
		WithFailoverContext(ctx context.Context) (context.Context, error)
		HasFailoverContext(ctx context.Context) bool
		// FailoverEnabled reports whether the endpoints_failover config is serving the given context.
		FailoverEnabled(ctx context.Context) bool
	}

	EndpointProviderParams struct {
		fx.In
		Config *config.Config
		Logger *zap.Logger
	}

	EndpointProviderResult struct {
		fx.Out
		Server  EndpointProvider `name:"server"`
		Primary EndpointProvider `name:"primary"`
	}

	endpointProvider struct {
		name            string
		logger          *zap.Logger
		failoverEnabled bool
		active          *endpointSet
		standby         *endpointSet
	}

	endpointSet struct {
		endpoints []*config.Endpoint
		picker    picker.Picker
	}

	contextKey string
)

const (
	ServerEndpointGroupName  = "server"
	PrimaryEndpointGroupName = "primary"

	contextKeyFailover = "failover:"
)

var (
	ErrFailoverUnavailable = xerrors.New("no endpoint is available for failover")
	ErrNoEndpoint          = xerrors.New("no endpoint is available")
)

func NewEndpointProvider(params EndpointProviderParams) (EndpointProviderResult, error) {
	clientConfig := &params.Config.Chain.Client
	server, err := newEndpointProvider(params.Logger, &config.EndpointGroup{
		Endpoints: []config.Endpoint{
			{
				Name:   clientConfig.ServerName,
				Url:    clientConfig.ServerAddress + clientConfig.ServerHandle,
				Weight: 1,
			},
		},
	}, ServerEndpointGroupName)
	if err != nil {
		return EndpointProviderResult{}, xerrors.Errorf("failed to create %v endpoint provider: %w", ServerEndpointGroupName, err)
	}

	primary, err := newEndpointProvider(params.Logger, &clientConfig.Primary, PrimaryEndpointGroupName)
	if err != nil {
		return EndpointProviderResult{}, xerrors.Errorf("failed to create %v endpoint provider: %w", PrimaryEndpointGroupName, err)
	}

	if params.Config.IsFollower() && len(primary.GetActiveEndpoints(context.Background())) == 0 {
		return EndpointProviderResult{}, xerrors.New("replica mode requires at least one primary endpoint")
	}

	return EndpointProviderResult{
		Server:  server,
		Primary: primary,
	}, nil
}

func newEndpointProvider(logger *zap.Logger, group *config.EndpointGroup, name string) (EndpointProvider, error) {
	active := newEndpointSet(group.Endpoints)
	standby := newEndpointSet(group.EndpointsFailover)
	if group.UseFailover {
		logger.Warn("using failover endpoints", zap.String("group", name))
		active, standby = standby, active
	}

	return &endpointProvider{
		name:            name,
		logger:          log.WithPackage(logger),
		failoverEnabled: group.UseFailover,
		active:          active,
		standby:         standby,
	}, nil
}

func newEndpointSet(endpoints []config.Endpoint) *endpointSet {
	// Shuffle so that a fleet of freshly deployed nodes does not hammer the first endpoint.
	shuffled := make([]*config.Endpoint, len(endpoints))
	for i := range endpoints {
		shuffled[i] = &endpoints[i]
	}
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	choices := make([]*picker.Choice, len(shuffled))
	for i, endpoint := range shuffled {
		choices[i] = &picker.Choice{
			Item:   endpoint,
			Weight: int(endpoint.Weight),
		}
	}

	return &endpointSet{
		endpoints: shuffled,
		picker:    picker.New(choices),
	}
}

func (e *endpointProvider) Name() string {
	return e.name
}

func (e *endpointProvider) NewHTTPClient() (*http.Client, error) {
	return newHTTPClient()
}

func (e *endpointProvider) GetEndpoint(ctx context.Context) (*config.Endpoint, error) {
	set := e.activeSet(ctx)
	if len(set.endpoints) == 0 {
		return nil, xerrors.Errorf("%v: %w", e.name, ErrNoEndpoint)
	}

	return set.picker.Next().(*config.Endpoint), nil
}

func (e *endpointProvider) GetAllEndpoints() []*config.Endpoint {
	all := make([]*config.Endpoint, 0, len(e.active.endpoints)+len(e.standby.endpoints))
	all = append(all, e.active.endpoints...)
	return append(all, e.standby.endpoints...)
}

func (e *endpointProvider) GetActiveEndpoints(ctx context.Context) []*config.Endpoint {
	return e.activeSet(ctx).endpoints
}

func (e *endpointProvider) FailoverEnabled(ctx context.Context) bool {
	return e.failoverEnabled != e.HasFailoverContext(ctx)
}

func (e *endpointProvider) WithFailoverContext(ctx context.Context) (context.Context, error) {
	if len(e.standby.endpoints) == 0 {
		return nil, xerrors.Errorf("%v: %w", e.name, ErrFailoverUnavailable)
	}

	return context.WithValue(ctx, e.failoverContextKey(), struct{}{}), nil
}

func (e *endpointProvider) HasFailoverContext(ctx context.Context) bool {
	return ctx.Value(e.failoverContextKey()) != nil
}

func (e *endpointProvider) activeSet(ctx context.Context) *endpointSet {
	if e.HasFailoverContext(ctx) {
		return e.standby
	}

	return e.active
}

func (e *endpointProvider) failoverContextKey() contextKey {
	return contextKey(contextKeyFailover + e.name)
}
