package endpoints

import (
	"context"

	"go.uber.org/fx"
	"golang.org/x/xerrors"
)

type (
	// FailoverManager switches every upstream group to its standby endpoints at once.
	FailoverManager interface {
		WithFailoverContext(ctx context.Context) (context.Context, error)
	}

	FailoverManagerParams struct {
		fx.In
		Primary EndpointProvider `name:"primary"`
	}

	failoverManager struct {
		providers []EndpointProvider
	}
)

func NewFailoverManager(params FailoverManagerParams) FailoverManager {
	return newFailoverManager(params.Primary)
}

func newFailoverManager(providers ...EndpointProvider) FailoverManager {
	return &failoverManager{
		providers: providers,
	}
}

func (m *failoverManager) WithFailoverContext(ctx context.Context) (context.Context, error) {
	for _, provider := range m.providers {
		var err error
		ctx, err = provider.WithFailoverContext(ctx)
		if err != nil {
			return nil, xerrors.Errorf("failed to failover the %v endpoint group: %w", provider.Name(), err)
		}
	}

	return ctx, nil
}
