package crontask

import (
	"context"
	"time"

	"github.com/uber-go/tally/v4"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/coinbase/l2node/internal/clients/blockchain/endpoints"
	"github.com/coinbase/l2node/internal/controller/internal"
	"github.com/coinbase/l2node/internal/utils/fxparams"
	"github.com/coinbase/l2node/internal/utils/log"
)

type (
	FailoverTaskParams struct {
		fx.In
		fxparams.Params
		EndpointProvider endpoints.EndpointProvider `name:"primary"`
	}

	// failoverTask reports whether the primary node is currently served by its standby endpoints.
	failoverTask struct {
		enabled          bool
		logger           *zap.Logger
		endpointProvider endpoints.EndpointProvider
		enabledGauge     tally.Gauge
	}
)

const (
	failoverTaskName = "failover"
)

func NewFailoverTask(params FailoverTaskParams) internal.CronTask {
	return &failoverTask{
		enabled:          params.Config.IsFollower() && !params.Config.Cron.DisableFailover,
		logger:           log.WithPackage(params.Logger),
		endpointProvider: params.EndpointProvider,
		enabledGauge:     params.Metrics.SubScope(subScope).SubScope(failoverTaskName).Gauge("enabled"),
	}
}

func (t *failoverTask) Name() string {
	return failoverTaskName
}

func (t *failoverTask) Spec() string {
	return "@every 60s"
}

func (t *failoverTask) Parallelism() int64 {
	return 1
}

func (t *failoverTask) Enabled() bool {
	return t.enabled
}

func (t *failoverTask) DelayStartDuration() time.Duration {
	return 0
}

func (t *failoverTask) Run(ctx context.Context) error {
	failoverEnabled := t.endpointProvider.FailoverEnabled(ctx)
	if failoverEnabled {
		t.enabledGauge.Update(1)
	} else {
		t.enabledGauge.Update(0)
	}

	t.logger.Debug(
		"finished failover task",
		zap.String("group", t.endpointProvider.Name()),
		zap.Bool("failoverEnabled", failoverEnabled),
	)
	return nil
}
