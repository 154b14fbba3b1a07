package crontask

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"

	"github.com/coinbase/l2node/internal/clients/blockchain/endpoints"
	"github.com/coinbase/l2node/internal/clients/primary"
	"github.com/coinbase/l2node/internal/controller/ethereum/replica"
	"github.com/coinbase/l2node/internal/controller/internal"
	"github.com/coinbase/l2node/internal/utils/fxparams"
	"github.com/coinbase/l2node/internal/utils/instrument"
	"github.com/coinbase/l2node/internal/utils/log"
)

type (
	PrimaryHeadTaskParams struct {
		fx.In
		fxparams.Params
		Primary         primary.Client
		FailoverManager endpoints.FailoverManager
		Tracker         replica.SyncTracker
	}

	// primaryHeadTask refreshes the sync progress and health checks both endpoint sets of the primary node.
	primaryHeadTask struct {
		enabled         bool
		interval        time.Duration
		logger          *zap.Logger
		primary         primary.Client
		failoverManager endpoints.FailoverManager
		tracker         replica.SyncTracker
		activeCheck     instrument.Call
		standbyCheck    instrument.Call
	}
)

const (
	primaryHeadTaskName = "primary_head"

	healthCheckMsg  = "primary.health_check"
	healthCheckType = "health_check_type"
)

func NewPrimaryHeadTask(params PrimaryHeadTaskParams) internal.CronTask {
	logger := log.WithPackage(params.Logger)
	scope := params.Metrics.SubScope(subScope).SubScope(primaryHeadTaskName)
	newHealthCheckCall := func(name string) instrument.Call {
		return instrument.NewCall(
			scope,
			name,
			instrument.WithLogger(logger.With(zap.String(healthCheckType, name)), healthCheckMsg),
		)
	}

	return &primaryHeadTask{
		enabled:         params.Config.IsFollower() && !params.Config.Cron.DisablePrimaryHead,
		interval:        params.Config.Replica.PollInterval,
		logger:          logger,
		primary:         params.Primary,
		failoverManager: params.FailoverManager,
		tracker:         params.Tracker,
		activeCheck:     newHealthCheckCall("active_health_check"),
		standbyCheck:    newHealthCheckCall("standby_health_check"),
	}
}

func (t *primaryHeadTask) Name() string {
	return primaryHeadTaskName
}

func (t *primaryHeadTask) Spec() string {
	return fmt.Sprintf("@every %v", t.interval)
}

func (t *primaryHeadTask) Parallelism() int64 {
	return 1
}

func (t *primaryHeadTask) Enabled() bool {
	return t.enabled
}

func (t *primaryHeadTask) DelayStartDuration() time.Duration {
	return 0
}

func (t *primaryHeadTask) Run(ctx context.Context) error {
	// failoverCtx stays nil when the primary group has no standby endpoints.
	failoverCtx, err := t.failoverManager.WithFailoverContext(ctx)
	if err != nil && !xerrors.Is(err, endpoints.ErrFailoverUnavailable) {
		return xerrors.Errorf("failed to create failover context: %w", err)
	}

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		if err := t.tracker.Refresh(ctx); err != nil {
			return xerrors.Errorf("failed to refresh sync progress: %w", err)
		}

		return nil
	})

	group.Go(func() error {
		_ = t.activeCheck.Instrument(ctx, t.healthCheck)
		return nil
	})

	if failoverCtx != nil {
		group.Go(func() error {
			_ = t.standbyCheck.Instrument(failoverCtx, t.healthCheck)
			return nil
		})
	}

	return group.Wait()
}

func (t *primaryHeadTask) healthCheck(ctx context.Context) error {
	head, err := t.primary.BlockNumber(ctx)
	if err != nil {
		return xerrors.Errorf("failed to get block number: %w", err)
	}

	if head == 0 {
		return xerrors.New("primary node reported block zero")
	}

	return nil
}
