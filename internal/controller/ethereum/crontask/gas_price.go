package crontask

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/xerrors"

	"github.com/coinbase/l2node/internal/controller/ethereum/gasprice"
	"github.com/coinbase/l2node/internal/controller/internal"
	"github.com/coinbase/l2node/internal/utils/fxparams"
	"github.com/coinbase/l2node/internal/utils/log"
)

type (
	GasPriceTaskParams struct {
		fx.In
		fxparams.Params
		Oracle gasprice.Oracle
	}

	// gasPriceTask mirrors the gas price of the primary node so that followers quote the same value.
	gasPriceTask struct {
		enabled bool
		logger  *zap.Logger
		oracle  gasprice.Oracle
	}
)

func NewGasPriceTask(params GasPriceTaskParams) internal.CronTask {
	return &gasPriceTask{
		enabled: params.Config.IsFollower() && !params.Config.Cron.DisableGasPrice,
		logger:  log.WithPackage(params.Logger),
		oracle:  params.Oracle,
	}
}

func (t *gasPriceTask) Name() string {
	return "gas_price"
}

func (t *gasPriceTask) Spec() string {
	return "@every 15s"
}

func (t *gasPriceTask) Parallelism() int64 {
	return 1
}

func (t *gasPriceTask) Enabled() bool {
	return t.enabled
}

func (t *gasPriceTask) DelayStartDuration() time.Duration {
	return 5 * time.Second
}

func (t *gasPriceTask) Run(ctx context.Context) error {
	if err := t.oracle.Refresh(ctx); err != nil {
		return xerrors.Errorf("failed to refresh gas price: %w", err)
	}

	t.logger.Debug("refreshed gas price", zap.Stringer("gasPrice", t.oracle.GasPrice()))
	return nil
}
