package gasprice

import (
	"context"
	"math/big"
	"sync/atomic"

	"github.com/uber-go/tally/v4"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/xerrors"

	"github.com/coinbase/l2node/internal/clients/primary"
	"github.com/coinbase/l2node/internal/utils/fxparams"
	"github.com/coinbase/l2node/internal/utils/log"
)

type (
	// Oracle serves the gas price quoted by eth_gasPrice and used for gas estimation.
	Oracle interface {
		GasPrice() *big.Int
		// Refresh pulls the current price from the primary node. It is a no-op unless the node is a follower.
		Refresh(ctx context.Context) error
	}

	OracleParams struct {
		fx.In
		fxparams.Params
		Primary primary.Client
	}

	oracle struct {
		logger   *zap.Logger
		follower bool
		fallback *big.Int
		primary  primary.Client
		price    atomic.Pointer[big.Int]
		gauge    tally.Gauge
	}
)

const scopeName = "gas_price"

func NewOracle(params OracleParams) Oracle {
	o := &oracle{
		logger:   log.WithPackage(params.Logger),
		follower: params.Config.IsFollower(),
		fallback: new(big.Int).SetUint64(params.Config.API.GasPrice),
		primary:  params.Primary,
		gauge:    params.Metrics.SubScope(scopeName).Gauge("current"),
	}
	o.price.Store(o.fallback)
	return o
}

func (o *oracle) GasPrice() *big.Int {
	return new(big.Int).Set(o.price.Load())
}

func (o *oracle) Refresh(ctx context.Context) error {
	if !o.follower {
		return nil
	}

	price, err := o.primary.GasPrice(ctx)
	if err != nil {
		return xerrors.Errorf("failed to get gas price from primary: %w", err)
	}

	if price == nil || price.Sign() <= 0 {
		o.logger.Warn("ignoring non-positive gas price from primary", zap.Stringer("price", price))
		return nil
	}

	o.price.Store(new(big.Int).Set(price))
	if price.IsUint64() {
		o.gauge.Update(float64(price.Uint64()))
	}

	return nil
}
