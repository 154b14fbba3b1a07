package simulator

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/params"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/uber-go/tally/v4"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/xerrors"

	"github.com/coinbase/l2node/internal/api"
	xapi "github.com/coinbase/l2node/internal/api/ethereum"
	"github.com/coinbase/l2node/internal/controller/ethereum/gasprice"
	"github.com/coinbase/l2node/internal/controller/ethereum/resolver"
	storageapi "github.com/coinbase/l2node/internal/storage/ethereum"
	"github.com/coinbase/l2node/internal/utils/fxparams"
	"github.com/coinbase/l2node/internal/utils/log"
)

type (
	// Simulator runs read-only calls and gas estimation in the sandbox.
	Simulator interface {
		// Call executes the request on top of the given block, which defaults to pending.
		Call(ctx context.Context, request *xapi.CallRequest, block *rpc.BlockNumberOrHash) ([]byte, error)
		// EstimateGas returns the gas limit the request needs on top of the pending block.
		EstimateGas(ctx context.Context, request *xapi.CallRequest) (uint64, error)
	}

	Params struct {
		fx.In
		fxparams.Params
		Resolver resolver.Resolver
		State    storageapi.StateStorage
		GasPrice gasprice.Oracle
		Sandbox  Sandbox `optional:"true"`
	}

	simulator struct {
		logger                 *zap.Logger
		resolver               resolver.Resolver
		state                  storageapi.StateStorage
		gasPrice               gasprice.Oracle
		sandbox                Sandbox
		output                 OutputStrategy
		gasCap                 uint64
		acceptableOverestimate uint64
		scaleFactor            float64
		metrics                *simulatorMetrics
	}

	simulatorMetrics struct {
		executions      tally.Counter
		executionErrors tally.Counter
		estimateSteps   tally.Histogram
	}
)

const scopeName = "simulator"

var pendingBlock = rpc.BlockNumberOrHashWithNumber(rpc.PendingBlockNumber)

func New(params Params) Simulator {
	logger := log.WithPackage(params.Logger)
	cfg := params.Config.API
	if params.Sandbox == nil {
		logger.Info("sandbox is not available, eth_call and eth_estimateGas are disabled")
	}

	scope := params.Metrics.SubScope(scopeName)
	return &simulator{
		logger:                 logger,
		resolver:               params.Resolver,
		state:                  params.State,
		gasPrice:               params.GasPrice,
		sandbox:                params.Sandbox,
		output:                 NewOutputStrategy(cfg.CompatMode),
		gasCap:                 cfg.EstimateGasCap,
		acceptableOverestimate: cfg.EstimateGasAcceptableOverestimation,
		scaleFactor:            cfg.EstimateGasScaleFactor,
		metrics: &simulatorMetrics{
			executions:      scope.Counter("executions"),
			executionErrors: scope.Counter("execution_errors"),
			estimateSteps:   scope.Histogram("estimate_steps", tally.MustMakeLinearValueBuckets(0, 4, 16)),
		},
	}
}

func (s *simulator) Call(ctx context.Context, request *xapi.CallRequest, block *rpc.BlockNumberOrHash) ([]byte, error) {
	if s.sandbox == nil {
		return nil, api.ErrMethodNotSupported
	}

	if block == nil {
		block = &pendingBlock
	}

	number, err := s.resolver.Resolve(ctx, *block)
	if err != nil {
		return nil, err
	}

	request, err = s.withNonce(ctx, request, number)
	if err != nil {
		return nil, err
	}

	output, err := s.execute(ctx, number, request)
	if err != nil {
		return nil, err
	}

	return s.output.Apply(output), nil
}

func (s *simulator) EstimateGas(ctx context.Context, request *xapi.CallRequest) (uint64, error) {
	if s.sandbox == nil {
		return 0, api.ErrMethodNotSupported
	}

	number, err := s.resolver.Resolve(ctx, pendingBlock)
	if err != nil {
		return 0, err
	}

	request, err = s.withNonce(ctx, request, number)
	if err != nil {
		return 0, err
	}

	// The fee fields of the caller must not bias the estimate.
	price := (*hexutil.Big)(s.gasPrice.GasPrice())
	request.GasPrice = nil
	request.MaxFeePerGas = price
	request.MaxPriorityFeePerGas = price

	// Fail fast if the request cannot succeed even at the cap.
	if _, err := s.execute(ctx, number, withGas(request, s.gasCap)); err != nil {
		return 0, err
	}

	lo, hi := uint64(params.TxGas-1), s.gasCap
	steps := 0
	for hi > lo+1 && hi-lo > s.acceptableOverestimate {
		mid := lo + (hi-lo)/2
		steps += 1
		_, err := s.execute(ctx, number, withGas(request, mid))
		if err != nil {
			var execErr *api.SubmitTransactionError
			if !xerrors.As(err, &execErr) || execErr.Reason != api.ReasonExecution {
				return 0, err
			}

			lo = mid
			continue
		}

		hi = mid
	}

	s.metrics.estimateSteps.RecordValue(float64(steps))
	estimate := scale(hi, s.scaleFactor)
	s.logger.Debug(
		"estimated gas",
		zap.Uint64("block", number),
		zap.Uint64("gas", hi),
		zap.Uint64("estimate", estimate),
		zap.Int("steps", steps),
	)
	return estimate, nil
}

// withNonce returns a copy of request whose nonce is filled from the state at the given block.
func (s *simulator) withNonce(ctx context.Context, request *xapi.CallRequest, block uint64) (*xapi.CallRequest, error) {
	request = request.Clone()
	if request.Nonce != nil {
		return request, nil
	}

	from := request.GetFrom()
	nonce, err := s.state.GetNonce(ctx, from, block)
	if err != nil {
		return nil, xerrors.Errorf("failed to get nonce of %v at block %v: %w", from, block, err)
	}

	request.Nonce = (*hexutil.Uint64)(&nonce)
	return request, nil
}

func (s *simulator) execute(ctx context.Context, block uint64, request *xapi.CallRequest) ([]byte, error) {
	s.metrics.executions.Inc(1)
	output, err := s.sandbox.Execute(ctx, block, request)
	if err == nil {
		return output, nil
	}

	s.metrics.executionErrors.Inc(1)
	if xerrors.Is(err, context.Canceled) || xerrors.Is(err, context.DeadlineExceeded) {
		return nil, err
	}

	var execErr *ExecutionError
	if xerrors.As(err, &execErr) {
		return nil, api.NewSubmitTransactionError(api.ReasonExecution, execErr.Message, execErr.Data)
	}

	return nil, api.NewSubmitTransactionError(api.ReasonUnknown, err.Error(), nil)
}

func withGas(request *xapi.CallRequest, gas uint64) *xapi.CallRequest {
	request = request.Clone()
	request.Gas = (*hexutil.Uint64)(&gas)
	return request
}

func scale(gas uint64, factor float64) uint64 {
	scaled, _ := new(big.Float).Mul(new(big.Float).SetUint64(gas), big.NewFloat(factor)).Uint64()
	return scaled
}
