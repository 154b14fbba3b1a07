package submitter

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/uber-go/tally/v4"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/xerrors"

	"github.com/coinbase/l2node/internal/api"
	storageapi "github.com/coinbase/l2node/internal/storage/ethereum"
	"github.com/coinbase/l2node/internal/utils/fxparams"
	"github.com/coinbase/l2node/internal/utils/log"
)

type (
	// Submitter decodes raw transactions and hands them to the submission pipeline.
	Submitter interface {
		Submit(ctx context.Context, raw []byte) (common.Hash, error)
	}

	Params struct {
		fx.In
		fxparams.Params
		Mempool storageapi.MempoolStorage
		Proxy   Pipeline `name:"proxy" optional:"true"`
	}

	submitter struct {
		logger    *zap.Logger
		maxTxSize int
		chainID   *big.Int
		pipeline  Pipeline
		scope     tally.Scope
	}
)

const (
	scopeName = "api"

	reasonInvalidChainID = "invalid-chain-id"
	reasonTag            = "reason"
	pipelineTag          = "pipeline"
)

func New(params Params) (Submitter, error) {
	logger := log.WithPackage(params.Logger)
	pipeline := NewMempoolPipeline(params.Mempool)
	if params.Config.IsFollower() {
		if params.Proxy == nil {
			return nil, xerrors.New("proxy pipeline is required in follower mode")
		}

		pipeline = params.Proxy
	}

	logger.Info("selected submission pipeline", zap.String("pipeline", pipeline.Name()))
	return &submitter{
		logger:    logger,
		maxTxSize: params.Config.API.MaxTxSize,
		chainID:   new(big.Int).SetUint64(params.Config.ChainID()),
		pipeline:  pipeline,
		scope:     params.Metrics.SubScope(scopeName).Tagged(map[string]string{pipelineTag: pipeline.Name()}),
	}, nil
}

func (s *submitter) Submit(ctx context.Context, raw []byte) (common.Hash, error) {
	hash, err := s.submit(ctx, raw)
	if err != nil {
		var submitErr *api.SubmitTransactionError
		if xerrors.As(err, &submitErr) {
			s.scope.Tagged(map[string]string{reasonTag: submitErr.Reason}).Counter("submit_tx_error").Inc(1)
			s.logger.Debug("transaction rejected", zap.String("reason", submitErr.Reason), zap.Error(err))
		}

		return common.Hash{}, err
	}

	return hash, nil
}

func (s *submitter) submit(ctx context.Context, raw []byte) (common.Hash, error) {
	if len(raw) > s.maxTxSize {
		return common.Hash{}, api.NewSubmitTransactionError(
			api.ReasonOversizedData,
			fmt.Sprintf("oversized data. max: %v; actual: %v", s.maxTxSize, len(raw)),
			nil,
		)
	}

	tx := new(types.Transaction)
	if err := tx.UnmarshalBinary(raw); err != nil {
		return common.Hash{}, xerrors.Errorf("%v: %w", err, api.ErrInvalidTransaction)
	}

	if tx.Protected() && tx.ChainId().Cmp(s.chainID) != 0 {
		return common.Hash{}, api.NewSubmitTransactionError(
			reasonInvalidChainID,
			fmt.Sprintf("invalid chain id. expected: %v; actual: %v", s.chainID, tx.ChainId()),
			nil,
		)
	}

	if _, err := types.Sender(types.LatestSignerForChainID(s.chainID), tx); err != nil {
		return common.Hash{}, xerrors.Errorf("failed to recover sender: %v: %w", err, api.ErrInvalidTransaction)
	}

	if err := s.pipeline.Submit(ctx, tx, raw); err != nil {
		return common.Hash{}, err
	}

	return tx.Hash(), nil
}
