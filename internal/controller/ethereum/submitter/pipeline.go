package submitter

import (
	"context"

	"github.com/ethereum/go-ethereum/core/types"
	"golang.org/x/xerrors"

	"github.com/coinbase/l2node/internal/api"
	storageapi "github.com/coinbase/l2node/internal/storage/ethereum"
)

type (
	// Pipeline takes a decoded transaction to the place where it will eventually be sealed.
	// Rejections are reported as *api.SubmitTransactionError.
	Pipeline interface {
		Name() string
		Submit(ctx context.Context, tx *types.Transaction, raw []byte) error
	}

	mempoolPipeline struct {
		mempool storageapi.MempoolStorage
	}
)

const (
	MempoolPipelineName = "mempool"

	reasonKnownTransaction = "known-transaction"
	reasonNonceTooLow      = "nonce-too-low"
)

// NewMempoolPipeline adds transactions to the local mempool. It is used by primary nodes.
func NewMempoolPipeline(mempool storageapi.MempoolStorage) Pipeline {
	return &mempoolPipeline{
		mempool: mempool,
	}
}

func (p *mempoolPipeline) Name() string {
	return MempoolPipelineName
}

func (p *mempoolPipeline) Submit(ctx context.Context, tx *types.Transaction, _ []byte) error {
	err := p.mempool.AddPendingTransaction(ctx, tx)
	switch {
	case err == nil:
		return nil
	case xerrors.Is(err, storageapi.ErrKnownTransaction):
		return api.NewSubmitTransactionError(reasonKnownTransaction, storageapi.ErrKnownTransaction.Error(), nil)
	case xerrors.Is(err, storageapi.ErrNonceTooLow):
		return api.NewSubmitTransactionError(reasonNonceTooLow, storageapi.ErrNonceTooLow.Error(), nil)
	default:
		return xerrors.Errorf("failed to add transaction %v to mempool: %w", tx.Hash(), err)
	}
}
