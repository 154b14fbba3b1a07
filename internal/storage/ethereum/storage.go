package ethereum

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	xapi "github.com/coinbase/l2node/internal/api/ethereum"
)

type (
	// Storage is the read side of the chain data store.
	// Block numbers never decrease over the lifetime of a store.
	Storage interface {
		BlockStorage
		StateStorage
		TransactionStorage
		EventStorage
	}

	BlockStorage interface {
		// GetSealedBlockNumber returns the number of the last sealed block.
		GetSealedBlockNumber(ctx context.Context) (uint64, error)

		// GetPendingBlockNumber returns the number the next block will be sealed with.
		GetPendingBlockNumber(ctx context.Context) (uint64, error)

		// GetBlockNumberByHash returns ErrItemNotFound if the hash is unknown.
		GetBlockNumberByHash(ctx context.Context, hash common.Hash) (uint64, error)

		// GetBlock returns ErrItemNotFound if the block is not sealed.
		GetBlock(ctx context.Context, number uint64) (*xapi.Block, error)

		// GetBlockHashesAfter returns the hashes of up to limit blocks sealed after the given number, in ascending order,
		// together with the number of the last returned block. The number is nil if no block was returned.
		GetBlockHashesAfter(ctx context.Context, after uint64, limit int) ([]common.Hash, *uint64, error)
	}

	StateStorage interface {
		GetBalance(ctx context.Context, address common.Address, block uint64) (*big.Int, error)
		GetCode(ctx context.Context, address common.Address, block uint64) ([]byte, error)
		GetStorageAt(ctx context.Context, address common.Address, slot common.Hash, block uint64) (common.Hash, error)

		// GetNonce returns the nonce of the account as of the given block.
		GetNonce(ctx context.Context, address common.Address, block uint64) (uint64, error)

		// GetNextNonce returns the nonce the next transaction from the account should use,
		// taking transactions waiting in the mempool into account.
		GetNextNonce(ctx context.Context, address common.Address) (uint64, error)
	}

	TransactionStorage interface {
		// GetTransactionByHash returns ErrItemNotFound if the transaction is neither sealed nor pending.
		GetTransactionByHash(ctx context.Context, hash common.Hash) (*xapi.Transaction, error)

		// GetTransactionByBlock returns ErrItemNotFound if the block or index does not exist.
		GetTransactionByBlock(ctx context.Context, block uint64, index uint64) (*xapi.Transaction, error)

		// GetTransactionReceipt returns ErrItemNotFound if the transaction is not sealed.
		GetTransactionReceipt(ctx context.Context, hash common.Hash) (*xapi.TransactionReceipt, error)

		// GetPendingTransactionHashesAfter returns the hashes of up to limit mempool transactions received after the given time,
		// in ascending order, together with the receive time of the last one. The time is nil if no hash was returned.
		GetPendingTransactionHashesAfter(ctx context.Context, after time.Time, limit int) ([]common.Hash, *time.Time, error)
	}

	EventStorage interface {
		// GetLogs returns up to limit logs matching the filter, ordered by block number and log index.
		GetLogs(ctx context.Context, filter *xapi.LogFilter, limit int) ([]*types.Log, error)

		// GetLogBlockNumber returns the block number of the matching log at the zero-based position offset,
		// or nil if fewer logs match.
		GetLogBlockNumber(ctx context.Context, filter *xapi.LogFilter, offset int) (*uint64, error)
	}

	// MempoolStorage accepts transactions that are waiting to be sealed.
	MempoolStorage interface {
		AddPendingTransaction(ctx context.Context, tx *types.Transaction) error
	}
)
