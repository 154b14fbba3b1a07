package resolver

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/fx"
	"golang.org/x/xerrors"

	"github.com/coinbase/l2node/internal/api"
	"github.com/coinbase/l2node/internal/storage"
	storageapi "github.com/coinbase/l2node/internal/storage/ethereum"
)

type (
	// Resolver maps block identifiers to sealed block numbers.
	// It holds no state and reads the store on every call.
	Resolver interface {
		// Resolve fails with api.ErrNoBlock when the identifier does not name a sealed block.
		// The pending tag resolves to the block that will be sealed next.
		Resolve(ctx context.Context, id rpc.BlockNumberOrHash) (uint64, error)
		ResolveNumber(ctx context.Context, number rpc.BlockNumber) (uint64, error)
		ResolveHash(ctx context.Context, hash common.Hash) (uint64, error)
		// ResolveFilterBound resolves a log filter bound without the tip check.
		// An absent bound means the latest sealed block.
		ResolveFilterBound(ctx context.Context, number *rpc.BlockNumber) (uint64, error)
		SealedBlockNumber(ctx context.Context) (uint64, error)
	}

	Params struct {
		fx.In
		Storage storageapi.BlockStorage
	}

	resolver struct {
		storage storageapi.BlockStorage
	}
)

const genesisBlockNumber = 0

func New(params Params) Resolver {
	return &resolver{
		storage: params.Storage,
	}
}

func (r *resolver) Resolve(ctx context.Context, id rpc.BlockNumberOrHash) (uint64, error) {
	if hash, ok := id.Hash(); ok {
		return r.ResolveHash(ctx, hash)
	}

	if number, ok := id.Number(); ok {
		return r.ResolveNumber(ctx, number)
	}

	return 0, xerrors.Errorf("invalid block identifier %v: %w", id, api.ErrNoBlock)
}

func (r *resolver) ResolveNumber(ctx context.Context, number rpc.BlockNumber) (uint64, error) {
	switch number {
	case rpc.PendingBlockNumber:
		pending, err := r.storage.GetPendingBlockNumber(ctx)
		if err != nil {
			return 0, xerrors.Errorf("failed to get pending block number: %w", err)
		}

		return pending, nil
	case rpc.LatestBlockNumber, rpc.SafeBlockNumber, rpc.FinalizedBlockNumber:
		return r.SealedBlockNumber(ctx)
	case rpc.EarliestBlockNumber:
		return genesisBlockNumber, nil
	}

	if number < 0 {
		return 0, xerrors.Errorf("unknown block tag %v: %w", number, api.ErrNoBlock)
	}

	sealed, err := r.SealedBlockNumber(ctx)
	if err != nil {
		return 0, err
	}

	if uint64(number) > sealed {
		return 0, xerrors.Errorf("block %v is beyond the sealed tip %v: %w", number, sealed, api.ErrNoBlock)
	}

	return uint64(number), nil
}

func (r *resolver) ResolveHash(ctx context.Context, hash common.Hash) (uint64, error) {
	number, err := r.storage.GetBlockNumberByHash(ctx, hash)
	if err != nil {
		if xerrors.Is(err, storage.ErrItemNotFound) {
			return 0, xerrors.Errorf("block %v: %w", hash, api.ErrNoBlock)
		}

		return 0, xerrors.Errorf("failed to get block number by hash %v: %w", hash, err)
	}

	return number, nil
}

func (r *resolver) ResolveFilterBound(ctx context.Context, number *rpc.BlockNumber) (uint64, error) {
	if number == nil {
		return r.SealedBlockNumber(ctx)
	}

	if *number >= 0 {
		return uint64(*number), nil
	}

	return r.ResolveNumber(ctx, *number)
}

func (r *resolver) SealedBlockNumber(ctx context.Context) (uint64, error) {
	sealed, err := r.storage.GetSealedBlockNumber(ctx)
	if err != nil {
		return 0, xerrors.Errorf("failed to get sealed block number: %w", err)
	}

	return sealed, nil
}
