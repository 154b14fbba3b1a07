package handler

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"
	"golang.org/x/xerrors"

	"github.com/coinbase/l2node/internal/api"
	xapi "github.com/coinbase/l2node/internal/api/ethereum"
	"github.com/coinbase/l2node/internal/config"
	"github.com/coinbase/l2node/internal/controller/ethereum/filters"
	"github.com/coinbase/l2node/internal/controller/ethereum/gasprice"
	"github.com/coinbase/l2node/internal/controller/ethereum/logs"
	"github.com/coinbase/l2node/internal/controller/ethereum/replica"
	"github.com/coinbase/l2node/internal/controller/ethereum/resolver"
	"github.com/coinbase/l2node/internal/controller/ethereum/simulator"
	"github.com/coinbase/l2node/internal/controller/ethereum/submitter"
	"github.com/coinbase/l2node/internal/storage"
	storageapi "github.com/coinbase/l2node/internal/storage/ethereum"
	"github.com/coinbase/l2node/internal/utils/constants"
)

type (
	// Receiver implements the RPC methods. Every method returns the JSON encoded result;
	// a nil result is rendered as null.
	Receiver interface {
		// methods from eth namespace
		BlockNumber(ctx context.Context) (json.RawMessage, error)
		ChainId(ctx context.Context) (json.RawMessage, error)
		Call(ctx context.Context, request xapi.CallRequest, block *rpc.BlockNumberOrHash) (json.RawMessage, error)
		EstimateGas(ctx context.Context, request xapi.CallRequest) (json.RawMessage, error)
		GasPrice(ctx context.Context) (json.RawMessage, error)
		GetBalance(ctx context.Context, address common.Address, block *rpc.BlockNumberOrHash) (json.RawMessage, error)
		GetCode(ctx context.Context, address common.Address, block *rpc.BlockNumberOrHash) (json.RawMessage, error)
		GetStorageAt(ctx context.Context, address common.Address, slot string, block *rpc.BlockNumberOrHash) (json.RawMessage, error)
		GetTransactionCount(ctx context.Context, address common.Address, block *rpc.BlockNumberOrHash) (json.RawMessage, error)
		GetBlockByNumber(ctx context.Context, number rpc.BlockNumber, fullTx bool) (json.RawMessage, error)
		GetBlockByHash(ctx context.Context, hash common.Hash, fullTx bool) (json.RawMessage, error)
		GetBlockTransactionCountByNumber(ctx context.Context, number rpc.BlockNumber) (json.RawMessage, error)
		GetBlockTransactionCountByHash(ctx context.Context, hash common.Hash) (json.RawMessage, error)
		GetUncleCount(ctx context.Context) (json.RawMessage, error)
		GetLogs(ctx context.Context, criteria xapi.FilterCriteria) (json.RawMessage, error)
		NewFilter(ctx context.Context, criteria xapi.FilterCriteria) (json.RawMessage, error)
		NewBlockFilter(ctx context.Context) (json.RawMessage, error)
		NewPendingTransactionFilter(ctx context.Context) (json.RawMessage, error)
		UninstallFilter(ctx context.Context, id hexutil.Uint64) (json.RawMessage, error)
		GetFilterLogs(ctx context.Context, id hexutil.Uint64) (json.RawMessage, error)
		GetFilterChanges(ctx context.Context, id hexutil.Uint64) (json.RawMessage, error)
		GetTransaction(ctx context.Context, id xapi.TransactionID) (json.RawMessage, error)
		GetTransactionReceipt(ctx context.Context, hash common.Hash) (json.RawMessage, error)
		SendRawTransaction(ctx context.Context, raw hexutil.Bytes) (json.RawMessage, error)
		Syncing(ctx context.Context) (json.RawMessage, error)
		Accounts(ctx context.Context) (json.RawMessage, error)
		ProtocolVersion(ctx context.Context) (json.RawMessage, error)
		Coinbase(ctx context.Context) (json.RawMessage, error)
		GetCompilers(ctx context.Context) (json.RawMessage, error)
		Hashrate(ctx context.Context) (json.RawMessage, error)
		Mining(ctx context.Context) (json.RawMessage, error)
		Unsupported(ctx context.Context) (json.RawMessage, error)

		// methods from net namespace
		Version(ctx context.Context) (json.RawMessage, error)
		Listening(ctx context.Context) (json.RawMessage, error)

		// methods from web3 namespace
		ClientVersion(ctx context.Context) (json.RawMessage, error)
	}

	receiver struct {
		logger     *zap.Logger
		config     *config.Config
		accounts   []common.Address
		resolver   resolver.Resolver
		blocks     storageapi.BlockStorage
		state      storageapi.StateStorage
		registry   filters.Registry
		engine     logs.Engine
		simulator  simulator.Simulator
		submitter  submitter.Submitter
		reconciler replica.Reconciler
		tracker    replica.SyncTracker
		gasPrice   gasprice.Oracle
	}
)

const (
	slotLength = common.HashLength * 2
)

var (
	_ Receiver = (*receiver)(nil)

	emptyList = json.RawMessage("[]")
)

func (r *receiver) BlockNumber(ctx context.Context) (json.RawMessage, error) {
	sealed, err := r.resolver.SealedBlockNumber(ctx)
	if err != nil {
		return nil, err
	}

	return marshal(hexutil.Uint64(sealed))
}

func (r *receiver) ChainId(ctx context.Context) (json.RawMessage, error) {
	return marshal(hexutil.Uint64(r.config.ChainID()))
}

func (r *receiver) Call(ctx context.Context, request xapi.CallRequest, block *rpc.BlockNumberOrHash) (json.RawMessage, error) {
	output, err := r.simulator.Call(ctx, &request, block)
	if err != nil {
		return nil, err
	}

	return marshal(hexutil.Bytes(output))
}

func (r *receiver) EstimateGas(ctx context.Context, request xapi.CallRequest) (json.RawMessage, error) {
	gas, err := r.simulator.EstimateGas(ctx, &request)
	if err != nil {
		return nil, err
	}

	return marshal(hexutil.Uint64(gas))
}

func (r *receiver) GasPrice(ctx context.Context) (json.RawMessage, error) {
	return marshal((*hexutil.Big)(r.gasPrice.GasPrice()))
}

func (r *receiver) GetBalance(ctx context.Context, address common.Address, block *rpc.BlockNumberOrHash) (json.RawMessage, error) {
	number, err := r.resolveState(ctx, block)
	if err != nil {
		return nil, err
	}

	balance, err := r.state.GetBalance(ctx, address, number)
	if err != nil {
		return nil, xerrors.Errorf("failed to get balance of %v at %v: %w", address, number, err)
	}

	return marshal((*hexutil.Big)(balance))
}

func (r *receiver) GetCode(ctx context.Context, address common.Address, block *rpc.BlockNumberOrHash) (json.RawMessage, error) {
	number, err := r.resolveState(ctx, block)
	if err != nil {
		return nil, err
	}

	code, err := r.state.GetCode(ctx, address, number)
	if err != nil {
		return nil, xerrors.Errorf("failed to get code of %v at %v: %w", address, number, err)
	}

	return marshal(hexutil.Bytes(code))
}

func (r *receiver) GetStorageAt(ctx context.Context, address common.Address, slot string, block *rpc.BlockNumberOrHash) (json.RawMessage, error) {
	key, err := decodeSlot(slot)
	if err != nil {
		return nil, err
	}

	number, err := r.resolveState(ctx, block)
	if err != nil {
		return nil, err
	}

	value, err := r.state.GetStorageAt(ctx, address, key, number)
	if err != nil {
		return nil, xerrors.Errorf("failed to get storage %v of %v at %v: %w", key, address, number, err)
	}

	return marshal(value)
}

func (r *receiver) GetTransactionCount(ctx context.Context, address common.Address, block *rpc.BlockNumberOrHash) (json.RawMessage, error) {
	if isPending(block) {
		nonce, err := r.state.GetNextNonce(ctx, address)
		if err != nil {
			return nil, xerrors.Errorf("failed to get next nonce of %v: %w", address, err)
		}

		return marshal(hexutil.Uint64(nonce))
	}

	number, err := r.resolver.Resolve(ctx, *block)
	if err != nil {
		return nil, err
	}

	nonce, err := r.state.GetNonce(ctx, address, number)
	if err != nil {
		return nil, xerrors.Errorf("failed to get nonce of %v at %v: %w", address, number, err)
	}

	return marshal(hexutil.Uint64(nonce))
}

func (r *receiver) GetBlockByNumber(ctx context.Context, number rpc.BlockNumber, fullTx bool) (json.RawMessage, error) {
	block, err := r.getBlock(ctx, rpc.BlockNumberOrHashWithNumber(number))
	if err != nil || block == nil {
		return nil, err
	}

	return block.MarshalRPC(fullTx)
}

func (r *receiver) GetBlockByHash(ctx context.Context, hash common.Hash, fullTx bool) (json.RawMessage, error) {
	block, err := r.getBlock(ctx, rpc.BlockNumberOrHashWithHash(hash, false))
	if err != nil || block == nil {
		return nil, err
	}

	return block.MarshalRPC(fullTx)
}

func (r *receiver) GetBlockTransactionCountByNumber(ctx context.Context, number rpc.BlockNumber) (json.RawMessage, error) {
	block, err := r.getBlock(ctx, rpc.BlockNumberOrHashWithNumber(number))
	if err != nil || block == nil {
		return nil, err
	}

	return marshal(hexutil.Uint(len(block.Transactions)))
}

func (r *receiver) GetBlockTransactionCountByHash(ctx context.Context, hash common.Hash) (json.RawMessage, error) {
	block, err := r.getBlock(ctx, rpc.BlockNumberOrHashWithHash(hash, false))
	if err != nil || block == nil {
		return nil, err
	}

	return marshal(hexutil.Uint(len(block.Transactions)))
}

// GetUncleCount serves both uncle count methods. The chain has no uncles.
func (r *receiver) GetUncleCount(ctx context.Context) (json.RawMessage, error) {
	return marshal(hexutil.Uint(0))
}

func (r *receiver) GetLogs(ctx context.Context, criteria xapi.FilterCriteria) (json.RawMessage, error) {
	result, err := r.engine.GetLogs(ctx, &criteria)
	if err != nil {
		return nil, err
	}

	return marshalLogs(result)
}

func (r *receiver) NewFilter(ctx context.Context, criteria xapi.FilterCriteria) (json.RawMessage, error) {
	watch, err := r.engine.NewEventWatch(ctx, &criteria)
	if err != nil {
		return nil, err
	}

	return r.install(watch)
}

func (r *receiver) NewBlockFilter(ctx context.Context) (json.RawMessage, error) {
	sealed, err := r.resolver.SealedBlockNumber(ctx)
	if err != nil {
		return nil, err
	}

	return r.install(&filters.BlockWatch{LastBlock: sealed})
}

func (r *receiver) NewPendingTransactionFilter(ctx context.Context) (json.RawMessage, error) {
	return r.install(&filters.PendingTxWatch{LastSeen: time.Now().UTC()})
}

func (r *receiver) UninstallFilter(ctx context.Context, id hexutil.Uint64) (json.RawMessage, error) {
	return marshal(r.registry.Remove(filters.ID(id)))
}

// GetFilterLogs re-runs an event filter from its original start.
// LogsLimitExceeded is returned as is and the filter stays installed.
func (r *receiver) GetFilterLogs(ctx context.Context, id hexutil.Uint64) (json.RawMessage, error) {
	filter, ok := r.registry.Get(filters.ID(id))
	if !ok {
		return nil, xerrors.Errorf("filter %v: %w", id, api.ErrFilterNotFound)
	}

	watch, ok := filter.(*filters.EventWatch)
	if !ok {
		return nil, xerrors.Errorf("filter %v is a %v filter: %w", id, filter.Kind(), api.ErrFilterNotFound)
	}

	result, err := r.engine.FilterLogs(ctx, watch)
	if err != nil {
		return nil, err
	}

	return marshalLogs(result)
}

// GetFilterChanges polls the filter and advances its cursor.
// A filter that overflows the entity limit is uninstalled.
func (r *receiver) GetFilterChanges(ctx context.Context, id hexutil.Uint64) (json.RawMessage, error) {
	filterID := filters.ID(id)
	filter, ok := r.registry.Get(filterID)
	if !ok {
		return nil, xerrors.Errorf("filter %v: %w", id, api.ErrFilterNotFound)
	}

	changes, next, err := r.engine.Poll(ctx, filter)
	if err != nil {
		var limitErr *api.LogsLimitExceededError
		if xerrors.As(err, &limitErr) {
			r.registry.Remove(filterID)
			r.logger.Info(
				"uninstalled filter exceeding the entity limit",
				zap.Uint64("id", uint64(id)),
				zap.Uint64("fromBlock", limitErr.FromBlock),
				zap.Uint64("safeToBlock", limitErr.SafeToBlock),
			)
			return nil, xerrors.Errorf("filter %v was uninstalled: %w", id, api.ErrFilterNotFound)
		}

		return nil, err
	}

	r.registry.Update(filterID, next)
	return marshal(changes)
}

func (r *receiver) GetTransaction(ctx context.Context, id xapi.TransactionID) (json.RawMessage, error) {
	transaction, err := r.reconciler.GetTransaction(ctx, id)
	if err != nil || transaction == nil {
		return nil, err
	}

	return marshal(transaction)
}

func (r *receiver) GetTransactionReceipt(ctx context.Context, hash common.Hash) (json.RawMessage, error) {
	receipt, err := r.reconciler.GetTransactionReceipt(ctx, hash)
	if err != nil || receipt == nil {
		return nil, err
	}

	return marshal(receipt)
}

func (r *receiver) SendRawTransaction(ctx context.Context, raw hexutil.Bytes) (json.RawMessage, error) {
	hash, err := r.submitter.Submit(ctx, raw)
	if err != nil {
		return nil, err
	}

	return marshal(hash)
}

func (r *receiver) Syncing(ctx context.Context) (json.RawMessage, error) {
	progress := r.tracker.Syncing()
	if progress == nil {
		return marshal(false)
	}

	return marshal(progress)
}

func (r *receiver) Accounts(ctx context.Context) (json.RawMessage, error) {
	return marshal(r.accounts)
}

func (r *receiver) ProtocolVersion(ctx context.Context) (json.RawMessage, error) {
	return marshal(r.config.Chain.ProtocolVersion)
}

func (r *receiver) Coinbase(ctx context.Context) (json.RawMessage, error) {
	return marshal(common.Address{})
}

func (r *receiver) GetCompilers(ctx context.Context) (json.RawMessage, error) {
	return emptyList, nil
}

func (r *receiver) Hashrate(ctx context.Context) (json.RawMessage, error) {
	return marshal(hexutil.Uint64(0))
}

func (r *receiver) Mining(ctx context.Context) (json.RawMessage, error) {
	return marshal(false)
}

// Unsupported serves signing, work submission and compilation, none of which a read replica can do.
func (r *receiver) Unsupported(ctx context.Context) (json.RawMessage, error) {
	return nil, api.ErrMethodNotSupported
}

func (r *receiver) Version(ctx context.Context) (json.RawMessage, error) {
	return marshal(strconv.FormatUint(r.config.ChainID(), 10))
}

func (r *receiver) Listening(ctx context.Context) (json.RawMessage, error) {
	return marshal(true)
}

func (r *receiver) ClientVersion(ctx context.Context) (json.RawMessage, error) {
	return marshal(constants.ClientVersion)
}

func (r *receiver) install(filter filters.Filter) (json.RawMessage, error) {
	id := r.registry.Install(filter)
	r.logger.Debug("installed filter", zap.Uint64("id", uint64(id)), zap.String("kind", string(filter.Kind())))
	return marshal(hexutil.Uint64(id))
}

// resolveState resolves the block of a state read. An absent block means pending.
func (r *receiver) resolveState(ctx context.Context, block *rpc.BlockNumberOrHash) (uint64, error) {
	id := rpc.BlockNumberOrHashWithNumber(rpc.PendingBlockNumber)
	if block != nil {
		id = *block
	}

	return r.resolver.Resolve(ctx, id)
}

// getBlock returns nil if the block is not sealed.
func (r *receiver) getBlock(ctx context.Context, id rpc.BlockNumberOrHash) (*xapi.Block, error) {
	number, err := r.resolver.Resolve(ctx, id)
	if err != nil {
		if xerrors.Is(err, api.ErrNoBlock) {
			return nil, nil
		}

		return nil, err
	}

	block, err := r.blocks.GetBlock(ctx, number)
	if err != nil {
		if xerrors.Is(err, storage.ErrItemNotFound) {
			return nil, nil
		}

		return nil, xerrors.Errorf("failed to get block %v: %w", number, err)
	}

	return block, nil
}

func isPending(block *rpc.BlockNumberOrHash) bool {
	if block == nil {
		return true
	}

	number, ok := block.Number()
	return ok && number == rpc.PendingBlockNumber
}

// decodeSlot accepts any hex quantity up to 32 bytes, with or without leading zeros.
func decodeSlot(slot string) (common.Hash, error) {
	s := strings.TrimPrefix(strings.TrimPrefix(slot, "0x"), "0X")
	if len(s) > slotLength {
		return common.Hash{}, xerrors.Errorf("storage slot %v is longer than 32 bytes: %w", slot, api.ErrInvalidArgument)
	}

	if len(s)%2 == 1 {
		s = "0" + s
	}

	b, err := hex.DecodeString(s)
	if err != nil {
		return common.Hash{}, xerrors.Errorf("storage slot %v is not a hex string: %w", slot, api.ErrInvalidArgument)
	}

	return common.BytesToHash(b), nil
}

func marshalLogs(result []*types.Log) (json.RawMessage, error) {
	if len(result) == 0 {
		return emptyList, nil
	}

	return marshal(result)
}

func marshal(v interface{}) (json.RawMessage, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, xerrors.Errorf("failed to marshal result: %w", err)
	}

	return data, nil
}
