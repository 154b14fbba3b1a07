package handler

import (
	"context"
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"

	xapi "github.com/coinbase/l2node/internal/api/ethereum"
	"github.com/coinbase/l2node/internal/clients/blockchain/jsonrpc"
)

type (
	// All public methods of the namespaces are exposed as RPC endpoints.
	// Every one of them goes through the interceptor before reaching the receiver.
	EthNamespace struct {
		dispatcher
	}

	NetNamespace struct {
		dispatcher
	}

	Web3Namespace struct {
		dispatcher
	}

	dispatcher struct {
		receiver    Receiver
		interceptor Interceptor
	}
)

func NewEthNamespace(receiver Receiver, interceptor Interceptor) *EthNamespace {
	return &EthNamespace{dispatcher{receiver: receiver, interceptor: interceptor}}
}

func NewNetNamespace(receiver Receiver, interceptor Interceptor) *NetNamespace {
	return &NetNamespace{dispatcher{receiver: receiver, interceptor: interceptor}}
}

func NewWeb3Namespace(receiver Receiver, interceptor Interceptor) *Web3Namespace {
	return &Web3Namespace{dispatcher{receiver: receiver, interceptor: interceptor}}
}

func (d *dispatcher) dispatch(ctx context.Context, method *jsonrpc.RequestMethod, params jsonrpc.Params, fn receiverFn) (json.RawMessage, error) {
	return d.interceptor(ctx, method, params, fn)
}

func (n *EthNamespace) BlockNumber(ctx context.Context) (json.RawMessage, error) {
	return n.dispatch(ctx, EthBlockNumber, nil, func(ctx context.Context) (json.RawMessage, error) {
		return n.receiver.BlockNumber(ctx)
	})
}

func (n *EthNamespace) ChainId(ctx context.Context) (json.RawMessage, error) {
	return n.dispatch(ctx, EthChainId, nil, func(ctx context.Context) (json.RawMessage, error) {
		return n.receiver.ChainId(ctx)
	})
}

func (n *EthNamespace) Call(ctx context.Context, request xapi.CallRequest, block *rpc.BlockNumberOrHash) (json.RawMessage, error) {
	return n.dispatch(ctx, EthCall, jsonrpc.Params{request, block}, func(ctx context.Context) (json.RawMessage, error) {
		return n.receiver.Call(ctx, request, block)
	})
}

// EstimateGas always estimates against the pending block; the block argument is accepted for compatibility.
func (n *EthNamespace) EstimateGas(ctx context.Context, request xapi.CallRequest, block *rpc.BlockNumberOrHash) (json.RawMessage, error) {
	return n.dispatch(ctx, EthEstimateGas, jsonrpc.Params{request, block}, func(ctx context.Context) (json.RawMessage, error) {
		return n.receiver.EstimateGas(ctx, request)
	})
}

func (n *EthNamespace) GasPrice(ctx context.Context) (json.RawMessage, error) {
	return n.dispatch(ctx, EthGasPrice, nil, func(ctx context.Context) (json.RawMessage, error) {
		return n.receiver.GasPrice(ctx)
	})
}

func (n *EthNamespace) GetBalance(ctx context.Context, address common.Address, block *rpc.BlockNumberOrHash) (json.RawMessage, error) {
	return n.dispatch(ctx, EthGetBalance, jsonrpc.Params{address, block}, func(ctx context.Context) (json.RawMessage, error) {
		return n.receiver.GetBalance(ctx, address, block)
	})
}

func (n *EthNamespace) GetCode(ctx context.Context, address common.Address, block *rpc.BlockNumberOrHash) (json.RawMessage, error) {
	return n.dispatch(ctx, EthGetCode, jsonrpc.Params{address, block}, func(ctx context.Context) (json.RawMessage, error) {
		return n.receiver.GetCode(ctx, address, block)
	})
}

func (n *EthNamespace) GetStorageAt(ctx context.Context, address common.Address, slot string, block *rpc.BlockNumberOrHash) (json.RawMessage, error) {
	return n.dispatch(ctx, EthGetStorageAt, jsonrpc.Params{address, slot, block}, func(ctx context.Context) (json.RawMessage, error) {
		return n.receiver.GetStorageAt(ctx, address, slot, block)
	})
}

func (n *EthNamespace) GetTransactionCount(ctx context.Context, address common.Address, block *rpc.BlockNumberOrHash) (json.RawMessage, error) {
	return n.dispatch(ctx, EthGetTransactionCount, jsonrpc.Params{address, block}, func(ctx context.Context) (json.RawMessage, error) {
		return n.receiver.GetTransactionCount(ctx, address, block)
	})
}

func (n *EthNamespace) GetBlockByNumber(ctx context.Context, number rpc.BlockNumber, fullTx bool) (json.RawMessage, error) {
	return n.dispatch(ctx, EthGetBlockByNumber, jsonrpc.Params{number, fullTx}, func(ctx context.Context) (json.RawMessage, error) {
		return n.receiver.GetBlockByNumber(ctx, number, fullTx)
	})
}

func (n *EthNamespace) GetBlockByHash(ctx context.Context, hash common.Hash, fullTx bool) (json.RawMessage, error) {
	return n.dispatch(ctx, EthGetBlockByHash, jsonrpc.Params{hash, fullTx}, func(ctx context.Context) (json.RawMessage, error) {
		return n.receiver.GetBlockByHash(ctx, hash, fullTx)
	})
}

func (n *EthNamespace) GetBlockTransactionCountByNumber(ctx context.Context, number rpc.BlockNumber) (json.RawMessage, error) {
	return n.dispatch(ctx, EthGetBlockTransactionCountByNumber, jsonrpc.Params{number}, func(ctx context.Context) (json.RawMessage, error) {
		return n.receiver.GetBlockTransactionCountByNumber(ctx, number)
	})
}

func (n *EthNamespace) GetBlockTransactionCountByHash(ctx context.Context, hash common.Hash) (json.RawMessage, error) {
	return n.dispatch(ctx, EthGetBlockTransactionCountByHash, jsonrpc.Params{hash}, func(ctx context.Context) (json.RawMessage, error) {
		return n.receiver.GetBlockTransactionCountByHash(ctx, hash)
	})
}

func (n *EthNamespace) GetUncleCountByBlockNumber(ctx context.Context, number rpc.BlockNumber) (json.RawMessage, error) {
	return n.dispatch(ctx, EthGetUncleCountByBlockNumber, jsonrpc.Params{number}, func(ctx context.Context) (json.RawMessage, error) {
		return n.receiver.GetUncleCount(ctx)
	})
}

func (n *EthNamespace) GetUncleCountByBlockHash(ctx context.Context, hash common.Hash) (json.RawMessage, error) {
	return n.dispatch(ctx, EthGetUncleCountByBlockHash, jsonrpc.Params{hash}, func(ctx context.Context) (json.RawMessage, error) {
		return n.receiver.GetUncleCount(ctx)
	})
}

func (n *EthNamespace) GetLogs(ctx context.Context, criteria xapi.FilterCriteria) (json.RawMessage, error) {
	return n.dispatch(ctx, EthGetLogs, jsonrpc.Params{criteria}, func(ctx context.Context) (json.RawMessage, error) {
		return n.receiver.GetLogs(ctx, criteria)
	})
}

func (n *EthNamespace) NewFilter(ctx context.Context, criteria xapi.FilterCriteria) (json.RawMessage, error) {
	return n.dispatch(ctx, EthNewFilter, jsonrpc.Params{criteria}, func(ctx context.Context) (json.RawMessage, error) {
		return n.receiver.NewFilter(ctx, criteria)
	})
}

func (n *EthNamespace) NewBlockFilter(ctx context.Context) (json.RawMessage, error) {
	return n.dispatch(ctx, EthNewBlockFilter, nil, func(ctx context.Context) (json.RawMessage, error) {
		return n.receiver.NewBlockFilter(ctx)
	})
}

func (n *EthNamespace) NewPendingTransactionFilter(ctx context.Context) (json.RawMessage, error) {
	return n.dispatch(ctx, EthNewPendingTransactionFilter, nil, func(ctx context.Context) (json.RawMessage, error) {
		return n.receiver.NewPendingTransactionFilter(ctx)
	})
}

func (n *EthNamespace) UninstallFilter(ctx context.Context, id hexutil.Uint64) (json.RawMessage, error) {
	return n.dispatch(ctx, EthUninstallFilter, jsonrpc.Params{id}, func(ctx context.Context) (json.RawMessage, error) {
		return n.receiver.UninstallFilter(ctx, id)
	})
}

func (n *EthNamespace) GetFilterLogs(ctx context.Context, id hexutil.Uint64) (json.RawMessage, error) {
	return n.dispatch(ctx, EthGetFilterLogs, jsonrpc.Params{id}, func(ctx context.Context) (json.RawMessage, error) {
		return n.receiver.GetFilterLogs(ctx, id)
	})
}

func (n *EthNamespace) GetFilterChanges(ctx context.Context, id hexutil.Uint64) (json.RawMessage, error) {
	return n.dispatch(ctx, EthGetFilterChanges, jsonrpc.Params{id}, func(ctx context.Context) (json.RawMessage, error) {
		return n.receiver.GetFilterChanges(ctx, id)
	})
}

func (n *EthNamespace) GetTransactionByHash(ctx context.Context, hash common.Hash) (json.RawMessage, error) {
	return n.dispatch(ctx, EthGetTransactionByHash, jsonrpc.Params{hash}, func(ctx context.Context) (json.RawMessage, error) {
		return n.receiver.GetTransaction(ctx, xapi.NewTransactionIDFromHash(hash))
	})
}

func (n *EthNamespace) GetTransactionByBlockHashAndIndex(ctx context.Context, hash common.Hash, index hexutil.Uint) (json.RawMessage, error) {
	return n.dispatch(ctx, EthGetTransactionByBlockHashAndIndex, jsonrpc.Params{hash, index}, func(ctx context.Context) (json.RawMessage, error) {
		id := xapi.NewTransactionIDFromBlock(rpc.BlockNumberOrHashWithHash(hash, false), uint64(index))
		return n.receiver.GetTransaction(ctx, id)
	})
}

func (n *EthNamespace) GetTransactionByBlockNumberAndIndex(ctx context.Context, number rpc.BlockNumber, index hexutil.Uint) (json.RawMessage, error) {
	return n.dispatch(ctx, EthGetTransactionByBlockNumberAndIndex, jsonrpc.Params{number, index}, func(ctx context.Context) (json.RawMessage, error) {
		id := xapi.NewTransactionIDFromBlock(rpc.BlockNumberOrHashWithNumber(number), uint64(index))
		return n.receiver.GetTransaction(ctx, id)
	})
}

func (n *EthNamespace) GetTransactionReceipt(ctx context.Context, hash common.Hash) (json.RawMessage, error) {
	return n.dispatch(ctx, EthGetTransactionReceipt, jsonrpc.Params{hash}, func(ctx context.Context) (json.RawMessage, error) {
		return n.receiver.GetTransactionReceipt(ctx, hash)
	})
}

func (n *EthNamespace) SendRawTransaction(ctx context.Context, raw hexutil.Bytes) (json.RawMessage, error) {
	return n.dispatch(ctx, EthSendRawTransaction, jsonrpc.Params{raw}, func(ctx context.Context) (json.RawMessage, error) {
		return n.receiver.SendRawTransaction(ctx, raw)
	})
}

func (n *EthNamespace) Syncing(ctx context.Context) (json.RawMessage, error) {
	return n.dispatch(ctx, EthSyncing, nil, func(ctx context.Context) (json.RawMessage, error) {
		return n.receiver.Syncing(ctx)
	})
}

func (n *EthNamespace) Accounts(ctx context.Context) (json.RawMessage, error) {
	return n.dispatch(ctx, EthAccounts, nil, func(ctx context.Context) (json.RawMessage, error) {
		return n.receiver.Accounts(ctx)
	})
}

func (n *EthNamespace) ProtocolVersion(ctx context.Context) (json.RawMessage, error) {
	return n.dispatch(ctx, EthProtocolVersion, nil, func(ctx context.Context) (json.RawMessage, error) {
		return n.receiver.ProtocolVersion(ctx)
	})
}

func (n *EthNamespace) Coinbase(ctx context.Context) (json.RawMessage, error) {
	return n.dispatch(ctx, EthCoinbase, nil, func(ctx context.Context) (json.RawMessage, error) {
		return n.receiver.Coinbase(ctx)
	})
}

func (n *EthNamespace) GetCompilers(ctx context.Context) (json.RawMessage, error) {
	return n.dispatch(ctx, EthGetCompilers, nil, func(ctx context.Context) (json.RawMessage, error) {
		return n.receiver.GetCompilers(ctx)
	})
}

func (n *EthNamespace) Hashrate(ctx context.Context) (json.RawMessage, error) {
	return n.dispatch(ctx, EthHashrate, nil, func(ctx context.Context) (json.RawMessage, error) {
		return n.receiver.Hashrate(ctx)
	})
}

func (n *EthNamespace) Mining(ctx context.Context) (json.RawMessage, error) {
	return n.dispatch(ctx, EthMining, nil, func(ctx context.Context) (json.RawMessage, error) {
		return n.receiver.Mining(ctx)
	})
}

func (n *EthNamespace) Sign(ctx context.Context, address common.Address, data hexutil.Bytes) (json.RawMessage, error) {
	return n.dispatch(ctx, EthSign, jsonrpc.Params{address, data}, func(ctx context.Context) (json.RawMessage, error) {
		return n.receiver.Unsupported(ctx)
	})
}

func (n *EthNamespace) SubmitWork(ctx context.Context, nonce types.BlockNonce, hash common.Hash, digest common.Hash) (json.RawMessage, error) {
	return n.dispatch(ctx, EthSubmitWork, jsonrpc.Params{nonce, hash, digest}, func(ctx context.Context) (json.RawMessage, error) {
		return n.receiver.Unsupported(ctx)
	})
}

func (n *EthNamespace) SubmitHashrate(ctx context.Context, rate hexutil.Uint64, id common.Hash) (json.RawMessage, error) {
	return n.dispatch(ctx, EthSubmitHashrate, jsonrpc.Params{rate, id}, func(ctx context.Context) (json.RawMessage, error) {
		return n.receiver.Unsupported(ctx)
	})
}

func (n *EthNamespace) CompileLLL(ctx context.Context, source string) (json.RawMessage, error) {
	return n.dispatch(ctx, EthCompileLLL, jsonrpc.Params{source}, func(ctx context.Context) (json.RawMessage, error) {
		return n.receiver.Unsupported(ctx)
	})
}

func (n *EthNamespace) CompileSolidity(ctx context.Context, source string) (json.RawMessage, error) {
	return n.dispatch(ctx, EthCompileSolidity, jsonrpc.Params{source}, func(ctx context.Context) (json.RawMessage, error) {
		return n.receiver.Unsupported(ctx)
	})
}

func (n *EthNamespace) CompileSerpent(ctx context.Context, source string) (json.RawMessage, error) {
	return n.dispatch(ctx, EthCompileSerpent, jsonrpc.Params{source}, func(ctx context.Context) (json.RawMessage, error) {
		return n.receiver.Unsupported(ctx)
	})
}

func (n *NetNamespace) Version(ctx context.Context) (json.RawMessage, error) {
	return n.dispatch(ctx, NetVersion, nil, func(ctx context.Context) (json.RawMessage, error) {
		return n.receiver.Version(ctx)
	})
}

func (n *NetNamespace) Listening(ctx context.Context) (json.RawMessage, error) {
	return n.dispatch(ctx, NetListening, nil, func(ctx context.Context) (json.RawMessage, error) {
		return n.receiver.Listening(ctx)
	})
}

func (n *Web3Namespace) ClientVersion(ctx context.Context) (json.RawMessage, error) {
	return n.dispatch(ctx, Web3ClientVersion, nil, func(ctx context.Context) (json.RawMessage, error) {
		return n.receiver.ClientVersion(ctx)
	})
}
