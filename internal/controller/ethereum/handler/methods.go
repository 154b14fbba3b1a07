package handler

import (
	"time"

	"github.com/coinbase/l2node/internal/clients/blockchain/jsonrpc"
)

const (
	NamespaceEth  = "eth"
	NamespaceNet  = "net"
	NamespaceWeb3 = "web3"
)

// All the supported methods are documented here: https://ethereum.org/en/developers/docs/apis/json-rpc/
var (
	EthBlockNumber = &jsonrpc.RequestMethod{
		Name:    "eth_blockNumber",
		Timeout: time.Second * 2,
	}

	EthChainId = &jsonrpc.RequestMethod{
		Name:    "eth_chainId",
		Timeout: time.Second,
	}

	EthCall = &jsonrpc.RequestMethod{
		Name:    "eth_call",
		Timeout: time.Second * 10,
	}

	EthEstimateGas = &jsonrpc.RequestMethod{
		Name:    "eth_estimateGas",
		Timeout: time.Second * 30,
	}

	EthGasPrice = &jsonrpc.RequestMethod{
		Name:    "eth_gasPrice",
		Timeout: time.Second,
	}

	EthGetBalance = &jsonrpc.RequestMethod{
		Name:    "eth_getBalance",
		Timeout: time.Second * 2,
	}

	EthGetCode = &jsonrpc.RequestMethod{
		Name:    "eth_getCode",
		Timeout: time.Second * 2,
	}

	EthGetStorageAt = &jsonrpc.RequestMethod{
		Name:    "eth_getStorageAt",
		Timeout: time.Second * 2,
	}

	EthGetTransactionCount = &jsonrpc.RequestMethod{
		Name:    "eth_getTransactionCount",
		Timeout: time.Second * 2,
	}

	EthGetBlockByNumber = &jsonrpc.RequestMethod{
		Name:    "eth_getBlockByNumber",
		Timeout: time.Second * 2,
	}

	EthGetBlockByHash = &jsonrpc.RequestMethod{
		Name:    "eth_getBlockByHash",
		Timeout: time.Second * 2,
	}

	EthGetBlockTransactionCountByNumber = &jsonrpc.RequestMethod{
		Name:    "eth_getBlockTransactionCountByNumber",
		Timeout: time.Second * 2,
	}

	EthGetBlockTransactionCountByHash = &jsonrpc.RequestMethod{
		Name:    "eth_getBlockTransactionCountByHash",
		Timeout: time.Second * 2,
	}

	EthGetUncleCountByBlockNumber = &jsonrpc.RequestMethod{
		Name:    "eth_getUncleCountByBlockNumber",
		Timeout: time.Second,
	}

	EthGetUncleCountByBlockHash = &jsonrpc.RequestMethod{
		Name:    "eth_getUncleCountByBlockHash",
		Timeout: time.Second,
	}

	EthGetLogs = &jsonrpc.RequestMethod{
		Name:    "eth_getLogs",
		Timeout: time.Second * 5,
	}

	EthNewFilter = &jsonrpc.RequestMethod{
		Name:    "eth_newFilter",
		Timeout: time.Second * 2,
	}

	EthNewBlockFilter = &jsonrpc.RequestMethod{
		Name:    "eth_newBlockFilter",
		Timeout: time.Second * 2,
	}

	EthNewPendingTransactionFilter = &jsonrpc.RequestMethod{
		Name:    "eth_newPendingTransactionFilter",
		Timeout: time.Second,
	}

	EthUninstallFilter = &jsonrpc.RequestMethod{
		Name:    "eth_uninstallFilter",
		Timeout: time.Second,
	}

	EthGetFilterLogs = &jsonrpc.RequestMethod{
		Name:    "eth_getFilterLogs",
		Timeout: time.Second * 5,
	}

	EthGetFilterChanges = &jsonrpc.RequestMethod{
		Name:    "eth_getFilterChanges",
		Timeout: time.Second * 5,
	}

	EthGetTransactionByHash = &jsonrpc.RequestMethod{
		Name:    "eth_getTransactionByHash",
		Timeout: time.Second * 2,
	}

	EthGetTransactionByBlockHashAndIndex = &jsonrpc.RequestMethod{
		Name:    "eth_getTransactionByBlockHashAndIndex",
		Timeout: time.Second * 2,
	}

	EthGetTransactionByBlockNumberAndIndex = &jsonrpc.RequestMethod{
		Name:    "eth_getTransactionByBlockNumberAndIndex",
		Timeout: time.Second * 2,
	}

	EthGetTransactionReceipt = &jsonrpc.RequestMethod{
		Name:    "eth_getTransactionReceipt",
		Timeout: time.Second * 2,
	}

	EthSendRawTransaction = &jsonrpc.RequestMethod{
		Name:    "eth_sendRawTransaction",
		Timeout: time.Second * 10,
	}

	EthSyncing = &jsonrpc.RequestMethod{
		Name:    "eth_syncing",
		Timeout: time.Second,
	}

	EthAccounts = &jsonrpc.RequestMethod{
		Name:    "eth_accounts",
		Timeout: time.Second,
	}

	EthProtocolVersion = &jsonrpc.RequestMethod{
		Name:    "eth_protocolVersion",
		Timeout: time.Second,
	}

	EthCoinbase = &jsonrpc.RequestMethod{
		Name:    "eth_coinbase",
		Timeout: time.Second,
	}

	EthGetCompilers = &jsonrpc.RequestMethod{
		Name:    "eth_getCompilers",
		Timeout: time.Second,
	}

	EthHashrate = &jsonrpc.RequestMethod{
		Name:    "eth_hashrate",
		Timeout: time.Second,
	}

	EthMining = &jsonrpc.RequestMethod{
		Name:    "eth_mining",
		Timeout: time.Second,
	}

	EthSign = &jsonrpc.RequestMethod{
		Name:    "eth_sign",
		Timeout: time.Second,
	}

	EthSubmitWork = &jsonrpc.RequestMethod{
		Name:    "eth_submitWork",
		Timeout: time.Second,
	}

	EthSubmitHashrate = &jsonrpc.RequestMethod{
		Name:    "eth_submitHashrate",
		Timeout: time.Second,
	}

	EthCompileLLL = &jsonrpc.RequestMethod{
		Name:    "eth_compileLLL",
		Timeout: time.Second,
	}

	EthCompileSolidity = &jsonrpc.RequestMethod{
		Name:    "eth_compileSolidity",
		Timeout: time.Second,
	}

	EthCompileSerpent = &jsonrpc.RequestMethod{
		Name:    "eth_compileSerpent",
		Timeout: time.Second,
	}

	NetVersion = &jsonrpc.RequestMethod{
		Name:    "net_version",
		Timeout: time.Second,
	}

	NetListening = &jsonrpc.RequestMethod{
		Name:    "net_listening",
		Timeout: time.Second,
	}

	Web3ClientVersion = &jsonrpc.RequestMethod{
		Name:    "web3_clientVersion",
		Timeout: time.Second,
	}

	// Methods lists every method served by the namespaces.
	Methods = []*jsonrpc.RequestMethod{
		EthBlockNumber,
		EthChainId,
		EthCall,
		EthEstimateGas,
		EthGasPrice,
		EthGetBalance,
		EthGetCode,
		EthGetStorageAt,
		EthGetTransactionCount,
		EthGetBlockByNumber,
		EthGetBlockByHash,
		EthGetBlockTransactionCountByNumber,
		EthGetBlockTransactionCountByHash,
		EthGetUncleCountByBlockNumber,
		EthGetUncleCountByBlockHash,
		EthGetLogs,
		EthNewFilter,
		EthNewBlockFilter,
		EthNewPendingTransactionFilter,
		EthUninstallFilter,
		EthGetFilterLogs,
		EthGetFilterChanges,
		EthGetTransactionByHash,
		EthGetTransactionByBlockHashAndIndex,
		EthGetTransactionByBlockNumberAndIndex,
		EthGetTransactionReceipt,
		EthSendRawTransaction,
		EthSyncing,
		EthAccounts,
		EthProtocolVersion,
		EthCoinbase,
		EthGetCompilers,
		EthHashrate,
		EthMining,
		EthSign,
		EthSubmitWork,
		EthSubmitHashrate,
		EthCompileLLL,
		EthCompileSolidity,
		EthCompileSerpent,
		NetVersion,
		NetListening,
		Web3ClientVersion,
	}
)
