package primary

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/xerrors"

	xapi "github.com/coinbase/l2node/internal/api/ethereum"
	"github.com/coinbase/l2node/internal/clients/blockchain/jsonrpc"
	"github.com/coinbase/l2node/internal/utils/log"
)

type (
	// Client talks to the upstream primary node on behalf of a follower.
	// Lookups return nil without an error when the primary does not know the item.
	Client interface {
		BlockNumber(ctx context.Context) (uint64, error)
		GasPrice(ctx context.Context) (*big.Int, error)
		SendRawTransaction(ctx context.Context, raw []byte) (common.Hash, error)
		GetTransaction(ctx context.Context, id xapi.TransactionID) (*xapi.Transaction, error)
		GetTransactionReceipt(ctx context.Context, hash common.Hash) (*xapi.TransactionReceipt, error)
	}

	ClientParams struct {
		fx.In
		Logger *zap.Logger
		Client jsonrpc.Client `name:"primary"`
	}

	client struct {
		logger *zap.Logger
		client jsonrpc.Client
	}
)

var (
	ethBlockNumber = &jsonrpc.RequestMethod{
		Name:    "eth_blockNumber",
		Timeout: 5 * time.Second,
	}

	ethGasPrice = &jsonrpc.RequestMethod{
		Name:    "eth_gasPrice",
		Timeout: 5 * time.Second,
	}

	ethSendRawTransaction = &jsonrpc.RequestMethod{
		Name:    "eth_sendRawTransaction",
		Timeout: 15 * time.Second,
	}

	ethGetTransactionByHash = &jsonrpc.RequestMethod{
		Name:    "eth_getTransactionByHash",
		Timeout: 5 * time.Second,
	}

	ethGetTransactionByBlockHashAndIndex = &jsonrpc.RequestMethod{
		Name:    "eth_getTransactionByBlockHashAndIndex",
		Timeout: 5 * time.Second,
	}

	ethGetTransactionByBlockNumberAndIndex = &jsonrpc.RequestMethod{
		Name:    "eth_getTransactionByBlockNumberAndIndex",
		Timeout: 5 * time.Second,
	}

	ethGetTransactionReceipt = &jsonrpc.RequestMethod{
		Name:    "eth_getTransactionReceipt",
		Timeout: 5 * time.Second,
	}
)

func NewClient(params ClientParams) Client {
	return &client{
		logger: log.WithPackage(params.Logger),
		client: params.Client,
	}
}

func (c *client) BlockNumber(ctx context.Context) (uint64, error) {
	var result hexutil.Uint64
	if _, err := c.call(ctx, ethBlockNumber, nil, &result); err != nil {
		return 0, err
	}

	return uint64(result), nil
}

func (c *client) GasPrice(ctx context.Context) (*big.Int, error) {
	var result hexutil.Big
	if _, err := c.call(ctx, ethGasPrice, nil, &result); err != nil {
		return nil, err
	}

	return result.ToInt(), nil
}

func (c *client) SendRawTransaction(ctx context.Context, raw []byte) (common.Hash, error) {
	var result common.Hash
	found, err := c.call(ctx, ethSendRawTransaction, jsonrpc.Params{hexutil.Bytes(raw)}, &result)
	if err != nil {
		return common.Hash{}, err
	}

	if !found {
		return common.Hash{}, xerrors.Errorf("received an empty %v response", ethSendRawTransaction.Name)
	}

	return result, nil
}

func (c *client) GetTransaction(ctx context.Context, id xapi.TransactionID) (*xapi.Transaction, error) {
	var (
		method *jsonrpc.RequestMethod
		params jsonrpc.Params
	)
	switch {
	case id.Hash != nil:
		method = ethGetTransactionByHash
		params = jsonrpc.Params{*id.Hash}
	case id.Block != nil && id.Block.BlockHash != nil:
		method = ethGetTransactionByBlockHashAndIndex
		params = jsonrpc.Params{*id.Block.BlockHash, hexutil.Uint64(id.Index)}
	case id.Block != nil && id.Block.BlockNumber != nil:
		method = ethGetTransactionByBlockNumberAndIndex
		params = jsonrpc.Params{id.Block.BlockNumber.String(), hexutil.Uint64(id.Index)}
	default:
		return nil, xerrors.Errorf("invalid transaction id: %v", id)
	}

	var result xapi.Transaction
	found, err := c.call(ctx, method, params, &result)
	if err != nil || !found {
		return nil, err
	}

	return &result, nil
}

func (c *client) GetTransactionReceipt(ctx context.Context, hash common.Hash) (*xapi.TransactionReceipt, error) {
	var result xapi.TransactionReceipt
	found, err := c.call(ctx, ethGetTransactionReceipt, jsonrpc.Params{hash}, &result)
	if err != nil || !found {
		return nil, err
	}

	return &result, nil
}

// call returns false when the primary responded with null.
func (c *client) call(ctx context.Context, method *jsonrpc.RequestMethod, params jsonrpc.Params, out interface{}) (bool, error) {
	response, err := c.client.Call(ctx, method, params)
	if err != nil {
		return false, xerrors.Errorf("failed to call %v on primary: %w", method.Name, err)
	}

	if response.IsNullOrEmpty() {
		c.logger.Debug("primary returned null", zap.String("method", method.Name))
		return false, nil
	}

	if err := response.Unmarshal(out); err != nil {
		return false, xerrors.Errorf("failed to decode %v response: %w", method.Name, err)
	}

	return true, nil
}
