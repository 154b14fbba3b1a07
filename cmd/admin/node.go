package main

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/xerrors"

	"github.com/coinbase/l2node/internal/clients/blockchain/jsonrpc"
	"github.com/coinbase/l2node/internal/controller/ethereum/handler"
)

type (
	nodeDeps struct {
		fx.In
		Client jsonrpc.Client `name:"server"`
	}
)

var (
	nodeCommand = NewCommand("node", nil)

	sendRawTxFlags struct {
		raw string
		yes bool
	}

	logsFlags struct {
		fromBlock string
		toBlock   string
		address   string
		topic     string
	}

	blockNumberCommand = NewCommand("block-number", func() error {
		return callNode(handler.EthBlockNumber, nil, func(app *App, result json.RawMessage) error {
			var number hexutil.Uint64
			if err := json.Unmarshal(result, &number); err != nil {
				return xerrors.Errorf("failed to decode block number: %w", err)
			}

			app.Logger.Info("sealed block", zap.Uint64("number", uint64(number)))
			return nil
		})
	})

	gasPriceCommand = NewCommand("gas-price", func() error {
		return callNode(handler.EthGasPrice, nil, func(app *App, result json.RawMessage) error {
			var price hexutil.Big
			if err := json.Unmarshal(result, &price); err != nil {
				return xerrors.Errorf("failed to decode gas price: %w", err)
			}

			app.Logger.Info("gas price", zap.Stringer("wei", price.ToInt()))
			return nil
		})
	})

	syncingCommand = NewCommand("syncing", func() error {
		return callNode(handler.EthSyncing, nil, func(app *App, result json.RawMessage) error {
			app.Logger.Info("sync state", zap.ByteString("syncing", result))
			return nil
		})
	})

	sendRawTxCommand = NewCommand("send-raw-tx", func() error {
		raw, err := hexutil.Decode(sendRawTxFlags.raw)
		if err != nil {
			return xerrors.Errorf("failed to decode raw transaction: %w", err)
		}

		return callNode(handler.EthSendRawTransaction, jsonrpc.Params{hexutil.Bytes(raw)}, func(app *App, result json.RawMessage) error {
			var hash common.Hash
			if err := json.Unmarshal(result, &hash); err != nil {
				return xerrors.Errorf("failed to decode transaction hash: %w", err)
			}

			app.Logger.Info("submitted transaction", zap.Stringer("hash", hash))
			return nil
		}, confirmSubmit)
	})

	logsCommand = NewCommand("logs", func() error {
		criteria := map[string]interface{}{
			"fromBlock": logsFlags.fromBlock,
			"toBlock":   logsFlags.toBlock,
		}
		if logsFlags.address != "" {
			criteria["address"] = common.HexToAddress(logsFlags.address)
		}
		if logsFlags.topic != "" {
			criteria["topics"] = [][]common.Hash{{common.HexToHash(logsFlags.topic)}}
		}

		return callNode(handler.EthGetLogs, jsonrpc.Params{criteria}, func(app *App, result json.RawMessage) error {
			var logs []json.RawMessage
			if err := json.Unmarshal(result, &logs); err != nil {
				return xerrors.Errorf("failed to decode logs: %w", err)
			}

			for _, log := range logs {
				app.Logger.Info("log", zap.ByteString("log", log))
			}

			app.Logger.Info("found logs", zap.Int("count", len(logs)))
			return nil
		})
	})
)

func init() {
	sendRawTxCommand.StringVar(&sendRawTxFlags.raw, "raw", "", true)
	sendRawTxCommand.BoolVar(&sendRawTxFlags.yes, "yes", false, false)

	logsCommand.StringVar(&logsFlags.fromBlock, "from", "latest", false)
	logsCommand.StringVar(&logsFlags.toBlock, "to", "latest", false)
	logsCommand.StringVar(&logsFlags.address, "address", "", false)
	logsCommand.StringVar(&logsFlags.topic, "topic", "", false)

	nodeCommand.AddCommand(blockNumberCommand)
	nodeCommand.AddCommand(gasPriceCommand)
	nodeCommand.AddCommand(syncingCommand)
	nodeCommand.AddCommand(sendRawTxCommand)
	nodeCommand.AddCommand(logsCommand)
	rootCommand.AddCommand(nodeCommand)
}

func confirmSubmit(app *App) bool {
	return sendRawTxFlags.yes || app.Confirm("Submit the transaction?")
}

// callNode sends a single request to the node configured for the network and hands the result to fn.
func callNode(
	method *jsonrpc.RequestMethod,
	params jsonrpc.Params,
	fn func(app *App, result json.RawMessage) error,
	guards ...func(app *App) bool,
) error {
	var deps nodeDeps
	app, err := NewApp(fx.Populate(&deps))
	if err != nil {
		return xerrors.Errorf("failed to create command: %w", err)
	}
	defer app.Close()

	for _, guard := range guards {
		if !guard(app) {
			app.Logger.Info("aborted", zap.String("method", method.Name))
			return nil
		}
	}

	response, err := deps.Client.Call(app.Context(), method, params)
	if err != nil {
		return xerrors.Errorf("failed to call %v: %w", method.Name, err)
	}

	return fn(app, response.Result)
}
