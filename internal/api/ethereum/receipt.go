package ethereum

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
)

type (
	// TransactionReceipt is the RPC representation of a receipt.
	// Status and BlockNumber are optional so that a primary node can report a transaction
	// rejected before inclusion.
	TransactionReceipt struct {
		TransactionHash   common.Hash     `json:"transactionHash"`
		TransactionIndex  hexutil.Uint64  `json:"transactionIndex"`
		BlockHash         *common.Hash    `json:"blockHash"`
		BlockNumber       *hexutil.Big    `json:"blockNumber"`
		From              common.Address  `json:"from"`
		To                *common.Address `json:"to"`
		CumulativeGasUsed hexutil.Uint64  `json:"cumulativeGasUsed"`
		GasUsed           hexutil.Uint64  `json:"gasUsed"`
		EffectiveGasPrice *hexutil.Big    `json:"effectiveGasPrice"`
		ContractAddress   *common.Address `json:"contractAddress"`
		Logs              []*types.Log    `json:"logs"`
		LogsBloom         types.Bloom     `json:"logsBloom"`
		Type              hexutil.Uint64  `json:"type"`
		Status            *hexutil.Uint64 `json:"status"`
	}
)

// IsTerminalRejection returns true if the receipt describes a failed transaction that was never
// assigned to a block.
func (r *TransactionReceipt) IsTerminalRejection() bool {
	return r.Status != nil && uint64(*r.Status) == types.ReceiptStatusFailed && r.BlockNumber == nil
}
