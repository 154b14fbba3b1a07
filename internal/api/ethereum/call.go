package ethereum

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

type (
	// CallRequest is the argument of eth_call and eth_estimateGas.
	CallRequest struct {
		From                 *common.Address `json:"from"`
		To                   *common.Address `json:"to"`
		Gas                  *hexutil.Uint64 `json:"gas"`
		GasPrice             *hexutil.Big    `json:"gasPrice"`
		MaxFeePerGas         *hexutil.Big    `json:"maxFeePerGas"`
		MaxPriorityFeePerGas *hexutil.Big    `json:"maxPriorityFeePerGas"`
		Value                *hexutil.Big    `json:"value"`
		Nonce                *hexutil.Uint64 `json:"nonce"`
		Data                 *hexutil.Bytes  `json:"data"`
		Input                *hexutil.Bytes  `json:"input"`
	}

	// SyncState is returned by eth_syncing while the node lags behind the primary.
	SyncState struct {
		StartingBlock hexutil.Uint64 `json:"startingBlock"`
		CurrentBlock  hexutil.Uint64 `json:"currentBlock"`
		HighestBlock  hexutil.Uint64 `json:"highestBlock"`
	}
)

// GetData returns the call payload. Input takes precedence over the legacy data field.
func (r *CallRequest) GetData() []byte {
	if r.Input != nil {
		return *r.Input
	}

	if r.Data != nil {
		return *r.Data
	}

	return nil
}

// GetFrom returns the sender, or the zero address when it is absent.
func (r *CallRequest) GetFrom() common.Address {
	if r.From == nil {
		return common.Address{}
	}

	return *r.From
}

// Clone returns a shallow copy whose pointer fields may be reassigned without affecting r.
func (r *CallRequest) Clone() *CallRequest {
	clone := *r
	return &clone
}
