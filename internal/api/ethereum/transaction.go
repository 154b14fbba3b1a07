package ethereum

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"
	"golang.org/x/xerrors"
)

type (
	// TransactionID identifies a transaction either by hash or by its position in a block.
	// Exactly one of Hash and Block is set.
	TransactionID struct {
		Hash  *common.Hash
		Block *rpc.BlockNumberOrHash
		Index uint64
	}

	// Transaction is the RPC representation of a transaction.
	// Block fields are nil while the transaction is pending.
	Transaction struct {
		BlockHash            *common.Hash    `json:"blockHash"`
		BlockNumber          *hexutil.Big    `json:"blockNumber"`
		From                 common.Address  `json:"from"`
		Gas                  hexutil.Uint64  `json:"gas"`
		GasPrice             *hexutil.Big    `json:"gasPrice"`
		MaxFeePerGas         *hexutil.Big    `json:"maxFeePerGas,omitempty"`
		MaxPriorityFeePerGas *hexutil.Big    `json:"maxPriorityFeePerGas,omitempty"`
		Hash                 common.Hash     `json:"hash"`
		Input                hexutil.Bytes   `json:"input"`
		Nonce                hexutil.Uint64  `json:"nonce"`
		To                   *common.Address `json:"to"`
		TransactionIndex     *hexutil.Uint64 `json:"transactionIndex"`
		Value                *hexutil.Big    `json:"value"`
		Type                 hexutil.Uint64  `json:"type"`
		ChainID              *hexutil.Big    `json:"chainId,omitempty"`
		V                    *hexutil.Big    `json:"v"`
		R                    *hexutil.Big    `json:"r"`
		S                    *hexutil.Big    `json:"s"`
	}
)

func NewTransactionIDFromHash(hash common.Hash) TransactionID {
	return TransactionID{Hash: &hash}
}

func NewTransactionIDFromBlock(block rpc.BlockNumberOrHash, index uint64) TransactionID {
	return TransactionID{Block: &block, Index: index}
}

func (id TransactionID) String() string {
	if id.Hash != nil {
		return id.Hash.String()
	}

	if id.Block != nil {
		return id.Block.String() + ":" + hexutil.EncodeUint64(id.Index)
	}

	return "<empty>"
}

// NewPendingTransaction converts a signed transaction into its RPC form without block fields.
// The sender is recovered with the latest signer for the transaction's chain id.
func NewPendingTransaction(tx *types.Transaction) (*Transaction, error) {
	from, err := types.Sender(types.LatestSignerForChainID(tx.ChainId()), tx)
	if err != nil {
		return nil, xerrors.Errorf("failed to recover sender of %v: %w", tx.Hash(), err)
	}

	return newTransaction(tx, from, nil, nil, nil), nil
}

// NewSealedTransaction converts a signed transaction included at the given position of a sealed block.
func NewSealedTransaction(tx *types.Transaction, blockHash common.Hash, blockNumber uint64, index uint64) (*Transaction, error) {
	from, err := types.Sender(types.LatestSignerForChainID(tx.ChainId()), tx)
	if err != nil {
		return nil, xerrors.Errorf("failed to recover sender of %v: %w", tx.Hash(), err)
	}

	return newTransaction(tx, from, &blockHash, new(big.Int).SetUint64(blockNumber), &index), nil
}

func newTransaction(tx *types.Transaction, from common.Address, blockHash *common.Hash, blockNumber *big.Int, index *uint64) *Transaction {
	v, r, s := tx.RawSignatureValues()
	result := &Transaction{
		BlockHash: blockHash,
		From:      from,
		Gas:       hexutil.Uint64(tx.Gas()),
		GasPrice:  (*hexutil.Big)(tx.GasPrice()),
		Hash:      tx.Hash(),
		Input:     hexutil.Bytes(tx.Data()),
		Nonce:     hexutil.Uint64(tx.Nonce()),
		To:        tx.To(),
		Value:     (*hexutil.Big)(tx.Value()),
		Type:      hexutil.Uint64(tx.Type()),
		V:         (*hexutil.Big)(v),
		R:         (*hexutil.Big)(r),
		S:         (*hexutil.Big)(s),
	}

	if blockNumber != nil {
		result.BlockNumber = (*hexutil.Big)(blockNumber)
	}

	if index != nil {
		result.TransactionIndex = (*hexutil.Uint64)(index)
	}

	if tx.Type() != types.LegacyTxType {
		result.ChainID = (*hexutil.Big)(tx.ChainId())
	}

	if tx.Type() == types.DynamicFeeTxType || tx.Type() == types.BlobTxType {
		result.MaxFeePerGas = (*hexutil.Big)(tx.GasFeeCap())
		result.MaxPriorityFeePerGas = (*hexutil.Big)(tx.GasTipCap())
	}

	return result
}
