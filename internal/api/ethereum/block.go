package ethereum

import (
	"encoding/json"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"golang.org/x/xerrors"
)

type (
	// Block is a sealed block together with its transactions in block order.
	Block struct {
		Number        uint64
		Hash          common.Hash
		ParentHash    common.Hash
		Timestamp     time.Time
		Miner         common.Address
		GasLimit      uint64
		GasUsed       uint64
		BaseFeePerGas *hexutil.Big
		LogsBloom     types.Bloom
		Transactions  []*Transaction
	}

	blockJSON struct {
		Number          hexutil.Uint64   `json:"number"`
		Hash            common.Hash      `json:"hash"`
		ParentHash      common.Hash      `json:"parentHash"`
		Nonce           types.BlockNonce `json:"nonce"`
		Sha3Uncles      common.Hash      `json:"sha3Uncles"`
		LogsBloom       types.Bloom      `json:"logsBloom"`
		Miner           common.Address   `json:"miner"`
		Difficulty      hexutil.Uint64   `json:"difficulty"`
		TotalDifficulty hexutil.Uint64   `json:"totalDifficulty"`
		ExtraData       hexutil.Bytes    `json:"extraData"`
		Size            hexutil.Uint64   `json:"size"`
		GasLimit        hexutil.Uint64   `json:"gasLimit"`
		GasUsed         hexutil.Uint64   `json:"gasUsed"`
		BaseFeePerGas   *hexutil.Big     `json:"baseFeePerGas,omitempty"`
		Timestamp       hexutil.Uint64   `json:"timestamp"`
		Transactions    interface{}      `json:"transactions"`
		Uncles          []common.Hash    `json:"uncles"`
	}
)

// MarshalRPC renders the block the way eth_getBlockBy* does.
// When fullTx is false only the transaction hashes are included.
func (b *Block) MarshalRPC(fullTx bool) (json.RawMessage, error) {
	var transactions interface{}
	if fullTx {
		txs := make([]*Transaction, len(b.Transactions))
		copy(txs, b.Transactions)
		transactions = txs
	} else {
		hashes := make([]common.Hash, len(b.Transactions))
		for i, tx := range b.Transactions {
			hashes[i] = tx.Hash
		}
		transactions = hashes
	}

	data, err := json.Marshal(&blockJSON{
		Number:        hexutil.Uint64(b.Number),
		Hash:          b.Hash,
		ParentHash:    b.ParentHash,
		Sha3Uncles:    types.EmptyUncleHash,
		LogsBloom:     b.LogsBloom,
		Miner:         b.Miner,
		ExtraData:     hexutil.Bytes{},
		GasLimit:      hexutil.Uint64(b.GasLimit),
		GasUsed:       hexutil.Uint64(b.GasUsed),
		BaseFeePerGas: b.BaseFeePerGas,
		Timestamp:     hexutil.Uint64(b.Timestamp.Unix()),
		Transactions:  transactions,
		Uncles:        []common.Hash{},
	})
	if err != nil {
		return nil, xerrors.Errorf("failed to marshal block %v: %w", b.Number, err)
	}

	return data, nil
}
