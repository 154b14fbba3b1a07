package ethereum

import (
	"encoding/json"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/coinbase/l2node/internal/utils/testutil"
)

func TestNewPendingTransaction(t *testing.T) {
	require := testutil.Require(t)

	tx := testutil.MakeSignedTransaction(testutil.WithNonce(7))
	actual, err := NewPendingTransaction(tx)
	require.NoError(err)
	require.Equal(tx.Hash(), actual.Hash)
	require.Equal(testutil.TestAddress, actual.From)
	require.Equal(hexutil.Uint64(7), actual.Nonce)
	require.Nil(actual.BlockHash)
	require.Nil(actual.BlockNumber)
	require.Nil(actual.TransactionIndex)
	require.NotNil(actual.MaxFeePerGas)
	require.Equal(uint64(testutil.DefaultChainID), actual.ChainID.ToInt().Uint64())

	data, err := json.Marshal(actual)
	require.NoError(err)
	require.Contains(string(data), `"blockNumber":null`)
}

func TestNewPendingTransaction_Legacy(t *testing.T) {
	require := testutil.Require(t)

	tx := testutil.MakeSignedTransaction(testutil.WithLegacy())
	actual, err := NewPendingTransaction(tx)
	require.NoError(err)
	require.Equal(testutil.TestAddress, actual.From)
	require.Nil(actual.ChainID)
	require.Nil(actual.MaxFeePerGas)
}

func TestNewSealedTransaction(t *testing.T) {
	require := testutil.Require(t)

	tx := testutil.MakeSignedTransaction()
	blockHash := testutil.MakeBlockHash(12)
	actual, err := NewSealedTransaction(tx, blockHash, 12, 3)
	require.NoError(err)
	require.Equal(blockHash, *actual.BlockHash)
	require.Equal(uint64(12), actual.BlockNumber.ToInt().Uint64())
	require.Equal(hexutil.Uint64(3), *actual.TransactionIndex)
}

func TestTransactionID(t *testing.T) {
	require := testutil.Require(t)

	hash := common.HexToHash("0x1")
	id := NewTransactionIDFromHash(hash)
	require.Equal(hash, *id.Hash)
	require.Nil(id.Block)
	require.Equal(hash.String(), id.String())

	id = NewTransactionIDFromBlock(rpc.BlockNumberOrHashWithNumber(5), 2)
	require.Nil(id.Hash)
	require.Equal(uint64(2), id.Index)
	require.Equal("0x5:0x2", id.String())
}

func TestTransactionReceipt_IsTerminalRejection(t *testing.T) {
	require := testutil.Require(t)

	failed := hexutil.Uint64(0)
	succeeded := hexutil.Uint64(1)
	blockNumber := (*hexutil.Big)(hexutil.MustDecodeBig("0x10"))

	require.True((&TransactionReceipt{Status: &failed}).IsTerminalRejection())
	require.False((&TransactionReceipt{Status: &failed, BlockNumber: blockNumber}).IsTerminalRejection())
	require.False((&TransactionReceipt{Status: &succeeded}).IsTerminalRejection())
	require.False((&TransactionReceipt{}).IsTerminalRejection())
}
