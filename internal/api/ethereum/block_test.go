package ethereum

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/coinbase/l2node/internal/utils/testutil"
)

func TestBlock_MarshalRPC(t *testing.T) {
	require := testutil.Require(t)

	tx, err := NewSealedTransaction(testutil.MakeSignedTransaction(), testutil.MakeBlockHash(3), 3, 0)
	require.NoError(err)

	block := &Block{
		Number:       3,
		Hash:         testutil.MakeBlockHash(3),
		ParentHash:   testutil.MakeBlockHash(2),
		Timestamp:    time.Unix(1_700_000_000, 0),
		GasLimit:     80_000_000,
		Transactions: []*Transaction{tx},
	}

	type blockLite struct {
		Number       hexutil.Uint64    `json:"number"`
		Hash         common.Hash       `json:"hash"`
		Timestamp    hexutil.Uint64    `json:"timestamp"`
		Transactions []json.RawMessage `json:"transactions"`
		Uncles       []common.Hash     `json:"uncles"`
	}

	data, err := block.MarshalRPC(false)
	require.NoError(err)
	var actual blockLite
	require.NoError(json.Unmarshal(data, &actual))
	require.Equal(hexutil.Uint64(3), actual.Number)
	require.Equal(block.Hash, actual.Hash)
	require.Equal(hexutil.Uint64(1_700_000_000), actual.Timestamp)
	require.Len(actual.Transactions, 1)
	require.Equal(`"`+tx.Hash.String()+`"`, string(actual.Transactions[0]))
	require.NotNil(actual.Uncles)

	data, err = block.MarshalRPC(true)
	require.NoError(err)
	require.NoError(json.Unmarshal(data, &actual))
	var fullTx Transaction
	require.NoError(json.Unmarshal(actual.Transactions[0], &fullTx))
	require.Equal(tx.Hash, fullTx.Hash)
}

func TestCallRequest_GetData(t *testing.T) {
	require := testutil.Require(t)

	data := hexutil.Bytes{0x1}
	input := hexutil.Bytes{0x2}
	require.Nil((&CallRequest{}).GetData())
	require.Equal([]byte{0x1}, (&CallRequest{Data: &data}).GetData())
	require.Equal([]byte{0x2}, (&CallRequest{Data: &data, Input: &input}).GetData())
	require.Equal(common.Address{}, (&CallRequest{}).GetFrom())
}
