package ethereum

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/suite"
	"go.uber.org/fx"
	"golang.org/x/xerrors"

	xapi "github.com/coinbase/l2node/internal/api/ethereum"
	"github.com/coinbase/l2node/internal/storage/internal"
	"github.com/coinbase/l2node/internal/utils/testapp"
	"github.com/coinbase/l2node/internal/utils/testutil"
)

type MemoryStorageTestSuite struct {
	suite.Suite
	storage MemoryStorage
	now     time.Time
}

var (
	contractAddress = common.HexToAddress("0xa61464658AfeAf65CccaaFD3a512b69A83B77618")
	otherAddress    = common.HexToAddress("0x36615Cf349d7F6344891B1e7CA7C72883F5dc049")
	transferTopic   = testutil.MakeTopic("Transfer(address,address,uint256)")
	approvalTopic   = testutil.MakeTopic("Approval(address,address,uint256)")
)

func TestMemoryStorageTestSuite(t *testing.T) {
	suite.Run(t, new(MemoryStorageTestSuite))
}

func (s *MemoryStorageTestSuite) SetupTest() {
	s.now = testutil.MustTime("2024-01-02T03:04:05Z")
	s.storage = NewMemoryStorage(WithClock(s.clock))
}

func (s *MemoryStorageTestSuite) clock() time.Time {
	s.now = s.now.Add(time.Second)
	return s.now
}

func (s *MemoryStorageTestSuite) sealEmptyBlocks(n int) {
	for i := 0; i < n; i++ {
		_, err := s.storage.SealBlock(context.Background(), &NewBlock{})
		s.Require().NoError(err)
	}
}

func (s *MemoryStorageTestSuite) TestModule() {
	require := testutil.Require(s.T())

	var params struct {
		fx.In
		Storage        Storage
		MempoolStorage MempoolStorage
		MemoryStorage  MemoryStorage
	}
	app := testapp.New(s.T(), Module, fx.Populate(&params))
	defer app.Close()

	require.NotNil(params.Storage)
	require.Equal(params.MemoryStorage, params.Storage)
	require.Equal(params.MemoryStorage, params.MempoolStorage)
}

func (s *MemoryStorageTestSuite) TestGenesis() {
	require := testutil.Require(s.T())
	ctx := context.Background()

	sealed, err := s.storage.GetSealedBlockNumber(ctx)
	require.NoError(err)
	require.Equal(uint64(0), sealed)

	pending, err := s.storage.GetPendingBlockNumber(ctx)
	require.NoError(err)
	require.Equal(uint64(1), pending)

	block, err := s.storage.GetBlock(ctx, 0)
	require.NoError(err)
	require.Equal(testutil.MakeBlockHash(0), block.Hash)

	number, err := s.storage.GetBlockNumberByHash(ctx, block.Hash)
	require.NoError(err)
	require.Equal(uint64(0), number)
}

func (s *MemoryStorageTestSuite) TestSealBlock() {
	require := testutil.Require(s.T())
	ctx := context.Background()

	tx0 := testutil.MakeSignedTransaction(testutil.WithNonce(0))
	tx1 := testutil.MakeSignedTransaction(testutil.WithNonce(1), testutil.WithLegacy())
	block, err := s.storage.SealBlock(ctx, &NewBlock{
		Transactions: []*types.Transaction{tx0, tx1},
		Logs: []*types.Log{
			testutil.MakeLog(0, contractAddress, []common.Hash{transferTopic}, testutil.WithTxIndex(1)),
		},
	})
	require.NoError(err)
	require.Equal(uint64(1), block.Number)
	require.Equal(testutil.MakeBlockHash(0), block.ParentHash)
	require.Len(block.Transactions, 2)
	require.True(types.BloomLookup(block.LogsBloom, contractAddress))
	require.True(types.BloomLookup(block.LogsBloom, transferTopic))

	tx, err := s.storage.GetTransactionByHash(ctx, tx1.Hash())
	require.NoError(err)
	require.Equal(block.Hash, *tx.BlockHash)
	require.Equal(uint64(1), uint64(*tx.TransactionIndex))

	tx, err = s.storage.GetTransactionByBlock(ctx, 1, 0)
	require.NoError(err)
	require.Equal(tx0.Hash(), tx.Hash)

	_, err = s.storage.GetTransactionByBlock(ctx, 1, 2)
	require.True(xerrors.Is(err, internal.ErrItemNotFound))

	receipt, err := s.storage.GetTransactionReceipt(ctx, tx1.Hash())
	require.NoError(err)
	require.Equal(uint64(types.ReceiptStatusSuccessful), uint64(*receipt.Status))
	require.Len(receipt.Logs, 1)
	require.Equal(tx1.Hash(), receipt.Logs[0].TxHash)
	require.Equal(block.Hash, receipt.Logs[0].BlockHash)
	require.False(receipt.IsTerminalRejection())

	nonce, err := s.storage.GetNonce(ctx, testutil.TestAddress, 1)
	require.NoError(err)
	require.Equal(uint64(2), nonce)

	nonce, err = s.storage.GetNonce(ctx, testutil.TestAddress, 0)
	require.NoError(err)
	require.Equal(uint64(0), nonce)
}

func (s *MemoryStorageTestSuite) TestNotFound() {
	require := testutil.Require(s.T())
	ctx := context.Background()

	_, err := s.storage.GetBlock(ctx, 10)
	require.True(xerrors.Is(err, internal.ErrItemNotFound))

	_, err = s.storage.GetBlockNumberByHash(ctx, common.HexToHash("0x1"))
	require.True(xerrors.Is(err, internal.ErrItemNotFound))

	_, err = s.storage.GetTransactionByHash(ctx, common.HexToHash("0x1"))
	require.True(xerrors.Is(err, internal.ErrItemNotFound))

	_, err = s.storage.GetTransactionReceipt(ctx, common.HexToHash("0x1"))
	require.True(xerrors.Is(err, internal.ErrItemNotFound))
}

func (s *MemoryStorageTestSuite) TestGetBlockHashesAfter() {
	require := testutil.Require(s.T())
	ctx := context.Background()

	hashes, last, err := s.storage.GetBlockHashesAfter(ctx, 0, 10)
	require.NoError(err)
	require.Empty(hashes)
	require.Nil(last)

	s.sealEmptyBlocks(5)
	hashes, last, err = s.storage.GetBlockHashesAfter(ctx, 1, 3)
	require.NoError(err)
	require.Equal([]common.Hash{testutil.MakeBlockHash(2), testutil.MakeBlockHash(3), testutil.MakeBlockHash(4)}, hashes)
	require.Equal(uint64(4), *last)

	hashes, last, err = s.storage.GetBlockHashesAfter(ctx, 4, 3)
	require.NoError(err)
	require.Equal([]common.Hash{testutil.MakeBlockHash(5)}, hashes)
	require.Equal(uint64(5), *last)
}

func (s *MemoryStorageTestSuite) TestPendingTransactions() {
	require := testutil.Require(s.T())
	ctx := context.Background()

	start := s.now
	tx0 := testutil.MakeSignedTransaction(testutil.WithNonce(0))
	tx1 := testutil.MakeSignedTransaction(testutil.WithNonce(1))
	require.NoError(s.storage.AddPendingTransaction(ctx, tx0))
	require.NoError(s.storage.AddPendingTransaction(ctx, tx1))

	err := s.storage.AddPendingTransaction(ctx, tx0)
	require.True(xerrors.Is(err, ErrKnownTransaction))

	hashes, last, err := s.storage.GetPendingTransactionHashesAfter(ctx, start, 1)
	require.NoError(err)
	require.Equal([]common.Hash{tx0.Hash()}, hashes)

	hashes, last, err = s.storage.GetPendingTransactionHashesAfter(ctx, *last, 10)
	require.NoError(err)
	require.Equal([]common.Hash{tx1.Hash()}, hashes)

	hashes, _, err = s.storage.GetPendingTransactionHashesAfter(ctx, *last, 10)
	require.NoError(err)
	require.Empty(hashes)

	tx, err := s.storage.GetTransactionByHash(ctx, tx1.Hash())
	require.NoError(err)
	require.Nil(tx.BlockNumber)

	next, err := s.storage.GetNextNonce(ctx, testutil.TestAddress)
	require.NoError(err)
	require.Equal(uint64(2), next)

	_, err = s.storage.SealBlock(ctx, &NewBlock{Transactions: []*types.Transaction{tx0, tx1}})
	require.NoError(err)

	hashes, _, err = s.storage.GetPendingTransactionHashesAfter(ctx, start, 10)
	require.NoError(err)
	require.Empty(hashes)

	err = s.storage.AddPendingTransaction(ctx, tx1)
	require.True(xerrors.Is(err, ErrKnownTransaction))

	err = s.storage.AddPendingTransaction(ctx, testutil.MakeSignedTransaction(testutil.WithNonce(1), testutil.WithData([]byte{0x1})))
	require.True(xerrors.Is(err, ErrNonceTooLow))
}

func (s *MemoryStorageTestSuite) TestState() {
	require := testutil.Require(s.T())
	ctx := context.Background()

	s.storage.SetBalance(otherAddress, 1, uint256.NewInt(100))
	s.storage.SetBalance(otherAddress, 3, uint256.NewInt(300))
	s.storage.SetCode(contractAddress, 2, []byte{0x60, 0x80})
	slot := common.HexToHash("0x1")
	s.storage.SetStorageAt(contractAddress, slot, 2, uint256.NewInt(42))

	balance, err := s.storage.GetBalance(ctx, otherAddress, 0)
	require.NoError(err)
	require.Equal(0, balance.Sign())

	balance, err = s.storage.GetBalance(ctx, otherAddress, 2)
	require.NoError(err)
	require.Equal(uint64(100), balance.Uint64())

	balance, err = s.storage.GetBalance(ctx, otherAddress, 10)
	require.NoError(err)
	require.Equal(uint64(300), balance.Uint64())

	code, err := s.storage.GetCode(ctx, contractAddress, 1)
	require.NoError(err)
	require.Empty(code)

	code, err = s.storage.GetCode(ctx, contractAddress, 2)
	require.NoError(err)
	require.Equal([]byte{0x60, 0x80}, code)

	value, err := s.storage.GetStorageAt(ctx, contractAddress, slot, 5)
	require.NoError(err)
	require.Equal(common.BigToHash(big.NewInt(42)), value)

	value, err = s.storage.GetStorageAt(ctx, contractAddress, common.HexToHash("0x2"), 5)
	require.NoError(err)
	require.Equal(common.Hash{}, value)
}

func (s *MemoryStorageTestSuite) TestGetLogs() {
	require := testutil.Require(s.T())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := s.storage.SealBlock(ctx, &NewBlock{
			Logs: []*types.Log{
				testutil.MakeLog(0, contractAddress, []common.Hash{transferTopic}),
				testutil.MakeLog(0, otherAddress, []common.Hash{approvalTopic}),
				testutil.MakeLog(0, contractAddress, []common.Hash{approvalTopic}),
			},
		})
		require.NoError(err)
	}

	filter := &xapi.LogFilter{
		FromBlock: 2,
		ToBlock:   3,
		Addresses: []common.Address{contractAddress},
	}
	logs, err := s.storage.GetLogs(ctx, filter, 100)
	require.NoError(err)
	require.Len(logs, 4)
	for i, log := range logs {
		require.Equal(contractAddress, log.Address)
		require.Equal(uint64(2+i/2), log.BlockNumber)
	}
	require.Equal(uint(0), logs[0].Index)
	require.Equal(uint(2), logs[1].Index)

	logs, err = s.storage.GetLogs(ctx, filter, 3)
	require.NoError(err)
	require.Len(logs, 3)

	logs, err = s.storage.GetLogs(ctx, &xapi.LogFilter{
		FromBlock: 0,
		ToBlock:   10,
		Topics:    []xapi.TopicFilter{{Index: 1, Values: []common.Hash{approvalTopic}}},
	}, 100)
	require.NoError(err)
	require.Len(logs, 6)

	logs, err = s.storage.GetLogs(ctx, &xapi.LogFilter{FromBlock: 3, ToBlock: 2}, 100)
	require.NoError(err)
	require.Empty(logs)
}

func (s *MemoryStorageTestSuite) TestGetLogBlockNumber() {
	require := testutil.Require(s.T())
	ctx := context.Background()

	// Blocks 1-4 carry 2 matching logs each.
	for i := 0; i < 4; i++ {
		_, err := s.storage.SealBlock(ctx, &NewBlock{
			Logs: []*types.Log{
				testutil.MakeLog(0, contractAddress, []common.Hash{transferTopic}),
				testutil.MakeLog(0, contractAddress, []common.Hash{transferTopic}),
			},
		})
		require.NoError(err)
	}

	filter := &xapi.LogFilter{FromBlock: 1, ToBlock: 4}
	for offset, expected := range []uint64{1, 1, 2, 2, 3, 3, 4, 4} {
		number, err := s.storage.GetLogBlockNumber(ctx, filter, offset)
		require.NoError(err)
		require.NotNil(number)
		require.Equal(expected, *number, offset)
	}

	number, err := s.storage.GetLogBlockNumber(ctx, filter, 8)
	require.NoError(err)
	require.Nil(number)
}

func (s *MemoryStorageTestSuite) TestCanceledContext() {
	require := testutil.Require(s.T())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.storage.GetSealedBlockNumber(ctx)
	require.True(xerrors.Is(err, context.Canceled))

	_, err = s.storage.GetLogs(ctx, &xapi.LogFilter{}, 1)
	require.True(xerrors.Is(err, context.Canceled))
}
