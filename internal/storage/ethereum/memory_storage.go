package ethereum

import (
	"bytes"
	"context"
	"encoding/binary"
	"math/big"
	"sort"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/btree"
	"github.com/holiman/uint256"
	"golang.org/x/xerrors"

	xapi "github.com/coinbase/l2node/internal/api/ethereum"
	"github.com/coinbase/l2node/internal/storage/internal"
)

type (
	// MemoryStorage is a btree-backed chain data store.
	// Sealed blocks are kept in a tree ordered by number and the mempool in a tree ordered by receive time,
	// so that range scans and cursor-based polling never sort.
	MemoryStorage interface {
		Storage
		MempoolStorage

		// SealBlock seals the next block with the given transactions and logs.
		// Sealed transactions leave the mempool.
		SealBlock(ctx context.Context, block *NewBlock) (*xapi.Block, error)

		SetBalance(address common.Address, block uint64, balance *uint256.Int)
		SetCode(address common.Address, block uint64, code []byte)
		SetStorageAt(address common.Address, slot common.Hash, block uint64, value *uint256.Int)
	}

	// NewBlock describes a block to be sealed.
	// Log.TxIndex refers to the position in Transactions; the store fills in the remaining log fields.
	NewBlock struct {
		Hash         common.Hash
		Timestamp    time.Time
		Transactions []*types.Transaction
		Logs         []*types.Log
	}

	MemoryStorageOption func(s *memoryStorage)

	memoryStorage struct {
		mu            sync.RWMutex
		clock         func() time.Time
		baseFee       *big.Int
		blocks        *btree.BTreeG[*blockEntry]
		blockNumbers  map[common.Hash]uint64
		transactions  map[common.Hash]*transactionEntry
		pending       *btree.BTreeG[*pendingEntry]
		pendingByHash map[common.Hash]*pendingEntry
		balances      map[common.Address]*history[*uint256.Int]
		codes         map[common.Address]*history[[]byte]
		slots         map[slotKey]*history[*uint256.Int]
		nonces        map[common.Address]*history[uint64]
	}

	blockEntry struct {
		number uint64
		block  *xapi.Block
		logs   []*types.Log
	}

	transactionEntry struct {
		tx      *xapi.Transaction
		receipt *xapi.TransactionReceipt
	}

	pendingEntry struct {
		receivedAt time.Time
		hash       common.Hash
		from       common.Address
		nonce      uint64
		tx         *xapi.Transaction
	}

	slotKey struct {
		address common.Address
		slot    common.Hash
	}

	history[T any] struct {
		entries []historyEntry[T]
	}

	historyEntry[T any] struct {
		block uint64
		value T
	}
)

const (
	treeDegree      = 32
	blockGasLimit   = 80_000_000
	defaultBaseFee  = 250_000_000
	genesisBlockNum = 0
	maxBlockNumber  = ^uint64(0)
)

var (
	ErrKnownTransaction = xerrors.New("already known")
	ErrNonceTooLow      = xerrors.New("nonce too low")

	_ MemoryStorage = (*memoryStorage)(nil)
)

func WithClock(clock func() time.Time) MemoryStorageOption {
	return func(s *memoryStorage) {
		s.clock = clock
	}
}

// NewMemoryStorage creates a store holding only the genesis block.
func NewMemoryStorage(opts ...MemoryStorageOption) MemoryStorage {
	s := &memoryStorage{
		clock:         time.Now,
		baseFee:       big.NewInt(defaultBaseFee),
		blocks:        btree.NewG(treeDegree, (*blockEntry).Less),
		blockNumbers:  make(map[common.Hash]uint64),
		transactions:  make(map[common.Hash]*transactionEntry),
		pending:       btree.NewG(treeDegree, (*pendingEntry).Less),
		pendingByHash: make(map[common.Hash]*pendingEntry),
		balances:      make(map[common.Address]*history[*uint256.Int]),
		codes:         make(map[common.Address]*history[[]byte]),
		slots:         make(map[slotKey]*history[*uint256.Int]),
		nonces:        make(map[common.Address]*history[uint64]),
	}
	for _, opt := range opts {
		opt(s)
	}

	genesis := &xapi.Block{
		Number:        genesisBlockNum,
		Hash:          makeBlockHash(genesisBlockNum),
		Timestamp:     s.clock(),
		GasLimit:      blockGasLimit,
		BaseFeePerGas: (*hexutil.Big)(s.baseFee),
		Transactions:  []*xapi.Transaction{},
	}
	s.blocks.ReplaceOrInsert(&blockEntry{number: genesisBlockNum, block: genesis})
	s.blockNumbers[genesis.Hash] = genesisBlockNum
	return s
}

func (e *blockEntry) Less(other *blockEntry) bool {
	return e.number < other.number
}

func (e *pendingEntry) Less(other *pendingEntry) bool {
	if !e.receivedAt.Equal(other.receivedAt) {
		return e.receivedAt.Before(other.receivedAt)
	}

	return bytes.Compare(e.hash[:], other.hash[:]) < 0
}

func (s *memoryStorage) GetSealedBlockNumber(ctx context.Context) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sealedBlockNumber(), nil
}

func (s *memoryStorage) GetPendingBlockNumber(ctx context.Context) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sealedBlockNumber() + 1, nil
}

func (s *memoryStorage) GetBlockNumberByHash(ctx context.Context, hash common.Hash) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	number, ok := s.blockNumbers[hash]
	if !ok {
		return 0, xerrors.Errorf("block %v: %w", hash, internal.ErrItemNotFound)
	}

	return number, nil
}

func (s *memoryStorage) GetBlock(ctx context.Context, number uint64) (*xapi.Block, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.blocks.Get(&blockEntry{number: number})
	if !ok {
		return nil, xerrors.Errorf("block %v: %w", number, internal.ErrItemNotFound)
	}

	return entry.block, nil
}

func (s *memoryStorage) GetBlockHashesAfter(ctx context.Context, after uint64, limit int) ([]common.Hash, *uint64, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	hashes := make([]common.Hash, 0)
	var last *uint64
	if limit <= 0 || after == maxBlockNumber {
		return hashes, nil, nil
	}

	s.blocks.AscendGreaterOrEqual(&blockEntry{number: after + 1}, func(entry *blockEntry) bool {
		hashes = append(hashes, entry.block.Hash)
		number := entry.number
		last = &number
		return len(hashes) < limit
	})
	return hashes, last, nil
}

func (s *memoryStorage) GetBalance(ctx context.Context, address common.Address, block uint64) (*big.Int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	balance, ok := s.balances[address].get(block)
	if !ok {
		return new(big.Int), nil
	}

	return balance.ToBig(), nil
}

func (s *memoryStorage) GetCode(ctx context.Context, address common.Address, block uint64) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	code, ok := s.codes[address].get(block)
	if !ok {
		return []byte{}, nil
	}

	return common.CopyBytes(code), nil
}

func (s *memoryStorage) GetStorageAt(ctx context.Context, address common.Address, slot common.Hash, block uint64) (common.Hash, error) {
	if err := ctx.Err(); err != nil {
		return common.Hash{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.slots[slotKey{address: address, slot: slot}].get(block)
	if !ok {
		return common.Hash{}, nil
	}

	return value.Bytes32(), nil
}

func (s *memoryStorage) GetNonce(ctx context.Context, address common.Address, block uint64) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	nonce, _ := s.nonces[address].get(block)
	return nonce, nil
}

func (s *memoryStorage) GetNextNonce(ctx context.Context, address common.Address) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	next, _ := s.nonces[address].get(s.sealedBlockNumber())
	for _, entry := range s.pendingByHash {
		if entry.from == address && entry.nonce+1 > next {
			next = entry.nonce + 1
		}
	}

	return next, nil
}

func (s *memoryStorage) GetTransactionByHash(ctx context.Context, hash common.Hash) (*xapi.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if entry, ok := s.transactions[hash]; ok {
		return entry.tx, nil
	}

	if entry, ok := s.pendingByHash[hash]; ok {
		return entry.tx, nil
	}

	return nil, xerrors.Errorf("transaction %v: %w", hash, internal.ErrItemNotFound)
}

func (s *memoryStorage) GetTransactionByBlock(ctx context.Context, block uint64, index uint64) (*xapi.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.blocks.Get(&blockEntry{number: block})
	if !ok || index >= uint64(len(entry.block.Transactions)) {
		return nil, xerrors.Errorf("transaction %v in block %v: %w", index, block, internal.ErrItemNotFound)
	}

	return entry.block.Transactions[index], nil
}

func (s *memoryStorage) GetTransactionReceipt(ctx context.Context, hash common.Hash) (*xapi.TransactionReceipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.transactions[hash]
	if !ok {
		return nil, xerrors.Errorf("receipt %v: %w", hash, internal.ErrItemNotFound)
	}

	return entry.receipt, nil
}

func (s *memoryStorage) GetPendingTransactionHashesAfter(ctx context.Context, after time.Time, limit int) ([]common.Hash, *time.Time, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	hashes := make([]common.Hash, 0)
	var last *time.Time
	if limit <= 0 {
		return hashes, nil, nil
	}

	s.pending.AscendGreaterOrEqual(&pendingEntry{receivedAt: after}, func(entry *pendingEntry) bool {
		if !entry.receivedAt.After(after) {
			return true
		}

		hashes = append(hashes, entry.hash)
		receivedAt := entry.receivedAt
		last = &receivedAt
		return len(hashes) < limit
	})
	return hashes, last, nil
}

func (s *memoryStorage) GetLogs(ctx context.Context, filter *xapi.LogFilter, limit int) ([]*types.Log, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	logs := make([]*types.Log, 0)
	if limit <= 0 {
		return logs, nil
	}

	s.scanLogs(filter, func(log *types.Log) bool {
		logs = append(logs, log)
		return len(logs) < limit
	})
	return logs, nil
}

func (s *memoryStorage) GetLogBlockNumber(ctx context.Context, filter *xapi.LogFilter, offset int) (*uint64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	var result *uint64
	position := 0
	s.scanLogs(filter, func(log *types.Log) bool {
		if position == offset {
			number := log.BlockNumber
			result = &number
			return false
		}

		position += 1
		return true
	})
	return result, nil
}

func (s *memoryStorage) AddPendingTransaction(ctx context.Context, tx *types.Transaction) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	rpcTx, err := xapi.NewPendingTransaction(tx)
	if err != nil {
		return xerrors.Errorf("failed to convert transaction: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	hash := tx.Hash()
	if _, ok := s.transactions[hash]; ok {
		return xerrors.Errorf("transaction %v: %w", hash, ErrKnownTransaction)
	}

	if _, ok := s.pendingByHash[hash]; ok {
		return xerrors.Errorf("transaction %v: %w", hash, ErrKnownTransaction)
	}

	nonce, _ := s.nonces[rpcTx.From].get(s.sealedBlockNumber())
	if tx.Nonce() < nonce {
		return xerrors.Errorf("address %v, tx: %d state: %d: %w", rpcTx.From, tx.Nonce(), nonce, ErrNonceTooLow)
	}

	entry := &pendingEntry{
		receivedAt: s.clock(),
		hash:       hash,
		from:       rpcTx.From,
		nonce:      tx.Nonce(),
		tx:         rpcTx,
	}
	s.pending.ReplaceOrInsert(entry)
	s.pendingByHash[hash] = entry
	return nil
}

func (s *memoryStorage) SealBlock(ctx context.Context, newBlock *NewBlock) (*xapi.Block, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	parent := s.sealedBlockNumber()
	parentEntry, _ := s.blocks.Get(&blockEntry{number: parent})
	number := parent + 1

	hash := newBlock.Hash
	if hash == (common.Hash{}) {
		hash = makeBlockHash(number)
	}

	if _, ok := s.blockNumbers[hash]; ok {
		return nil, xerrors.Errorf("block hash %v is already sealed", hash)
	}

	timestamp := newBlock.Timestamp
	if timestamp.IsZero() {
		timestamp = s.clock()
	}

	block := &xapi.Block{
		Number:        number,
		Hash:          hash,
		ParentHash:    parentEntry.block.Hash,
		Timestamp:     timestamp,
		GasLimit:      blockGasLimit,
		BaseFeePerGas: (*hexutil.Big)(s.baseFee),
		Transactions:  make([]*xapi.Transaction, len(newBlock.Transactions)),
	}

	receipts := make([]*xapi.TransactionReceipt, len(newBlock.Transactions))
	var cumulativeGasUsed uint64
	for i, tx := range newBlock.Transactions {
		rpcTx, err := xapi.NewSealedTransaction(tx, hash, number, uint64(i))
		if err != nil {
			return nil, xerrors.Errorf("failed to convert transaction %v: %w", i, err)
		}

		cumulativeGasUsed += tx.Gas()
		block.Transactions[i] = rpcTx
		receipts[i] = s.newReceipt(tx, rpcTx, cumulativeGasUsed)
	}
	block.GasUsed = cumulativeGasUsed

	logs := make([]*types.Log, len(newBlock.Logs))
	for i, l := range newBlock.Logs {
		log := *l
		log.BlockNumber = number
		log.BlockHash = hash
		log.Index = uint(i)
		if int(log.TxIndex) < len(block.Transactions) {
			log.TxHash = block.Transactions[log.TxIndex].Hash
			receipt := receipts[log.TxIndex]
			receipt.Logs = append(receipt.Logs, &log)
			receipt.LogsBloom.Add(log.Address.Bytes())
			for _, topic := range log.Topics {
				receipt.LogsBloom.Add(topic.Bytes())
			}
		}

		block.LogsBloom.Add(log.Address.Bytes())
		for _, topic := range log.Topics {
			block.LogsBloom.Add(topic.Bytes())
		}
		logs[i] = &log
	}

	for i, rpcTx := range block.Transactions {
		s.transactions[rpcTx.Hash] = &transactionEntry{
			tx:      rpcTx,
			receipt: receipts[i],
		}
		s.nonceHistory(rpcTx.From).set(number, uint64(rpcTx.Nonce)+1)
		if entry, ok := s.pendingByHash[rpcTx.Hash]; ok {
			s.pending.Delete(entry)
			delete(s.pendingByHash, rpcTx.Hash)
		}
	}

	s.blocks.ReplaceOrInsert(&blockEntry{
		number: number,
		block:  block,
		logs:   logs,
	})
	s.blockNumbers[hash] = number
	return block, nil
}

func (s *memoryStorage) SetBalance(address common.Address, block uint64, balance *uint256.Int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.balances[address]
	if !ok {
		h = new(history[*uint256.Int])
		s.balances[address] = h
	}
	h.set(block, new(uint256.Int).Set(balance))
}

func (s *memoryStorage) SetCode(address common.Address, block uint64, code []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.codes[address]
	if !ok {
		h = new(history[[]byte])
		s.codes[address] = h
	}
	h.set(block, common.CopyBytes(code))
}

func (s *memoryStorage) SetStorageAt(address common.Address, slot common.Hash, block uint64, value *uint256.Int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := slotKey{address: address, slot: slot}
	h, ok := s.slots[key]
	if !ok {
		h = new(history[*uint256.Int])
		s.slots[key] = h
	}
	h.set(block, new(uint256.Int).Set(value))
}

func (s *memoryStorage) newReceipt(tx *types.Transaction, rpcTx *xapi.Transaction, cumulativeGasUsed uint64) *xapi.TransactionReceipt {
	status := hexutil.Uint64(types.ReceiptStatusSuccessful)
	receipt := &xapi.TransactionReceipt{
		TransactionHash:   rpcTx.Hash,
		TransactionIndex:  *rpcTx.TransactionIndex,
		BlockHash:         rpcTx.BlockHash,
		BlockNumber:       rpcTx.BlockNumber,
		From:              rpcTx.From,
		To:                rpcTx.To,
		CumulativeGasUsed: hexutil.Uint64(cumulativeGasUsed),
		GasUsed:           hexutil.Uint64(tx.Gas()),
		EffectiveGasPrice: (*hexutil.Big)(s.effectiveGasPrice(tx)),
		Logs:              []*types.Log{},
		Type:              hexutil.Uint64(tx.Type()),
		Status:            &status,
	}

	if tx.To() == nil {
		contractAddress := crypto.CreateAddress(rpcTx.From, tx.Nonce())
		receipt.ContractAddress = &contractAddress
	}

	return receipt
}

func (s *memoryStorage) effectiveGasPrice(tx *types.Transaction) *big.Int {
	if tx.Type() == types.LegacyTxType || tx.Type() == types.AccessListTxType {
		return tx.GasPrice()
	}

	price := new(big.Int).Add(tx.GasTipCap(), s.baseFee)
	if price.Cmp(tx.GasFeeCap()) > 0 {
		return tx.GasFeeCap()
	}

	return price
}

// scanLogs visits the matching logs in order until fn returns false.
// The caller must hold the lock.
func (s *memoryStorage) scanLogs(filter *xapi.LogFilter, fn func(log *types.Log) bool) {
	if filter.FromBlock > filter.ToBlock {
		return
	}

	s.blocks.AscendGreaterOrEqual(&blockEntry{number: filter.FromBlock}, func(entry *blockEntry) bool {
		if entry.number > filter.ToBlock {
			return false
		}

		if len(entry.logs) == 0 || !bloomFilter(entry.block.LogsBloom, filter) {
			return true
		}

		for _, log := range entry.logs {
			if !filter.MatchesAddressAndTopics(log) {
				continue
			}

			if !fn(log) {
				return false
			}
		}

		return true
	})
}

func (s *memoryStorage) sealedBlockNumber() uint64 {
	entry, ok := s.blocks.Max()
	if !ok {
		return genesisBlockNum
	}

	return entry.number
}

func (s *memoryStorage) nonceHistory(address common.Address) *history[uint64] {
	h, ok := s.nonces[address]
	if !ok {
		h = new(history[uint64])
		s.nonces[address] = h
	}

	return h
}

// bloomFilter returns false if the block definitely contains no log matching the filter.
// Ref: https://github.com/ethereum/go-ethereum/blob/v1.13.14/eth/filters/filter.go
func bloomFilter(bloom types.Bloom, filter *xapi.LogFilter) bool {
	if len(filter.Addresses) > 0 {
		var included bool
		for _, address := range filter.Addresses {
			if types.BloomLookup(bloom, address) {
				included = true
				break
			}
		}
		if !included {
			return false
		}
	}

	for _, topic := range filter.Topics {
		var included bool
		for _, value := range topic.Values {
			if types.BloomLookup(bloom, value) {
				included = true
				break
			}
		}
		if !included {
			return false
		}
	}

	return true
}

// get returns the value of the latest entry at or before the given block.
func (h *history[T]) get(block uint64) (T, bool) {
	var zero T
	if h == nil {
		return zero, false
	}

	i := sort.Search(len(h.entries), func(i int) bool {
		return h.entries[i].block > block
	})
	if i == 0 {
		return zero, false
	}

	return h.entries[i-1].value, true
}

func (h *history[T]) set(block uint64, value T) {
	i := sort.Search(len(h.entries), func(i int) bool {
		return h.entries[i].block >= block
	})
	if i < len(h.entries) && h.entries[i].block == block {
		h.entries[i].value = value
		return
	}

	h.entries = append(h.entries, historyEntry[T]{})
	copy(h.entries[i+1:], h.entries[i:])
	h.entries[i] = historyEntry[T]{block: block, value: value}
}

func makeBlockHash(number uint64) common.Hash {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], number)
	return crypto.Keccak256Hash([]byte("block"), buf[:])
}
