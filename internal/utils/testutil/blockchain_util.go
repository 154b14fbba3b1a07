package testutil

import (
	"crypto/ecdsa"
	"encoding/binary"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

type (
	Option func(*builderOptions)

	builderOptions struct {
		nonce    uint64
		to       *common.Address
		data     []byte
		gas      uint64
		value    *big.Int
		key      *ecdsa.PrivateKey
		legacy   bool
		chainID  *big.Int
		logIndex uint
		txIndex  uint
	}
)

const (
	DefaultChainID = 324
	defaultGas     = 21_000
)

var (
	// TestKey is a fixed key so that sender addresses are stable across runs.
	TestKey, _  = crypto.HexToECDSA("b71c71a67e1177ad4e901695e1b4b9ee17ae16c6668d313eac2f96dbcda3f291")
	TestAddress = crypto.PubkeyToAddress(TestKey.PublicKey)
)

func WithNonce(nonce uint64) Option {
	return func(opts *builderOptions) {
		opts.nonce = nonce
	}
}

func WithTo(to common.Address) Option {
	return func(opts *builderOptions) {
		opts.to = &to
	}
}

func WithData(data []byte) Option {
	return func(opts *builderOptions) {
		opts.data = data
	}
}

func WithKey(key *ecdsa.PrivateKey) Option {
	return func(opts *builderOptions) {
		opts.key = key
	}
}

func WithLegacy() Option {
	return func(opts *builderOptions) {
		opts.legacy = true
	}
}

func WithChainID(chainID uint64) Option {
	return func(opts *builderOptions) {
		opts.chainID = new(big.Int).SetUint64(chainID)
	}
}

func WithLogIndex(index uint) Option {
	return func(opts *builderOptions) {
		opts.logIndex = index
	}
}

func WithTxIndex(index uint) Option {
	return func(opts *builderOptions) {
		opts.txIndex = index
	}
}

func newBuilderOptions(opts ...Option) *builderOptions {
	options := &builderOptions{
		gas:     defaultGas,
		value:   big.NewInt(1),
		key:     TestKey,
		chainID: big.NewInt(DefaultChainID),
	}
	for _, opt := range opts {
		opt(options)
	}

	return options
}

// MakeSignedTransaction returns a signed dynamic fee transaction, or a signed legacy transaction if WithLegacy is set.
func MakeSignedTransaction(opts ...Option) *types.Transaction {
	options := newBuilderOptions(opts...)
	to := options.to
	if to == nil {
		defaultTo := common.HexToAddress("0x36615Cf349d7F6344891B1e7CA7C72883F5dc049")
		to = &defaultTo
	}

	var txData types.TxData
	if options.legacy {
		txData = &types.LegacyTx{
			Nonce:    options.nonce,
			GasPrice: big.NewInt(250_000_000),
			Gas:      options.gas,
			To:       to,
			Value:    options.value,
			Data:     options.data,
		}
	} else {
		txData = &types.DynamicFeeTx{
			ChainID:   options.chainID,
			Nonce:     options.nonce,
			GasTipCap: big.NewInt(1),
			GasFeeCap: big.NewInt(250_000_000),
			Gas:       options.gas,
			To:        to,
			Value:     options.value,
			Data:      options.data,
		}
	}

	signer := types.LatestSignerForChainID(options.chainID)
	tx, err := types.SignNewTx(options.key, signer, txData)
	if err != nil {
		panic(err)
	}

	return tx
}

// MakeRawTransaction returns the binary encoding of a signed transaction.
func MakeRawTransaction(opts ...Option) ([]byte, *types.Transaction) {
	tx := MakeSignedTransaction(opts...)
	raw, err := tx.MarshalBinary()
	if err != nil {
		panic(err)
	}

	return raw, tx
}

// MakeBlockHash returns a deterministic hash for the given block number.
func MakeBlockHash(number uint64) common.Hash {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], number)
	return crypto.Keccak256Hash([]byte("block"), buf[:])
}

// MakeTopic returns a deterministic topic for the given seed.
func MakeTopic(seed string) common.Hash {
	return crypto.Keccak256Hash([]byte(seed))
}

// MakeLog returns a log emitted by address in the given block.
func MakeLog(blockNumber uint64, address common.Address, topics []common.Hash, opts ...Option) *types.Log {
	options := newBuilderOptions(opts...)
	var buf [16]byte
	binary.BigEndian.PutUint64(buf[:8], blockNumber)
	binary.BigEndian.PutUint64(buf[8:], uint64(options.txIndex))
	return &types.Log{
		Address:     address,
		Topics:      topics,
		Data:        options.data,
		BlockNumber: blockNumber,
		TxHash:      crypto.Keccak256Hash([]byte("tx"), buf[:]),
		TxIndex:     options.txIndex,
		BlockHash:   MakeBlockHash(blockNumber),
		Index:       options.logIndex,
	}
}
