package storage

import (
	"go.uber.org/fx"

	"github.com/coinbase/l2node/internal/storage/ethereum"
	"github.com/coinbase/l2node/internal/storage/internal"
)

type (
	EthereumStorage = ethereum.Storage
)

var (
	Module = fx.Options(
		ethereum.Module,
	)

	ErrItemNotFound = internal.ErrItemNotFound
)
