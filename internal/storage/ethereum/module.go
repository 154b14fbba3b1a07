package ethereum

import (
	"go.uber.org/fx"
)

type (
	Result struct {
		fx.Out
		Storage            Storage
		BlockStorage       BlockStorage
		StateStorage       StateStorage
		TransactionStorage TransactionStorage
		EventStorage       EventStorage
		MempoolStorage     MempoolStorage
		MemoryStorage      MemoryStorage
	}
)

var Module = fx.Options(
	fx.Provide(New),
)

func New() Result {
	storage := NewMemoryStorage()
	return Result{
		Storage:            storage,
		BlockStorage:       storage,
		StateStorage:       storage,
		TransactionStorage: storage,
		EventStorage:       storage,
		MempoolStorage:     storage,
		MemoryStorage:      storage,
	}
}
