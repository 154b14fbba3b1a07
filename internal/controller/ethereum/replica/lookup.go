package replica

import (
	"context"

	"golang.org/x/xerrors"

	"github.com/coinbase/l2node/internal/api"
	xapi "github.com/coinbase/l2node/internal/api/ethereum"
	"github.com/coinbase/l2node/internal/clients/primary"
	"github.com/coinbase/l2node/internal/controller/ethereum/resolver"
	"github.com/coinbase/l2node/internal/storage"
	storageapi "github.com/coinbase/l2node/internal/storage/ethereum"
)

type (
	// Lookup is one source of transactions. A miss is reported as (nil, nil).
	Lookup interface {
		Name() string
		FindTransaction(ctx context.Context, id xapi.TransactionID) (*xapi.Transaction, error)
	}

	localLookup struct {
		resolver     resolver.Resolver
		transactions storageapi.TransactionStorage
		cache        ProxyCache
	}

	cacheLookup struct {
		cache ProxyCache
	}

	primaryLookup struct {
		primary primary.Client
	}
)

const (
	lookupLocal   = "local"
	lookupCache   = "cache"
	lookupPrimary = "primary"
)

// NewLocalLookup reads the local store. A hit drops the transaction from the cache, if any.
func NewLocalLookup(resolver resolver.Resolver, transactions storageapi.TransactionStorage, cache ProxyCache) Lookup {
	return &localLookup{
		resolver:     resolver,
		transactions: transactions,
		cache:        cache,
	}
}

func (l *localLookup) Name() string {
	return lookupLocal
}

func (l *localLookup) FindTransaction(ctx context.Context, id xapi.TransactionID) (*xapi.Transaction, error) {
	tx, err := l.find(ctx, id)
	if err != nil {
		if xerrors.Is(err, storage.ErrItemNotFound) || xerrors.Is(err, api.ErrNoBlock) {
			return nil, nil
		}

		return nil, err
	}

	if l.cache != nil {
		l.cache.Forget(tx.Hash)
	}

	return tx, nil
}

func (l *localLookup) find(ctx context.Context, id xapi.TransactionID) (*xapi.Transaction, error) {
	if id.Hash != nil {
		tx, err := l.transactions.GetTransactionByHash(ctx, *id.Hash)
		if err != nil {
			return nil, xerrors.Errorf("failed to get transaction %v: %w", id, err)
		}

		return tx, nil
	}

	if id.Block == nil {
		return nil, xerrors.Errorf("invalid transaction id: %v", id)
	}

	number, err := l.resolver.Resolve(ctx, *id.Block)
	if err != nil {
		return nil, err
	}

	tx, err := l.transactions.GetTransactionByBlock(ctx, number, id.Index)
	if err != nil {
		return nil, xerrors.Errorf("failed to get transaction %v: %w", id, err)
	}

	return tx, nil
}

// NewCacheLookup serves transactions proxied to the primary but not yet seen locally.
// Only lookups by hash can be served.
func NewCacheLookup(cache ProxyCache) Lookup {
	return &cacheLookup{
		cache: cache,
	}
}

func (l *cacheLookup) Name() string {
	return lookupCache
}

func (l *cacheLookup) FindTransaction(_ context.Context, id xapi.TransactionID) (*xapi.Transaction, error) {
	if id.Hash == nil {
		return nil, nil
	}

	tx, ok := l.cache.Find(*id.Hash)
	if !ok {
		return nil, nil
	}

	return tx, nil
}

func NewPrimaryLookup(primary primary.Client) Lookup {
	return &primaryLookup{
		primary: primary,
	}
}

func (l *primaryLookup) Name() string {
	return lookupPrimary
}

func (l *primaryLookup) FindTransaction(ctx context.Context, id xapi.TransactionID) (*xapi.Transaction, error) {
	return l.primary.GetTransaction(ctx, id)
}
