package replica

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/uber-go/tally/v4"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/xerrors"

	xapi "github.com/coinbase/l2node/internal/api/ethereum"
	"github.com/coinbase/l2node/internal/clients/primary"
	"github.com/coinbase/l2node/internal/controller/ethereum/resolver"
	"github.com/coinbase/l2node/internal/storage"
	storageapi "github.com/coinbase/l2node/internal/storage/ethereum"
	"github.com/coinbase/l2node/internal/utils/fxparams"
	"github.com/coinbase/l2node/internal/utils/log"
)

type (
	// Reconciler answers transaction and receipt lookups.
	// A follower falls back to the proxy cache and then to the primary node.
	Reconciler interface {
		// GetTransaction returns nil if no source knows the transaction.
		GetTransaction(ctx context.Context, id xapi.TransactionID) (*xapi.Transaction, error)
		// GetTransactionReceipt returns nil if the transaction is not sealed locally,
		// unless the primary reports that it was rejected before inclusion.
		GetTransactionReceipt(ctx context.Context, hash common.Hash) (*xapi.TransactionReceipt, error)
	}

	ReconcilerParams struct {
		fx.In
		fxparams.Params
		Resolver     resolver.Resolver
		Transactions storageapi.TransactionStorage
		Primary      primary.Client
		Cache        ProxyCache
	}

	reconciler struct {
		logger       *zap.Logger
		lookups      []Lookup
		transactions storageapi.TransactionStorage
		primary      primary.Client
		scope        tally.Scope
	}
)

const (
	scopeName = "replica"
	sourceTag = "source"
)

func NewReconciler(params ReconcilerParams) Reconciler {
	logger := log.WithPackage(params.Logger)
	scope := params.Metrics.SubScope(scopeName)
	if !params.Config.IsFollower() {
		local := NewLocalLookup(params.Resolver, params.Transactions, nil)
		return newReconciler(logger, scope, params.Transactions, nil, local)
	}

	return newReconciler(
		logger,
		scope,
		params.Transactions,
		params.Primary,
		NewLocalLookup(params.Resolver, params.Transactions, params.Cache),
		NewCacheLookup(params.Cache),
		NewPrimaryLookup(params.Primary),
	)
}

// newReconciler tries the lookups in order. Receipts are read from the primary only when it is set.
func newReconciler(
	logger *zap.Logger,
	scope tally.Scope,
	transactions storageapi.TransactionStorage,
	primary primary.Client,
	lookups ...Lookup,
) Reconciler {
	names := make([]string, len(lookups))
	for i, lookup := range lookups {
		names[i] = lookup.Name()
	}

	logger.Info("configured transaction lookups", zap.Strings("lookups", names))
	return &reconciler{
		logger:       logger,
		lookups:      lookups,
		transactions: transactions,
		primary:      primary,
		scope:        scope,
	}
}

func (r *reconciler) GetTransaction(ctx context.Context, id xapi.TransactionID) (*xapi.Transaction, error) {
	for _, lookup := range r.lookups {
		tx, err := lookup.FindTransaction(ctx, id)
		if err != nil {
			return nil, xerrors.Errorf("failed to find transaction %v in %v: %w", id, lookup.Name(), err)
		}

		if tx != nil {
			r.hit(lookup.Name())
			return tx, nil
		}
	}

	r.scope.Counter("transaction_miss").Inc(1)
	return nil, nil
}

func (r *reconciler) GetTransactionReceipt(ctx context.Context, hash common.Hash) (*xapi.TransactionReceipt, error) {
	receipt, err := r.transactions.GetTransactionReceipt(ctx, hash)
	if err == nil {
		return receipt, nil
	}

	if !xerrors.Is(err, storage.ErrItemNotFound) {
		return nil, xerrors.Errorf("failed to get receipt %v: %w", hash, err)
	}

	if r.primary == nil {
		return nil, nil
	}

	receipt, err = r.primary.GetTransactionReceipt(ctx, hash)
	if err != nil {
		r.logger.Warn("failed to get receipt from primary", zap.Stringer("hash", hash), zap.Error(err))
		return nil, nil
	}

	// A successful receipt must not get ahead of the local state.
	if receipt == nil || !receipt.IsTerminalRejection() {
		return nil, nil
	}

	r.scope.Counter("rejected_receipt").Inc(1)
	return receipt, nil
}

func (r *reconciler) hit(source string) {
	r.scope.Tagged(map[string]string{sourceTag: source}).Counter("transaction_hit").Inc(1)
}
