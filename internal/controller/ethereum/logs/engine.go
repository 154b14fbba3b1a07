package logs

import (
	"context"
	"encoding/json"
	"math"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/uber-go/tally/v4"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/xerrors"

	"github.com/coinbase/l2node/internal/api"
	xapi "github.com/coinbase/l2node/internal/api/ethereum"
	"github.com/coinbase/l2node/internal/controller/ethereum/filters"
	"github.com/coinbase/l2node/internal/controller/ethereum/resolver"
	storageapi "github.com/coinbase/l2node/internal/storage/ethereum"
	"github.com/coinbase/l2node/internal/utils/fxparams"
	"github.com/coinbase/l2node/internal/utils/log"
)

type (
	// Engine answers log queries under the per-request entity limit and polls installed filters.
	Engine interface {
		// GetLogs runs a one-shot query for the range or block hash of the criteria.
		GetLogs(ctx context.Context, criteria *xapi.FilterCriteria) ([]*types.Log, error)
		// NewEventWatch resolves the starting cursor of a new event filter.
		NewEventWatch(ctx context.Context, criteria *xapi.FilterCriteria) (*filters.EventWatch, error)
		// FilterLogs re-runs an event filter from its original start, ignoring its cursor.
		FilterLogs(ctx context.Context, watch *filters.EventWatch) ([]*types.Log, error)
		// Poll returns the changes since the cursor of the filter together with the advanced filter.
		// The given filter is never modified.
		Poll(ctx context.Context, filter filters.Filter) (*Changes, filters.Filter, error)
	}

	// Changes holds either logs (event filters) or hashes (block and pending transaction filters).
	Changes struct {
		Logs   []*types.Log
		Hashes []common.Hash
	}

	EngineParams struct {
		fx.In
		fxparams.Params
		Resolver     resolver.Resolver
		Blocks       storageapi.BlockStorage
		Transactions storageapi.TransactionStorage
		Events       storageapi.EventStorage
	}

	engine struct {
		logger       *zap.Logger
		limit        int
		resolver     resolver.Resolver
		blocks       storageapi.BlockStorage
		transactions storageapi.TransactionStorage
		events       storageapi.EventStorage
		metrics      *engineMetrics
	}

	engineMetrics struct {
		limitExceeded tally.Counter
		logsReturned  tally.Counter
	}
)

const (
	scopeName = "logs"

	// noLimit stands for an unbounded fetch once the range passed the pre-check.
	noLimit = math.MaxInt32
)

func NewEngine(params EngineParams) Engine {
	scope := params.Metrics.SubScope(scopeName)
	return &engine{
		logger:       log.WithPackage(params.Logger),
		limit:        params.Config.API.ReqEntitiesLimit,
		resolver:     params.Resolver,
		blocks:       params.Blocks,
		transactions: params.Transactions,
		events:       params.Events,
		metrics: &engineMetrics{
			limitExceeded: scope.Counter("limit_exceeded"),
			logsReturned:  scope.Counter("returned"),
		},
	}
}

func (e *engine) GetLogs(ctx context.Context, criteria *xapi.FilterCriteria) ([]*types.Log, error) {
	eventCriteria, err := e.resolveCriteria(ctx, criteria)
	if err != nil {
		return nil, err
	}

	fromBlock, err := e.resolver.ResolveFilterBound(ctx, eventCriteria.FromBlock)
	if err != nil {
		return nil, xerrors.Errorf("failed to resolve fromBlock: %w", err)
	}

	toBlock, err := e.resolver.ResolveFilterBound(ctx, eventCriteria.ToBlock)
	if err != nil {
		return nil, xerrors.Errorf("failed to resolve toBlock: %w", err)
	}

	return e.query(ctx, eventCriteria, fromBlock, toBlock)
}

func (e *engine) NewEventWatch(ctx context.Context, criteria *xapi.FilterCriteria) (*filters.EventWatch, error) {
	eventCriteria, err := e.resolveCriteria(ctx, criteria)
	if err != nil {
		return nil, err
	}

	var nextBlock uint64
	if eventCriteria.FromBlock == nil {
		// Start after the tip so that an immediate poll is empty.
		sealed, err := e.resolver.SealedBlockNumber(ctx)
		if err != nil {
			return nil, err
		}

		nextBlock = sealed + 1
	} else {
		nextBlock, err = e.resolver.ResolveFilterBound(ctx, eventCriteria.FromBlock)
		if err != nil {
			return nil, xerrors.Errorf("failed to resolve fromBlock: %w", err)
		}
	}

	return &filters.EventWatch{
		Criteria:  *eventCriteria,
		NextBlock: nextBlock,
	}, nil
}

func (e *engine) FilterLogs(ctx context.Context, watch *filters.EventWatch) ([]*types.Log, error) {
	fromBlock, err := e.resolver.ResolveFilterBound(ctx, watch.Criteria.FromBlock)
	if err != nil {
		return nil, xerrors.Errorf("failed to resolve fromBlock: %w", err)
	}

	logs, _, err := e.pollEvents(ctx, &watch.Criteria, fromBlock)
	return logs, err
}

func (e *engine) Poll(ctx context.Context, filter filters.Filter) (*Changes, filters.Filter, error) {
	switch f := filter.(type) {
	case *filters.BlockWatch:
		hashes, last, err := e.blocks.GetBlockHashesAfter(ctx, f.LastBlock, e.limit)
		if err != nil {
			return nil, nil, xerrors.Errorf("failed to get block hashes after %v: %w", f.LastBlock, err)
		}

		next := &filters.BlockWatch{LastBlock: f.LastBlock}
		if last != nil {
			next.LastBlock = *last
		}

		return &Changes{Hashes: hashes}, next, nil
	case *filters.PendingTxWatch:
		hashes, last, err := e.transactions.GetPendingTransactionHashesAfter(ctx, f.LastSeen, e.limit)
		if err != nil {
			return nil, nil, xerrors.Errorf("failed to get pending transaction hashes after %v: %w", f.LastSeen, err)
		}

		next := &filters.PendingTxWatch{LastSeen: f.LastSeen}
		if last != nil {
			next.LastSeen = *last
		}

		return &Changes{Hashes: hashes}, next, nil
	case *filters.EventWatch:
		logs, nextBlock, err := e.pollEvents(ctx, &f.Criteria, f.NextBlock)
		if err != nil {
			return nil, nil, err
		}

		return &Changes{Logs: logs}, &filters.EventWatch{
			Criteria:  f.Criteria,
			NextBlock: nextBlock,
		}, nil
	default:
		return nil, nil, xerrors.Errorf("unexpected filter type %T", filter)
	}
}

// pollEvents scans from fromBlock up to the resolved upper bound of the criteria.
// The returned cursor is the block after the last returned log, or fromBlock when nothing matched.
func (e *engine) pollEvents(ctx context.Context, criteria *filters.EventCriteria, fromBlock uint64) ([]*types.Log, uint64, error) {
	if criteria.TooManyTopics() {
		return nil, 0, api.ErrTooManyTopics
	}

	toBlock, err := e.resolver.ResolveFilterBound(ctx, criteria.ToBlock)
	if err != nil {
		return nil, 0, xerrors.Errorf("failed to resolve toBlock: %w", err)
	}

	logs, err := e.query(ctx, criteria, fromBlock, toBlock)
	if err != nil {
		return nil, 0, err
	}

	nextBlock := fromBlock
	if len(logs) > 0 {
		nextBlock = logs[len(logs)-1].BlockNumber + 1
	}

	return logs, nextBlock, nil
}

func (e *engine) query(ctx context.Context, criteria *filters.EventCriteria, fromBlock uint64, toBlock uint64) ([]*types.Log, error) {
	if fromBlock > toBlock {
		return []*types.Log{}, nil
	}

	filter := criteria.LogFilter(fromBlock, toBlock)
	if fromBlock != toBlock {
		// The log at offset limit is the first one that does not fit.
		overflow, err := e.events.GetLogBlockNumber(ctx, filter, e.limit)
		if err != nil {
			return nil, xerrors.Errorf("failed to check the log count of [%v, %v]: %w", fromBlock, toBlock, err)
		}

		if overflow != nil {
			e.metrics.limitExceeded.Inc(1)
			safeToBlock := *overflow
			if safeToBlock > 0 {
				safeToBlock -= 1
			}

			return nil, &api.LogsLimitExceededError{
				Limit:       e.limit,
				FromBlock:   fromBlock,
				SafeToBlock: safeToBlock,
			}
		}
	}

	logs, err := e.events.GetLogs(ctx, filter, noLimit)
	if err != nil {
		return nil, xerrors.Errorf("failed to get logs of [%v, %v]: %w", fromBlock, toBlock, err)
	}

	e.metrics.logsReturned.Inc(int64(len(logs)))
	return logs, nil
}

// resolveCriteria rejects too many topics before touching the store,
// then pins both bounds to the block when the criteria names a block hash.
func (e *engine) resolveCriteria(ctx context.Context, criteria *xapi.FilterCriteria) (*filters.EventCriteria, error) {
	eventCriteria := filters.NewEventCriteria(criteria)
	if eventCriteria.TooManyTopics() {
		return nil, api.ErrTooManyTopics
	}

	if criteria.BlockHash == nil {
		return &eventCriteria, nil
	}

	number, err := e.resolver.ResolveHash(ctx, *criteria.BlockHash)
	if err != nil {
		return nil, err
	}

	block := rpc.BlockNumber(number)
	eventCriteria.FromBlock = &block
	eventCriteria.ToBlock = &block
	e.logger.Debug("resolved filter block hash", zap.Stringer("hash", criteria.BlockHash), zap.Uint64("block", number))
	return &eventCriteria, nil
}

// MarshalJSON renders an empty list rather than null when nothing changed.
func (c *Changes) MarshalJSON() ([]byte, error) {
	if c.Logs != nil {
		return json.Marshal(c.Logs)
	}

	if c.Hashes != nil {
		return json.Marshal(c.Hashes)
	}

	return []byte("[]"), nil
}
