package replica

import (
	"context"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/uber-go/tally/v4"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"

	xapi "github.com/coinbase/l2node/internal/api/ethereum"
	"github.com/coinbase/l2node/internal/clients/primary"
	storageapi "github.com/coinbase/l2node/internal/storage/ethereum"
	"github.com/coinbase/l2node/internal/utils/fxparams"
	"github.com/coinbase/l2node/internal/utils/log"
)

type (
	// SyncTracker records how far the local store lags behind the primary node.
	SyncTracker interface {
		// Refresh reads both heads. It is a no-op unless the node is a follower.
		Refresh(ctx context.Context) error
		// Syncing returns the progress if the lag exceeds the configured delta, or nil otherwise.
		Syncing() *xapi.SyncState
	}

	SyncTrackerParams struct {
		fx.In
		fxparams.Params
		Blocks  storageapi.BlockStorage
		Primary primary.Client
	}

	syncTracker struct {
		logger   *zap.Logger
		follower bool
		delta    uint64
		blocks   storageapi.BlockStorage
		primary  primary.Client
		heads    atomic.Pointer[heads]
		metrics  *syncTrackerMetrics
	}

	syncTrackerMetrics struct {
		localHead   tally.Gauge
		primaryHead tally.Gauge
		lag         tally.Gauge
	}

	heads struct {
		local   uint64
		primary uint64
	}
)

func NewSyncTracker(params SyncTrackerParams) SyncTracker {
	scope := params.Metrics.SubScope(scopeName).SubScope("sync")
	return &syncTracker{
		logger:   log.WithPackage(params.Logger),
		follower: params.Config.IsFollower(),
		delta:    params.Config.Replica.SyncBlockDelta,
		blocks:   params.Blocks,
		primary:  params.Primary,
		metrics: &syncTrackerMetrics{
			localHead:   scope.Gauge("local_head"),
			primaryHead: scope.Gauge("primary_head"),
			lag:         scope.Gauge("lag"),
		},
	}
}

func (t *syncTracker) Refresh(ctx context.Context) error {
	if !t.follower {
		return nil
	}

	var local, primary uint64
	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		local, err = t.blocks.GetSealedBlockNumber(ctx)
		if err != nil {
			return xerrors.Errorf("failed to get local head: %w", err)
		}

		return nil
	})
	group.Go(func() error {
		var err error
		primary, err = t.primary.BlockNumber(ctx)
		if err != nil {
			return xerrors.Errorf("failed to get primary head: %w", err)
		}

		return nil
	})
	if err := group.Wait(); err != nil {
		return err
	}

	t.heads.Store(&heads{local: local, primary: primary})
	t.metrics.localHead.Update(float64(local))
	t.metrics.primaryHead.Update(float64(primary))
	var lag uint64
	if primary > local {
		lag = primary - local
	}
	t.metrics.lag.Update(float64(lag))
	t.logger.Debug("refreshed heads", zap.Uint64("local", local), zap.Uint64("primary", primary))
	return nil
}

func (t *syncTracker) Syncing() *xapi.SyncState {
	if !t.follower {
		return nil
	}

	h := t.heads.Load()
	if h == nil || h.primary <= h.local || h.primary-h.local <= t.delta {
		return nil
	}

	return &xapi.SyncState{
		StartingBlock: 0,
		CurrentBlock:  hexutil.Uint64(h.local),
		HighestBlock:  hexutil.Uint64(h.primary),
	}
}
