package replica

import (
	"github.com/ethereum/go-ethereum/common"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/uber-go/tally/v4"
	"go.uber.org/fx"
	"golang.org/x/xerrors"

	xapi "github.com/coinbase/l2node/internal/api/ethereum"
	"github.com/coinbase/l2node/internal/utils/fxparams"
)

type (
	// ProxyCache stages transactions a follower forwarded to the primary until they are visible locally.
	// The cache is bounded. The least recently used entry is dropped once it is full.
	ProxyCache interface {
		Insert(tx *xapi.Transaction)
		Find(hash common.Hash) (*xapi.Transaction, bool)
		Forget(hash common.Hash)
		Len() int
	}

	ProxyCacheParams struct {
		fx.In
		fxparams.Params
	}

	proxyCache struct {
		cache   *lru.Cache[common.Hash, *xapi.Transaction]
		metrics *proxyCacheMetrics
	}

	proxyCacheMetrics struct {
		hits      tally.Counter
		misses    tally.Counter
		forgotten tally.Counter
		evicted   tally.Counter
	}
)

func NewProxyCache(params ProxyCacheParams) (ProxyCache, error) {
	return newProxyCache(params.Config.Replica.ProxyCacheSize, params.Metrics.SubScope(scopeName).SubScope("proxy_cache"))
}

func newProxyCache(size int, scope tally.Scope) (ProxyCache, error) {
	metrics := &proxyCacheMetrics{
		hits:      scope.Counter("hit"),
		misses:    scope.Counter("miss"),
		forgotten: scope.Counter("forgotten"),
		evicted:   scope.Counter("evicted"),
	}

	cache, err := lru.NewWithEvict(size, func(common.Hash, *xapi.Transaction) {
		metrics.evicted.Inc(1)
	})
	if err != nil {
		return nil, xerrors.Errorf("failed to create proxy cache of size %v: %w", size, err)
	}

	return &proxyCache{
		cache:   cache,
		metrics: metrics,
	}, nil
}

func (c *proxyCache) Insert(tx *xapi.Transaction) {
	c.cache.Add(tx.Hash, tx)
}

func (c *proxyCache) Find(hash common.Hash) (*xapi.Transaction, bool) {
	tx, ok := c.cache.Get(hash)
	if !ok {
		c.metrics.misses.Inc(1)
		return nil, false
	}

	c.metrics.hits.Inc(1)
	return tx, true
}

// Forget drops the entry once the transaction is visible in the local store.
func (c *proxyCache) Forget(hash common.Hash) {
	if c.cache.Remove(hash) {
		c.metrics.forgotten.Inc(1)
	}
}

func (c *proxyCache) Len() int {
	return c.cache.Len()
}
