package filters

import (
	"sync"

	"github.com/google/btree"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/coinbase/l2node/internal/utils/fxparams"
	"github.com/coinbase/l2node/internal/utils/log"
)

type (
	// Registry owns the installed filters.
	// Reads run concurrently and structural writes are serialized.
	// A poll is get, compute, then update: two concurrent polls of the same id race
	// and the later Update wins.
	Registry interface {
		Install(filter Filter) ID
		Get(id ID) (Filter, bool)
		// Update replaces the filter if it is still installed and is a no-op otherwise.
		Update(id ID, filter Filter)
		Remove(id ID) bool
		Len() int
	}

	// ID is never reused within the lifetime of a registry.
	ID uint64

	RegistryParams struct {
		fx.In
		fxparams.Params
	}

	registry struct {
		logger *zap.Logger
		limit  int

		mu      sync.RWMutex
		nextID  ID
		filters map[ID]Filter
		// ids orders the installed filters by age for eviction.
		ids *btree.BTreeG[ID]
	}
)

const (
	firstID    = ID(1)
	treeDegree = 16
)

func NewRegistry(params RegistryParams) Registry {
	return newRegistry(log.WithPackage(params.Logger), params.Config.API.FiltersLimit)
}

// newRegistry creates a registry holding at most limit filters. Zero means unbounded.
func newRegistry(logger *zap.Logger, limit int) *registry {
	return &registry{
		logger:  logger,
		limit:   limit,
		nextID:  firstID,
		filters: make(map[ID]Filter),
		ids: btree.NewG(treeDegree, func(a, b ID) bool {
			return a < b
		}),
	}
}

func (r *registry) Install(filter Filter) ID {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.limit > 0 {
		for len(r.filters) >= r.limit {
			oldest, ok := r.ids.DeleteMin()
			if !ok {
				break
			}

			delete(r.filters, oldest)
			r.logger.Debug("evicted the oldest filter", zap.Uint64("id", uint64(oldest)))
		}
	}

	id := r.nextID
	r.nextID += 1
	r.filters[id] = filter
	r.ids.ReplaceOrInsert(id)
	return id
}

func (r *registry) Get(id ID) (Filter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	filter, ok := r.filters[id]
	return filter, ok
}

func (r *registry) Update(id ID, filter Filter) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.filters[id]; ok {
		r.filters[id] = filter
	}
}

func (r *registry) Remove(id ID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.filters[id]; !ok {
		return false
	}

	delete(r.filters, id)
	r.ids.Delete(id)
	return true
}

func (r *registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.filters)
}
