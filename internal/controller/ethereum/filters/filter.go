package filters

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rpc"

	xapi "github.com/coinbase/l2node/internal/api/ethereum"
)

type (
	// Filter is a closed sum over BlockWatch, EventWatch and PendingTxWatch.
	// Each variant carries its own cursor and a poll replaces the whole value.
	Filter interface {
		Kind() Kind
		isFilter()
	}

	Kind string

	// BlockWatch reports the hashes of blocks sealed after LastBlock.
	BlockWatch struct {
		LastBlock uint64
	}

	// EventWatch reports the logs matching Criteria from NextBlock onwards.
	// NextBlock is the first block that has not been scanned yet.
	EventWatch struct {
		Criteria  EventCriteria
		NextBlock uint64
	}

	// EventCriteria is the immutable part of an event filter.
	// The bounds are kept unresolved so that tags are re-evaluated on every poll.
	EventCriteria struct {
		FromBlock *rpc.BlockNumber
		ToBlock   *rpc.BlockNumber
		Addresses []common.Address
		Topics    []xapi.TopicFilter
		// TopicPositions counts the requested positions, wildcards included.
		TopicPositions int
	}

	// PendingTxWatch reports the hashes of transactions received after LastSeen.
	PendingTxWatch struct {
		LastSeen time.Time
	}
)

const (
	KindBlock     Kind = "block"
	KindEvent     Kind = "event"
	KindPendingTx Kind = "pending_tx"
)

var (
	_ Filter = (*BlockWatch)(nil)
	_ Filter = (*EventWatch)(nil)
	_ Filter = (*PendingTxWatch)(nil)
)

func (f *BlockWatch) Kind() Kind {
	return KindBlock
}

func (f *BlockWatch) isFilter() {}

func (f *EventWatch) Kind() Kind {
	return KindEvent
}

func (f *EventWatch) isFilter() {}

func (f *PendingTxWatch) Kind() Kind {
	return KindPendingTx
}

func (f *PendingTxWatch) isFilter() {}

// NewEventCriteria copies the address and topic constraints of a request.
// The block hash form must be resolved into bounds by the caller.
func NewEventCriteria(criteria *xapi.FilterCriteria) EventCriteria {
	return EventCriteria{
		FromBlock: criteria.FromBlock,
		ToBlock:   criteria.ToBlock,
		Addresses: criteria.Addresses,
		Topics:    criteria.TopicFilters(),

		TopicPositions: len(criteria.Topics),
	}
}

// TooManyTopics reports whether more positions are constrained than a log can carry.
func (c *EventCriteria) TooManyTopics() bool {
	if c.TopicPositions > xapi.MaxTopicPositions {
		return true
	}

	for _, topic := range c.Topics {
		if topic.Index > xapi.MaxTopicPositions {
			return true
		}
	}

	return false
}

// LogFilter builds the store query for the resolved range.
func (c *EventCriteria) LogFilter(fromBlock uint64, toBlock uint64) *xapi.LogFilter {
	return &xapi.LogFilter{
		FromBlock: fromBlock,
		ToBlock:   toBlock,
		Addresses: c.Addresses,
		Topics:    c.Topics,
	}
}
