package ethereum

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"
	"golang.org/x/xerrors"
)

type (
	// FilterCriteria is the client-facing filter used by eth_getLogs and eth_newFilter.
	// The number of topic positions is not checked here; the log engine rejects oversized filters.
	FilterCriteria struct {
		BlockHash *common.Hash
		FromBlock *rpc.BlockNumber
		ToBlock   *rpc.BlockNumber
		Addresses []common.Address
		Topics    [][]common.Hash
	}

	// LogFilter is a FilterCriteria with both bounds resolved to concrete block numbers.
	LogFilter struct {
		FromBlock uint64
		ToBlock   uint64
		Addresses []common.Address
		Topics    []TopicFilter
	}

	// TopicFilter constrains the topic at the 1-based position Index to one of Values.
	TopicFilter struct {
		Index  int
		Values []common.Hash
	}

	filterCriteriaJSON struct {
		BlockHash *common.Hash     `json:"blockHash"`
		FromBlock *rpc.BlockNumber `json:"fromBlock"`
		ToBlock   *rpc.BlockNumber `json:"toBlock"`
		Addresses interface{}      `json:"address"`
		Topics    []interface{}    `json:"topics"`
	}
)

const (
	MaxTopicPositions = 4
)

var (
	errBlockHashWithRange = xerrors.New("cannot specify both BlockHash and FromBlock/ToBlock, choose one or the other")
)

func (c *FilterCriteria) UnmarshalJSON(data []byte) error {
	var raw filterCriteriaJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if raw.BlockHash != nil {
		if raw.FromBlock != nil || raw.ToBlock != nil {
			return errBlockHashWithRange
		}
		c.BlockHash = raw.BlockHash
	} else {
		c.FromBlock = raw.FromBlock
		c.ToBlock = raw.ToBlock
	}

	c.Addresses = nil
	switch addresses := raw.Addresses.(type) {
	case nil:
	case string:
		address, err := decodeAddress(addresses)
		if err != nil {
			return err
		}
		c.Addresses = []common.Address{address}
	case []interface{}:
		for i, item := range addresses {
			s, ok := item.(string)
			if !ok {
				return xerrors.Errorf("non-string address at index %d", i)
			}

			address, err := decodeAddress(s)
			if err != nil {
				return err
			}
			c.Addresses = append(c.Addresses, address)
		}
	default:
		return xerrors.New("invalid addresses in query")
	}

	c.Topics = nil
	if len(raw.Topics) > 0 {
		c.Topics = make([][]common.Hash, len(raw.Topics))
		for i, position := range raw.Topics {
			switch topic := position.(type) {
			case nil:
				// wildcard
			case string:
				hash, err := decodeTopic(topic)
				if err != nil {
					return err
				}
				c.Topics[i] = []common.Hash{hash}
			case []interface{}:
				for _, item := range topic {
					if item == nil {
						// null inside an OR list matches anything
						c.Topics[i] = nil
						break
					}

					s, ok := item.(string)
					if !ok {
						return xerrors.Errorf("invalid topic at position %d", i)
					}

					hash, err := decodeTopic(s)
					if err != nil {
						return err
					}
					c.Topics[i] = append(c.Topics[i], hash)
				}
			default:
				return xerrors.Errorf("invalid topic at position %d", i)
			}
		}
	}

	return nil
}

// MarshalJSON produces the wire format accepted by UnmarshalJSON.
func (c FilterCriteria) MarshalJSON() ([]byte, error) {
	out := map[string]interface{}{}
	if c.BlockHash != nil {
		out["blockHash"] = c.BlockHash
	}
	if c.FromBlock != nil {
		out["fromBlock"] = *c.FromBlock
	}
	if c.ToBlock != nil {
		out["toBlock"] = *c.ToBlock
	}
	if len(c.Addresses) > 0 {
		out["address"] = c.Addresses
	}
	if len(c.Topics) > 0 {
		topics := make([]interface{}, len(c.Topics))
		for i, position := range c.Topics {
			if len(position) > 0 {
				topics[i] = position
			}
		}
		out["topics"] = topics
	}

	return json.Marshal(out)
}

// TopicFilters converts the positional topic list into the sparse form used by storage.
// Wildcard positions are omitted.
func (c *FilterCriteria) TopicFilters() []TopicFilter {
	var filters []TopicFilter
	for i, values := range c.Topics {
		if len(values) == 0 {
			continue
		}

		filters = append(filters, TopicFilter{
			Index:  i + 1,
			Values: values,
		})
	}

	return filters
}

// Matches returns true if the log satisfies the address, topic and block range constraints of the filter.
func (f *LogFilter) Matches(log *types.Log) bool {
	if log.BlockNumber < f.FromBlock || log.BlockNumber > f.ToBlock {
		return false
	}

	return f.MatchesAddressAndTopics(log)
}

func (f *LogFilter) MatchesAddressAndTopics(log *types.Log) bool {
	if len(f.Addresses) > 0 && !containsAddress(f.Addresses, log.Address) {
		return false
	}

	for _, topic := range f.Topics {
		if topic.Index < 1 || topic.Index > len(log.Topics) {
			return false
		}

		if !containsHash(topic.Values, log.Topics[topic.Index-1]) {
			return false
		}
	}

	return true
}

func decodeAddress(s string) (common.Address, error) {
	b, err := hexutil.Decode(s)
	if err == nil && len(b) != common.AddressLength {
		err = xerrors.Errorf("hex has invalid length %d after decoding; expected %d for address", len(b), common.AddressLength)
	}
	return common.BytesToAddress(b), err
}

func decodeTopic(s string) (common.Hash, error) {
	b, err := hexutil.Decode(s)
	if err == nil && len(b) != common.HashLength {
		err = xerrors.Errorf("hex has invalid length %d after decoding; expected %d for topic", len(b), common.HashLength)
	}
	return common.BytesToHash(b), err
}

func containsAddress(addresses []common.Address, address common.Address) bool {
	for _, a := range addresses {
		if a == address {
			return true
		}
	}
	return false
}

func containsHash(hashes []common.Hash, hash common.Hash) bool {
	for _, h := range hashes {
		if h == hash {
			return true
		}
	}
	return false
}
