package filters

import (
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/stretchr/testify/suite"
	"go.uber.org/fx"
	"go.uber.org/zap/zaptest"

	xapi "github.com/coinbase/l2node/internal/api/ethereum"
	"github.com/coinbase/l2node/internal/utils/testapp"
	"github.com/coinbase/l2node/internal/utils/testutil"
)

type RegistryTestSuite struct {
	suite.Suite
	app      testapp.TestApp
	registry Registry
}

func TestRegistryTestSuite(t *testing.T) {
	suite.Run(t, new(RegistryTestSuite))
}

func (s *RegistryTestSuite) SetupTest() {
	s.app = testapp.New(s.T(), Module, fx.Populate(&s.registry))
}

func (s *RegistryTestSuite) TearDownTest() {
	s.app.Close()
}

func (s *RegistryTestSuite) TestInstall() {
	require := testutil.Require(s.T())

	id1 := s.registry.Install(&BlockWatch{LastBlock: 10})
	id2 := s.registry.Install(&PendingTxWatch{LastSeen: time.Unix(100, 0)})
	require.Equal(ID(1), id1)
	require.Equal(ID(2), id2)
	require.Equal(2, s.registry.Len())

	filter, ok := s.registry.Get(id1)
	require.True(ok)
	require.Equal(KindBlock, filter.Kind())
	require.Equal(&BlockWatch{LastBlock: 10}, filter)

	filter, ok = s.registry.Get(id2)
	require.True(ok)
	require.Equal(KindPendingTx, filter.Kind())

	_, ok = s.registry.Get(ID(3))
	require.False(ok)
}

func (s *RegistryTestSuite) TestUpdate() {
	require := testutil.Require(s.T())

	id := s.registry.Install(&BlockWatch{LastBlock: 1})
	s.registry.Update(id, &BlockWatch{LastBlock: 2})
	filter, ok := s.registry.Get(id)
	require.True(ok)
	require.Equal(uint64(2), filter.(*BlockWatch).LastBlock)

	require.True(s.registry.Remove(id))
	s.registry.Update(id, &BlockWatch{LastBlock: 3})
	_, ok = s.registry.Get(id)
	require.False(ok)
}

func (s *RegistryTestSuite) TestRemove() {
	require := testutil.Require(s.T())

	id := s.registry.Install(&BlockWatch{})
	require.True(s.registry.Remove(id))
	require.False(s.registry.Remove(id))
	require.False(s.registry.Remove(ID(42)))

	// Ids are not reused after removal.
	require.Equal(id+1, s.registry.Install(&BlockWatch{}))
}

func (s *RegistryTestSuite) TestConcurrentAccess() {
	require := testutil.Require(s.T())

	const workers = 8
	const perWorker = 100
	var wg sync.WaitGroup
	ids := make(chan ID, workers*perWorker)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				id := s.registry.Install(&BlockWatch{LastBlock: uint64(j)})
				s.registry.Update(id, &BlockWatch{LastBlock: uint64(j + 1)})
				_, _ = s.registry.Get(id)
				ids <- id
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[ID]struct{})
	for id := range ids {
		_, ok := seen[id]
		require.False(ok, "duplicate id %v", id)
		seen[id] = struct{}{}
	}
	require.Len(seen, workers*perWorker)
	require.Equal(workers*perWorker, s.registry.Len())
}

func TestRegistry_Limit(t *testing.T) {
	require := testutil.Require(t)

	registry := newRegistry(zaptest.NewLogger(t), 2)
	id1 := registry.Install(&BlockWatch{})
	id2 := registry.Install(&BlockWatch{})
	id3 := registry.Install(&BlockWatch{})
	require.Equal(2, registry.Len())

	_, ok := registry.Get(id1)
	require.False(ok)
	_, ok = registry.Get(id2)
	require.True(ok)
	_, ok = registry.Get(id3)
	require.True(ok)

	// Removing a filter frees a slot without evicting another one.
	require.True(registry.Remove(id2))
	id4 := registry.Install(&BlockWatch{})
	require.Equal(ID(4), id4)
	_, ok = registry.Get(id3)
	require.True(ok)
}

func TestNewEventCriteria(t *testing.T) {
	require := testutil.Require(t)

	from := rpc.BlockNumber(5)
	topic := common.HexToHash("0x1")
	criteria := NewEventCriteria(&xapi.FilterCriteria{
		FromBlock: &from,
		Addresses: []common.Address{common.HexToAddress("0x2")},
		Topics:    [][]common.Hash{nil, {topic}},
	})
	require.Equal(&from, criteria.FromBlock)
	require.Nil(criteria.ToBlock)
	require.Equal([]xapi.TopicFilter{{Index: 2, Values: []common.Hash{topic}}}, criteria.Topics)

	require.Equal(2, criteria.TopicPositions)
	require.False(criteria.TooManyTopics())

	filter := criteria.LogFilter(5, 9)
	require.Equal(uint64(5), filter.FromBlock)
	require.Equal(uint64(9), filter.ToBlock)
	require.Equal(criteria.Addresses, filter.Addresses)
}

func TestEventCriteria_TooManyTopics(t *testing.T) {
	require := testutil.Require(t)

	topic := common.HexToHash("0x1")
	criteria := NewEventCriteria(&xapi.FilterCriteria{
		Topics: [][]common.Hash{{topic}, {topic}, {topic}, {topic}, {topic}},
	})
	require.True(criteria.TooManyTopics())

	criteria = NewEventCriteria(&xapi.FilterCriteria{
		Topics: [][]common.Hash{{topic}, {topic}, {topic}, {topic}, nil},
	})
	require.True(criteria.TooManyTopics())

	criteria = NewEventCriteria(&xapi.FilterCriteria{
		Topics: [][]common.Hash{{topic}, nil, nil, {topic}},
	})
	require.False(criteria.TooManyTopics())
}
