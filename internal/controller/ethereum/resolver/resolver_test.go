package resolver

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/xerrors"

	"github.com/coinbase/l2node/internal/api"
	"github.com/coinbase/l2node/internal/storage"
	storagemocks "github.com/coinbase/l2node/internal/storage/ethereum/mocks"
	"github.com/coinbase/l2node/internal/utils/testutil"
)

type ResolverTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	storage  *storagemocks.MockBlockStorage
	resolver Resolver
}

func TestResolverTestSuite(t *testing.T) {
	suite.Run(t, new(ResolverTestSuite))
}

func (s *ResolverTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.storage = storagemocks.NewMockBlockStorage(s.ctrl)
	s.resolver = New(Params{Storage: s.storage})
}

func (s *ResolverTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ResolverTestSuite) TestResolveNumber_Tags() {
	require := testutil.Require(s.T())
	ctx := context.Background()

	s.storage.EXPECT().GetPendingBlockNumber(ctx).Return(uint64(11), nil)
	number, err := s.resolver.ResolveNumber(ctx, rpc.PendingBlockNumber)
	require.NoError(err)
	require.Equal(uint64(11), number)

	for _, tag := range []rpc.BlockNumber{rpc.LatestBlockNumber, rpc.SafeBlockNumber, rpc.FinalizedBlockNumber} {
		s.storage.EXPECT().GetSealedBlockNumber(ctx).Return(uint64(10), nil)
		number, err = s.resolver.ResolveNumber(ctx, tag)
		require.NoError(err)
		require.Equal(uint64(10), number)
	}

	number, err = s.resolver.ResolveNumber(ctx, rpc.EarliestBlockNumber)
	require.NoError(err)
	require.Equal(uint64(0), number)
}

func (s *ResolverTestSuite) TestResolveNumber_Literal() {
	require := testutil.Require(s.T())
	ctx := context.Background()

	s.storage.EXPECT().GetSealedBlockNumber(ctx).Return(uint64(10), nil).Times(2)
	number, err := s.resolver.ResolveNumber(ctx, rpc.BlockNumber(10))
	require.NoError(err)
	require.Equal(uint64(10), number)

	_, err = s.resolver.ResolveNumber(ctx, rpc.BlockNumber(11))
	require.True(xerrors.Is(err, api.ErrNoBlock))
}

func (s *ResolverTestSuite) TestResolveNumber_StoreError() {
	require := testutil.Require(s.T())
	ctx := context.Background()

	s.storage.EXPECT().GetSealedBlockNumber(ctx).Return(uint64(0), xerrors.New("unavailable"))
	_, err := s.resolver.ResolveNumber(ctx, rpc.LatestBlockNumber)
	require.Error(err)
	require.False(xerrors.Is(err, api.ErrNoBlock))
}

func (s *ResolverTestSuite) TestResolve_Hash() {
	require := testutil.Require(s.T())
	ctx := context.Background()

	known := common.HexToHash("0xabc")
	unknown := common.HexToHash("0xdef")
	s.storage.EXPECT().GetBlockNumberByHash(ctx, known).Return(uint64(7), nil)
	s.storage.EXPECT().GetBlockNumberByHash(ctx, unknown).Return(uint64(0), storage.ErrItemNotFound)

	number, err := s.resolver.Resolve(ctx, rpc.BlockNumberOrHashWithHash(known, false))
	require.NoError(err)
	require.Equal(uint64(7), number)

	_, err = s.resolver.Resolve(ctx, rpc.BlockNumberOrHashWithHash(unknown, false))
	require.True(xerrors.Is(err, api.ErrNoBlock))
}

func (s *ResolverTestSuite) TestResolve_Number() {
	require := testutil.Require(s.T())
	ctx := context.Background()

	s.storage.EXPECT().GetSealedBlockNumber(ctx).Return(uint64(3), nil)
	number, err := s.resolver.Resolve(ctx, rpc.BlockNumberOrHashWithNumber(2))
	require.NoError(err)
	require.Equal(uint64(2), number)

	_, err = s.resolver.Resolve(ctx, rpc.BlockNumberOrHash{})
	require.True(xerrors.Is(err, api.ErrNoBlock))
}

func (s *ResolverTestSuite) TestResolveFilterBound() {
	require := testutil.Require(s.T())
	ctx := context.Background()

	s.storage.EXPECT().GetSealedBlockNumber(ctx).Return(uint64(5), nil).Times(2)
	number, err := s.resolver.ResolveFilterBound(ctx, nil)
	require.NoError(err)
	require.Equal(uint64(5), number)

	latest := rpc.LatestBlockNumber
	number, err = s.resolver.ResolveFilterBound(ctx, &latest)
	require.NoError(err)
	require.Equal(uint64(5), number)

	// Explicit numbers beyond the tip are kept as is.
	future := rpc.BlockNumber(100)
	number, err = s.resolver.ResolveFilterBound(ctx, &future)
	require.NoError(err)
	require.Equal(uint64(100), number)

	earliest := rpc.EarliestBlockNumber
	number, err = s.resolver.ResolveFilterBound(ctx, &earliest)
	require.NoError(err)
	require.Equal(uint64(0), number)
}
