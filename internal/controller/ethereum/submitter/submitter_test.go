package submitter

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"
	"github.com/uber-go/tally/v4"
	"go.uber.org/fx"
	"go.uber.org/zap/zaptest"
	"golang.org/x/xerrors"

	"github.com/coinbase/l2node/internal/api"
	"github.com/coinbase/l2node/internal/config"
	"github.com/coinbase/l2node/internal/controller/ethereum/submitter/mocks"
	storageapi "github.com/coinbase/l2node/internal/storage/ethereum"
	"github.com/coinbase/l2node/internal/utils/fxparams"
	"github.com/coinbase/l2node/internal/utils/testapp"
	"github.com/coinbase/l2node/internal/utils/testutil"
)

type SubmitterTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	app       testapp.TestApp
	submitter Submitter
	storage   storageapi.MemoryStorage
	proxy     *mocks.MockPipeline
}

const submitErrorMetric = "l2node.api.submit_tx_error"

func TestSubmitterTestSuite(t *testing.T) {
	suite.Run(t, new(SubmitterTestSuite))
}

func (s *SubmitterTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.proxy = mocks.NewMockPipeline(s.ctrl)
}

func (s *SubmitterTestSuite) TearDownTest() {
	if s.app != nil {
		s.app.Close()
	}

	s.ctrl.Finish()
}

func (s *SubmitterTestSuite) newConfig(follower bool) *config.Config {
	cfg, err := config.New()
	s.Require().NoError(err)
	cfg.API.MaxTxSize = 1024
	cfg.Replica.Enabled = follower
	return cfg
}

func (s *SubmitterTestSuite) start(cfg *config.Config, opts ...fx.Option) {
	opts = append(
		opts,
		testapp.WithConfig(cfg),
		storageapi.Module,
		Module,
		fx.Populate(&s.submitter, &s.storage),
	)
	s.app = testapp.New(s.T(), opts...)
}

func (s *SubmitterTestSuite) provideProxy() fx.Option {
	return fx.Provide(fx.Annotated{
		Name:   "proxy",
		Target: func() Pipeline { return s.proxy },
	})
}

func (s *SubmitterTestSuite) submitErrors(reason string) int64 {
	for _, counter := range s.app.Metrics().Snapshot().Counters() {
		if counter.Name() == submitErrorMetric && counter.Tags()[reasonTag] == reason {
			return counter.Value()
		}
	}

	return 0
}

func (s *SubmitterTestSuite) TestSubmit() {
	require := testutil.Require(s.T())
	s.start(s.newConfig(false))
	ctx := context.Background()

	raw, tx := testutil.MakeRawTransaction()
	hash, err := s.submitter.Submit(ctx, raw)
	require.NoError(err)
	require.Equal(tx.Hash(), hash)

	pending, err := s.storage.GetTransactionByHash(ctx, hash)
	require.NoError(err)
	require.Equal(hash, pending.Hash)
	require.Nil(pending.BlockNumber)
}

func (s *SubmitterTestSuite) TestSubmit_Legacy() {
	require := testutil.Require(s.T())
	s.start(s.newConfig(false))

	raw, tx := testutil.MakeRawTransaction(testutil.WithLegacy())
	hash, err := s.submitter.Submit(context.Background(), raw)
	require.NoError(err)
	require.Equal(tx.Hash(), hash)
}

func (s *SubmitterTestSuite) TestSubmit_Oversized() {
	require := testutil.Require(s.T())
	s.start(s.newConfig(false))

	raw, _ := testutil.MakeRawTransaction(testutil.WithData(make([]byte, 2048)))
	_, err := s.submitter.Submit(context.Background(), raw)
	var submitErr *api.SubmitTransactionError
	require.True(xerrors.As(err, &submitErr))
	require.Equal(api.ReasonOversizedData, submitErr.Reason)
	require.Equal(int64(1), s.submitErrors(api.ReasonOversizedData))
}

func (s *SubmitterTestSuite) TestSubmit_InvalidPayload() {
	require := testutil.Require(s.T())
	s.start(s.newConfig(false))

	_, err := s.submitter.Submit(context.Background(), []byte{0x02, 0xc0})
	require.True(xerrors.Is(err, api.ErrInvalidTransaction))

	_, err = s.submitter.Submit(context.Background(), nil)
	require.True(xerrors.Is(err, api.ErrInvalidTransaction))
}

func (s *SubmitterTestSuite) TestSubmit_InvalidChainID() {
	require := testutil.Require(s.T())
	s.start(s.newConfig(false))

	raw, _ := testutil.MakeRawTransaction(testutil.WithChainID(1))
	_, err := s.submitter.Submit(context.Background(), raw)
	var submitErr *api.SubmitTransactionError
	require.True(xerrors.As(err, &submitErr))
	require.Equal(reasonInvalidChainID, submitErr.Reason)
	require.Equal(int64(1), s.submitErrors(reasonInvalidChainID))
}

func (s *SubmitterTestSuite) TestSubmit_Known() {
	require := testutil.Require(s.T())
	s.start(s.newConfig(false))
	ctx := context.Background()

	raw, _ := testutil.MakeRawTransaction()
	_, err := s.submitter.Submit(ctx, raw)
	require.NoError(err)

	_, err = s.submitter.Submit(ctx, raw)
	var submitErr *api.SubmitTransactionError
	require.True(xerrors.As(err, &submitErr))
	require.Equal(reasonKnownTransaction, submitErr.Reason)
	require.Equal(int64(1), s.submitErrors(reasonKnownTransaction))
}

func (s *SubmitterTestSuite) TestSubmit_NonceTooLow() {
	require := testutil.Require(s.T())
	s.start(s.newConfig(false))
	ctx := context.Background()

	_, err := s.storage.SealBlock(ctx, &storageapi.NewBlock{
		Transactions: []*types.Transaction{
			testutil.MakeSignedTransaction(testutil.WithNonce(0)),
			testutil.MakeSignedTransaction(testutil.WithNonce(1)),
		},
	})
	require.NoError(err)

	raw, _ := testutil.MakeRawTransaction(testutil.WithNonce(1), testutil.WithData([]byte{0x01}))
	_, err = s.submitter.Submit(ctx, raw)
	var submitErr *api.SubmitTransactionError
	require.True(xerrors.As(err, &submitErr))
	require.Equal(reasonNonceTooLow, submitErr.Reason)
}

func (s *SubmitterTestSuite) TestSubmit_Follower() {
	require := testutil.Require(s.T())
	s.proxy.EXPECT().Name().Return("proxy").AnyTimes()
	s.start(s.newConfig(true), s.provideProxy())
	ctx := context.Background()

	raw, tx := testutil.MakeRawTransaction()
	s.proxy.EXPECT().
		Submit(ctx, gomock.Any(), raw).
		DoAndReturn(func(ctx context.Context, actual *types.Transaction, raw []byte) error {
			require.Equal(tx.Hash(), actual.Hash())
			return nil
		})

	hash, err := s.submitter.Submit(ctx, raw)
	require.NoError(err)
	require.Equal(tx.Hash(), hash)

	// The transaction does not enter the local mempool of a follower.
	_, err = s.storage.GetTransactionByHash(ctx, hash)
	require.Error(err)
}

func (s *SubmitterTestSuite) TestSubmit_FollowerRejected() {
	require := testutil.Require(s.T())
	s.proxy.EXPECT().Name().Return("proxy").AnyTimes()
	s.start(s.newConfig(true), s.provideProxy())
	ctx := context.Background()

	raw, _ := testutil.MakeRawTransaction()
	s.proxy.EXPECT().
		Submit(ctx, gomock.Any(), raw).
		Return(api.NewSubmitTransactionError(api.ReasonProxyError, "insufficient funds", nil))

	_, err := s.submitter.Submit(ctx, raw)
	var submitErr *api.SubmitTransactionError
	require.True(xerrors.As(err, &submitErr))
	require.Equal("insufficient funds", submitErr.Message)
	require.Equal(int64(1), s.submitErrors(api.ReasonProxyError))
}

func (s *SubmitterTestSuite) TestNew_FollowerWithoutProxy() {
	require := testutil.Require(s.T())

	_, err := New(Params{
		Params: fxparams.Params{
			Config:  s.newConfig(true),
			Logger:  zaptest.NewLogger(s.T()),
			Metrics: tally.NewTestScope("test", nil),
		},
		Mempool: storageapi.NewMemoryStorage(),
	})
	require.Error(err)
}
