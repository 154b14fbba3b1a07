package jsonrpc_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/fx"
	"golang.org/x/xerrors"

	"github.com/coinbase/l2node/internal/clients/blockchain/endpoints"
	"github.com/coinbase/l2node/internal/clients/blockchain/jsonrpc"
	"github.com/coinbase/l2node/internal/clients/blockchain/jsonrpc/mocks"
	"github.com/coinbase/l2node/internal/utils/testapp"
	"github.com/coinbase/l2node/internal/utils/testutil"
)

type ClientTestSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	app        testapp.TestApp
	httpClient *mocks.MockHTTPClient
	client     jsonrpc.Client
}

var testMethod = &jsonrpc.RequestMethod{
	Name:    "eth_blockNumber",
	Timeout: time.Second,
}

func TestClientTestSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func (s *ClientTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.httpClient = mocks.NewMockHTTPClient(s.ctrl)

	var params struct {
		fx.In
		Client jsonrpc.Client `name:"server"`
	}
	s.app = testapp.New(
		s.T(),
		endpoints.Module,
		jsonrpc.Module,
		fx.Provide(func() jsonrpc.HTTPClient { return s.httpClient }),
		fx.Populate(&params),
	)
	s.client = params.Client
}

func (s *ClientTestSuite) TearDownTest() {
	s.app.Close()
	s.ctrl.Finish()
}

func (s *ClientTestSuite) TestCall() {
	require := testutil.Require(s.T())

	s.httpClient.EXPECT().Do(gomock.Any()).DoAndReturn(func(req *http.Request) (*http.Response, error) {
		require.Equal(http.MethodPost, req.Method)
		require.Equal("application/json", req.Header.Get("Content-Type"))

		var request jsonrpc.Request
		body, err := io.ReadAll(req.Body)
		require.NoError(err)
		require.NoError(json.Unmarshal(body, &request))
		require.Equal("2.0", request.JSONRPC)
		require.Equal("eth_blockNumber", request.Method)
		return newResponse(http.StatusOK, `{"jsonrpc":"2.0","id":0,"result":"0x10"}`), nil
	})

	response, err := s.client.Call(context.Background(), testMethod, nil)
	require.NoError(err)

	var result string
	require.NoError(response.Unmarshal(&result))
	require.Equal("0x10", result)
	require.False(response.IsNullOrEmpty())
}

func (s *ClientTestSuite) TestCall_RPCError() {
	require := testutil.Require(s.T())

	s.httpClient.EXPECT().Do(gomock.Any()).Return(
		newResponse(http.StatusOK, `{"jsonrpc":"2.0","id":0,"error":{"code":3,"message":"execution reverted","data":"0x08c379a0"}}`),
		nil,
	)

	_, err := s.client.Call(context.Background(), testMethod, nil)
	require.Error(err)

	var rpcErr *jsonrpc.RPCError
	require.True(xerrors.As(err, &rpcErr))
	require.Equal(3, rpcErr.ErrorCode())
	require.Equal("execution reverted", rpcErr.Error())
	require.Equal(json.RawMessage(`"0x08c379a0"`), rpcErr.ErrorData())
}

func (s *ClientTestSuite) TestCall_Retry() {
	require := testutil.Require(s.T())

	gomock.InOrder(
		s.httpClient.EXPECT().Do(gomock.Any()).Return(newResponse(http.StatusBadGateway, "bad gateway"), nil),
		s.httpClient.EXPECT().Do(gomock.Any()).Return(newResponse(http.StatusOK, `{"jsonrpc":"2.0","id":0,"result":"0x1"}`), nil),
	)

	response, err := s.client.Call(context.Background(), testMethod, nil)
	require.NoError(err)
	require.Equal(json.RawMessage(`"0x1"`), response.Result)
}

func (s *ClientTestSuite) TestCall_HTTPError() {
	require := testutil.Require(s.T())

	s.httpClient.EXPECT().Do(gomock.Any()).Return(newResponse(http.StatusUnauthorized, "denied"), nil)

	_, err := s.client.Call(context.Background(), testMethod, nil)
	require.Error(err)

	var httpErr *jsonrpc.HTTPError
	require.True(xerrors.As(err, &httpErr))
	require.Equal(http.StatusUnauthorized, httpErr.Code)
}

func (s *ClientTestSuite) TestBatchCall() {
	require := testutil.Require(s.T())

	s.httpClient.EXPECT().Do(gomock.Any()).Return(newResponse(http.StatusOK, `[
		{"jsonrpc":"2.0","id":1,"result":"0x2"},
		{"jsonrpc":"2.0","id":0,"result":"0x1"}
	]`), nil)

	responses, err := s.client.BatchCall(context.Background(), testMethod, []jsonrpc.Params{{"a"}, {"b"}})
	require.NoError(err)
	require.Len(responses, 2)
	require.Equal(json.RawMessage(`"0x1"`), responses[0].Result)
	require.Equal(json.RawMessage(`"0x2"`), responses[1].Result)
}

func (s *ClientTestSuite) TestGetEndpointProvider() {
	require := testutil.Require(s.T())
	require.Equal(endpoints.ServerEndpointGroupName, s.client.GetEndpointProvider().Name())
}

func TestRPCError(t *testing.T) {
	require := testutil.Require(t)

	cause := xerrors.New("boom")
	err := jsonrpc.NewRPCError(-32602, "invalid params").WithCause(cause)
	require.Equal("invalid params", err.Error())
	require.Equal(-32602, err.ErrorCode())
	require.Nil(err.ErrorData())
	require.Contains(fmt.Sprintf("%+v", err), "Caused by: boom")
}

func newResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}
