package handler

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"golang.org/x/xerrors"

	"github.com/coinbase/l2node/internal/api"
	"github.com/coinbase/l2node/internal/clients/blockchain/jsonrpc"
	"github.com/coinbase/l2node/internal/utils/testutil"
)

func TestChainInterceptors(t *testing.T) {
	require := testutil.Require(t)

	var trace []string
	record := func(name string) Interceptor {
		return func(ctx context.Context, method *jsonrpc.RequestMethod, params jsonrpc.Params, next receiverFn) (json.RawMessage, error) {
			trace = append(trace, name+".before")
			res, err := next(ctx)
			trace = append(trace, name+".after")
			return res, err
		}
	}

	interceptor := chainInterceptors(record("outer"), record("inner"))
	res, err := interceptor(context.Background(), EthBlockNumber, nil, func(ctx context.Context) (json.RawMessage, error) {
		trace = append(trace, "receiver")
		return json.RawMessage(`"0x1"`), nil
	})
	require.NoError(err)
	require.Equal(`"0x1"`, string(res))
	require.Equal([]string{"outer.before", "inner.before", "receiver", "inner.after", "outer.after"}, trace)
}

func TestTimeoutInterceptor(t *testing.T) {
	require := testutil.Require(t)

	method := &jsonrpc.RequestMethod{Name: "eth_test", Timeout: time.Millisecond}
	_, err := timeoutInterceptor(context.Background(), method, nil, func(ctx context.Context) (json.RawMessage, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	require.True(xerrors.Is(err, context.DeadlineExceeded))

	rpcErr := mapError(method.Name, err)
	require.Equal(errorCodeCanceled, rpcErr.Code)
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
		data    string
	}{
		{
			name:    "revert",
			err:     api.NewSubmitTransactionError(api.ReasonExecution, "execution reverted", []byte{0x08, 0xc3}),
			code:    errorCodeExecutionReverted,
			message: "execution reverted",
			data:    `"0x08c3"`,
		},
		{
			name:    "rejected",
			err:     api.NewSubmitTransactionError(api.ReasonOversizedData, "oversized data", nil),
			code:    errorCodeExecutionReverted,
			message: "oversized data",
		},
		{
			name:    "limit",
			err:     xerrors.Errorf("wrapped: %w", &api.LogsLimitExceededError{Limit: 10, FromBlock: 1, SafeToBlock: 16}),
			code:    errorCodeInvalidParams,
			message: "Query returned more than 10 results. Try with this block range [0x1, 0x10].",
		},
		{
			name:    "no block",
			err:     xerrors.Errorf("block 9: %w", api.ErrNoBlock),
			code:    errorCodeInvalidParams,
			message: api.ErrNoBlock.Error(),
		},
		{
			name:    "filter",
			err:     api.ErrFilterNotFound,
			code:    errorCodeInvalidParams,
			message: "Filter not found",
		},
		{
			name:    "topics",
			err:     api.ErrTooManyTopics,
			code:    errorCodeInvalidParams,
			message: "Too many topics",
		},
		{
			name:    "unsupported",
			err:     api.ErrMethodNotSupported,
			code:    errorCodeMethodNotFound,
			message: "Method not implemented",
		},
		{
			name:    "canceled",
			err:     context.Canceled,
			code:    errorCodeCanceled,
			message: context.Canceled.Error(),
		},
		{
			name:    "internal",
			err:     xerrors.New("disk on fire"),
			code:    errorCodeInternal,
			message: errorMessageInternal,
		},
		{
			name:    "upstream",
			err:     jsonrpc.NewRPCError(-32000, "nonce too low"),
			code:    errorCodeInternal,
			message: errorMessageInternal,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require := testutil.Require(t)

			rpcErr := mapError(EthGetLogs.Name, test.err)
			require.Equal(test.code, rpcErr.Code)
			require.Equal(test.message, rpcErr.Error())
			require.Equal(test.data, string(rpcErr.Data))
			require.Equal(test.code != errorCodeInternal, filterClientError(rpcErr))
		})
	}
}

func TestFilterClientError(t *testing.T) {
	require := testutil.Require(t)
	require.False(filterClientError(xerrors.New("plain")))
	require.True(filterClientError(xerrors.Errorf("wrapped: %w", jsonrpc.NewRPCError(errorCodeInvalidParams, "bad"))))
}
