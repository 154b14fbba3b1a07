package api

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"golang.org/x/xerrors"
	"google.golang.org/grpc/codes"

	"github.com/coinbase/l2node/internal/utils/testutil"
)

func TestServerError(t *testing.T) {
	require := testutil.Require(t)

	err := NewServerError(http.StatusBadRequest, xerrors.New("bad"))
	require.Equal(http.StatusBadRequest, err.HTTPStatus())
	require.Equal(codes.InvalidArgument, err.GRPCStatus().Code())
	require.Contains(err.Error(), "400 Bad Request")
	require.Contains(fmt.Sprintf("%+v", err), "bad")

	require.Equal(codes.Canceled, NewServerError(StatusCanceled, context.Canceled).GRPCStatus().Code())
	require.Equal(codes.NotFound, NewServerError(http.StatusNotFound, nil).GRPCStatus().Code())
	require.Equal(codes.Internal, NewServerError(http.StatusInternalServerError, nil).GRPCStatus().Code())
}

func TestLogsLimitExceededError(t *testing.T) {
	require := testutil.Require(t)

	err := NewLogsLimitExceededError(1000, 100, 199)
	require.Equal("Query returned more than 1000 results. Try with this block range [0x64, 0xc7].", err.Error())

	var target *LogsLimitExceededError
	require.True(xerrors.As(xerrors.Errorf("wrapped: %w", err), &target))
	require.Equal(uint64(199), target.SafeToBlock)
}

func TestSubmitTransactionError(t *testing.T) {
	require := testutil.Require(t)

	err := NewSubmitTransactionError(ReasonExecution, "execution reverted", []byte{0x08, 0xc3})
	require.Equal("execution reverted", err.Error())
	require.Equal("0x08c3", err.HexData())
	require.Empty(NewSubmitTransactionError(ReasonUnknown, "failed", nil).HexData())
}

func TestNewInternalError(t *testing.T) {
	require := testutil.Require(t)

	require.NoError(NewInternalError("eth_call", nil))

	cause := xerrors.New("db is down")
	err := NewInternalError("eth_getBalance", cause)
	var internalErr *InternalError
	require.True(xerrors.As(err, &internalErr))
	require.Equal("eth_getBalance", internalErr.Method)
	require.True(xerrors.Is(err, cause))
	require.Equal("eth_getBalance: db is down", err.Error())

	// Already wrapped errors keep the innermost method name.
	require.Equal(err, NewInternalError("eth_call", err))

	userErr := xerrors.Errorf("failed to resolve: %w", ErrNoBlock)
	require.Equal(userErr, NewInternalError("eth_call", userErr))
}

func TestIsUserError(t *testing.T) {
	require := testutil.Require(t)

	for _, err := range []error{
		ErrNoBlock,
		ErrFilterNotFound,
		ErrTooManyTopics,
		ErrMethodNotSupported,
		ErrInvalidTransaction,
		NewLogsLimitExceededError(1, 2, 3),
		NewSubmitTransactionError(ReasonUnknown, "failed", nil),
		xerrors.Errorf("wrapped: %w", ErrNoBlock),
	} {
		require.True(IsUserError(err), err.Error())
	}

	require.False(IsUserError(xerrors.New("boom")))
	require.False(IsUserError(context.Canceled))
}
