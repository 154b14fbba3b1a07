package handler

import (
	"context"
	"encoding/json"
	"strconv"

	"golang.org/x/xerrors"

	"github.com/coinbase/l2node/internal/api"
	"github.com/coinbase/l2node/internal/clients/blockchain/jsonrpc"
)

const (
	errorCodeInvalidParams     = -32602
	errorCodeMethodNotFound    = -32601
	errorCodeInternal          = -32603
	errorCodeCanceled          = -32098
	errorCodeExecutionReverted = 3

	errorMessageInternal = "Internal error"
)

// errorInterceptor turns the error kinds of the api package into JSON-RPC errors.
// Any other error is reported as an internal error carrying the method name.
func errorInterceptor(ctx context.Context, method *jsonrpc.RequestMethod, params jsonrpc.Params, next receiverFn) (json.RawMessage, error) {
	res, err := next(ctx)
	if err != nil {
		return nil, mapError(method.Name, err)
	}

	return res, nil
}

func mapError(method string, err error) *jsonrpc.RPCError {
	var submitErr *api.SubmitTransactionError
	if xerrors.As(err, &submitErr) {
		rpcErr := jsonrpc.NewRPCError(errorCodeExecutionReverted, submitErr.Message)
		if data := submitErr.HexData(); data != "" {
			rpcErr.Data = json.RawMessage(strconv.Quote(data))
		}

		return rpcErr.WithCause(err)
	}

	var limitErr *api.LogsLimitExceededError
	if xerrors.As(err, &limitErr) {
		return jsonrpc.NewRPCError(errorCodeInvalidParams, limitErr.Error()).WithCause(err)
	}

	for _, kind := range []error{
		api.ErrNoBlock,
		api.ErrFilterNotFound,
		api.ErrTooManyTopics,
		api.ErrInvalidTransaction,
		api.ErrInvalidArgument,
	} {
		if xerrors.Is(err, kind) {
			return jsonrpc.NewRPCError(errorCodeInvalidParams, kind.Error()).WithCause(err)
		}
	}

	if xerrors.Is(err, api.ErrMethodNotSupported) {
		return jsonrpc.NewRPCError(errorCodeMethodNotFound, api.ErrMethodNotSupported.Error()).WithCause(err)
	}

	if isCanceledError(err) {
		return jsonrpc.NewRPCError(errorCodeCanceled, err.Error()).WithCause(err)
	}

	return jsonrpc.NewRPCError(errorCodeInternal, errorMessageInternal).WithCause(api.NewInternalError(method, err))
}

func isCanceledError(err error) bool {
	return xerrors.Is(err, context.Canceled) || xerrors.Is(err, context.DeadlineExceeded)
}

// filterClientError returns true if the error is caused by the request rather than the node.
func filterClientError(err error) bool {
	var rpcErr *jsonrpc.RPCError
	if xerrors.As(err, &rpcErr) {
		return rpcErr.Code != errorCodeInternal
	}

	return false
}
