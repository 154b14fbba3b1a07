package handler

import (
	"context"
	"encoding/json"

	"github.com/coinbase/l2node/internal/clients/blockchain/jsonrpc"
)

type (
	// Interceptor wraps the dispatch of every RPC method.
	// It must call next exactly once unless it fails the request itself.
	Interceptor func(ctx context.Context, method *jsonrpc.RequestMethod, params jsonrpc.Params, next receiverFn) (json.RawMessage, error)

	receiverFn func(ctx context.Context) (json.RawMessage, error)
)

// chainInterceptors composes the interceptors so that the first one is the outermost.
func chainInterceptors(interceptors ...Interceptor) Interceptor {
	return func(ctx context.Context, method *jsonrpc.RequestMethod, params jsonrpc.Params, next receiverFn) (json.RawMessage, error) {
		handler := next
		for i := len(interceptors) - 1; i >= 0; i-- {
			interceptor, inner := interceptors[i], handler
			handler = func(ctx context.Context) (json.RawMessage, error) {
				return interceptor(ctx, method, params, inner)
			}
		}

		return handler(ctx)
	}
}

// timeoutInterceptor bounds every method by its configured timeout.
func timeoutInterceptor(ctx context.Context, method *jsonrpc.RequestMethod, params jsonrpc.Params, next receiverFn) (json.RawMessage, error) {
	if method.Timeout <= 0 {
		return next(ctx)
	}

	ctx, cancel := context.WithTimeout(ctx, method.Timeout)
	defer cancel()
	return next(ctx)
}
