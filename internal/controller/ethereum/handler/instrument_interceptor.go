package handler

import (
	"context"
	"encoding/json"

	"github.com/uber-go/tally/v4"
	"go.uber.org/zap"

	"github.com/coinbase/l2node/internal/clients/blockchain/jsonrpc"
	"github.com/coinbase/l2node/internal/utils/instrument"
)

const (
	apiScopeName  = "api"
	web3ScopeName = "web3"
	callName      = "call"
	loggerMsg     = "api.request"
	spanName      = "api.request"
	methodField   = "method"
)

// newInstrumentInterceptor times, counts, traces and logs every method once.
// Client errors are logged at debug level.
func newInstrumentInterceptor(scope tally.Scope, logger *zap.Logger) Interceptor {
	scope = scope.SubScope(apiScopeName).SubScope(web3ScopeName)
	calls := make(map[string]instrument.Call, len(Methods))
	for _, method := range Methods {
		calls[method.Name] = newInstrument(method, scope, logger)
	}

	return func(ctx context.Context, method *jsonrpc.RequestMethod, params jsonrpc.Params, next receiverFn) (json.RawMessage, error) {
		call, ok := calls[method.Name]
		if !ok {
			logger.Warn("method is not instrumented", zap.String(methodField, method.Name))
			return next(ctx)
		}

		var res json.RawMessage
		err := call.Instrument(
			ctx,
			func(ctx context.Context) error {
				v, err := next(ctx)
				if err != nil {
					return err
				}

				res = v
				return nil
			},
			instrument.WithLoggerFields(zap.Reflect("params", params)),
		)
		return res, err
	}
}

func newInstrument(method *jsonrpc.RequestMethod, scope tally.Scope, logger *zap.Logger) instrument.Call {
	return instrument.NewCall(
		scope.Tagged(map[string]string{methodField: method.Name}),
		callName,
		instrument.WithLogger(logger.With(zap.String(methodField, method.Name)), loggerMsg),
		instrument.WithTracer(spanName, map[string]string{methodField: method.Name}),
		instrument.WithFilter(filterClientError),
	)
}
