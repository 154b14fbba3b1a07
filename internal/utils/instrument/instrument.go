package instrument

import (
	"context"
	"time"

	"github.com/uber-go/tally/v4"
	"go.uber.org/zap"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"

	"github.com/coinbase/l2node/internal/utils/log"
	"github.com/coinbase/l2node/internal/utils/retry"
)

type (
	// Call instruments an operation with a latency timer, result counters,
	// an optional tracing span, an optional log line and an optional retry.
	Call interface {
		Instrument(ctx context.Context, operation OperationFn, opts ...InstrumentOption) error
	}

	OperationFn func(ctx context.Context) error

	// FilterFn returns true if the error is caused by the client.
	// Such errors are counted separately and only logged at debug level.
	FilterFn func(err error) bool

	Option func(c *callImpl)

	InstrumentOption func(opts *instrumentOptions)

	callImpl struct {
		name         string
		success      tally.Counter
		err          tally.Counter
		clientErr    tally.Counter
		latency      tally.Timer
		logger       *zap.Logger
		loggerMsg    string
		spanName     string
		spanTags     map[string]string
		filter       FilterFn
		retry        retry.Retry
		loggerFields []zap.Field
	}

	instrumentOptions struct {
		loggerFields []zap.Field
	}
)

const (
	successCounter     = "success"
	errorCounter       = "error"
	clientErrorCounter = "client_error"
	latencyTimer       = "latency"
)

func NewCall(scope tally.Scope, name string, opts ...Option) Call {
	scope = scope.SubScope(name)
	c := &callImpl{
		name:      name,
		success:   scope.Counter(successCounter),
		err:       scope.Counter(errorCounter),
		clientErr: scope.Counter(clientErrorCounter),
		latency:   scope.Timer(latencyTimer),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithLogger logs every call with the given message.
func WithLogger(logger *zap.Logger, msg string) Option {
	return func(c *callImpl) {
		c.logger = logger
		c.loggerMsg = msg
	}
}

// WithLoggerField adds a static field to every log line.
func WithLoggerField(field zap.Field) Option {
	return func(c *callImpl) {
		c.loggerFields = append(c.loggerFields, field)
	}
}

// WithTracer starts a span named spanName around every call.
func WithTracer(spanName string, tags map[string]string) Option {
	return func(c *callImpl) {
		c.spanName = spanName
		c.spanTags = tags
	}
}

func WithFilter(filter FilterFn) Option {
	return func(c *callImpl) {
		c.filter = filter
	}
}

func WithRetry(retry retry.Retry) Option {
	return func(c *callImpl) {
		c.retry = retry
	}
}

// WithLoggerFields adds per-call fields to the log line.
func WithLoggerFields(fields ...zap.Field) InstrumentOption {
	return func(opts *instrumentOptions) {
		opts.loggerFields = append(opts.loggerFields, fields...)
	}
}

func (c *callImpl) Instrument(ctx context.Context, operation OperationFn, opts ...InstrumentOption) error {
	options := new(instrumentOptions)
	for _, opt := range opts {
		opt(options)
	}

	var span ddtrace.Span
	if c.spanName != "" {
		spanOpts := make([]ddtrace.StartSpanOption, 0, len(c.spanTags))
		for k, v := range c.spanTags {
			spanOpts = append(spanOpts, tracer.Tag(k, v))
		}
		span, ctx = tracer.StartSpanFromContext(ctx, c.spanName, spanOpts...)
	}

	start := time.Now()
	var err error
	if c.retry != nil {
		err = c.retry.Retry(ctx, retry.OperationFn(operation))
	} else {
		err = operation(ctx)
	}
	duration := time.Since(start)
	c.latency.Record(duration)

	clientErr := err != nil && c.filter != nil && c.filter(err)
	if span != nil {
		if err != nil && !clientErr {
			span.Finish(tracer.WithError(err))
		} else {
			span.Finish()
		}
	}

	switch {
	case err == nil:
		c.success.Inc(1)
	case clientErr:
		c.clientErr.Inc(1)
	default:
		c.err.Inc(1)
	}

	c.log(ctx, err, clientErr, duration, options)
	return err
}

func (c *callImpl) log(ctx context.Context, err error, clientErr bool, duration time.Duration, options *instrumentOptions) {
	if c.logger == nil {
		return
	}

	fields := make([]zap.Field, 0, len(c.loggerFields)+len(options.loggerFields)+2)
	fields = append(fields, c.loggerFields...)
	fields = append(fields, options.loggerFields...)
	fields = append(fields, zap.Duration("duration", duration))

	logger := log.WithSpan(ctx, c.logger)
	switch {
	case err == nil:
		logger.Debug(c.loggerMsg, fields...)
	case clientErr:
		logger.Debug(c.loggerMsg, append(fields, zap.Error(err))...)
	default:
		logger.Error(c.loggerMsg, append(fields, zap.Error(err))...)
	}
}
