package tracer

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"

	"github.com/coinbase/l2node/internal/config"
	"github.com/coinbase/l2node/internal/utils/constants"
	"github.com/coinbase/l2node/internal/utils/log"
)

type (
	TracerParams struct {
		fx.In
		Lifecycle fx.Lifecycle
		Config    *config.Config
		Logger    *zap.Logger
	}

	ddLogger struct {
		logger *zap.Logger
	}
)

var (
	Module = fx.Invoke(RegisterTracer)

	_ ddtrace.Logger = (*ddLogger)(nil)
)

// RegisterTracer starts the Datadog tracer for the lifetime of the app.
// When tracing is disabled, the global no-op tracer stays in place and spans cost nothing.
func RegisterTracer(params TracerParams) {
	cfg := params.Config
	if !cfg.Tracer.Enabled {
		return
	}

	logger := log.WithPackage(params.Logger)
	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("starting tracer")
			tracer.Start(
				tracer.WithService(constants.ServiceName),
				tracer.WithEnv(string(cfg.Env())),
				tracer.WithGlobalTag("network", cfg.Network()),
				tracer.WithLogger(&ddLogger{logger: logger}),
			)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping tracer")
			tracer.Stop()
			return nil
		},
	})
}

func (l *ddLogger) Log(msg string) {
	l.logger.Info(msg)
}
