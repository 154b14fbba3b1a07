package tally

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/uber-go/tally/v4"
	tallyprom "github.com/uber-go/tally/v4/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/xerrors"

	"github.com/coinbase/l2node/internal/config"
	"github.com/coinbase/l2node/internal/utils/constants"
	"github.com/coinbase/l2node/internal/utils/log"
)

type (
	MetricParams struct {
		fx.In
		Lifecycle fx.Lifecycle
		Config    *config.Config
		Logger    *zap.Logger
		Reporter  tally.StatsReporter `optional:"true"`
	}

	MetricResult struct {
		fx.Out
		Scope    tally.Scope
		Exporter *Exporter
	}

	// Exporter serves the metrics in the Prometheus exposition format.
	// Handler returns nil when the Prometheus reporter is disabled.
	Exporter struct {
		handler http.Handler
	}
)

const (
	reportingInterval = time.Second

	MetricsPath = "/metrics"
)

var Module = fx.Options(
	fx.Provide(NewRootScope),
)

func NewRootScope(params MetricParams) (MetricResult, error) {
	opts := tally.ScopeOptions{
		Prefix: constants.ServiceName,
		Tags:   params.Config.GetCommonTags(),
	}

	exporter := &Exporter{}
	switch {
	case params.Reporter != nil:
		// Injected by the embedding process.
		opts.Reporter = params.Reporter
	case params.Config.Metrics.Prometheus:
		registry := prometheus.NewRegistry()
		if err := registry.Register(collectors.NewGoCollector()); err != nil {
			return MetricResult{}, xerrors.Errorf("failed to register go collector: %w", err)
		}

		logger := log.WithPackage(params.Logger)
		reporter := tallyprom.NewReporter(tallyprom.Options{
			Registerer: registry,
			OnRegisterError: func(err error) {
				logger.Warn("failed to register metric", zap.Error(err))
			},
		})
		opts.CachedReporter = reporter
		opts.Separator = tallyprom.DefaultSeparator
		opts.SanitizeOptions = &tallyprom.DefaultSanitizerOpts
		exporter.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	default:
		opts.Reporter = tally.NullStatsReporter
	}

	scope, closer := tally.NewRootScope(opts, reportingInterval)
	params.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return closer.Close()
		},
	})

	return MetricResult{
		Scope:    scope,
		Exporter: exporter,
	}, nil
}

func (e *Exporter) Handler() http.Handler {
	return e.handler
}
