package testapp

import (
	"testing"

	"github.com/uber-go/tally/v4"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/coinbase/l2node/internal/config"
	"github.com/coinbase/l2node/internal/utils/constants"
	"github.com/coinbase/l2node/internal/utils/testutil"
)

type (
	TestApp interface {
		Close()
		Logger() *zap.Logger
		Config() *config.Config
		Metrics() tally.TestScope
	}

	TestFn func(t *testing.T, cfg *config.Config)

	testAppImpl struct {
		app     *fxtest.App
		logger  *zap.Logger
		config  *config.Config
		metrics tally.TestScope
	}
)

var EnvsToTest = []config.Env{
	config.EnvLocal,
	config.EnvDevelopment,
	config.EnvProduction,
}

func New(t testing.TB, opts ...fx.Option) TestApp {
	logger := zaptest.NewLogger(t)
	metrics := tally.NewTestScope(constants.ServiceName, nil)

	var cfg *config.Config
	opts = append(
		opts,
		config.Module,
		fx.NopLogger,
		fx.Provide(func() testing.TB { return t }),
		fx.Provide(func() *zap.Logger { return logger }),
		fx.Provide(func() tally.Scope { return metrics }),
		fx.Populate(&cfg),
	)

	app := fxtest.New(t, opts...)
	app.RequireStart()
	return &testAppImpl{
		app:     app,
		logger:  logger,
		config:  cfg,
		metrics: metrics,
	}
}

// WithConfig overrides the default config.
func WithConfig(cfg *config.Config) fx.Option {
	return config.WithCustomConfig(cfg)
}

// WithFunctional runs the test only if $TEST_TYPE is functional.
func WithFunctional() fx.Option {
	return fx.Invoke(func(tb testing.TB, cfg *config.Config, logger *zap.Logger) {
		if !cfg.IsFunctionalTest() {
			logger.Warn("skipping functional test", zap.String("test", tb.Name()))
			tb.Skip()
		}
	})
}

func (a *testAppImpl) Close() {
	a.app.RequireStop()
}

func (a *testAppImpl) Logger() *zap.Logger {
	return a.logger
}

func (a *testAppImpl) Config() *config.Config {
	return a.config
}

func (a *testAppImpl) Metrics() tally.TestScope {
	return a.metrics
}

// TestAllConfigs runs fn against every network and environment.
func TestAllConfigs(t *testing.T, fn TestFn) {
	for _, configName := range config.ConfigNames {
		configName := configName
		t.Run(configName, func(t *testing.T) {
			for _, env := range EnvsToTest {
				env := env
				t.Run(string(env), func(t *testing.T) {
					require := testutil.Require(t)
					cfg, err := config.New(
						config.WithConfigName(configName),
						config.WithEnvironment(env),
					)
					require.NoError(err)
					require.Equal(env, cfg.Env())
					require.Equal(configName, cfg.ConfigName)

					fn(t, cfg)
				})
			}
		})
	}
}
