package tracer

import (
	"testing"

	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/coinbase/l2node/internal/config"
	"github.com/coinbase/l2node/internal/utils/testutil"
)

func TestRegisterTracer_Disabled(t *testing.T) {
	require := testutil.Require(t)

	cfg, err := config.New()
	require.NoError(err)
	require.False(cfg.Tracer.Enabled)

	core, logs := observer.New(zap.InfoLevel)
	app := fxtest.New(
		t,
		Module,
		config.WithCustomConfig(cfg),
		config.Module,
		fx.Provide(func() *zap.Logger { return zap.New(core) }),
	)
	app.RequireStart()
	app.RequireStop()
	require.Zero(logs.FilterMessage("starting tracer").Len())
}

func TestDDLogger(t *testing.T) {
	require := testutil.Require(t)

	core, logs := observer.New(zap.InfoLevel)
	l := &ddLogger{logger: zap.New(core)}
	l.Log("datadog message")
	require.Equal(1, logs.FilterMessage("datadog message").Len())
}
