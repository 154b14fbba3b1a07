package tally

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/uber-go/tally/v4"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/coinbase/l2node/internal/config"
	"github.com/coinbase/l2node/internal/utils/testutil"
)

func TestNewRootScope_Prometheus(t *testing.T) {
	require := testutil.Require(t)

	cfg, err := config.New()
	require.NoError(err)
	cfg.Metrics.Prometheus = true

	var scope tally.Scope
	var exporter *Exporter
	app := fxtest.New(
		t,
		Module,
		config.WithCustomConfig(cfg),
		config.Module,
		fx.Provide(func() *zap.Logger { return zaptest.NewLogger(t) }),
		fx.Populate(&scope, &exporter),
	)
	app.RequireStart()
	defer app.RequireStop()

	scope.Counter("requests").Inc(1)
	require.NotNil(exporter.Handler())

	recorder := httptest.NewRecorder()
	exporter.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, MetricsPath, nil))
	require.Equal(http.StatusOK, recorder.Code)
	body, err := io.ReadAll(recorder.Body)
	require.NoError(err)
	require.Contains(string(body), "go_goroutines")
}

func TestNewRootScope_Null(t *testing.T) {
	require := testutil.Require(t)

	cfg, err := config.New()
	require.NoError(err)
	cfg.Metrics.Prometheus = false

	var exporter *Exporter
	app := fxtest.New(
		t,
		Module,
		config.WithCustomConfig(cfg),
		config.Module,
		fx.Provide(func() *zap.Logger { return zaptest.NewLogger(t) }),
		fx.Populate(&exporter),
	)
	app.RequireStart()
	defer app.RequireStop()

	require.Nil(exporter.Handler())
}
