package main

import (
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/coinbase/l2node/internal/clients"
	"github.com/coinbase/l2node/internal/config"
	"github.com/coinbase/l2node/internal/controller"
	"github.com/coinbase/l2node/internal/cron"
	"github.com/coinbase/l2node/internal/server"
	"github.com/coinbase/l2node/internal/storage"
	"github.com/coinbase/l2node/internal/utils"
	"github.com/coinbase/l2node/internal/utils/log"
)

func main() {
	fx.New(appOptions()...).Run()
}

func appOptions(opts ...fx.Option) []fx.Option {
	return append(
		opts,
		clients.Module,
		config.Module,
		controller.Module,
		cron.Module,
		server.Module,
		storage.Module,
		utils.Module,
		fx.Provide(newLogger),
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.WithPackage(logger)}
		}),
	)
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Env() == config.EnvProduction {
		return log.NewProduction()
	}

	return log.NewDevelopment()
}
