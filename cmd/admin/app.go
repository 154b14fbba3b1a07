package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"
	"github.com/uber-go/tally/v4"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/xerrors"

	"github.com/coinbase/l2node/internal/clients"
	"github.com/coinbase/l2node/internal/config"
	"github.com/coinbase/l2node/internal/utils/log"
)

type (
	App struct {
		Config *config.Config
		Logger *zap.Logger

		app    *fx.App
		ctx    context.Context
		cancel context.CancelFunc
	}
)

func NewApp(opts ...fx.Option) (*App, error) {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)

	logger, err := log.NewDevelopment()
	if err != nil {
		cancel()
		return nil, xerrors.Errorf("failed to create logger: %w", err)
	}

	env := config.Env(rootFlags.env)
	cfg, err := config.New(
		config.WithEnvironment(env),
		config.WithConfigName(rootFlags.configName),
	)
	if err != nil {
		cancel()
		return nil, xerrors.Errorf("failed to create config: %w", err)
	}

	logger.Info(
		"starting app",
		zap.String("env", string(env)),
		zap.String("network", cfg.Network()),
		zap.String("server", cfg.Chain.Client.ServerAddress),
	)

	opts = append(opts,
		clients.Module,
		config.Module,
		config.WithCustomConfig(cfg),
		fx.NopLogger,
		fx.Provide(func() *zap.Logger { return logger }),
		fx.Provide(func() tally.Scope { return tally.NoopScope }),
	)
	app := fx.New(opts...)
	if err := app.Start(ctx); err != nil {
		cancel()
		return nil, xerrors.Errorf("failed to start app: %w", err)
	}

	return &App{
		Config: cfg,
		Logger: logger,
		app:    app,
		ctx:    ctx,
		cancel: cancel,
	}, nil
}

func (a *App) Context() context.Context {
	return a.ctx
}

func (a *App) Close() {
	if a == nil {
		return
	}

	if err := a.app.Stop(context.Background()); err != nil {
		a.Logger.Error("failed to stop app", zap.Error(err))
	}

	a.cancel()
}

func (a *App) Confirm(prompt string) bool {
	msg := color.MagentaString(fmt.Sprintf("[%v::%v] ", a.Config.Env(), a.Config.Network())) +
		color.CyanString(prompt+" (y/N) ")

	fmt.Print(msg)
	response, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		a.Logger.Error("failed to read from console", zap.Error(err))
		return false
	}

	return strings.ToLower(strings.TrimSpace(response)) == "y"
}
