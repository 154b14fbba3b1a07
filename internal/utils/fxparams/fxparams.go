package fxparams

import (
	"github.com/uber-go/tally/v4"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/coinbase/l2node/internal/config"
)

type (
	// Params holds the dependencies shared by almost every component.
	Params struct {
		fx.In
		Config  *config.Config
		Logger  *zap.Logger
		Metrics tally.Scope
	}
)
