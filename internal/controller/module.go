package controller

import (
	"go.uber.org/fx"

	"github.com/coinbase/l2node/internal/controller/ethereum"
)

var Module = fx.Options(
	fx.Provide(NewController),
	ethereum.Module,
)
