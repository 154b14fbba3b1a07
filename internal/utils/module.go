package utils

import (
	"go.uber.org/fx"

	"github.com/coinbase/l2node/internal/utils/tally"
	"github.com/coinbase/l2node/internal/utils/tracer"
)

var Module = fx.Options(
	tally.Module,
	tracer.Module,
)
