package crontask

import (
	"go.uber.org/fx"
)

const (
	subScope = "crontask"
)

var Module = fx.Options(
	fx.Provide(fx.Annotated{
		Group:  "ethereum",
		Target: NewFailoverTask,
	}),
	fx.Provide(fx.Annotated{
		Group:  "ethereum",
		Target: NewPrimaryHeadTask,
	}),
	fx.Provide(fx.Annotated{
		Group:  "ethereum",
		Target: NewGasPriceTask,
	}),
)
