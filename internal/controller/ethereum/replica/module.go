package replica

import (
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(NewProxyCache),
	fx.Provide(NewProxyPipeline),
	fx.Provide(NewReconciler),
	fx.Provide(NewSyncTracker),
)
