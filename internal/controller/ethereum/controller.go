package ethereum

import (
	"go.uber.org/fx"

	"github.com/coinbase/l2node/internal/controller/internal"
)

type (
	controller struct {
		handler   internal.Handler
		cronTasks []internal.CronTask
	}

	ControllerParams struct {
		fx.In
		Handler   internal.Handler    `name:"ethereum"`
		CronTasks []internal.CronTask `group:"ethereum"`
	}
)

func NewController(params ControllerParams) internal.Controller {
	return &controller{
		handler:   params.Handler,
		cronTasks: params.CronTasks,
	}
}

func (c *controller) Handler() internal.Handler {
	return c.handler
}

func (c *controller) CronTasks() []internal.CronTask {
	return c.cronTasks
}
