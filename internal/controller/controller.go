package controller

import (
	"strings"

	"go.uber.org/fx"
	"golang.org/x/xerrors"

	"github.com/coinbase/l2node/internal/controller/internal"
	"github.com/coinbase/l2node/internal/utils/fxparams"
)

// NOTE: The interfaces are defined in an internal package to avoid cyclic imports.
type (
	// Controller is a facade to the RPC handler and the periodic tasks of a node.
	// The protocol-specific implementation is injected at runtime.
	Controller = internal.Controller

	// Handler defines the RPC handler.
	Handler = internal.Handler

	// CronTask defines the interface of a periodic task.
	CronTask = internal.CronTask

	// PreHandler defines the interface to run before the handler.
	PreHandler = internal.PreHandler

	ControllerParams struct {
		fx.In
		fxparams.Params
		Ethereum Controller `name:"ethereum"`
	}
)

const protocolZKSync = "zks"

func NewController(params ControllerParams) (Controller, error) {
	var controller Controller
	protocol := params.Config.Chain.ProtocolVersion
	if i := strings.IndexByte(protocol, '/'); i >= 0 {
		protocol = protocol[:i]
	}

	switch protocol {
	case protocolZKSync:
		controller = params.Ethereum
	}

	if controller == nil {
		return nil, xerrors.Errorf("controller is not implemented: %v", params.Config.Chain.ProtocolVersion)
	}

	return controller, nil
}
