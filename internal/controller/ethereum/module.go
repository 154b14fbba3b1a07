package ethereum

import (
	"go.uber.org/fx"

	"github.com/coinbase/l2node/internal/controller/ethereum/crontask"
	"github.com/coinbase/l2node/internal/controller/ethereum/filters"
	"github.com/coinbase/l2node/internal/controller/ethereum/gasprice"
	"github.com/coinbase/l2node/internal/controller/ethereum/handler"
	"github.com/coinbase/l2node/internal/controller/ethereum/logs"
	"github.com/coinbase/l2node/internal/controller/ethereum/replica"
	"github.com/coinbase/l2node/internal/controller/ethereum/resolver"
	"github.com/coinbase/l2node/internal/controller/ethereum/simulator"
	"github.com/coinbase/l2node/internal/controller/ethereum/submitter"
)

var Module = fx.Options(
	fx.Provide(fx.Annotated{
		Name:   "ethereum",
		Target: NewController,
	}),
	resolver.Module,
	filters.Module,
	logs.Module,
	gasprice.Module,
	simulator.Module,
	submitter.Module,
	replica.Module,
	handler.Module,
	crontask.Module,
)
