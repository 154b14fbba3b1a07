package clients

import (
	"go.uber.org/fx"

	"github.com/coinbase/l2node/internal/clients/blockchain"
	"github.com/coinbase/l2node/internal/clients/primary"
)

var Module = fx.Options(
	blockchain.Module,
	primary.Module,
)
