package blockchain

import (
	"go.uber.org/fx"

	"github.com/coinbase/l2node/internal/clients/blockchain/endpoints"
	"github.com/coinbase/l2node/internal/clients/blockchain/jsonrpc"
)

var Module = fx.Options(
	endpoints.Module,
	jsonrpc.Module,
)
