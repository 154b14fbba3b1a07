package replica

import (
	"context"
	"encoding/json"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/xerrors"

	"github.com/coinbase/l2node/internal/api"
	xapi "github.com/coinbase/l2node/internal/api/ethereum"
	"github.com/coinbase/l2node/internal/clients/blockchain/jsonrpc"
	"github.com/coinbase/l2node/internal/clients/primary"
	"github.com/coinbase/l2node/internal/controller/ethereum/submitter"
	"github.com/coinbase/l2node/internal/utils/log"
)

type (
	ProxyPipelineParams struct {
		fx.In
		Logger  *zap.Logger
		Primary primary.Client
		Cache   ProxyCache
	}

	ProxyPipelineResult struct {
		fx.Out
		Pipeline submitter.Pipeline `name:"proxy"`
	}

	proxyPipeline struct {
		logger  *zap.Logger
		primary primary.Client
		cache   ProxyCache
	}
)

const ProxyPipelineName = "proxy"

// NewProxyPipeline forwards transactions to the primary node and stages them in the proxy cache.
func NewProxyPipeline(params ProxyPipelineParams) ProxyPipelineResult {
	return ProxyPipelineResult{
		Pipeline: &proxyPipeline{
			logger:  log.WithPackage(params.Logger),
			primary: params.Primary,
			cache:   params.Cache,
		},
	}
}

func (p *proxyPipeline) Name() string {
	return ProxyPipelineName
}

func (p *proxyPipeline) Submit(ctx context.Context, tx *types.Transaction, raw []byte) error {
	hash, err := p.primary.SendRawTransaction(ctx, raw)
	if err != nil {
		if xerrors.Is(err, context.Canceled) {
			return err
		}

		return newProxyError(err)
	}

	if hash != tx.Hash() {
		p.logger.Warn(
			"primary returned a different transaction hash",
			zap.Stringer("expected", tx.Hash()),
			zap.Stringer("actual", hash),
		)
	}

	pending, err := xapi.NewPendingTransaction(tx)
	if err != nil {
		return xerrors.Errorf("failed to convert proxied transaction: %w", err)
	}

	p.cache.Insert(pending)
	return nil
}

// newProxyError keeps the message and revert data the primary responded with.
func newProxyError(err error) error {
	var rpcErr *jsonrpc.RPCError
	if !xerrors.As(err, &rpcErr) {
		return api.NewSubmitTransactionError(api.ReasonProxyError, err.Error(), nil)
	}

	var data []byte
	var encoded string
	if len(rpcErr.Data) > 0 && json.Unmarshal(rpcErr.Data, &encoded) == nil {
		data, _ = hexutil.Decode(encoded)
	}

	return api.NewSubmitTransactionError(api.ReasonProxyError, rpcErr.Message, data)
}
