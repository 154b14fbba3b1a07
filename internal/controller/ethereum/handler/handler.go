package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/xerrors"

	"github.com/coinbase/l2node/internal/api"
	"github.com/coinbase/l2node/internal/config"
	"github.com/coinbase/l2node/internal/controller/ethereum/filters"
	"github.com/coinbase/l2node/internal/controller/ethereum/gasprice"
	"github.com/coinbase/l2node/internal/controller/ethereum/logs"
	"github.com/coinbase/l2node/internal/controller/ethereum/replica"
	"github.com/coinbase/l2node/internal/controller/ethereum/resolver"
	"github.com/coinbase/l2node/internal/controller/ethereum/simulator"
	"github.com/coinbase/l2node/internal/controller/ethereum/submitter"
	"github.com/coinbase/l2node/internal/controller/internal"
	storageapi "github.com/coinbase/l2node/internal/storage/ethereum"
	"github.com/coinbase/l2node/internal/utils/fxparams"
	"github.com/coinbase/l2node/internal/utils/log"
)

type (
	HandlerParams struct {
		fx.In
		fxparams.Params
		Resolver   resolver.Resolver
		Blocks     storageapi.BlockStorage
		State      storageapi.StateStorage
		Registry   filters.Registry
		Engine     logs.Engine
		Simulator  simulator.Simulator
		Submitter  submitter.Submitter
		Reconciler replica.Reconciler
		Tracker    replica.SyncTracker
		GasPrice   gasprice.Oracle
	}

	handler struct {
		config      *config.Config
		receiver    Receiver
		interceptor Interceptor
	}
)

var (
	_ internal.Handler = (*handler)(nil)
)

func NewHandler(params HandlerParams) internal.Handler {
	logger := log.WithPackage(params.Logger)
	return &handler{
		config: params.Config,
		receiver: &receiver{
			logger:     logger,
			config:     params.Config,
			accounts:   params.Config.API.SortedAccounts(),
			resolver:   params.Resolver,
			blocks:     params.Blocks,
			state:      params.State,
			registry:   params.Registry,
			engine:     params.Engine,
			simulator:  params.Simulator,
			submitter:  params.Submitter,
			reconciler: params.Reconciler,
			tracker:    params.Tracker,
			gasPrice:   params.GasPrice,
		},
		interceptor: chainInterceptors(
			newInstrumentInterceptor(params.Metrics, logger),
			errorInterceptor,
			timeoutInterceptor,
		),
	}
}

func (h *handler) Path() string {
	return config.ServerHandle
}

func (h *handler) Namespaces() map[string]interface{} {
	return map[string]interface{}{
		NamespaceEth:  NewEthNamespace(h.receiver, h.interceptor),
		NamespaceNet:  NewNetNamespace(h.receiver, h.interceptor),
		NamespaceWeb3: NewWeb3Namespace(h.receiver, h.interceptor),
	}
}

// PrepareContext rejects malformed bodies and batches above the configured item limit
// before the request reaches the rpc server.
func (h *handler) PrepareContext(ctx context.Context, request json.RawMessage) (context.Context, error) {
	body := bytes.TrimSpace(request)
	if len(body) == 0 {
		// Health checks send no body.
		return ctx, nil
	}

	if !json.Valid(body) {
		return nil, api.NewServerError(http.StatusBadRequest, xerrors.New("request is not a valid json"))
	}

	if body[0] != '[' {
		return ctx, nil
	}

	var batch []json.RawMessage
	if err := json.Unmarshal(body, &batch); err != nil {
		return nil, api.NewServerError(http.StatusBadRequest, xerrors.Errorf("failed to unmarshal batch requests: %w", err))
	}

	if limit := h.config.Server.BatchItemLimit; limit > 0 && len(batch) > limit {
		return nil, api.NewServerError(
			http.StatusRequestEntityTooLarge,
			xerrors.Errorf("batch of %v requests exceeds the limit of %v", len(batch), limit),
		)
	}

	return ctx, nil
}
