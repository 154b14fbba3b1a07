package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/rpc"
	middleware "github.com/grpc-ecosystem/go-grpc-middleware"
	grpcrecovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	grpctags "github.com/grpc-ecosystem/go-grpc-middleware/tags"
	"github.com/uber-go/tally/v4"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/xerrors"
	"google.golang.org/grpc"
	grpctrace "gopkg.in/DataDog/dd-trace-go.v1/contrib/google.golang.org/grpc"

	"github.com/coinbase/l2node/internal/api"
	"github.com/coinbase/l2node/internal/config"
	"github.com/coinbase/l2node/internal/controller"
	"github.com/coinbase/l2node/internal/utils/constants"
	"github.com/coinbase/l2node/internal/utils/fxparams"
	"github.com/coinbase/l2node/internal/utils/log"
	xtally "github.com/coinbase/l2node/internal/utils/tally"
)

type (
	ServerParams struct {
		fx.In
		fxparams.Params
		Lifecycle  fx.Lifecycle
		Controller controller.Controller
		Exporter   *xtally.Exporter `optional:"true"`
	}

	// Server serves the JSON-RPC handler of the controller over HTTP.
	// Every request passes through a unary interceptor chain before it reaches the handler.
	Server struct {
		logger      *zap.Logger
		config      *config.Config
		address     string
		mux         *http.ServeMux
		rpcServer   *rpc.Server
		httpServer  *http.Server
		interceptor grpc.UnaryServerInterceptor
		metrics     *serverMetrics
	}

	serverMetrics struct {
		scope tally.Scope
	}
)

const (
	scopeName       = "server"
	statusTag       = "status"
	pathTag         = "path"
	shutdownTimeout = 10 * time.Second
	readTimeout     = 10 * time.Second
)

var (
	_ http.Handler = (*Server)(nil)
)

func NewServer(params ServerParams) (*Server, error) {
	logger := log.WithPackage(params.Logger)
	cfg := params.Config
	handler := params.Controller.Handler()

	rpcServer := rpc.NewServer()
	rpcServer.SetBatchLimits(cfg.Server.BatchItemLimit, cfg.Server.BatchResponseMaxSize)
	for name, namespace := range handler.Namespaces() {
		if err := rpcServer.RegisterName(name, namespace); err != nil {
			return nil, xerrors.Errorf("failed to register namespace %v: %w", name, err)
		}
	}

	mux := http.NewServeMux()
	server := &Server{
		logger:    logger,
		config:    cfg,
		address:   cfg.Server.BindAddress,
		mux:       mux,
		rpcServer: rpcServer,
		httpServer: &http.Server{
			Addr:              cfg.Server.BindAddress,
			Handler:           mux,
			ReadHeaderTimeout: readTimeout,
			ErrorLog:          log.NewStandard(logger),
		},
		metrics: &serverMetrics{
			scope: params.Metrics.SubScope(scopeName),
		},
	}
	server.interceptor = middleware.ChainUnaryServer(
		grpctags.UnaryServerInterceptor(),
		grpctrace.UnaryServerInterceptor(grpctrace.WithServiceName(constants.ServiceName)),
		server.metricsInterceptor,
		grpcrecovery.UnaryServerInterceptor(grpcrecovery.WithRecoveryHandlerContext(server.recoverPanic)),
	)

	server.registerHandler(handler.Path(), rpcServer, handler)
	if params.Exporter != nil && params.Exporter.Handler() != nil {
		mux.Handle(xtally.MetricsPath, params.Exporter.Handler())
	}

	params.Lifecycle.Append(fx.Hook{
		OnStart: server.onStart,
		OnStop:  server.onStop,
	})

	return server, nil
}

func (s *Server) onStart(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		return xerrors.Errorf("failed to listen on %v: %w", s.address, err)
	}

	s.logger.Info("starting server", zap.String("address", listener.Addr().String()))
	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !xerrors.Is(err, http.ErrServerClosed) {
			s.logger.Error("server stopped unexpectedly", zap.Error(err))
		}
	}()

	return nil
}

func (s *Server) onStop(ctx context.Context) error {
	s.logger.Info("stopping server")
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Warn("failed to shut down server gracefully", zap.Error(err))
	}

	s.rpcServer.Stop()
	return nil
}

func (s *Server) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	s.mux.ServeHTTP(writer, request)
}

func (s *Server) registerHandler(
	path string,
	handler http.Handler,
	preHandler controller.PreHandler,
) {
	// Since the method name cannot contain "/", replace it with "_".
	method := strings.ReplaceAll(
		strings.TrimPrefix(path, "/"),
		"/",
		"_",
	)
	serverInfo := &grpc.UnaryServerInfo{
		FullMethod: fmt.Sprintf("/%v/%v", constants.FullServiceName, method),
	}

	s.mux.HandleFunc(path, func(writer http.ResponseWriter, request *http.Request) {
		requestInterceptor := NewRequestInterceptor(request, preHandler)
		req := requestInterceptor.Body()
		ctx := request.Context()

		_, err := s.interceptor(ctx, req, serverInfo, func(ctx context.Context, req interface{}) (interface{}, error) {
			childRequest, err := requestInterceptor.WithContext(ctx)
			if err != nil {
				return nil, err
			}

			childWriter := NewResponseInterceptor(writer)
			handler.ServeHTTP(childWriter, childRequest)

			if statusCode := childWriter.StatusCode(); statusCode >= http.StatusBadRequest {
				return nil, NewResponseInterceptorError(statusCode)
			}

			return nil, nil
		})
		if err != nil {
			// The status was already written by the handler.
			var interceptorError *ResponseInterceptorError
			if xerrors.As(err, &interceptorError) {
				return
			}

			var serverError *api.ServerError
			if xerrors.As(err, &serverError) {
				http.Error(writer, serverError.Error(), serverError.HTTPStatus())
				return
			}

			// A panic within the handler is intercepted as an error here.
			http.Error(writer, err.Error(), http.StatusServiceUnavailable)
			return
		}
	})
}

// metricsInterceptor counts the HTTP requests by path and status code.
// The per-method metrics are emitted by the handler itself.
func (s *Server) metricsInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	res, err := next(ctx, req)
	status := http.StatusOK
	var statusErr interface{ HTTPStatus() int }
	if xerrors.As(err, &statusErr) {
		status = statusErr.HTTPStatus()
	} else if err != nil {
		status = http.StatusServiceUnavailable
	}

	scope := s.metrics.scope.Tagged(map[string]string{
		pathTag:   info.FullMethod,
		statusTag: fmt.Sprint(status),
	})
	scope.Counter("requests").Inc(1)
	scope.Timer("latency").Record(time.Since(start))
	return res, err
}

func (s *Server) recoverPanic(ctx context.Context, p interface{}) error {
	s.logger.Error("recovered from panic", zap.Any("panic", p), zap.Stack("stack"))
	return xerrors.Errorf("panic: %v", p)
}
