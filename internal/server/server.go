package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/ncaa-baseball-service/internal/config"
	"github.com/preston-bernstein/ncaa-baseball-service/internal/connector"
	httpserver "github.com/preston-bernstein/ncaa-baseball-service/internal/http"
	"github.com/preston-bernstein/ncaa-baseball-service/internal/http/handlers"
	"github.com/preston-bernstein/ncaa-baseball-service/internal/logging"
	"github.com/preston-bernstein/ncaa-baseball-service/internal/metrics"
	"github.com/preston-bernstein/ncaa-baseball-service/internal/poller"
	"github.com/preston-bernstein/ncaa-baseball-service/internal/providers"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	connector     *connector.Connector
	httpServer    httpServer
	metricsServer httpServer
	poller        Poller
	metricsStop   func(context.Context) error
}

// New constructs a server with the ESPN and NCAA clients behind a connector.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	return newServerWithProviders(cfg, logger, nil, nil)
}

// newServerWithProviders builds a server around list; a nil list builds the real clients.
func newServerWithProviders(cfg config.Config, logger *slog.Logger, list []providers.DataProvider, recorder *metrics.Recorder) (*Server, error) {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	factory := newProviderFactory(logger, recorder)
	if list == nil {
		list = factory.build(cfg)
	}
	conn, err := factory.buildConnector(cfg, list)
	if err != nil {
		return nil, fmt.Errorf("build connector: %w", err)
	}

	var plr Poller
	if cfg.Poller.Enabled {
		plr = poller.New(conn, logger, recorder, cfg.Poller.Interval, cfg.Poller.Timeout)
	}
	httpSrv := buildHTTPServer(cfg, conn, logger, recorder, plr)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		connector:     conn,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		poller:        plr,
		metricsStop:   metricsShutdown,
	}, nil
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, httpSrv httpServer, plr Poller) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpSrv,
		poller:     plr,
	}
}

func buildHTTPServer(cfg config.Config, conn *connector.Connector, logger *slog.Logger, recorder *metrics.Recorder, plr Poller) httpServer {
	var statusFn func() poller.Status
	if plr != nil {
		statusFn = plr.Status
	}
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}

	handler := handlers.NewHandler(conn, logger, statusFn)
	admin := handlers.NewAdminHandler(conn, cfg.AdminToken, logger)
	router := httpserver.NewRouter(handler, admin, httpserver.RouterConfig{
		Logger:         logger,
		Metrics:        recorder,
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run starts the poller and HTTP server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	if s.poller != nil {
		s.poller.Start(ctx)
	}

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	logging.Info(s.logger, "http server starting", slog.String("addr", s.httpServer.Addr()))
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	logging.Info(s.logger, "metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", "error", err)
		}
	}

	if s.poller != nil {
		if err := s.poller.Stop(shutdownCtx); err != nil {
			logging.Error(s.logger, "failed to stop poller", err)
		}
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "err", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           handler,
				ReadHeaderTimeout: readTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Warn(logger, name+" server failed", "error", err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}

// Connector exposes the data connector for embedding callers.
func (s *Server) Connector() *connector.Connector {
	return s.connector
}
