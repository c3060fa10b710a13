package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/nhdewitt/specsheet/internal/protocol"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 30 * time.Second

type Config struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// SpecsProvider assembles a report for the local machine.
type SpecsProvider interface {
	ComputerSpecs(ctx context.Context) protocol.SystemReport
}

type Server struct {
	Config Config
	Store  *ReportStore
	Router *http.ServeMux

	log        logrus.FieldLogger
	specs      SpecsProvider
	gatherer   prometheus.Gatherer
	httpServer *http.Server

	shutdownOnce sync.Once
}

// New builds a server answering from specs. Metrics are exposed from
// gatherer when it is non-nil.
func New(cfg Config, log logrus.FieldLogger, specs SpecsProvider, gatherer prometheus.Gatherer) *Server {
	s := &Server{
		Config:   cfg,
		Store:    NewReportStore(),
		Router:   http.NewServeMux(),
		log:      log.WithField("package", "server"),
		specs:    specs,
		gatherer: gatherer,
	}
	s.routes()

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.withRequestID(s.Router),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	return s
}

func (s *Server) routes() {
	s.Router.HandleFunc("/api/v1/specs", s.handleSpecs)
	s.Router.HandleFunc("POST /api/v1/reports", s.handleReportIngest)
	s.Router.HandleFunc("GET /api/v1/reports/{hostname}", s.handleReportLookup)
	s.Router.HandleFunc("/healthz", s.handleHealth)
	s.setupMetrics()
}

// Start listens on the configured address and serves until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Config.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.Config.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	serverErrCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", ln.Addr().String()).Info("HTTP server listening")
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
	}()

	select {
	case err := <-serverErrCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		s.log.Info("Context cancelled")
	}

	return s.Stop()
}

// Stop shuts the HTTP server down. It is safe to call more than once.
func (s *Server) Stop() error {
	var err error
	s.shutdownOnce.Do(func() {
		s.log.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if shutdownErr := s.httpServer.Shutdown(shutdownCtx); shutdownErr != nil {
			err = fmt.Errorf("failed to shutdown HTTP server: %w", shutdownErr)
		}

		s.log.Info("Server stopped")
	})

	return err
}
