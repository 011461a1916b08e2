// Package grpc runs the liveness endpoint: the standard grpc_health_v1
// service, reporting SERVING while the database answers pings.
package grpc

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/dmitrijs2005/jobkeeper/internal/logging"
	"github.com/dmitrijs2005/jobkeeper/internal/server/metrics"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Checker reports whether the backend can serve requests.
type Checker func(ctx context.Context) error

const defaultCheckInterval = 5 * time.Second

type GRPCServer struct {
	address       string
	logger        logging.Logger
	metrics       *metrics.Metrics
	health        *health.Server
	check         Checker
	checkInterval time.Duration
}

func NewGRPCServer(a string, l logging.Logger, m *metrics.Metrics, check Checker) *GRPCServer {
	return &GRPCServer{
		address:       a,
		logger:        l.With("module", "grpc_server"),
		metrics:       m,
		health:        health.NewServer(),
		check:         check,
		checkInterval: defaultCheckInterval,
	}
}

// refresh runs the checker once and publishes the result for the overall
// service ("").
func (s *GRPCServer) refresh(ctx context.Context) {
	status := healthpb.HealthCheckResponse_SERVING
	if s.check != nil {
		cctx, cancel := context.WithTimeout(ctx, s.checkInterval)
		err := s.check(cctx)
		cancel()
		if err != nil {
			s.logger.Warn(ctx, "health check failed", "error", err)
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
	}
	s.health.SetServingStatus("", status)
}

func (s *GRPCServer) watch(ctx context.Context) {
	ticker := time.NewTicker(s.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.refresh(ctx)
		}
	}
}

func (s *GRPCServer) Run(ctx context.Context) error {

	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor))
	healthpb.RegisterHealthServer(srv, s.health)

	s.refresh(ctx)
	go s.watch(ctx)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	if err := srv.Serve(listen); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}

	return nil
}
