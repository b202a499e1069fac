// Package health exposes the standard gRPC health service.
package health

import (
	"context"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/sbilibin2017/users-api/internal/logger"
)

// ServiceName is reported alongside the overall ("") status.
const ServiceName = "users-api"

// Server serves grpc.health.v1.Health. Status starts as NOT_SERVING until
// the first successful database ping.
type Server struct {
	address string
	health  *health.Server
	srv     *grpc.Server
}

// New creates a Server that will listen on address.
func New(address string) *Server {
	hs := health.NewServer()
	srv := grpc.NewServer()
	healthpb.RegisterHealthServer(srv, hs)

	s := &Server{address: address, health: hs, srv: srv}
	s.SetServing(false)
	return s
}

// SetServing flips the reported status of both the overall and the named service.
func (s *Server) SetServing(ok bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if ok {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, lis)
}

// Serve accepts connections on lis until ctx is done.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	go func() {
		<-ctx.Done()
		logger.Log.Infow("stopping gRPC health server")
		s.health.Shutdown()
		s.srv.GracefulStop()
	}()

	logger.Log.Infow("starting gRPC health server", "address", lis.Addr().String())

	if err := s.srv.Serve(lis); err != nil && err != grpc.ErrServerStopped {
		return err
	}
	return nil
}
