package health

import (
	"net"

	"github.com/sbilibin2017/gw-calculations/internal/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Server exposes the standard gRPC health service.
type Server struct {
	grpcServer   *grpc.Server
	healthServer *health.Server
}

// NewServer creates a health server reporting NOT_SERVING until SetServing is called.
func NewServer() *Server {
	s := &Server{
		grpcServer:   grpc.NewServer(),
		healthServer: health.NewServer(),
	}
	s.healthServer.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	healthpb.RegisterHealthServer(s.grpcServer, s.healthServer)
	return s
}

// SetServing switches the overall status between SERVING and NOT_SERVING.
func (s *Server) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.healthServer.SetServingStatus("", status)
	logger.Log.Infow("health status changed", "status", status.String())
}

// Serve accepts connections on lis until Stop is called.
func (s *Server) Serve(lis net.Listener) error {
	return s.grpcServer.Serve(lis)
}

// Stop marks the service NOT_SERVING and stops the server gracefully.
func (s *Server) Stop() {
	s.healthServer.Shutdown()
	s.grpcServer.GracefulStop()
}
