package web

import (
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the name reported by the gRPC health service.
const ServiceName = "booksearch.WebAdapter"

// NewHealthServer returns a gRPC server exposing only the health service,
// with both the overall and the named service marked SERVING.
func NewHealthServer() (*grpc.Server, *health.Server) {
	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)

	s := grpc.NewServer()
	healthpb.RegisterHealthServer(s, hs)
	return s, hs
}
