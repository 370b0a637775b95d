package grpc

import (
	"context"
	"log"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/simaogato/assetboard-backend/internal/domain"
)

// StoreService is the health service name that tracks the record store
const StoreService = "assetboard.RecordStore"

// healthMethods are reachable without a PIN so orchestrators can probe the server
var healthMethods = []string{
	healthpb.Health_Check_FullMethodName,
	healthpb.Health_List_FullMethodName,
	healthpb.Health_Watch_FullMethodName,
}

// Server is the gRPC side of the dashboard: health checking and reflection
// behind the PIN interceptor
type Server struct {
	*grpc.Server
	Health *health.Server
}

// NewServer creates a gRPC server whose health status starts as NOT_SERVING
// until the first probe succeeds
func NewServer(pin string) *Server {
	srv := grpc.NewServer(
		grpc.UnaryInterceptor(AuthInterceptor(pin, healthMethods...)),
		grpc.StreamInterceptor(StreamAuthInterceptor(pin, healthMethods...)),
	)

	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	hs.SetServingStatus(StoreService, healthpb.HealthCheckResponse_NOT_SERVING)

	healthpb.RegisterHealthServer(srv, hs)
	reflection.Register(srv)

	return &Server{Server: srv, Health: hs}
}

// Probe reports whether a dependency is reachable
type Probe func(ctx context.Context) error

// StoreProbe checks the record store by reading the DB table headers
func StoreProbe(store domain.RecordStore) Probe {
	return func(ctx context.Context) error {
		_, err := store.Headers(ctx, domain.TableAssets)
		return err
	}
}

// RunHealthProbe runs probe immediately and then every interval, updating
// the serving status, until ctx is cancelled
func RunHealthProbe(ctx context.Context, hs *health.Server, probe Probe, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := healthpb.HealthCheckResponse_UNKNOWN
	for {
		probeCtx, cancel := context.WithTimeout(ctx, interval)
		err := probe(probeCtx)
		cancel()

		status := healthpb.HealthCheckResponse_SERVING
		if err != nil {
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
		if status != last {
			if err != nil {
				log.Printf("Store probe failed: %v", err)
			}
			log.Printf("Health status changed to %s", status)
			last = status
		}
		hs.SetServingStatus("", status)
		hs.SetServingStatus(StoreService, status)

		select {
		case <-ctx.Done():
			hs.Shutdown()
			return
		case <-ticker.C:
		}
	}
}
