package grpc

import (
	"context"
	"errors"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/simaogato/assetboard-backend/internal/adapter/repository/memory"
	"github.com/simaogato/assetboard-backend/internal/domain"
)

func startServer(t *testing.T, srv *Server) healthpb.HealthClient {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	go func() {
		_ = srv.Serve(lis)
	}()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return healthpb.NewHealthClient(conn)
}

func TestServer_HealthCheckWithoutPIN(t *testing.T) {
	srv := NewServer("4321")
	client := startServer(t, srv)

	resp, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{Service: StoreService})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.Status)

	srv.Health.SetServingStatus(StoreService, healthpb.HealthCheckResponse_SERVING)

	resp, err = client.Check(context.Background(), &healthpb.HealthCheckRequest{Service: StoreService})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.Status)
}

func TestServer_UnknownServiceIsNotFound(t *testing.T) {
	client := startServer(t, NewServer("4321"))

	_, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{Service: "nope"})

	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestRunHealthProbe(t *testing.T) {
	srv := NewServer("4321")

	var failing atomic.Bool
	probe := func(ctx context.Context) error {
		if failing.Load() {
			return errors.New("store unreachable")
		}
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		RunHealthProbe(ctx, srv.Health, probe, 10*time.Millisecond)
		close(done)
	}()

	check := func() healthpb.HealthCheckResponse_ServingStatus {
		resp, err := srv.Health.Check(context.Background(), &healthpb.HealthCheckRequest{Service: StoreService})
		require.NoError(t, err)
		return resp.Status
	}

	assert.Eventually(t, func() bool {
		return check() == healthpb.HealthCheckResponse_SERVING
	}, time.Second, 5*time.Millisecond)

	failing.Store(true)
	assert.Eventually(t, func() bool {
		return check() == healthpb.HealthCheckResponse_NOT_SERVING
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("probe loop did not stop")
	}
}

func TestStoreProbe(t *testing.T) {
	store := memory.NewStore()
	probe := StoreProbe(store)

	assert.NoError(t, probe(context.Background()))

	store.DropTable(domain.TableAssets)
	assert.ErrorIs(t, probe(context.Background()), domain.ErrTableNotFound)
}
