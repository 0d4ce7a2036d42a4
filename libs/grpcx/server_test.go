package grpcx

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/md-rashed-zaman/fuelstation/libs/httpx"
	"github.com/md-rashed-zaman/fuelstation/libs/runtime"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/test/bufconn"
)

func startHealthServer(t *testing.T, check func(context.Context) error) (*HealthReporter, healthpb.HealthClient) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	lis := bufconn.Listen(1 << 20)
	srv := NewServer(logger)
	reporter := NewHealthReporter("station", logger, time.Hour, runtime.ReadyCheck{Name: "store", Check: check})
	reporter.Register(srv)

	ctx, cancel := context.WithCancel(context.Background())
	go Serve(ctx, srv, lis, logger)
	t.Cleanup(cancel)

	conn, err := Dial("passthrough:///bufnet", DialOptions{}, grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	}))
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return reporter, healthpb.NewHealthClient(conn)
}

func TestHealthReporterFollowsChecks(t *testing.T) {
	healthy := true
	reporter, client := startHealthServer(t, func(context.Context) error {
		if healthy {
			return nil
		}
		return errors.New("store down")
	})
	ctx := context.Background()

	if got := reporter.Refresh(ctx); got != healthpb.HealthCheckResponse_SERVING {
		t.Fatalf("expected SERVING, got %s", got)
	}
	resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: "station"})
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		t.Fatalf("expected SERVING, got %s", resp.GetStatus())
	}

	healthy = false
	reporter.Refresh(ctx)
	resp, err = client.Check(ctx, &healthpb.HealthCheckRequest{})
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_NOT_SERVING {
		t.Fatalf("expected NOT_SERVING, got %s", resp.GetStatus())
	}
}

func TestRequestIDPropagatesOverGRPC(t *testing.T) {
	reporter, client := startHealthServer(t, func(context.Context) error { return nil })
	reporter.Refresh(context.Background())

	ctx := httpx.ContextWithRequestID(context.Background(), "req-42")
	var header metadata.MD
	if _, err := client.Check(ctx, &healthpb.HealthCheckRequest{}, grpc.Header(&header)); err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if got := header.Get(RequestIDMetadataKey); len(got) != 1 || got[0] != "req-42" {
		t.Fatalf("expected echoed request id, got %v", got)
	}
}
