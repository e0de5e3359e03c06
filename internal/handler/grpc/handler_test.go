package grpc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-event-organizer/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type mockPinger struct {
	err error
}

func (m *mockPinger) PingContext(context.Context) error {
	return m.err
}

func checkStatus(t *testing.T, h *Handler, service string) healthpb.HealthCheckResponse_ServingStatus {
	t.Helper()
	resp, err := h.health.Check(context.Background(), &healthpb.HealthCheckRequest{Service: service})
	require.NoError(t, err)
	return resp.GetStatus()
}

func TestNewHandler_StartsServing(t *testing.T) {
	h := NewHandler(&mockPinger{}, logger.Nop())

	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, checkStatus(t, h, ""))
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, checkStatus(t, h, ServiceName))
}

func TestCheckDatabase_TracksDatabase(t *testing.T) {
	pinger := &mockPinger{err: errors.New("connection refused")}
	h := NewHandler(pinger, logger.Nop())

	h.CheckDatabase(context.Background())
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, checkStatus(t, h, ServiceName))

	pinger.err = nil
	h.CheckDatabase(context.Background())
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, checkStatus(t, h, ServiceName))
}

func TestWatch_StopsWithContext(t *testing.T) {
	h := NewHandler(&mockPinger{err: errors.New("down")}, logger.Nop())
	h.checkInterval = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		h.Watch(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return checkStatus(t, h, "") == healthpb.HealthCheckResponse_NOT_SERVING
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestShutdown_ReportsNotServing(t *testing.T) {
	h := NewHandler(&mockPinger{}, logger.Nop())

	h.Shutdown()

	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, checkStatus(t, h, ServiceName))
}
