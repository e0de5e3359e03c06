// Package grpc exposes the gRPC transport of the server. It serves the
// standard gRPC health protocol, reporting NOT_SERVING while the database
// does not answer pings.
package grpc

import (
	"context"
	"time"

	"github.com/MKhiriev/go-event-organizer/internal/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName is the health service name reported for the API as a whole.
const ServiceName = "eventorganizer.API"

const defaultCheckInterval = 10 * time.Second

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handler is the root gRPC transport handler.
//
// It owns the health server and keeps its status in sync with the database.
// A handler instance is created once at startup and shared by the gRPC server.
type Handler struct {
	health *health.Server
	pinger Pinger

	checkInterval time.Duration

	logger *logger.Logger
}

// NewHandler constructs a [Handler]. Until the first check both the overall
// and the API health status are SERVING.
func NewHandler(pinger Pinger, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")

	h := &Handler{
		health:        health.NewServer(),
		pinger:        pinger,
		checkInterval: defaultCheckInterval,
		logger:        logger,
	}
	h.setStatus(healthpb.HealthCheckResponse_SERVING)

	return h
}

// Register attaches the health and reflection services to server.
func (h *Handler) Register(server *grpc.Server) {
	healthpb.RegisterHealthServer(server, h.health)
	reflection.Register(server)
}

// CheckDatabase pings the database once and updates the health status.
func (h *Handler) CheckDatabase(ctx context.Context) {
	status := healthpb.HealthCheckResponse_SERVING
	if h.pinger != nil {
		if err := h.pinger.PingContext(ctx); err != nil {
			h.logger.Warn().Err(err).Msg("database ping failed, reporting NOT_SERVING")
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
	}
	h.setStatus(status)
}

// Watch checks the database every check interval until ctx is done.
func (h *Handler) Watch(ctx context.Context) {
	ticker := time.NewTicker(h.checkInterval)
	defer ticker.Stop()

	h.CheckDatabase(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.CheckDatabase(ctx)
		}
	}
}

// Shutdown switches every service to NOT_SERVING so that clients stop
// routing to this instance.
func (h *Handler) Shutdown() {
	h.health.Shutdown()
}

func (h *Handler) setStatus(status healthpb.HealthCheckResponse_ServingStatus) {
	h.health.SetServingStatus("", status)
	h.health.SetServingStatus(ServiceName, status)
}
