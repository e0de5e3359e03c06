package handler

import (
	"github.com/MKhiriev/go-event-organizer/internal/config"
	"github.com/MKhiriev/go-event-organizer/internal/handler/grpc"
	"github.com/MKhiriev/go-event-organizer/internal/handler/http"
	"github.com/MKhiriev/go-event-organizer/internal/logger"
	"github.com/MKhiriev/go-event-organizer/internal/service"
)

// Pinger is satisfied by *sql.DB and reports database reachability to the
// health endpoints of both transports.
type Pinger interface {
	http.Pinger
}

type Handlers struct {
	HTTP *http.Handler
	GRPC *grpc.Handler
}

func NewHandlers(services *service.Services, pinger Pinger, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, pinger, cfg, logger)
	}
	if cfg.GRPCAddress != "" {
		handlers.GRPC = grpc.NewHandler(pinger, logger)
	}

	if handlers.HTTP == nil && handlers.GRPC == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
