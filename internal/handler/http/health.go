package http

import (
	"net/http"

	"github.com/MKhiriev/go-event-organizer/internal/logger"
	"github.com/MKhiriev/go-event-organizer/internal/utils"
)

type healthResponse struct {
	Status string `json:"status"`
}

// health reports 200 while the database answers pings and 503 otherwise.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if h.pinger != nil {
		if err := h.pinger.PingContext(r.Context()); err != nil {
			logger.FromRequest(r).Err(err).Msg("database ping failed")
			utils.WriteJSON(w, healthResponse{Status: "unavailable"}, http.StatusServiceUnavailable)
			return
		}
	}

	utils.WriteJSON(w, healthResponse{Status: "ok"}, http.StatusOK)
}
