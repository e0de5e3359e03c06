package http

import (
	"net/http"

	"github.com/MKhiriev/go-event-organizer/internal/utils"
)

func (h *Handler) version(w http.ResponseWriter, r *http.Request) {
	info := h.services.AppInfoService.GetBuildInfo(r.Context())
	utils.WriteJSON(w, info, http.StatusOK)
}
