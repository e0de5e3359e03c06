package http

import (
	"net/http"

	"github.com/MKhiriev/go-event-organizer/internal/utils"
	"github.com/MKhiriev/go-event-organizer/models"
)

func (h *Handler) getLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.services.LocationService.GetAll(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, nonNil(locations), http.StatusOK)
}

func (h *Handler) getLocation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	location, err := h.services.LocationService.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, location, http.StatusOK)
}

func (h *Handler) createLocation(w http.ResponseWriter, r *http.Request) {
	var req models.LocationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	location, err := h.services.LocationService.Create(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, location, http.StatusCreated)
}

func (h *Handler) updateLocation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.LocationRequest
	if err = decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	location, err := h.services.LocationService.Update(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, location, http.StatusOK)
}

func (h *Handler) deleteLocation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.LocationService.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
