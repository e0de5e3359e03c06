package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-event-organizer/internal/logger"
	"github.com/MKhiriev/go-event-organizer/internal/mapper"
	"github.com/MKhiriev/go-event-organizer/internal/utils"
	"github.com/MKhiriev/go-event-organizer/models"
)

func (h *Handler) getEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.services.EventService.GetAll(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, mapper.EventsToResponses(events), http.StatusOK)
}

func (h *Handler) getEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	event, err := h.services.EventService.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, mapper.EventToResponse(event), http.StatusOK)
}

// getEventsByOrganizer lists the events of the calling organizer.
func (h *Handler) getEventsByOrganizer(w http.ResponseWriter, r *http.Request) {
	organizerID, ok := selfFromPath(w, r, "organizerId")
	if !ok {
		return
	}

	events, err := h.services.EventService.GetByOrganizer(r.Context(), organizerID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, mapper.EventsToResponses(events), http.StatusOK)
}

func (h *Handler) createEvent(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.EventRequest
	if err = decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	event, err := h.services.EventService.Create(r.Context(), caller, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Int64("event_id", event.ID).Int64("organizer_id", event.OrganizerID).Msg("event created")
	utils.WriteJSON(w, mapper.EventToResponse(event), http.StatusCreated)
}

func (h *Handler) updateEvent(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.EventRequest
	if err = decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	event, err := h.services.EventService.Update(r.Context(), caller, id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, mapper.EventToResponse(event), http.StatusOK)
}

func (h *Handler) deleteEvent(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.EventService.Delete(r.Context(), caller, id); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// setEventOnSale applies the salePercent query parameter as the event's
// discount. Wishlist users are notified by the service.
func (h *Handler) setEventOnSale(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if r.URL.Query().Get("salePercent") == "" {
		writeError(w, r, fmt.Errorf("%w: salePercent is required", ErrInvalidParameter))
		return
	}
	percent, err := queryInt(r, "salePercent", 0)
	if err != nil {
		writeError(w, r, err)
		return
	}

	event, err := h.services.EventService.SetOnSale(r.Context(), caller, id, percent)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Int64("event_id", event.ID).Int("on_sale", event.OnSale).Msg("event sale updated")
	utils.WriteJSON(w, mapper.EventToResponse(event), http.StatusOK)
}
