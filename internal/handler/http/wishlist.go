package http

import (
	"net/http"

	"github.com/MKhiriev/go-event-organizer/internal/logger"
	"github.com/MKhiriev/go-event-organizer/internal/mapper"
	"github.com/MKhiriev/go-event-organizer/internal/utils"
)

func (h *Handler) addToWishlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := selfFromQuery(w, r, "userId")
	if !ok {
		return
	}

	eventID, err := queryID(r, "eventId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.UserService.AddToWishlist(r.Context(), userID, eventID); err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Debug().Int64("user_id", userID).Int64("event_id", eventID).Msg("event added to wishlist")
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) removeFromWishlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := selfFromQuery(w, r, "userId")
	if !ok {
		return
	}

	eventID, err := queryID(r, "eventId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.UserService.RemoveFromWishlist(r.Context(), userID, eventID); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getWishlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := selfFromPath(w, r, "userId")
	if !ok {
		return
	}

	events, err := h.services.UserService.GetWishlist(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, mapper.EventsToResponses(events), http.StatusOK)
}
