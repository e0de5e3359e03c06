package http

import (
	"net/http"

	"github.com/MKhiriev/go-event-organizer/internal/export"
	"github.com/MKhiriev/go-event-organizer/internal/logger"
	"github.com/MKhiriev/go-event-organizer/internal/utils"
	"github.com/MKhiriev/go-event-organizer/models"
)

// purchaseTickets buys quantity tickets (default 1) for the user named in
// the body, who must be the caller.
func (h *Handler) purchaseTickets(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	quantity, err := queryInt(r, "quantity", 1)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.TicketRequest
	if err = decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err = requireSelf(caller, req.UserID); err != nil {
		writeError(w, r, err)
		return
	}

	tickets, err := h.services.TicketService.Purchase(r.Context(), req, quantity)
	if err != nil {
		writeError(w, r, err)
		return
	}

	username, _ := utils.GetUsernameFromContext(r.Context())
	logger.FromRequest(r).Info().
		Str("username", username).
		Int64("event_id", req.EventID).
		Int("quantity", len(tickets)).
		Msg("tickets purchased")
	utils.WriteJSON(w, tickets, http.StatusCreated)
}

// updateTicket moves the ticket named by the ticketId query parameter to the
// event in the body.
func (h *Handler) updateTicket(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	id, err := queryID(r, "ticketId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.TicketRequest
	if err = decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	ticket, err := h.services.TicketService.Update(r.Context(), caller, id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, ticket, http.StatusOK)
}

func (h *Handler) deleteTicket(w http.ResponseWriter, r *http.Request) {
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

	if err = h.services.TicketService.Delete(r.Context(), caller, id); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getTicket(w http.ResponseWriter, r *http.Request) {
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

	ticket, err := h.services.TicketService.GetByID(r.Context(), caller, id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, ticket, http.StatusOK)
}

func (h *Handler) getTickets(w http.ResponseWriter, r *http.Request) {
	tickets, err := h.services.TicketService.GetAll(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, nonNil(tickets), http.StatusOK)
}

func (h *Handler) getTicketsByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := selfFromPath(w, r, "userId")
	if !ok {
		return
	}

	tickets, err := h.services.TicketService.GetByUser(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, nonNil(tickets), http.StatusOK)
}

func (h *Handler) getTicketsByEvent(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathID(r, "eventId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	tickets, err := h.services.TicketService.GetByEvent(r.Context(), eventID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, nonNil(tickets), http.StatusOK)
}

// exportTicket sends the ticket as a CSV or text attachment, chosen by the
// format query parameter.
func (h *Handler) exportTicket(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	id, err := pathID(r, "ticketId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	format, ok := models.ParseExportFormat(r.URL.Query().Get("format"))
	if !ok {
		writeError(w, r, export.ErrUnsupportedFormat)
		return
	}

	file, err := h.services.TicketService.Export(r.Context(), caller, id, format)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if _, err = utils.WriteAttachment(w, file.Content, file.ContentType, file.Name); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing ticket export")
	}
}
