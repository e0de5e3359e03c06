package http

import (
	"context"
	"net/http"
	"testing"

	"github.com/MKhiriev/go-event-organizer/internal/service"
	"github.com/MKhiriev/go-event-organizer/internal/store"
	"github.com/MKhiriev/go-event-organizer/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTicketRouter(t *testing.T, tickets *mockTicketService) http.Handler {
	t.Helper()
	svcs := newTestServices()
	svcs.TicketService = tickets
	return newTestRouter(t, svcs)
}

// ─────────────────────────────────────────────
// purchase
// ─────────────────────────────────────────────

func TestPurchaseTickets_Quantity(t *testing.T) {
	tests := []struct {
		name         string
		target       string
		wantQuantity int
	}{
		{"default quantity", "/api/ticket/create", 1},
		{"explicit quantity", "/api/ticket/create?quantity=3", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTicketRouter(t, &mockTicketService{
				purchaseFn: func(_ context.Context, req models.TicketRequest, quantity int) ([]models.Ticket, error) {
					assert.Equal(t, models.TicketRequest{UserID: 20, EventID: 10}, req)
					assert.Equal(t, tt.wantQuantity, quantity)
					return make([]models.Ticket, quantity), nil
				},
			})

			rec := serve(router, http.MethodPost, tt.target, `{"user_id":20,"event_id":10}`, clientToken)

			assert.Equal(t, http.StatusCreated, rec.Code)
		})
	}
}

func TestPurchaseTickets_ForAnotherUser(t *testing.T) {
	router := newTicketRouter(t, &mockTicketService{})

	rec := serve(router, http.MethodPost, "/api/ticket/create", `{"user_id":21,"event_id":10}`, clientToken)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestPurchaseTickets_Errors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		err        error
		wantStatus int
	}{
		{"bad quantity", "/api/ticket/create?quantity=x", nil, http.StatusBadRequest},
		{"sold out", "/api/ticket/create?quantity=5", store.ErrNotEnoughTickets, http.StatusConflict},
		{"event missing", "/api/ticket/create", store.ErrEventNotFound, http.StatusNotFound},
		{"quantity rejected", "/api/ticket/create?quantity=0", service.ErrInvalidDataProvided, http.StatusBadRequest},
		{"quantity above limit", "/api/ticket/create?quantity=25000", service.ErrInvalidDataProvided, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTicketRouter(t, &mockTicketService{
				purchaseFn: func(context.Context, models.TicketRequest, int) ([]models.Ticket, error) {
					return nil, tt.err
				},
			})

			rec := serve(router, http.MethodPost, tt.target, `{"user_id":20,"event_id":10}`, clientToken)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

// ─────────────────────────────────────────────
// update / delete / reads
// ─────────────────────────────────────────────

func TestUpdateTicket(t *testing.T) {
	router := newTicketRouter(t, &mockTicketService{
		updateFn: func(_ context.Context, caller models.Caller, id int64, req models.TicketRequest) (models.Ticket, error) {
			assert.Equal(t, int64(20), caller.UserID)
			assert.Equal(t, int64(100), id)
			assert.Equal(t, int64(11), req.EventID)
			return models.Ticket{ID: id, UserID: 20, EventID: 11, PurchasePrice: 4000}, nil
		},
	})

	rec := serve(router, http.MethodPut, "/api/ticket/update?ticketId=100", `{"user_id":20,"event_id":11}`, clientToken)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"purchase_price":40.00`)
}

func TestUpdateTicket_NotOwner(t *testing.T) {
	router := newTicketRouter(t, &mockTicketService{
		updateFn: func(context.Context, models.Caller, int64, models.TicketRequest) (models.Ticket, error) {
			return models.Ticket{}, service.ErrForbidden
		},
	})

	rec := serve(router, http.MethodPut, "/api/ticket/update?ticketId=100", `{"user_id":20,"event_id":11}`, clientToken)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDeleteTicket(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"deleted", nil, http.StatusNoContent},
		{"missing", store.ErrTicketNotFound, http.StatusNotFound},
		{"not owner", service.ErrForbidden, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTicketRouter(t, &mockTicketService{
				deleteFn: func(context.Context, models.Caller, int64) error { return tt.err },
			})

			rec := serve(router, http.MethodDelete, "/api/ticket/100", "", clientToken)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestGetTicket_AnyRoleReachesService(t *testing.T) {
	for _, token := range []string{adminToken, organizerToken, clientToken} {
		router := newTicketRouter(t, &mockTicketService{
			getByIDFn: func(_ context.Context, _ models.Caller, id int64) (models.Ticket, error) {
				return models.Ticket{ID: id}, nil
			},
		})

		rec := serve(router, http.MethodGet, "/api/ticket/100", "", token)

		assert.Equal(t, http.StatusOK, rec.Code, token)
	}
}

func TestGetTicketsByUser(t *testing.T) {
	router := newTicketRouter(t, &mockTicketService{
		getByUserFn: func(_ context.Context, userID int64) ([]models.Ticket, error) {
			assert.Equal(t, int64(20), userID)
			return nil, nil
		},
	})

	rec := serve(router, http.MethodGet, "/api/ticket/user/20", "", clientToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = serve(router, http.MethodGet, "/api/ticket/user/21", "", clientToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGetTicketsByEvent_EventMissing(t *testing.T) {
	router := newTicketRouter(t, &mockTicketService{
		getByEventFn: func(context.Context, int64) ([]models.Ticket, error) {
			return nil, store.ErrEventNotFound
		},
	})

	rec := serve(router, http.MethodGet, "/api/ticket/event/10", "", organizerToken)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ─────────────────────────────────────────────
// export
// ─────────────────────────────────────────────

func TestExportTicket_Attachment(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		wantFormat models.ExportFormat
	}{
		{"default csv", "/api/ticket/export/100", models.ExportFormatCSV},
		{"txt", "/api/ticket/export/100?format=txt", models.ExportFormatTXT},
		{"upper case", "/api/ticket/export/100?format=CSV", models.ExportFormatCSV},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTicketRouter(t, &mockTicketService{
				exportFn: func(_ context.Context, _ models.Caller, id int64, format models.ExportFormat) (models.TicketFile, error) {
					assert.Equal(t, int64(100), id)
					assert.Equal(t, tt.wantFormat, format)
					return models.TicketFile{
						Name:        "ticket." + string(format),
						ContentType: "text/plain",
						Content:     []byte("ticket body"),
					}, nil
				},
			})

			rec := serve(router, http.MethodGet, tt.target, "", clientToken)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, `attachment; filename="ticket.`+string(tt.wantFormat)+`"`, rec.Header().Get("Content-Disposition"))
			assert.Equal(t, "ticket body", rec.Body.String())
		})
	}
}

func TestExportTicket_UnknownFormat(t *testing.T) {
	router := newTicketRouter(t, &mockTicketService{})

	rec := serve(router, http.MethodGet, "/api/ticket/export/100?format=pdf", "", clientToken)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportTicket_NotOwner(t *testing.T) {
	router := newTicketRouter(t, &mockTicketService{
		exportFn: func(context.Context, models.Caller, int64, models.ExportFormat) (models.TicketFile, error) {
			return models.TicketFile{}, service.ErrForbidden
		},
	})

	rec := serve(router, http.MethodGet, "/api/ticket/export/100", "", clientToken)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
