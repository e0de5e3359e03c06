package http

import (
	"net/http"
	"testing"
	"time"

	"github.com/MKhiriev/go-event-organizer/internal/config"
	"github.com/MKhiriev/go-event-organizer/internal/logger"
	"github.com/MKhiriev/go-event-organizer/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// NewHandler
// ─────────────────────────────────────────────

func TestNewHandler_StoresDependencies(t *testing.T) {
	svcs := &service.Services{}
	pinger := &mockPinger{}
	log := logger.Nop()
	cfg := config.Server{AllowedOrigins: []string{"http://localhost:3000"}, RequestTimeout: time.Second}

	h := NewHandler(svcs, pinger, cfg, log)

	require.NotNil(t, h)
	assert.Equal(t, svcs, h.services)
	assert.Equal(t, pinger, h.pinger)
	assert.Equal(t, log, h.logger)
	assert.Equal(t, cfg.AllowedOrigins, h.allowedOrigins)
	assert.Equal(t, time.Second, h.requestTimeout)
}

// ─────────────────────────────────────────────
// Init — route registration
// ─────────────────────────────────────────────

type routeCase struct {
	method string
	path   string
}

// protectedRoutes lists every route that requires a bearer token.
var protectedRoutes = []routeCase{
	{http.MethodPut, "/api/user/update?userId=1"},
	{http.MethodGet, "/api/user/all"},
	{http.MethodGet, "/api/user/role/client"},
	{http.MethodGet, "/api/user/id?userId=1"},
	{http.MethodPost, "/api/user/add"},
	{http.MethodPut, "/api/user/id?id=1"},
	{http.MethodDelete, "/api/user/id?id=1"},
	{http.MethodPost, "/api/user/wishlist/add?userId=1&eventId=1"},
	{http.MethodDelete, "/api/user/wishlist/remove?userId=1&eventId=1"},
	{http.MethodGet, "/api/user/1/wishlist"},

	{http.MethodGet, "/api/location/all"},
	{http.MethodGet, "/api/location/1"},
	{http.MethodPost, "/api/location/create"},
	{http.MethodPut, "/api/location/1"},
	{http.MethodDelete, "/api/location/1"},

	{http.MethodGet, "/api/event/all"},
	{http.MethodGet, "/api/event/1"},
	{http.MethodPost, "/api/event/create"},
	{http.MethodPut, "/api/event/1"},
	{http.MethodDelete, "/api/event/1"},
	{http.MethodGet, "/api/event/organizer/1"},
	{http.MethodPut, "/api/event/sale/1?salePercent=10"},

	{http.MethodPost, "/api/ticket/create"},
	{http.MethodPut, "/api/ticket/update?ticketId=1"},
	{http.MethodGet, "/api/ticket/1"},
	{http.MethodDelete, "/api/ticket/1"},
	{http.MethodGet, "/api/ticket/all"},
	{http.MethodGet, "/api/ticket/user/1"},
	{http.MethodGet, "/api/ticket/event/1"},
	{http.MethodGet, "/api/ticket/export/1"},
}

func TestInit_ProtectedRoutesRequireToken(t *testing.T) {
	router := newTestRouter(t, newTestServices())

	for _, tc := range protectedRoutes {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := serve(router, tc.method, tc.path, "", "")

			// 401 proves the route exists and sits behind the auth middleware.
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestInit_PublicRoutes(t *testing.T) {
	router := newTestRouter(t, newTestServices())

	for _, tc := range []routeCase{
		{http.MethodGet, "/api/version"},
		{http.MethodGet, "/health"},
		{http.MethodGet, "/metrics"},
	} {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := serve(router, tc.method, tc.path, "", "")

			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}
}

func TestInit_UnknownRouteReturns404(t *testing.T) {
	router := newTestRouter(t, newTestServices())

	rec := serve(router, http.MethodGet, "/api/nonexistent", "", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInit_WrongMethodReturns405(t *testing.T) {
	router := newTestRouter(t, newTestServices())

	rec := serve(router, http.MethodGet, "/api/user/register", "", "")

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestInit_SetsTraceIDHeader(t *testing.T) {
	router := newTestRouter(t, newTestServices())

	rec := serve(router, http.MethodGet, "/health", "", "")

	assert.NotEmpty(t, rec.Header().Get(traceIDHeader))
}

// ─────────────────────────────────────────────
// Role checks
// ─────────────────────────────────────────────

func TestInit_RoleRestrictions(t *testing.T) {
	router := newTestRouter(t, newTestServices())

	tests := []struct {
		name  string
		route routeCase
		token string
	}{
		{"client cannot list users", routeCase{http.MethodGet, "/api/user/all"}, clientToken},
		{"organizer cannot add users", routeCase{http.MethodPost, "/api/user/add"}, organizerToken},
		{"client cannot list users by role", routeCase{http.MethodGet, "/api/user/role/client"}, clientToken},
		{"client cannot create locations", routeCase{http.MethodPost, "/api/location/create"}, clientToken},
		{"client cannot create events", routeCase{http.MethodPost, "/api/event/create"}, clientToken},
		{"client cannot put events on sale", routeCase{http.MethodPut, "/api/event/sale/1?salePercent=5"}, clientToken},
		{"admin cannot list organizer events", routeCase{http.MethodGet, "/api/event/organizer/1"}, adminToken},
		{"organizer cannot buy tickets", routeCase{http.MethodPost, "/api/ticket/create"}, organizerToken},
		{"admin cannot export tickets", routeCase{http.MethodGet, "/api/ticket/export/1"}, adminToken},
		{"organizer cannot list all tickets", routeCase{http.MethodGet, "/api/ticket/all"}, organizerToken},
		{"client cannot list tickets by event", routeCase{http.MethodGet, "/api/ticket/event/1"}, clientToken},
		{"admin cannot use wishlists", routeCase{http.MethodGet, "/api/user/1/wishlist"}, adminToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(router, tt.route.method, tt.route.path, "", tt.token)

			assert.Equal(t, http.StatusForbidden, rec.Code)
		})
	}
}
