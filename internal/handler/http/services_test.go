package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/MKhiriev/go-event-organizer/internal/config"
	"github.com/MKhiriev/go-event-organizer/internal/logger"
	"github.com/MKhiriev/go-event-organizer/internal/service"
	"github.com/MKhiriev/go-event-organizer/models"
)

// ─────────────────────────────────────────────
// Service mocks
// ─────────────────────────────────────────────

// Each mock implements one service interface by delegating to function
// fields, which tests override per case.

type mockAuthService struct {
	registerFn    func(ctx context.Context, req models.SignUpRequest) (models.User, error)
	loginFn       func(ctx context.Context, req models.SignInRequest) (models.User, error)
	createTokenFn func(ctx context.Context, user models.User) (models.Token, error)
	parseTokenFn  func(ctx context.Context, tokenString string) (models.Token, error)
}

func (m *mockAuthService) Register(ctx context.Context, req models.SignUpRequest) (models.User, error) {
	return m.registerFn(ctx, req)
}

func (m *mockAuthService) Login(ctx context.Context, req models.SignInRequest) (models.User, error) {
	return m.loginFn(ctx, req)
}

func (m *mockAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	return m.createTokenFn(ctx, user)
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return m.parseTokenFn(ctx, tokenString)
}

type mockUserService struct {
	updateCredentialsFn  func(ctx context.Context, userID int64, req models.UpdateCredentialsRequest) (models.User, error)
	getAllFn             func(ctx context.Context) ([]models.User, error)
	getByRoleFn          func(ctx context.Context, role models.Role) ([]models.User, error)
	getByIDFn            func(ctx context.Context, id int64) (models.User, error)
	addFn                func(ctx context.Context, req models.UserRequest) (models.User, error)
	updateFn             func(ctx context.Context, id int64, req models.UserRequest) (models.User, error)
	deleteFn             func(ctx context.Context, id int64) error
	addToWishlistFn      func(ctx context.Context, userID, eventID int64) error
	removeFromWishlistFn func(ctx context.Context, userID, eventID int64) error
	getWishlistFn        func(ctx context.Context, userID int64) ([]models.Event, error)
}

func (m *mockUserService) UpdateCredentials(ctx context.Context, userID int64, req models.UpdateCredentialsRequest) (models.User, error) {
	return m.updateCredentialsFn(ctx, userID, req)
}

func (m *mockUserService) GetAll(ctx context.Context) ([]models.User, error) {
	return m.getAllFn(ctx)
}

func (m *mockUserService) GetByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	return m.getByRoleFn(ctx, role)
}

func (m *mockUserService) GetByID(ctx context.Context, id int64) (models.User, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockUserService) Add(ctx context.Context, req models.UserRequest) (models.User, error) {
	return m.addFn(ctx, req)
}

func (m *mockUserService) Update(ctx context.Context, id int64, req models.UserRequest) (models.User, error) {
	return m.updateFn(ctx, id, req)
}

func (m *mockUserService) Delete(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}

func (m *mockUserService) AddToWishlist(ctx context.Context, userID, eventID int64) error {
	return m.addToWishlistFn(ctx, userID, eventID)
}

func (m *mockUserService) RemoveFromWishlist(ctx context.Context, userID, eventID int64) error {
	return m.removeFromWishlistFn(ctx, userID, eventID)
}

func (m *mockUserService) GetWishlist(ctx context.Context, userID int64) ([]models.Event, error) {
	return m.getWishlistFn(ctx, userID)
}

type mockLocationService struct {
	getAllFn  func(ctx context.Context) ([]models.Location, error)
	getByIDFn func(ctx context.Context, id int64) (models.Location, error)
	createFn  func(ctx context.Context, req models.LocationRequest) (models.Location, error)
	updateFn  func(ctx context.Context, id int64, req models.LocationRequest) (models.Location, error)
	deleteFn  func(ctx context.Context, id int64) error
}

func (m *mockLocationService) GetAll(ctx context.Context) ([]models.Location, error) {
	return m.getAllFn(ctx)
}

func (m *mockLocationService) GetByID(ctx context.Context, id int64) (models.Location, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockLocationService) Create(ctx context.Context, req models.LocationRequest) (models.Location, error) {
	return m.createFn(ctx, req)
}

func (m *mockLocationService) Update(ctx context.Context, id int64, req models.LocationRequest) (models.Location, error) {
	return m.updateFn(ctx, id, req)
}

func (m *mockLocationService) Delete(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}

type mockEventService struct {
	getAllFn         func(ctx context.Context) ([]models.Event, error)
	getByIDFn        func(ctx context.Context, id int64) (models.Event, error)
	getByOrganizerFn func(ctx context.Context, organizerID int64) ([]models.Event, error)
	createFn         func(ctx context.Context, caller models.Caller, req models.EventRequest) (models.Event, error)
	updateFn         func(ctx context.Context, caller models.Caller, id int64, req models.EventRequest) (models.Event, error)
	deleteFn         func(ctx context.Context, caller models.Caller, id int64) error
	setOnSaleFn      func(ctx context.Context, caller models.Caller, id int64, percent int) (models.Event, error)
}

func (m *mockEventService) GetAll(ctx context.Context) ([]models.Event, error) {
	return m.getAllFn(ctx)
}

func (m *mockEventService) GetByID(ctx context.Context, id int64) (models.Event, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockEventService) GetByOrganizer(ctx context.Context, organizerID int64) ([]models.Event, error) {
	return m.getByOrganizerFn(ctx, organizerID)
}

func (m *mockEventService) Create(ctx context.Context, caller models.Caller, req models.EventRequest) (models.Event, error) {
	return m.createFn(ctx, caller, req)
}

func (m *mockEventService) Update(ctx context.Context, caller models.Caller, id int64, req models.EventRequest) (models.Event, error) {
	return m.updateFn(ctx, caller, id, req)
}

func (m *mockEventService) Delete(ctx context.Context, caller models.Caller, id int64) error {
	return m.deleteFn(ctx, caller, id)
}

func (m *mockEventService) SetOnSale(ctx context.Context, caller models.Caller, id int64, percent int) (models.Event, error) {
	return m.setOnSaleFn(ctx, caller, id, percent)
}

type mockTicketService struct {
	purchaseFn   func(ctx context.Context, req models.TicketRequest, quantity int) ([]models.Ticket, error)
	updateFn     func(ctx context.Context, caller models.Caller, id int64, req models.TicketRequest) (models.Ticket, error)
	deleteFn     func(ctx context.Context, caller models.Caller, id int64) error
	getByIDFn    func(ctx context.Context, caller models.Caller, id int64) (models.Ticket, error)
	getAllFn     func(ctx context.Context) ([]models.Ticket, error)
	getByUserFn  func(ctx context.Context, userID int64) ([]models.Ticket, error)
	getByEventFn func(ctx context.Context, eventID int64) ([]models.Ticket, error)
	exportFn     func(ctx context.Context, caller models.Caller, id int64, format models.ExportFormat) (models.TicketFile, error)
}

func (m *mockTicketService) Purchase(ctx context.Context, req models.TicketRequest, quantity int) ([]models.Ticket, error) {
	return m.purchaseFn(ctx, req, quantity)
}

func (m *mockTicketService) Update(ctx context.Context, caller models.Caller, id int64, req models.TicketRequest) (models.Ticket, error) {
	return m.updateFn(ctx, caller, id, req)
}

func (m *mockTicketService) Delete(ctx context.Context, caller models.Caller, id int64) error {
	return m.deleteFn(ctx, caller, id)
}

func (m *mockTicketService) GetByID(ctx context.Context, caller models.Caller, id int64) (models.Ticket, error) {
	return m.getByIDFn(ctx, caller, id)
}

func (m *mockTicketService) GetAll(ctx context.Context) ([]models.Ticket, error) {
	return m.getAllFn(ctx)
}

func (m *mockTicketService) GetByUser(ctx context.Context, userID int64) ([]models.Ticket, error) {
	return m.getByUserFn(ctx, userID)
}

func (m *mockTicketService) GetByEvent(ctx context.Context, eventID int64) ([]models.Ticket, error) {
	return m.getByEventFn(ctx, eventID)
}

func (m *mockTicketService) Export(ctx context.Context, caller models.Caller, id int64, format models.ExportFormat) (models.TicketFile, error) {
	return m.exportFn(ctx, caller, id, format)
}

type mockAppInfoService struct {
	buildInfo models.AppBuildInfo
}

func (m *mockAppInfoService) GetAppVersion(_ context.Context) string {
	return m.buildInfo.Version
}

func (m *mockAppInfoService) GetBuildInfo(_ context.Context) models.AppBuildInfo {
	return m.buildInfo
}

type mockPinger struct {
	err error
}

func (m *mockPinger) PingContext(_ context.Context) error {
	return m.err
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// Bearer tokens understood by parseTestToken.
const (
	adminToken     = "administrator-1"
	organizerToken = "organizer-7"
	clientToken    = "client-20"
)

// parseTestToken accepts tokens of the form "<role>-<id>".
func parseTestToken(_ context.Context, tokenString string) (models.Token, error) {
	role, rawID, ok := strings.Cut(tokenString, "-")
	id, err := strconv.ParseInt(rawID, 10, 64)
	if !ok || err != nil {
		return models.Token{}, fmt.Errorf("%w: %q", service.ErrTokenIsExpiredOrInvalid, tokenString)
	}

	token := models.Token{Claims: models.Claims{UserID: id, Role: models.Role(role)}}
	token.Subject = role
	return token, nil
}

// newTestServices returns services whose AuthService understands the test
// tokens. Tests fill in the service they exercise.
func newTestServices() *service.Services {
	return &service.Services{
		AuthService:    &mockAuthService{parseTokenFn: parseTestToken},
		AppInfoService: &mockAppInfoService{buildInfo: models.AppBuildInfo{Version: "test-version"}},
	}
}

func newTestRouter(t *testing.T, svcs *service.Services) http.Handler {
	t.Helper()
	return NewHandler(svcs, &mockPinger{}, config.Server{}, logger.Nop()).Init()
}

// serve sends a request through router. An empty token sends no
// Authorization header.
func serve(router http.Handler, method, target, body, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}
