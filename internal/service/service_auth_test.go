package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-event-organizer/internal/config"
	"github.com/MKhiriev/go-event-organizer/internal/logger"
	"github.com/MKhiriev/go-event-organizer/internal/mock"
	"github.com/MKhiriev/go-event-organizer/internal/store"
	"github.com/MKhiriev/go-event-organizer/internal/utils"
	"github.com/MKhiriev/go-event-organizer/internal/validators"
	"github.com/MKhiriev/go-event-organizer/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func testAppConfig() config.App {
	return config.App{
		TokenSignKey:  "test-sign-key",
		TokenIssuer:   "event-organizer-test",
		TokenDuration: time.Hour,
		BcryptCost:    bcrypt.MinCost,
	}
}

func newTestAuthService(t *testing.T) (AuthService, *mock.MockUserRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	users := mock.NewMockUserRepository(ctrl)
	return NewAuthService(users, validators.NewRequestValidator(), testAppConfig(), logger.Nop()), users
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := utils.HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)
	return hash
}

// ── Register ─────────────────────────────────────────────────────────────────

func TestAuthService_Register_HashesPasswordAndMapsRole(t *testing.T) {
	svc, users := newTestAuthService(t)
	ctx := context.Background()

	users.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, u models.User) (models.User, error) {
			assert.Equal(t, "alice", u.Username)
			assert.Equal(t, models.RoleOrganizer, u.Role)
			assert.NoError(t, utils.CheckPassword(u.PasswordHash, "secret"))
			u.ID = 1
			return u, nil
		},
	)

	user, err := svc.Register(ctx, models.SignUpRequest{
		Username:     "alice",
		Password:     "secret",
		Name:         "Alice",
		Email:        "alice@example.com",
		UserTypeCode: "org",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
}

func TestAuthService_Register_InvalidData(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Register(context.Background(), models.SignUpRequest{Username: "alice", Password: "secret", Name: "Alice"})

	require.ErrorIs(t, err, ErrInvalidDataProvided)
	assert.ErrorIs(t, err, validators.ErrInvalidEmail)
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	svc, users := newTestAuthService(t)

	users.EXPECT().Create(gomock.Any(), gomock.Any()).Return(models.User{}, store.ErrUsernameAlreadyExists)

	_, err := svc.Register(context.Background(), models.SignUpRequest{
		Username: "alice", Password: "secret", Name: "Alice", Email: "alice@example.com",
	})

	assert.ErrorIs(t, err, store.ErrUsernameAlreadyExists)
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestAuthService_Login_Success(t *testing.T) {
	svc, users := newTestAuthService(t)
	stored := models.User{ID: 5, Username: "bob", PasswordHash: mustHash(t, "pw"), Role: models.RoleClient}

	users.EXPECT().FindByUsername(gomock.Any(), "bob").Return(stored, nil)

	user, err := svc.Login(context.Background(), models.SignInRequest{Username: "bob", Password: "pw"})

	require.NoError(t, err)
	assert.Equal(t, stored, user)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	svc, users := newTestAuthService(t)

	users.EXPECT().FindByUsername(gomock.Any(), "ghost").Return(models.User{}, store.ErrNoUserWasFound)

	_, err := svc.Login(context.Background(), models.SignInRequest{Username: "ghost", Password: "pw"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, users := newTestAuthService(t)

	users.EXPECT().FindByUsername(gomock.Any(), "bob").
		Return(models.User{ID: 5, Username: "bob", PasswordHash: mustHash(t, "pw")}, nil)

	_, err := svc.Login(context.Background(), models.SignInRequest{Username: "bob", Password: "nope"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_StorageError(t *testing.T) {
	svc, users := newTestAuthService(t)
	dbErr := errors.New("connection reset")

	users.EXPECT().FindByUsername(gomock.Any(), "bob").Return(models.User{}, dbErr)

	_, err := svc.Login(context.Background(), models.SignInRequest{Username: "bob", Password: "pw"})

	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

// ── Tokens ───────────────────────────────────────────────────────────────────

func TestAuthService_CreateAndParseToken(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()
	user := models.User{ID: 9, Username: "carol", Role: models.RoleAdministrator}

	token, err := svc.CreateToken(ctx, user)
	require.NoError(t, err)
	require.NotEmpty(t, token.String())

	parsed, err := svc.ParseToken(ctx, token.String())
	require.NoError(t, err)
	assert.Equal(t, int64(9), parsed.UserID)
	assert.Equal(t, models.RoleAdministrator, parsed.Role)
	assert.Equal(t, "carol", parsed.Username())
}

func TestAuthService_ParseToken_Invalid(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.ParseToken(context.Background(), "not-a-token")

	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestAuthService_CreateToken_MissingSignKey(t *testing.T) {
	cfg := testAppConfig()
	cfg.TokenSignKey = ""
	svc := NewAuthService(nil, validators.NewRequestValidator(), cfg, logger.Nop())

	_, err := svc.CreateToken(context.Background(), models.User{ID: 1, Username: "x", Role: models.RoleClient})

	assert.ErrorIs(t, err, ErrTokenCreationFailed)
}
