package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-event-organizer/internal/service"
	"github.com/MKhiriev/go-event-organizer/internal/utils"
	"github.com/MKhiriev/go-event-organizer/models"
	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 1 << 20

// decodeJSON reads the request body into dst.
func decodeJSON(r *http.Request, dst any) error {
	body := http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return nil
}

// pathID parses the positive integer path parameter name.
func pathID(r *http.Request, name string) (int64, error) {
	return parseID(name, chi.URLParam(r, name))
}

// queryID parses the positive integer query parameter name.
func queryID(r *http.Request, name string) (int64, error) {
	return parseID(name, r.URL.Query().Get(name))
}

func parseID(name, raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer, got %q", ErrInvalidParameter, name, raw)
	}
	return id, nil
}

// queryInt parses the integer query parameter name, returning def when it
// is absent.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", ErrInvalidParameter, name, raw)
	}
	return v, nil
}

// callerFromRequest returns the identity stored by the auth middleware.
func callerFromRequest(r *http.Request) (models.Caller, error) {
	ctx := r.Context()

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return models.Caller{}, ErrNoCaller
	}
	role, ok := utils.GetRoleFromContext(ctx)
	if !ok {
		return models.Caller{}, ErrNoCaller
	}

	return models.Caller{UserID: userID, Role: role}, nil
}

// requireSelf fails with [service.ErrForbidden] unless userID is the caller.
func requireSelf(caller models.Caller, userID int64) error {
	if caller.UserID != userID {
		return fmt.Errorf("%w: user %d acting for user %d", service.ErrForbidden, caller.UserID, userID)
	}
	return nil
}
