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

func newLocationRouter(t *testing.T, locations *mockLocationService) http.Handler {
	t.Helper()
	svcs := newTestServices()
	svcs.LocationService = locations
	return newTestRouter(t, svcs)
}

func TestGetLocations_AnyRole(t *testing.T) {
	router := newLocationRouter(t, &mockLocationService{
		getAllFn: func(context.Context) ([]models.Location, error) {
			return []models.Location{{ID: 1, Name: "Arena", Address: "Main St 1", Capacity: 500}}, nil
		},
	})

	for _, token := range []string{adminToken, organizerToken, clientToken} {
		rec := serve(router, http.MethodGet, "/api/location/all", "", token)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[{"id":1,"name":"Arena","address":"Main St 1","capacity":500}]`, rec.Body.String())
	}
}

func TestGetLocation(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		err        error
		wantStatus int
	}{
		{"found", "/api/location/3", nil, http.StatusOK},
		{"not found", "/api/location/3", store.ErrLocationNotFound, http.StatusNotFound},
		{"bad id", "/api/location/abc", nil, http.StatusBadRequest},
		{"non-positive id", "/api/location/0", nil, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newLocationRouter(t, &mockLocationService{
				getByIDFn: func(_ context.Context, id int64) (models.Location, error) {
					assert.Equal(t, int64(3), id)
					return models.Location{ID: id}, tt.err
				},
			})

			rec := serve(router, http.MethodGet, tt.target, "", clientToken)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestCreateLocation(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"created", nil, http.StatusCreated},
		{"invalid", service.ErrInvalidDataProvided, http.StatusBadRequest},
		{"duplicate name", store.ErrLocationNameAlreadyExists, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newLocationRouter(t, &mockLocationService{
				createFn: func(_ context.Context, req models.LocationRequest) (models.Location, error) {
					assert.Equal(t, "Arena", req.Name)
					return models.Location{ID: 1, Name: req.Name}, tt.err
				},
			})

			body := `{"name":"Arena","address":"Main St 1","capacity":500}`
			rec := serve(router, http.MethodPost, "/api/location/create", body, organizerToken)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestUpdateLocation(t *testing.T) {
	router := newLocationRouter(t, &mockLocationService{
		updateFn: func(_ context.Context, id int64, req models.LocationRequest) (models.Location, error) {
			assert.Equal(t, int64(3), id)
			return models.Location{ID: id, Name: req.Name, Capacity: req.Capacity}, nil
		},
	})

	rec := serve(router, http.MethodPut, "/api/location/3", `{"name":"Hall","address":"x","capacity":50}`, adminToken)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Hall"`)
}

func TestDeleteLocation_InUse(t *testing.T) {
	router := newLocationRouter(t, &mockLocationService{
		deleteFn: func(context.Context, int64) error { return store.ErrLocationInUse },
	})

	rec := serve(router, http.MethodDelete, "/api/location/3", "", adminToken)

	assert.Equal(t, http.StatusConflict, rec.Code)
}
