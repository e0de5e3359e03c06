package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-event-organizer/internal/export"
	"github.com/MKhiriev/go-event-organizer/internal/logger"
	"github.com/MKhiriev/go-event-organizer/internal/service"
	"github.com/MKhiriev/go-event-organizer/internal/store"
)

var errorStatusMap = map[error]int{
	ErrInvalidParameter: http.StatusBadRequest,
	ErrInvalidJSON:      http.StatusBadRequest,
	ErrNoCaller:         http.StatusUnauthorized,

	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrOldPasswordMismatch:     http.StatusBadRequest,
	service.ErrInvalidOrganizer:        http.StatusBadRequest,
	service.ErrInvalidCredentials:      http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrForbidden:               http.StatusForbidden,
	service.ErrNameAlreadyTaken:        http.StatusConflict,
	service.ErrCapacityTooSmall:        http.StatusConflict,
	service.ErrTokenCreationFailed:     http.StatusInternalServerError,
	service.ErrVersionIsNotSpecified:   http.StatusInternalServerError,

	export.ErrUnsupportedFormat: http.StatusBadRequest,

	store.ErrUsernameAlreadyExists:     http.StatusConflict,
	store.ErrNoUserWasFound:            http.StatusNotFound,
	store.ErrUserHasEvents:             http.StatusConflict,
	store.ErrLocationNameAlreadyExists: http.StatusConflict,
	store.ErrLocationNotFound:          http.StatusNotFound,
	store.ErrLocationInUse:             http.StatusConflict,
	store.ErrEventNotFound:             http.StatusNotFound,
	store.ErrNotEnoughTickets:          http.StatusConflict,
	store.ErrTicketNotFound:            http.StatusNotFound,
	store.ErrWishlistEntryNotFound:     http.StatusNotFound,
	store.ErrReferencedRowNotFound:     http.StatusNotFound,
	store.ErrInvalidData:               http.StatusBadRequest,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

// errorResponse picks the status for err and the message shown to the
// client. Validation and request parsing failures keep their detail;
// everything else reports the matched sentinel only.
func errorResponse(err error) (int, string) {
	if errors.Is(err, service.ErrInvalidDataProvided) ||
		errors.Is(err, ErrInvalidParameter) ||
		errors.Is(err, ErrInvalidJSON) {
		return http.StatusBadRequest, err.Error()
	}

	for target, status := range errorStatusMap {
		if status < http.StatusInternalServerError && errors.Is(err, target) {
			return status, target.Error()
		}
	}
	return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
}

func statusFromError(err error) int {
	status, _ := errorResponse(err)
	return status
}

// writeError logs err and writes it as a plain-text response.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := errorResponse(err)

	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Warn().Err(err).Int("status", status).Msg("request rejected")
	}

	http.Error(w, message, status)
}
