package http

import (
	"net/http"

	"github.com/MKhiriev/go-event-organizer/internal/utils"
	"github.com/MKhiriev/go-event-organizer/models"
	"github.com/go-chi/chi/v5"
)

// updateCredentials lets a user change their own username, name, email and
// password. The userId query parameter must name the caller.
func (h *Handler) updateCredentials(w http.ResponseWriter, r *http.Request) {
	userID, ok := selfFromQuery(w, r, "userId")
	if !ok {
		return
	}

	var req models.UpdateCredentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.UserService.UpdateCredentials(r.Context(), userID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) getUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.services.UserService.GetAll(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, nonNil(users), http.StatusOK)
}

func (h *Handler) getUsersByRole(w http.ResponseWriter, r *http.Request) {
	role := models.Role(chi.URLParam(r, "role"))

	users, err := h.services.UserService.GetByRole(r.Context(), role)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, nonNil(users), http.StatusOK)
}

// getUser returns a single account. Administrators may read any account,
// everyone else only their own.
func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	userID, err := queryID(r, "userId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if !caller.Is(models.RoleAdministrator) {
		if err = requireSelf(caller, userID); err != nil {
			writeError(w, r, err)
			return
		}
	}

	user, err := h.services.UserService.GetByID(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) addUser(w http.ResponseWriter, r *http.Request) {
	var req models.UserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.UserService.Add(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, user, http.StatusCreated)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	id, err := queryID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.UserRequest
	if err = decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.UserService.Update(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := queryID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.UserService.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// selfFromQuery reads the user id query parameter name and checks that it
// names the caller. It writes the error response itself and reports false
// when the request must stop.
func selfFromQuery(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	userID, err := queryID(r, name)
	return checkSelf(w, r, userID, err)
}

// selfFromPath is [selfFromQuery] for path parameters.
func selfFromPath(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	userID, err := pathID(r, name)
	return checkSelf(w, r, userID, err)
}

func checkSelf(w http.ResponseWriter, r *http.Request, userID int64, parseErr error) (int64, bool) {
	if parseErr != nil {
		writeError(w, r, parseErr)
		return 0, false
	}

	caller, err := callerFromRequest(r)
	if err == nil {
		err = requireSelf(caller, userID)
	}
	if err != nil {
		writeError(w, r, err)
		return 0, false
	}

	return userID, true
}

// nonNil keeps empty lists encoded as [] rather than null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
