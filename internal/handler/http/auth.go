package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-event-organizer/internal/logger"
	"github.com/MKhiriev/go-event-organizer/internal/utils"
	"github.com/MKhiriev/go-event-organizer/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.SignUpRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	registeredUser, err := h.services.AuthService.Register(ctx, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, registeredUser)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Int64("user_id", registeredUser.ID).Str("role", string(registeredUser.Role)).Msg("user registered")

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.String()))
	utils.WriteJSON(w, registeredUser, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.SignInRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	foundUser, err := h.services.AuthService.Login(ctx, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Debug().Int64("id", foundUser.ID).Msg("user successfully logged in")

	token, err := h.services.AuthService.CreateToken(ctx, foundUser)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.String()))
	utils.WriteJSON(w, models.LoginResponse{Token: token.String(), User: foundUser}, http.StatusOK)
}
