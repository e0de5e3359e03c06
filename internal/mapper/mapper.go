// Package mapper converts request bodies into domain models and domain
// models into response bodies.
package mapper

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-event-organizer/models"
)

var (
	ErrInvalidEventDate = errors.New("invalid event date")
	ErrInvalidEventTime = errors.New("invalid event time")
)

// UserFromSignUp builds a user from a registration body. The password is left
// for the caller to hash.
func UserFromSignUp(req models.SignUpRequest) models.User {
	return models.User{
		Username: strings.TrimSpace(req.Username),
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
		Role:     models.RoleFromSignUpCode(req.UserTypeCode),
	}
}

// UserFromRequest builds a user from an administrator's body. An unknown
// user type yields an empty role.
func UserFromRequest(req models.UserRequest) models.User {
	role, _ := models.ParseRole(req.UserType)
	return models.User{
		Username: strings.TrimSpace(req.Username),
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
		Role:     role,
	}
}

func LocationFromRequest(req models.LocationRequest) models.Location {
	return models.Location{
		Name:     strings.TrimSpace(req.Name),
		Address:  strings.TrimSpace(req.Address),
		Capacity: req.Capacity,
	}
}

// EventFromRequest parses the date and optional time of req. The event time
// is normalized to "HH:MM".
func EventFromRequest(req models.EventRequest) (models.Event, error) {
	date, err := time.Parse(models.EventDateLayout, req.EventDate)
	if err != nil {
		return models.Event{}, fmt.Errorf("%w: %w", ErrInvalidEventDate, err)
	}

	var eventTime string
	if req.EventTime != "" {
		t, err := time.Parse(models.EventTimeLayout, req.EventTime)
		if err != nil {
			return models.Event{}, fmt.Errorf("%w: %w", ErrInvalidEventTime, err)
		}
		eventTime = t.Format(models.EventTimeLayout)
	}

	return models.Event{
		Name:        strings.TrimSpace(req.Name),
		EventType:   strings.TrimSpace(req.EventType),
		EventDate:   date,
		EventTime:   eventTime,
		LocationID:  req.Location,
		BasePrice:   req.BasePrice(),
		OnSale:      req.OnSale,
		OrganizerID: req.Organizer,
	}, nil
}

// EventToResponse reports the discounted price as Price and the base price as
// OriginalPrice.
func EventToResponse(event models.Event) models.EventResponse {
	return models.EventResponse{
		ID:               event.ID,
		Name:             event.Name,
		EventType:        event.EventType,
		EventDate:        event.EventDate.Format(models.EventDateLayout),
		EventTime:        event.EventTime,
		Location:         event.LocationID,
		LocationName:     event.LocationName,
		TicketsAvailable: event.TicketsAvailable,
		Price:            event.Price(),
		OriginalPrice:    event.BasePrice,
		OnSale:           event.OnSale,
		Organizer:        event.OrganizerID,
	}
}

func EventsToResponses(events []models.Event) []models.EventResponse {
	responses := make([]models.EventResponse, 0, len(events))
	for _, event := range events {
		responses = append(responses, EventToResponse(event))
	}
	return responses
}

func TicketFromRequest(req models.TicketRequest) models.Ticket {
	return models.Ticket{
		UserID:  req.UserID,
		EventID: req.EventID,
	}
}
