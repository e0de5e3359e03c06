package service

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/MKhiriev/go-event-organizer/internal/config"
	"github.com/MKhiriev/go-event-organizer/internal/logger"
	"github.com/MKhiriev/go-event-organizer/internal/mapper"
	"github.com/MKhiriev/go-event-organizer/internal/store"
	"github.com/MKhiriev/go-event-organizer/internal/utils"
	"github.com/MKhiriev/go-event-organizer/internal/validators"
	"github.com/MKhiriev/go-event-organizer/models"
)

// userUpdateFields are checked when an administrator replaces an account.
// The password is optional there.
var userUpdateFields = []string{
	validators.FieldUsername,
	validators.FieldName,
	validators.FieldEmail,
	validators.FieldUserType,
}

type userService struct {
	transactor         store.Transactor
	userRepository     store.UserRepository
	ticketRepository   store.TicketRepository
	eventRepository    store.EventRepository
	wishlistRepository store.WishlistRepository

	validator  validators.Validator
	bcryptCost int

	logger *logger.Logger
}

func NewUserService(
	transactor store.Transactor,
	userRepository store.UserRepository,
	ticketRepository store.TicketRepository,
	eventRepository store.EventRepository,
	wishlistRepository store.WishlistRepository,
	validator validators.Validator,
	cfg config.App,
	logger *logger.Logger,
) UserService {
	return &userService{
		transactor:         transactor,
		userRepository:     userRepository,
		ticketRepository:   ticketRepository,
		eventRepository:    eventRepository,
		wishlistRepository: wishlistRepository,
		validator:          validator,
		bcryptCost:         cfg.BcryptCost,
		logger:             logger,
	}
}

func (s *userService) UpdateCredentials(ctx context.Context, userID int64, req models.UpdateCredentialsRequest) (models.User, error) {
	log := logger.FromContext(ctx).With().Str("func", "*userService.UpdateCredentials").Int64("user_id", userID).Logger()

	if err := s.validator.Validate(ctx, req); err != nil {
		log.Err(err).Msg("invalid credentials provided")
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	user, err := s.userRepository.FindByID(ctx, userID)
	if err != nil {
		log.Err(err).Msg("user search by id failed")
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	if err = utils.CheckPassword(user.PasswordHash, req.OldPassword); err != nil {
		log.Warn().Err(err).Msg("old password check failed")
		if errors.Is(err, utils.ErrPasswordMismatch) {
			return models.User{}, ErrOldPasswordMismatch
		}
		return models.User{}, err
	}

	updated := mapper.UserFromRequest(models.UserRequest{Username: req.Username, Name: req.Name, Email: req.Email})
	if err = s.ensureUnique(ctx, userID, updated); err != nil {
		log.Err(err).Msg("credentials clash with another account")
		return models.User{}, err
	}

	hash, err := utils.HashPassword(req.NewPassword, s.bcryptCost)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, err
	}

	user.Username = updated.Username
	user.Name = updated.Name
	user.Email = updated.Email
	user.PasswordHash = hash

	saved, err := s.userRepository.Update(ctx, user)
	if err != nil {
		log.Err(err).Msg("user update ended with error")
		return models.User{}, fmt.Errorf("user update ended with error: %w", err)
	}

	return saved, nil
}

// ensureUnique fails when the username or name of user belongs to an account
// other than userID.
func (s *userService) ensureUnique(ctx context.Context, userID int64, user models.User) error {
	found, err := s.userRepository.FindByUsername(ctx, user.Username)
	switch {
	case err == nil && found.ID != userID:
		return store.ErrUsernameAlreadyExists
	case err != nil && !errors.Is(err, store.ErrNoUserWasFound):
		return fmt.Errorf("user search by username failed: %w", err)
	}

	found, err = s.userRepository.FindByName(ctx, user.Name)
	switch {
	case err == nil && found.ID != userID:
		return ErrNameAlreadyTaken
	case err != nil && !errors.Is(err, store.ErrNoUserWasFound):
		return fmt.Errorf("user search by name failed: %w", err)
	}

	return nil
}

func (s *userService) GetAll(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepository.FindAll(ctx)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userService.GetAll").Msg("user listing failed")
		return nil, fmt.Errorf("user listing failed: %w", err)
	}
	return users, nil
}

func (s *userService) GetByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrInvalidRole)
	}

	users, err := s.userRepository.FindByRole(ctx, role)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userService.GetByRole").Str("role", string(role)).Msg("user search by role failed")
		return nil, fmt.Errorf("user search by role failed: %w", err)
	}
	return users, nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (models.User, error) {
	user, err := s.userRepository.FindByID(ctx, id)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userService.GetByID").Int64("id", id).Msg("user search by id failed")
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}
	return user, nil
}

func (s *userService) Add(ctx context.Context, req models.UserRequest) (models.User, error) {
	log := logger.FromContext(ctx).With().Str("func", "*userService.Add").Logger()

	if err := s.validator.Validate(ctx, req); err != nil {
		log.Err(err).Msg("invalid user data provided")
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	user := mapper.UserFromRequest(req)
	hash, err := utils.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, err
	}
	user.PasswordHash = hash

	created, err := s.userRepository.Create(ctx, user)
	if err != nil {
		log.Err(err).Str("username", user.Username).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return created, nil
}

func (s *userService) Update(ctx context.Context, id int64, req models.UserRequest) (models.User, error) {
	log := logger.FromContext(ctx).With().Str("func", "*userService.Update").Int64("id", id).Logger()

	if err := s.validator.Validate(ctx, req, userUpdateFields...); err != nil {
		log.Err(err).Msg("invalid user data provided")
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	existing, err := s.userRepository.FindByID(ctx, id)
	if err != nil {
		log.Err(err).Msg("user search by id failed")
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	user := mapper.UserFromRequest(req)
	user.ID = existing.ID
	user.CreatedAt = existing.CreatedAt
	user.PasswordHash = existing.PasswordHash
	if req.Password != "" {
		if user.PasswordHash, err = utils.HashPassword(req.Password, s.bcryptCost); err != nil {
			log.Err(err).Msg("password hashing failed")
			return models.User{}, err
		}
	}

	updated, err := s.userRepository.Update(ctx, user)
	if err != nil {
		log.Err(err).Msg("user update ended with error")
		return models.User{}, fmt.Errorf("user update ended with error: %w", err)
	}

	return updated, nil
}

// Delete removes a user. Their tickets go with them, so each seat they held
// is returned to its event first.
func (s *userService) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).With().Str("func", "*userService.Delete").Int64("id", id).Logger()

	err := s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.userRepository.FindByIDForUpdate(ctx, id); err != nil {
			return fmt.Errorf("user search by id failed: %w", err)
		}

		seats, err := s.ticketRepository.CountByUser(ctx, id)
		if err != nil {
			return fmt.Errorf("counting user tickets failed: %w", err)
		}
		eventIDs := slices.Sorted(maps.Keys(seats))
		for _, eventID := range eventIDs {
			if err = s.eventRepository.AdjustTicketsAvailable(ctx, eventID, seats[eventID]); err != nil {
				return fmt.Errorf("releasing tickets failed: %w", err)
			}
		}

		if err = s.userRepository.Delete(ctx, id); err != nil {
			return fmt.Errorf("user deletion failed: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Err(err).Msg("user deletion failed")
		return err
	}
	return nil
}

func (s *userService) AddToWishlist(ctx context.Context, userID, eventID int64) error {
	log := logger.FromContext(ctx).With().Str("func", "*userService.AddToWishlist").Int64("user_id", userID).Int64("event_id", eventID).Logger()

	if err := s.ensureUserAndEvent(ctx, userID, eventID); err != nil {
		log.Err(err).Msg("wishlist target lookup failed")
		return err
	}

	if err := s.wishlistRepository.Add(ctx, userID, eventID); err != nil {
		log.Err(err).Msg("adding event to wishlist failed")
		return fmt.Errorf("adding event to wishlist failed: %w", err)
	}

	return nil
}

func (s *userService) RemoveFromWishlist(ctx context.Context, userID, eventID int64) error {
	log := logger.FromContext(ctx).With().Str("func", "*userService.RemoveFromWishlist").Int64("user_id", userID).Int64("event_id", eventID).Logger()

	if err := s.ensureUserAndEvent(ctx, userID, eventID); err != nil {
		log.Err(err).Msg("wishlist target lookup failed")
		return err
	}

	if err := s.wishlistRepository.Remove(ctx, userID, eventID); err != nil {
		log.Err(err).Msg("removing event from wishlist failed")
		return fmt.Errorf("removing event from wishlist failed: %w", err)
	}

	return nil
}

func (s *userService) GetWishlist(ctx context.Context, userID int64) ([]models.Event, error) {
	log := logger.FromContext(ctx).With().Str("func", "*userService.GetWishlist").Int64("user_id", userID).Logger()

	if _, err := s.userRepository.FindByID(ctx, userID); err != nil {
		log.Err(err).Msg("user search by id failed")
		return nil, fmt.Errorf("user search by id failed: %w", err)
	}

	events, err := s.wishlistRepository.ListEvents(ctx, userID)
	if err != nil {
		log.Err(err).Msg("wishlist listing failed")
		return nil, fmt.Errorf("wishlist listing failed: %w", err)
	}

	return events, nil
}

func (s *userService) ensureUserAndEvent(ctx context.Context, userID, eventID int64) error {
	if _, err := s.userRepository.FindByID(ctx, userID); err != nil {
		return fmt.Errorf("user search by id failed: %w", err)
	}
	if _, err := s.eventRepository.FindByID(ctx, eventID); err != nil {
		return fmt.Errorf("event search by id failed: %w", err)
	}
	return nil
}
