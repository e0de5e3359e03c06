package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-event-organizer/internal/logger"
	"github.com/MKhiriev/go-event-organizer/internal/mapper"
	"github.com/MKhiriev/go-event-organizer/internal/store"
	"github.com/MKhiriev/go-event-organizer/internal/validators"
	"github.com/MKhiriev/go-event-organizer/models"
)

type locationService struct {
	locationRepository store.LocationRepository
	validator          validators.Validator

	logger *logger.Logger
}

func NewLocationService(locationRepository store.LocationRepository, validator validators.Validator, logger *logger.Logger) LocationService {
	return &locationService{
		locationRepository: locationRepository,
		validator:          validator,
		logger:             logger,
	}
}

func (s *locationService) GetAll(ctx context.Context) ([]models.Location, error) {
	locations, err := s.locationRepository.FindAll(ctx)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*locationService.GetAll").Msg("location listing failed")
		return nil, fmt.Errorf("location listing failed: %w", err)
	}
	return locations, nil
}

func (s *locationService) GetByID(ctx context.Context, id int64) (models.Location, error) {
	location, err := s.locationRepository.FindByID(ctx, id)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*locationService.GetByID").Int64("id", id).Msg("location search by id failed")
		return models.Location{}, fmt.Errorf("location search by id failed: %w", err)
	}
	return location, nil
}

func (s *locationService) Create(ctx context.Context, req models.LocationRequest) (models.Location, error) {
	log := logger.FromContext(ctx).With().Str("func", "*locationService.Create").Logger()

	if err := s.validator.Validate(ctx, req); err != nil {
		log.Err(err).Msg("invalid location data provided")
		return models.Location{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	location, err := s.locationRepository.Create(ctx, mapper.LocationFromRequest(req))
	if err != nil {
		log.Err(err).Str("name", req.Name).Msg("location creation ended with error")
		return models.Location{}, fmt.Errorf("location creation ended with error: %w", err)
	}

	return location, nil
}

func (s *locationService) Update(ctx context.Context, id int64, req models.LocationRequest) (models.Location, error) {
	log := logger.FromContext(ctx).With().Str("func", "*locationService.Update").Int64("id", id).Logger()

	if err := s.validator.Validate(ctx, req); err != nil {
		log.Err(err).Msg("invalid location data provided")
		return models.Location{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	location := mapper.LocationFromRequest(req)
	location.ID = id

	updated, err := s.locationRepository.Update(ctx, location)
	if err != nil {
		log.Err(err).Msg("location update ended with error")
		return models.Location{}, fmt.Errorf("location update ended with error: %w", err)
	}

	return updated, nil
}

func (s *locationService) Delete(ctx context.Context, id int64) error {
	if err := s.locationRepository.Delete(ctx, id); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*locationService.Delete").Int64("id", id).Msg("location deletion failed")
		return fmt.Errorf("location deletion failed: %w", err)
	}
	return nil
}
