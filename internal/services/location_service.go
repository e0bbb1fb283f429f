package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/junoapp/juno-backend/internal/models"
	"github.com/junoapp/juno-backend/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrInvalidLocationType  = errors.New("invalid location type")
	ErrLocationNameRequired = errors.New("location name is required")
	ErrLocationAddrRequired = errors.New("location address is required")
	ErrLocationNotFound     = errors.New("location not found")
	ErrNotLocationOwner     = errors.New("location belongs to another user")
)

// LocationService manages a user's saved places.
type LocationService struct {
	locationRepo repository.LocationRepository
}

// NewLocationService creates a new LocationService.
func NewLocationService(locationRepo repository.LocationRepository) *LocationService {
	return &LocationService{
		locationRepo: locationRepo,
	}
}

// SaveLocationInput represents input for saving a place.
type SaveLocationInput struct {
	OwnerID   uint64
	Name      string
	Address   string
	Latitude  float64
	Longitude float64
	Type      models.LocationType
}

// SaveLocation validates and stores a place. Duplicate addresses are allowed.
func (s *LocationService) SaveLocation(input SaveLocationInput) (*models.SavedLocation, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrLocationNameRequired
	}
	if strings.TrimSpace(input.Address) == "" {
		return nil, ErrLocationAddrRequired
	}
	if !models.ValidLocationType(input.Type) {
		return nil, ErrInvalidLocationType
	}

	location := &models.SavedLocation{
		OwnerID:   input.OwnerID,
		Name:      strings.TrimSpace(input.Name),
		Address:   strings.TrimSpace(input.Address),
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
		Type:      input.Type,
	}
	if err := s.locationRepo.Create(location); err != nil {
		return nil, fmt.Errorf("failed to save location: %w", err)
	}

	return location, nil
}

// ListLocations lists the caller's saved places.
func (s *LocationService) ListLocations(ownerID uint64) ([]models.SavedLocation, error) {
	locations, err := s.locationRepo.ListByOwner(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	return locations, nil
}

// DeleteLocation removes a saved place owned by the caller.
func (s *LocationService) DeleteLocation(locationID, ownerID uint64) error {
	location, err := s.locationRepo.FindByID(locationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLocationNotFound
		}
		return fmt.Errorf("failed to find location: %w", err)
	}

	if location.OwnerID != ownerID {
		return ErrNotLocationOwner
	}

	if err := s.locationRepo.Delete(locationID); err != nil {
		return fmt.Errorf("failed to delete location: %w", err)
	}
	return nil
}
