package dto

import (
	"time"

	"github.com/junoapp/juno-backend/internal/models"
)

// LocationDTO represents a saved location in API responses.
type LocationDTO struct {
	ID        uint64              `json:"id"`
	Name      string              `json:"name"`
	Address   string              `json:"address"`
	Latitude  float64             `json:"latitude"`
	Longitude float64             `json:"longitude"`
	Type      models.LocationType `json:"type"`
	CreatedAt time.Time           `json:"created_at"`
}

// ToLocationDTO converts a SavedLocation model to LocationDTO.
func ToLocationDTO(location models.SavedLocation) LocationDTO {
	return LocationDTO{
		ID:        location.ID,
		Name:      location.Name,
		Address:   location.Address,
		Latitude:  location.Latitude,
		Longitude: location.Longitude,
		Type:      location.Type,
		CreatedAt: location.CreatedAt,
	}
}

// ToLocationDTOs converts a slice of saved locations.
func ToLocationDTOs(locations []models.SavedLocation) []LocationDTO {
	dtos := make([]LocationDTO, len(locations))
	for i, location := range locations {
		dtos[i] = ToLocationDTO(location)
	}
	return dtos
}
