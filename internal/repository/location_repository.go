package repository

import (
	"github.com/junoapp/juno-backend/internal/models"
	"gorm.io/gorm"
)

// GormLocationRepository is a GORM implementation of LocationRepository
type GormLocationRepository struct {
	db *gorm.DB
}

// NewLocationRepository creates a new LocationRepository
func NewLocationRepository(db *gorm.DB) LocationRepository {
	return &GormLocationRepository{db: db}
}

// Create creates a new saved location
func (r *GormLocationRepository) Create(location *models.SavedLocation) error {
	return r.db.Create(location).Error
}

// FindByID finds a saved location by ID
func (r *GormLocationRepository) FindByID(id uint64) (*models.SavedLocation, error) {
	var location models.SavedLocation
	if err := r.db.First(&location, id).Error; err != nil {
		return nil, err
	}
	return &location, nil
}

// ListByOwner lists all locations owned by a user
func (r *GormLocationRepository) ListByOwner(ownerID uint64) ([]models.SavedLocation, error) {
	var locations []models.SavedLocation
	if err := r.db.Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

// Delete removes a saved location
func (r *GormLocationRepository) Delete(id uint64) error {
	return r.db.Delete(&models.SavedLocation{}, id).Error
}
