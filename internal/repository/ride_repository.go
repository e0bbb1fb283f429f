package repository

import (
	"errors"
	"time"

	"github.com/junoapp/juno-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrRideFull is returned when the ride has no remaining seats.
	ErrRideFull = errors.New("ride repository: ride is full")
	// ErrAlreadyJoined is returned when the passenger already holds an active membership.
	ErrAlreadyJoined = errors.New("ride repository: passenger already joined")
)

// GormRideRepository is a GORM implementation of RideRepository
type GormRideRepository struct {
	db *gorm.DB
}

// NewRideRepository creates a new RideRepository
func NewRideRepository(db *gorm.DB) RideRepository {
	return &GormRideRepository{db: db}
}

// Create creates a new ride
func (r *GormRideRepository) Create(ride *models.Ride) error {
	return r.db.Create(ride).Error
}

// FindByID finds a ride by ID with optional preloading
func (r *GormRideRepository) FindByID(id uint64, preload ...string) (*models.Ride, error) {
	var ride models.Ride
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&ride, id).Error; err != nil {
		return nil, err
	}

	return &ride, nil
}

// ListVisible lists active, upcoming rides the viewer may see, ordered by
// departure time ascending. Friends-only rides require an accepted
// friendship with the driver, in either direction.
func (r *GormRideRepository) ListVisible(viewerID uint64) ([]models.Ride, error) {
	friendIDs := r.db.Model(&models.Friendship{}).
		Select("CASE WHEN requester_id = ? THEN recipient_id ELSE requester_id END", viewerID).
		Where("(requester_id = ? OR recipient_id = ?) AND status = ?",
			viewerID, viewerID, models.FriendshipAccepted)

	var rides []models.Ride
	err := r.db.
		Where("status = ? AND departure_time > ?", models.RideStatusActive, time.Now()).
		Where("only_friends = ? OR driver_id = ? OR driver_id IN (?)", false, viewerID, friendIDs).
		Order("departure_time ASC").
		Preload("Driver").
		Find(&rides).Error
	if err != nil {
		return nil, err
	}
	return rides, nil
}

// Join atomically claims a seat and records the membership. The capacity
// check and the increment are a single conditional UPDATE whose affected-row
// count decides the outcome, so two concurrent joins on the last seat cannot
// both succeed. The UPDATE runs first: its row lock serializes joins per
// ride, so the membership check that follows sees any committed duplicate
// and the rollback releases the claimed seat.
func (r *GormRideRepository) Join(rideID, passengerID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Ride{}).
			Where("id = ? AND status = ? AND current_passengers < max_passengers",
				rideID, models.RideStatusActive).
			UpdateColumn("current_passengers", gorm.Expr("current_passengers + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// No joinable ride, or no seat left. Re-read to tell apart.
			var ride models.Ride
			if err := tx.First(&ride, rideID).Error; err != nil {
				return err
			}
			if ride.Status != models.RideStatusActive {
				return gorm.ErrRecordNotFound
			}
			if err := tx.Where("ride_id = ? AND passenger_id = ?", rideID, passengerID).
				First(&models.RideMembership{}).Error; err == nil {
				return ErrAlreadyJoined
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			return ErrRideFull
		}

		var existing models.RideMembership
		err := tx.Where("ride_id = ? AND passenger_id = ?", rideID, passengerID).
			First(&existing).Error
		if err == nil {
			// Already an active passenger. Rolling back undoes the increment.
			return ErrAlreadyJoined
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		membership := models.RideMembership{
			RideID:      rideID,
			PassengerID: passengerID,
			JoinedAt:    time.Now(),
		}
		// The conflict target can only be a soft-deleted row here: a live one
		// was ruled out above, under the ride row lock.
		return tx.
			Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "ride_id"}, {Name: "passenger_id"}},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"deleted_at": nil,
					"joined_at":  membership.JoinedAt,
				}),
			}).
			Create(&membership).Error
	})
}

// Leave releases the passenger's seat and marks the membership left.
func (r *GormRideRepository) Leave(rideID, passengerID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("ride_id = ? AND passenger_id = ?", rideID, passengerID).
			Delete(&models.RideMembership{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return tx.Model(&models.Ride{}).
			Where("id = ? AND current_passengers > 0", rideID).
			UpdateColumn("current_passengers", gorm.Expr("current_passengers - 1")).Error
	})
}

// UpdateStatus transitions a ride out of the active state. Terminal states
// are protected by the status condition.
func (r *GormRideRepository) UpdateStatus(rideID uint64, to models.RideStatus) error {
	res := r.db.Model(&models.Ride{}).
		Where("id = ? AND status = ?", rideID, models.RideStatusActive).
		Update("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
