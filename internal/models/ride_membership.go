package models

import (
	"time"

	"gorm.io/gorm"
)

// RideMembership is one passenger's seat on a ride. A soft-deleted row means
// the passenger left; re-joining revives the row.
type RideMembership struct {
	RideID      uint64         `gorm:"primarykey" json:"ride_id"`
	PassengerID uint64         `gorm:"primarykey" json:"passenger_id"`
	JoinedAt    time.Time      `json:"joined_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Ride      Ride `gorm:"foreignKey:RideID" json:"ride,omitempty"`
	Passenger User `gorm:"foreignKey:PassengerID" json:"passenger,omitempty"`
}
