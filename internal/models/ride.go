package models

import (
	"time"

	"gorm.io/gorm"
)

type RideStatus string

const (
	RideStatusActive    RideStatus = "active"
	RideStatusCancelled RideStatus = "cancelled"
	RideStatusCompleted RideStatus = "completed"
)

type Ride struct {
	ID       uint64 `gorm:"primarykey" json:"id"`
	DriverID uint64 `gorm:"not null;index" json:"driver_id"`

	OriginAddress      string  `gorm:"type:varchar(512);not null" json:"origin_address"`
	OriginLat          float64 `json:"origin_lat"`
	OriginLng          float64 `json:"origin_lng"`
	DestinationAddress string  `gorm:"type:varchar(512);not null" json:"destination_address"`
	DestinationLat     float64 `json:"destination_lat"`
	DestinationLng     float64 `json:"destination_lng"`

	DepartureTime time.Time `gorm:"not null;index" json:"departure_time"`
	MaxPassengers int       `gorm:"not null" json:"max_passengers"`
	// Maintained by conditional updates in the ride repository, never by
	// read-then-write.
	CurrentPassengers int     `gorm:"not null;default:0" json:"current_passengers"`
	PricePerSeat      float64 `gorm:"not null;default:0" json:"price_per_seat"`
	Description       string  `gorm:"type:text" json:"description"`
	OnlyFriends       bool    `gorm:"not null;default:false" json:"only_friends"`
	SchoolRide        bool    `gorm:"not null;default:false" json:"school_ride"`

	Status RideStatus `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Driver      User             `gorm:"foreignKey:DriverID" json:"driver,omitempty"`
	Memberships []RideMembership `gorm:"foreignKey:RideID" json:"memberships,omitempty"`
}

// AvailableSeats returns the number of seats still open.
func (r *Ride) AvailableSeats() int {
	return r.MaxPassengers - r.CurrentPassengers
}
