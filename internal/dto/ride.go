package dto

import (
	"time"

	"github.com/junoapp/juno-backend/internal/models"
)

// RideDTO represents a ride in API responses.
type RideDTO struct {
	ID                 uint64            `json:"id"`
	DriverID           uint64            `json:"driver_id"`
	OriginAddress      string            `json:"origin_address"`
	OriginLat          float64           `json:"origin_lat"`
	OriginLng          float64           `json:"origin_lng"`
	DestinationAddress string            `json:"destination_address"`
	DestinationLat     float64           `json:"destination_lat"`
	DestinationLng     float64           `json:"destination_lng"`
	DepartureTime      time.Time         `json:"departure_time"`
	MaxPassengers      int               `json:"max_passengers"`
	CurrentPassengers  int               `json:"current_passengers"`
	AvailableSeats     int               `json:"available_seats"`
	PricePerSeat       float64           `json:"price_per_seat"`
	Description        string            `json:"description"`
	OnlyFriends        bool              `json:"only_friends"`
	SchoolRide         bool              `json:"school_ride"`
	Status             models.RideStatus `json:"status"`
	CreatedAt          time.Time         `json:"created_at"`
	Driver             *UserDTO          `json:"driver,omitempty"`
	Passengers         []UserDTO         `json:"passengers,omitempty"`
}

// NearbyRideDTO is a ride with its pickup distance from the query point.
type NearbyRideDTO struct {
	RideDTO
	DistanceKm float64 `json:"distance_km"`
}

// ToRideDTO converts a Ride model to RideDTO.
func ToRideDTO(ride models.Ride) RideDTO {
	dto := RideDTO{
		ID:                 ride.ID,
		DriverID:           ride.DriverID,
		OriginAddress:      ride.OriginAddress,
		OriginLat:          ride.OriginLat,
		OriginLng:          ride.OriginLng,
		DestinationAddress: ride.DestinationAddress,
		DestinationLat:     ride.DestinationLat,
		DestinationLng:     ride.DestinationLng,
		DepartureTime:      ride.DepartureTime,
		MaxPassengers:      ride.MaxPassengers,
		CurrentPassengers:  ride.CurrentPassengers,
		AvailableSeats:     ride.AvailableSeats(),
		PricePerSeat:       ride.PricePerSeat,
		Description:        ride.Description,
		OnlyFriends:        ride.OnlyFriends,
		SchoolRide:         ride.SchoolRide,
		Status:             ride.Status,
		CreatedAt:          ride.CreatedAt,
	}

	// Include driver if preloaded
	if ride.Driver.ID != 0 {
		driver := ToUserDTO(ride.Driver)
		dto.Driver = &driver
	}

	// Include passengers if preloaded
	if len(ride.Memberships) > 0 {
		dto.Passengers = make([]UserDTO, 0, len(ride.Memberships))
		for _, m := range ride.Memberships {
			if m.Passenger.ID != 0 {
				dto.Passengers = append(dto.Passengers, ToUserDTO(m.Passenger))
			}
		}
	}

	return dto
}

// ToRideDTOs converts a slice of rides.
func ToRideDTOs(rides []models.Ride) []RideDTO {
	dtos := make([]RideDTO, len(rides))
	for i, ride := range rides {
		dtos[i] = ToRideDTO(ride)
	}
	return dtos
}
