package services

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/junoapp/juno-backend/internal/constants"
	"github.com/junoapp/juno-backend/internal/models"
	"github.com/junoapp/juno-backend/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrRideNotFound        = errors.New("ride not found")
	ErrDepartureNotFuture  = errors.New("departure time must be in the future")
	ErrInvalidPassengerCap = errors.New("max passengers out of range")
	ErrInvalidPrice        = errors.New("price per seat out of range")
	ErrOriginRequired      = errors.New("origin address is required")
	ErrDestinationRequired = errors.New("destination address is required")
	ErrDriverJoinsOwnRide  = errors.New("driver cannot join their own ride")
	ErrRideFull            = errors.New("ride is full")
	ErrAlreadyJoined       = errors.New("already joined this ride")
	ErrMembershipNotFound  = errors.New("no active membership on this ride")
	ErrNotRideDriver       = errors.New("only the driver can perform this action")
	ErrRideNotActive       = errors.New("ride is not active")
	ErrRideNotDepartedYet  = errors.New("ride has not departed yet")
)

// FriendChecker reports whether two users are linked by an accepted
// friendship.
type FriendChecker interface {
	IsFriend(userA, userB uint64) (bool, error)
}

// RideService manages ride offers and their passenger membership.
type RideService struct {
	rideRepo repository.RideRepository
	friends  FriendChecker
}

// NewRideService creates a new RideService.
func NewRideService(rideRepo repository.RideRepository, friends FriendChecker) *RideService {
	return &RideService{
		rideRepo: rideRepo,
		friends:  friends,
	}
}

// CreateRideInput represents input for creating a ride offer.
type CreateRideInput struct {
	DriverID           uint64
	OriginAddress      string
	OriginLat          float64
	OriginLng          float64
	DestinationAddress string
	DestinationLat     float64
	DestinationLng     float64
	DepartureTime      time.Time
	MaxPassengers      int
	PricePerSeat       float64
	Description        string
	OnlyFriends        bool
	SchoolRide         bool
}

// CreateRide validates and creates a ride offer with zero passengers.
func (s *RideService) CreateRide(input CreateRideInput) (*models.Ride, error) {
	if input.OriginAddress == "" {
		return nil, ErrOriginRequired
	}
	if input.DestinationAddress == "" {
		return nil, ErrDestinationRequired
	}
	if !input.DepartureTime.After(time.Now()) {
		return nil, ErrDepartureNotFuture
	}
	if input.MaxPassengers < constants.MinRidePassengers || input.MaxPassengers > constants.MaxRidePassengers {
		return nil, ErrInvalidPassengerCap
	}
	if input.PricePerSeat < 0 || input.PricePerSeat > constants.MaxPricePerSeat {
		return nil, ErrInvalidPrice
	}

	ride := &models.Ride{
		DriverID:           input.DriverID,
		OriginAddress:      input.OriginAddress,
		OriginLat:          input.OriginLat,
		OriginLng:          input.OriginLng,
		DestinationAddress: input.DestinationAddress,
		DestinationLat:     input.DestinationLat,
		DestinationLng:     input.DestinationLng,
		DepartureTime:      input.DepartureTime,
		MaxPassengers:      input.MaxPassengers,
		PricePerSeat:       input.PricePerSeat,
		Description:        input.Description,
		OnlyFriends:        input.OnlyFriends,
		SchoolRide:         input.SchoolRide,
		Status:             models.RideStatusActive,
	}

	if err := s.rideRepo.Create(ride); err != nil {
		return nil, fmt.Errorf("failed to create ride: %w", err)
	}

	return s.rideRepo.FindByID(ride.ID, "Driver")
}

// ListRides returns active upcoming rides visible to the viewer, soonest
// departure first.
func (s *RideService) ListRides(viewerID uint64) ([]models.Ride, error) {
	rides, err := s.rideRepo.ListVisible(viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rides: %w", err)
	}
	return rides, nil
}

// GetRide returns a single ride with driver and passenger data. Friends-only
// rides follow the same visibility rule as listing: driver, passengers, and
// accepted friends of the driver. Hidden rides are indistinguishable from
// missing ones.
func (s *RideService) GetRide(rideID, viewerID uint64) (*models.Ride, error) {
	ride, err := s.rideRepo.FindByID(rideID, "Driver", "Memberships", "Memberships.Passenger")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRideNotFound
		}
		return nil, fmt.Errorf("failed to find ride: %w", err)
	}

	if ride.OnlyFriends && ride.DriverID != viewerID && !rideHasPassenger(ride, viewerID) {
		isFriend, err := s.friends.IsFriend(ride.DriverID, viewerID)
		if err != nil {
			return nil, fmt.Errorf("failed to check friendship: %w", err)
		}
		if !isFriend {
			return nil, ErrRideNotFound
		}
	}

	return ride, nil
}

func rideHasPassenger(ride *models.Ride, userID uint64) bool {
	for _, m := range ride.Memberships {
		if m.PassengerID == userID {
			return true
		}
	}
	return false
}

// JoinRide books a seat for the passenger. The capacity decision itself is
// made atomically in the repository.
func (s *RideService) JoinRide(rideID, passengerID uint64) error {
	ride, err := s.rideRepo.FindByID(rideID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRideNotFound
		}
		return fmt.Errorf("failed to find ride: %w", err)
	}

	if ride.DriverID == passengerID {
		return ErrDriverJoinsOwnRide
	}
	if ride.Status != models.RideStatusActive {
		return ErrRideNotFound
	}
	if !ride.DepartureTime.After(time.Now()) {
		return ErrDepartureNotFuture
	}

	err = s.rideRepo.Join(rideID, passengerID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrRideFull):
		return ErrRideFull
	case errors.Is(err, repository.ErrAlreadyJoined):
		return ErrAlreadyJoined
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrRideNotFound
	default:
		return fmt.Errorf("failed to join ride: %w", err)
	}
}

// LeaveRide releases the passenger's seat.
func (s *RideService) LeaveRide(rideID, passengerID uint64) error {
	ride, err := s.rideRepo.FindByID(rideID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRideNotFound
		}
		return fmt.Errorf("failed to find ride: %w", err)
	}
	if ride.Status != models.RideStatusActive {
		// Memberships on a terminal ride are already void.
		return ErrMembershipNotFound
	}

	err = s.rideRepo.Leave(rideID, passengerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrMembershipNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to leave ride: %w", err)
	}
	return nil
}

// CancelRide transitions the ride to cancelled. Driver only, terminal.
func (s *RideService) CancelRide(rideID, driverID uint64) error {
	return s.transition(rideID, driverID, models.RideStatusCancelled, nil)
}

// CompleteRide transitions the ride to completed. Driver only, terminal,
// and only after the departure time has passed.
func (s *RideService) CompleteRide(rideID, driverID uint64) error {
	return s.transition(rideID, driverID, models.RideStatusCompleted, func(ride *models.Ride) error {
		if ride.DepartureTime.After(time.Now()) {
			return ErrRideNotDepartedYet
		}
		return nil
	})
}

func (s *RideService) transition(rideID, driverID uint64, to models.RideStatus, check func(*models.Ride) error) error {
	ride, err := s.rideRepo.FindByID(rideID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRideNotFound
		}
		return fmt.Errorf("failed to find ride: %w", err)
	}

	if ride.DriverID != driverID {
		return ErrNotRideDriver
	}
	if check != nil {
		if err := check(ride); err != nil {
			return err
		}
	}

	err = s.rideRepo.UpdateStatus(rideID, to)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrRideNotActive
	}
	if err != nil {
		return fmt.Errorf("failed to update ride status: %w", err)
	}
	return nil
}

// NearbyRide pairs a visible ride with its pickup distance from a point.
type NearbyRide struct {
	Ride       models.Ride
	DistanceKm float64
}

// NearbyRides returns visible rides whose origin lies within radiusKm of the
// given point, nearest first.
func (s *RideService) NearbyRides(viewerID uint64, lat, lng, radiusKm float64) ([]NearbyRide, error) {
	rides, err := s.rideRepo.ListVisible(viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rides: %w", err)
	}

	var nearby []NearbyRide
	for _, ride := range rides {
		d := haversineKm(lat, lng, ride.OriginLat, ride.OriginLng)
		if d <= radiusKm {
			nearby = append(nearby, NearbyRide{Ride: ride, DistanceKm: d})
		}
	}

	sort.Slice(nearby, func(i, j int) bool {
		return nearby[i].DistanceKm < nearby[j].DistanceKm
	})
	if len(nearby) > constants.NearbyRideLimit {
		nearby = nearby[:constants.NearbyRideLimit]
	}
	return nearby, nil
}

const earthRadiusKm = 6371.0

func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
