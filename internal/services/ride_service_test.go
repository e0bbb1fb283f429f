package services

import (
	"testing"
	"time"

	"github.com/junoapp/juno-backend/internal/models"
	"github.com/junoapp/juno-backend/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupRideService(t *testing.T) (*RideService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Ride{},
		&models.RideMembership{},
		&models.Friendship{},
	))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	friends := NewFriendService(
		repository.NewFriendshipRepository(db),
		repository.NewUserRepository(db),
	)
	return NewRideService(repository.NewRideRepository(db), friends), db
}

func TestRideService_CreateValidation(t *testing.T) {
	svc, _ := setupRideService(t)

	base := CreateRideInput{
		DriverID:           1,
		OriginAddress:      "A",
		DestinationAddress: "B",
		DepartureTime:      time.Now().Add(time.Hour),
		MaxPassengers:      2,
	}

	cases := []struct {
		name   string
		mutate func(*CreateRideInput)
		want   error
	}{
		{"missing origin", func(in *CreateRideInput) { in.OriginAddress = "" }, ErrOriginRequired},
		{"missing destination", func(in *CreateRideInput) { in.DestinationAddress = "" }, ErrDestinationRequired},
		{"past departure", func(in *CreateRideInput) { in.DepartureTime = time.Now().Add(-time.Hour) }, ErrDepartureNotFuture},
		{"zero passengers", func(in *CreateRideInput) { in.MaxPassengers = 0 }, ErrInvalidPassengerCap},
		{"too many passengers", func(in *CreateRideInput) { in.MaxPassengers = 9 }, ErrInvalidPassengerCap},
		{"negative price", func(in *CreateRideInput) { in.PricePerSeat = -1 }, ErrInvalidPrice},
		{"price over cap", func(in *CreateRideInput) { in.PricePerSeat = 101 }, ErrInvalidPrice},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := base
			tc.mutate(&input)
			_, err := svc.CreateRide(input)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestRideService_JoinCancelledRideNotFound(t *testing.T) {
	svc, db := setupRideService(t)

	ride := &models.Ride{
		DriverID:           1,
		OriginAddress:      "A",
		DestinationAddress: "B",
		DepartureTime:      time.Now().Add(time.Hour),
		MaxPassengers:      3,
		Status:             models.RideStatusCancelled,
	}
	require.NoError(t, db.Create(ride).Error)

	err := svc.JoinRide(ride.ID, 2)
	require.ErrorIs(t, err, ErrRideNotFound)
}

func TestHaversineKm(t *testing.T) {
	// Same point.
	require.InDelta(t, 0, haversineKm(40.0, -86.0, 40.0, -86.0), 0.001)

	// One degree of latitude is roughly 111 km.
	require.InDelta(t, 111.2, haversineKm(40.0, -86.0, 41.0, -86.0), 1.0)
}

func TestRideService_NearbyOrdering(t *testing.T) {
	svc, db := setupRideService(t)

	future := time.Now().Add(time.Hour)
	for _, lat := range []float64{40.9, 40.43, 40.6} {
		require.NoError(t, db.Create(&models.Ride{
			DriverID:           1,
			OriginAddress:      "A",
			OriginLat:          lat,
			OriginLng:          -86.9,
			DestinationAddress: "B",
			DepartureTime:      future,
			MaxPassengers:      3,
			Status:             models.RideStatusActive,
		}).Error)
	}

	nearby, err := svc.NearbyRides(2, 40.42, -86.9, 30)
	require.NoError(t, err)
	require.Len(t, nearby, 2)
	require.Less(t, nearby[0].DistanceKm, nearby[1].DistanceKm)
	require.InDelta(t, 40.43, nearby[0].Ride.OriginLat, 0.001)
}
