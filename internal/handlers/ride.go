package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/junoapp/juno-backend/internal/dto"
	apierrors "github.com/junoapp/juno-backend/internal/errors"
	"github.com/junoapp/juno-backend/internal/middleware"
	"github.com/junoapp/juno-backend/internal/services"
)

// RideHandler coordinates ride HTTP handlers.
type RideHandler struct {
	rideService *services.RideService
}

// NewRideHandler creates a new RideHandler.
func NewRideHandler(rideService *services.RideService) *RideHandler {
	return &RideHandler{
		rideService: rideService,
	}
}

// ListRides returns active upcoming rides visible to the caller.
func (h *RideHandler) ListRides(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	rides, err := h.rideService.ListRides(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to list rides")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rides": dto.ToRideDTOs(rides),
		"count": len(rides),
	})
}

// CreateRide creates a ride offer with the caller as driver.
func (h *RideHandler) CreateRide(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	type CreateRideRequest struct {
		OriginAddress      string    `json:"origin_address" binding:"required"`
		OriginLat          float64   `json:"origin_lat"`
		OriginLng          float64   `json:"origin_lng"`
		DestinationAddress string    `json:"destination_address" binding:"required"`
		DestinationLat     float64   `json:"destination_lat"`
		DestinationLng     float64   `json:"destination_lng"`
		DepartureTime      time.Time `json:"departure_time" binding:"required"`
		MaxPassengers      int       `json:"max_passengers" binding:"required"`
		PricePerSeat       float64   `json:"price_per_seat"`
		Description        string    `json:"description"`
		OnlyFriends        bool      `json:"only_friends"`
		SchoolRide         bool      `json:"school_ride"`
	}

	var req CreateRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	ride, err := h.rideService.CreateRide(services.CreateRideInput{
		DriverID:           userID,
		OriginAddress:      req.OriginAddress,
		OriginLat:          req.OriginLat,
		OriginLng:          req.OriginLng,
		DestinationAddress: req.DestinationAddress,
		DestinationLat:     req.DestinationLat,
		DestinationLng:     req.DestinationLng,
		DepartureTime:      req.DepartureTime,
		MaxPassengers:      req.MaxPassengers,
		PricePerSeat:       req.PricePerSeat,
		Description:        req.Description,
		OnlyFriends:        req.OnlyFriends,
		SchoolRide:         req.SchoolRide,
	})
	if err != nil {
		respondRideError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToRideDTO(*ride))
}

// GetRide returns one ride with driver and passengers.
func (h *RideHandler) GetRide(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	rideID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ride, err := h.rideService.GetRide(rideID, userID)
	if err != nil {
		respondRideError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRideDTO(*ride))
}

// JoinRide books a seat on the ride for the caller.
func (h *RideHandler) JoinRide(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	rideID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.rideService.JoinRide(rideID, userID); err != nil {
		respondRideError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Joined ride successfully",
	})
}

// LeaveRide releases the caller's seat on the ride.
func (h *RideHandler) LeaveRide(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	rideID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.rideService.LeaveRide(rideID, userID); err != nil {
		respondRideError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Left ride successfully",
	})
}

// CancelRide transitions the caller's ride to cancelled.
func (h *RideHandler) CancelRide(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	rideID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.rideService.CancelRide(rideID, userID); err != nil {
		respondRideError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Ride cancelled",
	})
}

// CompleteRide transitions the caller's ride to completed.
func (h *RideHandler) CompleteRide(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	rideID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.rideService.CompleteRide(rideID, userID); err != nil {
		respondRideError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Ride completed",
	})
}

// NearbyRides returns visible rides near a pickup point, nearest first.
func (h *RideHandler) NearbyRides(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	lat, latErr := strconv.ParseFloat(c.Query("pickup_lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("pickup_lng"), 64)
	if latErr != nil || lngErr != nil {
		apierrors.BadRequest(c, "Pickup coordinates required")
		return
	}
	radius, err := strconv.ParseFloat(c.DefaultQuery("radius", "10"), 64)
	if err != nil || radius <= 0 {
		apierrors.BadRequest(c, "Invalid radius")
		return
	}

	nearby, err := h.rideService.NearbyRides(userID, lat, lng, radius)
	if err != nil {
		apierrors.InternalError(c, "Failed to search nearby rides")
		return
	}

	results := make([]dto.NearbyRideDTO, len(nearby))
	for i, n := range nearby {
		results[i] = dto.NearbyRideDTO{
			RideDTO:    dto.ToRideDTO(n.Ride),
			DistanceKm: n.DistanceKm,
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"rides": results,
		"count": len(results),
	})
}

func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return id, true
}

func respondRideError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrRideNotFound),
		errors.Is(err, services.ErrMembershipNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrDepartureNotFuture),
		errors.Is(err, services.ErrInvalidPassengerCap),
		errors.Is(err, services.ErrInvalidPrice),
		errors.Is(err, services.ErrOriginRequired),
		errors.Is(err, services.ErrDestinationRequired),
		errors.Is(err, services.ErrDriverJoinsOwnRide),
		errors.Is(err, services.ErrRideNotDepartedYet):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrRideFull):
		apierrors.RideFull(c, err.Error())
	case errors.Is(err, services.ErrAlreadyJoined),
		errors.Is(err, services.ErrRideNotActive):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrNotRideDriver):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
