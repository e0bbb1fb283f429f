package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junoapp/juno-backend/internal/dto"
	apierrors "github.com/junoapp/juno-backend/internal/errors"
	"github.com/junoapp/juno-backend/internal/middleware"
	"github.com/junoapp/juno-backend/internal/models"
	"github.com/junoapp/juno-backend/internal/services"
)

// LocationHandler coordinates saved-location HTTP handlers.
type LocationHandler struct {
	locationService *services.LocationService
}

// NewLocationHandler creates a new LocationHandler.
func NewLocationHandler(locationService *services.LocationService) *LocationHandler {
	return &LocationHandler{
		locationService: locationService,
	}
}

// ListLocations lists the caller's saved places.
func (h *LocationHandler) ListLocations(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	locations, err := h.locationService.ListLocations(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to list locations")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"locations": dto.ToLocationDTOs(locations),
		"count":     len(locations),
	})
}

// SaveLocation stores a named place for the caller.
func (h *LocationHandler) SaveLocation(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	type SaveLocationRequest struct {
		Name      string              `json:"name" binding:"required"`
		Address   string              `json:"address" binding:"required"`
		Latitude  float64             `json:"latitude"`
		Longitude float64             `json:"longitude"`
		Type      models.LocationType `json:"type" binding:"required"`
	}

	var req SaveLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	location, err := h.locationService.SaveLocation(services.SaveLocationInput{
		OwnerID:   userID,
		Name:      req.Name,
		Address:   req.Address,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Type:      req.Type,
	})
	if err != nil {
		respondLocationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"location": dto.ToLocationDTO(*location),
	})
}

// DeleteLocation removes one of the caller's saved places.
func (h *LocationHandler) DeleteLocation(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	locationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.locationService.DeleteLocation(locationID, userID); err != nil {
		respondLocationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Location deleted",
	})
}

func respondLocationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrLocationNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidLocationType),
		errors.Is(err, services.ErrLocationNameRequired),
		errors.Is(err, services.ErrLocationAddrRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNotLocationOwner):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
