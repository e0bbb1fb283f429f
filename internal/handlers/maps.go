package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/junoapp/juno-backend/internal/errors"
	"github.com/junoapp/juno-backend/internal/services"
)

// MapsHandler exposes the geocoding provider passthrough.
type MapsHandler struct {
	geocodingService *services.GeocodingService
}

// NewMapsHandler creates a new MapsHandler.
func NewMapsHandler(geocodingService *services.GeocodingService) *MapsHandler {
	return &MapsHandler{
		geocodingService: geocodingService,
	}
}

// Geocode resolves a free-text address to coordinate candidates.
func (h *MapsHandler) Geocode(c *gin.Context) {
	address := c.Query("address")
	if address == "" {
		apierrors.BadRequest(c, "Address required")
		return
	}

	results, err := h.geocodingService.Geocode(c.Request.Context(), address)
	if err != nil {
		respondMapsError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"locations": results,
		"count":     len(results),
	})
}

// Distance resolves driving distance and duration between two addresses.
func (h *MapsHandler) Distance(c *gin.Context) {
	origin := c.Query("origin")
	destination := c.Query("destination")
	if origin == "" || destination == "" {
		apierrors.BadRequest(c, "Origin and destination required")
		return
	}

	result, err := h.geocodingService.Distance(c.Request.Context(), origin, destination)
	if err != nil {
		respondMapsError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func respondMapsError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAddressNotFound),
		errors.Is(err, services.ErrRouteNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrProviderUnavailable):
		apierrors.BadGateway(c, err.Error())
	case errors.Is(err, services.ErrGeocodingNotConfigured):
		apierrors.InternalError(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
