package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junoapp/juno-backend/internal/dto"
	apierrors "github.com/junoapp/juno-backend/internal/errors"
	"github.com/junoapp/juno-backend/internal/middleware"
	"github.com/junoapp/juno-backend/internal/services"
)

// ProfileHandler coordinates profile HTTP handlers.
type ProfileHandler struct {
	profileService *services.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

// GetProfile returns the caller's full profile.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	user, err := h.profileService.GetProfile(userID)
	if err != nil {
		respondProfileError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile": dto.ToProfileDTO(*user),
	})
}

// UpdateProfile applies a partial update to the caller's profile.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	type UpdateProfileRequest struct {
		Username            *string `json:"username"`
		FirstName           *string `json:"first_name"`
		LastName            *string `json:"last_name"`
		Bio                 *string `json:"bio"`
		Mood                *string `json:"mood"`
		School              *string `json:"school"`
		ClassYear           *string `json:"class_year"`
		Major               *string `json:"major"`
		ProfilePictureURL   *string `json:"profile_picture_url"`
		CarMake             *string `json:"car_make"`
		CarModel            *string `json:"car_model"`
		CarYear             *int    `json:"car_year"`
		CarColor            *string `json:"car_color"`
		CarMaxPassengers    *int    `json:"car_max_passengers"`
		OnboardingCompleted *bool   `json:"onboarding_completed"`
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.profileService.UpdateProfile(userID, services.UpdateProfileInput{
		Username:            req.Username,
		FirstName:           req.FirstName,
		LastName:            req.LastName,
		Bio:                 req.Bio,
		Mood:                req.Mood,
		School:              req.School,
		ClassYear:           req.ClassYear,
		Major:               req.Major,
		ProfilePictureURL:   req.ProfilePictureURL,
		CarMake:             req.CarMake,
		CarModel:            req.CarModel,
		CarYear:             req.CarYear,
		CarColor:            req.CarColor,
		CarMaxPassengers:    req.CarMaxPassengers,
		OnboardingCompleted: req.OnboardingCompleted,
	})
	if err != nil {
		respondProfileError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile": dto.ToProfileDTO(*user),
	})
}

func respondProfileError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrUsernameTooShort),
		errors.Is(err, services.ErrOnboardingRevert):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrUsernameTaken):
		apierrors.Conflict(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
