package dto

import (
	"time"

	"github.com/junoapp/juno-backend/internal/models"
)

// UserDTO is the public user projection used in search results, friend
// lists, and ride driver info.
type UserDTO struct {
	ID                uint64 `json:"id"`
	Username          string `json:"username"`
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	ProfilePictureURL string `json:"profile_picture_url,omitempty"`
	School            string `json:"school,omitempty"`
	ClassYear         string `json:"class_year,omitempty"`
}

// ProfileDTO is the caller's own full profile projection.
type ProfileDTO struct {
	ID                  uint64    `json:"id"`
	Username            string    `json:"username"`
	Email               string    `json:"email"`
	FirstName           string    `json:"first_name"`
	LastName            string    `json:"last_name"`
	ProfilePictureURL   string    `json:"profile_picture_url"`
	School              string    `json:"school"`
	ClassYear           string    `json:"class_year"`
	Major               string    `json:"major"`
	Bio                 string    `json:"bio"`
	Mood                string    `json:"mood"`
	CarMake             string    `json:"car_make"`
	CarModel            string    `json:"car_model"`
	CarYear             int       `json:"car_year"`
	CarColor            string    `json:"car_color"`
	CarMaxPassengers    int       `json:"car_max_passengers"`
	HasVehicle          bool      `json:"has_vehicle"`
	OnboardingCompleted bool      `json:"onboarding_completed"`
	CreatedAt           time.Time `json:"created_at"`
}

// ToUserDTO converts a User model to its public projection.
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:                user.ID,
		Username:          user.Username,
		FirstName:         user.FirstName,
		LastName:          user.LastName,
		ProfilePictureURL: user.ProfilePictureURL,
		School:            user.School,
		ClassYear:         user.ClassYear,
	}
}

// ToProfileDTO converts a User model to the owner-visible projection.
func ToProfileDTO(user models.User) ProfileDTO {
	return ProfileDTO{
		ID:                  user.ID,
		Username:            user.Username,
		Email:               user.Email,
		FirstName:           user.FirstName,
		LastName:            user.LastName,
		ProfilePictureURL:   user.ProfilePictureURL,
		School:              user.School,
		ClassYear:           user.ClassYear,
		Major:               user.Major,
		Bio:                 user.Bio,
		Mood:                user.Mood,
		CarMake:             user.CarMake,
		CarModel:            user.CarModel,
		CarYear:             user.CarYear,
		CarColor:            user.CarColor,
		CarMaxPassengers:    user.CarMaxPassengers,
		HasVehicle:          user.HasVehicle(),
		OnboardingCompleted: user.OnboardingCompleted,
		CreatedAt:           user.CreatedAt,
	}
}
