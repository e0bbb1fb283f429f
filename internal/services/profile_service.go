package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/junoapp/juno-backend/internal/constants"
	"github.com/junoapp/juno-backend/internal/models"
	"github.com/junoapp/juno-backend/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrOnboardingRevert = errors.New("onboarding completion cannot be reverted")
)

// ProfileService handles reads and partial updates of a user's own profile.
type ProfileService struct {
	userRepo repository.UserRepository
}

// NewProfileService creates a new ProfileService.
func NewProfileService(userRepo repository.UserRepository) *ProfileService {
	return &ProfileService{
		userRepo: userRepo,
	}
}

// GetProfile returns the full profile projection for a user.
func (s *ProfileService) GetProfile(userID uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// UpdateProfileInput carries a partial update; nil fields are left untouched.
type UpdateProfileInput struct {
	Username            *string
	FirstName           *string
	LastName            *string
	Bio                 *string
	Mood                *string
	School              *string
	ClassYear           *string
	Major               *string
	ProfilePictureURL   *string
	CarMake             *string
	CarModel            *string
	CarYear             *int
	CarColor            *string
	CarMaxPassengers    *int
	OnboardingCompleted *bool
}

// UpdateProfile applies a partial update. The onboarding flag is
// server-authoritative and one-way: once true it never reverts.
func (s *ProfileService) UpdateProfile(userID uint64, input UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if input.Username != nil {
		username := strings.TrimSpace(*input.Username)
		if len(username) < constants.MinUsernameLength {
			return nil, ErrUsernameTooShort
		}
		if username != user.Username {
			taken, err := s.userRepo.UsernameTaken(username, userID)
			if err != nil {
				return nil, fmt.Errorf("failed to check username: %w", err)
			}
			if taken {
				return nil, ErrUsernameTaken
			}
			user.Username = username
		}
	}

	if input.FirstName != nil {
		user.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		user.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.Mood != nil {
		user.Mood = *input.Mood
	}
	if input.School != nil {
		user.School = *input.School
	}
	if input.ClassYear != nil {
		user.ClassYear = *input.ClassYear
	}
	if input.Major != nil {
		user.Major = *input.Major
	}
	if input.ProfilePictureURL != nil {
		user.ProfilePictureURL = *input.ProfilePictureURL
	}
	if input.CarMake != nil {
		user.CarMake = *input.CarMake
	}
	if input.CarModel != nil {
		user.CarModel = *input.CarModel
	}
	if input.CarYear != nil {
		user.CarYear = *input.CarYear
	}
	if input.CarColor != nil {
		user.CarColor = *input.CarColor
	}
	if input.CarMaxPassengers != nil {
		user.CarMaxPassengers = *input.CarMaxPassengers
	}
	if input.OnboardingCompleted != nil {
		if user.OnboardingCompleted && !*input.OnboardingCompleted {
			return nil, ErrOnboardingRevert
		}
		user.OnboardingCompleted = *input.OnboardingCompleted
	}

	if err := s.userRepo.Update(user); err != nil {
		// The unique index is the backstop for a racing username change.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return user, nil
}
