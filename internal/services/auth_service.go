package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/junoapp/juno-backend/internal/constants"
	"github.com/junoapp/juno-backend/internal/models"
	"github.com/junoapp/juno-backend/internal/repository"
	"github.com/junoapp/juno-backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUsernameTooShort     = errors.New("username too short")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrInvalidEmail         = errors.New("invalid email address")
	ErrUsernameTaken        = errors.New("username already exists")
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrUserNotFound         = errors.New("user not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// AuthService handles sign-up, login, and provider identity resolution.
type AuthService struct {
	userRepo repository.UserRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{
		userRepo: userRepo,
	}
}

// SignupInput represents the required information to create a new user.
type SignupInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Signup creates a new password-backed user.
func (s *AuthService) Signup(input SignupInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(strings.ToLower(input.Email))

	if len(username) < constants.MinUsernameLength {
		return nil, ErrUsernameTooShort
	}
	if !emailPattern.MatchString(email) {
		return nil, ErrInvalidEmail
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.userRepo.FindByUsername(username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
	}

	if err := s.userRepo.Create(user); err != nil {
		// A racing insert can still hit the unique indexes.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and returns the authenticated user.
func (s *AuthService) Login(email, password string) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if user.PasswordHash == "" {
		// Provider-only account.
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// ProviderProfile is the identity assertion received from the OAuth provider.
type ProviderProfile struct {
	ProviderID string
	Email      string
	FirstName  string
	LastName   string
	PictureURL string
}

// ResolveOrCreateFromProvider looks up the user by email and creates one on
// first login. Idempotent: the same email always resolves to the same user.
// The username is derived from the email local part, with a random suffix on
// collision.
func (s *AuthService) ResolveOrCreateFromProvider(profile ProviderProfile) (*models.User, error) {
	email := strings.TrimSpace(strings.ToLower(profile.Email))
	if !emailPattern.MatchString(email) {
		return nil, ErrInvalidEmail
	}

	user, err := s.userRepo.FindByEmail(email)
	if err == nil {
		changed := false
		if user.GoogleID != profile.ProviderID {
			user.GoogleID = profile.ProviderID
			changed = true
		}
		if user.ProfilePictureURL == "" && profile.PictureURL != "" {
			user.ProfilePictureURL = profile.PictureURL
			changed = true
		}
		if changed {
			if err := s.userRepo.Update(user); err != nil {
				return nil, fmt.Errorf("failed to update provider fields: %w", err)
			}
		}
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	username, err := s.availableUsername(utils.UsernameFromEmail(email))
	if err != nil {
		return nil, err
	}

	user = &models.User{
		Username:          username,
		Email:             email,
		GoogleID:          profile.ProviderID,
		FirstName:         profile.FirstName,
		LastName:          profile.LastName,
		ProfilePictureURL: profile.PictureURL,
	}
	if err := s.userRepo.Create(user); err != nil {
		// Lost a race against another callback for the same email: resolve
		// to the row that won.
		if existing, findErr := s.userRepo.FindByEmail(email); findErr == nil {
			return existing, nil
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func (s *AuthService) availableUsername(base string) (string, error) {
	if len(base) < constants.MinUsernameLength {
		base = base + "-rider"
	}

	candidate := base
	for attempt := 0; attempt < 5; attempt++ {
		_, err := s.userRepo.FindByUsername(candidate)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to check username: %w", err)
		}
		candidate = utils.WithRandomSuffix(base)
	}
	return "", ErrUsernameTaken
}
