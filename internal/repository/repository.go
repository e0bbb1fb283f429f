package repository

import (
	"github.com/junoapp/juno-backend/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// Update persists changes to a user
	Update(user *models.User) error

	// UsernameTaken reports whether a username belongs to a user other than excludeID
	UsernameTaken(username string, excludeID uint64) (bool, error)

	// Search finds users matching a case-insensitive substring of
	// username, first name, last name, or email, excluding excludeID
	Search(query string, excludeID uint64, limit int) ([]models.User, error)
}

// RideRepository defines the interface for ride and membership data access
type RideRepository interface {
	// Create creates a new ride
	Create(ride *models.Ride) error

	// FindByID finds a ride by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Ride, error)

	// ListVisible lists active, upcoming rides the viewer may see: public
	// rides, the viewer's own rides, and friends-only rides of accepted
	// friends. Ordered by departure time ascending.
	ListVisible(viewerID uint64) ([]models.Ride, error)

	// Join atomically claims a seat and records the membership. Returns
	// ErrAlreadyJoined, ErrRideFull, or gorm.ErrRecordNotFound when the
	// ride is missing or no longer active.
	Join(rideID, passengerID uint64) error

	// Leave releases the passenger's seat. Returns gorm.ErrRecordNotFound
	// when no active membership exists.
	Leave(rideID, passengerID uint64) error

	// UpdateStatus transitions a ride out of the active state. Returns
	// gorm.ErrRecordNotFound when the ride is not active.
	UpdateStatus(rideID uint64, to models.RideStatus) error
}

// FriendshipRepository defines the interface for friendship data access
type FriendshipRepository interface {
	// Create creates a new friendship row
	Create(friendship *models.Friendship) error

	// FindByID finds a friendship by ID
	FindByID(id uint64) (*models.Friendship, error)

	// FindBetween finds the friendship between two users in either direction
	FindBetween(userA, userB uint64) (*models.Friendship, error)

	// Accept transitions a pending request addressed to recipientID to
	// accepted. Returns gorm.ErrRecordNotFound when no matching pending
	// row exists.
	Accept(id, recipientID uint64) error

	// Delete removes a friendship row
	Delete(id uint64) error

	// ListFriends lists the users on the other side of accepted friendships
	ListFriends(userID uint64) ([]models.User, error)

	// ListPendingFor lists pending requests addressed to the user
	ListPendingFor(userID uint64) ([]models.Friendship, error)

	// AreFriends reports whether an accepted friendship links the two users
	AreFriends(userA, userB uint64) (bool, error)
}

// LocationRepository defines the interface for saved location data access
type LocationRepository interface {
	// Create creates a new saved location
	Create(location *models.SavedLocation) error

	// FindByID finds a saved location by ID
	FindByID(id uint64) (*models.SavedLocation, error)

	// ListByOwner lists all locations owned by a user
	ListByOwner(ownerID uint64) ([]models.SavedLocation, error)

	// Delete removes a saved location
	Delete(id uint64) error
}
