package repository

import (
	"github.com/junoapp/juno-backend/internal/models"
	"gorm.io/gorm"
)

// GormFriendshipRepository is a GORM implementation of FriendshipRepository
type GormFriendshipRepository struct {
	db *gorm.DB
}

// NewFriendshipRepository creates a new FriendshipRepository
func NewFriendshipRepository(db *gorm.DB) FriendshipRepository {
	return &GormFriendshipRepository{db: db}
}

// Create creates a new friendship row
func (r *GormFriendshipRepository) Create(friendship *models.Friendship) error {
	return r.db.Create(friendship).Error
}

// FindByID finds a friendship by ID
func (r *GormFriendshipRepository) FindByID(id uint64) (*models.Friendship, error) {
	var friendship models.Friendship
	if err := r.db.First(&friendship, id).Error; err != nil {
		return nil, err
	}
	return &friendship, nil
}

// FindBetween finds the friendship between two users in either direction
func (r *GormFriendshipRepository) FindBetween(userA, userB uint64) (*models.Friendship, error) {
	var friendship models.Friendship
	err := r.db.Where(
		"(requester_id = ? AND recipient_id = ?) OR (requester_id = ? AND recipient_id = ?)",
		userA, userB, userB, userA,
	).First(&friendship).Error
	if err != nil {
		return nil, err
	}
	return &friendship, nil
}

// Accept transitions a pending request addressed to recipientID to accepted.
// The conditional update makes acceptance idempotent-safe under races: only
// one caller observes an affected row.
func (r *GormFriendshipRepository) Accept(id, recipientID uint64) error {
	res := r.db.Model(&models.Friendship{}).
		Where("id = ? AND recipient_id = ? AND status = ?", id, recipientID, models.FriendshipPending).
		Update("status", models.FriendshipAccepted)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a friendship row
func (r *GormFriendshipRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Friendship{}, id).Error
}

// ListFriends lists the users on the other side of accepted friendships
func (r *GormFriendshipRepository) ListFriends(userID uint64) ([]models.User, error) {
	var users []models.User
	err := r.db.Model(&models.User{}).
		Joins(`JOIN friendships ON (
			(friendships.requester_id = ? AND friendships.recipient_id = users.id) OR
			(friendships.recipient_id = ? AND friendships.requester_id = users.id)
		)`, userID, userID).
		Where("friendships.status = ?", models.FriendshipAccepted).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// ListPendingFor lists pending requests addressed to the user, newest first
func (r *GormFriendshipRepository) ListPendingFor(userID uint64) ([]models.Friendship, error) {
	var requests []models.Friendship
	err := r.db.Preload("Requester").
		Where("recipient_id = ? AND status = ?", userID, models.FriendshipPending).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// AreFriends reports whether an accepted friendship links the two users
func (r *GormFriendshipRepository) AreFriends(userA, userB uint64) (bool, error) {
	var count int64
	err := r.db.Model(&models.Friendship{}).
		Where(
			"((requester_id = ? AND recipient_id = ?) OR (requester_id = ? AND recipient_id = ?)) AND status = ?",
			userA, userB, userB, userA, models.FriendshipAccepted,
		).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
