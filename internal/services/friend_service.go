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
	ErrSelfFriendRequest   = errors.New("cannot send a friend request to yourself")
	ErrFriendshipExists    = errors.New("friendship or pending request already exists")
	ErrRequestNotFound     = errors.New("friend request not found")
	ErrNotRequestRecipient = errors.New("only the recipient can accept this request")
	ErrNotRequestParty     = errors.New("only the requester or recipient can remove this request")
	ErrRequestNotPending   = errors.New("friend request is not pending")
)

// FriendService manages friend requests and friend-aware lookups.
type FriendService struct {
	friendRepo repository.FriendshipRepository
	userRepo   repository.UserRepository
}

// NewFriendService creates a new FriendService.
func NewFriendService(friendRepo repository.FriendshipRepository, userRepo repository.UserRepository) *FriendService {
	return &FriendService{
		friendRepo: friendRepo,
		userRepo:   userRepo,
	}
}

// SearchUsers finds users matching the query, excluding the viewer. An empty
// query yields an empty list, not an error.
func (s *FriendService) SearchUsers(viewerID uint64, query string) ([]models.User, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.User{}, nil
	}

	users, err := s.userRepo.Search(query, viewerID, constants.SearchResultLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	return users, nil
}

// SendRequest creates a pending friendship toward the recipient, addressed
// either by id or by username.
func (s *FriendService) SendRequest(requesterID uint64, recipientID uint64, recipientUsername string) (*models.Friendship, error) {
	if recipientID == 0 && recipientUsername != "" {
		recipient, err := s.userRepo.FindByUsername(strings.TrimSpace(recipientUsername))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, fmt.Errorf("failed to find user: %w", err)
		}
		recipientID = recipient.ID
	}

	if recipientID == requesterID {
		return nil, ErrSelfFriendRequest
	}

	if _, err := s.userRepo.FindByID(recipientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if _, err := s.friendRepo.FindBetween(requesterID, recipientID); err == nil {
		return nil, ErrFriendshipExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check friendship: %w", err)
	}

	friendship := &models.Friendship{
		RequesterID: requesterID,
		RecipientID: recipientID,
		Status:      models.FriendshipPending,
	}
	if err := s.friendRepo.Create(friendship); err != nil {
		// Unique index backstop for a racing duplicate.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrFriendshipExists
		}
		return nil, fmt.Errorf("failed to create friendship: %w", err)
	}

	return friendship, nil
}

// AcceptRequest transitions a pending request to accepted. Recipient only.
func (s *FriendService) AcceptRequest(friendshipID, recipientID uint64) error {
	friendship, err := s.friendRepo.FindByID(friendshipID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRequestNotFound
		}
		return fmt.Errorf("failed to find friendship: %w", err)
	}

	if friendship.RecipientID != recipientID {
		return ErrNotRequestRecipient
	}
	if friendship.Status != models.FriendshipPending {
		return ErrRequestNotPending
	}

	err = s.friendRepo.Accept(friendshipID, recipientID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrRequestNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to accept friendship: %w", err)
	}
	return nil
}

// DeclineRequest removes a pending request. The recipient declines it, or
// the requester withdraws it.
func (s *FriendService) DeclineRequest(friendshipID, actorID uint64) error {
	friendship, err := s.friendRepo.FindByID(friendshipID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRequestNotFound
		}
		return fmt.Errorf("failed to find friendship: %w", err)
	}

	if friendship.RecipientID != actorID && friendship.RequesterID != actorID {
		return ErrNotRequestParty
	}
	if friendship.Status != models.FriendshipPending {
		return ErrRequestNotPending
	}

	if err := s.friendRepo.Delete(friendshipID); err != nil {
		return fmt.Errorf("failed to delete friendship: %w", err)
	}
	return nil
}

// ListFriends lists users linked to userID by an accepted friendship.
func (s *FriendService) ListFriends(userID uint64) ([]models.User, error) {
	friends, err := s.friendRepo.ListFriends(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list friends: %w", err)
	}
	return friends, nil
}

// ListPendingRequests lists pending requests addressed to the user.
func (s *FriendService) ListPendingRequests(userID uint64) ([]models.Friendship, error) {
	requests, err := s.friendRepo.ListPendingFor(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list friend requests: %w", err)
	}
	return requests, nil
}

// IsFriend reports whether an accepted friendship links the two users.
func (s *FriendService) IsFriend(userA, userB uint64) (bool, error) {
	return s.friendRepo.AreFriends(userA, userB)
}
