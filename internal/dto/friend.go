package dto

import (
	"time"

	"github.com/junoapp/juno-backend/internal/models"
)

// FriendRequestDTO represents a pending friend request in API responses.
type FriendRequestDTO struct {
	ID          uint64                  `json:"id"`
	RequesterID uint64                  `json:"requester_id"`
	RecipientID uint64                  `json:"recipient_id"`
	Status      models.FriendshipStatus `json:"status"`
	CreatedAt   time.Time               `json:"created_at"`
	Requester   *UserDTO                `json:"requester,omitempty"`
}

// ToFriendRequestDTO converts a Friendship model to FriendRequestDTO.
func ToFriendRequestDTO(friendship models.Friendship) FriendRequestDTO {
	dto := FriendRequestDTO{
		ID:          friendship.ID,
		RequesterID: friendship.RequesterID,
		RecipientID: friendship.RecipientID,
		Status:      friendship.Status,
		CreatedAt:   friendship.CreatedAt,
	}

	if friendship.Requester.ID != 0 {
		requester := ToUserDTO(friendship.Requester)
		dto.Requester = &requester
	}

	return dto
}

// ToUserDTOs converts a slice of users to their public projections.
func ToUserDTOs(users []models.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i, user := range users {
		dtos[i] = ToUserDTO(user)
	}
	return dtos
}
