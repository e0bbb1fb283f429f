package models

import "time"

type FriendshipStatus string

const (
	FriendshipPending  FriendshipStatus = "pending"
	FriendshipAccepted FriendshipStatus = "accepted"
)

// Friendship is directed while pending and treated as symmetric once
// accepted. At most one row exists per user pair, in either direction.
type Friendship struct {
	ID          uint64           `gorm:"primarykey" json:"id"`
	RequesterID uint64           `gorm:"not null;uniqueIndex:idx_friendships_pair" json:"requester_id"`
	RecipientID uint64           `gorm:"not null;uniqueIndex:idx_friendships_pair" json:"recipient_id"`
	Status      FriendshipStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt   time.Time        `json:"created_at"`

	// Relations
	Requester User `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
	Recipient User `gorm:"foreignKey:RecipientID" json:"recipient,omitempty"`
}
