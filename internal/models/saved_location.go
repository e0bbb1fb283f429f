package models

import "time"

type LocationType string

const (
	LocationTypeHome   LocationType = "home"
	LocationTypeWork   LocationType = "work"
	LocationTypeSchool LocationType = "school"
	LocationTypeOther  LocationType = "other"
)

// ValidLocationType reports whether t is one of the enumerated types.
func ValidLocationType(t LocationType) bool {
	switch t {
	case LocationTypeHome, LocationTypeWork, LocationTypeSchool, LocationTypeOther:
		return true
	}
	return false
}

type SavedLocation struct {
	ID        uint64       `gorm:"primarykey" json:"id"`
	OwnerID   uint64       `gorm:"not null;index" json:"owner_id"`
	Name      string       `gorm:"type:varchar(255);not null" json:"name"`
	Address   string       `gorm:"type:varchar(512);not null" json:"address"`
	Latitude  float64      `json:"latitude"`
	Longitude float64      `json:"longitude"`
	Type      LocationType `gorm:"type:varchar(20);not null" json:"type"`
	CreatedAt time.Time    `json:"created_at"`

	// Relations
	Owner User `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}
