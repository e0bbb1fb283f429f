package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID       uint64 `gorm:"primarykey" json:"id"`
	Username string `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	Email    string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	// Empty for provider-authenticated accounts.
	PasswordHash string `gorm:"type:varchar(255)" json:"-"`
	GoogleID     string `gorm:"type:varchar(64);index" json:"-"`

	FirstName         string `gorm:"type:varchar(100)" json:"first_name"`
	LastName          string `gorm:"type:varchar(100)" json:"last_name"`
	ProfilePictureURL string `gorm:"type:varchar(512)" json:"profile_picture_url"`
	School            string `gorm:"type:varchar(255)" json:"school"`
	ClassYear         string `gorm:"type:varchar(20)" json:"class_year"`
	Major             string `gorm:"type:varchar(255)" json:"major"`
	Bio               string `gorm:"type:text" json:"bio"`
	Mood              string `gorm:"type:varchar(100)" json:"mood"`

	// Vehicle fields
	CarMake          string `gorm:"type:varchar(100)" json:"car_make"`
	CarModel         string `gorm:"type:varchar(100)" json:"car_model"`
	CarYear          int    `json:"car_year"`
	CarColor         string `gorm:"type:varchar(50)" json:"car_color"`
	CarMaxPassengers int    `json:"car_max_passengers"`

	OnboardingCompleted bool `gorm:"not null;default:false" json:"onboarding_completed"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Rides          []Ride           `gorm:"foreignKey:DriverID" json:"-"`
	Memberships    []RideMembership `gorm:"foreignKey:PassengerID" json:"-"`
	SavedLocations []SavedLocation  `gorm:"foreignKey:OwnerID" json:"-"`
}

// HasVehicle reports whether the user has entered enough vehicle info to
// offer rides.
func (u *User) HasVehicle() bool {
	return u.CarMake != "" && u.CarModel != ""
}
