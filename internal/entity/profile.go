package entity

import "time"

// Profile is a registered sales rep. ClerkID references the external
// identity provider record; historical Visit/Plan rows keep referencing
// the rep by display name.
type Profile struct {
	ID           string    `json:"id" gorm:"primaryKey;size:36"`
	ClerkID      string    `json:"clerkId" gorm:"size:64;not null;uniqueIndex"`
	Email        string    `json:"email" gorm:"size:200"`
	ProfileImage string    `json:"profileImage" gorm:"size:500"`
	Name         string    `json:"name" gorm:"size:100;not null"`
	Phone        string    `json:"phone" gorm:"size:20"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}
