package entities

import (
	"github.com/google/uuid"
	"time"
)

const ProviderGoogle = "google"

type UserProfile struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Provider     string     `gorm:"uniqueIndex:idx_user_profiles_provider_uid" json:"provider"`
	ProviderUID  string     `gorm:"uniqueIndex:idx_user_profiles_provider_uid" json:"provider_uid"`
	Email        string     `gorm:"index" json:"email"`
	DisplayName  string     `json:"display_name"`
	PhotoURL     string     `json:"photo_url"`
	Location     Location   `gorm:"embedded;embeddedPrefix:location_" json:"location"`
	Stats        UserStats  `gorm:"embedded;embeddedPrefix:stats_" json:"stats"`
	LastSignInAt *time.Time `json:"last_sign_in_at,omitempty"`

	FoodItems []*FoodItem `gorm:"foreignKey:UserID"`
	Timestamp
}

type UserStats struct {
	ItemsShared   int `gorm:"not null;default:0" json:"items_shared"`
	ItemsReceived int `gorm:"not null;default:0" json:"items_received"`
	FoodSaved     int `gorm:"not null;default:0" json:"food_saved"`
}
