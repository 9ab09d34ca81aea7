package entities

import (
	"github.com/google/uuid"
	"time"
)

const (
	FoodStatusAvailable = "available"
	FoodStatusReserved  = "reserved"
	FoodStatusCompleted = "completed"
)

type FoodItem struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;index" json:"user_id"`
	Title       string     `json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Images      StringList `gorm:"type:jsonb" json:"images"`
	ExpiryDate  time.Time  `json:"expiry_date"`
	Location    Location   `gorm:"embedded;embeddedPrefix:location_" json:"location"`
	Status      string     `gorm:"index" json:"status"` // available, reserved, completed

	User *UserProfile `gorm:"foreignKey:UserID"`
	Timestamp
}
