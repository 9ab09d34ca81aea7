package entities

import (
	"github.com/google/uuid"
)

const (
	TransactionStatusPending   = "pending"
	TransactionStatusAccepted  = "accepted"
	TransactionStatusCompleted = "completed"
	TransactionStatusCancelled = "cancelled"
)

type Transaction struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	FoodItemID uuid.UUID `gorm:"type:uuid;index" json:"food_item_id"`
	DonorID    uuid.UUID `gorm:"type:uuid;index" json:"donor_id"`
	ReceiverID uuid.UUID `gorm:"type:uuid;index" json:"receiver_id"`
	Status     string    `gorm:"index" json:"status"` // pending, accepted, completed, cancelled

	FoodItem *FoodItem    `gorm:"foreignKey:FoodItemID"`
	Donor    *UserProfile `gorm:"foreignKey:DonorID"`
	Receiver *UserProfile `gorm:"foreignKey:ReceiverID"`
	Timestamp
}
