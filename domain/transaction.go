package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessCreateTransaction       = "food item reserved successfully"
	MessageSuccessGetTransactions         = "transactions retrieved successfully"
	MessageSuccessUpdateTransactionStatus = "transaction status updated successfully"

	MessageFailedCreateTransaction       = "failed to reserve food item"
	MessageFailedGetTransactions         = "failed to retrieve transactions"
	MessageFailedUpdateTransactionStatus = "failed to update transaction status"

	ErrTransactionNotFound          = errors.New("transaction not found")
	ErrReserveOwnItem               = errors.New("cannot reserve your own food item")
	ErrInvalidTransactionStatus     = errors.New("invalid transaction status transition")
	ErrUnauthorizedTransaction      = errors.New("unauthorized access to transaction")
	ErrTransactionAlreadyProcessing = errors.New("transaction was changed by another request")
)

type (
	CreateTransactionRequest struct {
		FoodItemID string `json:"food_item_id" validate:"required,uuid"`
	}

	UpdateTransactionStatusRequest struct {
		Status string `json:"status" validate:"required,oneof=accepted completed cancelled"`
	}

	TransactionResponse struct {
		ID         string            `json:"id"`
		FoodItemID string            `json:"food_item_id"`
		FoodItem   *FoodItemResponse `json:"food_item,omitempty"`
		DonorID    string            `json:"donor_id"`
		ReceiverID string            `json:"receiver_id"`
		Status     string            `json:"status"`
		CreatedAt  time.Time         `json:"created_at"`
		UpdatedAt  time.Time         `json:"updated_at"`
	}
)
