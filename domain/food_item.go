package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessCreateFoodItem     = "food item shared successfully"
	MessageSuccessGetFoodItems       = "food items retrieved successfully"
	MessageSuccessGetFoodItem        = "food item retrieved successfully"
	MessageSuccessGetNearbyFoodItems = "nearby food items retrieved successfully"
	MessageSuccessUploadFoodImage    = "food image uploaded successfully"
	MessageSuccessDeleteFoodItem     = "food item removed successfully"

	MessageFailedCreateFoodItem     = "failed to share food item"
	MessageFailedGetFoodItems       = "failed to load food items"
	MessageFailedGetFoodItem        = "failed to retrieve food item"
	MessageFailedGetNearbyFoodItems = "failed to retrieve nearby food items"
	MessageFailedUploadFoodImage    = "failed to upload food image"
	MessageFailedDeleteFoodItem     = "failed to remove food item"

	ErrFoodItemNotFound     = errors.New("food item not found")
	ErrFoodItemNotAvailable = errors.New("food item is no longer available")
	ErrInvalidExpiryDate    = errors.New("invalid expiry date")
	ErrInvalidImageFormat   = errors.New("invalid image format")
	ErrInvalidCoordinates   = errors.New("invalid coordinates")
	ErrUnauthorizedAccess   = errors.New("unauthorized access to food item")
)

type (
	CreateFoodItemRequest struct {
		Title       string  `json:"title" validate:"required"`
		Description string  `json:"description" validate:"required"`
		ExpiryDate  string  `json:"expiry_date" validate:"required"`
		Address     string  `json:"address" validate:"required"`
		Latitude    float64 `json:"latitude" validate:"min=-90,max=90"`
		Longitude   float64 `json:"longitude" validate:"min=-180,max=180"`
	}

	GetNearbyFoodItemsRequest struct {
		Latitude  float64 `json:"latitude" query:"lat" validate:"min=-90,max=90"`
		Longitude float64 `json:"longitude" query:"lng" validate:"min=-180,max=180"`
		Radius    float64 `json:"radius" query:"radius" validate:"required,gt=0,max=100"`
	}

	UploadFoodImageRequest struct {
		FoodItemID string                `json:"food_id" validate:"required,uuid"`
		Image      *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}

	FoodItemResponse struct {
		ID          string    `json:"id"`
		UserID      string    `json:"user_id"`
		Title       string    `json:"title"`
		Description string    `json:"description"`
		Images      []string  `json:"images"`
		ExpiryDate  time.Time `json:"expiry_date"`
		Location    Location  `json:"location"`
		Status      string    `json:"status"`
		Distance    *float64  `json:"distance,omitempty"` // in km
		CreatedAt   time.Time `json:"created_at"`
		UpdatedAt   time.Time `json:"updated_at"`
	}
)
