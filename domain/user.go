package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetProfile    = "user profile retrieved successfully"
	MessageSuccessUpdateProfile = "user profile updated successfully"

	MessageFailedGetProfile    = "failed to fetch user profile"
	MessageFailedUpdateProfile = "failed to update user profile"

	ErrUserNotFound = errors.New("user not found")
)

type (
	UpdateProfileRequest struct {
		DisplayName string   `json:"display_name" validate:"omitempty,max=100"`
		PhotoURL    string   `json:"photo_url" validate:"omitempty,url"`
		Address     string   `json:"address" validate:"omitempty"`
		Latitude    *float64 `json:"latitude" validate:"omitempty,min=-90,max=90"`
		Longitude   *float64 `json:"longitude" validate:"omitempty,min=-180,max=180"`
	}

	UserStats struct {
		ItemsShared   int `json:"items_shared"`
		ItemsReceived int `json:"items_received"`
		FoodSaved     int `json:"food_saved"`
	}

	UserProfileResponse struct {
		ID          string    `json:"id"`
		Email       string    `json:"email"`
		DisplayName string    `json:"display_name"`
		PhotoURL    string    `json:"photo_url"`
		Location    Location  `json:"location"`
		Stats       UserStats `json:"stats"`
		CreatedAt   time.Time `json:"created_at"`
		UpdatedAt   time.Time `json:"updated_at"`
	}
)
