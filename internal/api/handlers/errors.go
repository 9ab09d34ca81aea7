package handlers

import (
	"FoodSaver-Backend/domain"
	"FoodSaver-Backend/internal/utils/storage"
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// errorStatus maps service errors to HTTP status codes. Anything unknown
// stays a 400.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrFoodItemNotFound),
		errors.Is(err, domain.ErrTransactionNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorizedAccess),
		errors.Is(err, domain.ErrUnauthorizedTransaction):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrFoodItemNotAvailable),
		errors.Is(err, domain.ErrTransactionAlreadyProcessing),
		errors.Is(err, gorm.ErrForeignKeyViolated):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrInvalidIDToken),
		errors.Is(err, domain.ErrMissingIDToken),
		errors.Is(err, domain.ErrInvalidOAuthState),
		errors.Is(err, domain.ErrTokenExchangeFailed),
		errors.Is(err, domain.ErrTokenInvalid),
		errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrTokenRevoked):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrOAuthNotConfigured),
		errors.Is(err, storage.ErrStorageNotConfigured):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusBadRequest
	}
}
