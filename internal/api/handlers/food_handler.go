package handlers

import (
	"FoodSaver-Backend/domain"
	"FoodSaver-Backend/internal/api/presenters"
	"FoodSaver-Backend/pkg/food"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	FoodHandler interface {
		CreateFoodItem(c *fiber.Ctx) error
		GetFoodItems(c *fiber.Ctx) error
		GetNearbyFoodItems(c *fiber.Ctx) error
		GetFoodItemDetails(c *fiber.Ctx) error
		GetMyFoodItems(c *fiber.Ctx) error
		UploadFoodImage(c *fiber.Ctx) error
		DeleteFoodItem(c *fiber.Ctx) error
	}

	foodHandler struct {
		foodService food.FoodService
		validator   *validator.Validate
	}
)

func NewFoodHandler(foodService food.FoodService, validator *validator.Validate) FoodHandler {
	return &foodHandler{
		foodService: foodService,
		validator:   validator,
	}
}

func (h *foodHandler) CreateFoodItem(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.CreateFoodItemRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateFoodItem, err)
	}

	res, err := h.foodService.CreateFoodItem(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedCreateFoodItem, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateFoodItem)
}

func (h *foodHandler) GetFoodItems(c *fiber.Ctx) error {
	items, err := h.foodService.GetAvailableFoodItems(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedGetFoodItems, err)
	}

	return presenters.SuccessResponse(c, items, fiber.StatusOK, domain.MessageSuccessGetFoodItems)
}

func (h *foodHandler) GetNearbyFoodItems(c *fiber.Ctx) error {
	req := new(domain.GetNearbyFoodItemsRequest)

	if err := c.QueryParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetNearbyFoodItems, err)
	}

	items, err := h.foodService.GetNearbyFoodItems(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedGetNearbyFoodItems, err)
	}

	return presenters.SuccessResponse(c, items, fiber.StatusOK, domain.MessageSuccessGetNearbyFoodItems)
}

func (h *foodHandler) GetFoodItemDetails(c *fiber.Ctx) error {
	item, err := h.foodService.GetFoodItemByID(c.Context(), c.Params("id"))
	if err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedGetFoodItem, err)
	}

	return presenters.SuccessResponse(c, item, fiber.StatusOK, domain.MessageSuccessGetFoodItem)
}

func (h *foodHandler) GetMyFoodItems(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	items, err := h.foodService.GetUserFoodItems(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedGetFoodItems, err)
	}

	return presenters.SuccessResponse(c, items, fiber.StatusOK, domain.MessageSuccessGetFoodItems)
}

func (h *foodHandler) UploadFoodImage(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	image, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	req := domain.UploadFoodImageRequest{
		FoodItemID: c.Params("id"),
		Image:      image,
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadFoodImage, err)
	}

	res, err := h.foodService.UploadFoodImage(c.Context(), req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedUploadFoodImage, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUploadFoodImage)
}

func (h *foodHandler) DeleteFoodItem(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	if err := h.foodService.DeleteFoodItem(c.Context(), c.Params("id"), userID); err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedDeleteFoodItem, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteFoodItem)
}
