package handlers

import (
	"FoodSaver-Backend/domain"
	"FoodSaver-Backend/internal/api/presenters"
	"FoodSaver-Backend/pkg/tips"

	"github.com/gofiber/fiber/v2"
)

type (
	TipsHandler interface {
		GetTips(c *fiber.Ctx) error
	}

	tipsHandler struct {
		tipService tips.TipService
	}
)

func NewTipsHandler(tipService tips.TipService) TipsHandler {
	return &tipsHandler{tipService: tipService}
}

func (h *tipsHandler) GetTips(c *fiber.Ctx) error {
	res, err := h.tipService.GetTips(c.Context(), c.Query("category"))
	if err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedGetTips, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetTips)
}
