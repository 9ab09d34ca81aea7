package handlers

import (
	"FoodSaver-Backend/domain"
	"FoodSaver-Backend/internal/api/presenters"
	"FoodSaver-Backend/pkg/transaction"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	TransactionHandler interface {
		CreateTransaction(c *fiber.Ctx) error
		GetTransactions(c *fiber.Ctx) error
		UpdateTransactionStatus(c *fiber.Ctx) error
	}

	transactionHandler struct {
		transactionService transaction.TransactionService
		validator          *validator.Validate
	}
)

func NewTransactionHandler(transactionService transaction.TransactionService, validator *validator.Validate) TransactionHandler {
	return &transactionHandler{
		transactionService: transactionService,
		validator:          validator,
	}
}

func (h *transactionHandler) CreateTransaction(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.CreateTransactionRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateTransaction, err)
	}

	res, err := h.transactionService.CreateTransaction(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedCreateTransaction, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateTransaction)
}

func (h *transactionHandler) GetTransactions(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.transactionService.GetUserTransactions(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedGetTransactions, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetTransactions)
}

func (h *transactionHandler) UpdateTransactionStatus(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.UpdateTransactionStatusRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateTransactionStatus, err)
	}

	res, err := h.transactionService.UpdateTransactionStatus(c.Context(), c.Params("id"), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedUpdateTransactionStatus, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateTransactionStatus)
}
