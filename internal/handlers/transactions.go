package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/splitkaro/backend/internal/middleware"
	"github.com/splitkaro/backend/internal/models"
	"github.com/splitkaro/backend/internal/service"
)

type TransactionsHandler struct {
	txns *service.TransactionService
}

func NewTransactionsHandler(txns *service.TransactionService) *TransactionsHandler {
	return &TransactionsHandler{txns: txns}
}

type transactionRequest struct {
	Type        string             `json:"type"`
	Amount      float64            `json:"amount"`
	Description string             `json:"description"`
	Category    string             `json:"category"`
	Shares      map[string]float64 `json:"shares"`
	FromUserID  string             `json:"fromUserId"`
	ToUserID    string             `json:"toUserId"`
}

func (r *transactionRequest) toInput() service.TransactionInput {
	txnType := models.TransactionType(r.Type)
	if r.Type == "" {
		txnType = models.TypeExpense
	}
	return service.TransactionInput{
		Type:        txnType,
		Amount:      r.Amount,
		Description: r.Description,
		Category:    r.Category,
		Shares:      r.Shares,
		FromUserID:  r.FromUserID,
		ToUserID:    r.ToUserID,
	}
}

func (h *TransactionsHandler) Create(c *fiber.Ctx) error {
	var req transactionRequest
	if err := c.BodyParser(&req); err != nil {
		return failure(c, fiber.StatusBadRequest, "invalid request body")
	}

	txn, err := h.txns.Create(c.Context(), middleware.UserID(c), c.Params("id"), req.toInput())
	if err != nil {
		return fail(c, err)
	}
	return success(c, fiber.StatusCreated, txn)
}

func (h *TransactionsHandler) List(c *fiber.Ctx) error {
	txns, err := h.txns.List(c.Context(), middleware.UserID(c), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return success(c, fiber.StatusOK, txns)
}

func (h *TransactionsHandler) Update(c *fiber.Ctx) error {
	var req transactionRequest
	if err := c.BodyParser(&req); err != nil {
		return failure(c, fiber.StatusBadRequest, "invalid request body")
	}

	txn, err := h.txns.Update(c.Context(), middleware.UserID(c), c.Params("id"), req.toInput())
	if err != nil {
		return fail(c, err)
	}
	return success(c, fiber.StatusOK, txn)
}

func (h *TransactionsHandler) Delete(c *fiber.Ctx) error {
	if err := h.txns.Delete(c.Context(), middleware.UserID(c), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return success(c, fiber.StatusOK, fiber.Map{"deleted": true})
}
