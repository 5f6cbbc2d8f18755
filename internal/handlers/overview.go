package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/splitkaro/backend/internal/middleware"
	"github.com/splitkaro/backend/internal/service"
)

type OverviewHandler struct {
	overview *service.OverviewService
}

func NewOverviewHandler(overview *service.OverviewService) *OverviewHandler {
	return &OverviewHandler{overview: overview}
}

// Get returns the group's ledger summary from the caller's perspective.
func (h *OverviewHandler) Get(c *fiber.Ctx) error {
	overview, err := h.overview.GetGroupOverview(c.Context(), middleware.UserID(c), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return success(c, fiber.StatusOK, overview)
}
