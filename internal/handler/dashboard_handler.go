package handler

import (
	"go-shop-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetStats returns the overview block: product counts, low stock count,
// inventory value, category count.
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.service.GetStats()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch dashboard stats"})
	}
	return c.JSON(stats)
}

// GetCategoryBreakdown returns per-category aggregates for chart data.
func (h *DashboardHandler) GetCategoryBreakdown(c *fiber.Ctx) error {
	breakdown, err := h.service.GetCategoryBreakdown()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch category breakdown"})
	}
	return c.JSON(breakdown)
}

// GetSalesStats returns ledger-wide totals.
func (h *DashboardHandler) GetSalesStats(c *fiber.Ctx) error {
	stats, err := h.service.GetSalesStats()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch sales stats"})
	}
	return c.JSON(stats)
}
