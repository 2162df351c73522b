package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/doutly/doutly-service/internal/service"
)

// DashboardHandler serves aggregated workflow metrics.
type DashboardHandler struct {
	service *service.DashboardService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: dashboardService}
}

// Snapshot handles GET /dashboard.
func (h *DashboardHandler) Snapshot(c *fiber.Ctx) error {
	snapshot, err := h.service.Snapshot(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": snapshot})
}
