package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/NitishV2006/OneOrbit/internal/services"
)

type DashboardHandler struct {
	data userDataAccess
}

func NewDashboardHandler(data userDataAccess) *DashboardHandler {
	return &DashboardHandler{data: data}
}

// GetDashboard recomputes every headline metric from the current blob.
// Nothing here is cached or stored.
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	data, err := h.data.Load(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load dashboard"})
	}

	return c.JSON(services.BuildDashboard(data, time.Now().UTC()))
}
