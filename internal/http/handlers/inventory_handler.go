package handlers

import (
	"github.com/gofiber/fiber/v2"

	"tiendajson/internal/services"
	"tiendajson/internal/validate"
)

type InventoryHandler struct {
	Inv *services.InventoryService
}

// GET /api/availability?productId=N
func (h *InventoryHandler) Check(c *fiber.Ctx) error {
	if c.Query("productId") == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "missing productId",
		})
	}
	productID, ok := validate.ProductID(c.Query("productId"))
	if !ok {
		return badRequest(c, "productId", "invalid productId")
	}

	avail, err := h.Inv.CheckAvailability(productID)
	if err != nil {
		return fail(c, "availability.check", productNotFound, err)
	}
	return c.JSON(avail)
}
