package handlers

import (
	"tiendajson/internal/log"
	"tiendajson/internal/services"
	"tiendajson/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	Catalog *services.CatalogService
}

// GET /category/:name
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	name, ok := validate.Category(c.Params("name"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "category"})
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Category not found"})
	}
	products, err := h.Catalog.ListByCategory(name)
	if err != nil {
		log.Error(c, "category.list.fail", err, map[string]any{"category": name})
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load products. Please retry."})
	}
	return render(c, "category", fiber.Map{"Category": name, "Products": products})
}
