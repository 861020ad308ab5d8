package handlers

import (
	"tiendajson/internal/log"
	"tiendajson/internal/services"

	"github.com/gofiber/fiber/v2"
)

type PageHandler struct {
	Catalog *services.CatalogService
}

func (h *PageHandler) Home(c *fiber.Ctx) error {
	return h.page(c, "home")
}

// Realtime renders the live list; the page script refreshes it on every
// updateProducts event from /events.
func (h *PageHandler) Realtime(c *fiber.Ctx) error {
	return h.page(c, "realtime")
}

func (h *PageHandler) page(c *fiber.Ctx, tmpl string) error {
	products, err := h.Catalog.List(0)
	if err != nil {
		log.Error(c, tmpl+".load.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load products. Please retry."})
	}
	cats, err := h.Catalog.Categories()
	if err != nil {
		log.Error(c, tmpl+".load.fail", err, nil)
		cats = nil
	}
	return render(c, tmpl, fiber.Map{"Products": products, "Categories": cats})
}
