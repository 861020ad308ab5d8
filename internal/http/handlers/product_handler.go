package handlers

import (
	"encoding/json"

	"tiendajson/internal/domain"
	"tiendajson/internal/log"
	"tiendajson/internal/services"
	"tiendajson/internal/validate"

	"github.com/gofiber/fiber/v2"
)

const productNotFound = "Product not found."

type ProductHandler struct {
	Catalog *services.CatalogService
}

// GET /products?limit=N
func (h *ProductHandler) List(c *fiber.Ctx) error {
	limit, ok := validate.Limit(c.Query("limit"))
	if !ok {
		return badRequest(c, "limit", "limit must be a non-negative integer")
	}
	ps, err := h.Catalog.List(limit)
	if err != nil {
		return fail(c, "products.list", productNotFound, err)
	}
	return c.JSON(ps)
}

// GET /products/:pid
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ProductID(c.Params("pid"))
	if !ok {
		return badRequest(c, "pid", "invalid product id")
	}
	p, err := h.Catalog.GetProduct(id)
	if err != nil {
		return fail(c, "products.get", productNotFound, err)
	}
	return c.JSON(p)
}

// POST /products
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	in, err := decodeFields(c)
	if err != nil {
		return fail(c, "products.add", productNotFound, err)
	}
	p, err := h.Catalog.Add(in)
	if err != nil {
		return fail(c, "products.add", productNotFound, err)
	}
	log.Audit(c, "products.add", map[string]any{"product_id": p.ID})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Product added.", "product": p})
}

// PUT /products/:pid
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ProductID(c.Params("pid"))
	if !ok {
		return badRequest(c, "pid", "invalid product id")
	}
	patch, err := decodeFields(c)
	if err != nil {
		return fail(c, "products.update", productNotFound, err)
	}
	p, err := h.Catalog.Update(id, patch)
	if err != nil {
		return fail(c, "products.update", productNotFound, err)
	}
	log.Audit(c, "products.update", map[string]any{"product_id": id})
	return c.JSON(fiber.Map{"message": "Product updated.", "product": p})
}

// DELETE /products/:pid
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ProductID(c.Params("pid"))
	if !ok {
		return badRequest(c, "pid", "invalid product id")
	}
	if err := h.Catalog.Delete(id); err != nil {
		return fail(c, "products.delete", productNotFound, err)
	}
	log.Audit(c, "products.delete", map[string]any{"product_id": id})
	return c.JSON(fiber.Map{"message": "Product deleted."})
}

func decodeFields(c *fiber.Ctx) (domain.ProductFields, error) {
	var f domain.ProductFields
	body := c.Body()
	if len(body) == 0 {
		return f, &domain.ValidationError{Field: "body", Reason: "must be a JSON object"}
	}
	if err := json.Unmarshal(body, &f); err != nil {
		if domain.IsValidation(err) {
			return f, err
		}
		return f, &domain.ValidationError{Field: "body", Reason: "must be a JSON object"}
	}
	return f, nil
}
