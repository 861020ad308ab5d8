package handlers

import (
	"tiendajson/internal/log"
	"tiendajson/internal/services"
	"tiendajson/internal/validate"

	"github.com/gofiber/fiber/v2"
)

const cartNotFound = "Cart not found."

type CartHandler struct {
	Cart *services.CartService
}

// POST /api/carts
func (h *CartHandler) Create(c *fiber.Ctx) error {
	cart, err := h.Cart.Create()
	if err != nil {
		return fail(c, "carts.create", cartNotFound, err)
	}
	log.Audit(c, "carts.create", map[string]any{"cart_id": cart.ID})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Cart created.", "cart": cart})
}

// GET /api/carts/:cid returns the cart's line items.
func (h *CartHandler) Products(c *fiber.Ctx) error {
	cid, ok := validate.CartID(c.Params("cid"))
	if !ok {
		return badRequest(c, "cid", "invalid cart id")
	}
	cart, err := h.Cart.Get(cid)
	if err != nil {
		return fail(c, "carts.get", cartNotFound, err)
	}
	return c.JSON(cart.Products)
}

// POST /api/carts/:cid/product/:pid
func (h *CartHandler) AddProduct(c *fiber.Ctx) error {
	cid, pid, ok := cartAndProduct(c)
	if !ok {
		return badRequest(c, "cid/pid", "invalid cart or product id")
	}
	cart, err := h.Cart.AddProduct(cid, pid)
	if err != nil {
		return fail(c, "carts.add_product", cartNotFound, err)
	}
	log.Audit(c, "carts.add_product", map[string]any{"cart_id": cid, "product_id": pid})
	return c.JSON(fiber.Map{"message": "Product added to cart.", "cart": cart})
}

// PUT /api/carts/:cid/product/:pid with body {"quantity": n}
func (h *CartHandler) SetQuantity(c *fiber.Ctx) error {
	cid, pid, ok := cartAndProduct(c)
	if !ok {
		return badRequest(c, "cid/pid", "invalid cart or product id")
	}
	var body struct {
		Quantity *int `json:"quantity"`
	}
	if err := c.BodyParser(&body); err != nil || body.Quantity == nil {
		return badRequest(c, "quantity", "quantity must be a whole number")
	}
	cart, err := h.Cart.SetQuantity(cid, pid, validate.Qty(*body.Quantity))
	if err != nil {
		return fail(c, "carts.set_quantity", "Cart or cart line not found.", err)
	}
	log.Audit(c, "carts.set_quantity", map[string]any{"cart_id": cid, "product_id": pid, "qty": *body.Quantity})
	return c.JSON(fiber.Map{"message": "Cart updated.", "cart": cart})
}

// DELETE /api/carts/:cid/product/:pid
func (h *CartHandler) RemoveProduct(c *fiber.Ctx) error {
	cid, pid, ok := cartAndProduct(c)
	if !ok {
		return badRequest(c, "cid/pid", "invalid cart or product id")
	}
	cart, err := h.Cart.RemoveProduct(cid, pid)
	if err != nil {
		return fail(c, "carts.remove_product", "Cart or cart line not found.", err)
	}
	log.Audit(c, "carts.remove_product", map[string]any{"cart_id": cid, "product_id": pid})
	return c.JSON(fiber.Map{"message": "Product removed from cart.", "cart": cart})
}

// DELETE /api/carts/:cid
func (h *CartHandler) Delete(c *fiber.Ctx) error {
	cid, ok := validate.CartID(c.Params("cid"))
	if !ok {
		return badRequest(c, "cid", "invalid cart id")
	}
	if err := h.Cart.Delete(cid); err != nil {
		return fail(c, "carts.delete", cartNotFound, err)
	}
	log.Audit(c, "carts.delete", map[string]any{"cart_id": cid})
	return c.JSON(fiber.Map{"message": "Cart deleted."})
}

func cartAndProduct(c *fiber.Ctx) (string, int, bool) {
	cid, ok := validate.CartID(c.Params("cid"))
	if !ok {
		return "", 0, false
	}
	pid, ok := validate.ProductID(c.Params("pid"))
	if !ok {
		return "", 0, false
	}
	return cid, pid, true
}
