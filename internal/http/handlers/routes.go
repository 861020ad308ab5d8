package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	applog "tiendajson/internal/log"
)

// Mount registers every page and API route on app, ending with the 404 page.
func Mount(app *fiber.App, d *Deps) {
	writes := limiter.New(limiter.Config{
		Max:        d.Cfg.MutationsPerMinute,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|write"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.write.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	})

	// Pages
	app.Get("/", d.PageHandler.Home)
	app.Get("/realtime", d.PageHandler.Realtime)
	app.Get("/category/:name", d.CategoryHandler.List)
	app.Get("/search", d.SearchHandler.Search)

	// Products
	app.Get("/products", d.ProductHandler.List)
	app.Get("/products/:pid", d.ProductHandler.Get)
	app.Post("/products", writes, d.ProductHandler.Create)
	app.Put("/products/:pid", writes, d.ProductHandler.Update)
	app.Delete("/products/:pid", writes, d.ProductHandler.Delete)
	// original root-level product routes
	app.Post("/", writes, d.ProductHandler.Create)
	app.Put("/:pid", writes, d.ProductHandler.Update)
	app.Delete("/:pid", writes, d.ProductHandler.Delete)

	// Carts
	carts := app.Group("/api/carts")
	carts.Post("/", writes, d.CartHandler.Create)
	carts.Get("/:cid", d.CartHandler.Products)
	carts.Delete("/:cid", writes, d.CartHandler.Delete)
	carts.Post("/:cid/product/:pid", writes, d.CartHandler.AddProduct)
	carts.Put("/:cid/product/:pid", writes, d.CartHandler.SetQuantity)
	carts.Delete("/:cid/product/:pid", writes, d.CartHandler.RemoveProduct)

	// API
	api := app.Group("/api")
	api.Get("/availability", d.InventoryHandler.Check)
	api.Get("/events", d.EventsHandler.Recent)
	app.Get("/events", d.EventsHandler.Stream)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Page not found"})
	})
}
