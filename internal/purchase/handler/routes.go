package handler

import "github.com/gofiber/fiber/v2"

// RegisterRoutes mounts the proof of purchase and product endpoints behind
// requireAuth.
func RegisterRoutes(api fiber.Router, purchases *PurchaseHandler, products *ProductHandler, requireAuth fiber.Handler) {
	pop := api.Group("/proof-of-purchase", requireAuth)
	pop.Post("/", purchases.Create)
	pop.Get("/", purchases.List)
	pop.Get("/search", purchases.Search)
	pop.Get("/:id", purchases.Get)
	pop.Put("/:id", purchases.Update)
	pop.Delete("/:id", purchases.Delete)

	prod := api.Group("/products", requireAuth)
	prod.Post("/", products.Create)
	prod.Get("/", products.List)
	prod.Get("/:id", products.Get)
	prod.Put("/:id", products.Update)
	prod.Delete("/:id", products.Delete)
}
