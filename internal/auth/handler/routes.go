package handler

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(api fiber.Router, h *AuthHandler) {
	auth := api.Group("/auth")
	auth.Post("/register", h.Register)
	auth.Post("/login", h.Login)
	auth.Get("/me", h.RequireAuth, h.Me)
}
