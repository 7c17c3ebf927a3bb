package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bankist/bankist/internal/bank"
)

// RegisterBankRoutes wires the session-scoped banking endpoints.
func RegisterBankRoutes(r fiber.Router, h *bank.Handler) {
	r.Post("/auth/logout", h.Logout)
	r.Get("/me", h.Me)
	r.Get("/summary", h.Summary)
	r.Get("/movements", h.Movements)
	r.Post("/transfers", h.Transfer)
	r.Post("/loans", h.Loan)
	r.Delete("/account", h.Close)
}
