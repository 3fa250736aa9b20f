package routes

import (
	"github.com/asifrahman99/course_bazaar/handlers"
	"github.com/gofiber/fiber/v2"
)

func PaymentRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Post("/payments/webhook/:gateway", handlers.HandlePaymentWebhook)
	api.Get("/payments/callback", handlers.HandlePaymentReturn)
}
