package routes

import (
	"time"

	"github.com/asifrahman99/course_bazaar/handlers"
	"github.com/asifrahman99/course_bazaar/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func CheckoutRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	// The rate-limit response carries a discriminator so the storefront
	// can offer alternate contact channels instead of a retry prompt.
	checkoutLimiter := limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":   "rate_limit",
				"message": "Too many checkout requests. Please wait a moment, or reach us on WhatsApp to complete your purchase.",
			})
		},
	})

	api.Get("/checkout/payment-methods", handlers.GetPaymentMethods)
	api.Post("/checkout/apply-coupon", handlers.ApplyCoupon)
	api.Post("/checkout/attempts", middleware.OptionalAuth(), handlers.CaptureCheckoutAttempt)
	api.Post("/checkout", checkoutLimiter, middleware.OptionalAuth(), handlers.SubmitCheckout)
}
