package routes

import (
	"github.com/asifrahman99/course_bazaar/handlers"
	"github.com/asifrahman99/course_bazaar/middleware"
	"github.com/gofiber/fiber/v2"
)

func StudentRoutes(app *fiber.App) {
	api := app.Group("/api/v1", middleware.Protected())

	api.Get("/profile", handlers.GetProfile)
	api.Put("/profile", handlers.UpdateProfile)

	api.Get("/orders/me", handlers.MyOrders)
	api.Get("/enrollments/me", handlers.MyEnrollments)
	api.Patch("/enrollments/:courseId/progress", handlers.UpdateProgress)
	api.Get("/certificates/me", handlers.MyCertificates)
}
