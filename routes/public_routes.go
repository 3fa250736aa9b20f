package routes

import (
	"github.com/asifrahman99/course_bazaar/handlers"
	"github.com/gofiber/fiber/v2"
)

func PublicRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/courses", handlers.ListCourses)
	api.Get("/courses/:slug", handlers.GetCourseBySlug)
	api.Get("/currency/rate", handlers.GetConversionRate)
}
