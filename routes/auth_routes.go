package routes

import (
	"github.com/asifrahman99/course_bazaar/handlers"
	"github.com/asifrahman99/course_bazaar/middleware"
	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Post("/auth/register", handlers.RegisterUser)
	api.Post("/auth/login", handlers.LoginUser)
	api.Patch("/auth/change-password", middleware.Protected(), handlers.ChangePassword)
}
