package routes

import (
	"github.com/asifrahman99/course_bazaar/handlers"
	"github.com/asifrahman99/course_bazaar/middleware"
	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(app *fiber.App) {
	admin := app.Group("/api/v1/admin", middleware.Protected(), middleware.AdminRequired())

	admin.Get("/orders", handlers.ListOrders)
	admin.Patch("/orders/:orderId/complete", handlers.CompleteOrderManually)
	admin.Delete("/orders/:orderId/trash", handlers.TrashOrder)
	admin.Patch("/orders/:orderId/restore", handlers.RestoreOrder)
	admin.Delete("/orders/:orderId", handlers.DeleteOrder)

	admin.Get("/coupons", handlers.ListCoupons)
	admin.Post("/coupons", handlers.CreateCoupon)
	admin.Put("/coupons/:couponId", handlers.UpdateCoupon)
	admin.Delete("/coupons/:couponId", handlers.DeleteCoupon)

	admin.Get("/checkout-attempts", handlers.ListCheckoutAttempts)
	admin.Patch("/checkout-attempts/:attemptId/convert", handlers.MarkCheckoutAttemptConverted)
	admin.Delete("/checkout-attempts/:attemptId", handlers.DeleteCheckoutAttempt)

	admin.Post("/courses", handlers.CreateCourse)
	admin.Put("/courses/:courseId", handlers.UpdateCourse)
	admin.Delete("/courses/:courseId", handlers.DeleteCourse)
	admin.Post("/courses/:courseId/lessons", handlers.CreateLesson)
	admin.Put("/lessons/:lessonId", handlers.UpdateLesson)
	admin.Delete("/lessons/:lessonId", handlers.DeleteLesson)

	admin.Get("/uploads/signature", handlers.GenerateUploadSignature)

	app.Use("/ws/admin/feed", middleware.Protected(), middleware.AdminRequired(), handlers.FeedUpgradeRequired)
	app.Get("/ws/admin/feed", handlers.AdminFeedSocket())
}
