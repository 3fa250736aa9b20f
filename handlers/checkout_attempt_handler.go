package handlers

import (
	"github.com/asifrahman99/course_bazaar/database"
	"github.com/asifrahman99/course_bazaar/middleware"
	"github.com/asifrahman99/course_bazaar/models"
	"github.com/asifrahman99/course_bazaar/services"
	"github.com/asifrahman99/course_bazaar/utils"
	"github.com/gofiber/fiber/v2"
)

type CaptureAttemptRequest struct {
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	FullName    string `json:"full_name"`
	CourseSlug  string `json:"course_slug"`
	CourseTitle string `json:"course_title"`
	SessionID   string `json:"checkout_session_id"`
}

// CaptureCheckoutAttempt feeds the debounced recorder. Signed-in buyers
// are never captured; their identity is already known. The response is
// always success; this subsystem must never surface a failure into the
// checkout.
func CaptureCheckoutAttempt(c *fiber.Ctx) error {
	var req CaptureAttemptRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if req.Email == "" && req.Phone == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "At least one of email or phone is required"})
	}

	if _, authenticated := middleware.AuthUserID(c); authenticated {
		return c.JSON(fiber.Map{"success": true})
	}

	ip := utils.ClientIP(c.Get("X-Forwarded-For"), c.Get("X-Real-IP"))
	sessionKey := req.SessionID
	if sessionKey == "" {
		sessionKey = ip + "|" + req.CourseSlug
	}

	services.Recorder().Capture(sessionKey, services.AttemptInput{
		Email:       req.Email,
		Phone:       req.Phone,
		FullName:    req.FullName,
		CourseSlug:  req.CourseSlug,
		CourseTitle: req.CourseTitle,
		IPAddress:   ip,
	})

	return c.JSON(fiber.Map{"success": true})
}

func ListCheckoutAttempts(c *fiber.Ctx) error {
	var attempts []models.CheckoutAttempt
	query := database.DB.Order("created_at DESC")
	if converted := c.Query("is_converted"); converted != "" {
		query = query.Where("is_converted = ?", converted == "true")
	}
	if err := query.Find(&attempts).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(attempts)
}

func MarkCheckoutAttemptConverted(c *fiber.Ctx) error {
	attemptID := c.Params("attemptId")
	result := database.DB.Model(&models.CheckoutAttempt{}).Where("id = ?", attemptID).Update("is_converted", true)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Checkout attempt not found"})
	}
	return c.JSON(fiber.Map{"message": "Checkout attempt marked as converted"})
}

func DeleteCheckoutAttempt(c *fiber.Ctx) error {
	attemptID := c.Params("attemptId")
	result := database.DB.Where("id = ?", attemptID).Delete(&models.CheckoutAttempt{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Checkout attempt not found"})
	}
	return c.JSON(fiber.Map{"message": "Checkout attempt deleted"})
}
