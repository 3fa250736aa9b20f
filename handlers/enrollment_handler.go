package handlers

import (
	"github.com/asifrahman99/course_bazaar/database"
	"github.com/asifrahman99/course_bazaar/middleware"
	"github.com/asifrahman99/course_bazaar/models"
	"github.com/asifrahman99/course_bazaar/services"
	"github.com/gofiber/fiber/v2"
)

func MyEnrollments(c *fiber.Ctx) error {
	userID, err := middleware.TokenUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var enrollments []models.Enrollment
	if err := database.DB.Preload("Course").Where("user_id = ?", userID).Find(&enrollments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(enrollments)
}

// UpdateProgress records how far a student has gotten through a course;
// reaching 100% kicks off certificate generation in the background.
func UpdateProgress(c *fiber.Ctx) error {
	type Request struct {
		Progress float64 `json:"progress" validate:"gte=0,lte=100"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	userID, err := middleware.TokenUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var enrollment models.Enrollment
	if err := database.DB.Where("user_id = ? AND course_id = ?", userID, c.Params("courseId")).First(&enrollment).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Enrollment not found"})
	}

	// Progress never moves backwards.
	if req.Progress > enrollment.Progress {
		enrollment.Progress = req.Progress
		if err := database.DB.Save(&enrollment).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update progress"})
		}
		if enrollment.Progress >= 100 {
			go services.CheckAndGenerateCertificate(enrollment)
		}
	}

	return c.JSON(enrollment)
}

func MyCertificates(c *fiber.Ctx) error {
	userID, err := middleware.TokenUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var certificates []models.Certificate
	if err := database.DB.Where("user_id = ?", userID).Order("issued_at DESC").Find(&certificates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(certificates)
}
