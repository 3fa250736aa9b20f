package handlers

import (
	"errors"

	"github.com/asifrahman99/course_bazaar/database"
	"github.com/asifrahman99/course_bazaar/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func ListCourses(c *fiber.Ctx) error {
	var courses []models.Course
	if err := database.DB.Where("is_published = ?", true).Order("created_at DESC").Find(&courses).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(courses)
}

func GetCourseBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")

	var course models.Course
	err := database.DB.
		Preload("Lessons", func(db *gorm.DB) *gorm.DB { return db.Order("lessons.position ASC") }).
		Where("slug = ? AND is_published = ?", slug, true).
		First(&course).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	return c.JSON(course)
}

type CourseRequest struct {
	Slug          string   `json:"slug" validate:"required,min=3"`
	Title         string   `json:"title" validate:"required,min=3"`
	Description   string   `json:"description"`
	Price         float64  `json:"price" validate:"required,gte=0"`
	DiscountPrice *float64 `json:"discount_price"`
	ThumbnailURL  *string  `json:"thumbnail_url"`
	IsPublished   bool     `json:"is_published"`
}

func CreateCourse(c *fiber.Ctx) error {
	var req CourseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	course := models.Course{
		Slug:          req.Slug,
		Title:         req.Title,
		Description:   req.Description,
		Price:         req.Price,
		DiscountPrice: req.DiscountPrice,
		ThumbnailURL:  req.ThumbnailURL,
		IsPublished:   req.IsPublished,
	}
	if err := database.DB.Create(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "A course with this slug already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create course"})
	}

	return c.Status(fiber.StatusCreated).JSON(course)
}

func UpdateCourse(c *fiber.Ctx) error {
	courseID := c.Params("courseId")

	var course models.Course
	if err := database.DB.Where("id = ?", courseID).First(&course).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}

	var req CourseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	course.Slug = req.Slug
	course.Title = req.Title
	course.Description = req.Description
	course.Price = req.Price
	course.DiscountPrice = req.DiscountPrice
	course.ThumbnailURL = req.ThumbnailURL
	course.IsPublished = req.IsPublished

	if err := database.DB.Save(&course).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update course"})
	}

	return c.JSON(course)
}

func DeleteCourse(c *fiber.Ctx) error {
	courseID := c.Params("courseId")
	result := database.DB.Where("id = ?", courseID).Delete(&models.Course{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete course"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}
	return c.JSON(fiber.Map{"message": "Course deleted"})
}

type LessonRequest struct {
	Title     string  `json:"title" validate:"required,min=2"`
	VideoURL  *string `json:"video_url"`
	Position  int     `json:"position"`
	IsPreview bool    `json:"is_preview"`
}

func CreateLesson(c *fiber.Ctx) error {
	courseID := c.Params("courseId")

	var course models.Course
	if err := database.DB.Where("id = ?", courseID).First(&course).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}

	var req LessonRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	lesson := models.Lesson{
		CourseID:  course.ID,
		Title:     req.Title,
		VideoURL:  req.VideoURL,
		Position:  req.Position,
		IsPreview: req.IsPreview,
	}
	if err := database.DB.Create(&lesson).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create lesson"})
	}

	return c.Status(fiber.StatusCreated).JSON(lesson)
}

func UpdateLesson(c *fiber.Ctx) error {
	lessonID := c.Params("lessonId")

	var lesson models.Lesson
	if err := database.DB.Where("id = ?", lessonID).First(&lesson).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Lesson not found"})
	}

	var req LessonRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	lesson.Title = req.Title
	lesson.VideoURL = req.VideoURL
	lesson.Position = req.Position
	lesson.IsPreview = req.IsPreview

	if err := database.DB.Save(&lesson).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update lesson"})
	}

	return c.JSON(lesson)
}

func DeleteLesson(c *fiber.Ctx) error {
	lessonID := c.Params("lessonId")
	result := database.DB.Where("id = ?", lessonID).Delete(&models.Lesson{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete lesson"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Lesson not found"})
	}
	return c.JSON(fiber.Map{"message": "Lesson deleted"})
}
