package handlers

import (
	"errors"
	"time"

	"github.com/asifrahman99/course_bazaar/database"
	"github.com/asifrahman99/course_bazaar/models"
	"github.com/asifrahman99/course_bazaar/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CouponRequest struct {
	Code           string     `json:"code" validate:"required,min=2"`
	DiscountType   string     `json:"discount_type" validate:"required,oneof=percentage fixed"`
	DiscountValue  float64    `json:"discount_value" validate:"required,gt=0"`
	MinOrderAmount float64    `json:"min_order_amount" validate:"gte=0"`
	MaxUses        *int       `json:"max_uses"`
	ValidFrom      *time.Time `json:"valid_from"`
	ValidUntil     *time.Time `json:"valid_until"`
	Active         bool       `json:"active"`
}

func ListCoupons(c *fiber.Ctx) error {
	var coupons []models.Coupon
	if err := database.DB.Order("created_at DESC").Find(&coupons).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(coupons)
}

func CreateCoupon(c *fiber.Ctx) error {
	var req CouponRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	coupon := models.Coupon{
		Code:           services.NormalizeCouponCode(req.Code),
		DiscountType:   req.DiscountType,
		DiscountValue:  req.DiscountValue,
		MinOrderAmount: req.MinOrderAmount,
		MaxUses:        req.MaxUses,
		ValidFrom:      req.ValidFrom,
		ValidUntil:     req.ValidUntil,
		Active:         req.Active,
	}
	if err := database.DB.Create(&coupon).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "A coupon with this code already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create coupon"})
	}

	return c.Status(fiber.StatusCreated).JSON(coupon)
}

func UpdateCoupon(c *fiber.Ctx) error {
	couponID := c.Params("couponId")

	var coupon models.Coupon
	if err := database.DB.Where("id = ?", couponID).First(&coupon).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Coupon not found"})
	}

	var req CouponRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	coupon.Code = services.NormalizeCouponCode(req.Code)
	coupon.DiscountType = req.DiscountType
	coupon.DiscountValue = req.DiscountValue
	coupon.MinOrderAmount = req.MinOrderAmount
	coupon.MaxUses = req.MaxUses
	coupon.ValidFrom = req.ValidFrom
	coupon.ValidUntil = req.ValidUntil
	coupon.Active = req.Active

	if err := database.DB.Save(&coupon).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update coupon"})
	}

	return c.JSON(coupon)
}

func DeleteCoupon(c *fiber.Ctx) error {
	couponID := c.Params("couponId")
	result := database.DB.Where("id = ?", couponID).Delete(&models.Coupon{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete coupon"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Coupon not found"})
	}
	return c.JSON(fiber.Map{"message": "Coupon deleted"})
}
