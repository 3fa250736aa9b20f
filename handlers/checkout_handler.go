package handlers

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	config "github.com/asifrahman99/course_bazaar/configs"
	"github.com/asifrahman99/course_bazaar/database"
	"github.com/asifrahman99/course_bazaar/middleware"
	"github.com/asifrahman99/course_bazaar/models"
	"github.com/asifrahman99/course_bazaar/payments"
	"github.com/asifrahman99/course_bazaar/services"
	"github.com/asifrahman99/course_bazaar/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CheckoutRequest struct {
	CourseSlug        string  `json:"course_slug" validate:"required"`
	PaymentMethod     string  `json:"payment_method" validate:"required"`
	Amount            float64 `json:"amount"`
	CourseTitle       string  `json:"course_title"`
	FullName          string  `json:"full_name"`
	Email             string  `json:"email"`
	Password          string  `json:"password"`
	Phone             string  `json:"phone"`
	Address           string  `json:"address"`
	SenderPhone       string  `json:"sender_phone"`
	TrxID             string  `json:"trx_id"`
	CouponCode        string  `json:"coupon_code"`
	CheckoutSessionID string  `json:"checkout_session_id"`
}

// ValidateCheckoutRequest enforces per-method and per-buyer field rules
// before anything touches the store: manual-transfer methods need proof
// fields, and buyers without an account need everything required to
// create one.
func ValidateCheckoutRequest(req *CheckoutRequest, method config.PaymentMethod, authenticated bool) error {
	if method.RequiresProof {
		if strings.TrimSpace(req.SenderPhone) == "" {
			return errors.New("sender_phone is required for " + method.Label)
		}
		if strings.TrimSpace(req.TrxID) == "" {
			return errors.New("trx_id is required for " + method.Label)
		}
	}

	if !authenticated {
		if strings.TrimSpace(req.FullName) == "" {
			return errors.New("full_name is required")
		}
		if strings.TrimSpace(req.Email) == "" || !strings.Contains(req.Email, "@") {
			return errors.New("a valid email is required")
		}
		if strings.TrimSpace(req.Phone) == "" {
			return errors.New("phone is required")
		}
		if strings.TrimSpace(req.Address) == "" {
			return errors.New("address is required")
		}
		if req.Password != "" && len(req.Password) < 6 {
			return errors.New("password must be at least 6 characters")
		}
	}

	return nil
}

// SubmitCheckout is the payment orchestrator: it materializes a buyer
// account when needed, creates exactly one pending order per checkout
// session, and either settles locally (manual/COD) or hands the buyer
// off to a hosted gateway.
func SubmitCheckout(c *fiber.Ctx) error {
	var req CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	method, ok := config.GetPaymentMethod(req.PaymentMethod)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown payment method: " + req.PaymentMethod})
	}

	authUserID, authenticated := middleware.AuthUserID(c)
	if err := ValidateCheckoutRequest(&req, method, authenticated); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	// Course resolution is best-effort; an order may exist without a
	// bound course.
	var course *models.Course
	var courseID *uuid.UUID
	var found models.Course
	if err := database.DB.Where("slug = ?", req.CourseSlug).First(&found).Error; err == nil {
		course = &found
		courseID = &found.ID
	} else {
		log.Printf("Checkout for unknown course slug %q, order will have no course bound", req.CourseSlug)
	}

	// The server recomputes the final amount; the client-sent figure is
	// only trusted when the course could not be resolved.
	amount := req.Amount
	var couponCode *string
	if course != nil {
		amount = course.EffectivePrice()
		if strings.TrimSpace(req.CouponCode) != "" {
			result := services.ApplyCouponCode(req.CouponCode, amount)
			if !result.Accepted {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": string(result.ErrorKind)})
			}
			amount = result.FinalPrice
			normalized := services.NormalizeCouponCode(req.CouponCode)
			couponCode = &normalized
		}
	}

	var buyer models.User
	var generatedPassword string
	var order models.Order

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if authenticated {
			if err := tx.Where("id = ?", authUserID).First(&buyer).Error; err != nil {
				return err
			}
		} else {
			// Reuse an existing account on a matching email instead of
			// failing the purchase.
			if err := tx.Where("email = ?", req.Email).First(&buyer).Error; err != nil {
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					return err
				}
				password := req.Password
				if password == "" {
					password = utils.GeneratePassword()
					generatedPassword = password
				}
				hashed, err := hashPassword(password)
				if err != nil {
					return err
				}
				buyer = models.User{
					FullName: req.FullName,
					Email:    req.Email,
					Password: hashed,
					Phone:    &req.Phone,
					Address:  &req.Address,
				}
				if err := tx.Create(&buyer).Error; err != nil {
					return err
				}
			}
		}

		order = models.Order{
			UserID:        &buyer.ID,
			CourseID:      courseID,
			Amount:        amount,
			Currency:      method.Currency,
			PaymentMethod: method.ID,
			PaymentStatus: models.OrderStatusPending,
			CouponCode:    couponCode,
		}
		if req.SenderPhone != "" {
			order.SenderPhone = &req.SenderPhone
		}
		if req.TrxID != "" {
			order.TrxID = &req.TrxID
		}
		if req.CheckoutSessionID != "" {
			order.CheckoutSessionID = &req.CheckoutSessionID
		}

		// Resubmitting the same checkout session returns the existing
		// order instead of creating a duplicate.
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "checkout_session_id"}},
			DoNothing: true,
		}).Create(&order)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 && order.CheckoutSessionID != nil {
			if err := tx.Where("checkout_session_id = ?", *order.CheckoutSessionID).First(&order).Error; err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		log.Printf("🔥 Checkout submission failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create order"})
	}

	services.Recorder().MarkConverted(attemptSessionKey(c, req.CheckoutSessionID, req.CourseSlug))
	notifyNewOrder(&order)

	if !method.IsGateway {
		resp := fiber.Map{"success": true, "order_id": order.ID.String()}
		if generatedPassword != "" {
			resp["credentials"] = fiber.Map{"email": buyer.Email, "password": generatedPassword}
		}
		return c.JSON(resp)
	}

	phone := req.Phone
	if phone == "" && buyer.Phone != nil {
		phone = *buyer.Phone
	}
	address := req.Address
	if address == "" && buyer.Address != nil {
		address = *buyer.Address
	}
	buyerInfo := payments.BuyerInfo{
		FullName:    buyer.FullName,
		Email:       buyer.Email,
		Phone:       phone,
		Address:     address,
		CourseTitle: courseTitleFor(course, req.CourseTitle),
	}

	var redirectURL string
	switch method.ID {
	case "sslcommerz":
		redirectURL, err = payments.CreateSSLCommerzSession(order.Amount, order.Currency, order.ID.String(), buyerInfo)
	case "aamarpay":
		redirectURL, err = payments.CreateAamarPaySession(order.Amount, order.Currency, order.ID.String(), buyerInfo)
	case "uddoktapay":
		redirectURL, err = payments.CreateUddoktaPaySession(order.Amount, order.ID.String(), buyerInfo)
	default:
		err = fmt.Errorf("no gateway client for method %s", method.ID)
	}

	if err != nil {
		log.Printf("🔥 Gateway session creation failed for order %s: %v", order.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	resp := fiber.Map{"redirect_url": redirectURL}
	if generatedPassword != "" {
		resp["credentials"] = fiber.Map{"email": buyer.Email, "password": generatedPassword}
	}
	return c.JSON(resp)
}

// ApplyCoupon lets the checkout page price a coupon without creating any
// server-side state; removing an applied coupon needs no call at all.
func ApplyCoupon(c *fiber.Ctx) error {
	type Request struct {
		Code       string `json:"code" validate:"required"`
		CourseSlug string `json:"course_slug" validate:"required"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var course models.Course
	if err := database.DB.Where("slug = ? AND is_published = ?", req.CourseSlug, true).First(&course).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}

	result := services.ApplyCouponCode(req.Code, course.EffectivePrice())
	if !result.Accepted {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": string(result.ErrorKind)})
	}
	return c.JSON(result)
}

// GetPaymentMethods exposes the configured method registry so the
// checkout page can render labels, proof requirements, and recipient
// numbers without hardcoding them.
func GetPaymentMethods(c *fiber.Ctx) error {
	methods := config.ListPaymentMethods()
	sort.Slice(methods, func(i, j int) bool { return methods[i].ID < methods[j].ID })
	return c.JSON(fiber.Map{"methods": methods})
}

func courseTitleFor(course *models.Course, fallback string) string {
	if course != nil {
		return course.Title
	}
	if fallback != "" {
		return fallback
	}
	return "Course purchase"
}

func attemptSessionKey(c *fiber.Ctx, sessionID, courseSlug string) string {
	if sessionID != "" {
		return sessionID
	}
	ip := utils.ClientIP(c.Get("X-Forwarded-For"), c.Get("X-Real-IP"))
	return ip + "|" + courseSlug
}
