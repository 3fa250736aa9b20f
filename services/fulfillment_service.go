package services

import (
	"fmt"
	"log"

	"github.com/asifrahman99/course_bazaar/database"
	"github.com/asifrahman99/course_bazaar/models"
	"github.com/asifrahman99/course_bazaar/notifications"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PlaceholderTxnID is recorded when a completion carries no provider
// transaction id (admin manual completion of COD orders, say).
const PlaceholderTxnID = "not-provided"

// CompleteOrder transitions an order from pending to completed and
// materializes the course enrollment. It is safe to call more than once
// for the same order, including concurrently: the transition UPDATE is
// predicated on payment_status still being pending, an already-completed
// order is a no-op success, the enrollment insert is an upsert keyed on
// (user_id, course_id), and the coupon redemption counter increments
// only in the one invocation that wins the transition.
func CompleteOrder(db *gorm.DB, orderID string, transactionID string) (*models.Order, error) {
	if transactionID == "" {
		transactionID = PlaceholderTxnID
	}

	var order models.Order
	transitioned := false
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", orderID).First(&order).Error; err != nil {
			return err
		}

		if order.PaymentStatus == models.OrderStatusCompleted {
			return nil
		}

		// The status predicate is the guard: when a webhook and an admin
		// completion race, exactly one UPDATE matches and only that
		// caller runs the enrollment, coupon, and email side effects.
		result := tx.Model(&models.Order{}).
			Where("id = ? AND payment_status = ?", order.ID, models.OrderStatusPending).
			Updates(map[string]interface{}{
				"payment_status": models.OrderStatusCompleted,
				"transaction_id": transactionID,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			order.PaymentStatus = models.OrderStatusCompleted
			return nil
		}
		transitioned = true
		order.PaymentStatus = models.OrderStatusCompleted
		order.TransactionID = &transactionID

		if order.UserID != nil && order.CourseID != nil {
			enrollment := models.Enrollment{
				UserID:   *order.UserID,
				CourseID: *order.CourseID,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
				DoNothing: true,
			}).Create(&enrollment).Error; err != nil {
				return err
			}
		}

		if order.CouponCode != nil && *order.CouponCode != "" {
			if err := tx.Model(&models.Coupon{}).
				Where("code = ?", *order.CouponCode).
				UpdateColumn("times_used", gorm.Expr("times_used + 1")).Error; err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	if transitioned {
		go notifyOrderCompleted(&order)
	}

	return &order, nil
}

func notifyOrderCompleted(order *models.Order) {
	if notifications.EmailClient == nil || order.UserID == nil {
		return
	}

	var user models.User
	if err := database.DB.Where("id = ?", *order.UserID).First(&user).Error; err != nil {
		log.Printf("Could not load user %s for order confirmation email: %v", *order.UserID, err)
		return
	}

	courseTitle := "your purchase"
	if order.CourseID != nil {
		var course models.Course
		if err := database.DB.Where("id = ?", *order.CourseID).First(&course).Error; err == nil {
			courseTitle = course.Title
		}
	}

	notifications.SendEmail(
		user.FullName,
		user.Email,
		"Your Payment is Confirmed!",
		fmt.Sprintf("<h1>Payment Confirmed</h1><p>Your payment for <b>%s</b> was successful. You now have full access from your dashboard.</p>", courseTitle),
	)
}
