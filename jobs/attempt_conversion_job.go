package jobs

import (
	"log"

	"github.com/asifrahman99/course_bazaar/database"
	"github.com/asifrahman99/course_bazaar/models"
)

// SweepConvertedAttempts flags captured checkout attempts whose visitor
// later completed an order with the same email, so the sales follow-up
// list only shows genuinely abandoned checkouts.
func SweepConvertedAttempts() {
	log.Println("Running job: SweepConvertedAttempts...")

	result := database.DB.Exec(`
		UPDATE checkout_attempts ca
		SET is_converted = true
		FROM orders o
		JOIN users u ON u.id = o.user_id
		WHERE ca.is_converted = false
		  AND o.payment_status = ?
		  AND o.deleted_at IS NULL
		  AND u.email = ca.email`,
		models.OrderStatusCompleted,
	)
	if result.Error != nil {
		log.Printf("Error sweeping converted checkout attempts: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("Marked %d checkout attempts as converted", result.RowsAffected)
	}
}
