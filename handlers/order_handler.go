package handlers

import (
	"log"

	"github.com/asifrahman99/course_bazaar/database"
	"github.com/asifrahman99/course_bazaar/middleware"
	"github.com/asifrahman99/course_bazaar/models"
	"github.com/asifrahman99/course_bazaar/services"
	ws "github.com/asifrahman99/course_bazaar/websocket"
	"github.com/gofiber/fiber/v2"
)

func notifyNewOrder(order *models.Order) {
	ws.Notify("order", order)
}

// ListOrders is the admin back-office view; filterable by status and
// method, trashed rows excluded unless asked for.
func ListOrders(c *fiber.Ctx) error {
	query := database.DB.Preload("User").Preload("Course").Order("created_at DESC")
	if status := c.Query("payment_status"); status != "" {
		query = query.Where("payment_status = ?", status)
	}
	if method := c.Query("payment_method"); method != "" {
		query = query.Where("payment_method = ?", method)
	}
	if c.Query("trashed") == "true" {
		query = query.Unscoped().Where("deleted_at IS NOT NULL")
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(orders)
}

// MyOrders lists the signed-in buyer's own orders.
func MyOrders(c *fiber.Ctx) error {
	userID, err := middleware.TokenUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var orders []models.Order
	if err := database.DB.Preload("Course").Where("user_id = ?", userID).Order("created_at DESC").Find(&orders).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(orders)
}

// CompleteOrderManually is how an admin confirms a manual-transfer or
// COD payment after checking the submitted transaction id. It runs the
// same idempotent fulfilment as the gateway callbacks.
func CompleteOrderManually(c *fiber.Ctx) error {
	orderID := c.Params("orderId")

	order, err := services.CompleteOrder(database.DB, orderID, c.Query("transaction_id"))
	if err != nil {
		log.Printf("🔥 Admin completion failed for order %s: %v", orderID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to complete order"})
	}

	return c.JSON(fiber.Map{"message": "Order completed", "order": order})
}

// TrashOrder soft-deletes an order (recoverable from the trash view).
func TrashOrder(c *fiber.Ctx) error {
	orderID := c.Params("orderId")
	result := database.DB.Where("id = ?", orderID).Delete(&models.Order{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to trash order"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
	}
	return c.JSON(fiber.Map{"message": "Order moved to trash"})
}

func RestoreOrder(c *fiber.Ctx) error {
	orderID := c.Params("orderId")
	result := database.DB.Unscoped().Model(&models.Order{}).Where("id = ?", orderID).Update("deleted_at", nil)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to restore order"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
	}
	return c.JSON(fiber.Map{"message": "Order restored"})
}

// DeleteOrder permanently removes an order, trashed or not.
func DeleteOrder(c *fiber.Ctx) error {
	orderID := c.Params("orderId")
	result := database.DB.Unscoped().Where("id = ?", orderID).Delete(&models.Order{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete order"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
	}
	return c.JSON(fiber.Map{"message": "Order permanently deleted"})
}
