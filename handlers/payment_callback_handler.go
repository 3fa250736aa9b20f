package handlers

import (
	"fmt"
	"log"
	"math"
	"strconv"

	config "github.com/asifrahman99/course_bazaar/configs"
	"github.com/asifrahman99/course_bazaar/database"
	"github.com/asifrahman99/course_bazaar/models"
	"github.com/asifrahman99/course_bazaar/payments"
	"github.com/asifrahman99/course_bazaar/services"
	"github.com/gofiber/fiber/v2"
)

// HandlePaymentReturn is the browser leg of a gateway payment: the buyer
// lands here after the hosted page. It never changes order state; only
// the authenticated webhook completes an order. The buyer is sent to the
// dashboard carrying the order's current status, so a return that beats
// the webhook shows as pending until the webhook lands.
func HandlePaymentReturn(c *fiber.Ctx) error {
	orderID := c.Query("order_id")
	if orderID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing order_id"})
	}

	var order models.Order
	if err := database.DB.Where("id = ?", orderID).First(&order).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
	}

	status := "pending"
	if order.PaymentStatus == models.OrderStatusCompleted {
		status = "success"
	}

	dashboardURL := config.Config("DASHBOARD_URL")
	if dashboardURL == "" {
		dashboardURL = config.Config("STOREFRONT_URL") + "/dashboard"
	}
	return c.Redirect(dashboardURL+"?payment="+status, fiber.StatusFound)
}

// HandlePaymentWebhook is the server-to-server leg. Every gateway's
// payload is authenticated and its amount cross-checked against the
// order before any state changes; a store failure answers 5xx so the
// gateway retries.
func HandlePaymentWebhook(c *fiber.Ctx) error {
	gateway := c.Params("gateway")

	var orderID, transactionID string
	var paidAmount float64
	var err error

	switch gateway {
	case "sslcommerz":
		orderID, transactionID, paidAmount, err = parseSSLCommerzIPN(c)
	case "aamarpay":
		orderID, transactionID, paidAmount, err = parseAamarPayIPN(c)
	case "uddoktapay":
		orderID, transactionID, paidAmount, err = parseUddoktaPayWebhook(c)
	default:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Unknown gateway: " + gateway})
	}
	if err != nil {
		log.Printf("Rejected %s webhook: %v", gateway, err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if orderID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No order id in webhook payload"})
	}

	var order models.Order
	if err := database.DB.Where("id = ?", orderID).First(&order).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
	}

	if math.Abs(order.Amount-paidAmount) > 0.01 {
		log.Printf("🔥 Amount mismatch for order %s: order %.2f, paid %.2f", orderID, order.Amount, paidAmount)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Paid amount does not match order amount"})
	}

	if _, err := services.CompleteOrder(database.DB, orderID, transactionID); err != nil {
		log.Printf("🔥 CRITICAL: failed to process %s webhook for order %s: %v", gateway, orderID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process webhook"})
	}

	return c.JSON(fiber.Map{"success": true})
}

func parseSSLCommerzIPN(c *fiber.Ctx) (orderID, transactionID string, paidAmount float64, err error) {
	params := map[string]string{}
	c.Request().PostArgs().VisitAll(func(key, value []byte) {
		params[string(key)] = string(value)
	})

	if !payments.VerifySSLCommerzSignature(params, config.Config("SSLCOMMERZ_STORE_PASSWD")) {
		return "", "", 0, fmt.Errorf("invalid IPN signature")
	}

	status := params["status"]
	if status != "VALID" && status != "VALIDATED" {
		return "", "", 0, fmt.Errorf("transaction status is %q, not valid", status)
	}

	orderID = params["value_a"]
	if orderID == "" {
		orderID = params["tran_id"]
	}
	transactionID = params["bank_tran_id"]
	if transactionID == "" {
		transactionID = params["val_id"]
	}
	paidAmount, _ = strconv.ParseFloat(params["amount"], 64)
	return orderID, transactionID, paidAmount, nil
}

func parseAamarPayIPN(c *fiber.Ctx) (orderID, transactionID string, paidAmount float64, err error) {
	merTxnID := c.FormValue("mer_txnid")
	if merTxnID == "" {
		return "", "", 0, fmt.Errorf("missing mer_txnid")
	}

	// Never trust the posted fields; ask aamarPay what it actually saw.
	status, err := payments.VerifyAamarPayTransaction(merTxnID)
	if err != nil {
		return "", "", 0, err
	}
	if status.PayStatus != "Successful" {
		return "", "", 0, fmt.Errorf("transaction status is %q, not successful", status.PayStatus)
	}

	orderID = status.OptA
	if orderID == "" {
		orderID = merTxnID
	}
	paidAmount, _ = strconv.ParseFloat(status.AmountBDT, 64)
	if paidAmount == 0 {
		paidAmount = status.Amount
	}
	return orderID, status.PgTxnID, paidAmount, nil
}

func parseUddoktaPayWebhook(c *fiber.Ctx) (orderID, transactionID string, paidAmount float64, err error) {
	if !payments.VerifyUddoktaPayAPIKey(c.Get("RT-UDDOKTAPAY-API-KEY")) {
		return "", "", 0, fmt.Errorf("invalid webhook API key")
	}

	var payload payments.UddoktaPayWebhookPayload
	if err := c.BodyParser(&payload); err != nil {
		return "", "", 0, fmt.Errorf("cannot parse webhook payload: %v", err)
	}

	if payload.Status != "COMPLETED" {
		return "", "", 0, fmt.Errorf("payment status is %q, not completed", payload.Status)
	}

	orderID = payload.Metadata["order_id"]
	paidAmount, _ = strconv.ParseFloat(payload.Amount, 64)
	return orderID, payload.TransactionID, paidAmount, nil
}
