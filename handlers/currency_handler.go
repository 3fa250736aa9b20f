package handlers

import (
	"strconv"

	"github.com/asifrahman99/course_bazaar/services"
	"github.com/gofiber/fiber/v2"
)

// GetConversionRate converts a BDT amount to USD for display to
// international visitors.
func GetConversionRate(c *fiber.Ctx) error {
	amountStr := c.Query("amount", "1")
	amount, err := strconv.ParseFloat(amountStr, 64)
	if err != nil || amount < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid amount"})
	}

	usd, err := services.ConvertBDTToUSD(amount)
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Exchange rate unavailable"})
	}

	return c.JSON(fiber.Map{"amount_bdt": amount, "amount_usd": usd})
}
