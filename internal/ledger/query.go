package ledger

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// ParseYearMonth: listeleme ve özet uçlarının ortak ?year=&month= çözümü.
func ParseYearMonth(c *fiber.Ctx) (int, int, error) {
	yearStr := c.Query("year")
	monthStr := c.Query("month")
	if yearStr == "" || monthStr == "" {
		return 0, 0, fiber.NewError(fiber.StatusBadRequest, "year ve month zorunlu")
	}

	var year, month int
	if _, err := fmt.Sscan(yearStr, &year); err != nil || year < 2000 {
		return 0, 0, fiber.NewError(fiber.StatusBadRequest, "year geçersiz")
	}
	if _, err := fmt.Sscan(monthStr, &month); err != nil || month < 1 || month > 12 {
		return 0, 0, fiber.NewError(fiber.StatusBadRequest, "month geçersiz")
	}
	return year, month, nil
}
