package expenses

import (
	"encoding/json"
	"strings"
	"time"

	"muhasebe-backend/internal/auth"
	"muhasebe-backend/internal/database"
	"muhasebe-backend/internal/finance"
	"muhasebe-backend/internal/ledger"
	"muhasebe-backend/internal/models"
	"muhasebe-backend/internal/scope"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type CreateExpenseRequest struct {
	Date     *string                    `json:"date"`
	ItemName string                     `json:"item_name"`
	Amount   json.RawMessage            `json:"amount"`
	Category models.ExpenseCategoryType `json:"category"`
	Notes    string                     `json:"notes"`
	StoreID  string                     `json:"store_id"` // superuser için
}

type UpdateExpenseRequest struct {
	Date     *string                     `json:"date"`
	ItemName *string                     `json:"item_name"`
	Amount   json.RawMessage             `json:"amount"`
	Category *models.ExpenseCategoryType `json:"category"`
	Notes    *string                     `json:"notes"`
}

type ExpenseResponse struct {
	ID         uint                       `json:"id"`
	Date       string                     `json:"date"`
	Amount     decimal.Decimal            `json:"amount"`
	ItemName   string                     `json:"item_name"`
	Category   models.ExpenseCategoryType `json:"category"`
	StoreID    string                     `json:"store_id"`
	RecordedBy uint                       `json:"recorded_by"`
	Notes      string                     `json:"notes"`
}

func toResponse(e *models.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:         e.ID,
		Date:       e.Date.Format("2006-01-02 15:04"),
		Amount:     e.Amount,
		ItemName:   e.ItemName,
		Category:   e.Category,
		StoreID:    e.StoreID,
		RecordedBy: e.RecordedByID,
		Notes:      e.Notes,
	}
}

// POST /api/expenses
func CreateExpenseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var body CreateExpenseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.ItemName = strings.TrimSpace(body.ItemName)
		if body.ItemName == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Harcama kalemi adı zorunlu")
		}

		amount, err := ledger.ParseAmount(body.Amount, "Geçerli bir harcama tutarı girin (0'dan büyük olmalı)")
		if err != nil {
			return err
		}

		date, err := ledger.ParseDate(body.Date, time.Now().Location())
		if err != nil {
			return err
		}

		if body.Category == "" {
			body.Category = models.ExpenseCategoryGunluk
		}
		if !models.ValidExpenseCategory(body.Category) {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz harcama kategorisi")
		}

		expense := models.Expense{
			Date:         date,
			Amount:       amount,
			ItemName:     body.ItemName,
			Category:     body.Category,
			StoreID:      scope.StoreIDForWrite(user, body.StoreID),
			RecordedByID: user.ID,
			Notes:        body.Notes,
		}

		if err := database.DB.Create(&expense).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Harcama kaydı oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "Harcama kaydedildi",
			"expense": toResponse(&expense),
		})
	}
}

// GET /api/expenses?year=2024&month=3[&store_id=]
// year/month verilmezse içinde bulunulan ay listelenir.
func ListExpensesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		now := time.Now()
		year, month := now.Year(), int(now.Month())
		if c.Query("year") != "" || c.Query("month") != "" {
			year, month, err = ledger.ParseYearMonth(c)
			if err != nil {
				return err
			}
		}

		start, end := finance.MonthRange(year, month, now.Location())

		var items []models.Expense
		q := scope.ForRequest(database.DB, user, c.Query("store_id")).
			Where("date >= ? AND date <= ?", start, end).
			Order("date desc, created_at desc")
		if err := q.Find(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Harcamalar listelenemedi")
		}

		resp := make([]ExpenseResponse, 0, len(items))
		var total decimal.Decimal
		for i := range items {
			resp = append(resp, toResponse(&items[i]))
			total = total.Add(items[i].Amount)
		}

		return c.JSON(fiber.Map{
			"year":  year,
			"month": month,
			"items": resp,
			"total": total,
		})
	}
}

// PUT /api/expenses/:id
func UpdateExpenseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var expense models.Expense
		if err := scope.Filter(database.DB, user).
			First(&expense, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Harcama kaydı bulunamadı")
		}

		var body UpdateExpenseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.ItemName != nil && strings.TrimSpace(*body.ItemName) != "" {
			expense.ItemName = strings.TrimSpace(*body.ItemName)
		}
		if len(body.Amount) > 0 {
			amount, err := ledger.ParseAmount(body.Amount, "Geçerli bir harcama tutarı girin (0'dan büyük olmalı)")
			if err != nil {
				return err
			}
			expense.Amount = amount
		}
		if body.Category != nil {
			if !models.ValidExpenseCategory(*body.Category) {
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz harcama kategorisi")
			}
			expense.Category = *body.Category
		}
		if body.Notes != nil {
			expense.Notes = *body.Notes
		}
		if body.Date != nil {
			date, err := ledger.ParseDate(body.Date, time.Now().Location())
			if err != nil {
				return err
			}
			expense.Date = date
		}

		if err := database.DB.Save(&expense).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Harcama kaydı güncellenemedi")
		}

		return c.JSON(fiber.Map{
			"message": "Harcama kaydı güncellendi",
			"expense": toResponse(&expense),
		})
	}
}

// DELETE /api/expenses/:id
func DeleteExpenseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var expense models.Expense
		if err := scope.Filter(database.DB, user).
			First(&expense, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Harcama kaydı bulunamadı")
		}

		if err := database.DB.Delete(&expense).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Harcama kaydı silinemedi")
		}

		return c.JSON(fiber.Map{"message": "Harcama kaydı silindi"})
	}
}
