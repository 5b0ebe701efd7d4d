package costs

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

type CreateCostRequest struct {
	Date          *string                 `json:"date"`
	ItemName      string                  `json:"item_name"`
	Unit          string                  `json:"unit"` // opsiyonel birim, açıklamaya eklenir
	Amount        json.RawMessage         `json:"amount"`
	SellingPrice  json.RawMessage         `json:"selling_price"`
	Category      models.CostCategoryType `json:"category"`
	Supplier      string                  `json:"supplier"`
	InvoiceNumber string                  `json:"invoice_number"`
	Notes         string                  `json:"notes"`
	StoreID       string                  `json:"store_id"` // superuser için
}

type UpdateCostRequest struct {
	Date          *string                  `json:"date"`
	Amount        json.RawMessage          `json:"amount"`
	SellingPrice  json.RawMessage          `json:"selling_price"`
	Description   *string                  `json:"description"`
	Category      *models.CostCategoryType `json:"category"`
	Supplier      *string                  `json:"supplier"`
	InvoiceNumber *string                  `json:"invoice_number"`
	Notes         *string                  `json:"notes"`
}

type CostResponse struct {
	ID            uint                    `json:"id"`
	Date          string                  `json:"date"`
	Amount        decimal.Decimal         `json:"amount"`
	SellingPrice  *decimal.Decimal        `json:"selling_price"`
	Description   string                  `json:"description"`
	Category      models.CostCategoryType `json:"category"`
	StoreID       string                  `json:"store_id"`
	Supplier      string                  `json:"supplier"`
	InvoiceNumber string                  `json:"invoice_number"`
	RecordedBy    uint                    `json:"recorded_by"`
	Notes         string                  `json:"notes"`
}

func toResponse(cost *models.Cost) CostResponse {
	return CostResponse{
		ID:            cost.ID,
		Date:          cost.Date.Format("2006-01-02 15:04"),
		Amount:        cost.Amount,
		SellingPrice:  cost.SellingPrice,
		Description:   cost.Description,
		Category:      cost.Category,
		StoreID:       cost.StoreID,
		Supplier:      cost.Supplier,
		InvoiceNumber: cost.InvoiceNumber,
		RecordedBy:    cost.RecordedByID,
		Notes:         cost.Notes,
	}
}

// POST /api/costs
func CreateCostHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var body CreateCostRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.ItemName = strings.TrimSpace(body.ItemName)
		if body.ItemName == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Maliyet kalemi adı zorunlu")
		}

		amount, err := ledger.ParseAmount(body.Amount, "Geçerli bir maliyet tutarı girin (0'dan büyük olmalı)")
		if err != nil {
			return err
		}

		sellingPrice, err := ledger.ParseOptionalAmount(body.SellingPrice, "Geçerli bir satış fiyatı girin (0'dan büyük olmalı)")
		if err != nil {
			return err
		}

		date, err := ledger.ParseDate(body.Date, time.Now().Location())
		if err != nil {
			return err
		}

		if body.Category == "" {
			body.Category = models.CostCategoryMalzeme
		}
		if !models.ValidCostCategory(body.Category) {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz maliyet kategorisi")
		}

		// açıklama: kalem adı + varsa birim
		description := body.ItemName
		if body.Unit != "" {
			description += " - " + body.Unit
		}

		cost := models.Cost{
			Date:          date,
			Amount:        amount,
			Description:   description,
			Category:      body.Category,
			StoreID:       scope.StoreIDForWrite(user, body.StoreID),
			RecordedByID:  user.ID,
			Supplier:      body.Supplier,
			InvoiceNumber: body.InvoiceNumber,
			SellingPrice:  sellingPrice,
			Notes:         body.Notes,
		}

		if err := database.DB.Create(&cost).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Maliyet kaydı oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "Maliyet kaydedildi",
			"cost":    toResponse(&cost),
		})
	}
}

// GET /api/costs[?year=&month=][&store_id=]
// Filtre verilmezse tüm kayıtlar tarihe göre listelenir.
func ListCostsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		q := scope.ForRequest(database.DB, user, c.Query("store_id")).
			Order("date desc, created_at desc")

		if c.Query("year") != "" || c.Query("month") != "" {
			year, month, err := ledger.ParseYearMonth(c)
			if err != nil {
				return err
			}
			start, end := finance.MonthRange(year, month, time.Now().Location())
			q = q.Where("date >= ? AND date <= ?", start, end)
		}

		var costs []models.Cost
		if err := q.Find(&costs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Maliyetler listelenemedi")
		}

		items := make([]CostResponse, 0, len(costs))
		var total decimal.Decimal
		for i := range costs {
			items = append(items, toResponse(&costs[i]))
			total = total.Add(costs[i].Amount)
		}

		return c.JSON(fiber.Map{
			"items": items,
			"total": total,
		})
	}
}

// PUT /api/costs/:id
func UpdateCostHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var cost models.Cost
		if err := scope.Filter(database.DB, user).
			First(&cost, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Maliyet kaydı bulunamadı")
		}

		var body UpdateCostRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if len(body.Amount) > 0 {
			amount, err := ledger.ParseAmount(body.Amount, "Geçerli bir maliyet tutarı girin (0'dan büyük olmalı)")
			if err != nil {
				return err
			}
			cost.Amount = amount
		}
		if len(body.SellingPrice) > 0 {
			sellingPrice, err := ledger.ParseOptionalAmount(body.SellingPrice, "Geçerli bir satış fiyatı girin (0'dan büyük olmalı)")
			if err != nil {
				return err
			}
			cost.SellingPrice = sellingPrice
		}
		if body.Description != nil && strings.TrimSpace(*body.Description) != "" {
			cost.Description = *body.Description
		}
		if body.Category != nil {
			if !models.ValidCostCategory(*body.Category) {
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz maliyet kategorisi")
			}
			cost.Category = *body.Category
		}
		if body.Supplier != nil {
			cost.Supplier = *body.Supplier
		}
		if body.InvoiceNumber != nil {
			cost.InvoiceNumber = *body.InvoiceNumber
		}
		if body.Notes != nil {
			cost.Notes = *body.Notes
		}
		if body.Date != nil {
			date, err := ledger.ParseDate(body.Date, time.Now().Location())
			if err != nil {
				return err
			}
			cost.Date = date
		}

		if err := database.DB.Save(&cost).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Maliyet kaydı güncellenemedi")
		}

		return c.JSON(fiber.Map{
			"message": "Maliyet kaydı güncellendi",
			"cost":    toResponse(&cost),
		})
	}
}

// DELETE /api/costs/:id
func DeleteCostHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var cost models.Cost
		if err := scope.Filter(database.DB, user).
			First(&cost, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Maliyet kaydı bulunamadı")
		}

		if err := database.DB.Delete(&cost).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Maliyet kaydı silinemedi")
		}

		return c.JSON(fiber.Map{"message": "Maliyet kaydı silindi"})
	}
}
