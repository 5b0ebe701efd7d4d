package sales

import (
	"encoding/json"
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

type CreateSaleRequest struct {
	Date        *string                 `json:"date"` // "2024-03-05" veya "2024-03-05 18:30", boşsa şimdi
	Amount      json.RawMessage         `json:"amount"`
	Description string                  `json:"description"`
	Category    models.SaleCategoryType `json:"category"`
	Notes       string                  `json:"notes"`
	// superuser için opsiyonel:
	StoreID string `json:"store_id"`
}

type UpdateSaleRequest struct {
	Date     *string                  `json:"date"`
	Amount   json.RawMessage          `json:"amount"`
	Category *models.SaleCategoryType `json:"category"`
	Notes    *string                  `json:"notes"`
}

type SaleResponse struct {
	ID          uint                    `json:"id"`
	Date        string                  `json:"date"`
	Amount      decimal.Decimal         `json:"amount"`
	Description string                  `json:"description"`
	Category    models.SaleCategoryType `json:"category"`
	StoreID     string                  `json:"store_id"`
	RecordedBy  uint                    `json:"recorded_by"`
	Notes       string                  `json:"notes"`
}

type TodaySalesResponse struct {
	Date  string          `json:"date"`
	Items []SaleResponse  `json:"items"`
	Total decimal.Decimal `json:"total"`
}

func toResponse(s *models.Sale) SaleResponse {
	return SaleResponse{
		ID:          s.ID,
		Date:        s.Date.Format("2006-01-02 15:04"),
		Amount:      s.Amount,
		Description: s.Description,
		Category:    s.Category,
		StoreID:     s.StoreID,
		RecordedBy:  s.RecordedByID,
		Notes:       s.Notes,
	}
}

// Aynı mağazada aynı takvim gününe ikinci satış kaydı açılamaz.
// excludeID güncelleme sırasında kaydın kendisini dışarıda tutar.
func dayTaken(storeID string, date time.Time, excludeID uint) (bool, error) {
	start, end := finance.DayRange(date)

	var count int64
	q := database.DB.Model(&models.Sale{}).
		Where("store_id = ? AND date >= ? AND date < ?", storeID, start, end)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// POST /api/sales
func CreateSaleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var body CreateSaleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		amount, err := ledger.ParseAmount(body.Amount, "Geçerli bir satış tutarı girin (0'dan büyük olmalı)")
		if err != nil {
			return err
		}

		date, err := ledger.ParseDate(body.Date, time.Now().Location())
		if err != nil {
			return err
		}

		if body.Category == "" {
			body.Category = models.SaleCategorySalon
		}
		if !models.ValidSaleCategory(body.Category) {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz satış kategorisi")
		}

		storeID := scope.StoreIDForWrite(user, body.StoreID)

		taken, err := dayTaken(storeID, date, 0)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Satış kaydı oluşturulamadı")
		}
		if taken {
			return fiber.NewError(fiber.StatusBadRequest, "Bu gün için satış kaydı zaten mevcut")
		}

		description := body.Description
		if description == "" {
			description = "Günlük satış"
		}

		sale := models.Sale{
			Date:         date,
			Amount:       amount,
			Description:  description,
			Category:     body.Category,
			StoreID:      storeID,
			RecordedByID: user.ID,
			Notes:        body.Notes,
		}

		if err := database.DB.Create(&sale).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Satış kaydı oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "Satış kaydedildi",
			"sale":    toResponse(&sale),
		})
	}
}

// GET /api/sales?year=2024&month=3[&store_id=...]
// year/month verilmezse içinde bulunulan ay listelenir.
func ListSalesHandler() fiber.Handler {
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

		var sales []models.Sale
		q := scope.ForRequest(database.DB, user, c.Query("store_id")).
			Where("date >= ? AND date <= ?", start, end).
			Order("date desc, created_at desc")
		if err := q.Find(&sales).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Satışlar listelenemedi")
		}

		items := make([]SaleResponse, 0, len(sales))
		var total decimal.Decimal
		for i := range sales {
			items = append(items, toResponse(&sales[i]))
			total = total.Add(sales[i].Amount)
		}

		return c.JSON(fiber.Map{
			"year":  year,
			"month": month,
			"items": items,
			"total": total,
		})
	}
}

// GET /api/sales/summary/today
func TodaySummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		start, end := finance.DayRange(time.Now())

		var sales []models.Sale
		q := scope.ForRequest(database.DB, user, c.Query("store_id")).
			Where("date >= ? AND date < ?", start, end).
			Order("date desc")
		if err := q.Find(&sales).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Günlük özet hesaplanamadı")
		}

		resp := TodaySalesResponse{
			Date:  start.Format("2006-01-02"),
			Items: make([]SaleResponse, 0, len(sales)),
		}
		for i := range sales {
			resp.Items = append(resp.Items, toResponse(&sales[i]))
			resp.Total = resp.Total.Add(sales[i].Amount)
		}

		return c.JSON(resp)
	}
}

// PUT /api/sales/:id
func UpdateSaleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var sale models.Sale
		if err := scope.Filter(database.DB, user).
			First(&sale, "id = ?", c.Params("id")).Error; err != nil {
			// mağaza dışı kayıtlar da "bulunamadı" döner, varlık sızdırılmaz
			return fiber.NewError(fiber.StatusNotFound, "Satış kaydı bulunamadı")
		}

		var body UpdateSaleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if len(body.Amount) > 0 {
			amount, err := ledger.ParseAmount(body.Amount, "Geçerli bir satış tutarı girin (0'dan büyük olmalı)")
			if err != nil {
				return err
			}
			sale.Amount = amount
		}
		if body.Category != nil {
			if !models.ValidSaleCategory(*body.Category) {
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz satış kategorisi")
			}
			sale.Category = *body.Category
		}
		if body.Notes != nil {
			sale.Notes = *body.Notes
		}
		if body.Date != nil {
			date, err := ledger.ParseDate(body.Date, time.Now().Location())
			if err != nil {
				return err
			}
			taken, err := dayTaken(sale.StoreID, date, sale.ID)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Satış kaydı güncellenemedi")
			}
			if taken {
				return fiber.NewError(fiber.StatusBadRequest, "Bu gün için satış kaydı zaten mevcut")
			}
			sale.Date = date
		}

		if err := database.DB.Save(&sale).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Satış kaydı güncellenemedi")
		}

		return c.JSON(fiber.Map{
			"message": "Satış kaydı güncellendi",
			"sale":    toResponse(&sale),
		})
	}
}

// DELETE /api/sales/:id
func DeleteSaleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var sale models.Sale
		if err := scope.Filter(database.DB, user).
			First(&sale, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Satış kaydı bulunamadı")
		}

		if err := database.DB.Delete(&sale).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Satış kaydı silinemedi")
		}

		return c.JSON(fiber.Map{"message": "Satış kaydı silindi"})
	}
}
