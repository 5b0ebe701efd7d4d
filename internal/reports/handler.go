package reports

import (
	"strings"
	"time"

	"muhasebe-backend/internal/auth"
	"muhasebe-backend/internal/database"
	"muhasebe-backend/internal/finance"
	"muhasebe-backend/internal/models"
	"muhasebe-backend/internal/scope"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type CreateReportRequest struct {
	Name       string            `json:"name"`
	ReportType models.ReportType `json:"report_type"`
	StartDate  string            `json:"start_date"` // "2024-03-01"
	EndDate    string            `json:"end_date"`
	Notes      string            `json:"notes"`
	StoreID    string            `json:"store_id"` // superuser için
	// Toplamlar verilmezse dönem defterden hesaplanır.
	// profit_margin alanı kabul edilmez, her zaman sunucuda hesaplanır.
	TotalSales *decimal.Decimal `json:"total_sales"`
	TotalCosts *decimal.Decimal `json:"total_costs"`
}

type UpdateReportRequest struct {
	Name       *string          `json:"name"`
	Notes      *string          `json:"notes"`
	TotalSales *decimal.Decimal `json:"total_sales"`
	TotalCosts *decimal.Decimal `json:"total_costs"`
}

type ReportResponse struct {
	ID           uint              `json:"id"`
	Name         string            `json:"name"`
	ReportType   models.ReportType `json:"report_type"`
	StartDate    string            `json:"start_date"`
	EndDate      string            `json:"end_date"`
	StoreID      string            `json:"store_id"`
	CreatedBy    uint              `json:"created_by"`
	TotalSales   decimal.Decimal   `json:"total_sales"`
	TotalCosts   decimal.Decimal   `json:"total_costs"`
	NetProfit    decimal.Decimal   `json:"net_profit"`
	ProfitMargin decimal.Decimal   `json:"profit_margin"`
	Notes        string            `json:"notes"`
	CreatedAt    string            `json:"created_at"`
}

func toResponse(r *models.Report) ReportResponse {
	return ReportResponse{
		ID:           r.ID,
		Name:         r.Name,
		ReportType:   r.ReportType,
		StartDate:    r.StartDate.Format("2006-01-02"),
		EndDate:      r.EndDate.Format("2006-01-02"),
		StoreID:      r.StoreID,
		CreatedBy:    r.CreatedByID,
		TotalSales:   r.TotalSales,
		TotalCosts:   r.TotalCosts,
		NetProfit:    r.NetProfit,
		ProfitMargin: r.ProfitMargin,
		Notes:        r.Notes,
		CreatedAt:    r.CreatedAt.Format(time.RFC3339),
	}
}

func parseDateOnly(s, field string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(s), time.Now().Location())
	if err != nil {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, field+" 'YYYY-AA-GG' formatında olmalı")
	}
	return t, nil
}

// POST /api/reports
func CreateReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var body CreateReportRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Rapor adı zorunlu")
		}
		if body.ReportType == "" {
			body.ReportType = models.ReportTypeDaily
		}
		if !models.ValidReportType(body.ReportType) {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz rapor tipi")
		}

		startDate, err := parseDateOnly(body.StartDate, "start_date")
		if err != nil {
			return err
		}
		endDate, err := parseDateOnly(body.EndDate, "end_date")
		if err != nil {
			return err
		}
		if endDate.Before(startDate) {
			return fiber.NewError(fiber.StatusBadRequest, "end_date start_date'ten önce olamaz")
		}

		storeID := scope.StoreIDForWrite(user, body.StoreID)

		report := models.Report{
			Name:        body.Name,
			ReportType:  body.ReportType,
			StartDate:   startDate,
			EndDate:     endDate,
			StoreID:     storeID,
			CreatedByID: user.ID,
			Notes:       body.Notes,
		}

		if body.TotalSales != nil && body.TotalCosts != nil {
			report.TotalSales = body.TotalSales.Round(2)
			report.TotalCosts = body.TotalCosts.Round(2)
		} else {
			// dönem toplamları defterden: gün sonu dahil kapalı aralık
			rangeEnd := endDate.AddDate(0, 0, 1).Add(-time.Microsecond)
			summary, err := finance.SummarizeRange(database.DB, user, storeID, startDate, rangeEnd)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Dönem toplamları hesaplanamadı")
			}
			report.TotalSales = summary.SalesTotal
			report.TotalCosts = summary.TotalExpenses
		}
		report.NetProfit = report.TotalSales.Sub(report.TotalCosts)

		// ProfitMargin BeforeSave kancasında hesaplanır
		if err := database.DB.Create(&report).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Rapor oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "Rapor oluşturuldu",
			"report":  toResponse(&report),
		})
	}
}

// GET /api/reports[?store_id=]
func ListReportsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var reports []models.Report
		q := scope.ForRequest(database.DB, user, c.Query("store_id")).
			Order("created_at desc")
		if err := q.Find(&reports).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Raporlar listelenemedi")
		}

		items := make([]ReportResponse, 0, len(reports))
		for i := range reports {
			items = append(items, toResponse(&reports[i]))
		}
		return c.JSON(items)
	}
}

// GET /api/reports/:id
func GetReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var report models.Report
		if err := scope.Filter(database.DB, user).
			First(&report, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Rapor bulunamadı")
		}
		return c.JSON(toResponse(&report))
	}
}

// PUT /api/reports/:id — toplam değişirse kar marjı yeniden hesaplanır
func UpdateReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var report models.Report
		if err := scope.Filter(database.DB, user).
			First(&report, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Rapor bulunamadı")
		}

		var body UpdateReportRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.Name != nil && strings.TrimSpace(*body.Name) != "" {
			report.Name = strings.TrimSpace(*body.Name)
		}
		if body.Notes != nil {
			report.Notes = *body.Notes
		}
		if body.TotalSales != nil {
			report.TotalSales = body.TotalSales.Round(2)
		}
		if body.TotalCosts != nil {
			report.TotalCosts = body.TotalCosts.Round(2)
		}
		report.NetProfit = report.TotalSales.Sub(report.TotalCosts)

		if err := database.DB.Save(&report).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Rapor güncellenemedi")
		}

		return c.JSON(fiber.Map{
			"message": "Rapor güncellendi",
			"report":  toResponse(&report),
		})
	}
}

// DELETE /api/reports/:id
func DeleteReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var report models.Report
		if err := scope.Filter(database.DB, user).
			First(&report, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Rapor bulunamadı")
		}

		if err := database.DB.Delete(&report).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Rapor silinemedi")
		}
		return c.JSON(fiber.Map{"message": "Rapor silindi"})
	}
}
