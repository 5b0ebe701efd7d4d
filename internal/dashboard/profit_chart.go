package dashboard

import (
	"fmt"
	"time"

	"muhasebe-backend/internal/auth"
	"muhasebe-backend/internal/database"
	"muhasebe-backend/internal/finance"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type ProfitChartPoint struct {
	Label    string          `json:"label"` // "2024-03"
	Sales    decimal.Decimal `json:"sales"`
	Costs    decimal.Decimal `json:"costs"`
	Expenses decimal.Decimal `json:"expenses"`
	Profit   decimal.Decimal `json:"profit"`
}

type ProfitChartGrandTotals struct {
	Sales    decimal.Decimal `json:"sales"`
	Costs    decimal.Decimal `json:"costs"`
	Expenses decimal.Decimal `json:"expenses"`
	Profit   decimal.Decimal `json:"profit"`
}

type ProfitChartResponse struct {
	Year        int                    `json:"year"`
	Points      []ProfitChartPoint     `json:"points"`
	GrandTotals ProfitChartGrandTotals `json:"grand_totals"`
}

// GET /api/dashboard/profit-chart?year=2024[&store_id=]
// Yılın on iki ayı için satış/maliyet/harcama ve kar noktaları.
func ProfitChartHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		now := time.Now()
		year := now.Year()
		if yearStr := c.Query("year"); yearStr != "" {
			if _, err := fmt.Sscan(yearStr, &year); err != nil || year < 2000 {
				return fiber.NewError(fiber.StatusBadRequest, "year geçersiz")
			}
		}

		requested := c.Query("store_id")

		resp := ProfitChartResponse{
			Year:   year,
			Points: make([]ProfitChartPoint, 0, 12),
		}

		for month := 1; month <= 12; month++ {
			summary, err := finance.SummarizeMonth(database.DB, user, requested, year, month, now.Location())
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Grafik verisi toplanırken hata oluştu")
			}

			resp.Points = append(resp.Points, ProfitChartPoint{
				Label:    fmt.Sprintf("%04d-%02d", year, month),
				Sales:    summary.SalesTotal,
				Costs:    summary.CostsTotal,
				Expenses: summary.ExpensesTotal,
				Profit:   summary.Profit,
			})

			resp.GrandTotals.Sales = resp.GrandTotals.Sales.Add(summary.SalesTotal)
			resp.GrandTotals.Costs = resp.GrandTotals.Costs.Add(summary.CostsTotal)
			resp.GrandTotals.Expenses = resp.GrandTotals.Expenses.Add(summary.ExpensesTotal)
			resp.GrandTotals.Profit = resp.GrandTotals.Profit.Add(summary.Profit)
		}

		return c.JSON(resp)
	}
}
