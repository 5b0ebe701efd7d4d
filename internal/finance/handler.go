package finance

import (
	"time"

	"muhasebe-backend/internal/auth"
	"muhasebe-backend/internal/database"
	"muhasebe-backend/internal/ledger"

	"github.com/gofiber/fiber/v2"
)

type MonthlySummaryResponse struct {
	StoreID string   `json:"store_id"` // superuser tüm mağazaları toplarken "all"
	Year    int      `json:"year"`
	Month   int      `json:"month"`
	Summary *Summary `json:"summary"`
}

type ProfitAnalysisResponse struct {
	StoreID      string   `json:"store_id"`
	CurrentMonth string   `json:"current_month"` // "2024-03" biçiminde
	Summary      *Summary `json:"summary"`
}

func scopeLabel(storeID string, isSuperuser bool, requested string) string {
	if !isSuperuser {
		return storeID
	}
	if requested != "" {
		return requested
	}
	return "all"
}

// -----------------------------------
// GET /api/finance/summary/monthly
// ?year=2024&month=3[&store_id=main_store]
// -----------------------------------
func MonthlySummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		year, month, err := ledger.ParseYearMonth(c)
		if err != nil {
			return err
		}

		requested := c.Query("store_id")
		summary, err := SummarizeMonth(database.DB, user, requested, year, month, time.Now().Location())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Aylık özet hesaplanamadı")
		}

		return c.JSON(MonthlySummaryResponse{
			StoreID: scopeLabel(user.StoreID, user.IsSuperuser, requested),
			Year:    year,
			Month:   month,
			Summary: summary,
		})
	}
}

// -----------------------------------
// GET /api/finance/profit-analysis
// İçinde bulunulan ayın kar analizi
// -----------------------------------
func ProfitAnalysisHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		now := time.Now()
		requested := c.Query("store_id")
		summary, err := SummarizeMonth(database.DB, user, requested, now.Year(), int(now.Month()), now.Location())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kar analizi hesaplanamadı")
		}

		return c.JSON(ProfitAnalysisResponse{
			StoreID:      scopeLabel(user.StoreID, user.IsSuperuser, requested),
			CurrentMonth: now.Format("2006-01"),
			Summary:      summary,
		})
	}
}
