package finance

import (
	"time"

	"muhasebe-backend/internal/models"
	"muhasebe-backend/internal/scope"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Summary struct {
	SalesTotal    decimal.Decimal `json:"sales_total"`
	CostsTotal    decimal.Decimal `json:"costs_total"`
	ExpensesTotal decimal.Decimal `json:"expenses_total"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	Profit        decimal.Decimal `json:"profit"`
}

// storeID yalnızca superuser için anlamlıdır: boşsa tüm mağazalar toplanır.
func sumAmount(db *gorm.DB, user *models.User, storeID string, model interface{}, start, end time.Time, inclusiveEnd bool) (decimal.Decimal, error) {
	q := scope.ForRequest(db.Model(model), user, storeID).
		Select("COALESCE(SUM(amount), 0)")
	if inclusiveEnd {
		q = q.Where("date >= ? AND date <= ?", start, end)
	} else {
		q = q.Where("date >= ? AND date < ?", start, end)
	}

	var total decimal.Decimal
	if err := q.Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func summarize(db *gorm.DB, user *models.User, storeID string, start, end time.Time, inclusiveEnd bool) (*Summary, error) {
	sales, err := sumAmount(db, user, storeID, &models.Sale{}, start, end, inclusiveEnd)
	if err != nil {
		return nil, err
	}
	costs, err := sumAmount(db, user, storeID, &models.Cost{}, start, end, inclusiveEnd)
	if err != nil {
		return nil, err
	}
	expenses, err := sumAmount(db, user, storeID, &models.Expense{}, start, end, inclusiveEnd)
	if err != nil {
		return nil, err
	}

	totalExpenses := costs.Add(expenses)
	return &Summary{
		SalesTotal:    sales,
		CostsTotal:    costs,
		ExpensesTotal: expenses,
		TotalExpenses: totalExpenses,
		Profit:        sales.Sub(totalExpenses), // negatif olabilir
	}, nil
}

// SummarizeRange: kapalı [start, end] aralığı için satış/maliyet/harcama
// toplamları ve kar. Boş aralıkta tüm alanlar sıfırdır.
func SummarizeRange(db *gorm.DB, user *models.User, storeID string, start, end time.Time) (*Summary, error) {
	return summarize(db, user, storeID, start, end, true)
}

// SummarizeDay: yarı açık [gün, ertesi gün) aralığı için toplamlar.
func SummarizeDay(db *gorm.DB, user *models.User, storeID string, day time.Time) (*Summary, error) {
	start, end := DayRange(day)
	return summarize(db, user, storeID, start, end, false)
}

// SummarizeMonth: takvim ayı toplamları.
func SummarizeMonth(db *gorm.DB, user *models.User, storeID string, year, month int, loc *time.Location) (*Summary, error) {
	start, end := MonthRange(year, month, loc)
	return SummarizeRange(db, user, storeID, start, end)
}
