package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ReportType string

const (
	ReportTypeDaily     ReportType = "daily"
	ReportTypeWeekly    ReportType = "weekly"
	ReportTypeMonthly   ReportType = "monthly"
	ReportTypeQuarterly ReportType = "quarterly"
	ReportTypeYearly    ReportType = "yearly"
	ReportTypeCustom    ReportType = "custom"
)

func ValidReportType(t ReportType) bool {
	switch t {
	case ReportTypeDaily, ReportTypeWeekly, ReportTypeMonthly,
		ReportTypeQuarterly, ReportTypeYearly, ReportTypeCustom:
		return true
	}
	return false
}

// Report: bir döneme ait hesaplanmış finansal özetin kalıcı kaydı.
// ProfitMargin her kayıtta sunucu tarafında yeniden hesaplanır,
// dışarıdan set edilemez.
type Report struct {
	ID           uint       `gorm:"primaryKey"`
	Name         string     `gorm:"size:100;not null"`
	ReportType   ReportType `gorm:"size:20;index:idx_reports_store_type,priority:2;not null;default:daily"`
	StartDate    time.Time  `gorm:"index;not null"`
	EndDate      time.Time  `gorm:"index;not null"`
	StoreID      string     `gorm:"size:50;index:idx_reports_store_type,priority:1;not null;default:main_store"`
	CreatedByID  uint       `gorm:"index;not null"`
	CreatedBy    User
	TotalSales   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalCosts   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	NetProfit    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	ProfitMargin decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	Notes        string          `gorm:"size:1000"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// kar marjı (%) = net kar / toplam satış * 100, satış yoksa 0
func (r *Report) CalculateProfitMargin() {
	if r.TotalSales.IsPositive() {
		r.ProfitMargin = r.NetProfit.Div(r.TotalSales).Mul(decimal.NewFromInt(100)).Round(2)
	} else {
		r.ProfitMargin = decimal.Zero
	}
}

func (r *Report) BeforeSave(tx *gorm.DB) error {
	r.CalculateProfitMargin()
	return nil
}

// ReportTemplate: rapor tipi başına en fazla bir tane varsayılan şablon olabilir
type ReportTemplate struct {
	ID           uint       `gorm:"primaryKey"`
	Name         string     `gorm:"size:100;uniqueIndex;not null"`
	Description  string     `gorm:"size:500"`
	TemplateType ReportType `gorm:"size:20;index;not null"`
	IsDefault    bool       `gorm:"not null;default:false"`
	CreatedByID  uint       `gorm:"index;not null"`
	CreatedBy    User
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
