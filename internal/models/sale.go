package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type SaleCategoryType string

const (
	SaleCategorySalon SaleCategoryType = "salon" // salon satışı
	SaleCategoryPaket SaleCategoryType = "paket" // paket servis
	SaleCategoryKurye SaleCategoryType = "kurye" // kurye / online sipariş
	SaleCategoryDiger SaleCategoryType = "diger"
)

func ValidSaleCategory(c SaleCategoryType) bool {
	switch c {
	case SaleCategorySalon, SaleCategoryPaket, SaleCategoryKurye, SaleCategoryDiger:
		return true
	}
	return false
}

// Sale: günlük satış kaydı. Aynı şubede aynı güne ikinci kayıt açılamaz.
type Sale struct {
	ID           uint             `gorm:"primaryKey"`
	Date         time.Time        `gorm:"index:idx_sales_date_store,unique;not null"`
	Amount       decimal.Decimal  `gorm:"type:decimal(10,2);not null"`
	Description  string           `gorm:"size:200"`
	Category     SaleCategoryType `gorm:"size:20;not null;default:salon"`
	StoreID      string           `gorm:"size:50;index:idx_sales_date_store,unique;index;not null;default:main_store"`
	RecordedByID uint             `gorm:"index;not null"`
	RecordedBy   User
	Notes        string `gorm:"size:500"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SaleCategory: genişletilebilir satış kategorisi tanımları
type SaleCategory struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:50;uniqueIndex;not null"`
	Description string `gorm:"size:200"`
	IsActive    bool   `gorm:"not null;default:true"`
	CreatedAt   time.Time
}
