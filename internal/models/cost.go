package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type CostCategoryType string

const (
	CostCategoryMalzeme    CostCategoryType = "malzeme"    // gıda malzemesi
	CostCategoryIsletme    CostCategoryType = "isletme"    // işletme gideri
	CostCategoryPersonel   CostCategoryType = "personel"   // personel maaşı
	CostCategorySuElektrik CostCategoryType = "su_elektrik"
	CostCategoryKira       CostCategoryType = "kira"
	CostCategoryDiger      CostCategoryType = "diger"
)

func ValidCostCategory(c CostCategoryType) bool {
	switch c {
	case CostCategoryMalzeme, CostCategoryIsletme, CostCategoryPersonel,
		CostCategorySuElektrik, CostCategoryKira, CostCategoryDiger:
		return true
	}
	return false
}

// Cost: sabit/dönemsel maliyet kaydı. SellingPrice opsiyoneldir ve
// maliyetten bağımsız bir satış fiyatı bilgisidir.
type Cost struct {
	ID            uint             `gorm:"primaryKey"`
	Date          time.Time        `gorm:"index;not null"`
	Amount        decimal.Decimal  `gorm:"type:decimal(10,2);not null"`
	Description   string           `gorm:"size:200;not null"`
	Category      CostCategoryType `gorm:"size:20;not null;default:malzeme"`
	StoreID       string           `gorm:"size:50;index;not null;default:main_store"`
	RecordedByID  uint             `gorm:"index;not null"`
	RecordedBy    User
	Supplier      string           `gorm:"size:100"`
	InvoiceNumber string           `gorm:"size:50"`
	SellingPrice  *decimal.Decimal `gorm:"type:decimal(10,2)"`
	Notes         string           `gorm:"size:500"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CostCategory: genişletilebilir maliyet kategorisi tanımları
type CostCategory struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:50;uniqueIndex;not null"`
	Description string `gorm:"size:200"`
	IsActive    bool   `gorm:"not null;default:true"`
	CreatedAt   time.Time
}

type Supplier struct {
	ID            uint   `gorm:"primaryKey"`
	Name          string `gorm:"size:100;uniqueIndex;not null"`
	ContactPerson string `gorm:"size:50"`
	Phone         string `gorm:"size:20"`
	Email         string `gorm:"size:100"`
	Address       string `gorm:"size:200"`
	IsActive      bool   `gorm:"not null;default:true"`
	Notes         string `gorm:"size:500"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
