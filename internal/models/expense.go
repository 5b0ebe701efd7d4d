package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ExpenseCategoryType string

const (
	ExpenseCategoryGunluk     ExpenseCategoryType = "gunluk" // günlük harcama
	ExpenseCategoryMalzeme    ExpenseCategoryType = "malzeme"
	ExpenseCategorySuElektrik ExpenseCategoryType = "su_elektrik"
	ExpenseCategoryKira       ExpenseCategoryType = "kira"
	ExpenseCategoryPersonel   ExpenseCategoryType = "personel"
	ExpenseCategoryDiger      ExpenseCategoryType = "diger"
)

func ValidExpenseCategory(c ExpenseCategoryType) bool {
	switch c {
	case ExpenseCategoryGunluk, ExpenseCategoryMalzeme, ExpenseCategorySuElektrik,
		ExpenseCategoryKira, ExpenseCategoryPersonel, ExpenseCategoryDiger:
		return true
	}
	return false
}

// Expense: günlük ufak harcama kaydı
type Expense struct {
	ID           uint                `gorm:"primaryKey"`
	Date         time.Time           `gorm:"index;not null"`
	Amount       decimal.Decimal     `gorm:"type:decimal(10,2);not null"`
	ItemName     string              `gorm:"size:200;not null"`
	Category     ExpenseCategoryType `gorm:"size:20;index;not null;default:gunluk"`
	StoreID      string              `gorm:"size:50;index;not null;default:main_store"`
	RecordedByID uint                `gorm:"index;not null"`
	RecordedBy   User
	Notes        string `gorm:"size:500"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
