package database

import (
	"path/filepath"
	"testing"

	"muhasebe-backend/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// OpenTest: testler için geçici dosyada sqlite veritabanı açar, şemayı
// kurar ve global DB'yi ona yönlendirir.
func OpenTest(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("test veritabanı açılamadı: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.UserProfile{},
		&models.RefreshToken{},
		&models.Sale{},
		&models.SaleCategory{},
		&models.Cost{},
		&models.CostCategory{},
		&models.Supplier{},
		&models.Expense{},
		&models.Report{},
		&models.ReportTemplate{},
	); err != nil {
		t.Fatalf("test migration hatası: %v", err)
	}

	DB = db
	return db
}
