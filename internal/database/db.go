package database

import (
	"log"

	"muhasebe-backend/internal/config"
	"muhasebe-backend/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	switch cfg.DBDriver {
	case "sqlite":
		DB, err = gorm.Open(sqlite.Open(cfg.DatabaseDSN), &gorm.Config{})
	default:
		DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	}
	if err != nil {
		log.Fatalf("Veritabanına bağlanılamadı: %v", err)
	}

	// Eski kurulumlarda sales/costs/expenses tablolarındaki date kolonu
	// DATE tipindeydi, saat bilgisiyle birlikte tutulmaya geçildi.
	// Bu manuel migration mevcut kayıtları korumak için (AutoMigrate'ten ÖNCE)
	if cfg.DBDriver == "postgres" {
		for _, table := range []string{"sales", "costs", "expenses"} {
			if !DB.Migrator().HasTable(table) {
				continue
			}
			var colType string
			DB.Raw(`
				SELECT data_type FROM information_schema.columns
				WHERE table_name = ? AND column_name = 'date'
			`, table).Scan(&colType)
			if colType == "date" {
				log.Printf("%s.date kolonu timestamp tipine çevriliyor...", table)
				if err := DB.Exec("ALTER TABLE " + table + " ALTER COLUMN date TYPE timestamptz USING date::timestamptz").Error; err != nil {
					log.Printf("%s.date dönüştürülürken hata: %v", table, err)
				} else {
					log.Printf("%s.date kolonu timestamp oldu", table)
				}
			}
		}
	}

	err = DB.AutoMigrate(
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
	)
	if err != nil {
		log.Fatalf("AutoMigrate hatası: %v", err)
	}

	log.Println("Veritabanı bağlantısı başarılı. Migration tamamlandı.")
}
