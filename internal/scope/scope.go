package scope

import (
	"muhasebe-backend/internal/models"

	"gorm.io/gorm"
)

// Filter: mağaza bazlı veri izolasyonu. Superuser tüm mağazaları görür,
// diğer herkes yalnızca kendi mağazasının kayıtlarını. Her listeleme ve
// tekil kayıt sorgusu bu filtreden geçer.
func Filter(db *gorm.DB, user *models.User) *gorm.DB {
	if user.IsSuperuser {
		return db
	}
	return db.Where("store_id = ?", user.StoreID)
}

// ForRequest: taban filtre üstüne, superuser'ın ?store_id= parametresiyle
// tek bir mağazaya daralması. Normal kullanıcıda parametre yok sayılır.
func ForRequest(db *gorm.DB, user *models.User, requested string) *gorm.DB {
	db = Filter(db, user)
	if user.IsSuperuser && requested != "" {
		db = db.Where("store_id = ?", requested)
	}
	return db
}

// StoreIDForWrite: yeni kayıtların store_id'si her zaman kaydı açan
// kullanıcıdan gelir. Superuser istersek başka mağaza adına kayıt açabilir.
func StoreIDForWrite(user *models.User, requested string) string {
	if user.IsSuperuser && requested != "" {
		return requested
	}
	return user.StoreID
}
