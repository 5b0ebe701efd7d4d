package models

import "time"

// RefreshToken: logout sonrası geçersiz kılınabilmesi için refresh token kayıtları
type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"`
	JTI       string `gorm:"size:64;uniqueIndex;not null"`
	UserID    uint   `gorm:"index;not null"`
	User      User
	ExpiresAt time.Time `gorm:"index;not null"`
	Revoked   bool      `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
