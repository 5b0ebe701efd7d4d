package models

import "time"

type UserRole string

const (
	RoleFounder    UserRole = "founder"    // kurucu / zincir sahibi
	RoleFranchisee UserRole = "franchisee" // bayi
	RoleStaff      UserRole = "staff"      // personel
)

type User struct {
	ID           uint     `gorm:"primaryKey"`
	Username     string   `gorm:"size:100;uniqueIndex;not null"`
	Email        string   `gorm:"size:100"`
	FirstName    string   `gorm:"size:100"`
	LastName     string   `gorm:"size:100"`
	PasswordHash string   `gorm:"size:255;not null"`
	Role         UserRole `gorm:"size:20;not null;default:founder"`
	StoreID      string   `gorm:"size:50;index;not null;default:main_store"`
	Phone        string   `gorm:"size:20"`
	IsActive     bool     `gorm:"not null;default:true"`
	IsSuperuser  bool     `gorm:"not null;default:false"`
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Profile *UserProfile
}

// UserProfile: kullanıcının ek bilgileri (avatar, kısa tanıtım)
type UserProfile struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"uniqueIndex;not null"`
	Avatar    string `gorm:"size:200"`
	Bio       string `gorm:"size:500"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
