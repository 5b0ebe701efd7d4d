package auth

import (
	"strings"
	"time"

	"muhasebe-backend/internal/config"
	"muhasebe-backend/internal/database"
	"muhasebe-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type RegisterRequest struct {
	Username        string          `json:"username"`
	Email           string          `json:"email"`
	Password        string          `json:"password"`
	PasswordConfirm string          `json:"password_confirm"`
	Role            models.UserRole `json:"role"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

type UpdateProfileRequest struct {
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	Avatar    *string `json:"avatar"`
	Bio       *string `json:"bio"`
}

type ChangePasswordRequest struct {
	OldPassword        string `json:"old_password"`
	NewPassword        string `json:"new_password"`
	NewPasswordConfirm string `json:"new_password_confirm"`
}

type UserResponse struct {
	ID          uint            `json:"id"`
	Username    string          `json:"username"`
	Email       string          `json:"email"`
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	Role        models.UserRole `json:"role"`
	StoreID     string          `json:"store_id"`
	Phone       string          `json:"phone"`
	IsActive    bool            `json:"is_active"`
	IsSuperuser bool            `json:"is_superuser"`
	LastLoginAt *string         `json:"last_login_at"`
	CreatedAt   string          `json:"created_at"`
}

func NewUserResponse(u *models.User) UserResponse {
	resp := UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Role:        u.Role,
		StoreID:     u.StoreID,
		Phone:       u.Phone,
		IsActive:    u.IsActive,
		IsSuperuser: u.IsSuperuser,
		CreatedAt:   u.CreatedAt.Format(time.RFC3339),
	}
	if u.LastLoginAt != nil {
		s := u.LastLoginAt.Format(time.RFC3339)
		resp.LastLoginAt = &s
	}
	return resp
}

func validRole(r models.UserRole) bool {
	switch r {
	case models.RoleFounder, models.RoleFranchisee, models.RoleStaff:
		return true
	}
	return false
}

// POST /api/auth/register
func RegisterHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Username = strings.TrimSpace(body.Username)
		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		if body.Username == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Kullanıcı adı ve şifre zorunlu")
		}
		if len(body.Password) < 6 {
			return fiber.NewError(fiber.StatusBadRequest, "Şifre en az 6 karakter olmalı")
		}
		if body.Password != body.PasswordConfirm {
			return fiber.NewError(fiber.StatusBadRequest, "Şifreler eşleşmiyor")
		}
		if body.Role == "" {
			body.Role = models.RoleFounder
		}
		if !validRole(body.Role) {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz rol")
		}

		var count int64
		database.DB.Model(&models.User{}).
			Where("username = ?", body.Username).
			Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Bu kullanıcı adı zaten kayıtlı")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şifre hashlenemedi")
		}

		user := models.User{
			Username:     body.Username,
			Email:        body.Email,
			PasswordHash: string(hash),
			Role:         body.Role,
		}

		if err := database.DB.Create(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "Hesap oluşturuldu",
			"user":    NewUserResponse(&user),
		})
	}
}

// POST /api/auth/login
func LoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Username = strings.TrimSpace(body.Username)

		var user models.User
		if err := database.DB.Where("username = ?", body.Username).First(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Kullanıcı adı veya şifre hatalı")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Kullanıcı adı veya şifre hatalı")
		}

		if !user.IsActive {
			return fiber.NewError(fiber.StatusBadRequest, "Hesap pasife alınmış")
		}

		tokens, err := GenerateTokenPair(cfg.JWTSecret, &user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Token oluşturulamadı")
		}

		now := time.Now()
		user.LastLoginAt = &now
		database.DB.Model(&user).Update("last_login_at", now)

		return c.JSON(fiber.Map{
			"message": "Giriş başarılı",
			"user":    NewUserResponse(&user),
			"tokens":  tokens,
		})
	}
}

// POST /api/auth/refresh
func RefreshHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RefreshRequest
		if err := c.BodyParser(&body); err != nil || body.Refresh == "" {
			return fiber.NewError(fiber.StatusBadRequest, "refresh token zorunlu")
		}

		claims, _, err := ParseRefreshToken(cfg.JWTSecret, body.Refresh)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Geçersiz veya iptal edilmiş refresh token")
		}

		var user models.User
		if err := database.DB.First(&user, "id = ?", claims.UserID).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Kullanıcı bulunamadı")
		}
		if !user.IsActive {
			return fiber.NewError(fiber.StatusUnauthorized, "Hesap pasif durumda")
		}

		access, err := GenerateAccessToken(cfg.JWTSecret, &user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Token oluşturulamadı")
		}

		return c.JSON(fiber.Map{"access": access})
	}
}

// POST /api/auth/logout — refresh token'ı geçersiz kılar
func LogoutHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RefreshRequest
		if err := c.BodyParser(&body); err != nil || body.Refresh == "" {
			return fiber.NewError(fiber.StatusBadRequest, "refresh token zorunlu")
		}

		_, record, err := ParseRefreshToken(cfg.JWTSecret, body.Refresh)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Çıkış yapılamadı")
		}

		if err := database.DB.Model(record).Update("revoked", true).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Çıkış yapılamadı")
		}

		return c.JSON(fiber.Map{"message": "Çıkış başarılı"})
	}
}

// GET /api/auth/profile
func ProfileHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := CurrentUser(c)
		if err != nil {
			return err
		}
		return c.JSON(NewUserResponse(user))
	}
}

// PUT /api/auth/profile — rol ve mağaza buradan değiştirilemez
func UpdateProfileHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := CurrentUser(c)
		if err != nil {
			return err
		}

		var body UpdateProfileRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.Email != nil {
			user.Email = strings.TrimSpace(strings.ToLower(*body.Email))
		}
		if body.FirstName != nil {
			user.FirstName = *body.FirstName
		}
		if body.LastName != nil {
			user.LastName = *body.LastName
		}
		if body.Phone != nil {
			user.Phone = *body.Phone
		}

		if err := database.DB.Save(user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Profil güncellenemedi")
		}

		if body.Avatar != nil || body.Bio != nil {
			var profile models.UserProfile
			database.DB.Where("user_id = ?", user.ID).
				FirstOrInit(&profile, models.UserProfile{UserID: user.ID})
			if body.Avatar != nil {
				profile.Avatar = *body.Avatar
			}
			if body.Bio != nil {
				profile.Bio = *body.Bio
			}
			if err := database.DB.Save(&profile).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Profil güncellenemedi")
			}
		}

		return c.JSON(fiber.Map{
			"message": "Profil güncellendi",
			"user":    NewUserResponse(user),
		})
	}
}

// POST /api/auth/change-password
func ChangePasswordHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := CurrentUser(c)
		if err != nil {
			return err
		}

		var body ChangePasswordRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.OldPassword)); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Eski şifre hatalı")
		}
		if len(body.NewPassword) < 6 {
			return fiber.NewError(fiber.StatusBadRequest, "Yeni şifre en az 6 karakter olmalı")
		}
		if body.NewPassword != body.NewPasswordConfirm {
			return fiber.NewError(fiber.StatusBadRequest, "Yeni şifreler eşleşmiyor")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şifre hashlenemedi")
		}

		if err := database.DB.Model(user).Update("password_hash", string(hash)).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şifre güncellenemedi")
		}

		return c.JSON(fiber.Map{"message": "Şifre değiştirildi"})
	}
}

// GET /api/auth/me
func MeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := CurrentUser(c)
		if err != nil {
			return err
		}

		response := fiber.Map{"user": NewUserResponse(user)}

		var profile models.UserProfile
		if err := database.DB.First(&profile, "user_id = ?", user.ID).Error; err == nil {
			response["profile"] = fiber.Map{
				"avatar": profile.Avatar,
				"bio":    profile.Bio,
			}
		}

		return c.JSON(response)
	}
}
