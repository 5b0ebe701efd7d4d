package accounts

import (
	"strings"

	"muhasebe-backend/internal/auth"
	"muhasebe-backend/internal/database"
	"muhasebe-backend/internal/models"
	"muhasebe-backend/internal/scope"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type CreateUserRequest struct {
	Username        string          `json:"username"`
	Email           string          `json:"email"`
	Password        string          `json:"password"`
	PasswordConfirm string          `json:"password_confirm"`
	FirstName       string          `json:"first_name"`
	LastName        string          `json:"last_name"`
	Role            models.UserRole `json:"role"`
	Phone           string          `json:"phone"`
	StoreID         string          `json:"store_id"` // superuser için
}

type UpdateUserRequest struct {
	Email     *string          `json:"email"`
	FirstName *string          `json:"first_name"`
	LastName  *string          `json:"last_name"`
	Phone     *string          `json:"phone"`
	Role      *models.UserRole `json:"role"`
	StoreID   *string          `json:"store_id"`
	IsActive  *bool            `json:"is_active"`
}

func validRole(r models.UserRole) bool {
	switch r {
	case models.RoleFounder, models.RoleFranchisee, models.RoleStaff:
		return true
	}
	return false
}

// GET /api/users — mağaza kapsamında listeleme
func ListUsersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var users []models.User
		if err := scope.ForRequest(database.DB, user, c.Query("store_id")).
			Order("created_at desc").Find(&users).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcılar listelenemedi")
		}

		items := make([]auth.UserResponse, 0, len(users))
		for i := range users {
			items = append(items, auth.NewUserResponse(&users[i]))
		}
		return c.JSON(items)
	}
}

// POST /api/users — yeni kullanıcının mağazası her zaman oluşturan
// kullanıcıdan gelir, gövdeden farklı mağaza enjekte edilemez
func CreateUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		creator, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var body CreateUserRequest
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
			body.Role = models.RoleStaff
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
			FirstName:    body.FirstName,
			LastName:     body.LastName,
			PasswordHash: string(hash),
			Role:         body.Role,
			StoreID:      scope.StoreIDForWrite(creator, body.StoreID),
			Phone:        body.Phone,
			IsActive:     true,
		}

		if err := database.DB.Create(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "Kullanıcı oluşturuldu",
			"user":    auth.NewUserResponse(&user),
		})
	}
}

// GET /api/users/:id
func GetUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requester, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var user models.User
		if err := scope.Filter(database.DB, requester).
			First(&user, "id = ?", c.Params("id")).Error; err != nil {
			// mağaza dışı kullanıcılar da "bulunamadı" döner
			return fiber.NewError(fiber.StatusNotFound, "Kullanıcı bulunamadı")
		}
		return c.JSON(auth.NewUserResponse(&user))
	}
}

// PUT /api/users/:id — rol ve mağaza değişikliği founder/superuser işi
func UpdateUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requester, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var user models.User
		if err := scope.Filter(database.DB, requester).
			First(&user, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kullanıcı bulunamadı")
		}

		var body UpdateUserRequest
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
		if body.IsActive != nil {
			user.IsActive = *body.IsActive
		}

		privileged := requester.IsSuperuser || requester.Role == models.RoleFounder
		if body.Role != nil {
			if !privileged {
				return fiber.NewError(fiber.StatusForbidden, "Rol değiştirme yetkiniz yok")
			}
			if !validRole(*body.Role) {
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz rol")
			}
			user.Role = *body.Role
		}
		if body.StoreID != nil {
			if !requester.IsSuperuser {
				return fiber.NewError(fiber.StatusForbidden, "Mağaza değiştirme yetkiniz yok")
			}
			user.StoreID = *body.StoreID
		}

		if err := database.DB.Save(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı güncellenemedi")
		}

		return c.JSON(fiber.Map{
			"message": "Kullanıcı güncellendi",
			"user":    auth.NewUserResponse(&user),
		})
	}
}

// DELETE /api/users/:id — kayıt silinmez, hesap pasife alınır
func DeleteUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requester, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var user models.User
		if err := scope.Filter(database.DB, requester).
			First(&user, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kullanıcı bulunamadı")
		}

		if user.ID == requester.ID {
			return fiber.NewError(fiber.StatusBadRequest, "Kendi hesabınızı silemezsiniz")
		}

		if err := database.DB.Model(&user).Update("is_active", false).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı silinemedi")
		}

		return c.JSON(fiber.Map{"message": "Kullanıcı pasife alındı"})
	}
}
