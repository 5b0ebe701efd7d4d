package sales

import (
	"strings"

	"muhasebe-backend/internal/database"
	"muhasebe-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateSaleCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// GET /api/sale-categories
func ListSaleCategoriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var cats []models.SaleCategory
		if err := database.DB.Where("is_active = ?", true).Order("name asc").Find(&cats).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kategoriler listelenemedi")
		}
		return c.JSON(cats)
	}
}

// POST /api/sale-categories (founder)
func CreateSaleCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateSaleCategoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Kategori adı zorunlu")
		}

		cat := models.SaleCategory{
			Name:        body.Name,
			Description: body.Description,
			IsActive:    true,
		}
		if err := database.DB.Create(&cat).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Bu kategori adı zaten kayıtlı")
		}

		return c.Status(fiber.StatusCreated).JSON(cat)
	}
}
