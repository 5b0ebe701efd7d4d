package costs

import (
	"strings"

	"muhasebe-backend/internal/database"
	"muhasebe-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateCostCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CreateSupplierRequest struct {
	Name          string `json:"name"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	Notes         string `json:"notes"`
}

// GET /api/cost-categories
func ListCostCategoriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var cats []models.CostCategory
		if err := database.DB.Where("is_active = ?", true).Order("name asc").Find(&cats).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kategoriler listelenemedi")
		}
		return c.JSON(cats)
	}
}

// POST /api/cost-categories (founder)
func CreateCostCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateCostCategoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Kategori adı zorunlu")
		}

		cat := models.CostCategory{
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

// GET /api/suppliers
func ListSuppliersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var suppliers []models.Supplier
		if err := database.DB.Where("is_active = ?", true).Order("name asc").Find(&suppliers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Tedarikçiler listelenemedi")
		}
		return c.JSON(suppliers)
	}
}

// POST /api/suppliers (founder)
func CreateSupplierHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateSupplierRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Tedarikçi adı zorunlu")
		}

		supplier := models.Supplier{
			Name:          body.Name,
			ContactPerson: body.ContactPerson,
			Phone:         body.Phone,
			Email:         body.Email,
			Address:       body.Address,
			IsActive:      true,
			Notes:         body.Notes,
		}
		if err := database.DB.Create(&supplier).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Bu tedarikçi adı zaten kayıtlı")
		}

		return c.Status(fiber.StatusCreated).JSON(supplier)
	}
}
