package reports

import (
	"strings"

	"muhasebe-backend/internal/auth"
	"muhasebe-backend/internal/database"
	"muhasebe-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateTemplateRequest struct {
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	TemplateType models.ReportType `json:"template_type"`
	IsDefault    bool              `json:"is_default"`
}

type UpdateTemplateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type TemplateResponse struct {
	ID           uint              `json:"id"`
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	TemplateType models.ReportType `json:"template_type"`
	IsDefault    bool              `json:"is_default"`
	CreatedBy    uint              `json:"created_by"`
}

func toTemplateResponse(t *models.ReportTemplate) TemplateResponse {
	return TemplateResponse{
		ID:           t.ID,
		Name:         t.Name,
		Description:  t.Description,
		TemplateType: t.TemplateType,
		IsDefault:    t.IsDefault,
		CreatedBy:    t.CreatedByID,
	}
}

// Aynı tipteki diğer şablonların is_default bayrağını tek UPDATE ile
// temizleyip hedefi varsayılan yapar. İki adım tek transaction içinde
// olduğundan eşzamanlı denemelerde bile tip başına en fazla bir
// varsayılan kalır.
func setDefault(tpl *models.ReportTemplate) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ReportTemplate{}).
			Where("template_type = ? AND id <> ?", tpl.TemplateType, tpl.ID).
			Update("is_default", false).Error; err != nil {
			return err
		}
		return tx.Model(tpl).Update("is_default", true).Error
	})
}

// GET /api/report-templates[?template_type=]
func ListTemplatesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := database.DB.Order("name asc")
		if t := c.Query("template_type"); t != "" {
			q = q.Where("template_type = ?", t)
		}

		var templates []models.ReportTemplate
		if err := q.Find(&templates).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şablonlar listelenemedi")
		}

		items := make([]TemplateResponse, 0, len(templates))
		for i := range templates {
			items = append(items, toTemplateResponse(&templates[i]))
		}
		return c.JSON(items)
	}
}

// POST /api/report-templates
func CreateTemplateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var body CreateTemplateRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Şablon adı zorunlu")
		}
		if !models.ValidReportType(body.TemplateType) {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz şablon tipi")
		}

		tpl := models.ReportTemplate{
			Name:         body.Name,
			Description:  body.Description,
			TemplateType: body.TemplateType,
			CreatedByID:  user.ID,
		}

		if err := database.DB.Create(&tpl).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Bu şablon adı zaten kayıtlı")
		}

		if body.IsDefault {
			if err := setDefault(&tpl); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Varsayılan şablon ayarlanamadı")
			}
			tpl.IsDefault = true
		}

		return c.Status(fiber.StatusCreated).JSON(toTemplateResponse(&tpl))
	}
}

// PUT /api/report-templates/:id
func UpdateTemplateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var tpl models.ReportTemplate
		if err := database.DB.First(&tpl, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Şablon bulunamadı")
		}

		var body UpdateTemplateRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.Name != nil && strings.TrimSpace(*body.Name) != "" {
			tpl.Name = strings.TrimSpace(*body.Name)
		}
		if body.Description != nil {
			tpl.Description = *body.Description
		}

		if err := database.DB.Save(&tpl).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şablon güncellenemedi")
		}
		return c.JSON(toTemplateResponse(&tpl))
	}
}

// POST /api/report-templates/:id/set-default
func SetDefaultTemplateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var tpl models.ReportTemplate
		if err := database.DB.First(&tpl, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Şablon bulunamadı")
		}

		if err := setDefault(&tpl); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Varsayılan şablon ayarlanamadı")
		}
		tpl.IsDefault = true

		return c.JSON(fiber.Map{
			"message":  "Varsayılan şablon güncellendi",
			"template": toTemplateResponse(&tpl),
		})
	}
}

// DELETE /api/report-templates/:id
func DeleteTemplateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var tpl models.ReportTemplate
		if err := database.DB.First(&tpl, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Şablon bulunamadı")
		}

		if err := database.DB.Delete(&tpl).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şablon silinemedi")
		}
		return c.JSON(fiber.Map{"message": "Şablon silindi"})
	}
}
