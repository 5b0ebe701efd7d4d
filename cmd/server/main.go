package main

import (
	"log"
	"strings"

	"muhasebe-backend/internal/accounts"
	"muhasebe-backend/internal/auth"
	"muhasebe-backend/internal/config"
	"muhasebe-backend/internal/costs"
	"muhasebe-backend/internal/dashboard"
	"muhasebe-backend/internal/database"
	"muhasebe-backend/internal/expenses"
	"muhasebe-backend/internal/finance"
	"muhasebe-backend/internal/models"
	"muhasebe-backend/internal/reports"
	"muhasebe-backend/internal/sales"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})

	// CORS origins'i virgülle ayrılmış string'den array'e çevir
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register", auth.RegisterHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))
	api.Post("/auth/refresh", auth.RefreshHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Post("/auth/logout", auth.LogoutHandler(cfg))
	protected.Get("/auth/profile", auth.ProfileHandler())
	protected.Put("/auth/profile", auth.UpdateProfileHandler())
	protected.Post("/auth/change-password", auth.ChangePasswordHandler())
	protected.Get("/auth/me", auth.MeHandler())

	// Founder yetkisi gerektiren uçlar route bazında işaretlenir
	founderOnly := auth.RequireRole(models.RoleFounder)

	// Kullanıcı yönetimi
	protected.Get("/users", accounts.ListUsersHandler())
	protected.Get("/users/:id", accounts.GetUserHandler())
	protected.Post("/users", founderOnly, accounts.CreateUserHandler())
	protected.Put("/users/:id", founderOnly, accounts.UpdateUserHandler())
	protected.Delete("/users/:id", founderOnly, accounts.DeleteUserHandler())

	// Satışlar
	protected.Post("/sales", sales.CreateSaleHandler())
	protected.Get("/sales", sales.ListSalesHandler())
	protected.Get("/sales/summary/today", sales.TodaySummaryHandler())
	protected.Put("/sales/:id", sales.UpdateSaleHandler())
	protected.Delete("/sales/:id", sales.DeleteSaleHandler())
	protected.Get("/sale-categories", sales.ListSaleCategoriesHandler())
	protected.Post("/sale-categories", founderOnly, sales.CreateSaleCategoryHandler())

	// Maliyetler
	protected.Post("/costs", costs.CreateCostHandler())
	protected.Get("/costs", costs.ListCostsHandler())
	protected.Put("/costs/:id", costs.UpdateCostHandler())
	protected.Delete("/costs/:id", costs.DeleteCostHandler())
	protected.Get("/cost-categories", costs.ListCostCategoriesHandler())
	protected.Post("/cost-categories", founderOnly, costs.CreateCostCategoryHandler())
	protected.Get("/suppliers", costs.ListSuppliersHandler())
	protected.Post("/suppliers", founderOnly, costs.CreateSupplierHandler())

	// Harcamalar
	protected.Post("/expenses", expenses.CreateExpenseHandler())
	protected.Get("/expenses", expenses.ListExpensesHandler())
	protected.Put("/expenses/:id", expenses.UpdateExpenseHandler())
	protected.Delete("/expenses/:id", expenses.DeleteExpenseHandler())

	// Finansal özetler
	protected.Get("/finance/summary/monthly", finance.MonthlySummaryHandler())
	protected.Get("/finance/profit-analysis", finance.ProfitAnalysisHandler())

	// Dashboard
	protected.Get("/dashboard/profit-chart", dashboard.ProfitChartHandler())

	// Raporlama
	protected.Post("/reports", founderOnly, reports.CreateReportHandler())
	protected.Get("/reports", reports.ListReportsHandler())
	protected.Get("/reports/:id", reports.GetReportHandler())
	protected.Put("/reports/:id", founderOnly, reports.UpdateReportHandler())
	protected.Delete("/reports/:id", founderOnly, reports.DeleteReportHandler())

	// Rapor şablonları
	protected.Get("/report-templates", reports.ListTemplatesHandler())
	protected.Post("/report-templates", founderOnly, reports.CreateTemplateHandler())
	protected.Put("/report-templates/:id", founderOnly, reports.UpdateTemplateHandler())
	protected.Post("/report-templates/:id/set-default", founderOnly, reports.SetDefaultTemplateHandler())
	protected.Delete("/report-templates/:id", founderOnly, reports.DeleteTemplateHandler())

	log.Println("Server çalışıyor port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
