package main

import (
	"log"
	"strings"

	"salestrack-backend/internal/admin"
	"salestrack-backend/internal/audit"
	"salestrack-backend/internal/auth"
	"salestrack-backend/internal/catalog"
	"salestrack-backend/internal/config"
	"salestrack-backend/internal/database"
	"salestrack-backend/internal/importer"
	"salestrack-backend/internal/leave"
	"salestrack-backend/internal/models"
	"salestrack-backend/internal/sales"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

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
				"error": "Unexpected server error",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/login", auth.LoginHandler(cfg))
	api.Post("/auth/forgot-password", auth.ForgotPasswordHandler())
	api.Post("/auth/reset-password", auth.ResetPasswordHandler())

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Catalog
	protected.Get("/products", catalog.ListProductsHandler())

	// Sales
	protected.Post("/sales", sales.CreateSaleHandler())
	protected.Get("/sales", sales.ListSalesHandler())

	// Reports
	protected.Get("/reports/summary", sales.SummaryHandler())
	protected.Get("/reports/by-brand", sales.ByBrandHandler())
	protected.Get("/reports/by-salesman", sales.BySalesmanHandler())
	protected.Get("/reports/monthly", sales.MonthlyHandler())

	// Leave applications
	protected.Post("/leaves", leave.CreateLeaveHandler(cfg))
	protected.Get("/leaves", leave.ListLeavesHandler())
	protected.Get("/leaves/balance", leave.BalanceHandler())

	// Admin routes
	adminRoutes := protected.Group("")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))

	// Catalog management
	adminRoutes.Post("/products", catalog.CreateProductHandler())
	adminRoutes.Put("/products/:id", catalog.UpdateProductHandler())
	adminRoutes.Delete("/products/:id", catalog.DeleteProductHandler())

	// User management
	adminRoutes.Post("/admin/users", admin.CreateUserHandler())
	adminRoutes.Get("/admin/users", admin.ListUsersHandler())
	adminRoutes.Delete("/admin/users/:id", admin.DeleteUserHandler())

	// Leave decisions
	adminRoutes.Put("/leaves/:id/approve", leave.ApproveLeaveHandler())
	adminRoutes.Put("/leaves/:id/reject", leave.RejectLeaveHandler())

	// Spreadsheet imports
	adminRoutes.Post("/imports/products", importer.ImportProductsHandler())
	adminRoutes.Post("/imports/sales", importer.ImportSalesHandler())
	adminRoutes.Post("/imports/leaves", importer.ImportLeavesHandler(cfg))
	adminRoutes.Post("/imports/users", importer.ImportUsersHandler())

	// Audit logs
	adminRoutes.Get("/audit-logs", audit.ListAuditLogsHandler())

	log.Println("Server listening on port", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
