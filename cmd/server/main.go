package main

import (
	"context"
	"log"
	"strings"

	"github.com/Siskaumami/Dip-N-Fly/internal/apperr"
	"github.com/Siskaumami/Dip-N-Fly/internal/audit"
	"github.com/Siskaumami/Dip-N-Fly/internal/auth"
	"github.com/Siskaumami/Dip-N-Fly/internal/clock"
	"github.com/Siskaumami/Dip-N-Fly/internal/config"
	"github.com/Siskaumami/Dip-N-Fly/internal/database"
	"github.com/Siskaumami/Dip-N-Fly/internal/menu"
	"github.com/Siskaumami/Dip-N-Fly/internal/models"
	"github.com/Siskaumami/Dip-N-Fly/internal/orders"
	"github.com/Siskaumami/Dip-N-Fly/internal/report"
	"github.com/Siskaumami/Dip-N-Fly/internal/settings"
	"github.com/Siskaumami/Dip-N-Fly/internal/shift"
	"github.com/Siskaumami/Dip-N-Fly/internal/tables"
	"github.com/Siskaumami/Dip-N-Fly/internal/upload"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	db, err := database.Open(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Seed(ctx, db,
		database.SeedUser{Username: cfg.AdminUsername, Password: cfg.AdminPassword, Role: models.RoleAdmin},
		database.SeedUser{Username: cfg.KasirUsername, Password: cfg.KasirPassword, Role: models.RoleKasir},
	); err != nil {
		log.Fatal(err)
	}

	app, err := newApp(cfg, db, clock.New(cfg.Timezone))
	if err != nil {
		log.Fatal(err)
	}
	log.Println("Server listening on port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}

func newApp(cfg *config.Config, db *database.DB, clk *clock.Clock) (*fiber.App, error) {
	images, err := upload.NewImages(cfg.UploadDir)
	if err != nil {
		return nil, err
	}

	orderSvc := orders.NewService(db, clk, cfg.LenientTransitions)
	shifts := shift.NewTracker(db, clk)
	engine := report.NewEngine(db, clk)
	menuSvc := menu.NewService(db, clk)
	tableSvc := tables.NewService(db, clk)
	settingsSvc := settings.NewService(db, clk)
	sink := report.XLSXSink{}

	app := fiber.New(fiber.Config{
		ErrorHandler: apperr.Handler,
		BodyLimit:    10 * 1024 * 1024,
	})
	app.Use(recover.New())
	app.Use(logger.New())

	// CORS origins come comma separated
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	app.Static("/uploads", images.Dir())

	// printed QR codes point here
	app.Get("/t/:code", tables.RedirectHandler(tableSvc, cfg.FrontendOrigin))

	api := app.Group("/api")
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	// Public
	api.Post("/login", auth.LoginHandler(cfg.JWTSecret, db))
	api.Get("/menu", menu.PublicMenuHandler(menuSvc))
	api.Get("/qris", settings.PublicQRISHandler(settingsSvc))
	api.Post("/orders", orders.CreateOrderHandler(orderSvc))
	api.Get("/t/:code", tables.RedirectHandler(tableSvc, cfg.FrontendOrigin))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg.JWTSecret))
	protected.Get("/me", auth.MeHandler())

	// Kasir board, admins may use it too
	kasir := protected.Group("/kasir")
	kasir.Use(auth.RequireRole(models.RoleKasir, models.RoleAdmin))
	kasir.Post("/shift/login", shift.OpenShiftHandler(shifts))
	kasir.Post("/shift/logout", shift.CloseShiftHandler(shifts))
	kasir.Get("/shift/:id", shift.GetShiftHandler(shifts))
	kasir.Get("/orders", orders.ListOrdersHandler(orderSvc))
	kasir.Patch("/orders/:id/status", orders.UpdateStatusHandler(orderSvc))
	kasir.Delete("/orders/:id", orders.DeleteOrderHandler(orderSvc))
	kasir.Get("/summary/today", orders.TodaySummaryHandler(orderSvc))

	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))

	// Menu
	adminRoutes.Get("/products", menu.ListProductsHandler(menuSvc))
	adminRoutes.Post("/products", menu.CreateProductHandler(menuSvc, images))
	adminRoutes.Post("/products/import", menu.ImportProductsHandler(menuSvc))
	adminRoutes.Put("/products/:id", menu.UpdateProductHandler(menuSvc, images))
	adminRoutes.Delete("/products/:id", menu.DeleteProductHandler(menuSvc))

	// Tables
	adminRoutes.Get("/tables", tables.ListTablesHandler(tableSvc, cfg.FrontendOrigin))
	adminRoutes.Post("/tables", tables.CreateTableHandler(tableSvc, cfg.FrontendOrigin))
	adminRoutes.Put("/tables/:id", tables.UpdateTableHandler(tableSvc, cfg.FrontendOrigin))
	adminRoutes.Delete("/tables/:id", tables.DeleteTableHandler(tableSvc))

	// QRIS
	adminRoutes.Post("/qris", settings.UploadQRISHandler(settingsSvc, images))
	adminRoutes.Get("/qris", settings.AdminQRISHandler(settingsSvc))

	// Reports
	adminRoutes.Get("/cashflow", report.CashflowHandler(engine))
	adminRoutes.Get("/cashflow/export", report.CashflowExportHandler(engine, sink, clk))
	adminRoutes.Get("/performance", report.PerformanceHandler(engine))
	adminRoutes.Get("/performance/export", report.PerformanceExportHandler(engine, sink))
	adminRoutes.Get("/shifts", report.ShiftsHandler(engine))

	// Audit logs
	adminRoutes.Get("/audit-logs", audit.ListAuditLogsHandler(db))

	return app, nil
}
