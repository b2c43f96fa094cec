package http

import (
	"os"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-cocina/internal/application/audit"
	"github.com/jhoicas/inventario-cocina/internal/application/inventory"
	"github.com/jhoicas/inventario-cocina/internal/application/notification"
	"github.com/jhoicas/inventario-cocina/internal/application/snapshot"
	"github.com/jhoicas/inventario-cocina/internal/application/usecase"
	"github.com/jhoicas/inventario-cocina/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ServiceName    string
	IngredientUC   *usecase.IngredientUseCase
	LedgerUC       *inventory.LedgerUseCase
	SnapshotUC     *snapshot.UseCase
	NotificationUC *notification.UseCase
	AuditRecorder  *audit.Recorder
	JWTSecret      string
	SwaggerFile    string // vacío o inexistente = sin /docs
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	// Swagger UI en local: http://localhost:<port>/docs
	if deps.SwaggerFile != "" {
		if _, err := os.Stat(deps.SwaggerFile); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: deps.SwaggerFile,
				Path:     "docs",
				Title:    "Inventario Cocina API",
			}))
		}
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})

	// Todas las rutas de /api requieren Bearer Token
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	managers := RequireRole(entity.RoleAdmin, entity.RoleEncargado)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Catálogo
	ingredients := api.Group("/ingredients")
	ingredientHandler := NewIngredientHandler(deps.IngredientUC)
	ingredients.Get("/", ingredientHandler.List)
	ingredients.Post("/", managers, ingredientHandler.Create)
	ingredients.Get("/:id", ingredientHandler.GetByID)
	ingredients.Put("/:id", managers, ingredientHandler.Update)
	ingredients.Delete("/:id", adminOnly, ingredientHandler.Deactivate)

	// Ledger de stock
	stock := api.Group("/stock")
	stockHandler := NewStockHandler(deps.LedgerUC)
	stock.Get("/dashboard", stockHandler.Dashboard)
	stock.Get("/low-stock", stockHandler.LowStock)
	stock.Post("/low-stock/check", managers, stockHandler.CheckLowStock)
	stock.Post("/bulk", stockHandler.BulkSetAreaStock)
	stock.Put("/:ingredientId/:area", stockHandler.SetAreaStock)

	// Fotos (las rutas fijas van antes de /:id)
	snapshots := api.Group("/snapshots")
	snapshotHandler := NewSnapshotHandler(deps.SnapshotUC)
	snapshots.Get("/", snapshotHandler.List)
	snapshots.Post("/", managers, snapshotHandler.Create)
	snapshots.Get("/compare", snapshotHandler.Compare)
	snapshots.Post("/close-period", adminOnly, snapshotHandler.ClosePeriod)
	snapshots.Get("/:id", snapshotHandler.Get)
	snapshots.Get("/:id/pdf", snapshotHandler.ExportPDF)
	snapshots.Delete("/:id", adminOnly, snapshotHandler.Delete)

	notifications := api.Group("/notifications")
	notificationHandler := NewNotificationHandler(deps.NotificationUC)
	notifications.Get("/", notificationHandler.List)
	notifications.Patch("/:id/read", notificationHandler.MarkRead)

	api.Get("/audit-logs", adminOnly, NewAuditHandler(deps.AuditRecorder).List)
}
