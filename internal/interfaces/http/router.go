package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/uips-online/edutrack-api/internal/application/auth"
	"github.com/uips-online/edutrack-api/internal/application/dashboard"
	"github.com/uips-online/edutrack-api/internal/application/inventory"
	"github.com/uips-online/edutrack-api/internal/application/ledger"
	"github.com/uips-online/edutrack-api/internal/application/report"
	"github.com/uips-online/edutrack-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	InventoryUC *inventory.UseCase
	LedgerUC    *ledger.UseCase
	ReportUC    *report.UseCase
	DashboardUC *dashboard.UseCase
	JWTSecret   string
}

// Router registra las rutas de la API. Todo salvo el login y el health check
// exige Bearer Token; la administración de usuarios y el borrado de catálogo
// quedan reservados a IT e InventoryAdmin.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (login público, /me protegido)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)

	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)

	// El alta de catálogo está abierta a los cuatro roles; la edición queda
	// vedada a InventoryStaff; borrado y administración de usuarios son de
	// nivel admin.
	allRoles := RequireRole(entity.RoleIT, entity.RoleInventoryStaff, entity.RoleAccounts, entity.RoleInventoryAdmin)
	editorRoles := RequireRole(entity.RoleIT, entity.RoleAccounts, entity.RoleInventoryAdmin)
	staffRoles := RequireRole(entity.RoleInventoryStaff, entity.RoleInventoryAdmin, entity.RoleIT)
	adminRoles := RequireRole(entity.RoleInventoryAdmin, entity.RoleIT)

	// Usuarios
	users := protected.Group("/users", adminRoles)
	userHandler := NewUserHandler(deps.AuthUC)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:userId", userHandler.Get)
	users.Put("/:userId", userHandler.Update)
	users.Delete("/:userId", userHandler.Delete)

	// Catálogo
	inv := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	inv.Get("/", allRoles, inventoryHandler.List)
	inv.Get("/barcode/:barcode", allRoles, inventoryHandler.GetByBarcode)
	inv.Post("/", allRoles, inventoryHandler.Create)
	inv.Post("/bulk", allRoles, inventoryHandler.BulkInsert)
	inv.Put("/:itemId", editorRoles, inventoryHandler.Update)
	inv.Delete("/:itemId", adminRoles, inventoryHandler.Delete)

	// Entregas
	deliveries := protected.Group("/deliveries")
	deliveryHandler := NewDeliveryHandler(deps.LedgerUC)
	deliveries.Get("/", deliveryHandler.List)
	deliveries.Get("/:deliveryId", deliveryHandler.GetByID)
	deliveries.Post("/", staffRoles, deliveryHandler.Create)

	// Salidas
	checkouts := protected.Group("/checkouts")
	checkoutHandler := NewCheckoutHandler(deps.LedgerUC)
	checkouts.Get("/", checkoutHandler.List)
	checkouts.Get("/:ref", checkoutHandler.GetByRef)
	checkouts.Post("/", staffRoles, checkoutHandler.Create)

	// Devoluciones
	returns := protected.Group("/returns")
	returnHandler := NewReturnHandler(deps.LedgerUC)
	returns.Get("/", returnHandler.List)
	returns.Get("/:returnNumber", returnHandler.GetByNumber)
	returns.Post("/", staffRoles, returnHandler.Create)

	// Reportes (lectura para todos los roles autenticados, Accounts incluido)
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/deliveries", reportHandler.Deliveries)
	reports.Get("/checkouts", reportHandler.Checkouts)
	reports.Get("/returns", reportHandler.Returns)
	reports.Get("/inventory", reportHandler.Inventory)
	reports.Get("/summary", reportHandler.Summary)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.Summary)
}
