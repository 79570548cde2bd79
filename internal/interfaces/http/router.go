package http

import (
	"github.com/gofiber/fiber/v2"

	appalerts "github.com/jhoicas/despensa-api/internal/application/alerts"
	"github.com/jhoicas/despensa-api/internal/application/analytics"
	"github.com/jhoicas/despensa-api/internal/application/backup"
	"github.com/jhoicas/despensa-api/internal/application/inventory"
	"github.com/jhoicas/despensa-api/internal/application/ledger"
	"github.com/jhoicas/despensa-api/internal/application/scan"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Store       *ledger.Store
	InventoryUC *inventory.UseCase
	AlertsUC    *appalerts.UseCase
	ScanSvc     *scan.Service
	BackupUC    *backup.UseCase
	DashboardUC *analytics.DashboardUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	products := api.Group("/products")
	productHandler := NewProductHandler(deps.InventoryUC, deps.Store)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	movements := api.Group("/movements")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC, deps.Store)
	movements.Get("/", inventoryHandler.ListMovements)
	movements.Post("/", inventoryHandler.RegisterMovement)

	alertsGroup := api.Group("/alerts")
	alertHandler := NewAlertHandler(deps.AlertsUC)
	alertsGroup.Get("/", alertHandler.List)
	alertsGroup.Post("/:id/acknowledge", alertHandler.Acknowledge)

	scanner := api.Group("/scanner")
	scannerHandler := NewScannerHandler(deps.ScanSvc)
	scanner.Post("/scan", scannerHandler.Scan)
	scanner.Post("/confirm", scannerHandler.Confirm)
	scanner.Post("/cancel", scannerHandler.Cancel)
	scanner.Get("/state", scannerHandler.State)

	backupHandler := NewBackupHandler(deps.BackupUC)
	api.Get("/export", backupHandler.Export)
	api.Post("/import", backupHandler.Import)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard", dashboardHandler.Summary)
}
