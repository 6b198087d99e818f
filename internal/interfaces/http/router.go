package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/kardex-api/internal/application/inventory"
	"github.com/jhoicas/kardex-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName       string
	DataSource    string
	AssessUC      *inventory.AssessUseCase
	InventoryUC   *inventory.InventoryUseCase
	RequirementUC *inventory.RequirementUseCase
	Clock         Clock // nil → time.Now
	RequireUUIDs  bool  // true con PostgreSQL: los ids de residente son UUID
	Log           *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName, "data_source": deps.DataSource})
	})

	api := app.Group("/api")

	// Evaluación directa (sin repositorio)
	stockHandler := NewStockHandler(deps.AssessUC, clock, log)
	stockGroup := api.Group("/stock")
	stockGroup.Post("/assess", stockHandler.Assess)
	stockGroup.Post("/assess/batch", stockHandler.AssessBatch)

	// Vistas de lectura con fecha de referencia
	dated := api.Group("/", ReferenceDate(clock))
	inventoryHandler := NewInventoryHandler(deps.InventoryUC, log)
	dated.Get("/dashboard/summary", inventoryHandler.Summary)
	dated.Get("/inventory", inventoryHandler.List)

	residents := dated.Group("/residents")
	residents.Get("/", inventoryHandler.Residents)
	byID := []fiber.Handler{}
	if deps.RequireUUIDs {
		byID = append(byID, RequireUUIDParam("id"))
	}
	residents.Get("/:id/inventory", append(byID, inventoryHandler.ResidentInventory)...)
	residents.Get("/:id/kardex", append(byID, inventoryHandler.Kardex)...)

	reportHandler := NewReportHandler(deps.RequirementUC, log)
	dated.Get("/reports/requirements", reportHandler.Requirements)
}
