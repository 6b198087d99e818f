package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/kardex-api/docs"
	"github.com/jhoicas/kardex-api/internal/application/inventory"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
	"github.com/jhoicas/kardex-api/internal/infrastructure/csvload"
	"github.com/jhoicas/kardex-api/internal/infrastructure/memory"
	"github.com/jhoicas/kardex-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/kardex-api/internal/interfaces/http"
	"github.com/jhoicas/kardex-api/pkg/config"
	"github.com/jhoicas/kardex-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	loc := cfg.App.Location()
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("data_source", cfg.Data.Source).
		Str("timezone", loc.String()).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		residentRepo   repository.ResidentRepository
		medicationRepo repository.MedicationRepository
		reload         func()
	)
	switch cfg.Data.Source {
	case config.SourceCSV:
		store := memory.NewStore()
		reload = func() {
			if err := loadCSV(store, cfg.Data, log); err != nil {
				log.Error().Err(err).Str("file", cfg.Data.File).Msg("recarga del CSV fallida, se conservan los datos anteriores")
			}
		}
		if err := loadCSV(store, cfg.Data, log); err != nil {
			log.Fatal().Err(err).Str("file", cfg.Data.File).Msg("carga del CSV de medicamentos")
		}
		residentRepo, medicationRepo = store, store
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		residentRepo = postgres.NewResidentRepository(pool)
		medicationRepo = postgres.NewMedicationRepository(pool)
	}

	settings := inventory.Settings{
		LowStockDays:      cfg.Stock.LowStockDays,
		ExpiryWarningDays: cfg.Stock.ExpiryWarningDays,
		CoverageDays:      cfg.Stock.CoverageDays,
	}
	assessUC := inventory.NewAssessUseCase(settings, log)
	inventoryUC := inventory.NewInventoryUseCase(residentRepo, medicationRepo, settings, log)
	requirementUC := inventory.NewRequirementUseCase(residentRepo, medicationRepo, settings, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "${time} ${locals:requestid} ${status} ${method} ${path} ${latency}\n",
		TimeFormat: time.RFC3339,
		TimeZone:   loc.String(),
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	docs.SwaggerInfo.Host = cfg.HTTP.Addr()
	app.Use(swagger.New(swagger.Config{
		BasePath:    "/",
		FilePath:    "swagger.json",
		FileContent: []byte(docs.SwaggerInfo.ReadDoc()),
		Path:        "docs",
		Title:       docs.SwaggerInfo.Title,
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AppName:       cfg.App.Name,
		DataSource:    cfg.Data.Source,
		AssessUC:      assessUC,
		InventoryUC:   inventoryUC,
		RequirementUC: requirementUC,
		Clock:         func() time.Time { return time.Now().In(loc) },
		RequireUUIDs:  cfg.Data.Source == config.SourcePostgres,
		Log:           log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	for sig := range quit {
		if sig == syscall.SIGHUP {
			// SIGHUP recarga el CSV sin reiniciar (sin efecto con PostgreSQL)
			if reload != nil {
				reload()
			}
			continue
		}
		break
	}

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// loadCSV carga el archivo configurado y reemplaza el contenido del store.
func loadCSV(store *memory.Store, cfg config.DataConfig, log *logger.Logger) error {
	res, err := csvload.NewLoader(cfg.Encoding).LoadFile(cfg.File)
	if err != nil {
		return err
	}
	for _, w := range res.Warnings {
		log.Warn().Str("file", cfg.File).Msg(w)
	}
	store.Replace(res.Residents, res.Medications)
	log.Info().
		Int("residents", len(res.Residents)).
		Int("medications", len(res.Medications)).
		Int("warnings", len(res.Warnings)).
		Msg("datos cargados desde CSV")
	return nil
}
