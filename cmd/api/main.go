package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	apphistory "github.com/tu-usuario/historial-almacen/internal/application/history"
	"github.com/tu-usuario/historial-almacen/internal/infrastructure/csvsource"
	"github.com/tu-usuario/historial-almacen/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/historial-almacen/internal/interfaces/http"
	"github.com/tu-usuario/historial-almacen/pkg/config"
	"github.com/tu-usuario/historial-almacen/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("sources_mode", cfg.Sources.Mode).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var source apphistory.SourceProvider
	switch cfg.Sources.Mode {
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		source = postgres.NewSourceRepository(pool)
	case "csv":
		source = csvsource.New(cfg.Sources.Dir)
	default:
		log.Fatal().Str("mode", cfg.Sources.Mode).Msg("SOURCES_MODE desconocido (csv|postgres)")
	}

	reconcileUC := apphistory.NewReconcileUseCase(source, cfg.Engine.HomeCompanyID, log)

	// Primer refresh al arrancar. Si falla, el servidor igual levanta: las
	// lecturas devuelven 503 hasta que un POST /refresh publique el primer
	// snapshot.
	if _, err := reconcileUC.Refresh(ctx); err != nil {
		log.Warn().Err(err).Msg("refresh inicial fallido; sirviendo sin snapshot")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Historial Almacén API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		History: httpRouter.NewHistoryHandler(reconcileUC, cfg.Engine.PageSize),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
