package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/consola-admin/docs"
	appanalytics "github.com/jhoicas/consola-admin/internal/application/analytics"
	"github.com/jhoicas/consola-admin/internal/application/auth"
	"github.com/jhoicas/consola-admin/internal/application/bitacora"
	"github.com/jhoicas/consola-admin/internal/application/ordenes"
	"github.com/jhoicas/consola-admin/internal/application/preferencias"
	"github.com/jhoicas/consola-admin/internal/application/usecase"
	"github.com/jhoicas/consola-admin/internal/domain/repository"
	"github.com/jhoicas/consola-admin/internal/infrastructure/backend"
	infrapdf "github.com/jhoicas/consola-admin/internal/infrastructure/pdf"
	"github.com/jhoicas/consola-admin/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/consola-admin/internal/interfaces/http"
	"github.com/jhoicas/consola-admin/pkg/config"
	"github.com/jhoicas/consola-admin/pkg/logger"
)

// @title                       Consola Admin API
// @version                     1.0
// @description                 BFF del panel de administración de la tienda.
// @BasePath                    /
// @securityDefinitions.apikey  AdminUser
// @in                          header
// @name                        x-admin-user
// @securityDefinitions.apikey  AdminPassword
// @in                          header
// @name                        x-admin-password
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	zl := log.Zerolog()
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("backend", cfg.Backend.URL).
		Msg("iniciando aplicación")

	// Base de datos opcional: sin ella no hay bitácora persistente ni preferencias guardadas.
	ctx := context.Background()
	var (
		pool      *pgxpool.Pool
		bitRepo   repository.BitacoraRepository
		prefsRepo repository.PreferenciasRepository
	)
	if cfg.DB.Habilitada() {
		pool, err = postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.Migrar(ctx, pool, zl); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		bitRepo = postgres.NewBitacoraRepository(pool)
		prefsRepo = postgres.NewPreferenciasRepository(pool)
	} else {
		log.Warn().Msg("sin base de datos: bitácora solo en logs y preferencias por defecto")
	}

	client := backend.NewClient(backend.Config{
		BaseURL:  cfg.Backend.URL,
		Timeout:  cfg.Backend.Timeout(),
		CacheDir: cfg.Backend.CacheDir,
	}, zl)

	bitacoraUC := bitacora.NewBitacoraUseCase(bitRepo, zl)
	preferenciasUC := preferencias.NewPreferenciasUseCase(prefsRepo, zl)
	comprobantes := infrapdf.NewComprobanteOrden(cfg.App.Tienda)

	deps := httpRouter.RouterDeps{
		AuthUC:          auth.NewAuthUseCase(client, zl),
		CategoriaUC:     usecase.NewCategoriaUseCase(client, bitacoraUC),
		ProductoUC:      usecase.NewProductoUseCase(client, bitacoraUC),
		UploadUC:        usecase.NewUploadUseCase(client, bitacoraUC),
		AdministradorUC: usecase.NewAdministradorUseCase(client, bitacoraUC),
		RolUC:           usecase.NewRolUseCase(client),
		OrdenesUC:       ordenes.NewOrdenesUseCase(client, bitacoraUC, comprobantes, zl),
		DashboardUC:     appanalytics.NewDashboardUseCase(client, client, preferenciasUC, zl),
		BitacoraUC:      bitacoraUC,
		PreferenciasUC:  preferenciasUC,
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.Backend.Timeout() + 5*time.Second,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    10 << 20, // imágenes de producto
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.App.CORSOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, " + httpRouter.HeaderUsuario + ", " + httpRouter.HeaderPassword,
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	docs.SwaggerInfo.Title = cfg.App.Name
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Consola Admin API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		estado := fiber.Map{"status": "ok", "service": cfg.App.Name, "db": pool != nil}
		if pool != nil {
			pctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := pool.Ping(pctx); err != nil {
				estado["status"] = "degraded"
			}
		}
		return c.JSON(estado)
	})

	httpRouter.Router(app, deps)

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
