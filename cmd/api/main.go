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
	_ "github.com/sairmh/libreria-api/docs"
	"github.com/sairmh/libreria-api/internal/application/auth"
	"github.com/sairmh/libreria-api/internal/application/bootstrap"
	"github.com/sairmh/libreria-api/internal/application/inventory"
	"github.com/sairmh/libreria-api/internal/application/sales"
	"github.com/sairmh/libreria-api/internal/application/usecase"
	infrapdf "github.com/sairmh/libreria-api/internal/infrastructure/pdf"
	"github.com/sairmh/libreria-api/internal/infrastructure/postgres"
	httpRouter "github.com/sairmh/libreria-api/internal/interfaces/http"
	"github.com/sairmh/libreria-api/pkg/config"
	"github.com/sairmh/libreria-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Service: cfg.App.Name,
		Level:   cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	authorRepo := postgres.NewAuthorRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	editorialRepo := postgres.NewEditorialRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	roleRepo := postgres.NewRoleRepository(pool)
	permRepo := postgres.NewPermissionRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	personRepo := postgres.NewPersonRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	seeder := bootstrap.NewSeeder(permRepo, roleRepo, userRepo, personRepo, txRunner, cfg.Admin, log)
	if err := seeder.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("siembra de arranque")
	}

	productUC := usecase.NewProductUseCase(productRepo, authorRepo, categoryRepo, editorialRepo)
	catalogUC := usecase.NewCatalogUseCase(authorRepo, categoryRepo, editorialRepo)
	movementUC := inventory.NewStockMovementUseCase(txRunner, movementRepo, productRepo)
	saleUC := sales.NewSaleUseCase(txRunner, saleRepo, userRepo)
	roleUC := usecase.NewRoleUseCase(txRunner, roleRepo, permRepo)
	userUC := usecase.NewUserUseCase(txRunner, userRepo, personRepo, roleRepo)
	reportUC := usecase.NewReportUseCase(reportRepo, infrapdf.NewMarotoPDFGenerator())
	authUC := auth.NewUseCase(userRepo, personRepo, roleRepo, cfg.JWT)

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
		Title:    "Librería API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		ProductUC:  productUC,
		CatalogUC:  catalogUC,
		MovementUC: movementUC,
		SaleUC:     saleUC,
		RoleUC:     roleUC,
		UserUC:     userUC,
		ReportUC:   reportUC,
		JWTSecret:  cfg.JWT.Secret,
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
