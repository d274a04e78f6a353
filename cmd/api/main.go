package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/malikaashish/Inventory-Management-System/internal/application/auth"
	"github.com/malikaashish/Inventory-Management-System/internal/application/dto"
	"github.com/malikaashish/Inventory-Management-System/internal/application/events"
	"github.com/malikaashish/Inventory-Management-System/internal/application/inventory"
	"github.com/malikaashish/Inventory-Management-System/internal/application/notification"
	"github.com/malikaashish/Inventory-Management-System/internal/application/ports"
	"github.com/malikaashish/Inventory-Management-System/internal/application/purchasing"
	"github.com/malikaashish/Inventory-Management-System/internal/application/sales"
	"github.com/malikaashish/Inventory-Management-System/internal/application/usecase"
	"github.com/malikaashish/Inventory-Management-System/internal/domain"
	"github.com/malikaashish/Inventory-Management-System/internal/infrastructure/kafka"
	"github.com/malikaashish/Inventory-Management-System/internal/infrastructure/memory"
	"github.com/malikaashish/Inventory-Management-System/internal/infrastructure/metrics"
	infrapdf "github.com/malikaashish/Inventory-Management-System/internal/infrastructure/pdf"
	"github.com/malikaashish/Inventory-Management-System/internal/infrastructure/postgres"
	"github.com/malikaashish/Inventory-Management-System/internal/infrastructure/scheduler"
	"github.com/malikaashish/Inventory-Management-System/internal/infrastructure/xlsx"
	httpRouter "github.com/malikaashish/Inventory-Management-System/internal/interfaces/http"
	"github.com/malikaashish/Inventory-Management-System/pkg/config"
	"github.com/malikaashish/Inventory-Management-System/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Persistencia: PostgreSQL o almacén en memoria.
	var (
		txRunner ports.TxRunner
		repos    ports.Repositories
	)
	switch cfg.DB.Driver {
	case "memory":
		store := memory.NewStore()
		txRunner = store
		repos = store.Repositories()
		log.Warn().Msg("almacén en memoria: los datos se pierden al reiniciar")
	default:
		if cfg.DB.Migrate {
			if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		txRunner = postgres.NewTxRunner(pool)
		repos = postgres.Repositories(pool)
	}

	var (
		appMetrics   ports.Metrics
		promMetrics  *metrics.Prometheus
		metricsRoute fiber.Handler
		metricsMW    fiber.Handler
	)
	if cfg.Metrics.Enabled {
		promMetrics = metrics.New("inventory")
		appMetrics = promMetrics
		metricsRoute = adaptor.HTTPHandler(promhttp.HandlerFor(promMetrics.Registry(), promhttp.HandlerOpts{}))
		metricsMW = promMetrics.Middleware()
	}

	var publisher ports.EventPublisher
	if cfg.Kafka.Enabled() {
		kp, err := kafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, log.Component("kafka"))
		if err != nil {
			log.Fatal().Err(err).Strs("brokers", cfg.Kafka.Brokers).Msg("productor Kafka")
		}
		defer kp.Close()
		publisher = kp
	}

	dispatcher := events.NewDispatcher(publisher, appMetrics, log.Component("events"))
	notifier := notification.NewNotificationUseCase(txRunner, dispatcher, appMetrics, log.Component("notifications"))

	adjustmentUC := inventory.NewStockAdjustmentUseCase(txRunner, notifier, dispatcher, xlsx.NewExporter(), appMetrics, log.Component("inventory"))
	replenishmentUC := inventory.NewReplenishmentUseCase(txRunner)
	autoReorderUC := inventory.NewAutoReorderUseCase(txRunner, notifier, dispatcher, appMetrics, log.Component("auto-reorder"))
	salesUC := sales.NewSalesOrderUseCase(txRunner, notifier, dispatcher, appMetrics, log.Component("sales"))
	purchaseUC := purchasing.NewPurchaseOrderUseCase(txRunner, notifier, dispatcher, infrapdf.NewMarotoRenderer(), appMetrics, log.Component("purchasing"))

	authUC := auth.NewAuthUseCase(txRunner, repos.Users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	if cfg.Seed.Enabled() {
		seedAdmin(ctx, authUC, cfg.Seed, log)
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs (requiere `swag init` previo)
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Inventory Management API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:          authUC,
		CompanyUC:       usecase.NewCompanyUseCase(repos.Companies),
		UserUC:          usecase.NewUserUseCase(repos.Users),
		ProductUC:       usecase.NewProductUseCase(repos.Products),
		SupplierUC:      usecase.NewSupplierUseCase(repos.Suppliers, repos.Products),
		CustomerUC:      usecase.NewCustomerUseCase(repos.Customers),
		ModuleService:   usecase.NewModuleService(repos.Companies),
		AdjustmentUC:    adjustmentUC,
		Replenishment:   replenishmentUC,
		AutoReorderUC:   autoReorderUC,
		SalesUC:         salesUC,
		PurchaseUC:      purchaseUC,
		NotificationUC:  notifier,
		JWTSecret:       cfg.JWT.Secret,
		Log:             log.Component("http"),
		MetricsHandler:  metricsRoute,
		MetricsRecorder: metricsMW,
	})

	var ticker *scheduler.Ticker
	if cfg.AutoReorder.Enabled {
		ticker = scheduler.NewTicker(autoReorderUC, cfg.AutoReorder.Interval, log.Component("scheduler"))
		ticker.Start(ctx)
	}

	go listen(app, cfg.HTTP.Addr(), log, stop)

	<-ctx.Done()
	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if ticker != nil {
		ticker.Wait()
	}

	log.Info().Msg("aplicación detenida")
}

// listen atiende HTTP hasta el apagado. Si Listen falla (p.ej. puerto ocupado) cancela el contexto raíz
// para que main no quede esperando una señal sin servidor.
func listen(app *fiber.App, addr string, log *logger.Logger, cancel context.CancelFunc) {
	if err := app.Listen(addr); err != nil {
		log.Error().Err(err).Str("addr", addr).Msg("servidor HTTP finalizado")
		cancel()
	}
}

// seedAdmin crea la empresa y el ADMIN iniciales; si el email ya existe no hace nada.
func seedAdmin(ctx context.Context, authUC *auth.AuthUseCase, seed config.SeedConfig, log *logger.Logger) {
	out, err := authUC.Signup(ctx, dto.SignupRequest{
		CompanyName:   seed.CompanyName,
		AdminEmail:    seed.AdminEmail,
		AdminPassword: seed.AdminPassword,
	})
	switch {
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		log.Info().Str("email", seed.AdminEmail).Msg("administrador inicial ya existe")
	case err != nil:
		log.Fatal().Err(err).Msg("sembrar administrador inicial")
	default:
		log.Info().
			Str("company_id", out.User.CompanyID).
			Str("email", out.User.Email).
			Msg("empresa y administrador iniciales creados")
	}
}
