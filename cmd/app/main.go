package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"comanda/cmd"
	httpin "comanda/internal/adapters/in/http"
	"comanda/internal/adapters/out/postgres/auditrepo"
	"comanda/internal/adapters/out/postgres/catalogrepo"
	"comanda/internal/adapters/out/postgres/loyaltyrepo"
	"comanda/internal/adapters/out/postgres/orderrepo"
	"comanda/internal/adapters/out/postgres/stockrepo"
	"comanda/internal/adapters/out/postgres/tablerepo"
	"comanda/internal/adapters/out/postgres/tenantrepo"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db, err := gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	if err := migrate(db); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	app := cmd.NewCompositionRoot(configs, db, logger)

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	e := newEcho(&app)
	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal(err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", "error", err)
	}
}

func getConfigs() cmd.Config {
	// A missing .env file is fine in containerized deployments where the
	// environment is injected directly.
	_ = godotenv.Load(".env")

	config, err := env.ParseAs[cmd.Config]()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	return config
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&tenantrepo.TenantDTO{},
		&catalogrepo.ProductDTO{},
		&catalogrepo.ComplementOptionDTO{},
		&loyaltyrepo.CustomerDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&orderrepo.OrderItemComplementDTO{},
		&orderrepo.PaymentDTO{},
		&tablerepo.TableDTO{},
		&stockrepo.StockMovementDTO{},
		&loyaltyrepo.LoyaltyEntryDTO{},
		&auditrepo.AuditLogDTO{},
	)
}

func newEcho(app *cmd.CompositionRoot) *echo.Echo {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpin.NewServer(
		app.CreateCheckoutCommandHandler(),
		app.CreateOpenTableCommandHandler(),
		app.CreateAddTableItemsCommandHandler(),
		app.CreateCloseTableCommandHandler(),
		app.CreateTransferTableCommandHandler(),
		app.CreateUpdateOrderItemsCommandHandler(),
		app.CreateTransitionOrderStatusCommandHandler(),
		app.CreateAssignCourierCommandHandler(),
		app.CreateCancelOrderCommandHandler(),
		app.CreateGetActiveOrdersQueryHandler(),
		app.CreateGetTableBoardQueryHandler(),
	)
	server.RegisterRoutes(e)

	return e
}
