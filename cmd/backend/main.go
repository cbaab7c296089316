package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/jhoicas/vitasport-core/internal/application/auth"
	"github.com/jhoicas/vitasport-core/internal/application/catalog"
	"github.com/jhoicas/vitasport-core/internal/application/exports"
	"github.com/jhoicas/vitasport-core/internal/application/inventory"
	"github.com/jhoicas/vitasport-core/internal/application/reports"
	"github.com/jhoicas/vitasport-core/internal/application/sales"
	"github.com/jhoicas/vitasport-core/internal/domain"
	"github.com/jhoicas/vitasport-core/internal/infrastructure/sqlite"
	"github.com/jhoicas/vitasport-core/internal/interfaces/command"
	"github.com/jhoicas/vitasport-core/pkg/config"
	"github.com/jhoicas/vitasport-core/pkg/logger"
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
		Msg("iniciando backend")

	if cfg.JWT.Secret == "" {
		cfg.JWT.Secret = "vitasport-dev-secret"
		log.Warn().Msg("JWT_SECRET no configurado, usando secreto de desarrollo")
	}

	dbPath, err := cfg.DB.ResolvePath()
	if err != nil {
		log.Fatal().Err(err).Msg("resolviendo ruta de la base")
	}
	db, err := sqlite.Open(dbPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", dbPath).Msg("abriendo SQLite")
	}
	defer db.Close()
	log.Info().Str("path", dbPath).Msg("base de datos lista")

	productRepo := sqlite.NewProductRepository(db)
	movementRepo := sqlite.NewStockMovementRepository(db)
	saleRepo := sqlite.NewSaleRepository(db)
	userRepo := sqlite.NewUserRepository(db)
	txRunner := sqlite.NewTxRunner(db)

	clock := domain.SystemClock{}
	gate := inventory.NewProductGate()

	inventoryUC := inventory.NewUseCase(txRunner, gate, productRepo, movementRepo, clock, log)
	salesUC := sales.NewUseCase(txRunner, gate, productRepo, saleRepo, clock, log)
	reportsUC := reports.NewUseCase(saleRepo, inventoryUC, clock)
	catalogUC := catalog.NewUseCase(productRepo, movementRepo, saleRepo, log)
	authUC := auth.NewUseCase(userRepo, cfg.JWT, log)
	exportsUC := exports.NewUseCase(saleRepo, inventoryUC)

	dispatcher := command.NewDispatcher(authUC, log)
	command.NewAuthHandler(authUC).Register(dispatcher)
	command.NewProductHandler(catalogUC).Register(dispatcher)
	command.NewInventoryHandler(inventoryUC).Register(dispatcher)
	command.NewSalesHandler(salesUC).Register(dispatcher)
	command.NewReportsHandler(reportsUC).Register(dispatcher)
	command.NewExportsHandler(exportsUC).Register(dispatcher)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Msg("escuchando comandos en stdin")
	if err := dispatcher.Serve(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("loop de comandos terminó con error")
	}
	log.Info().Msg("backend detenido")
}
