package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/rbcaldoza/docflows/internal/application/service"
	appwf "github.com/rbcaldoza/docflows/internal/application/workflow"
	"github.com/rbcaldoza/docflows/internal/config"
	"github.com/rbcaldoza/docflows/internal/domain/approval"
	"github.com/rbcaldoza/docflows/internal/domain/routing"
	"github.com/rbcaldoza/docflows/internal/infrastructure/persistence/repository"
	"github.com/rbcaldoza/docflows/internal/infrastructure/persistence/sqlite"
	httpapi "github.com/rbcaldoza/docflows/internal/interfaces/http"
	"github.com/rbcaldoza/docflows/internal/voucher"
	"github.com/rbcaldoza/docflows/pkg/database"
	"github.com/rbcaldoza/docflows/pkg/utils"
)

func main() {
	// Local development overrides; absence is not an error
	_ = gotenv.Load()

	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting DocFlows",
		zap.String("version", "1.0.0"),
		zap.Int("port", cfg.Server.Port))

	// Database
	db, err := database.New(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	migrator := database.NewMigrator(db, logger)
	if err := migrator.RunMigrations(cfg.Database.MigrationsDir); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	txManager := sqlite.NewDB(db.DB, logger)

	// Repositories
	requisitionRepo := repository.NewRequisitionRepository(db.DB, logger)
	paymentRepo := repository.NewPaymentRepository(db.DB, logger)
	voucherRepo := repository.NewVoucherRepository(db.DB, logger)
	checkRepo := repository.NewCheckRepository(db.DB, logger)
	recordRepo := repository.NewApprovalRecordRepository(db.DB, logger)
	seriesRepo := repository.NewNumberSeriesRepository(db.DB, logger)
	authority := repository.NewAuthorityRepository(db.DB, logger)

	// Lifecycle coordinator
	coordinator := appwf.NewCoordinator(
		requisitionRepo, paymentRepo, voucherRepo, checkRepo,
		recordRepo, txManager, approval.Default(),
	)

	sugar := &sugaredLogger{logger.Sugar()}
	table := routing.Default()

	// Services
	requisitionService := service.NewRequisitionService(
		requisitionRepo, recordRepo, seriesRepo, authority, coordinator, txManager, table, sugar)
	paymentService := service.NewPaymentService(
		paymentRepo, requisitionRepo, voucherRepo, recordRepo, seriesRepo, authority, coordinator, txManager, sugar)
	voucherService := service.NewVoucherService(
		voucherRepo, paymentRepo, checkRepo, recordRepo, authority, coordinator, sugar)
	checkService := service.NewCheckService(
		checkRepo, voucherRepo, paymentRepo, recordRepo, authority, coordinator, sugar)

	exporter := voucher.NewExporter(cfg.Voucher.CompanyName, logger)

	// HTTP server
	server := httpapi.NewServer(
		httpapi.ServerConfig{
			Host:         cfg.Server.Host,
			Port:         cfg.Server.Port,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			JWTSecret:    cfg.Auth.JWTSecret,
		},
		requisitionService, paymentService, voucherService, checkService,
		exporter, sugar,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		logger.Fatal("Server exited with error", zap.Error(err))
	}

	logger.Info("Shutdown complete")
}

// sugaredLogger adapts zap's sugared logger to the service and HTTP Logger
// interfaces
type sugaredLogger struct {
	s *zap.SugaredLogger
}

func (l *sugaredLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Infow(msg, keysAndValues...)
}

func (l *sugaredLogger) Error(msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, keysAndValues...)
}
