package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	auditapp "github.com/fieldpoint/backend/internal/application/audit"
	billingapp "github.com/fieldpoint/backend/internal/application/billing"
	budgetapp "github.com/fieldpoint/backend/internal/application/budget"
	"github.com/fieldpoint/backend/internal/application/posting"
	workorderapp "github.com/fieldpoint/backend/internal/application/workorder"
	"github.com/fieldpoint/backend/internal/domain/ledger"
	"github.com/fieldpoint/backend/internal/domain/shared"
	"github.com/fieldpoint/backend/internal/infrastructure/auth"
	"github.com/fieldpoint/backend/internal/infrastructure/cache"
	"github.com/fieldpoint/backend/internal/infrastructure/config"
	"github.com/fieldpoint/backend/internal/infrastructure/logger"
	"github.com/fieldpoint/backend/internal/infrastructure/persistence"
	"github.com/fieldpoint/backend/internal/interfaces/http/handler"
	"github.com/fieldpoint/backend/internal/interfaces/http/middleware"
	"github.com/fieldpoint/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting FieldPoint Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if err := db.AutoMigrate(); err != nil {
		log.Fatal("Failed to migrate database schema", zap.Error(err))
	}

	// Repositories
	accountRepo := persistence.NewGormAccountRepository(db.DB)
	journalRepo := persistence.NewGormJournalEntryRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	workOrderRepo := persistence.NewGormWorkOrderRepository(db.DB)
	activityLogRepo := persistence.NewGormActivityLogRepository(db.DB)

	// Seed the default account catalog with a bootstrap engine that is
	// allowed to create accounts.
	seedCtx, seedCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := posting.NewBootstrapEngine().SeedDefaultAccounts(seedCtx, seedRepositories{
		accounts: accountRepo,
		journal:  journalRepo,
	}); err != nil {
		seedCancel()
		log.Fatal("Failed to seed ledger accounts", zap.Error(err))
	}
	seedCancel()
	log.Info("Ledger account catalog seeded")

	// Application services
	engine := posting.NewEngine()
	auditor := auditapp.NewActivityLogger(activityLogRepo, log)

	billingScope := persistence.NewGormBillingTransactionScope(db.DB)
	workOrderScope := persistence.NewGormWorkOrderTransactionScope(db.DB)
	budgetScope := persistence.NewGormBudgetTransactionScope(db.DB)

	invoicePostingService := billingapp.NewInvoicePostingService(billingScope, engine, auditor, log)
	paymentAllocationService := billingapp.NewPaymentAllocationService(billingScope, engine, auditor, log)
	completionService := workorderapp.NewCompletionService(workOrderScope, engine, auditor, log)
	distributionService := budgetapp.NewDistributionService(budgetScope, auditor, log)

	// Replay guard store: Redis when reachable, in-memory otherwise
	var idempotencyStore shared.IdempotencyStore
	if redisStore, err := cache.NewRedisIdempotencyStore(&cfg.Redis); err != nil {
		log.Warn("Redis unavailable, using in-memory idempotency store", zap.Error(err))
		idempotencyStore = cache.NewInMemoryIdempotencyStore()
	} else {
		idempotencyStore = redisStore
		log.Info("Redis idempotency store connected", zap.String("addr", cfg.Redis.Addr()))
	}
	defer func() {
		if err := idempotencyStore.Close(); err != nil {
			log.Error("Error closing idempotency store", zap.Error(err))
		}
	}()

	jwtService := auth.NewJWTService(cfg.JWT)

	// HTTP handlers
	invoiceHandler := handler.NewInvoiceHandler(invoicePostingService, invoiceRepo, paymentRepo)
	paymentHandler := handler.NewPaymentHandler(paymentAllocationService)
	workOrderHandler := handler.NewWorkOrderHandler(completionService, workOrderRepo)
	budgetHandler := handler.NewBudgetHandler(distributionService)
	ledgerHandler := handler.NewLedgerHandler(accountRepo, journalRepo)
	auditHandler := handler.NewAuditHandler(activityLogRepo)
	systemHandler := handler.NewSystemHandler(db)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	ginEngine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := ginEngine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	ginEngine.Use(middleware.RequestID())
	ginEngine.Use(logger.Recovery(log))
	ginEngine.Use(logger.GinMiddleware(log))
	ginEngine.Use(middleware.Secure())
	ginEngine.Use(middleware.CORSWithConfig(middleware.DefaultCORSConfig()))
	ginEngine.Use(middleware.Actor(jwtService, log))
	ginEngine.Use(middleware.Idempotency(idempotencyStore, middleware.DefaultIdempotencyTTL, log))

	router.New(ginEngine, router.WithAPIVersion("v1")).
		Register(
			systemHandler,
			invoiceHandler,
			paymentHandler,
			workOrderHandler,
			budgetHandler,
			ledgerHandler,
			auditHandler,
		).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        ginEngine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}

// seedRepositories adapts the root-level repositories to the posting engine's
// repository view for bootstrap seeding.
type seedRepositories struct {
	accounts ledger.AccountRepository
	journal  ledger.JournalEntryRepository
}

func (r seedRepositories) Accounts() ledger.AccountRepository     { return r.accounts }
func (r seedRepositories) Journal() ledger.JournalEntryRepository { return r.journal }
