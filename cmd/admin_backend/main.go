package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/Ernest01982/tuktukeazyadmin/internal/adapters/functions"
	portssvc "github.com/Ernest01982/tuktukeazyadmin/internal/core/ports/services"
	"github.com/Ernest01982/tuktukeazyadmin/internal/core/services"
	"github.com/Ernest01982/tuktukeazyadmin/internal/handlers"
	"github.com/Ernest01982/tuktukeazyadmin/internal/middleware"
	"github.com/Ernest01982/tuktukeazyadmin/internal/repositories/database/pgsql"
	"github.com/Ernest01982/tuktukeazyadmin/pkg/config"
	"github.com/Ernest01982/tuktukeazyadmin/pkg/database"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	if err := runMigrations(logger, cfg.DatabaseURL); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS, rate limiting)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid rate limit format", slog.String("rate_limit", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}
	r.Use(middleware.RateLimit(limiter.New(memory.NewStore(), rate)))

	serviceContainer := buildServices(cfg, dbPool)

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// buildServices wires repositories, the function endpoint client and the
// command executor into the service facades handed to the HTTP layer.
func buildServices(cfg *config.Config, dbPool *pgxpool.Pool) *portssvc.ServiceContainer {
	accountRepo := pgsql.NewPgxAccountRepository(dbPool)
	ledgerRepo := pgsql.NewPgxLedgerRepository(dbPool)
	paymentRepo := pgsql.NewPgxPaymentRepository(dbPool)
	driverRepo := pgsql.NewPgxDriverRepository(dbPool)
	profileRepo := pgsql.NewPgxProfileRepository(dbPool)
	procedureRepo := pgsql.NewPgxProcedureRepository(dbPool)

	functionsClient := functions.NewClient(cfg.FunctionsBaseURL, cfg.FunctionsTimeout)
	executor := services.NewCommandExecutor()

	return &portssvc.ServiceContainer{
		Ledger:  services.NewLedgerService(accountRepo, ledgerRepo, paymentRepo, driverRepo, cfg.DefaultCurrency),
		Driver:  services.NewDriverService(driverRepo, procedureRepo, functionsClient, executor),
		Profile: services.NewProfileService(profileRepo, cfg.AdminAllowlist),
	}
}

// runMigrations applies all pending "up" migrations using a temporary
// database/sql connection over the pgx stdlib driver.
func runMigrations(logger *slog.Logger, databaseURL string) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	upErr := m.Up()
	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if upErr != nil && upErr != migrate.ErrNoChange {
		return upErr
	}
	if upErr == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
