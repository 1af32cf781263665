package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/salesops/internal"
	"github.com/frahmantamala/salesops/internal/attendance"
	attendancePostgres "github.com/frahmantamala/salesops/internal/attendance/postgres"
	"github.com/frahmantamala/salesops/internal/auth"
	authPostgres "github.com/frahmantamala/salesops/internal/auth/postgres"
	"github.com/frahmantamala/salesops/internal/company"
	companyPostgres "github.com/frahmantamala/salesops/internal/company/postgres"
	"github.com/frahmantamala/salesops/internal/customer"
	customerPostgres "github.com/frahmantamala/salesops/internal/customer/postgres"
	"github.com/frahmantamala/salesops/internal/employee"
	employeePostgres "github.com/frahmantamala/salesops/internal/employee/postgres"
	"github.com/frahmantamala/salesops/internal/locality"
	localityPostgres "github.com/frahmantamala/salesops/internal/locality/postgres"
	"github.com/frahmantamala/salesops/internal/order"
	orderPostgres "github.com/frahmantamala/salesops/internal/order/postgres"
	"github.com/frahmantamala/salesops/internal/payment"
	paymentPostgres "github.com/frahmantamala/salesops/internal/payment/postgres"
	"github.com/frahmantamala/salesops/internal/product"
	productPostgres "github.com/frahmantamala/salesops/internal/product/postgres"
	"github.com/frahmantamala/salesops/internal/report"
	reportPostgres "github.com/frahmantamala/salesops/internal/report/postgres"
	"github.com/frahmantamala/salesops/internal/storage"
	"github.com/frahmantamala/salesops/internal/transport/rest"
	"github.com/frahmantamala/salesops/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	Gorm   *gorm.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	if err := setupRoutes(deps); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up routes: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func setupRoutes(deps *Dependencies) error {
	cfg := deps.Config
	lg := deps.Logger

	files, err := storage.NewFromConfig(cfg.Storage)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}
	if s3, ok := files.(*storage.S3Storage); ok {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s3.EnsureBucket(ctx); err != nil {
			return fmt.Errorf("ensure bucket: %w", err)
		}
	}

	authRepo := authPostgres.NewRepository(deps.Gorm)
	tokens := auth.NewJWTTokenGenerator(cfg.Security.JWTSecret,
		cfg.Security.SuperadminTokenTTL, cfg.Security.AdminTokenTTL, cfg.Security.EmployeeTokenTTL)
	authService := auth.NewService(authRepo, authRepo, tokens, cfg.Security.BCryptCost, lg)

	companyService := company.NewService(companyPostgres.NewRepository(deps.Gorm), authService, authService, lg)
	employeeService := employee.NewService(employeePostgres.NewRepository(deps.Gorm), authService, authService, files, lg)
	localityService := locality.NewService(localityPostgres.NewRepository(deps.Gorm), lg)
	customerService := customer.NewService(customerPostgres.NewRepository(deps.Gorm), lg)
	productService := product.NewService(productPostgres.NewRepository(deps.Gorm), lg)
	orderService := order.NewService(orderPostgres.NewRepository(deps.Gorm), lg)
	paymentService := payment.NewService(paymentPostgres.NewRepository(deps.Gorm), lg)
	attendanceService := attendance.NewService(attendancePostgres.NewRepository(deps.Gorm), files, lg)
	reportService := report.NewService(reportPostgres.NewRepository(deps.Gorm), lg)

	handlers := rest.Handlers{
		Auth:       auth.NewHandler(authService),
		Company:    company.NewHandler(companyService),
		Employee:   employee.NewHandler(employeeService),
		Locality:   locality.NewHandler(localityService),
		Customer:   customer.NewHandler(customerService),
		Product:    product.NewHandler(productService),
		Order:      order.NewHandler(orderService),
		Payment:    payment.NewHandler(paymentService),
		Attendance: attendance.NewHandler(attendanceService),
		Report:     report.NewHandler(reportService),
	}

	uploadsDir := ""
	if cfg.Storage.Backend == "" || cfg.Storage.Backend == "local" {
		uploadsDir = cfg.Storage.UploadsDir
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, handlers, cfg.Server.AllowedOrigins, uploadsDir, lg)
	return nil
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Logging.Format, config.Logging.Level)

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := initGorm(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	return &Dependencies{
		Config: config,
		Logger: logger.L(),
		DB:     db,
		Gorm:   gormDB,
		Router: chi.NewRouter(),
	}, nil
}

// initDB opens the pgx-backed connection pool used for health checks and
// as gorm's underlying connection.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

// initGorm layers gorm over the existing pool so both share one set of
// connections.
func initGorm(db *sqlx.DB) (*gorm.DB, error) {
	return gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
}
