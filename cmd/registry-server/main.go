package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pwh/registry/internal/config"
	"github.com/pwh/registry/internal/domain/care"
	"github.com/pwh/registry/internal/domain/clinical"
	"github.com/pwh/registry/internal/domain/importer"
	"github.com/pwh/registry/internal/domain/patient"
	"github.com/pwh/registry/internal/domain/reporting"
	"github.com/pwh/registry/internal/platform/auth"
	"github.com/pwh/registry/internal/platform/db"
	"github.com/pwh/registry/internal/platform/geocode"
	"github.com/pwh/registry/internal/platform/middleware"
	"github.com/pwh/registry/internal/refdata"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "registry-server",
		Short: "Hemophilia patient registry API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(templateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the registry API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

// templateCmd writes the blank import workbook to a file, pulling dropdown
// lists from the database when one is reachable and falling back to the
// built-in defaults otherwise.
func templateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Write a blank import template workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")

			logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
			ctx := context.Background()

			ref := refdata.Defaults()
			if cfg, err := config.Load(); err == nil {
				if pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns); err == nil {
					defer pool.Close()
					ref = refdata.Load(ctx, pool, logger)
				} else {
					logger.Warn().Err(err).Msg("database unreachable, using built-in reference lists")
				}
			}

			file, err := importer.BuildTemplate(ref)
			if err != nil {
				return fmt.Errorf("build template: %w", err)
			}

			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := file.Write(f); err != nil {
				return fmt.Errorf("write template: %w", err)
			}

			fmt.Printf("Template written to %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringP("out", "o", "import_template.xlsx", "Output file path")
	return cmd
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	// Database
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// Reference lists for dropdowns and the template sheets
	ref := refdata.Load(ctx, pool, logger)

	// Geocoding chain for the distribution map
	var online geocode.Geocoder
	if cfg.GeocodeOnline {
		online = geocode.NewNominatimClient(cfg.GeocodeURL)
		logger.Info().Str("url", cfg.GeocodeURL).Msg("online geocoding enabled")
	}
	coords := geocode.LoadReference(ctx, pool, logger)
	resolver := geocode.NewResolver(coords, online, logger)

	// Domain services
	patientSvc := patient.NewService(patient.NewRepoPG(pool), db.NewRunner(pool))
	clinicalSvc := clinical.NewService(clinical.NewRepoPG(pool))
	careSvc := care.NewService(care.NewRepoPG(pool))
	reportingSvc := reporting.NewService(reporting.NewRepoPG(pool), resolver)

	imp := importer.NewImporter(patientSvc, clinicalSvc, careSvc, logger)
	exp := importer.NewExporter(patientSvc, clinicalSvc, careSvc, reportingSvc)

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	// Health check
	e.GET("/health", db.HealthHandler(pool))

	// Auth
	var authMW echo.MiddlewareFunc
	if cfg.IsDev() {
		authMW = auth.DevMiddleware()
	} else {
		authSvc := auth.NewService(cfg.Users(), cfg.AuthSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)
		e.POST("/api/v1/login", auth.LoginHandler(authSvc))
		authMW = auth.Middleware(authSvc)
	}

	api := e.Group("/api/v1", authMW)
	api.GET("/reference", refdata.Handler(ref))

	patient.NewHandler(patientSvc).RegisterRoutes(api)
	clinical.NewHandler(clinicalSvc).RegisterRoutes(api)
	care.NewHandler(careSvc).RegisterRoutes(api)
	importer.NewHandler(imp, exp, ref).RegisterRoutes(api)
	reporting.NewHandler(reportingSvc).RegisterRoutes(api)

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
