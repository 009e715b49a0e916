package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SamriddhiRoy/user-dashboard/internal/api"
	"github.com/SamriddhiRoy/user-dashboard/internal/api/middleware"
	"github.com/SamriddhiRoy/user-dashboard/internal/app/service"
	"github.com/SamriddhiRoy/user-dashboard/internal/common/clock"
	"github.com/SamriddhiRoy/user-dashboard/internal/common/security"
	"github.com/SamriddhiRoy/user-dashboard/internal/domain/repository"
	"github.com/SamriddhiRoy/user-dashboard/internal/platform/cache"
	"github.com/SamriddhiRoy/user-dashboard/internal/platform/config"
	"github.com/SamriddhiRoy/user-dashboard/internal/platform/database"
	"github.com/SamriddhiRoy/user-dashboard/internal/platform/identity"
	"github.com/SamriddhiRoy/user-dashboard/internal/platform/logger"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var envFile string
	var migrateOnly bool

	flagSet := pflag.NewFlagSet("server", pflag.ContinueOnError)
	flagSet.StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	flagSet.BoolVar(&migrateOnly, "migrate-only", false, "apply the database schema and exit")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	// 1. Load Configuration
	config.Load(envFile)
	cfg := config.AppConfig

	if err := logger.Init(logger.Config{Level: cfg.LogLevel, Development: cfg.Development()}); err != nil {
		return fmt.Errorf("initialising logger: %w", err)
	}
	defer logger.Sync()

	// 2. Initialize Database
	if err := database.Connect(); err != nil {
		return err
	}
	defer database.Close()

	if migrateOnly || cfg.DBAutoMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := database.ApplySchema(ctx)
		cancel()
		if err != nil {
			return err
		}
		if migrateOnly {
			return nil
		}
	}

	// 3. Initialize Redis. The stats cache is optional.
	if err := cache.ConnectRedis(context.Background()); err != nil {
		logger.Warn("continuing without stats cache", zap.Error(err))
	}
	defer cache.CloseRedis()

	// 4. Identity provider
	provider, err := newIdentityProvider(cfg)
	if err != nil {
		return err
	}

	// 5. Initialize Repositories
	userRepo := repository.NewPgUserRepository(database.DB)
	todoRepo := repository.NewPgTodoRepository(database.DB)
	propertyRepo := repository.NewPgPropertyRepository(database.DB)

	// 6. Initialize Services
	clk := clock.Real()
	var statsCache service.StatsCache
	if c := cache.NewStatsCache(cache.RDB, cfg.StatsCacheTTL); c != nil {
		statsCache = c
	}
	services := api.Services{
		Auth:       service.NewAuthService(provider, userRepo, clk),
		Todos:      service.NewTodoService(todoRepo, statsCache, clk),
		Users:      service.NewUserService(userRepo, clk),
		Dashboard:  service.NewDashboardService(todoRepo, userRepo, statsCache, clk),
		Properties: service.NewPropertyService(propertyRepo, clk),
	}

	// 7. Initialize Router & HTTP Server
	router := api.NewRouter(services, api.Options{
		CookieName:     cfg.SessionCookieName,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		StaticDir:      cfg.StaticDir,
		Guard: middleware.GuardConfig{
			ProtectedPrefix: cfg.ProtectedPrefix,
			LoginPath:       cfg.LoginPath,
			HomePath:        cfg.HomePath,
			AuthPages:       []string{cfg.LoginPath, "/auth/register"},
		},
	})

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     zap.NewStdLog(logger.L()),
	}

	// 8. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("port", cfg.APIPort), zap.String("auth_mode", cfg.AuthMode))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-stop:
	case err := <-serveErr:
		return fmt.Errorf("listening on %s: %w", cfg.APIPort, err)
	}

	logger.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logger.Info("server stopped gracefully")
	return nil
}

func newIdentityProvider(cfg *config.Config) (service.IdentityProvider, error) {
	switch cfg.AuthMode {
	case config.AuthModeJWT:
		if len(cfg.SupabaseJWTSecret) == 0 {
			return nil, errors.New("SUPABASE_JWT_SECRET is required when AUTH_MODE=jwt")
		}
		security.InitJWT(cfg.SupabaseJWTSecret)
		return identity.NewJWTProvider(security.TokenAuth), nil
	case config.AuthModeGoTrue:
		if cfg.SupabaseURL == "" || cfg.SupabaseAnonKey == "" {
			return nil, errors.New("SUPABASE_URL and SUPABASE_ANON_KEY are required when AUTH_MODE=gotrue")
		}
		return identity.NewGoTrueProvider(cfg.SupabaseURL, cfg.SupabaseAnonKey, cfg.AuthHTTPTimeout), nil
	}
	return nil, fmt.Errorf("unknown AUTH_MODE %q", cfg.AuthMode)
}
