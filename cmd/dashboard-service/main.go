package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tnp-quickview/internal/dashboard/config"
	delivery "tnp-quickview/internal/dashboard/delivery/http"
	_ "tnp-quickview/internal/dashboard/docs"
	"tnp-quickview/internal/dashboard/repository"
	"tnp-quickview/internal/dashboard/service"
	"tnp-quickview/internal/dashboard/strategy"
	"tnp-quickview/pkg/logger"
	"tnp-quickview/pkg/postgres"
	"tnp-quickview/pkg/redis"
	"tnp-quickview/pkg/sqlite"
	"tnp-quickview/pkg/telegram"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	swagger "github.com/swaggo/echo-swagger"
	"google.golang.org/genai"
	"gorm.io/gorm"
)

const rankingNotifyMaxStocks = 10

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the dashboard service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Dashboard Service", logger.Field("name", cfg.App.Name), logger.Field("env", cfg.App.Env))

	db, err := openLocalStore(cfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize local store", logger.ErrorField(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	// The remote store is optional: without it the storage shim starts local-only.
	var remoteRepo repository.RemoteStoreRepository
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewClient(redis.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			appLogger.Warn("Redis unavailable, using local store only", logger.ErrorField(err))
		} else {
			defer redisClient.Close()
			remoteRepo = repository.NewRemoteStoreRepository(redisClient.Client, appLogger, cfg.Redis.KeyPrefix)
		}
	}

	// Repositories
	var newsRepo repository.NewsRepository
	if cfg.NewsAPIEnabled() {
		newsRepo = repository.NewNewsAPIRepository(cfg, appLogger, nil)
	} else {
		newsRepo = repository.NewNewsRSSRepository(cfg, appLogger, nil)
	}
	yahooRepo := repository.NewYahooFinanceRepository(cfg, appLogger)
	articleRepo := repository.NewArticleRepository(cfg, appLogger)
	localRepo := repository.NewLocalStoreRepository(db)

	var digestRepo repository.DigestRepository
	if cfg.GeminiEnabled() {
		genAiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.Gemini.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			appLogger.Warn("Failed to initialize Gemini client, digest disabled", logger.ErrorField(err))
		} else {
			digestRepo = repository.NewGeminiDigestRepository(cfg, appLogger, genAiClient)
		}
	}

	// Services
	storageSvc := service.NewStorageService(remoteRepo, localRepo, appLogger, cfg.Storage.RemoteRetryInterval, cfg.Storage.RemoteTimeout)
	communitySvc := service.NewCommunityService(storageSvc, appLogger)
	newsSvc := service.NewNewsService(cfg, appLogger, newsRepo)
	stockSvc := service.NewStockService(cfg, appLogger, yahooRepo)
	dashboardSvc := service.NewDashboardService(cfg, appLogger, newsSvc, stockSvc, digestRepo, articleRepo)

	if cfg.Scheduler.Enabled {
		jobs := []service.Job{strategy.NewDashboardRefreshStrategy(dashboardSvc, appLogger)}
		if cfg.TelegramEnabled() {
			notifier, err := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
			if err != nil {
				appLogger.Warn("Failed to initialize Telegram client, ranking push disabled", logger.ErrorField(err))
			} else {
				jobs = append(jobs, strategy.NewRankingNotifyStrategy(dashboardSvc, notifier, appLogger, rankingNotifyMaxStocks))
			}
		}

		schedulerSvc := service.NewSchedulerService(cfg, appLogger, jobs...)
		go func() {
			if err := schedulerSvc.Start(ctx); err != nil {
				appLogger.Error("Scheduler failed to start", logger.ErrorField(err))
			}
		}()
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.GET("/healthz", delivery.Healthz)
	apiV1 := e.Group("/api/v1")
	delivery.NewDashboardHandler(dashboardSvc, newsSvc, stockSvc, appLogger).RegisterRoutes(apiV1)
	delivery.NewCommunityHandler(communitySvc, storageSvc, appLogger).RegisterRoutes(apiV1)

	e.GET("/swagger/*", swagger.WrapHandler)

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop()
		}
	}()

	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

// openLocalStore opens the gorm database behind the local key-value store.
// SQLite is migrated in place; Postgres is migrated by cmd/migrate.
func openLocalStore(cfg *config.Config) (*gorm.DB, error) {
	switch cfg.Database.Driver {
	case "postgres":
		db, err := postgres.NewDB(postgres.Config{
			Host:            cfg.Database.Host,
			Port:            cfg.Database.Port,
			User:            cfg.Database.User,
			Password:        cfg.Database.Password,
			DBName:          cfg.Database.DBName,
			SSLMode:         cfg.Database.SSLMode,
			TimeZone:        cfg.Database.TimeZone,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
			LogLevel:        cfg.Database.LogLevel,
		})
		if err != nil {
			return nil, err
		}
		return db.DB, nil
	case "sqlite", "":
		db, err := sqlite.NewDB(cfg.Database.SQLitePath, cfg.Database.LogLevel)
		if err != nil {
			return nil, err
		}
		if err := repository.AutoMigrateLocalStore(db); err != nil {
			return nil, fmt.Errorf("failed to migrate sqlite local store: %w", err)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

// @title TNP Quick View API
// @version 1.0
// @description Japanese economic headlines, attention stocks, likes and comments.
// @BasePath /api/v1
func main() {
	rootCmd := &cobra.Command{Use: "dashboard-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-dashboard.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing dashboard-service CLI: %s\n", err)
		os.Exit(1)
	}
}
