package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dosada05/mahjong-scorebook/config"
	"github.com/Dosada05/mahjong-scorebook/db"
	"github.com/Dosada05/mahjong-scorebook/handlers"
	"github.com/Dosada05/mahjong-scorebook/models"
	"github.com/Dosada05/mahjong-scorebook/realtime"
	"github.com/Dosada05/mahjong-scorebook/repositories"
	api "github.com/Dosada05/mahjong-scorebook/routes"
	"github.com/Dosada05/mahjong-scorebook/services"
	"github.com/Dosada05/mahjong-scorebook/storage"
	"github.com/go-chi/chi/v5"
)

func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("application stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("application exited")
}

func run(logger *slog.Logger) error {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort), slog.Bool("export_enabled", cfg.ExportEnabled()))

	// Подключение к базе данных
	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()

	if err := db.Migrate(startupCtx, dbConn); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	logger.Info("database schema is up to date")

	// Загрузчик экспорта (Cloudflare R2) необязателен
	var uploader storage.FileUploader
	if cfg.ExportEnabled() {
		uploader, err = storage.NewCloudflareR2Uploader(startupCtx, storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		}, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize Cloudflare R2 uploader: %w", err)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	}

	// Лента изменений
	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	wsHub := realtime.NewHub(logger)
	go wsHub.Run(hubCtx)

	// Инициализация репозиториев
	userRepo := repositories.NewPostgresUserRepository(dbConn)
	sessionRepo := repositories.NewPostgresSessionRepository(dbConn)
	settingsRepo := repositories.NewPostgresSettingsRepository(dbConn)
	txRunner := repositories.NewTxRunner(dbConn)

	// Инициализация сервисов
	userService := services.NewUserService(userRepo, logger)
	settingsService := services.NewSettingsService(settingsRepo, cfg.DefaultSettings, logger)
	sessionService := services.NewSessionService(sessionRepo, txRunner, settingsService, wsHub, logger)
	statisticsService := services.NewStatisticsService(userRepo, sessionRepo)
	exportService := services.NewExportService(sessionRepo, uploader, logger)
	dashboardService := services.NewDashboardService(userRepo, sessionRepo)

	if _, err := userService.EnsureMainUser(startupCtx, cfg.MainUserName); err != nil {
		return fmt.Errorf("failed to ensure main user: %w", err)
	}
	if err := settingsService.EnsureDefaults(startupCtx); err != nil {
		return fmt.Errorf("failed to store default settings: %w", err)
	}

	unsubscribe := settingsService.Subscribe(func(s models.Settings) {
		wsHub.Notify(realtime.RoomSettings, realtime.EventSettingsUpdated, s)
	})
	defer unsubscribe()

	// Настройка маршрутизатора
	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		logger,
		handlers.NewUserHandler(userService),
		handlers.NewSessionHandler(sessionService, userService),
		handlers.NewSettingsHandler(settingsService),
		handlers.NewStatisticsHandler(statisticsService),
		handlers.NewExportHandler(exportService),
		handlers.NewDashboardHandler(dashboardService),
		handlers.NewWebSocketHandler(wsHub),
	)

	// Настройка и запуск HTTP-сервера
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		logger.Info("server shutdown complete")
	}
	return nil
}
