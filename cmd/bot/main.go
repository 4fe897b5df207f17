package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/aquacrm/swimschool_bot/internal/app"
	"github.com/aquacrm/swimschool_bot/internal/config"
	"github.com/aquacrm/swimschool_bot/internal/controller"
	"github.com/aquacrm/swimschool_bot/internal/model"
	"github.com/aquacrm/swimschool_bot/internal/repository"
	"github.com/aquacrm/swimschool_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := app.NewLogger(cfg.Environment)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("Starting swim school bot", zap.String("environment", cfg.Environment))

	// Graceful shutdown по SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Подключаемся к БД
	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create connection pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Применяем миграции
	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	if err := migrator.Close(); err != nil {
		logger.Warn("Failed to close migrator", zap.Error(err))
	}

	// Репозитории
	profileRepo := repository.NewProfileRepository(pool)
	trainerRepo := repository.NewTrainerRepository(pool)
	clientRepo := repository.NewClientRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	templateRepo := repository.NewTemplateRepository(pool)
	taskRepo := repository.NewTaskRepository(pool)

	// Сервисы
	profileService := service.NewProfileService(profileRepo, logger)
	trainerService := service.NewTrainerService(trainerRepo, logger)
	clientService := service.NewClientService(clientRepo, bookingRepo, logger)
	scheduleService := service.NewScheduleService(trainerRepo, templateRepo, bookingRepo, logger)
	templateService := service.NewTemplateService(trainerRepo, templateRepo, clientRepo, logger)
	taskService := service.NewTaskService(taskRepo, logger)

	// Первый администратор задаётся через окружение
	if cfg.AdminTelegramID != 0 {
		if _, err := profileService.Grant(ctx, cfg.AdminTelegramID, model.RoleAdmin, nil); err != nil {
			logger.Fatal("Failed to grant admin profile", zap.Error(err))
		}
	}

	// Telegram бот
	botInstance, err := bot.New(cfg.TelegramToken)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	botController := controller.NewBotController(
		botInstance,
		profileService,
		trainerService,
		clientService,
		scheduleService,
		templateService,
		taskService,
		logger,
	)

	if err := botController.RegisterHandlers(ctx); err != nil {
		logger.Fatal("Failed to register handlers", zap.Error(err))
	}

	// Start блокируется до отмены контекста
	if err := botController.Start(ctx); err != nil {
		logger.Fatal("Bot stopped with error", zap.Error(err))
	}

	logger.Info("Bot stopped")
}
