package controller

import (
	"context"

	"github.com/aquacrm/swimschool_bot/internal/controller/callbacks"
	"github.com/aquacrm/swimschool_bot/internal/controller/handlers"
	"github.com/aquacrm/swimschool_bot/internal/controller/state"
	"github.com/aquacrm/swimschool_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	logger          *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	profileService *service.ProfileService,
	trainerService *service.TrainerService,
	clientService *service.ClientService,
	scheduleService *service.ScheduleService,
	templateService *service.TemplateService,
	taskService *service.TaskService,
	logger *zap.Logger,
) *BotController {
	// Менеджер состояний общий: кнопочные и текстовые шаги диалогов
	// работают с одной сессией
	stateManager := state.NewManager()

	callbackHandler := callbacks.NewHandler(
		profileService,
		trainerService,
		clientService,
		scheduleService,
		templateService,
		taskService,
		stateManager,
		logger,
	)

	cmdHandlers := handlers.NewHandlers(
		profileService,
		trainerService,
		clientService,
		scheduleService,
		templateService,
		taskService,
		callbackHandler,
		stateManager,
		logger,
	)

	return &BotController{
		bot:             botInstance,
		handlers:        cmdHandlers,
		callbackHandler: callbackHandler,
		logger:          logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	// Публичные команды
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/book", bot.MatchTypeExact, c.handlers.HandleBook)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact, c.handlers.HandleCancel)

	// Команды операторов
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/schedule", bot.MatchTypeExact, c.handlers.HandleSchedule)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/trainers", bot.MatchTypeExact, c.handlers.HandleTrainers)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/clients", bot.MatchTypeExact, c.handlers.HandleClients)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/tasks", bot.MatchTypeExact, c.handlers.HandleTasks)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/export", bot.MatchTypeExact, c.handlers.HandleExport)

	// Обработчик текстовых сообщений (для диалогов с состояниями)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handlers.HandleTextMessage)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	// Устанавливаем меню команд
	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "book", Description: "📝 Записаться на занятия"},
		{Command: "schedule", Description: "📅 Расписание на неделю"},
		{Command: "trainers", Description: "👥 Тренеры и шаблоны"},
		{Command: "clients", Description: "🧒 Клиенты"},
		{Command: "tasks", Description: "📋 Задачи"},
		{Command: "export", Description: "📥 Выгрузка клиентов в CSV"},
		{Command: "cancel", Description: "✖️ Прервать диалог"},
		{Command: "help", Description: "❓ Справка"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает бота
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}
