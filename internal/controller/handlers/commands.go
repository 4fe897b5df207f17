package handlers

import (
	"context"
	"fmt"

	"github.com/aquacrm/swimschool_bot/internal/controller/callbacks"
	"github.com/aquacrm/swimschool_bot/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	profile, err := h.profiles.GetByTelegramID(ctx, update.Message.From.ID)
	if err != nil {
		h.logger.Error("Failed to get profile", zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Произошла ошибка. Попробуйте позже.")
		return
	}

	if profile == nil {
		h.sendMessage(ctx, b, chatID,
			"🏊 Привет! Это бот школы плавания.\n\n"+
				"Хотите записать ребёнка на занятия? Нажмите /book - это займёт пару минут.")
		return
	}

	text := "🏊 С возвращением!\n\n" +
		"/schedule - расписание на неделю\n"
	if profile.IsAdmin() {
		text += "/trainers - тренеры и шаблоны\n" +
			"/clients - клиенты\n" +
			"/tasks - задачи\n" +
			"/export - выгрузка клиентов в CSV\n"
	}
	text += "/help - справка"

	h.sendMessage(ctx, b, chatID, text)
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID,
		"🏊 Бот школы плавания\n\n"+
			"Для всех:\n"+
			"/book - записать ребёнка на занятия\n"+
			"/cancel - прервать текущий диалог\n\n"+
			"Для сотрудников:\n"+
			"/schedule - сетка расписания на неделю\n"+
			"/trainers - тренеры, шаблоны, генерация недели\n"+
			"/clients - база клиентов\n"+
			"/tasks - задачи\n"+
			"/export - выгрузка клиентов в CSV")
}

// HandleCancel сбрасывает текущий диалог
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	h.stateManager.Clear(update.Message.From.ID)
	h.sendMessage(ctx, b, update.Message.Chat.ID, "Диалог сброшен.")
}

// HandleBook начинает публичный диалог онлайн-записи
func (h *Handlers) HandleBook(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	telegramID := update.Message.From.ID

	h.stateManager.Clear(telegramID)
	h.stateManager.SetState(telegramID, state.StateIntakeChildName)

	h.sendMessage(ctx, b, update.Message.Chat.ID,
		"📝 Запись на занятия.\n\nКак зовут ребёнка? (имя и фамилия)")
}

// HandleSchedule показывает недельную сетку расписания
func (h *Handlers) HandleSchedule(ctx context.Context, b *bot.Bot, update *models.Update) {
	if _, ok := h.requireProfile(ctx, b, update); !ok {
		return
	}
	chatID := update.Message.Chat.ID

	grid, err := h.schedule.GetWeekGrid(ctx, h.now(), 0)
	if err != nil {
		h.logger.Error("Failed to load week grid", zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Не удалось загрузить расписание.")
		return
	}

	text, kb := callbacks.WeekView(grid, 0)
	h.sendMessageKb(ctx, b, chatID, text, kb)
}

// HandleTrainers показывает список тренеров
func (h *Handlers) HandleTrainers(ctx context.Context, b *bot.Bot, update *models.Update) {
	if _, ok := h.requireAdmin(ctx, b, update); !ok {
		return
	}
	chatID := update.Message.Chat.ID

	trainers, err := h.trainers.List(ctx, true)
	if err != nil {
		h.logger.Error("Failed to list trainers", zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Не удалось загрузить тренеров.")
		return
	}

	text, kb := callbacks.TrainersListView(trainers)
	h.sendMessageKb(ctx, b, chatID, text, kb)
}

// HandleClients показывает список клиентов
func (h *Handlers) HandleClients(ctx context.Context, b *bot.Bot, update *models.Update) {
	if _, ok := h.requireAdmin(ctx, b, update); !ok {
		return
	}
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	// Команда всегда открывает полный список
	h.stateManager.SetData(telegramID, state.KeyClientFilter, "all")
	h.stateManager.SetData(telegramID, state.KeyClientSearch, "")

	text, kb, err := h.screens.ClientsScreen(ctx, telegramID, 0)
	if err != nil {
		h.logger.Error("Failed to list clients", zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Не удалось загрузить клиентов.")
		return
	}

	h.sendMessageKb(ctx, b, chatID, text, kb)
}

// HandleTasks показывает открытые задачи
func (h *Handlers) HandleTasks(ctx context.Context, b *bot.Bot, update *models.Update) {
	if _, ok := h.requireAdmin(ctx, b, update); !ok {
		return
	}
	chatID := update.Message.Chat.ID

	tasks, err := h.tasks.List(ctx, true)
	if err != nil {
		h.logger.Error("Failed to list tasks", zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Не удалось загрузить задачи.")
		return
	}

	text, kb := callbacks.TasksView(tasks, true)
	h.sendMessageKb(ctx, b, chatID, text, kb)
}

// HandleExport выгружает клиентов в CSV файлом
func (h *Handlers) HandleExport(ctx context.Context, b *bot.Bot, update *models.Update) {
	if _, ok := h.requireAdmin(ctx, b, update); !ok {
		return
	}
	chatID := update.Message.Chat.ID

	data, err := h.clients.ExportCSV(ctx)
	if err != nil {
		h.logger.Error("Failed to export clients", zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Не удалось выгрузить клиентов.")
		return
	}

	filename := fmt.Sprintf("clients_%s.csv", h.now().Format("2006-01-02"))
	h.sendDocument(ctx, b, chatID, filename, data)
}
