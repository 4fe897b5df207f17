package callbacks

import (
	"context"
	"errors"

	"github.com/aquacrm/swimschool_bot/internal/controller/state"
	"github.com/aquacrm/swimschool_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleTasks показывает список задач
func (h *Handler) HandleTasks(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, onlyOpen bool) {
	if _, ok := h.requireAdmin(ctx, b, callback); !ok {
		return
	}

	tasks, err := h.Tasks.List(ctx, onlyOpen)
	if err != nil {
		h.Logger.Error("Failed to list tasks", zap.Error(err))
		h.answerAlert(ctx, b, callback.ID, "❌ Не удалось загрузить задачи")
		return
	}

	text, kb := TasksView(tasks, onlyOpen)
	h.editMessage(ctx, b, callback, text, kb)
	h.answerCallback(ctx, b, callback.ID, "")
}

// HandleTaskToggle переключает статус задачи open <-> done
func (h *Handler) HandleTaskToggle(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	if _, ok := h.requireAdmin(ctx, b, callback); !ok {
		return
	}

	id, err := parseUUID(callback.Data, TaskToggle)
	if err != nil {
		h.answerAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	if _, err := h.Tasks.Toggle(ctx, id); err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			h.answerAlert(ctx, b, callback.ID, "❌ Задача не найдена")
			return
		}
		h.Logger.Error("Failed to toggle task", zap.Error(err))
		h.answerAlert(ctx, b, callback.ID, "❌ Не удалось обновить задачу")
		return
	}

	tasks, err := h.Tasks.List(ctx, true)
	if err != nil {
		h.Logger.Error("Failed to list tasks", zap.Error(err))
		h.answerCallback(ctx, b, callback.ID, "✅")
		return
	}

	text, kb := TasksView(tasks, true)
	h.editMessage(ctx, b, callback, text, kb)
	h.answerCallback(ctx, b, callback.ID, "")
}

// HandleTaskAdd начинает диалог создания задачи
func (h *Handler) HandleTaskAdd(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	if _, ok := h.requireAdmin(ctx, b, callback); !ok {
		return
	}

	h.State.SetState(callback.From.ID, state.StateAddTaskText)
	h.sendMessage(ctx, b, callback, "Введите текст задачи:", nil)
	h.answerCallback(ctx, b, callback.ID, "")
}

// HandleTaskAddForClient начинает создание задачи, привязанной к клиенту
// (кнопка на карточке клиента)
func (h *Handler) HandleTaskAddForClient(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	if _, ok := h.requireAdmin(ctx, b, callback); !ok {
		return
	}

	clientID, err := parseUUID(callback.Data, TaskAddClient)
	if err != nil {
		h.answerAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	client, err := h.Clients.GetByID(ctx, clientID)
	if err != nil {
		h.Logger.Error("Failed to get client", zap.Error(err))
		h.answerAlert(ctx, b, callback.ID, "❌ Произошла ошибка")
		return
	}
	if client == nil {
		h.answerAlert(ctx, b, callback.ID, "❌ Клиент не найден")
		return
	}

	telegramID := callback.From.ID
	h.State.SetData(telegramID, state.KeyTaskClientID, clientID.String())
	h.State.SetState(telegramID, state.StateAddTaskText)

	h.sendMessage(ctx, b, callback, "Задача по клиенту \""+client.ChildFullName+"\". Введите текст:", nil)
	h.answerCallback(ctx, b, callback.ID, "")
}
