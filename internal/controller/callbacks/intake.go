package callbacks

import (
	"context"

	"github.com/aquacrm/swimschool_bot/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Кнопочные шаги публичной онлайн-записи. Текстовые шаги диалога
// обрабатываются в handlers, завершение - там же.

// HandleIntakeSubscription сохраняет выбранный абонемент ("" - пропуск)
// и предлагает выбрать тренера
func (h *Handler) HandleIntakeSubscription(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, sub string) {
	telegramID := callback.From.ID
	h.State.SetData(telegramID, state.KeyIntakeSubscription, sub)

	trainers, err := h.Trainers.List(ctx, false)
	if err != nil {
		h.Logger.Error("Failed to list trainers for intake", zap.Error(err))
		trainers = nil
	}

	if len(trainers) == 0 {
		h.askIntakeComment(ctx, b, callback)
		return
	}

	text, kb := IntakeTrainerPickView(trainers)
	h.editMessage(ctx, b, callback, text, kb)
	h.answerCallback(ctx, b, callback.ID, "")
}

// HandleIntakeTrainer сохраняет предпочтительного тренера ("" - не важно)
func (h *Handler) HandleIntakeTrainer(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, idStr string) {
	telegramID := callback.From.ID

	if idStr != "" {
		if _, err := uuid.Parse(idStr); err != nil {
			h.answerAlert(ctx, b, callback.ID, "❌ Неверный формат")
			return
		}
		h.State.SetData(telegramID, state.KeyIntakeTrainerID, idStr)
	}

	h.askIntakeComment(ctx, b, callback)
}

func (h *Handler) askIntakeComment(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	h.State.SetState(callback.From.ID, state.StateIntakeComment)
	h.editMessage(ctx, b, callback,
		"Комментарий к заявке (удобное время, пожелания). Отправьте \"-\", чтобы пропустить.", nil)
	h.answerCallback(ctx, b, callback.ID, "")
}
