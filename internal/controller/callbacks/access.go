package callbacks

import (
	"context"

	"github.com/aquacrm/swimschool_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// requireProfile проверяет, что у пользователя есть профиль оператора
func (h *Handler) requireProfile(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) (*model.Profile, bool) {
	profile, err := h.Profiles.GetByTelegramID(ctx, callback.From.ID)
	if err != nil {
		h.Logger.Error("Failed to get profile",
			zap.Int64("telegram_id", callback.From.ID),
			zap.Error(err),
		)
		h.answerAlert(ctx, b, callback.ID, "❌ Произошла ошибка. Попробуйте позже.")
		return nil, false
	}

	if profile == nil {
		h.answerAlert(ctx, b, callback.ID, "❌ Нет доступа")
		return nil, false
	}

	return profile, true
}

// requireAdmin проверяет административную роль
func (h *Handler) requireAdmin(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) (*model.Profile, bool) {
	profile, ok := h.requireProfile(ctx, b, callback)
	if !ok {
		return nil, false
	}

	if !profile.IsAdmin() {
		h.answerAlert(ctx, b, callback.ID, "❌ Доступно только администратору")
		return nil, false
	}

	return profile, true
}
