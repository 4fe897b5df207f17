package handlers

import (
	"context"

	"github.com/aquacrm/swimschool_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// requireProfile проверяет, что у пользователя есть профиль оператора.
// Возвращает профиль и true если OK
func (h *Handlers) requireProfile(ctx context.Context, b *bot.Bot, update *models.Update) (*model.Profile, bool) {
	if update.Message == nil {
		return nil, false
	}

	telegramID := update.Message.From.ID
	profile, err := h.profiles.GetByTelegramID(ctx, telegramID)

	if err != nil {
		h.logger.Error("Failed to get profile", zap.Int64("telegram_id", telegramID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Произошла ошибка. Попробуйте позже.")
		return nil, false
	}

	if profile == nil {
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Нет доступа. Запись на занятия: /book")
		return nil, false
	}

	return profile, true
}

// requireAdmin проверяет административную роль
func (h *Handlers) requireAdmin(ctx context.Context, b *bot.Bot, update *models.Update) (*model.Profile, bool) {
	profile, ok := h.requireProfile(ctx, b, update)
	if !ok {
		return nil, false
	}

	if !profile.IsAdmin() {
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Эта команда доступна только администратору.")
		return nil, false
	}

	return profile, true
}
