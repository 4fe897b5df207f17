package callbacks

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// answerCallback подтверждает callback query (убирает "часики" на кнопке)
func (h *Handler) answerCallback(ctx context.Context, b *bot.Bot, callbackID, text string) {
	_, err := b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
	})
	if err != nil {
		h.Logger.Error("Failed to answer callback", zap.Error(err))
	}
}

// answerAlert показывает всплывающее окно с текстом ошибки
func (h *Handler) answerAlert(ctx context.Context, b *bot.Bot, callbackID, text string) {
	_, err := b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       true,
	})
	if err != nil {
		h.Logger.Error("Failed to answer callback with alert", zap.Error(err))
	}
}

// editMessage заменяет текст и клавиатуру сообщения с кнопкой
func (h *Handler) editMessage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, text string, kb *models.InlineKeyboardMarkup) {
	params := &bot.EditMessageTextParams{
		ChatID:    callback.Message.Message.Chat.ID,
		MessageID: callback.Message.Message.ID,
		Text:      text,
	}
	if kb != nil {
		params.ReplyMarkup = kb
	}

	if _, err := b.EditMessageText(ctx, params); err != nil {
		h.Logger.Error("Failed to edit message", zap.Error(err))
	}
}

// sendMessage отправляет новое сообщение в чат кнопки
func (h *Handler) sendMessage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, text string, kb *models.InlineKeyboardMarkup) {
	params := &bot.SendMessageParams{
		ChatID: callback.Message.Message.Chat.ID,
		Text:   text,
	}
	if kb != nil {
		params.ReplyMarkup = kb
	}

	if _, err := b.SendMessage(ctx, params); err != nil {
		h.Logger.Error("Failed to send message", zap.Error(err))
	}
}

// suffix отрезает префикс callback data: "cl:<uuid>" -> "<uuid>"
func suffix(data, prefix string) string {
	return strings.TrimPrefix(data, prefix)
}

// parseUUID извлекает uuid из callback data с указанным префиксом
func parseUUID(data, prefix string) (uuid.UUID, error) {
	id, err := uuid.Parse(suffix(data, prefix))
	if err != nil {
		return uuid.Nil, fmt.Errorf("parse callback uuid %q: %w", data, err)
	}
	return id, nil
}

// parseInt извлекает число из callback data с указанным префиксом
func parseInt(data, prefix string) (int, error) {
	n, err := strconv.Atoi(suffix(data, prefix))
	if err != nil {
		return 0, fmt.Errorf("parse callback number %q: %w", data, err)
	}
	return n, nil
}
