package callbacks

import (
	"context"
	"errors"
	"strings"

	"github.com/aquacrm/swimschool_bot/internal/controller/callbacks/keyboard"
	"github.com/aquacrm/swimschool_bot/internal/controller/state"
	"github.com/aquacrm/swimschool_bot/internal/model"
	"github.com/aquacrm/swimschool_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ClientsScreen строит страницу списка клиентов с учётом фильтра и
// поиска из сессии пользователя
func (h *Handler) ClientsScreen(ctx context.Context, telegramID int64, page int) (string, *models.InlineKeyboardMarkup, error) {
	filter := h.State.GetString(telegramID, state.KeyClientFilter)
	search := h.State.GetString(telegramID, state.KeyClientSearch)

	var status *model.ClientStatus
	title := "👥 Клиенты"
	if filter != "" && filter != "all" {
		s := model.ClientStatus(filter)
		status = &s
		title += " · " + filter
	}
	if search != "" {
		title += " · поиск \"" + search + "\""
	}

	clients, err := h.Clients.List(ctx, status, search)
	if err != nil {
		return "", nil, err
	}

	text, kb := ClientsListView(clients, page, title)
	return text, kb, nil
}

// HandleClientsFilter меняет фильтр по статусу и сбрасывает поиск
func (h *Handler) HandleClientsFilter(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	if _, ok := h.requireAdmin(ctx, b, callback); !ok {
		return
	}

	telegramID := callback.From.ID
	h.State.SetData(telegramID, state.KeyClientFilter, suffix(callback.Data, ClientsFilter))
	h.State.SetData(telegramID, state.KeyClientSearch, "")

	h.showClientsPage(ctx, b, callback, 0)
}

// HandleClientsPage перелистывает список клиентов
func (h *Handler) HandleClientsPage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	if _, ok := h.requireAdmin(ctx, b, callback); !ok {
		return
	}

	page, err := parseInt(callback.Data, ClientsPage)
	if err != nil || page < 0 {
		page = 0
	}

	h.showClientsPage(ctx, b, callback, page)
}

func (h *Handler) showClientsPage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, page int) {
	text, kb, err := h.ClientsScreen(ctx, callback.From.ID, page)
	if err != nil {
		h.Logger.Error("Failed to list clients", zap.Error(err))
		h.answerAlert(ctx, b, callback.ID, "❌ Не удалось загрузить клиентов")
		return
	}

	h.editMessage(ctx, b, callback, text, kb)
	h.answerCallback(ctx, b, callback.ID, "")
}

// HandleClientCard показывает карточку клиента
func (h *Handler) HandleClientCard(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	if _, ok := h.requireAdmin(ctx, b, callback); !ok {
		return
	}

	id, err := parseUUID(callback.Data, Client)
	if err != nil {
		h.answerAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	h.showClientCard(ctx, b, callback, id)
}

func (h *Handler) showClientCard(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, id uuid.UUID) {
	client, err := h.Clients.GetByID(ctx, id)
	if err != nil {
		h.Logger.Error("Failed to get client", zap.Error(err))
		h.answerAlert(ctx, b, callback.ID, "❌ Произошла ошибка")
		return
	}
	if client == nil {
		h.answerAlert(ctx, b, callback.ID, "❌ Клиент не найден")
		return
	}

	upcoming, err := h.Clients.UpcomingBookings(ctx, id, h.Now())
	if err != nil {
		h.Logger.Error("Failed to get upcoming bookings", zap.Error(err))
		upcoming = nil
	}

	text, kb := ClientCardView(client, upcoming)
	h.editMessage(ctx, b, callback, text, kb)
	h.answerCallback(ctx, b, callback.ID, "")
}

// HandleClientStatus переводит клиента в другой статус воронки
func (h *Handler) HandleClientStatus(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	if _, ok := h.requireAdmin(ctx, b, callback); !ok {
		return
	}

	parts := strings.SplitN(suffix(callback.Data, ClientStatus), ":", 2)
	if len(parts) != 2 {
		h.answerAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}
	id, err := uuid.Parse(parts[0])
	if err != nil {
		h.answerAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	if err := h.Clients.SetStatus(ctx, id, model.ClientStatus(parts[1])); err != nil {
		if errors.Is(err, service.ErrClientNotFound) {
			h.answerAlert(ctx, b, callback.ID, "❌ Клиент не найден")
			return
		}
		h.Logger.Error("Failed to set client status", zap.Error(err))
		h.answerAlert(ctx, b, callback.ID, "❌ Не удалось сменить статус")
		return
	}

	h.showClientCard(ctx, b, callback, id)
}

// HandleClientEdit начинает диалог правки карточки клиента
func (h *Handler) HandleClientEdit(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	if _, ok := h.requireAdmin(ctx, b, callback); !ok {
		return
	}

	id, err := parseUUID(callback.Data, ClientEdit)
	if err != nil {
		h.answerAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	client, err := h.Clients.GetByID(ctx, id)
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
	h.State.SetData(telegramID, state.KeyEditClientID, id.String())
	h.State.SetState(telegramID, state.StateEditClientName)

	h.sendMessage(ctx, b, callback,
		"Имя и фамилия ребёнка. Отправьте \"-\", чтобы оставить \""+client.ChildFullName+"\".", nil)
	h.answerCallback(ctx, b, callback.ID, "")
}

// HandleClientArchive отправляет клиента в архив
func (h *Handler) HandleClientArchive(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	if _, ok := h.requireAdmin(ctx, b, callback); !ok {
		return
	}

	id, err := parseUUID(callback.Data, ClientArchive)
	if err != nil {
		h.answerAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	if err := h.Clients.Archive(ctx, id); err != nil {
		h.Logger.Error("Failed to archive client", zap.Error(err))
		h.answerAlert(ctx, b, callback.ID, "❌ Не удалось архивировать клиента")
		return
	}

	kb := keyboard.NewBuilder().Row(keyboard.Button("⬅️ К списку", ClientsPage+"0")).Build()
	h.editMessage(ctx, b, callback, "🗄 Клиент в архиве", kb)
	h.answerCallback(ctx, b, callback.ID, "")
}

// HandleClientAdd начинает диалог ручного добавления клиента
func (h *Handler) HandleClientAdd(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	if _, ok := h.requireAdmin(ctx, b, callback); !ok {
		return
	}

	h.State.SetState(callback.From.ID, state.StateAddClientName)
	h.sendMessage(ctx, b, callback, "Введите имя и фамилию ребёнка:", nil)
	h.answerCallback(ctx, b, callback.ID, "")
}

// HandleClientSearch начинает диалог поиска клиента
func (h *Handler) HandleClientSearch(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	if _, ok := h.requireAdmin(ctx, b, callback); !ok {
		return
	}

	h.State.SetState(callback.From.ID, state.StateSearchClient)
	h.sendMessage(ctx, b, callback, "Введите имя ребёнка или телефон родителя:", nil)
	h.answerCallback(ctx, b, callback.ID, "")
}
