package callbacks

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/aquacrm/swimschool_bot/internal/controller/state"
	"github.com/aquacrm/swimschool_bot/internal/model"
	"github.com/aquacrm/swimschool_bot/internal/schedule"
	"github.com/aquacrm/swimschool_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HandleScheduleWeek показывает недельную сетку со сдвигом недель
func (h *Handler) HandleScheduleWeek(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	if _, ok := h.requireProfile(ctx, b, callback); !ok {
		return
	}

	offset, err := parseInt(callback.Data, Sched)
	if err != nil {
		h.answerAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	grid, err := h.Schedule.GetWeekGrid(ctx, h.Now(), offset)
	if err != nil {
		h.Logger.Error("Failed to load week grid", zap.Error(err))
		h.answerAlert(ctx, b, callback.ID, "❌ Не удалось загрузить расписание")
		return
	}

	text, kb := WeekView(grid, offset)
	h.editMessage(ctx, b, callback, text, kb)
	h.answerCallback(ctx, b, callback.ID, "")
}

// HandleScheduleDay показывает занятия одного дня
func (h *Handler) HandleScheduleDay(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	if _, ok := h.requireProfile(ctx, b, callback); !ok {
		return
	}

	parts := strings.Split(suffix(callback.Data, SchedDay), ":")
	if len(parts) != 2 {
		h.answerAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}
	offset, err1 := strconv.Atoi(parts[0])
	day, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || day < 0 || day >= schedule.DaysInWeek {
		h.answerAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	grid, err := h.Schedule.GetWeekGrid(ctx, h.Now(), offset)
	if err != nil {
		h.Logger.Error("Failed to load week grid", zap.Error(err))
		h.answerAlert(ctx, b, callback.ID, "❌ Не удалось загрузить расписание")
		return
	}

	text, kb := DayView(grid, offset, day)
	h.editMessage(ctx, b, callback, text, kb)
	h.answerCallback(ctx, b, callback.ID, "")
}

// HandleBookingCard показывает карточку занятия
func (h *Handler) HandleBookingCard(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	if _, ok := h.requireProfile(ctx, b, callback); !ok {
		return
	}

	id, err := parseUUID(callback.Data, Cell)
	if err != nil {
		h.answerAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	booking, err := h.Schedule.GetBooking(ctx, id)
	if err != nil {
		h.Logger.Error("Failed to get booking", zap.Error(err))
		h.answerAlert(ctx, b, callback.ID, "❌ Произошла ошибка")
		return
	}
	if booking == nil {
		h.answerAlert(ctx, b, callback.ID, "❌ Занятие не найдено")
		return
	}

	trainerName := "?"
	if trainer, err := h.Trainers.GetByID(ctx, booking.TrainerID); err == nil && trainer != nil {
		trainerName = trainer.Name
	}

	text, kb := BookingCardView(booking, trainerName)
	h.sendMessage(ctx, b, callback, text, kb)
	h.answerCallback(ctx, b, callback.ID, "")
}

// HandleBookingAssign начинает запись клиента в занятие: выбор клиента
func (h *Handler) HandleBookingAssign(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	if _, ok := h.requireAdmin(ctx, b, callback); !ok {
		return
	}

	id, err := parseUUID(callback.Data, BookingAssign)
	if err != nil {
		h.answerAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	clients, err := h.Clients.List(ctx, nil, "")
	if err != nil {
		h.Logger.Error("Failed to list clients", zap.Error(err))
		h.answerAlert(ctx, b, callback.ID, "❌ Не удалось загрузить клиентов")
		return
	}

	h.State.SetData(callback.From.ID, state.KeyAssignBookingID, id.String())

	text, kb := ClientPickView(clients, ClientPick)
	h.editMessage(ctx, b, callback, text, kb)
	h.answerCallback(ctx, b, callback.ID, "")
}

// HandleClientPick сохраняет выбранного клиента и спрашивает тип посещения
func (h *Handler) HandleClientPick(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	if _, ok := h.requireAdmin(ctx, b, callback); !ok {
		return
	}

	clientID, err := parseUUID(callback.Data, ClientPick)
	if err != nil {
		h.answerAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	h.State.SetData(callback.From.ID, state.KeyAssignClientID, clientID.String())

	text, kb := ClientTypeView(BookingType)
	h.editMessage(ctx, b, callback, text, kb)
	h.answerCallback(ctx, b, callback.ID, "")
}

// HandleBookingType завершает запись клиента в занятие
func (h *Handler) HandleBookingType(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	if _, ok := h.requireAdmin(ctx, b, callback); !ok {
		return
	}

	telegramID := callback.From.ID
	clientType := model.ClientType(suffix(callback.Data, BookingType))

	bookingID, err1 := uuid.Parse(h.State.GetString(telegramID, state.KeyAssignBookingID))
	clientID, err2 := uuid.Parse(h.State.GetString(telegramID, state.KeyAssignClientID))
	if err1 != nil || err2 != nil {
		h.answerAlert(ctx, b, callback.ID, "❌ Диалог прерван, начните заново")
		return
	}

	booking, err := h.Schedule.GetBooking(ctx, bookingID)
	if err != nil || booking == nil {
		h.answerAlert(ctx, b, callback.ID, "❌ Занятие не найдено")
		return
	}

	err = h.Schedule.BookSlot(ctx, booking.TrainerID, booking.Date, schedule.NormalizeSlot(booking.TimeSlot), &clientID, clientType)
	if err != nil {
		if errors.Is(err, service.ErrSlotTaken) {
			h.answerAlert(ctx, b, callback.ID, "❌ Слот уже занят")
			return
		}
		h.Logger.Error("Failed to book slot", zap.Error(err))
		h.answerAlert(ctx, b, callback.ID, "❌ Не удалось записать клиента")
		return
	}

	h.State.Clear(telegramID)
	h.editMessage(ctx, b, callback,
		"✅ Клиент записан: "+FormatDay(booking.Date)+" "+schedule.NormalizeSlot(booking.TimeSlot), nil)
	h.answerCallback(ctx, b, callback.ID, "")
}

// HandleBookingCancel отменяет занятие. Строка остаётся в БД и держит
// ключ слота, так что генерация недели его не пересоздаст.
func (h *Handler) HandleBookingCancel(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	if _, ok := h.requireAdmin(ctx, b, callback); !ok {
		return
	}

	id, err := parseUUID(callback.Data, BookingCancel)
	if err != nil {
		h.answerAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	if err := h.Schedule.CancelBooking(ctx, id); err != nil {
		if errors.Is(err, service.ErrBookingNotFound) {
			h.answerAlert(ctx, b, callback.ID, "❌ Занятие не найдено")
			return
		}
		h.Logger.Error("Failed to cancel booking", zap.Error(err))
		h.answerAlert(ctx, b, callback.ID, "❌ Не удалось отменить занятие")
		return
	}

	h.editMessage(ctx, b, callback, "🚫 Занятие отменено. Слот остаётся занятым в истории.", nil)
	h.answerCallback(ctx, b, callback.ID, "")
}

// HandleManualSlot начинает ручное создание слота: дальше админ вводит время
func (h *Handler) HandleManualSlot(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	if _, ok := h.requireAdmin(ctx, b, callback); !ok {
		return
	}

	parts := strings.SplitN(suffix(callback.Data, ManualTrainer), ":", 2)
	if len(parts) != 2 {
		h.answerAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}
	trainerID, err := uuid.Parse(parts[0])
	if err != nil {
		h.answerAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}
	if _, err := time.Parse("2006-01-02", parts[1]); err != nil {
		h.answerAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	telegramID := callback.From.ID
	h.State.SetData(telegramID, state.KeyManualTrainerID, trainerID.String())
	h.State.SetData(telegramID, state.KeyManualDate, parts[1])
	h.State.SetState(telegramID, state.StateManualSlotTime)

	h.sendMessage(ctx, b, callback, "Введите время слота в формате 08:00", nil)
	h.answerCallback(ctx, b, callback.ID, "")
}
