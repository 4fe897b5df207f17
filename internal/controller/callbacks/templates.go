package callbacks

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/aquacrm/swimschool_bot/internal/controller/callbacks/keyboard"
	"github.com/aquacrm/swimschool_bot/internal/controller/state"
	"github.com/aquacrm/swimschool_bot/internal/model"
	"github.com/aquacrm/swimschool_bot/internal/schedule"
	"github.com/aquacrm/swimschool_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HandleTrainersList показывает список тренеров
func (h *Handler) HandleTrainersList(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	if _, ok := h.requireAdmin(ctx, b, callback); !ok {
		return
	}

	trainers, err := h.Trainers.List(ctx, true)
	if err != nil {
		h.Logger.Error("Failed to list trainers", zap.Error(err))
		h.answerAlert(ctx, b, callback.ID, "❌ Не удалось загрузить тренеров")
		return
	}

	text, kb := TrainersListView(trainers)
	h.editMessage(ctx, b, callback, text, kb)
	h.answerCallback(ctx, b, callback.ID, "")
}

// HandleTrainerCard показывает карточку тренера с шаблоном
func (h *Handler) HandleTrainerCard(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	if _, ok := h.requireAdmin(ctx, b, callback); !ok {
		return
	}

	id, err := parseUUID(callback.Data, Trainer)
	if err != nil {
		h.answerAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	h.showTrainerCard(ctx, b, callback, id)
}

func (h *Handler) showTrainerCard(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, trainerID uuid.UUID) {
	tpl, err := h.Templates.GetTemplate(ctx, trainerID)
	if err != nil {
		if errors.Is(err, service.ErrTrainerNotFound) {
			h.answerAlert(ctx, b, callback.ID, "❌ Тренер не найден")
			return
		}
		h.Logger.Error("Failed to get template", zap.Error(err))
		h.answerAlert(ctx, b, callback.ID, "❌ Не удалось загрузить шаблон")
		return
	}

	text, kb := TrainerCardView(tpl)
	h.editMessage(ctx, b, callback, text, kb)
	h.answerCallback(ctx, b, callback.ID, "")
}

// HandleTrainerAdd начинает диалог добавления тренера
func (h *Handler) HandleTrainerAdd(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	if _, ok := h.requireAdmin(ctx, b, callback); !ok {
		return
	}

	h.State.SetState(callback.From.ID, state.StateAddTrainerName)
	h.sendMessage(ctx, b, callback, "Введите имя тренера:", nil)
	h.answerCallback(ctx, b, callback.ID, "")
}

// HandleTrainerEdit начинает диалог правки имени и телефона тренера
func (h *Handler) HandleTrainerEdit(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	if _, ok := h.requireAdmin(ctx, b, callback); !ok {
		return
	}

	trainerID, err := parseUUID(callback.Data, TrainerEdit)
	if err != nil {
		h.answerAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	trainer, err := h.Trainers.GetByID(ctx, trainerID)
	if err != nil {
		h.Logger.Error("Failed to get trainer", zap.Error(err))
		h.answerAlert(ctx, b, callback.ID, "❌ Произошла ошибка")
		return
	}
	if trainer == nil {
		h.answerAlert(ctx, b, callback.ID, "❌ Тренер не найден")
		return
	}

	telegramID := callback.From.ID
	h.State.SetData(telegramID, state.KeyEditTrainerID, trainerID.String())
	h.State.SetState(telegramID, state.StateEditTrainerName)

	h.sendMessage(ctx, b, callback,
		"Новое имя тренера. Отправьте \"-\", чтобы оставить \""+trainer.Name+"\".", nil)
	h.answerCallback(ctx, b, callback.ID, "")
}

// HandleTrainerArchive архивирует тренера или возвращает из архива
func (h *Handler) HandleTrainerArchive(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, archived bool) {
	if _, ok := h.requireAdmin(ctx, b, callback); !ok {
		return
	}

	prefix := TrainerArchive
	if !archived {
		prefix = TrainerUnarchive
	}
	id, err := parseUUID(callback.Data, prefix)
	if err != nil {
		h.answerAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	if err := h.Trainers.SetArchived(ctx, id, archived); err != nil {
		if errors.Is(err, service.ErrTrainerNotFound) {
			h.answerAlert(ctx, b, callback.ID, "❌ Тренер не найден")
			return
		}
		h.Logger.Error("Failed to change trainer archive state", zap.Error(err))
		h.answerAlert(ctx, b, callback.ID, "❌ Произошла ошибка")
		return
	}

	h.showTrainerCard(ctx, b, callback, id)
}

// HandleAddInterval начинает добавление рабочего интервала: выбор дня
func (h *Handler) HandleAddInterval(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	if _, ok := h.requireAdmin(ctx, b, callback); !ok {
		return
	}

	trainerID, err := parseUUID(callback.Data, TplAddInterval)
	if err != nil {
		h.answerAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	h.State.SetData(callback.From.ID, state.KeyIntervalTrainerID, trainerID.String())

	text, kb := DayPickView("День недели для рабочего интервала:", TplAddIntervalDay)
	h.sendMessage(ctx, b, callback, text, kb)
	h.answerCallback(ctx, b, callback.ID, "")
}

// HandleAddIntervalDay сохраняет день, дальше админ вводит время текстом
func (h *Handler) HandleAddIntervalDay(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	if _, ok := h.requireAdmin(ctx, b, callback); !ok {
		return
	}

	day, err := parseInt(callback.Data, TplAddIntervalDay)
	if err != nil || day < 0 || day >= schedule.DaysInWeek {
		h.answerAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	telegramID := callback.From.ID
	h.State.SetData(telegramID, state.KeyIntervalDay, strconv.Itoa(day))
	h.State.SetState(telegramID, state.StateAddIntervalTime)

	h.editMessage(ctx, b, callback,
		DayNamesFull[day]+". Введите интервал в формате 08:00-12:00", nil)
	h.answerCallback(ctx, b, callback.ID, "")
}

// HandleDeleteInterval удаляет рабочий интервал
func (h *Handler) HandleDeleteInterval(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	if _, ok := h.requireAdmin(ctx, b, callback); !ok {
		return
	}

	id, err := parseUUID(callback.Data, TplDelInterval)
	if err != nil {
		h.answerAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	if err := h.Templates.RemoveInterval(ctx, id); err != nil {
		h.Logger.Error("Failed to delete interval", zap.Error(err))
		h.answerAlert(ctx, b, callback.ID, "❌ Не удалось удалить интервал")
		return
	}

	kb := keyboard.NewBuilder().Row(keyboard.Button("⬅️ Тренеры", TrainersList)).Build()
	h.editMessage(ctx, b, callback, "🗑 Интервал удалён", kb)
	h.answerCallback(ctx, b, callback.ID, "")
}

// HandlePin начинает закрепление клиента за слотом шаблона: выбор дня
func (h *Handler) HandlePin(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	if _, ok := h.requireAdmin(ctx, b, callback); !ok {
		return
	}

	trainerID, err := parseUUID(callback.Data, TplPin)
	if err != nil {
		h.answerAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	h.State.SetData(callback.From.ID, state.KeyPinTrainerID, trainerID.String())

	text, kb := DayPickView("День недели для закрепления:", TplPinDay)
	h.sendMessage(ctx, b, callback, text, kb)
	h.answerCallback(ctx, b, callback.ID, "")
}

// HandlePinDay показывает слоты рабочих интервалов выбранного дня
func (h *Handler) HandlePinDay(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	if _, ok := h.requireAdmin(ctx, b, callback); !ok {
		return
	}

	day, err := parseInt(callback.Data, TplPinDay)
	if err != nil || day < 0 || day >= schedule.DaysInWeek {
		h.answerAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	telegramID := callback.From.ID
	trainerID, err := uuid.Parse(h.State.GetString(telegramID, state.KeyPinTrainerID))
	if err != nil {
		h.answerAlert(ctx, b, callback.ID, "❌ Диалог прерван, начните заново")
		return
	}

	tpl, err := h.Templates.GetTemplate(ctx, trainerID)
	if err != nil {
		h.Logger.Error("Failed to get template", zap.Error(err))
		h.answerAlert(ctx, b, callback.ID, "❌ Не удалось загрузить шаблон")
		return
	}

	seen := make(map[string]bool)
	var slots []string
	for _, iv := range tpl.Intervals {
		if iv.DayOfWeek != day {
			continue
		}
		for _, slot := range schedule.GenerateTimeSlots(iv.StartTime, iv.EndTime) {
			if !seen[slot] {
				seen[slot] = true
				slots = append(slots, slot)
			}
		}
	}
	if len(slots) == 0 {
		h.answerAlert(ctx, b, callback.ID, "❌ На этот день нет рабочих интервалов")
		return
	}
	sort.Strings(slots)

	h.State.SetData(telegramID, state.KeyPinDay, strconv.Itoa(day))

	kb := keyboard.NewBuilder()
	var row []models.InlineKeyboardButton
	for _, slot := range slots {
		row = append(row, keyboard.Button(slot, TplPinSlot+slot))
		if len(row) == 4 {
			kb.Row(row...)
			row = nil
		}
	}
	kb.Row(row...)

	h.editMessage(ctx, b, callback, DayNamesFull[day]+". Выберите слот:", kb.Build())
	h.answerCallback(ctx, b, callback.ID, "")
}

// HandlePinSlot сохраняет слот и показывает клиентов
func (h *Handler) HandlePinSlot(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	if _, ok := h.requireAdmin(ctx, b, callback); !ok {
		return
	}

	slot := suffix(callback.Data, TplPinSlot)
	h.State.SetData(callback.From.ID, state.KeyPinSlot, slot)

	clients, err := h.Clients.List(ctx, nil, "")
	if err != nil {
		h.Logger.Error("Failed to list clients", zap.Error(err))
		h.answerAlert(ctx, b, callback.ID, "❌ Не удалось загрузить клиентов")
		return
	}

	text, kb := ClientPickView(clients, TplPinClient)
	h.editMessage(ctx, b, callback, text, kb)
	h.answerCallback(ctx, b, callback.ID, "")
}

// HandlePinClient сохраняет клиента и спрашивает тип посещения
func (h *Handler) HandlePinClient(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	if _, ok := h.requireAdmin(ctx, b, callback); !ok {
		return
	}

	clientID, err := parseUUID(callback.Data, TplPinClient)
	if err != nil {
		h.answerAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	h.State.SetData(callback.From.ID, state.KeyPinClientID, clientID.String())

	text, kb := ClientTypeView(TplPinType)
	h.editMessage(ctx, b, callback, text, kb)
	h.answerCallback(ctx, b, callback.ID, "")
}

// HandlePinType завершает закрепление клиента за слотом шаблона
func (h *Handler) HandlePinType(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	if _, ok := h.requireAdmin(ctx, b, callback); !ok {
		return
	}

	telegramID := callback.From.ID
	clientType := model.ClientType(suffix(callback.Data, TplPinType))

	trainerID, err1 := uuid.Parse(h.State.GetString(telegramID, state.KeyPinTrainerID))
	clientID, err2 := uuid.Parse(h.State.GetString(telegramID, state.KeyPinClientID))
	day, err3 := strconv.Atoi(h.State.GetString(telegramID, state.KeyPinDay))
	slot := h.State.GetString(telegramID, state.KeyPinSlot)
	if err1 != nil || err2 != nil || err3 != nil || slot == "" {
		h.answerAlert(ctx, b, callback.ID, "❌ Диалог прерван, начните заново")
		return
	}

	assignment, err := h.Templates.PinClient(ctx, trainerID, day, slot, clientID, clientType)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrClientNotFound):
			h.answerAlert(ctx, b, callback.ID, "❌ Клиент не найден")
		case errors.Is(err, service.ErrInvalidDay):
			h.answerAlert(ctx, b, callback.ID, "❌ Неверный день недели")
		default:
			h.Logger.Error("Failed to pin client", zap.Error(err))
			h.answerAlert(ctx, b, callback.ID, "❌ Не удалось закрепить клиента")
		}
		return
	}

	h.State.Clear(telegramID)
	h.editMessage(ctx, b, callback, fmt.Sprintf(
		"📌 Закреплено: %s %s, тип \"%s\". Попадёт в занятия при следующей генерации недели.",
		DayNames[assignment.DayOfWeek], assignment.TimeSlot, assignment.ClientType), nil)
	h.answerCallback(ctx, b, callback.ID, "")
}

// HandleDeleteAssignment удаляет закрепление клиента
func (h *Handler) HandleDeleteAssignment(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	if _, ok := h.requireAdmin(ctx, b, callback); !ok {
		return
	}

	id, err := parseUUID(callback.Data, TplDelAssignment)
	if err != nil {
		h.answerAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	if err := h.Templates.UnpinClient(ctx, id); err != nil {
		h.Logger.Error("Failed to delete assignment", zap.Error(err))
		h.answerAlert(ctx, b, callback.ID, "❌ Не удалось удалить закрепление")
		return
	}

	kb := keyboard.NewBuilder().Row(keyboard.Button("⬅️ Тренеры", TrainersList)).Build()
	h.editMessage(ctx, b, callback, "❌ Закрепление удалено", kb)
	h.answerCallback(ctx, b, callback.ID, "")
}

// HandleGenerate показывает выбор недели для генерации по шаблону
func (h *Handler) HandleGenerate(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	if _, ok := h.requireAdmin(ctx, b, callback); !ok {
		return
	}

	trainerID, err := parseUUID(callback.Data, Gen)
	if err != nil {
		h.answerAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	trainer, err := h.Trainers.GetByID(ctx, trainerID)
	if err != nil {
		h.Logger.Error("Failed to get trainer", zap.Error(err))
		h.answerAlert(ctx, b, callback.ID, "❌ Произошла ошибка")
		return
	}
	if trainer == nil {
		h.answerAlert(ctx, b, callback.ID, "❌ Тренер не найден")
		return
	}

	h.State.SetData(callback.From.ID, state.KeyGenTrainerID, trainerID.String())

	text, kb := GenerateWeekView(trainer, h.Now())
	h.editMessage(ctx, b, callback, text, kb)
	h.answerCallback(ctx, b, callback.ID, "")
}

// HandleGenerateWeek разворачивает шаблон тренера в занятия выбранной недели
func (h *Handler) HandleGenerateWeek(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	if _, ok := h.requireAdmin(ctx, b, callback); !ok {
		return
	}

	offset, err := parseInt(callback.Data, GenWeek)
	if err != nil {
		h.answerAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	telegramID := callback.From.ID
	trainerID, err := uuid.Parse(h.State.GetString(telegramID, state.KeyGenTrainerID))
	if err != nil {
		h.answerAlert(ctx, b, callback.ID, "❌ Диалог прерван, начните заново")
		return
	}

	weekStart := schedule.WeekStart(h.Now(), offset)
	summary, err := h.Schedule.MaterializeWeek(ctx, trainerID, weekStart)
	if err != nil {
		if errors.Is(err, service.ErrTrainerNotFound) {
			h.answerAlert(ctx, b, callback.ID, "❌ Тренер не найден")
			return
		}
		h.Logger.Error("Failed to materialize week",
			zap.Stringer("trainer_id", trainerID),
			zap.Error(err),
		)
		h.answerAlert(ctx, b, callback.ID, "❌ Не удалось сгенерировать неделю")
		return
	}

	h.State.Clear(telegramID)

	week := schedule.WeekDates(h.Now(), offset)
	text := fmt.Sprintf("⚡ Неделя %s\n\nСоздано: %d %s\nПропущено (слоты заняты): %d",
		FormatWeekRange(week), summary.Created, PluralizeLessons(summary.Created), summary.Skipped)
	if summary.Failed > 0 {
		text += fmt.Sprintf("\nОшибок записи: %d", summary.Failed)
	}

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("📅 Открыть неделю", fmt.Sprintf("%s%d", Sched, offset))).
		Row(keyboard.Button("⬅️ Тренеры", TrainersList)).
		Build()
	h.editMessage(ctx, b, callback, text, kb)
	h.answerCallback(ctx, b, callback.ID, "")
}
