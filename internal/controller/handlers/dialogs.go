package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/aquacrm/swimschool_bot/internal/controller/callbacks"
	"github.com/aquacrm/swimschool_bot/internal/controller/state"
	"github.com/aquacrm/swimschool_bot/internal/model"
	"github.com/aquacrm/swimschool_bot/internal/schedule"
	"github.com/aquacrm/swimschool_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HandleTextMessage обрабатывает текстовые шаги диалогов.
// Сообщения вне диалога игнорируются.
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	text := strings.TrimSpace(update.Message.Text)
	if strings.HasPrefix(text, "/") {
		// Команды обрабатываются своими обработчиками
		return
	}

	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	switch h.stateManager.GetState(telegramID) {
	case state.StateNone:
		return

	// ===== Онлайн-запись =====
	case state.StateIntakeChildName:
		if text == "" {
			h.sendMessage(ctx, b, chatID, "Напишите имя и фамилию ребёнка:")
			return
		}
		h.stateManager.SetData(telegramID, state.KeyIntakeChildName, text)
		h.stateManager.SetState(telegramID, state.StateIntakeBirthDate)
		h.sendMessage(ctx, b, chatID, "Дата рождения ребёнка (ДД.ММ.ГГГГ). Отправьте \"-\", чтобы пропустить.")

	case state.StateIntakeBirthDate:
		if text != "-" {
			if _, err := time.Parse("02.01.2006", text); err != nil {
				h.sendMessage(ctx, b, chatID, "Не получилось разобрать дату. Формат: 15.06.2018, либо \"-\".")
				return
			}
			h.stateManager.SetData(telegramID, state.KeyIntakeBirthDate, text)
		}
		h.stateManager.SetState(telegramID, state.StateIntakeParentName)
		h.sendMessage(ctx, b, chatID, "Как зовут родителя?")

	case state.StateIntakeParentName:
		if text != "-" {
			h.stateManager.SetData(telegramID, state.KeyIntakeParentName, text)
		}
		h.stateManager.SetState(telegramID, state.StateIntakeParentPhone)
		h.sendMessage(ctx, b, chatID, "Телефон для связи:")

	case state.StateIntakeParentPhone:
		if text == "" {
			h.sendMessage(ctx, b, chatID, "Напишите телефон для связи:")
			return
		}
		h.stateManager.SetData(telegramID, state.KeyIntakeParentPhone, text)
		h.stateManager.SetState(telegramID, state.StateIntakePick)
		pickText, kb := callbacks.SubscriptionPickView()
		h.sendMessageKb(ctx, b, chatID, pickText, kb)

	case state.StateIntakePick:
		h.sendMessage(ctx, b, chatID, "Выберите вариант кнопками выше 👆")

	case state.StateIntakeComment:
		h.finishIntake(ctx, b, chatID, telegramID, text)

	// ===== Добавление тренера =====
	case state.StateAddTrainerName:
		if text == "" {
			h.sendMessage(ctx, b, chatID, "Напишите имя тренера:")
			return
		}
		h.stateManager.SetData(telegramID, state.KeyTrainerName, text)
		h.stateManager.SetState(telegramID, state.StateAddTrainerPhone)
		h.sendMessage(ctx, b, chatID, "Телефон тренера. Отправьте \"-\", чтобы пропустить.")

	case state.StateAddTrainerPhone:
		phone := text
		if phone == "-" {
			phone = ""
		}
		name := h.stateManager.GetString(telegramID, state.KeyTrainerName)
		trainer, err := h.trainers.Create(ctx, name, phone)
		if err != nil {
			h.logger.Error("Failed to create trainer", zap.Error(err))
			h.sendError(ctx, b, chatID, "❌ Не удалось добавить тренера.")
			return
		}
		h.stateManager.Clear(telegramID)
		h.sendMessage(ctx, b, chatID,
			"✅ Тренер \""+trainer.Name+"\" добавлен. Шаблон недели настраивается в /trainers.")

	// ===== Правка тренера =====
	case state.StateEditTrainerName:
		if text != "-" && text != "" {
			h.stateManager.SetData(telegramID, state.KeyEditTrainerName, text)
		}
		h.stateManager.SetState(telegramID, state.StateEditTrainerPhone)
		h.sendMessage(ctx, b, chatID, "Телефон тренера. Отправьте \"-\", чтобы оставить текущий.")

	case state.StateEditTrainerPhone:
		h.finishEditTrainer(ctx, b, chatID, telegramID, text)

	// ===== Рабочий интервал шаблона =====
	case state.StateAddIntervalTime:
		h.finishAddInterval(ctx, b, chatID, telegramID, text)

	// ===== Ручной слот в сетке =====
	case state.StateManualSlotTime:
		h.finishManualSlot(ctx, b, chatID, telegramID, text)

	// ===== Ручное добавление клиента =====
	case state.StateAddClientName:
		if text == "" {
			h.sendMessage(ctx, b, chatID, "Напишите имя и фамилию ребёнка:")
			return
		}
		h.stateManager.SetData(telegramID, state.KeyClientName, text)
		h.stateManager.SetState(telegramID, state.StateAddClientPhone)
		h.sendMessage(ctx, b, chatID, "Телефон родителя. Отправьте \"-\", чтобы пропустить.")

	case state.StateAddClientPhone:
		client := &model.Client{
			ChildFullName: h.stateManager.GetString(telegramID, state.KeyClientName),
			Status:        model.ClientStatusSignedUp,
		}
		if text != "-" && text != "" {
			phone := text
			client.ParentPhone = &phone
		}
		if err := h.clients.Create(ctx, client); err != nil {
			h.logger.Error("Failed to create client", zap.Error(err))
			h.sendError(ctx, b, chatID, "❌ Не удалось добавить клиента.")
			return
		}
		h.stateManager.Clear(telegramID)
		h.sendMessage(ctx, b, chatID, "✅ Клиент \""+client.ChildFullName+"\" добавлен.")

	// ===== Правка карточки клиента =====
	case state.StateEditClientName:
		if text != "-" && text != "" {
			h.stateManager.SetData(telegramID, state.KeyEditClientName, text)
		}
		h.stateManager.SetState(telegramID, state.StateEditClientParent)
		h.sendMessage(ctx, b, chatID, "Имя родителя. Отправьте \"-\", чтобы оставить текущее.")

	case state.StateEditClientParent:
		if text != "-" && text != "" {
			h.stateManager.SetData(telegramID, state.KeyEditClientParent, text)
		}
		h.stateManager.SetState(telegramID, state.StateEditClientPhone)
		h.sendMessage(ctx, b, chatID, "Телефон родителя. Отправьте \"-\", чтобы оставить текущий.")

	case state.StateEditClientPhone:
		if text != "-" && text != "" {
			h.stateManager.SetData(telegramID, state.KeyEditClientPhone, text)
		}
		h.stateManager.SetState(telegramID, state.StateEditClientComment)
		h.sendMessage(ctx, b, chatID, "Комментарий. Отправьте \"-\", чтобы оставить текущий.")

	case state.StateEditClientComment:
		h.finishEditClient(ctx, b, chatID, telegramID, text)

	// ===== Поиск клиента =====
	case state.StateSearchClient:
		h.stateManager.SetData(telegramID, state.KeyClientSearch, text)
		h.stateManager.SetData(telegramID, state.KeyClientFilter, "all")
		h.stateManager.ResetState(telegramID)

		listText, kb, err := h.screens.ClientsScreen(ctx, telegramID, 0)
		if err != nil {
			h.logger.Error("Failed to search clients", zap.Error(err))
			h.sendError(ctx, b, chatID, "❌ Не удалось выполнить поиск.")
			return
		}
		h.sendMessageKb(ctx, b, chatID, listText, kb)

	// ===== Задача =====
	case state.StateAddTaskText:
		if text == "" {
			h.sendMessage(ctx, b, chatID, "Напишите текст задачи:")
			return
		}
		h.stateManager.SetData(telegramID, state.KeyTaskText, text)
		h.stateManager.SetState(telegramID, state.StateAddTaskDue)
		h.sendMessage(ctx, b, chatID, "Срок (ДД.ММ.ГГГГ). Отправьте \"-\", чтобы поставить на сегодня.")

	case state.StateAddTaskDue:
		due := h.now()
		if text != "-" {
			parsed, err := time.Parse("02.01.2006", text)
			if err != nil {
				h.sendMessage(ctx, b, chatID, "Не получилось разобрать дату. Формат: 20.09.2026, либо \"-\".")
				return
			}
			due = parsed
		}
		taskText := h.stateManager.GetString(telegramID, state.KeyTaskText)
		var clientID *uuid.UUID
		if idStr := h.stateManager.GetString(telegramID, state.KeyTaskClientID); idStr != "" {
			if id, err := uuid.Parse(idStr); err == nil {
				clientID = &id
			}
		}
		if _, err := h.tasks.Create(ctx, taskText, due, clientID); err != nil {
			h.logger.Error("Failed to create task", zap.Error(err))
			h.sendError(ctx, b, chatID, "❌ Не удалось создать задачу.")
			return
		}
		h.stateManager.Clear(telegramID)
		h.sendMessage(ctx, b, chatID, "✅ Задача создана: "+taskText)
	}
}

// finishIntake собирает заявку из накопленных шагов и создаёт клиента
func (h *Handlers) finishIntake(ctx context.Context, b *bot.Bot, chatID, telegramID int64, comment string) {
	if comment == "-" {
		comment = ""
	}

	form := service.IntakeForm{
		ChildName:        h.stateManager.GetString(telegramID, state.KeyIntakeChildName),
		ParentName:       h.stateManager.GetString(telegramID, state.KeyIntakeParentName),
		ParentPhone:      h.stateManager.GetString(telegramID, state.KeyIntakeParentPhone),
		SubscriptionType: h.stateManager.GetString(telegramID, state.KeyIntakeSubscription),
		Comment:          comment,
	}
	if birth := h.stateManager.GetString(telegramID, state.KeyIntakeBirthDate); birth != "" {
		if parsed, err := time.Parse("02.01.2006", birth); err == nil {
			form.BirthDate = &parsed
		}
	}
	if idStr := h.stateManager.GetString(telegramID, state.KeyIntakeTrainerID); idStr != "" {
		if id, err := uuid.Parse(idStr); err == nil {
			form.TrainerID = &id
		}
	}

	client, err := h.clients.RegisterOnline(ctx, form)
	if err != nil {
		h.stateManager.Clear(telegramID)
		if errors.Is(err, service.ErrMissingRequired) {
			h.sendError(ctx, b, chatID, "❌ Не хватает данных для заявки. Начните заново: /book")
			return
		}
		h.logger.Error("Failed to register intake", zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Не удалось отправить заявку. Попробуйте позже.")
		return
	}

	h.stateManager.Clear(telegramID)
	h.sendMessage(ctx, b, chatID,
		"✅ Заявка принята! Мы свяжемся с вами по телефону, чтобы подобрать время занятий для "+
			client.ChildFullName+".")
}

// finishEditTrainer применяет накопленные правки карточки тренера.
// "-" на любом шаге оставляет текущее значение.
func (h *Handlers) finishEditTrainer(ctx context.Context, b *bot.Bot, chatID, telegramID int64, phoneText string) {
	trainerID, err := uuid.Parse(h.stateManager.GetString(telegramID, state.KeyEditTrainerID))
	if err != nil {
		h.stateManager.Clear(telegramID)
		h.sendError(ctx, b, chatID, "❌ Диалог прерван, начните заново из карточки тренера.")
		return
	}

	trainer, err := h.trainers.GetByID(ctx, trainerID)
	if err != nil || trainer == nil {
		h.stateManager.Clear(telegramID)
		h.sendError(ctx, b, chatID, "❌ Тренер не найден.")
		return
	}

	name := h.stateManager.GetString(telegramID, state.KeyEditTrainerName)
	if name == "" {
		name = trainer.Name
	}
	phone := ""
	if trainer.Phone != nil {
		phone = *trainer.Phone
	}
	if phoneText != "-" {
		phone = phoneText
	}

	if err := h.trainers.Update(ctx, trainerID, name, phone); err != nil {
		h.logger.Error("Failed to update trainer", zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Не удалось сохранить изменения.")
		return
	}

	h.stateManager.Clear(telegramID)
	h.sendMessage(ctx, b, chatID, "✅ Тренер \""+name+"\" обновлён.")
}

// finishEditClient применяет накопленные правки карточки клиента.
// "-" на любом шаге оставляет текущее значение.
func (h *Handlers) finishEditClient(ctx context.Context, b *bot.Bot, chatID, telegramID int64, commentText string) {
	clientID, err := uuid.Parse(h.stateManager.GetString(telegramID, state.KeyEditClientID))
	if err != nil {
		h.stateManager.Clear(telegramID)
		h.sendError(ctx, b, chatID, "❌ Диалог прерван, начните заново из карточки клиента.")
		return
	}

	client, err := h.clients.GetByID(ctx, clientID)
	if err != nil || client == nil {
		h.stateManager.Clear(telegramID)
		h.sendError(ctx, b, chatID, "❌ Клиент не найден.")
		return
	}

	if name := h.stateManager.GetString(telegramID, state.KeyEditClientName); name != "" {
		client.ChildFullName = name
	}
	if parent := h.stateManager.GetString(telegramID, state.KeyEditClientParent); parent != "" {
		client.ParentName = &parent
	}
	if phone := h.stateManager.GetString(telegramID, state.KeyEditClientPhone); phone != "" {
		client.ParentPhone = &phone
	}
	if commentText != "-" && commentText != "" {
		client.Comment = &commentText
	}

	if err := h.clients.Update(ctx, client); err != nil {
		if errors.Is(err, service.ErrClientNotFound) {
			h.stateManager.Clear(telegramID)
			h.sendError(ctx, b, chatID, "❌ Клиент не найден.")
			return
		}
		h.logger.Error("Failed to update client", zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Не удалось сохранить изменения.")
		return
	}

	h.stateManager.Clear(telegramID)
	h.sendMessage(ctx, b, chatID, "✅ Карточка клиента \""+client.ChildFullName+"\" обновлена.")
}

// finishAddInterval разбирает "08:00-12:00" и добавляет интервал в шаблон
func (h *Handlers) finishAddInterval(ctx context.Context, b *bot.Bot, chatID, telegramID int64, text string) {
	parts := strings.SplitN(text, "-", 2)
	if len(parts) != 2 {
		h.sendMessage(ctx, b, chatID, "Формат: 08:00-12:00")
		return
	}
	startStr := strings.TrimSpace(parts[0])
	endStr := strings.TrimSpace(parts[1])
	if _, err := time.Parse("15:04", startStr); err != nil {
		h.sendMessage(ctx, b, chatID, "Не получилось разобрать время начала. Формат: 08:00-12:00")
		return
	}
	if _, err := time.Parse("15:04", endStr); err != nil {
		h.sendMessage(ctx, b, chatID, "Не получилось разобрать время конца. Формат: 08:00-12:00")
		return
	}

	trainerID, err1 := uuid.Parse(h.stateManager.GetString(telegramID, state.KeyIntervalTrainerID))
	day, err2 := strconv.Atoi(h.stateManager.GetString(telegramID, state.KeyIntervalDay))
	if err1 != nil || err2 != nil {
		h.stateManager.Clear(telegramID)
		h.sendError(ctx, b, chatID, "❌ Диалог прерван, начните заново из карточки тренера.")
		return
	}

	interval, err := h.templates.AddInterval(ctx, trainerID, day, startStr, endStr)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInterval):
			h.sendMessage(ctx, b, chatID, "❌ Начало должно быть раньше конца. Формат: 08:00-12:00")
		case errors.Is(err, service.ErrTrainerNotFound):
			h.stateManager.Clear(telegramID)
			h.sendError(ctx, b, chatID, "❌ Тренер не найден.")
		default:
			h.logger.Error("Failed to add interval", zap.Error(err))
			h.sendError(ctx, b, chatID, "❌ Не удалось добавить интервал.")
		}
		return
	}

	h.stateManager.Clear(telegramID)
	h.sendMessage(ctx, b, chatID,
		"✅ Интервал добавлен: "+callbacks.DayNames[interval.DayOfWeek]+" "+
			interval.StartTime+"-"+interval.EndTime+
			". Занятия появятся после генерации недели.")
}

// finishManualSlot создаёт занятие в сетке вручную
func (h *Handlers) finishManualSlot(ctx context.Context, b *bot.Bot, chatID, telegramID int64, text string) {
	if _, err := time.Parse("15:04", text); err != nil {
		h.sendMessage(ctx, b, chatID, "Формат времени: 08:00")
		return
	}

	trainerID, err1 := uuid.Parse(h.stateManager.GetString(telegramID, state.KeyManualTrainerID))
	date, err2 := time.Parse("2006-01-02", h.stateManager.GetString(telegramID, state.KeyManualDate))
	if err1 != nil || err2 != nil {
		h.stateManager.Clear(telegramID)
		h.sendError(ctx, b, chatID, "❌ Диалог прерван, начните заново из сетки расписания.")
		return
	}

	err := h.schedule.BookSlot(ctx, trainerID, date, text, nil, model.ClientTypeNew)
	if err != nil {
		if errors.Is(err, service.ErrSlotTaken) {
			h.sendMessage(ctx, b, chatID, "❌ Этот слот уже занят.")
			return
		}
		h.logger.Error("Failed to create manual slot", zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Не удалось создать слот.")
		return
	}

	h.stateManager.Clear(telegramID)
	h.sendMessage(ctx, b, chatID,
		"✅ Слот создан: "+callbacks.FormatDay(date)+" "+schedule.NormalizeSlot(text)+
			". Запишите в него клиента из сетки расписания.")
}
