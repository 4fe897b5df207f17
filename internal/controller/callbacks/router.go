package callbacks

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Форматы callback data. Telegram ограничивает data 64 байтами, поэтому
// в data кладётся максимум один uuid, остальной контекст диалога живёт
// в state.Manager.
const (
	Noop = "noop"

	// Сетка расписания
	Sched         = "sched:"     // sched:<offset>
	SchedDay      = "sched_day:" // sched_day:<offset>:<day>
	Cell          = "cell:"      // cell:<booking_id>
	BookingAssign = "bk_assign:" // bk_assign:<booking_id>
	BookingCancel = "bk_cancel:" // bk_cancel:<booking_id>
	BookingType   = "bk_type:"   // bk_type:<тип клиента>
	ClientPick    = "cl_pick:"   // cl_pick:<client_id>, занятие в state
	ManualTrainer = "manual_tr:" // manual_tr:<trainer_id>:<YYYY-MM-DD>

	// Тренеры и шаблоны
	TrainersList     = "trainers"
	Trainer          = "tr:" // tr:<trainer_id>
	TrainerAdd       = "tr_add"
	TrainerEdit      = "tr_edit:"   // tr_edit:<trainer_id>
	TrainerArchive   = "tr_arch:"   // tr_arch:<trainer_id>
	TrainerUnarchive = "tr_unarch:" // tr_unarch:<trainer_id>

	TplAddInterval    = "tpl_ai:"     // tpl_ai:<trainer_id>
	TplAddIntervalDay = "tpl_ai_day:" // tpl_ai_day:<day>
	TplDelInterval    = "tpl_di:"     // tpl_di:<interval_id>
	TplPin            = "tpl_pin:"    // tpl_pin:<trainer_id>
	TplPinDay         = "pin_day:"    // pin_day:<day>
	TplPinSlot        = "pin_slot:"   // pin_slot:<HH:MM>
	TplPinClient      = "pin_client:" // pin_client:<client_id>
	TplPinType        = "pin_type:"   // pin_type:<тип клиента>
	TplDelAssignment  = "tpl_da:"     // tpl_da:<assignment_id>

	// Генерация недели по шаблону
	Gen     = "gen:"   // gen:<trainer_id>
	GenWeek = "gen_w:" // gen_w:<offset>, тренер в state

	// Клиенты
	ClientsFilter = "clf:"   // clf:all | clf:<статус>
	ClientsPage   = "clp:"   // clp:<page>
	Client        = "cl:"    // cl:<client_id>
	ClientStatus  = "cl_st:" // cl_st:<client_id>:<статус>
	ClientEdit    = "cl_edit:"
	ClientArchive = "cl_arch:"
	ClientAdd     = "cl_add"
	ClientSearch  = "cl_search"

	// Задачи
	TaskToggle    = "task:"    // task:<task_id>
	TaskAddClient = "task_cl:" // task_cl:<client_id>, задача с привязкой
	TasksAll      = "tasks_all"
	TasksOpen     = "tasks_open"
	TaskAdd       = "task_add"

	// Онлайн-запись
	IntakeSub     = "intake_sub:" // intake_sub:<1|4|8>
	IntakeSubSkip = "intake_sub_skip"
	IntakeTrainer = "intake_tr:" // intake_tr:<trainer_id>
	IntakeTrSkip  = "intake_tr_skip"
)

// HandleCallbackQuery распределяет нажатия inline кнопок по обработчикам
func (h *Handler) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	callback := update.CallbackQuery
	if callback == nil || callback.Message.Message == nil {
		return
	}
	data := callback.Data

	h.Logger.Info("Routing callback",
		zap.String("data", data),
		zap.Int64("user_id", callback.From.ID),
	)

	switch {
	case data == Noop:
		h.answerCallback(ctx, b, callback.ID, "")

	// ===== Онлайн-запись (доступна всем) =====
	case data == IntakeSubSkip:
		h.HandleIntakeSubscription(ctx, b, callback, "")
	case strings.HasPrefix(data, IntakeSub):
		h.HandleIntakeSubscription(ctx, b, callback, suffix(data, IntakeSub))
	case data == IntakeTrSkip:
		h.HandleIntakeTrainer(ctx, b, callback, "")
	case strings.HasPrefix(data, IntakeTrainer):
		h.HandleIntakeTrainer(ctx, b, callback, suffix(data, IntakeTrainer))

	// ===== Сетка расписания =====
	case strings.HasPrefix(data, SchedDay):
		h.HandleScheduleDay(ctx, b, callback)
	case strings.HasPrefix(data, Sched):
		h.HandleScheduleWeek(ctx, b, callback)
	case strings.HasPrefix(data, Cell):
		h.HandleBookingCard(ctx, b, callback)
	case strings.HasPrefix(data, BookingAssign):
		h.HandleBookingAssign(ctx, b, callback)
	case strings.HasPrefix(data, BookingCancel):
		h.HandleBookingCancel(ctx, b, callback)
	case strings.HasPrefix(data, BookingType):
		h.HandleBookingType(ctx, b, callback)
	case strings.HasPrefix(data, ClientPick):
		h.HandleClientPick(ctx, b, callback)
	case strings.HasPrefix(data, ManualTrainer):
		h.HandleManualSlot(ctx, b, callback)

	// ===== Тренеры и шаблоны =====
	case data == TrainersList:
		h.HandleTrainersList(ctx, b, callback)
	case data == TrainerAdd:
		h.HandleTrainerAdd(ctx, b, callback)
	case strings.HasPrefix(data, TrainerEdit):
		h.HandleTrainerEdit(ctx, b, callback)
	case strings.HasPrefix(data, TrainerArchive):
		h.HandleTrainerArchive(ctx, b, callback, true)
	case strings.HasPrefix(data, TrainerUnarchive):
		h.HandleTrainerArchive(ctx, b, callback, false)
	case strings.HasPrefix(data, TplAddIntervalDay):
		h.HandleAddIntervalDay(ctx, b, callback)
	case strings.HasPrefix(data, TplAddInterval):
		h.HandleAddInterval(ctx, b, callback)
	case strings.HasPrefix(data, TplDelInterval):
		h.HandleDeleteInterval(ctx, b, callback)
	case strings.HasPrefix(data, TplPinDay):
		h.HandlePinDay(ctx, b, callback)
	case strings.HasPrefix(data, TplPinSlot):
		h.HandlePinSlot(ctx, b, callback)
	case strings.HasPrefix(data, TplPinClient):
		h.HandlePinClient(ctx, b, callback)
	case strings.HasPrefix(data, TplPinType):
		h.HandlePinType(ctx, b, callback)
	case strings.HasPrefix(data, TplPin):
		h.HandlePin(ctx, b, callback)
	case strings.HasPrefix(data, TplDelAssignment):
		h.HandleDeleteAssignment(ctx, b, callback)
	case strings.HasPrefix(data, GenWeek):
		h.HandleGenerateWeek(ctx, b, callback)
	case strings.HasPrefix(data, Gen):
		h.HandleGenerate(ctx, b, callback)
	case strings.HasPrefix(data, Trainer):
		h.HandleTrainerCard(ctx, b, callback)

	// ===== Клиенты =====
	case data == ClientAdd:
		h.HandleClientAdd(ctx, b, callback)
	case data == ClientSearch:
		h.HandleClientSearch(ctx, b, callback)
	case strings.HasPrefix(data, ClientStatus):
		h.HandleClientStatus(ctx, b, callback)
	case strings.HasPrefix(data, ClientEdit):
		h.HandleClientEdit(ctx, b, callback)
	case strings.HasPrefix(data, ClientArchive):
		h.HandleClientArchive(ctx, b, callback)
	case strings.HasPrefix(data, ClientsFilter):
		h.HandleClientsFilter(ctx, b, callback)
	case strings.HasPrefix(data, ClientsPage):
		h.HandleClientsPage(ctx, b, callback)
	case strings.HasPrefix(data, Client):
		h.HandleClientCard(ctx, b, callback)

	// ===== Задачи =====
	case data == TasksAll:
		h.HandleTasks(ctx, b, callback, false)
	case data == TasksOpen:
		h.HandleTasks(ctx, b, callback, true)
	case data == TaskAdd:
		h.HandleTaskAdd(ctx, b, callback)
	case strings.HasPrefix(data, TaskAddClient):
		h.HandleTaskAddForClient(ctx, b, callback)
	case strings.HasPrefix(data, TaskToggle):
		h.HandleTaskToggle(ctx, b, callback)

	default:
		h.Logger.Warn("Unknown callback",
			zap.String("data", data),
			zap.Int64("user_id", callback.From.ID),
		)
		h.answerCallback(ctx, b, callback.ID, "❌ Неизвестная команда")
	}
}
