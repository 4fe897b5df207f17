package state

// DialogState представляет текущий шаг пользователя в диалоге
type DialogState string

const (
	StateNone DialogState = "" // Нет активного диалога

	// Публичная онлайн-запись (/book)
	StateIntakeChildName   DialogState = "intake_child_name"
	StateIntakeBirthDate   DialogState = "intake_birth_date"
	StateIntakeParentName  DialogState = "intake_parent_name"
	StateIntakeParentPhone DialogState = "intake_parent_phone"
	StateIntakePick        DialogState = "intake_pick" // ждём нажатия кнопки
	StateIntakeComment     DialogState = "intake_comment"

	// Добавление тренера
	StateAddTrainerName  DialogState = "add_trainer_name"
	StateAddTrainerPhone DialogState = "add_trainer_phone"

	// Редактирование тренера ("-" оставляет текущее значение)
	StateEditTrainerName  DialogState = "edit_trainer_name"
	StateEditTrainerPhone DialogState = "edit_trainer_phone"

	// Добавление рабочего интервала в шаблон ("08:00-12:00")
	StateAddIntervalTime DialogState = "add_interval_time"

	// Ручное создание слота в сетке ("08:00")
	StateManualSlotTime DialogState = "manual_slot_time"

	// Задачи администратора
	StateAddTaskText DialogState = "add_task_text"
	StateAddTaskDue  DialogState = "add_task_due"

	// Ручное добавление клиента администратором
	StateAddClientName  DialogState = "add_client_name"
	StateAddClientPhone DialogState = "add_client_phone"

	// Редактирование карточки клиента ("-" оставляет текущее значение)
	StateEditClientName    DialogState = "edit_client_name"
	StateEditClientParent  DialogState = "edit_client_parent"
	StateEditClientPhone   DialogState = "edit_client_phone"
	StateEditClientComment DialogState = "edit_client_comment"

	// Поиск клиента по имени или телефону
	StateSearchClient DialogState = "search_client"
)

// Ключи данных диалога. Контекст, не помещающийся в callback data
// (64 байта), накапливается в сессии под этими ключами.
const (
	KeyIntakeChildName    = "intake_child_name"
	KeyIntakeBirthDate    = "intake_birth_date"
	KeyIntakeParentName   = "intake_parent_name"
	KeyIntakeParentPhone  = "intake_parent_phone"
	KeyIntakeSubscription = "intake_subscription"
	KeyIntakeTrainerID    = "intake_trainer_id"

	KeyTrainerName = "trainer_name"

	KeyEditTrainerID   = "edit_trainer_id"
	KeyEditTrainerName = "edit_trainer_name"

	KeyEditClientID     = "edit_client_id"
	KeyEditClientName   = "edit_client_name"
	KeyEditClientParent = "edit_client_parent"
	KeyEditClientPhone  = "edit_client_phone"

	KeyIntervalTrainerID = "interval_trainer_id"
	KeyIntervalDay       = "interval_day"

	KeyPinTrainerID = "pin_trainer_id"
	KeyPinDay       = "pin_day"
	KeyPinSlot      = "pin_slot"
	KeyPinClientID  = "pin_client_id"

	KeyManualTrainerID = "manual_trainer_id"
	KeyManualDate      = "manual_date"

	KeyAssignBookingID = "assign_booking_id"
	KeyAssignClientID  = "assign_client_id"

	KeyGenTrainerID = "gen_trainer_id"

	KeyClientFilter = "client_filter"
	KeyClientSearch = "client_search"
	KeyClientName   = "client_name"

	KeyTaskText     = "task_text"
	KeyTaskClientID = "task_client_id"
)

// Session хранит шаг диалога и накопленные на предыдущих шагах данные
type Session struct {
	State DialogState
	Data  map[string]interface{}
}
