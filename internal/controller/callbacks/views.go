package callbacks

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aquacrm/swimschool_bot/internal/controller/callbacks/keyboard"
	"github.com/aquacrm/swimschool_bot/internal/model"
	"github.com/aquacrm/swimschool_bot/internal/schedule"
	"github.com/aquacrm/swimschool_bot/internal/service"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
)

// Экраны бота. Функции строят текст и клавиатуру, их используют и
// командные обработчики, и обработчики кнопок.

// ClientsPageSize клиентов на одной странице списка
const ClientsPageSize = 8

// WeekView экран недели: занятость по дням и навигация
func WeekView(grid *service.WeekGrid, offset int) (string, *models.InlineKeyboardMarkup) {
	counts := make(map[string]int)
	for _, b := range grid.Bookings {
		counts[schedule.FormatDate(b.Date)]++
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📅 Расписание %s\n\n", FormatWeekRange(grid.Dates)))
	for _, d := range grid.Dates {
		n := counts[schedule.FormatDate(d)]
		if n == 0 {
			sb.WriteString(fmt.Sprintf("%s: пусто\n", FormatDay(d)))
		} else {
			sb.WriteString(fmt.Sprintf("%s: %d %s\n", FormatDay(d), n, PluralizeLessons(n)))
		}
	}
	if len(grid.Trainers) == 0 {
		sb.WriteString("\nНет активных тренеров")
	}

	kb := keyboard.NewBuilder()
	var row []models.InlineKeyboardButton
	for i := range grid.Dates {
		row = append(row, keyboard.Button(DayNames[i], fmt.Sprintf("%s%d:%d", SchedDay, offset, i)))
		if len(row) == 4 {
			kb.Row(row...)
			row = nil
		}
	}
	kb.Row(row...)
	kb.Row(
		keyboard.Button("◀️", fmt.Sprintf("%s%d", Sched, offset-1)),
		keyboard.Button("Сегодня", Sched+"0"),
		keyboard.Button("▶️", fmt.Sprintf("%s%d", Sched, offset+1)),
	)

	return sb.String(), kb.Build()
}

// DayView экран дня: занятия по тренерам с кнопками по каждому слоту
func DayView(grid *service.WeekGrid, offset, day int) (string, *models.InlineKeyboardMarkup) {
	date := grid.Dates[day]
	dateStr := schedule.FormatDate(date)

	byTrainer := make(map[uuid.UUID][]*model.Booking)
	for _, b := range grid.Bookings {
		if schedule.FormatDate(b.Date) == dateStr {
			byTrainer[b.TrainerID] = append(byTrainer[b.TrainerID], b)
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📅 %s %s\n", DayNamesFull[day], date.Format("02.01.2006")))

	kb := keyboard.NewBuilder()
	var cellRow []models.InlineKeyboardButton
	for _, t := range grid.Trainers {
		bookings := byTrainer[t.ID]
		sort.Slice(bookings, func(i, j int) bool {
			return schedule.NormalizeSlot(bookings[i].TimeSlot) < schedule.NormalizeSlot(bookings[j].TimeSlot)
		})

		sb.WriteString(fmt.Sprintf("\n👤 %s\n", t.Name))
		if len(bookings) == 0 {
			sb.WriteString("  нет занятий\n")
		}
		for _, b := range bookings {
			slot := schedule.NormalizeSlot(b.TimeSlot)
			sb.WriteString(fmt.Sprintf("  %s - %s\n", slot, bookingLabel(b)))

			cellRow = append(cellRow, keyboard.Button(fmt.Sprintf("%s %s", t.Name, slot), Cell+b.ID.String()))
			if len(cellRow) == 3 {
				kb.Row(cellRow...)
				cellRow = nil
			}
		}
	}
	kb.Row(cellRow...)

	var manualRow []models.InlineKeyboardButton
	for _, t := range grid.Trainers {
		manualRow = append(manualRow, keyboard.Button("➕ "+t.Name, ManualTrainer+t.ID.String()+":"+dateStr))
		if len(manualRow) == 2 {
			kb.Row(manualRow...)
			manualRow = nil
		}
	}
	kb.Row(manualRow...)
	kb.Row(keyboard.Button("⬅️ К неделе", fmt.Sprintf("%s%d", Sched, offset)))

	return sb.String(), kb.Build()
}

func bookingLabel(b *model.Booking) string {
	if b.Client != nil {
		return fmt.Sprintf("%s (%s)", b.Client.ChildFullName, b.ClientType)
	}
	if b.ClientID != nil {
		return fmt.Sprintf("клиент (%s)", b.ClientType)
	}
	return "окно"
}

// BookingCardView карточка занятия
func BookingCardView(b *model.Booking, trainerName string) (string, *models.InlineKeyboardMarkup) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🏊 Занятие %s %s\n", FormatDay(b.Date), schedule.NormalizeSlot(b.TimeSlot)))
	sb.WriteString(fmt.Sprintf("Тренер: %s\n", trainerName))
	sb.WriteString(fmt.Sprintf("Клиент: %s\n", bookingLabel(b)))
	if b.IsArchived() {
		sb.WriteString("\n🚫 Занятие отменено")
	}

	kb := keyboard.NewBuilder()
	if !b.IsArchived() {
		kb.Row(keyboard.Button("👤 Записать клиента", BookingAssign+b.ID.String()))
		kb.Row(keyboard.Button("🚫 Отменить занятие", BookingCancel+b.ID.String()))
	}

	return sb.String(), kb.Build()
}

// ClientPickView список клиентов для записи в слот или закрепления
func ClientPickView(clients []*model.Client, prefix string) (string, *models.InlineKeyboardMarkup) {
	sorted := sortClients(clients)

	kb := keyboard.NewBuilder()
	for _, c := range sorted {
		kb.Row(keyboard.Button(c.ChildFullName, prefix+c.ID.String()))
	}

	text := "Выберите клиента:"
	if len(sorted) == 0 {
		text = "Нет клиентов. Сначала добавьте клиента в /clients."
	}
	return text, kb.Build()
}

// ClientTypeView выбор типа посещения
func ClientTypeView(prefix string) (string, *models.InlineKeyboardMarkup) {
	kb := keyboard.NewBuilder()
	var row []models.InlineKeyboardButton
	for _, t := range model.ClientTypes {
		row = append(row, keyboard.Button(string(t), prefix+string(t)))
		if len(row) == 2 {
			kb.Row(row...)
			row = nil
		}
	}
	kb.Row(row...)
	return "Тип посещения:", kb.Build()
}

// TrainersListView список тренеров
func TrainersListView(trainers []*model.Trainer) (string, *models.InlineKeyboardMarkup) {
	var sb strings.Builder
	sb.WriteString("👥 Тренеры\n")

	kb := keyboard.NewBuilder()
	for _, t := range trainers {
		label := t.Name
		if t.IsArchived() {
			label = "🗄 " + label
		}
		kb.Row(keyboard.Button(label, Trainer+t.ID.String()))
	}
	kb.Row(keyboard.Button("➕ Добавить тренера", TrainerAdd))

	if len(trainers) == 0 {
		sb.WriteString("\nПока никого нет")
	}
	return sb.String(), kb.Build()
}

// TrainerCardView карточка тренера с шаблоном недели
func TrainerCardView(tpl *service.TrainerTemplate) (string, *models.InlineKeyboardMarkup) {
	t := tpl.Trainer

	var sb strings.Builder
	sb.WriteString("👤 " + t.Name + "\n")
	if t.Phone != nil {
		sb.WriteString("📞 " + *t.Phone + "\n")
	}
	if t.IsArchived() {
		sb.WriteString("🗄 В архиве\n")
	}

	sb.WriteString("\nРабочие интервалы:\n")
	if len(tpl.Intervals) == 0 {
		sb.WriteString("  не заданы\n")
	}
	for _, iv := range tpl.Intervals {
		sb.WriteString(fmt.Sprintf("  %s %s-%s\n",
			DayNames[iv.DayOfWeek],
			schedule.NormalizeSlot(iv.StartTime),
			schedule.NormalizeSlot(iv.EndTime),
		))
	}

	if len(tpl.Assignments) > 0 {
		sb.WriteString("\nЗакреплённые клиенты:\n")
		for _, a := range tpl.Assignments {
			name := a.ClientName
			if name == "" {
				name = "клиент"
			}
			sb.WriteString(fmt.Sprintf("  %s %s 📌 %s (%s)\n",
				DayNames[a.DayOfWeek], schedule.NormalizeSlot(a.TimeSlot), name, a.ClientType))
		}
	}

	kb := keyboard.NewBuilder()
	kb.Row(keyboard.Button("⚡ Сгенерировать неделю", Gen+t.ID.String()))
	kb.Row(
		keyboard.Button("➕ Интервал", TplAddInterval+t.ID.String()),
		keyboard.Button("📌 Закрепить", TplPin+t.ID.String()),
	)
	kb.Row(keyboard.Button("✏️ Изменить", TrainerEdit+t.ID.String()))
	for _, iv := range tpl.Intervals {
		kb.Row(keyboard.Button(
			fmt.Sprintf("🗑 %s %s-%s", DayNames[iv.DayOfWeek], schedule.NormalizeSlot(iv.StartTime), schedule.NormalizeSlot(iv.EndTime)),
			TplDelInterval+iv.ID.String(),
		))
	}
	for _, a := range tpl.Assignments {
		kb.Row(keyboard.Button(
			fmt.Sprintf("❌ %s %s %s", DayNames[a.DayOfWeek], schedule.NormalizeSlot(a.TimeSlot), truncate(a.ClientName, 20)),
			TplDelAssignment+a.ID.String(),
		))
	}
	if t.IsArchived() {
		kb.Row(keyboard.Button("↩️ Вернуть из архива", TrainerUnarchive+t.ID.String()))
	} else {
		kb.Row(keyboard.Button("🗄 В архив", TrainerArchive+t.ID.String()))
	}
	kb.Row(keyboard.Button("⬅️ Тренеры", TrainersList))

	return sb.String(), kb.Build()
}

// DayPickView выбор дня недели
func DayPickView(title, prefix string) (string, *models.InlineKeyboardMarkup) {
	kb := keyboard.NewBuilder()
	var row []models.InlineKeyboardButton
	for i, name := range DayNames {
		row = append(row, keyboard.Button(name, fmt.Sprintf("%s%d", prefix, i)))
		if len(row) == 4 {
			kb.Row(row...)
			row = nil
		}
	}
	kb.Row(row...)
	return title, kb.Build()
}

// GenerateWeekView выбор недели для генерации по шаблону
func GenerateWeekView(trainer *model.Trainer, now time.Time) (string, *models.InlineKeyboardMarkup) {
	current := schedule.WeekDates(now, 0)
	next := schedule.WeekDates(now, 1)

	kb := keyboard.NewBuilder()
	kb.Row(keyboard.Button("Текущая ("+FormatWeekRange(current)+")", GenWeek+"0"))
	kb.Row(keyboard.Button("Следующая ("+FormatWeekRange(next)+")", GenWeek+"1"))
	kb.Row(keyboard.Button("⬅️ Назад", Trainer+trainer.ID.String()))

	text := fmt.Sprintf("⚡ %s: за какую неделю создать занятия по шаблону?\n\nСуществующие занятия не изменятся.", trainer.Name)
	return text, kb.Build()
}

// ClientsListView страница списка клиентов
func ClientsListView(clients []*model.Client, page int, title string) (string, *models.InlineKeyboardMarkup) {
	sorted := sortClients(clients)

	totalPages := (len(sorted) + ClientsPageSize - 1) / ClientsPageSize
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 0 {
		page = 0
	}
	if page >= totalPages {
		page = totalPages - 1
	}

	from := page * ClientsPageSize
	to := from + ClientsPageSize
	if to > len(sorted) {
		to = len(sorted)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s\n%d %s", title, len(sorted), PluralizeClients(len(sorted))))
	if totalPages > 1 {
		sb.WriteString(fmt.Sprintf(", страница %d/%d", page+1, totalPages))
	}
	sb.WriteString("\n")

	kb := keyboard.NewBuilder()
	for _, c := range sorted[from:to] {
		kb.Row(keyboard.Button(fmt.Sprintf("%s · %s", c.ChildFullName, c.Status), Client+c.ID.String()))
	}

	if totalPages > 1 {
		kb.Row(
			keyboard.Button("◀️", fmt.Sprintf("%s%d", ClientsPage, page-1)),
			keyboard.Button(fmt.Sprintf("%d/%d", page+1, totalPages), Noop),
			keyboard.Button("▶️", fmt.Sprintf("%s%d", ClientsPage, page+1)),
		)
	}

	kb.Row(
		keyboard.Button("Все", ClientsFilter+"all"),
		keyboard.Button(string(model.ClientStatusSignedUp), ClientsFilter+string(model.ClientStatusSignedUp)),
	)
	kb.Row(
		keyboard.Button(string(model.ClientStatusActive), ClientsFilter+string(model.ClientStatusActive)),
		keyboard.Button(string(model.ClientStatusFormer), ClientsFilter+string(model.ClientStatusFormer)),
	)
	kb.Row(
		keyboard.Button("🔍 Поиск", ClientSearch),
		keyboard.Button("➕ Клиент", ClientAdd),
	)

	return sb.String(), kb.Build()
}

// ClientCardView карточка клиента с ближайшими занятиями
func ClientCardView(c *model.Client, upcoming []*model.Booking) (string, *models.InlineKeyboardMarkup) {
	var sb strings.Builder
	sb.WriteString("🧒 " + c.ChildFullName + "\n")
	if c.ParentName != nil {
		sb.WriteString("Родитель: " + *c.ParentName + "\n")
	}
	if c.ParentPhone != nil {
		sb.WriteString("📞 " + *c.ParentPhone + "\n")
	}
	if c.BirthDate != nil {
		sb.WriteString("🎂 " + c.BirthDate.Format("02.01.2006") + "\n")
	}
	if c.SubscriptionType != nil {
		sb.WriteString("Абонемент: " + *c.SubscriptionType + "\n")
	}
	sb.WriteString("Статус: " + string(c.Status) + "\n")
	if c.Comment != nil {
		sb.WriteString("💬 " + *c.Comment + "\n")
	}

	if len(upcoming) > 0 {
		sb.WriteString("\nБлижайшие занятия:\n")
		for _, b := range upcoming {
			sb.WriteString(fmt.Sprintf("  %s %s\n", FormatDay(b.Date), schedule.NormalizeSlot(b.TimeSlot)))
		}
	}

	kb := keyboard.NewBuilder()
	var row []models.InlineKeyboardButton
	for _, status := range model.ClientStatuses {
		if status == c.Status {
			continue
		}
		row = append(row, keyboard.Button("→ "+string(status), fmt.Sprintf("%s%s:%s", ClientStatus, c.ID, status)))
	}
	kb.Row(row...)
	kb.Row(
		keyboard.Button("✏️ Изменить", ClientEdit+c.ID.String()),
		keyboard.Button("➕ Задача", TaskAddClient+c.ID.String()),
	)
	kb.Row(keyboard.Button("🗄 В архив", ClientArchive+c.ID.String()))
	kb.Row(keyboard.Button("⬅️ К списку", ClientsPage+"0"))

	return sb.String(), kb.Build()
}

// TasksView список задач
func TasksView(tasks []*model.Task, onlyOpen bool) (string, *models.InlineKeyboardMarkup) {
	title := "📋 Задачи"
	if onlyOpen {
		title += " (открытые)"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s\n%d %s\n", title, len(tasks), PluralizeTasks(len(tasks))))

	kb := keyboard.NewBuilder()
	for _, t := range tasks {
		mark := "⬜"
		if t.Status == model.TaskStatusDone {
			mark = "✅"
		}

		line := fmt.Sprintf("\n%s %s %s", mark, t.DueDate.Format("02.01"), t.Text)
		if t.ClientName != "" {
			line += " · " + t.ClientName
		}
		sb.WriteString(line)

		kb.Row(keyboard.Button(fmt.Sprintf("%s %s", mark, truncate(t.Text, 30)), TaskToggle+t.ID.String()))
	}

	if onlyOpen {
		kb.Row(keyboard.Button("Показать все", TasksAll))
	} else {
		kb.Row(keyboard.Button("Только открытые", TasksOpen))
	}
	kb.Row(keyboard.Button("➕ Задача", TaskAdd))

	return sb.String(), kb.Build()
}

// SubscriptionPickView выбор абонемента в онлайн-записи
func SubscriptionPickView() (string, *models.InlineKeyboardMarkup) {
	kb := keyboard.NewBuilder()
	var row []models.InlineKeyboardButton
	for _, sub := range model.SubscriptionTypes {
		row = append(row, keyboard.Button(sub+" зан./нед.", IntakeSub+sub))
	}
	kb.Row(row...)
	kb.Row(keyboard.Button("Пропустить", IntakeSubSkip))
	return "Сколько занятий в неделю планируете?", kb.Build()
}

// IntakeTrainerPickView выбор тренера в онлайн-записи
func IntakeTrainerPickView(trainers []*model.Trainer) (string, *models.InlineKeyboardMarkup) {
	kb := keyboard.NewBuilder()
	for _, t := range trainers {
		kb.Row(keyboard.Button(t.Name, IntakeTrainer+t.ID.String()))
	}
	kb.Row(keyboard.Button("Не важно", IntakeTrSkip))
	return "К какому тренеру хотите попасть?", kb.Build()
}

func sortClients(clients []*model.Client) []*model.Client {
	sorted := make([]*model.Client, len(clients))
	copy(sorted, clients)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ChildFullName < sorted[j].ChildFullName
	})
	return sorted
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
