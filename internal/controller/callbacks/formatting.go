package callbacks

import (
	"fmt"
	"time"
)

// DayNames короткие названия дней недели, 0 = понедельник
var DayNames = [7]string{"Пн", "Вт", "Ср", "Чт", "Пт", "Сб", "Вс"}

// DayNamesFull полные названия дней недели
var DayNamesFull = [7]string{"Понедельник", "Вторник", "Среда", "Четверг", "Пятница", "Суббота", "Воскресенье"}

// DayIndex возвращает номер дня недели в нумерации сетки (0 = понедельник)
func DayIndex(t time.Time) int {
	d := int(t.Weekday()) // 0 = воскресенье
	if d == 0 {
		return 6
	}
	return d - 1
}

// FormatDay форматирует дату коротко: "Пн 17.02"
func FormatDay(t time.Time) string {
	return fmt.Sprintf("%s %s", DayNames[DayIndex(t)], t.Format("02.01"))
}

// FormatWeekRange форматирует границы недели: "17.02 - 23.02"
func FormatWeekRange(dates []time.Time) string {
	return fmt.Sprintf("%s - %s", dates[0].Format("02.01"), dates[len(dates)-1].Format("02.01"))
}

// PluralizeLessons возвращает правильное склонение слова "занятие"
func PluralizeLessons(count int) string {
	if count%10 == 1 && count%100 != 11 {
		return "занятие"
	}
	if count%10 >= 2 && count%10 <= 4 && (count%100 < 10 || count%100 >= 20) {
		return "занятия"
	}
	return "занятий"
}

// PluralizeClients возвращает правильное склонение слова "клиент"
func PluralizeClients(count int) string {
	if count%10 == 1 && count%100 != 11 {
		return "клиент"
	}
	if count%10 >= 2 && count%10 <= 4 && (count%100 < 10 || count%100 >= 20) {
		return "клиента"
	}
	return "клиентов"
}

// PluralizeTasks возвращает правильное склонение слова "задача"
func PluralizeTasks(count int) string {
	if count%10 == 1 && count%100 != 11 {
		return "задача"
	}
	if count%10 >= 2 && count%10 <= 4 && (count%100 < 10 || count%100 >= 20) {
		return "задачи"
	}
	return "задач"
}
