// Package schedule содержит чистую логику недельной сетки расписания:
// генерацию получасовых слотов, вычисление дат недели и поиск занятого
// слота в загруженных бронированиях.
package schedule

import (
	"fmt"
	"time"
)

// SlotStep шаг сетки расписания
const SlotStep = 30 * time.Minute

// DaysInWeek дней в неделе, дни считаем с понедельника (0) по воскресенье (6)
const DaysInWeek = 7

// GenerateTimeSlots генерирует получасовые слоты в интервале [start, end).
// start и end - время вида "HH:MM". Начало включается, конец - нет:
// ("08:00", "09:00") -> ["08:00", "08:30"]. При start == end слотов нет.
func GenerateTimeSlots(start, end string) []string {
	sh, sm, err := parseSlot(start)
	if err != nil {
		return nil
	}
	eh, em, err := parseSlot(end)
	if err != nil {
		return nil
	}

	var slots []string
	h, m := sh, sm
	for h < eh || (h == eh && m < em) {
		slots = append(slots, fmt.Sprintf("%02d:%02d", h, m))
		m += 30
		if m >= 60 {
			h++
			m -= 60
		}
	}
	return slots
}

// WeekStart возвращает понедельник недели, в которую попадает now,
// со сдвигом offset недель. Воскресенье относится к прошедшему
// понедельнику, а не к будущему.
func WeekStart(now time.Time, offset int) time.Time {
	day := int(now.Weekday()) // 0 = воскресенье
	diff := 1 - day
	if day == 0 {
		diff = -6
	}
	monday := now.AddDate(0, 0, diff+offset*DaysInWeek)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, now.Location())
}

// WeekDates возвращает 7 дат недели с понедельника по воскресенье
func WeekDates(now time.Time, offset int) []time.Time {
	monday := WeekStart(now, offset)
	dates := make([]time.Time, DaysInWeek)
	for i := range dates {
		dates[i] = monday.AddDate(0, 0, i)
	}
	return dates
}

// FormatDate форматирует дату в виде YYYY-MM-DD (как хранится в БД)
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// NormalizeSlot приводит время слота к виду "HH:MM", отбрасывая секунды,
// если колонка вернула "HH:MM:SS"
func NormalizeSlot(slot string) string {
	if len(slot) > 5 {
		return slot[:5]
	}
	return slot
}

func parseSlot(s string) (hour, minute int, err error) {
	_, err = fmt.Sscanf(NormalizeSlot(s), "%d:%d", &hour, &minute)
	if err != nil {
		return 0, 0, fmt.Errorf("parse time slot %q: %w", s, err)
	}
	return hour, minute, nil
}
