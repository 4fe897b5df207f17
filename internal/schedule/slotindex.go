package schedule

import (
	"time"

	"github.com/aquacrm/swimschool_bot/internal/model"
	"github.com/google/uuid"
)

// Index отвечает на вопрос "какое занятие стоит у тренера T в дату D
// в слоте S". Колонка time_slot исторически принимает и "HH:MM", и
// "HH:MM:SS", поэтому поиск сначала пробует вариант с секундами, потом
// без. Дубликаты по одному ключу (аномалия данных) разрешаются в пользу
// первой строки во входном порядке - репозиторий сортирует по created_at,
// так что побеждает самая старая запись.
type Index struct {
	byKey map[slotKey]*model.Booking
}

type slotKey struct {
	date      string
	timeSlot  string
	trainerID uuid.UUID
}

// NewIndex строит индекс по загруженным бронированиям (обычно - неделя
// без архивных, фильтрует вызывающая сторона)
func NewIndex(bookings []*model.Booking) *Index {
	idx := &Index{byKey: make(map[slotKey]*model.Booking, len(bookings))}
	for _, b := range bookings {
		key := slotKey{
			date:      FormatDate(b.Date),
			timeSlot:  b.TimeSlot,
			trainerID: b.TrainerID,
		}
		if _, exists := idx.byKey[key]; !exists {
			idx.byKey[key] = b
		}
	}
	return idx
}

// Occupant возвращает занятие тренера в указанную дату и слот ("HH:MM"),
// либо nil, если слот свободен
func (idx *Index) Occupant(date time.Time, timeSlot string, trainerID uuid.UUID) *model.Booking {
	dateStr := FormatDate(date)
	if b, ok := idx.byKey[slotKey{dateStr, timeSlot + ":00", trainerID}]; ok {
		return b
	}
	if b, ok := idx.byKey[slotKey{dateStr, timeSlot, trainerID}]; ok {
		return b
	}
	return nil
}

// FindOccupant ищет занятие линейным проходом, без построения индекса.
// Порядок проверки кодировок тот же, что у Index.Occupant.
func FindOccupant(bookings []*model.Booking, date time.Time, timeSlot string, trainerID uuid.UUID) *model.Booking {
	dateStr := FormatDate(date)
	for _, encoded := range []string{timeSlot + ":00", timeSlot} {
		for _, b := range bookings {
			if b.TrainerID == trainerID && b.TimeSlot == encoded && FormatDate(b.Date) == dateStr {
				return b
			}
		}
	}
	return nil
}
