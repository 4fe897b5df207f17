package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTimeSlots(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  []string
	}{
		{
			name:  "час даёт два получасовых слота, конец не включается",
			start: "08:00",
			end:   "09:00",
			want:  []string{"08:00", "08:30"},
		},
		{
			name:  "пустой интервал",
			start: "08:00",
			end:   "08:00",
			want:  nil,
		},
		{
			name:  "перенос минут через час",
			start: "08:30",
			end:   "10:00",
			want:  []string{"08:30", "09:00", "09:30"},
		},
		{
			name:  "рабочий день целиком",
			start: "08:00",
			end:   "21:00",
			want: []string{
				"08:00", "08:30", "09:00", "09:30", "10:00", "10:30",
				"11:00", "11:30", "12:00", "12:30", "13:00", "13:30",
				"14:00", "14:30", "15:00", "15:30", "16:00", "16:30",
				"17:00", "17:30", "18:00", "18:30", "19:00", "19:30",
				"20:00", "20:30",
			},
		},
		{
			name:  "время с секундами из БД",
			start: "08:00:00",
			end:   "09:00:00",
			want:  []string{"08:00", "08:30"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateTimeSlots(tt.start, tt.end))
		})
	}
}

func TestWeekStart(t *testing.T) {
	// Среда 2025-02-19 -> понедельник той же недели
	wed := time.Date(2025, 2, 19, 15, 30, 0, 0, time.UTC)
	monday := WeekStart(wed, 0)
	assert.Equal(t, "2025-02-17", FormatDate(monday))

	// Воскресенье относится к прошедшему понедельнику, а не к будущему
	sun := time.Date(2025, 2, 23, 10, 0, 0, 0, time.UTC)
	monday = WeekStart(sun, 0)
	assert.Equal(t, "2025-02-17", FormatDate(monday))

	// Понедельник остаётся понедельником
	mon := time.Date(2025, 2, 17, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-02-17", FormatDate(WeekStart(mon, 0)))

	// Сдвиг на неделю вперёд и назад
	assert.Equal(t, "2025-02-24", FormatDate(WeekStart(wed, 1)))
	assert.Equal(t, "2025-02-10", FormatDate(WeekStart(wed, -1)))
}

func TestWeekDates(t *testing.T) {
	wed := time.Date(2025, 2, 19, 12, 0, 0, 0, time.UTC)
	dates := WeekDates(wed, 0)

	require.Len(t, dates, 7)
	assert.Equal(t, "2025-02-17", FormatDate(dates[0]))
	assert.Equal(t, "2025-02-23", FormatDate(dates[6]))
	for i := 1; i < len(dates); i++ {
		assert.Equal(t, 24*time.Hour, dates[i].Sub(dates[i-1]))
	}
	assert.Equal(t, time.Monday, dates[0].Weekday())
}

func TestNormalizeSlot(t *testing.T) {
	assert.Equal(t, "08:00", NormalizeSlot("08:00:00"))
	assert.Equal(t, "08:00", NormalizeSlot("08:00"))
	assert.Equal(t, "21:30", NormalizeSlot("21:30:15"))
}
