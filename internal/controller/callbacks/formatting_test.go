package callbacks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayIndex(t *testing.T) {
	// Понедельник 16.02.2026
	monday := time.Date(2026, 2, 16, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		assert.Equal(t, i, DayIndex(monday.AddDate(0, 0, i)))
	}
}

func TestFormatDay(t *testing.T) {
	assert.Equal(t, "Пн 16.02", FormatDay(time.Date(2026, 2, 16, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Вс 22.02", FormatDay(time.Date(2026, 2, 22, 0, 0, 0, 0, time.UTC)))
}

func TestFormatWeekRange(t *testing.T) {
	dates := []time.Time{
		time.Date(2026, 2, 16, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 17, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 22, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, "16.02 - 22.02", FormatWeekRange(dates))
}

func TestPluralizeLessons(t *testing.T) {
	cases := map[int]string{
		1:   "занятие",
		2:   "занятия",
		4:   "занятия",
		5:   "занятий",
		11:  "занятий",
		21:  "занятие",
		22:  "занятия",
		111: "занятий",
	}
	for n, want := range cases {
		assert.Equal(t, want, PluralizeLessons(n), "n=%d", n)
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Миша", truncate("Миша", 10))
	assert.Equal(t, "Мих…", truncate("Михаил", 4))
}
