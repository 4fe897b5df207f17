package schedule

import (
	"testing"
	"time"

	"github.com/aquacrm/swimschool_bot/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexOccupantDualEncoding(t *testing.T) {
	trainerID := uuid.New()
	date := time.Date(2025, 2, 17, 0, 0, 0, 0, time.UTC)

	withSeconds := &model.Booking{ID: uuid.New(), TrainerID: trainerID, Date: date, TimeSlot: "08:00:00"}
	bare := &model.Booking{ID: uuid.New(), TrainerID: trainerID, Date: date, TimeSlot: "09:30"}

	idx := NewIndex([]*model.Booking{withSeconds, bare})

	// Запрос всегда приходит в виде "HH:MM", хранение - в любой из двух кодировок
	got := idx.Occupant(date, "08:00", trainerID)
	require.NotNil(t, got)
	assert.Equal(t, withSeconds.ID, got.ID)

	got = idx.Occupant(date, "09:30", trainerID)
	require.NotNil(t, got)
	assert.Equal(t, bare.ID, got.ID)

	assert.Nil(t, idx.Occupant(date, "10:00", trainerID))
	assert.Nil(t, idx.Occupant(date.AddDate(0, 0, 1), "08:00", trainerID))
	assert.Nil(t, idx.Occupant(date, "08:00", uuid.New()))
}

func TestIndexOccupantDuplicateTieBreak(t *testing.T) {
	trainerID := uuid.New()
	date := time.Date(2025, 2, 18, 0, 0, 0, 0, time.UTC)

	older := &model.Booking{ID: uuid.New(), TrainerID: trainerID, Date: date, TimeSlot: "10:00:00"}
	newer := &model.Booking{ID: uuid.New(), TrainerID: trainerID, Date: date, TimeSlot: "10:00:00"}

	// Репозиторий отдаёт записи по created_at - побеждает первая во входном порядке
	idx := NewIndex([]*model.Booking{older, newer})
	got := idx.Occupant(date, "10:00", trainerID)
	require.NotNil(t, got)
	assert.Equal(t, older.ID, got.ID)
}

func TestFindOccupant(t *testing.T) {
	trainerID := uuid.New()
	otherTrainer := uuid.New()
	date := time.Date(2025, 2, 19, 0, 0, 0, 0, time.UTC)

	bookings := []*model.Booking{
		{ID: uuid.New(), TrainerID: otherTrainer, Date: date, TimeSlot: "08:00:00"},
		{ID: uuid.New(), TrainerID: trainerID, Date: date, TimeSlot: "08:00"},
	}

	got := FindOccupant(bookings, date, "08:00", trainerID)
	require.NotNil(t, got)
	assert.Equal(t, bookings[1].ID, got.ID)

	// Кодировка с секундами имеет приоритет над голой, как в индексе
	both := []*model.Booking{
		{ID: uuid.New(), TrainerID: trainerID, Date: date, TimeSlot: "08:00"},
		{ID: uuid.New(), TrainerID: trainerID, Date: date, TimeSlot: "08:00:00"},
	}
	got = FindOccupant(both, date, "08:00", trainerID)
	require.NotNil(t, got)
	assert.Equal(t, both[1].ID, got.ID)
}
