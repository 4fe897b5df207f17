package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aquacrm/swimschool_bot/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Понедельник тестовой недели
var monday = time.Date(2025, 2, 17, 0, 0, 0, 0, time.UTC)

func newTestScheduleService(trainer *model.Trainer, templates *fakeTemplateStore, bookings *fakeBookingStore) *ScheduleService {
	return NewScheduleService(
		newFakeTrainerStore(trainer),
		templates,
		bookings,
		zap.NewNop(),
	)
}

func TestMaterializeWeekExpandsIntervals(t *testing.T) {
	trainer := &model.Trainer{ID: uuid.New(), Name: "Анна"}
	templates := &fakeTemplateStore{
		intervals: []*model.WorkInterval{
			{ID: uuid.New(), TrainerID: trainer.ID, DayOfWeek: 0, StartTime: "08:00", EndTime: "10:00"},
			{ID: uuid.New(), TrainerID: trainer.ID, DayOfWeek: 2, StartTime: "15:00", EndTime: "16:00"},
		},
	}
	bookings := newFakeBookingStore()
	svc := newTestScheduleService(trainer, templates, bookings)

	summary, err := svc.MaterializeWeek(context.Background(), trainer.ID, monday)
	require.NoError(t, err)

	// 4 слота в понедельник + 2 в среду
	assert.Equal(t, 6, summary.Created)
	assert.Equal(t, 0, summary.Skipped)
	assert.Equal(t, 0, summary.Failed)
	require.Len(t, bookings.inserted, 6)

	// Интервал дня 2 лёг на среду целевой недели
	wednesday := monday.AddDate(0, 0, 2)
	var wedSlots []string
	for _, b := range bookings.inserted {
		if b.Date.Equal(wednesday) {
			wedSlots = append(wedSlots, b.TimeSlot)
		}
	}
	assert.ElementsMatch(t, []string{"15:00", "15:30"}, wedSlots)
}

func TestMaterializeWeekIsIdempotent(t *testing.T) {
	trainer := &model.Trainer{ID: uuid.New(), Name: "Анна"}
	templates := &fakeTemplateStore{
		intervals: []*model.WorkInterval{
			{ID: uuid.New(), TrainerID: trainer.ID, DayOfWeek: 0, StartTime: "08:00", EndTime: "12:00"},
		},
	}
	bookings := newFakeBookingStore()
	svc := newTestScheduleService(trainer, templates, bookings)

	first, err := svc.MaterializeWeek(context.Background(), trainer.ID, monday)
	require.NoError(t, err)
	assert.Equal(t, 8, first.Created)

	// Повторный запуск ничего не добавляет и не портит
	second, err := svc.MaterializeWeek(context.Background(), trainer.ID, monday)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Created)
	assert.Equal(t, 8, second.Skipped)
	assert.Len(t, bookings.inserted, 8)
}

func TestMaterializeWeekPrefillsPinnedClient(t *testing.T) {
	trainer := &model.Trainer{ID: uuid.New(), Name: "Анна"}
	clientID := uuid.New()
	templates := &fakeTemplateStore{
		intervals: []*model.WorkInterval{
			{ID: uuid.New(), TrainerID: trainer.ID, DayOfWeek: 0, StartTime: "08:00", EndTime: "09:00"},
		},
		assignments: []*model.TemplateAssignment{
			{
				ID:         uuid.New(),
				TrainerID:  trainer.ID,
				DayOfWeek:  0,
				TimeSlot:   "08:00:00", // кодировка с секундами из БД не должна мешать
				ClientID:   clientID,
				ClientType: model.ClientTypeSubscription,
			},
		},
	}
	bookings := newFakeBookingStore()
	svc := newTestScheduleService(trainer, templates, bookings)

	summary, err := svc.MaterializeWeek(context.Background(), trainer.ID, monday)
	require.NoError(t, err)
	require.Equal(t, 2, summary.Created)

	bySlot := make(map[string]*model.Booking)
	for _, b := range bookings.inserted {
		bySlot[b.TimeSlot] = b
	}

	pinned := bySlot["08:00"]
	require.NotNil(t, pinned)
	require.NotNil(t, pinned.ClientID)
	assert.Equal(t, clientID, *pinned.ClientID)
	assert.Equal(t, model.ClientTypeSubscription, pinned.ClientType)

	open := bySlot["08:30"]
	require.NotNil(t, open)
	assert.Nil(t, open.ClientID)
	assert.Equal(t, model.ClientTypeNew, open.ClientType)
}

func TestMaterializeWeekDoesNotOverwriteExisting(t *testing.T) {
	trainer := &model.Trainer{ID: uuid.New(), Name: "Анна"}
	manualClient := uuid.New()
	templates := &fakeTemplateStore{
		intervals: []*model.WorkInterval{
			{ID: uuid.New(), TrainerID: trainer.ID, DayOfWeek: 0, StartTime: "08:00", EndTime: "09:00"},
		},
	}
	bookings := newFakeBookingStore()
	// Ручная запись уже стоит на 08:00, вторая - отменённая на 08:30
	bookings.seed(&model.Booking{
		TrainerID:  trainer.ID,
		ClientID:   &manualClient,
		Date:       monday,
		TimeSlot:   "08:00",
		ClientType: model.ClientTypeRegular,
	})
	archivedAt := time.Now()
	bookings.seed(&model.Booking{
		TrainerID:  trainer.ID,
		Date:       monday,
		TimeSlot:   "08:30:00",
		ClientType: model.ClientTypeNew,
		ArchivedAt: &archivedAt,
	})
	svc := newTestScheduleService(trainer, templates, bookings)

	summary, err := svc.MaterializeWeek(context.Background(), trainer.ID, monday)
	require.NoError(t, err)

	// Оба ключа заняты: и ручной записью, и отменённой
	assert.Equal(t, 0, summary.Created)
	assert.Equal(t, 2, summary.Skipped)

	existing := bookings.byKey[bookingKey(trainer.ID, monday, "08:00")]
	require.NotNil(t, existing)
	require.NotNil(t, existing.ClientID)
	assert.Equal(t, manualClient, *existing.ClientID)
}

func TestMaterializeWeekCountsFailures(t *testing.T) {
	trainer := &model.Trainer{ID: uuid.New(), Name: "Анна"}
	templates := &fakeTemplateStore{
		intervals: []*model.WorkInterval{
			{ID: uuid.New(), TrainerID: trainer.ID, DayOfWeek: 0, StartTime: "08:00", EndTime: "09:30"},
		},
	}
	bookings := newFakeBookingStore()
	bookings.failOn[bookingKey(trainer.ID, monday, "08:30")] = errors.New("connection reset")
	svc := newTestScheduleService(trainer, templates, bookings)

	summary, err := svc.MaterializeWeek(context.Background(), trainer.ID, monday)
	require.NoError(t, err)

	// Сбой одного слота не прерывает остальные и не маскируется под skip
	assert.Equal(t, 2, summary.Created)
	assert.Equal(t, 0, summary.Skipped)
	assert.Equal(t, 1, summary.Failed)
}

func TestMaterializeWeekTrainerNotFound(t *testing.T) {
	trainer := &model.Trainer{ID: uuid.New(), Name: "Анна"}
	bookings := newFakeBookingStore()
	svc := newTestScheduleService(trainer, &fakeTemplateStore{}, bookings)

	_, err := svc.MaterializeWeek(context.Background(), uuid.New(), monday)
	assert.ErrorIs(t, err, ErrTrainerNotFound)
	assert.Empty(t, bookings.inserted)
}

func TestMaterializeWeekEmptyTemplate(t *testing.T) {
	trainer := &model.Trainer{ID: uuid.New(), Name: "Анна"}
	svc := newTestScheduleService(trainer, &fakeTemplateStore{}, newFakeBookingStore())

	summary, err := svc.MaterializeWeek(context.Background(), trainer.ID, monday)
	require.NoError(t, err)
	assert.Equal(t, &MaterializeSummary{}, summary)
}

func TestMaterializeWeekHonorsCancellation(t *testing.T) {
	trainer := &model.Trainer{ID: uuid.New(), Name: "Анна"}
	templates := &fakeTemplateStore{
		intervals: []*model.WorkInterval{
			{ID: uuid.New(), TrainerID: trainer.ID, DayOfWeek: 0, StartTime: "08:00", EndTime: "21:00"},
		},
	}
	bookings := newFakeBookingStore()
	svc := newTestScheduleService(trainer, templates, bookings)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := svc.MaterializeWeek(ctx, trainer.ID, monday)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, summary.Created)
	assert.Empty(t, bookings.inserted)
}

func TestGetWeekGridFindsOccupants(t *testing.T) {
	trainer := &model.Trainer{ID: uuid.New(), Name: "Анна"}
	clientID := uuid.New()
	bookings := newFakeBookingStore()
	bookings.seed(&model.Booking{
		TrainerID:  trainer.ID,
		ClientID:   &clientID,
		Date:       monday,
		TimeSlot:   "08:00:00",
		ClientType: model.ClientTypeRegular,
	})
	svc := newTestScheduleService(trainer, &fakeTemplateStore{}, bookings)

	// Среда той же недели, offset 0
	now := monday.AddDate(0, 0, 2)
	grid, err := svc.GetWeekGrid(context.Background(), now, 0)
	require.NoError(t, err)

	require.Len(t, grid.Dates, 7)
	assert.Equal(t, monday, grid.Dates[0])

	occ := grid.Index.Occupant(monday, "08:00", trainer.ID)
	require.NotNil(t, occ)
	require.NotNil(t, occ.ClientID)
	assert.Equal(t, clientID, *occ.ClientID)
}

func TestBookSlot(t *testing.T) {
	trainer := &model.Trainer{ID: uuid.New(), Name: "Анна"}
	bookings := newFakeBookingStore()
	svc := newTestScheduleService(trainer, &fakeTemplateStore{}, bookings)
	ctx := context.Background()

	clientA := uuid.New()
	err := svc.BookSlot(ctx, trainer.ID, monday, "10:00", &clientA, model.ClientTypeTrial)
	require.NoError(t, err)

	booked := bookings.byKey[bookingKey(trainer.ID, monday, "10:00")]
	require.NotNil(t, booked)
	assert.Equal(t, clientA, *booked.ClientID)

	// Повторная запись в тот же слот меняет клиента, а не создаёт дубль
	clientB := uuid.New()
	err = svc.BookSlot(ctx, trainer.ID, monday, "10:00", &clientB, model.ClientTypeRegular)
	require.NoError(t, err)
	assert.Equal(t, clientB, *booked.ClientID)
	assert.Equal(t, model.ClientTypeRegular, booked.ClientType)
	assert.Len(t, bookings.inserted, 1)

	// Ключ, занятый отменённым занятием, не доступен для новой записи
	archivedAt := time.Now()
	bookings.seed(&model.Booking{
		TrainerID:  trainer.ID,
		Date:       monday,
		TimeSlot:   "11:00",
		ClientType: model.ClientTypeNew,
		ArchivedAt: &archivedAt,
	})
	err = svc.BookSlot(ctx, trainer.ID, monday, "11:00", &clientA, model.ClientTypeNew)
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestCancelBooking(t *testing.T) {
	trainer := &model.Trainer{ID: uuid.New(), Name: "Анна"}
	bookings := newFakeBookingStore()
	booking := &model.Booking{
		ID:         uuid.New(),
		TrainerID:  trainer.ID,
		Date:       monday,
		TimeSlot:   "09:00",
		ClientType: model.ClientTypeNew,
	}
	bookings.seed(booking)
	svc := newTestScheduleService(trainer, &fakeTemplateStore{}, bookings)

	require.NoError(t, svc.CancelBooking(context.Background(), booking.ID))
	assert.NotNil(t, booking.ArchivedAt)

	err := svc.CancelBooking(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
