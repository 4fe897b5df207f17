package service

import (
	"context"
	"fmt"
	"time"

	"github.com/aquacrm/swimschool_bot/internal/model"
	"github.com/aquacrm/swimschool_bot/internal/schedule"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookingStore хранилище занятий
type BookingStore interface {
	InsertIfAbsent(ctx context.Context, booking *model.Booking) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Booking, error)
	ListRange(ctx context.Context, from, to time.Time, excludeArchived bool) ([]*model.Booking, error)
	UpdateClient(ctx context.Context, id uuid.UUID, clientID *uuid.UUID, clientType model.ClientType) error
	Archive(ctx context.Context, id uuid.UUID) error
}

// TemplateStore хранилище недельного шаблона
type TemplateStore interface {
	GetIntervals(ctx context.Context, trainerID uuid.UUID) ([]*model.WorkInterval, error)
	GetAssignments(ctx context.Context, trainerID uuid.UUID) ([]*model.TemplateAssignment, error)
}

// TrainerStore хранилище тренеров
type TrainerStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Trainer, error)
	List(ctx context.Context, includeArchived bool) ([]*model.Trainer, error)
}

// ScheduleService собирает недельную сетку расписания и разворачивает
// недельный шаблон тренера в занятия на конкретные даты
type ScheduleService struct {
	trainerStore  TrainerStore
	templateStore TemplateStore
	bookingStore  BookingStore
	logger        *zap.Logger
}

// NewScheduleService создаёт новый сервис расписания
func NewScheduleService(
	trainerStore TrainerStore,
	templateStore TemplateStore,
	bookingStore BookingStore,
	logger *zap.Logger,
) *ScheduleService {
	return &ScheduleService{
		trainerStore:  trainerStore,
		templateStore: templateStore,
		bookingStore:  bookingStore,
		logger:        logger,
	}
}

// MaterializeSummary итог генерации недели по шаблону
type MaterializeSummary struct {
	Created int // вставлено новых занятий
	Skipped int // ключ уже занят - существующие записи не трогаем
	Failed  int // ошибка записи, слот пропущен
}

// MaterializeWeek разворачивает шаблон тренера в занятия недели,
// начинающейся с weekStart (понедельник). Каждый получасовой слот каждого
// рабочего интервала записывается через InsertIfAbsent: существующие
// занятия - ручные, отменённые, созданные прошлой генерацией - не
// затираются, поэтому операцию можно повторять сколько угодно раз.
// Закреплённый за слотом шаблона клиент попадает в новое занятие, слоты
// без закрепления создаются открытыми с типом "новый".
//
// Ошибка записи одного слота не прерывает остальные: слоты независимы,
// неудачи копятся в Failed. Отмена контекста прерывает генерацию; частично
// созданная неделя безопасна - повторный запуск доделает остаток.
func (s *ScheduleService) MaterializeWeek(ctx context.Context, trainerID uuid.UUID, weekStart time.Time) (*MaterializeSummary, error) {
	trainer, err := s.trainerStore.GetByID(ctx, trainerID)
	if err != nil {
		return nil, fmt.Errorf("get trainer: %w", err)
	}
	if trainer == nil {
		return nil, ErrTrainerNotFound
	}

	intervals, err := s.templateStore.GetIntervals(ctx, trainerID)
	if err != nil {
		return nil, fmt.Errorf("get work intervals: %w", err)
	}

	assignments, err := s.templateStore.GetAssignments(ctx, trainerID)
	if err != nil {
		return nil, fmt.Errorf("get template assignments: %w", err)
	}

	type slotKey struct {
		day  int
		slot string
	}
	pinned := make(map[slotKey]*model.TemplateAssignment, len(assignments))
	for _, a := range assignments {
		pinned[slotKey{a.DayOfWeek, schedule.NormalizeSlot(a.TimeSlot)}] = a
	}

	summary := &MaterializeSummary{}
	for _, interval := range intervals {
		date := weekStart.AddDate(0, 0, interval.DayOfWeek)

		for _, slot := range schedule.GenerateTimeSlots(interval.StartTime, interval.EndTime) {
			if err := ctx.Err(); err != nil {
				return summary, err
			}

			booking := &model.Booking{
				TrainerID:  trainerID,
				Date:       date,
				TimeSlot:   slot,
				ClientType: model.ClientTypeNew,
			}
			if a, ok := pinned[slotKey{interval.DayOfWeek, slot}]; ok {
				clientID := a.ClientID
				booking.ClientID = &clientID
				booking.ClientType = a.ClientType
			}

			inserted, err := s.bookingStore.InsertIfAbsent(ctx, booking)
			if err != nil {
				summary.Failed++
				s.logger.Warn("Failed to insert booking slot",
					zap.Error(err),
					zap.Stringer("trainer_id", trainerID),
					zap.Time("date", date),
					zap.String("time_slot", slot),
				)
				continue
			}

			if inserted {
				summary.Created++
			} else {
				summary.Skipped++
			}
		}
	}

	s.logger.Info("Week materialized from template",
		zap.Stringer("trainer_id", trainerID),
		zap.String("week_start", schedule.FormatDate(weekStart)),
		zap.Int("created", summary.Created),
		zap.Int("skipped", summary.Skipped),
		zap.Int("failed", summary.Failed),
	)

	return summary, nil
}

// WeekGrid данные недельной сетки для отображения
type WeekGrid struct {
	Dates    []time.Time // понедельник..воскресенье
	Trainers []*model.Trainer
	Bookings []*model.Booking
	Index    *schedule.Index
}

// GetWeekGrid загружает сетку недели: активных тренеров и индекс занятий.
// Отменённые занятия в сетку не попадают. now передаётся явно, offset
// сдвигает неделю относительно текущей.
func (s *ScheduleService) GetWeekGrid(ctx context.Context, now time.Time, offset int) (*WeekGrid, error) {
	dates := schedule.WeekDates(now, offset)

	trainers, err := s.trainerStore.List(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("list trainers: %w", err)
	}

	bookings, err := s.bookingStore.ListRange(ctx, dates[0], dates[len(dates)-1], true)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	return &WeekGrid{
		Dates:    dates,
		Trainers: trainers,
		Bookings: bookings,
		Index:    schedule.NewIndex(bookings),
	}, nil
}

// GetBooking получает занятие по ID, nil если не найдено
func (s *ScheduleService) GetBooking(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	return s.bookingStore.GetByID(ctx, id)
}

// BookSlot записывает клиента в слот сетки вручную. Если занятие уже
// существует - меняется клиент и тип, иначе создаётся новое занятие.
// Если ключ занят отменённым занятием или конкурентной вставкой,
// возвращается ErrSlotTaken.
func (s *ScheduleService) BookSlot(ctx context.Context, trainerID uuid.UUID, date time.Time, timeSlot string, clientID *uuid.UUID, clientType model.ClientType) error {
	dayBookings, err := s.bookingStore.ListRange(ctx, date, date, true)
	if err != nil {
		return fmt.Errorf("list bookings: %w", err)
	}

	if existing := schedule.FindOccupant(dayBookings, date, timeSlot, trainerID); existing != nil {
		if err := s.bookingStore.UpdateClient(ctx, existing.ID, clientID, clientType); err != nil {
			return fmt.Errorf("update booking: %w", err)
		}
		return nil
	}

	booking := &model.Booking{
		TrainerID:  trainerID,
		Date:       date,
		TimeSlot:   timeSlot,
		ClientID:   clientID,
		ClientType: clientType,
	}
	inserted, err := s.bookingStore.InsertIfAbsent(ctx, booking)
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	if !inserted {
		return ErrSlotTaken
	}

	return nil
}

// CancelBooking отменяет занятие. Строка остаётся в БД, её ключ занят,
// так что генерация недели отменённый слот не пересоздаст.
func (s *ScheduleService) CancelBooking(ctx context.Context, bookingID uuid.UUID) error {
	booking, err := s.bookingStore.GetByID(ctx, bookingID)
	if err != nil {
		return fmt.Errorf("get booking: %w", err)
	}
	if booking == nil {
		return ErrBookingNotFound
	}

	if err := s.bookingStore.Archive(ctx, bookingID); err != nil {
		return fmt.Errorf("archive booking: %w", err)
	}

	s.logger.Info("Booking cancelled",
		zap.Stringer("booking_id", bookingID),
		zap.Time("date", booking.Date),
		zap.String("time_slot", booking.TimeSlot),
	)

	return nil
}
