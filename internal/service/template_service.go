package service

import (
	"context"
	"fmt"

	"github.com/aquacrm/swimschool_bot/internal/model"
	"github.com/aquacrm/swimschool_bot/internal/schedule"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TemplateEditor хранилище шаблона с операциями редактирования
type TemplateEditor interface {
	TemplateStore
	CreateInterval(ctx context.Context, interval *model.WorkInterval) error
	DeleteInterval(ctx context.Context, id uuid.UUID) error
	UpsertAssignment(ctx context.Context, assignment *model.TemplateAssignment) error
	DeleteAssignment(ctx context.Context, id uuid.UUID) error
}

// ClientLookup минимальный доступ к клиентам для проверки ссылок
type ClientLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Client, error)
}

// TemplateService управляет недельными шаблонами тренеров
type TemplateService struct {
	trainerStore TrainerStore
	templates    TemplateEditor
	clients      ClientLookup
	logger       *zap.Logger
}

// NewTemplateService создаёт новый сервис шаблонов
func NewTemplateService(
	trainerStore TrainerStore,
	templates TemplateEditor,
	clients ClientLookup,
	logger *zap.Logger,
) *TemplateService {
	return &TemplateService{
		trainerStore: trainerStore,
		templates:    templates,
		clients:      clients,
		logger:       logger,
	}
}

// TrainerTemplate шаблон тренера целиком, для экрана редактирования
type TrainerTemplate struct {
	Trainer     *model.Trainer
	Intervals   []*model.WorkInterval
	Assignments []*model.TemplateAssignment
}

// GetTemplate загружает шаблон тренера
func (s *TemplateService) GetTemplate(ctx context.Context, trainerID uuid.UUID) (*TrainerTemplate, error) {
	trainer, err := s.trainerStore.GetByID(ctx, trainerID)
	if err != nil {
		return nil, fmt.Errorf("get trainer: %w", err)
	}
	if trainer == nil {
		return nil, ErrTrainerNotFound
	}

	intervals, err := s.templates.GetIntervals(ctx, trainerID)
	if err != nil {
		return nil, fmt.Errorf("get work intervals: %w", err)
	}

	assignments, err := s.templates.GetAssignments(ctx, trainerID)
	if err != nil {
		return nil, fmt.Errorf("get template assignments: %w", err)
	}

	return &TrainerTemplate{
		Trainer:     trainer,
		Intervals:   intervals,
		Assignments: assignments,
	}, nil
}

// AddInterval добавляет рабочий интервал. Интервалы одного дня могут
// пересекаться - дедупликацией занимается генерация недели через
// insert-if-absent, а не шаблон.
func (s *TemplateService) AddInterval(ctx context.Context, trainerID uuid.UUID, dayOfWeek int, startTime, endTime string) (*model.WorkInterval, error) {
	if dayOfWeek < 0 || dayOfWeek >= schedule.DaysInWeek {
		return nil, ErrInvalidDay
	}

	start := schedule.NormalizeSlot(startTime)
	end := schedule.NormalizeSlot(endTime)
	if start >= end {
		return nil, ErrInvalidInterval
	}

	trainer, err := s.trainerStore.GetByID(ctx, trainerID)
	if err != nil {
		return nil, fmt.Errorf("get trainer: %w", err)
	}
	if trainer == nil {
		return nil, ErrTrainerNotFound
	}

	interval := &model.WorkInterval{
		TrainerID: trainerID,
		DayOfWeek: dayOfWeek,
		StartTime: start,
		EndTime:   end,
	}
	if err := s.templates.CreateInterval(ctx, interval); err != nil {
		return nil, fmt.Errorf("create interval: %w", err)
	}

	s.logger.Info("Work interval added",
		zap.Stringer("trainer_id", trainerID),
		zap.Int("day_of_week", dayOfWeek),
		zap.String("start", start),
		zap.String("end", end),
	)

	return interval, nil
}

// RemoveInterval удаляет рабочий интервал
func (s *TemplateService) RemoveInterval(ctx context.Context, id uuid.UUID) error {
	if err := s.templates.DeleteInterval(ctx, id); err != nil {
		return fmt.Errorf("delete interval: %w", err)
	}
	return nil
}

// PinClient закрепляет клиента за слотом шаблона. Повторное закрепление
// того же слота перезаписывает клиента - на слот шаблона закрепляется
// ровно один клиент.
func (s *TemplateService) PinClient(ctx context.Context, trainerID uuid.UUID, dayOfWeek int, timeSlot string, clientID uuid.UUID, clientType model.ClientType) (*model.TemplateAssignment, error) {
	if dayOfWeek < 0 || dayOfWeek >= schedule.DaysInWeek {
		return nil, ErrInvalidDay
	}

	client, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("get client: %w", err)
	}
	if client == nil {
		return nil, ErrClientNotFound
	}

	if clientType == "" {
		clientType = model.ClientTypeRegular
	}

	assignment := &model.TemplateAssignment{
		TrainerID:  trainerID,
		DayOfWeek:  dayOfWeek,
		TimeSlot:   schedule.NormalizeSlot(timeSlot),
		ClientID:   clientID,
		ClientType: clientType,
	}
	if err := s.templates.UpsertAssignment(ctx, assignment); err != nil {
		return nil, fmt.Errorf("upsert assignment: %w", err)
	}

	s.logger.Info("Client pinned to template slot",
		zap.Stringer("trainer_id", trainerID),
		zap.Int("day_of_week", dayOfWeek),
		zap.String("time_slot", assignment.TimeSlot),
		zap.Stringer("client_id", clientID),
	)

	return assignment, nil
}

// UnpinClient удаляет закрепление клиента
func (s *TemplateService) UnpinClient(ctx context.Context, id uuid.UUID) error {
	if err := s.templates.DeleteAssignment(ctx, id); err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}
	return nil
}
