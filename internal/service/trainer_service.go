package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/aquacrm/swimschool_bot/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TrainerEditor хранилище тренеров с операциями редактирования
type TrainerEditor interface {
	TrainerStore
	Create(ctx context.Context, trainer *model.Trainer) error
	Update(ctx context.Context, trainer *model.Trainer) error
	SetArchived(ctx context.Context, id uuid.UUID, archived bool) error
}

// TrainerService управляет тренерами
type TrainerService struct {
	trainers TrainerEditor
	logger   *zap.Logger
}

// NewTrainerService создаёт новый сервис тренеров
func NewTrainerService(trainers TrainerEditor, logger *zap.Logger) *TrainerService {
	return &TrainerService{trainers: trainers, logger: logger}
}

// List получает тренеров, по умолчанию без архивных
func (s *TrainerService) List(ctx context.Context, includeArchived bool) ([]*model.Trainer, error) {
	return s.trainers.List(ctx, includeArchived)
}

// GetByID получает тренера по ID
func (s *TrainerService) GetByID(ctx context.Context, id uuid.UUID) (*model.Trainer, error) {
	return s.trainers.GetByID(ctx, id)
}

// Create создаёт нового тренера
func (s *TrainerService) Create(ctx context.Context, name, phone string) (*model.Trainer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrMissingRequired
	}

	trainer := &model.Trainer{Name: name}
	if phone = strings.TrimSpace(phone); phone != "" {
		trainer.Phone = &phone
	}

	if err := s.trainers.Create(ctx, trainer); err != nil {
		return nil, fmt.Errorf("create trainer: %w", err)
	}

	s.logger.Info("Trainer created",
		zap.Stringer("trainer_id", trainer.ID),
		zap.String("name", trainer.Name),
	)

	return trainer, nil
}

// Update обновляет имя и телефон тренера
func (s *TrainerService) Update(ctx context.Context, id uuid.UUID, name, phone string) error {
	trainer, err := s.trainers.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get trainer: %w", err)
	}
	if trainer == nil {
		return ErrTrainerNotFound
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return ErrMissingRequired
	}

	trainer.Name = name
	trainer.Phone = nil
	if phone = strings.TrimSpace(phone); phone != "" {
		trainer.Phone = &phone
	}

	if err := s.trainers.Update(ctx, trainer); err != nil {
		return fmt.Errorf("update trainer: %w", err)
	}

	return nil
}

// SetArchived отправляет тренера в архив или возвращает из него.
// Шаблон тренера при архивации сохраняется, занятия остаются в истории.
func (s *TrainerService) SetArchived(ctx context.Context, id uuid.UUID, archived bool) error {
	trainer, err := s.trainers.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get trainer: %w", err)
	}
	if trainer == nil {
		return ErrTrainerNotFound
	}

	if err := s.trainers.SetArchived(ctx, id, archived); err != nil {
		return fmt.Errorf("set archived: %w", err)
	}

	s.logger.Info("Trainer archive state changed",
		zap.Stringer("trainer_id", id),
		zap.Bool("archived", archived),
	)

	return nil
}
