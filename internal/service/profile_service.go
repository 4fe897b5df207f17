package service

import (
	"context"
	"fmt"

	"github.com/aquacrm/swimschool_bot/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProfileStore хранилище привязок Telegram-аккаунтов к ролям
type ProfileStore interface {
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.Profile, error)
	Upsert(ctx context.Context, profile *model.Profile) error
}

// ProfileService управляет доступом операторов к CRM
type ProfileService struct {
	profiles ProfileStore
	logger   *zap.Logger
}

// NewProfileService создаёт новый сервис профилей
func NewProfileService(profiles ProfileStore, logger *zap.Logger) *ProfileService {
	return &ProfileService{profiles: profiles, logger: logger}
}

// GetByTelegramID получает профиль оператора, nil если доступа нет
func (s *ProfileService) GetByTelegramID(ctx context.Context, telegramID int64) (*model.Profile, error) {
	return s.profiles.GetByTelegramID(ctx, telegramID)
}

// Grant выдаёт или обновляет роль Telegram-аккаунта
func (s *ProfileService) Grant(ctx context.Context, telegramID int64, role model.ProfileRole, trainerID *uuid.UUID) (*model.Profile, error) {
	profile := &model.Profile{
		TelegramID: telegramID,
		Role:       role,
		TrainerID:  trainerID,
	}
	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("grant profile: %w", err)
	}

	s.logger.Info("Profile granted",
		zap.Int64("telegram_id", telegramID),
		zap.String("role", string(role)),
	)

	return profile, nil
}
