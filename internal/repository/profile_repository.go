package repository

import (
	"context"
	"fmt"

	"github.com/aquacrm/swimschool_bot/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProfileRepository управляет привязками Telegram-аккаунтов к ролям CRM
type ProfileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository создаёт новый репозиторий
func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

// GetByTelegramID получает профиль по Telegram ID
func (r *ProfileRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*model.Profile, error) {
	query := `
		SELECT id, telegram_id, role, trainer_id, created_at
		FROM profiles
		WHERE telegram_id = $1
	`

	profile := &model.Profile{}
	err := r.pool.QueryRow(ctx, query, telegramID).Scan(
		&profile.ID,
		&profile.TelegramID,
		&profile.Role,
		&profile.TrainerID,
		&profile.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile by telegram id: %w", err)
	}

	return profile, nil
}

// Upsert создаёт профиль или обновляет роль существующего
func (r *ProfileRepository) Upsert(ctx context.Context, profile *model.Profile) error {
	query := `
		INSERT INTO profiles (telegram_id, role, trainer_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (telegram_id)
		DO UPDATE SET role = EXCLUDED.role, trainer_id = EXCLUDED.trainer_id
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query, profile.TelegramID, profile.Role, profile.TrainerID).
		Scan(&profile.ID, &profile.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}

	return nil
}
