package repository

import (
	"context"
	"fmt"

	"github.com/aquacrm/swimschool_bot/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TrainerRepository управляет тренерами в базе данных
type TrainerRepository struct {
	pool *pgxpool.Pool
}

// NewTrainerRepository создаёт новый репозиторий
func NewTrainerRepository(pool *pgxpool.Pool) *TrainerRepository {
	return &TrainerRepository{pool: pool}
}

// Create создаёт нового тренера
func (r *TrainerRepository) Create(ctx context.Context, trainer *model.Trainer) error {
	query := `
		INSERT INTO trainers (name, phone)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query, trainer.Name, trainer.Phone).
		Scan(&trainer.ID, &trainer.CreatedAt)
	if err != nil {
		return fmt.Errorf("create trainer: %w", err)
	}

	return nil
}

// GetByID получает тренера по ID
func (r *TrainerRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Trainer, error) {
	query := `
		SELECT id, name, phone, archived_at, created_at
		FROM trainers
		WHERE id = $1
	`

	trainer := &model.Trainer{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&trainer.ID,
		&trainer.Name,
		&trainer.Phone,
		&trainer.ArchivedAt,
		&trainer.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get trainer by id: %w", err)
	}

	return trainer, nil
}

// List получает тренеров, отсортированных по имени.
// При includeArchived = false архивные тренеры не возвращаются.
func (r *TrainerRepository) List(ctx context.Context, includeArchived bool) ([]*model.Trainer, error) {
	query := `
		SELECT id, name, phone, archived_at, created_at
		FROM trainers
		WHERE $1 OR archived_at IS NULL
		ORDER BY name
	`

	rows, err := r.pool.Query(ctx, query, includeArchived)
	if err != nil {
		return nil, fmt.Errorf("list trainers: %w", err)
	}
	defer rows.Close()

	var trainers []*model.Trainer
	for rows.Next() {
		trainer := &model.Trainer{}
		err := rows.Scan(
			&trainer.ID,
			&trainer.Name,
			&trainer.Phone,
			&trainer.ArchivedAt,
			&trainer.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan trainer: %w", err)
		}
		trainers = append(trainers, trainer)
	}

	return trainers, rows.Err()
}

// Update обновляет имя и телефон тренера
func (r *TrainerRepository) Update(ctx context.Context, trainer *model.Trainer) error {
	query := `
		UPDATE trainers
		SET name = $2, phone = $3
		WHERE id = $1
	`

	_, err := r.pool.Exec(ctx, query, trainer.ID, trainer.Name, trainer.Phone)
	if err != nil {
		return fmt.Errorf("update trainer: %w", err)
	}

	return nil
}

// SetArchived отправляет тренера в архив или возвращает из него
func (r *TrainerRepository) SetArchived(ctx context.Context, id uuid.UUID, archived bool) error {
	query := `
		UPDATE trainers
		SET archived_at = CASE WHEN $2 THEN now() ELSE NULL END
		WHERE id = $1
	`

	_, err := r.pool.Exec(ctx, query, id, archived)
	if err != nil {
		return fmt.Errorf("set trainer archived: %w", err)
	}

	return nil
}
