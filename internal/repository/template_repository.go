package repository

import (
	"context"
	"fmt"

	"github.com/aquacrm/swimschool_bot/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TemplateRepository управляет недельным шаблоном тренера:
// рабочими интервалами и закреплёнными клиентами
type TemplateRepository struct {
	pool *pgxpool.Pool
}

// NewTemplateRepository создаёт новый репозиторий
func NewTemplateRepository(pool *pgxpool.Pool) *TemplateRepository {
	return &TemplateRepository{pool: pool}
}

// CreateInterval создаёт рабочий интервал
func (r *TemplateRepository) CreateInterval(ctx context.Context, interval *model.WorkInterval) error {
	query := `
		INSERT INTO work_intervals (trainer_id, day_of_week, start_time, end_time)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		interval.TrainerID,
		interval.DayOfWeek,
		interval.StartTime,
		interval.EndTime,
	).Scan(&interval.ID, &interval.CreatedAt)

	if err != nil {
		return fmt.Errorf("create work interval: %w", err)
	}

	return nil
}

// GetIntervals получает все рабочие интервалы тренера
func (r *TemplateRepository) GetIntervals(ctx context.Context, trainerID uuid.UUID) ([]*model.WorkInterval, error) {
	query := `
		SELECT id, trainer_id, day_of_week, start_time, end_time, created_at
		FROM work_intervals
		WHERE trainer_id = $1
		ORDER BY day_of_week, start_time
	`

	rows, err := r.pool.Query(ctx, query, trainerID)
	if err != nil {
		return nil, fmt.Errorf("get work intervals: %w", err)
	}
	defer rows.Close()

	var intervals []*model.WorkInterval
	for rows.Next() {
		interval := &model.WorkInterval{}
		err := rows.Scan(
			&interval.ID,
			&interval.TrainerID,
			&interval.DayOfWeek,
			&interval.StartTime,
			&interval.EndTime,
			&interval.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan work interval: %w", err)
		}
		intervals = append(intervals, interval)
	}

	return intervals, rows.Err()
}

// DeleteInterval удаляет рабочий интервал
func (r *TemplateRepository) DeleteInterval(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM work_intervals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete work interval: %w", err)
	}
	return nil
}

// UpsertAssignment закрепляет клиента за слотом шаблона. Конфликт по
// (trainer_id, day_of_week, time_slot) перезаписывает клиента и тип -
// на один слот шаблона закрепляется ровно один клиент.
func (r *TemplateRepository) UpsertAssignment(ctx context.Context, assignment *model.TemplateAssignment) error {
	query := `
		INSERT INTO template_assignments (trainer_id, day_of_week, time_slot, client_id, client_type)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (trainer_id, day_of_week, left(time_slot, 5))
		DO UPDATE SET client_id = EXCLUDED.client_id, client_type = EXCLUDED.client_type
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		assignment.TrainerID,
		assignment.DayOfWeek,
		assignment.TimeSlot,
		assignment.ClientID,
		assignment.ClientType,
	).Scan(&assignment.ID, &assignment.CreatedAt)

	if err != nil {
		return fmt.Errorf("upsert template assignment: %w", err)
	}

	return nil
}

// GetAssignments получает закрепления тренера вместе с именами клиентов
func (r *TemplateRepository) GetAssignments(ctx context.Context, trainerID uuid.UUID) ([]*model.TemplateAssignment, error) {
	query := `
		SELECT a.id, a.trainer_id, a.day_of_week, a.time_slot, a.client_id, a.client_type,
		       a.created_at, c.child_full_name
		FROM template_assignments a
		LEFT JOIN clients c ON c.id = a.client_id
		WHERE a.trainer_id = $1
		ORDER BY a.day_of_week, a.time_slot
	`

	rows, err := r.pool.Query(ctx, query, trainerID)
	if err != nil {
		return nil, fmt.Errorf("get template assignments: %w", err)
	}
	defer rows.Close()

	var assignments []*model.TemplateAssignment
	for rows.Next() {
		assignment := &model.TemplateAssignment{}
		var clientName *string
		err := rows.Scan(
			&assignment.ID,
			&assignment.TrainerID,
			&assignment.DayOfWeek,
			&assignment.TimeSlot,
			&assignment.ClientID,
			&assignment.ClientType,
			&assignment.CreatedAt,
			&clientName,
		)
		if err != nil {
			return nil, fmt.Errorf("scan template assignment: %w", err)
		}

		if clientName != nil {
			assignment.ClientName = *clientName
		}
		assignments = append(assignments, assignment)
	}

	return assignments, rows.Err()
}

// DeleteAssignment удаляет закрепление клиента
func (r *TemplateRepository) DeleteAssignment(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM template_assignments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete template assignment: %w", err)
	}
	return nil
}
