package repository

import (
	"context"
	"fmt"

	"github.com/aquacrm/swimschool_bot/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TaskRepository управляет задачами администратора
type TaskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository создаёт новый репозиторий
func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

// Create создаёт новую задачу
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	query := `
		INSERT INTO tasks (client_id, due_date, text, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		task.ClientID,
		task.DueDate,
		task.Text,
		task.Status,
	).Scan(&task.ID, &task.CreatedAt)

	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}

	return nil
}

// GetByID получает задачу по ID
func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	query := `
		SELECT id, client_id, due_date, text, status, created_at
		FROM tasks
		WHERE id = $1
	`

	task := &model.Task{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&task.ID,
		&task.ClientID,
		&task.DueDate,
		&task.Text,
		&task.Status,
		&task.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get task by id: %w", err)
	}

	return task, nil
}

// List получает задачи по сроку вместе с именами клиентов.
// При onlyOpen = true выполненные задачи не возвращаются.
func (r *TaskRepository) List(ctx context.Context, onlyOpen bool) ([]*model.Task, error) {
	query := `
		SELECT t.id, t.client_id, t.due_date, t.text, t.status, t.created_at,
		       c.child_full_name
		FROM tasks t
		LEFT JOIN clients c ON c.id = t.client_id
		WHERE NOT $1 OR t.status = 'open'
		ORDER BY t.due_date
	`

	rows, err := r.pool.Query(ctx, query, onlyOpen)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*model.Task
	for rows.Next() {
		task := &model.Task{}
		var clientName *string
		err := rows.Scan(
			&task.ID,
			&task.ClientID,
			&task.DueDate,
			&task.Text,
			&task.Status,
			&task.CreatedAt,
			&clientName,
		)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}

		if clientName != nil {
			task.ClientName = *clientName
		}
		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}

// SetStatus переключает статус задачи
func (r *TaskRepository) SetStatus(ctx context.Context, id uuid.UUID, status model.TaskStatus) error {
	_, err := r.pool.Exec(ctx, `UPDATE tasks SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("set task status: %w", err)
	}
	return nil
}
