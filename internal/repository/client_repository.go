package repository

import (
	"context"
	"fmt"

	"github.com/aquacrm/swimschool_bot/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ClientRepository управляет клиентами в базе данных
type ClientRepository struct {
	pool *pgxpool.Pool
}

// NewClientRepository создаёт новый репозиторий
func NewClientRepository(pool *pgxpool.Pool) *ClientRepository {
	return &ClientRepository{pool: pool}
}

const clientColumns = `id, child_full_name, parent_name, parent_phone, birth_date,
	subscription_type, comment, status, assigned_trainer_id, archived_at, created_at`

func scanClient(row pgx.Row) (*model.Client, error) {
	client := &model.Client{}
	err := row.Scan(
		&client.ID,
		&client.ChildFullName,
		&client.ParentName,
		&client.ParentPhone,
		&client.BirthDate,
		&client.SubscriptionType,
		&client.Comment,
		&client.Status,
		&client.AssignedTrainerID,
		&client.ArchivedAt,
		&client.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// Create создаёт нового клиента
func (r *ClientRepository) Create(ctx context.Context, client *model.Client) error {
	query := `
		INSERT INTO clients (child_full_name, parent_name, parent_phone, birth_date,
			subscription_type, comment, status, assigned_trainer_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		client.ChildFullName,
		client.ParentName,
		client.ParentPhone,
		client.BirthDate,
		client.SubscriptionType,
		client.Comment,
		client.Status,
		client.AssignedTrainerID,
	).Scan(&client.ID, &client.CreatedAt)

	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}

	return nil
}

// GetByID получает клиента по ID
func (r *ClientRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`

	client, err := scanClient(r.pool.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get client by id: %w", err)
	}

	return client, nil
}

// List получает неархивных клиентов, отсортированных по имени ребёнка.
// status сужает выборку до одного статуса, search ищет по имени ребёнка
// и телефону родителя.
func (r *ClientRepository) List(ctx context.Context, status *model.ClientStatus, search string) ([]*model.Client, error) {
	query := `
		SELECT ` + clientColumns + `
		FROM clients
		WHERE archived_at IS NULL
		  AND ($1::text IS NULL OR status = $1)
		  AND ($2 = '' OR child_full_name ILIKE '%' || $2 || '%' OR parent_phone LIKE '%' || $2 || '%')
		ORDER BY child_full_name
	`

	rows, err := r.pool.Query(ctx, query, status, search)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var clients []*model.Client
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		clients = append(clients, client)
	}

	return clients, rows.Err()
}

// Update обновляет карточку клиента
func (r *ClientRepository) Update(ctx context.Context, client *model.Client) error {
	query := `
		UPDATE clients
		SET child_full_name = $2, parent_name = $3, parent_phone = $4, birth_date = $5,
		    subscription_type = $6, comment = $7, status = $8, assigned_trainer_id = $9
		WHERE id = $1
	`

	_, err := r.pool.Exec(
		ctx, query,
		client.ID,
		client.ChildFullName,
		client.ParentName,
		client.ParentPhone,
		client.BirthDate,
		client.SubscriptionType,
		client.Comment,
		client.Status,
		client.AssignedTrainerID,
	)
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}

	return nil
}

// SetStatus переводит клиента в другой статус воронки
func (r *ClientRepository) SetStatus(ctx context.Context, id uuid.UUID, status model.ClientStatus) error {
	_, err := r.pool.Exec(ctx, `UPDATE clients SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("set client status: %w", err)
	}
	return nil
}

// Archive отправляет клиента в архив
func (r *ClientRepository) Archive(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `UPDATE clients SET archived_at = now() WHERE id = $1 AND archived_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("archive client: %w", err)
	}
	return nil
}
