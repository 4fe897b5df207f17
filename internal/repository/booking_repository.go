package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/aquacrm/swimschool_bot/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BookingRepository управляет занятиями в базе данных
type BookingRepository struct {
	pool *pgxpool.Pool
}

// NewBookingRepository создаёт новый репозиторий
func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

// InsertIfAbsent вставляет занятие, если его естественный ключ
// (trainer_id, date, time_slot) ещё не занят. Существующая строка -
// в том числе архивная - никогда не перезаписывается. Возвращает true,
// если строка была вставлена. Проверка и вставка атомарны: конфликт
// разрешает уникальный индекс, а не чтение перед записью.
func (r *BookingRepository) InsertIfAbsent(ctx context.Context, booking *model.Booking) (bool, error) {
	query := `
		INSERT INTO bookings (trainer_id, client_id, date, time_slot, client_type)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (trainer_id, date, left(time_slot, 5)) DO NOTHING
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		booking.TrainerID,
		booking.ClientID,
		booking.Date,
		booking.TimeSlot,
		booking.ClientType,
	).Scan(&booking.ID, &booking.CreatedAt)

	if err == pgx.ErrNoRows {
		// Ключ уже занят - обычный исход, не ошибка
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("insert booking if absent: %w", err)
	}

	return true, nil
}

// GetByID получает занятие по ID
func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	query := `
		SELECT id, trainer_id, client_id, date, time_slot, client_type, archived_at, created_at
		FROM bookings
		WHERE id = $1
	`

	booking := &model.Booking{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.TrainerID,
		&booking.ClientID,
		&booking.Date,
		&booking.TimeSlot,
		&booking.ClientType,
		&booking.ArchivedAt,
		&booking.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get booking by id: %w", err)
	}

	return booking, nil
}

// ListRange получает занятия за диапазон дат [from, to] вместе с именами
// клиентов. Сортировка по created_at фиксирует, какая из аномальных
// строк-дубликатов победит при поиске в сетке (самая старая).
func (r *BookingRepository) ListRange(ctx context.Context, from, to time.Time, excludeArchived bool) ([]*model.Booking, error) {
	query := `
		SELECT b.id, b.trainer_id, b.client_id, b.date, b.time_slot, b.client_type,
		       b.archived_at, b.created_at,
		       c.child_full_name
		FROM bookings b
		LEFT JOIN clients c ON c.id = b.client_id
		WHERE b.date >= $1 AND b.date <= $2
		  AND (NOT $3 OR b.archived_at IS NULL)
		ORDER BY b.created_at
	`

	rows, err := r.pool.Query(ctx, query, from, to, excludeArchived)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*model.Booking
	for rows.Next() {
		booking := &model.Booking{}
		var clientName *string
		err := rows.Scan(
			&booking.ID,
			&booking.TrainerID,
			&booking.ClientID,
			&booking.Date,
			&booking.TimeSlot,
			&booking.ClientType,
			&booking.ArchivedAt,
			&booking.CreatedAt,
			&clientName,
		)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}

		if booking.ClientID != nil && clientName != nil {
			booking.Client = &model.Client{ID: *booking.ClientID, ChildFullName: *clientName}
		}
		bookings = append(bookings, booking)
	}

	return bookings, rows.Err()
}

// ListUpcomingByClient получает будущие занятия клиента начиная с даты from
func (r *BookingRepository) ListUpcomingByClient(ctx context.Context, clientID uuid.UUID, from time.Time) ([]*model.Booking, error) {
	query := `
		SELECT id, trainer_id, client_id, date, time_slot, client_type, archived_at, created_at
		FROM bookings
		WHERE client_id = $1 AND date >= $2 AND archived_at IS NULL
		ORDER BY date, time_slot
	`

	rows, err := r.pool.Query(ctx, query, clientID, from)
	if err != nil {
		return nil, fmt.Errorf("list bookings by client: %w", err)
	}
	defer rows.Close()

	var bookings []*model.Booking
	for rows.Next() {
		booking := &model.Booking{}
		err := rows.Scan(
			&booking.ID,
			&booking.TrainerID,
			&booking.ClientID,
			&booking.Date,
			&booking.TimeSlot,
			&booking.ClientType,
			&booking.ArchivedAt,
			&booking.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, rows.Err()
}

// UpdateClient меняет клиента и тип посещения у существующего занятия
// (ручная запись через сетку расписания)
func (r *BookingRepository) UpdateClient(ctx context.Context, id uuid.UUID, clientID *uuid.UUID, clientType model.ClientType) error {
	query := `
		UPDATE bookings
		SET client_id = $2, client_type = $3
		WHERE id = $1
	`

	_, err := r.pool.Exec(ctx, query, id, clientID, clientType)
	if err != nil {
		return fmt.Errorf("update booking client: %w", err)
	}

	return nil
}

// Archive отменяет занятие. Строка остаётся в БД и продолжает держать
// естественный ключ, поэтому генерация недели её не пересоздаст.
func (r *BookingRepository) Archive(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE bookings
		SET archived_at = now()
		WHERE id = $1 AND archived_at IS NULL
	`

	_, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("archive booking: %w", err)
	}

	return nil
}
