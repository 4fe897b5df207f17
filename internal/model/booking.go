package model

import (
	"time"

	"github.com/google/uuid"
)

// Booking представляет занятие в расписании на конкретную дату.
// Естественный ключ - (trainer_id, date, time_slot), он защищён
// уникальным индексом в БД. Слот без клиента (ClientID == nil) -
// открытое окно, в которое можно записать клиента вручную.
type Booking struct {
	ID         uuid.UUID  `json:"id"`
	TrainerID  uuid.UUID  `json:"trainer_id"`
	ClientID   *uuid.UUID `json:"client_id"`
	Date       time.Time  `json:"date"`      // только дата, время занятия в TimeSlot
	TimeSlot   string     `json:"time_slot"` // "HH:MM" или "HH:MM:SS" - колонка исторически принимает оба вида
	ClientType ClientType `json:"client_type"`
	ArchivedAt *time.Time `json:"archived_at"` // отменённые занятия остаются в БД
	CreatedAt  time.Time  `json:"created_at"`

	// Дополнительные поля для удобства (не из БД)
	Client  *Client  `json:"client,omitempty"`
	Trainer *Trainer `json:"trainer,omitempty"`
}

// IsArchived проверяет, отменено ли занятие
func (b *Booking) IsArchived() bool {
	return b.ArchivedAt != nil
}
