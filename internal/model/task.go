package model

import (
	"time"

	"github.com/google/uuid"
)

type TaskStatus string

const (
	TaskStatusOpen TaskStatus = "open"
	TaskStatusDone TaskStatus = "done"
)

// Task представляет задачу администратора (перезвонить, напомнить об оплате)
type Task struct {
	ID        uuid.UUID  `json:"id"`
	ClientID  *uuid.UUID `json:"client_id"`
	DueDate   time.Time  `json:"due_date"`
	Text      string     `json:"text"`
	Status    TaskStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`

	// Имя клиента из JOIN
	ClientName string `json:"client_name,omitempty"`
}
