package model

import (
	"time"

	"github.com/google/uuid"
)

// Trainer представляет тренера школы плавания
type Trainer struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Phone      *string    `json:"phone"`
	ArchivedAt *time.Time `json:"archived_at"` // nil - тренер активен
	CreatedAt  time.Time  `json:"created_at"`
}

// IsArchived проверяет, отправлен ли тренер в архив
func (t *Trainer) IsArchived() bool {
	return t.ArchivedAt != nil
}
