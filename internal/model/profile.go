package model

import (
	"time"

	"github.com/google/uuid"
)

type ProfileRole string

const (
	RoleAdmin   ProfileRole = "admin"
	RoleTrainer ProfileRole = "trainer"
)

// Profile привязывает Telegram-аккаунт к роли в CRM.
// Пользователи без профиля видят только публичную запись (/book).
type Profile struct {
	ID         uuid.UUID   `json:"id"`
	TelegramID int64       `json:"telegram_id"`
	Role       ProfileRole `json:"role"`
	TrainerID  *uuid.UUID  `json:"trainer_id"` // для роли trainer - свой тренер
	CreatedAt  time.Time   `json:"created_at"`
}

// IsAdmin проверяет административную роль
func (p *Profile) IsAdmin() bool {
	return p.Role == RoleAdmin
}
