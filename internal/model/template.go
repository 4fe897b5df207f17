package model

import (
	"time"

	"github.com/google/uuid"
)

// WorkInterval представляет рабочий интервал тренера в недельном шаблоне.
// День недели: 0 = понедельник, 6 = воскресенье.
// Интервалы не редактируются на месте - удаляются и создаются заново.
type WorkInterval struct {
	ID        uuid.UUID `json:"id"`
	TrainerID uuid.UUID `json:"trainer_id"`
	DayOfWeek int       `json:"day_of_week"`
	StartTime string    `json:"start_time"` // "HH:MM" или "HH:MM:SS"
	EndTime   string    `json:"end_time"`
	CreatedAt time.Time `json:"created_at"`
}

// TemplateAssignment закрепляет клиента за слотом недельного шаблона.
// Уникально по (trainer_id, day_of_week, time_slot) - upsert по этому ключу.
type TemplateAssignment struct {
	ID         uuid.UUID  `json:"id"`
	TrainerID  uuid.UUID  `json:"trainer_id"`
	DayOfWeek  int        `json:"day_of_week"`
	TimeSlot   string     `json:"time_slot"`
	ClientID   uuid.UUID  `json:"client_id"`
	ClientType ClientType `json:"client_type"`
	CreatedAt  time.Time  `json:"created_at"`

	// Имя клиента из JOIN (не из таблицы закреплений)
	ClientName string `json:"client_name,omitempty"`
}
