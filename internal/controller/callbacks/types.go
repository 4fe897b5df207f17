package callbacks

import (
	"time"

	"github.com/aquacrm/swimschool_bot/internal/controller/state"
	"github.com/aquacrm/swimschool_bot/internal/service"
	"go.uber.org/zap"
)

// Handler содержит зависимости обработчиков inline кнопок
type Handler struct {
	Profiles  *service.ProfileService
	Trainers  *service.TrainerService
	Clients   *service.ClientService
	Schedule  *service.ScheduleService
	Templates *service.TemplateService
	Tasks     *service.TaskService
	State     *state.Manager
	Logger    *zap.Logger
	Now       func() time.Time // часы передаются явно, в тестах подменяются
}

// NewHandler создаёт обработчик callback query
func NewHandler(
	profiles *service.ProfileService,
	trainers *service.TrainerService,
	clients *service.ClientService,
	scheduleService *service.ScheduleService,
	templates *service.TemplateService,
	tasks *service.TaskService,
	stateManager *state.Manager,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Profiles:  profiles,
		Trainers:  trainers,
		Clients:   clients,
		Schedule:  scheduleService,
		Templates: templates,
		Tasks:     tasks,
		State:     stateManager,
		Logger:    logger,
		Now:       time.Now,
	}
}
