package handlers

import (
	"time"

	"github.com/aquacrm/swimschool_bot/internal/controller/callbacks"
	"github.com/aquacrm/swimschool_bot/internal/controller/state"
	"github.com/aquacrm/swimschool_bot/internal/service"
	"go.uber.org/zap"
)

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	profiles     *service.ProfileService
	trainers     *service.TrainerService
	clients      *service.ClientService
	schedule     *service.ScheduleService
	templates    *service.TemplateService
	tasks        *service.TaskService
	screens      *callbacks.Handler
	stateManager *state.Manager
	logger       *zap.Logger
	now          func() time.Time
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	profiles *service.ProfileService,
	trainers *service.TrainerService,
	clients *service.ClientService,
	scheduleService *service.ScheduleService,
	templates *service.TemplateService,
	tasks *service.TaskService,
	screens *callbacks.Handler,
	stateManager *state.Manager,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		profiles:     profiles,
		trainers:     trainers,
		clients:      clients,
		schedule:     scheduleService,
		templates:    templates,
		tasks:        tasks,
		screens:      screens,
		stateManager: stateManager,
		logger:       logger,
		now:          time.Now,
	}
}
