package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aquacrm/swimschool_bot/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TaskStore хранилище задач
type TaskStore interface {
	Create(ctx context.Context, task *model.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error)
	List(ctx context.Context, onlyOpen bool) ([]*model.Task, error)
	SetStatus(ctx context.Context, id uuid.UUID, status model.TaskStatus) error
}

// TaskService управляет задачами администратора
type TaskService struct {
	tasks  TaskStore
	logger *zap.Logger
}

// NewTaskService создаёт новый сервис задач
func NewTaskService(tasks TaskStore, logger *zap.Logger) *TaskService {
	return &TaskService{tasks: tasks, logger: logger}
}

// List получает задачи, по умолчанию только открытые
func (s *TaskService) List(ctx context.Context, onlyOpen bool) ([]*model.Task, error) {
	return s.tasks.List(ctx, onlyOpen)
}

// Create создаёт задачу с необязательной привязкой к клиенту
func (s *TaskService) Create(ctx context.Context, text string, dueDate time.Time, clientID *uuid.UUID) (*model.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrMissingRequired
	}

	task := &model.Task{
		Text:     text,
		DueDate:  dueDate,
		ClientID: clientID,
		Status:   model.TaskStatusOpen,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	return task, nil
}

// Toggle переключает статус задачи open <-> done
func (s *TaskService) Toggle(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	if task == nil {
		return nil, ErrTaskNotFound
	}

	newStatus := model.TaskStatusDone
	if task.Status == model.TaskStatusDone {
		newStatus = model.TaskStatusOpen
	}

	if err := s.tasks.SetStatus(ctx, id, newStatus); err != nil {
		return nil, fmt.Errorf("set task status: %w", err)
	}
	task.Status = newStatus

	s.logger.Info("Task toggled",
		zap.Stringer("task_id", id),
		zap.String("status", string(newStatus)),
	)

	return task, nil
}
