package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/aquacrm/swimschool_bot/internal/model"
	"github.com/aquacrm/swimschool_bot/internal/schedule"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ClientStore хранилище клиентов
type ClientStore interface {
	ClientLookup
	Create(ctx context.Context, client *model.Client) error
	List(ctx context.Context, status *model.ClientStatus, search string) ([]*model.Client, error)
	Update(ctx context.Context, client *model.Client) error
	SetStatus(ctx context.Context, id uuid.UUID, status model.ClientStatus) error
	Archive(ctx context.Context, id uuid.UUID) error
}

// ClientBookings доступ к занятиям клиента для карточки
type ClientBookings interface {
	ListUpcomingByClient(ctx context.Context, clientID uuid.UUID, from time.Time) ([]*model.Booking, error)
}

// ClientService управляет клиентами: карточки, воронка статусов,
// онлайн-заявки с публичной записи и выгрузка CSV
type ClientService struct {
	clients  ClientStore
	bookings ClientBookings
	logger   *zap.Logger
}

// NewClientService создаёт новый сервис клиентов
func NewClientService(clients ClientStore, bookings ClientBookings, logger *zap.Logger) *ClientService {
	return &ClientService{
		clients:  clients,
		bookings: bookings,
		logger:   logger,
	}
}

// List получает клиентов с фильтром по статусу и поиском
func (s *ClientService) List(ctx context.Context, status *model.ClientStatus, search string) ([]*model.Client, error) {
	return s.clients.List(ctx, status, strings.TrimSpace(search))
}

// GetByID получает клиента по ID
func (s *ClientService) GetByID(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	return s.clients.GetByID(ctx, id)
}

// Create создаёт клиента вручную (администратором)
func (s *ClientService) Create(ctx context.Context, client *model.Client) error {
	if strings.TrimSpace(client.ChildFullName) == "" {
		return ErrMissingRequired
	}
	if client.Status == "" {
		client.Status = model.ClientStatusSignedUp
	}

	if err := s.clients.Create(ctx, client); err != nil {
		return fmt.Errorf("create client: %w", err)
	}

	s.logger.Info("Client created",
		zap.Stringer("client_id", client.ID),
		zap.String("name", client.ChildFullName),
	)

	return nil
}

// IntakeForm заявка с публичной онлайн-записи
type IntakeForm struct {
	ChildName        string
	ParentName       string
	ParentPhone      string
	BirthDate        *time.Time
	SubscriptionType string
	TrainerID        *uuid.UUID
	Comment          string
}

// RegisterOnline создаёт клиента из онлайн-заявки: статус "записался",
// комментарий помечается источником, чтобы администратор отличал заявки
// с сайта от ручного ввода
func (s *ClientService) RegisterOnline(ctx context.Context, form IntakeForm) (*model.Client, error) {
	childName := strings.TrimSpace(form.ChildName)
	phone := strings.TrimSpace(form.ParentPhone)
	if childName == "" || phone == "" {
		return nil, ErrMissingRequired
	}

	comment := "[Онлайн-запись]"
	if c := strings.TrimSpace(form.Comment); c != "" {
		comment = "[Онлайн-запись] " + c
	}

	client := &model.Client{
		ChildFullName:     childName,
		ParentPhone:       &phone,
		Status:            model.ClientStatusSignedUp,
		Comment:           &comment,
		AssignedTrainerID: form.TrainerID,
		BirthDate:         form.BirthDate,
	}
	if name := strings.TrimSpace(form.ParentName); name != "" {
		client.ParentName = &name
	}
	if form.SubscriptionType != "" {
		sub := form.SubscriptionType
		client.SubscriptionType = &sub
	}

	if err := s.clients.Create(ctx, client); err != nil {
		return nil, fmt.Errorf("create client from intake: %w", err)
	}

	s.logger.Info("Online intake registered",
		zap.Stringer("client_id", client.ID),
		zap.String("name", client.ChildFullName),
	)

	return client, nil
}

// Update обновляет карточку клиента
func (s *ClientService) Update(ctx context.Context, client *model.Client) error {
	existing, err := s.clients.GetByID(ctx, client.ID)
	if err != nil {
		return fmt.Errorf("get client: %w", err)
	}
	if existing == nil {
		return ErrClientNotFound
	}

	if err := s.clients.Update(ctx, client); err != nil {
		return fmt.Errorf("update client: %w", err)
	}

	return nil
}

// SetStatus переводит клиента в другой статус воронки
func (s *ClientService) SetStatus(ctx context.Context, id uuid.UUID, status model.ClientStatus) error {
	client, err := s.clients.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get client: %w", err)
	}
	if client == nil {
		return ErrClientNotFound
	}

	if err := s.clients.SetStatus(ctx, id, status); err != nil {
		return fmt.Errorf("set status: %w", err)
	}

	s.logger.Info("Client status changed",
		zap.Stringer("client_id", id),
		zap.String("status", string(status)),
	)

	return nil
}

// Archive отправляет клиента в архив
func (s *ClientService) Archive(ctx context.Context, id uuid.UUID) error {
	if err := s.clients.Archive(ctx, id); err != nil {
		return fmt.Errorf("archive client: %w", err)
	}
	return nil
}

// UpcomingBookings получает будущие занятия клиента начиная с даты from
func (s *ClientService) UpcomingBookings(ctx context.Context, clientID uuid.UUID, from time.Time) ([]*model.Booking, error) {
	return s.bookings.ListUpcomingByClient(ctx, clientID, from)
}

// ExportCSV выгружает всех неархивных клиентов в CSV для отчётности
func (s *ClientService) ExportCSV(ctx context.Context) ([]byte, error) {
	clients, err := s.clients.List(ctx, nil, "")
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"Ребёнок", "Родитель", "Телефон", "Дата рождения", "Абонемент", "Статус", "Комментарий", "Добавлен"}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	deref := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}

	for _, c := range clients {
		birthDate := ""
		if c.BirthDate != nil {
			birthDate = schedule.FormatDate(*c.BirthDate)
		}

		record := []string{
			c.ChildFullName,
			deref(c.ParentName),
			deref(c.ParentPhone),
			birthDate,
			deref(c.SubscriptionType),
			string(c.Status),
			deref(c.Comment),
			schedule.FormatDate(c.CreatedAt),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write csv record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}

	return buf.Bytes(), nil
}
