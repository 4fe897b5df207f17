package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/aquacrm/swimschool_bot/internal/model"
	"github.com/aquacrm/swimschool_bot/internal/schedule"
	"github.com/google/uuid"
)

// In-memory фейки хранилищ для тестов сервисов. Ключ бронирования
// нормализует слот до "HH:MM" - так же, как уникальный индекс в БД
// нормализует через left(time_slot, 5).

type fakeTrainerStore struct {
	trainers map[uuid.UUID]*model.Trainer
}

func newFakeTrainerStore(trainers ...*model.Trainer) *fakeTrainerStore {
	s := &fakeTrainerStore{trainers: make(map[uuid.UUID]*model.Trainer)}
	for _, t := range trainers {
		s.trainers[t.ID] = t
	}
	return s
}

func (s *fakeTrainerStore) GetByID(_ context.Context, id uuid.UUID) (*model.Trainer, error) {
	return s.trainers[id], nil
}

func (s *fakeTrainerStore) List(_ context.Context, includeArchived bool) ([]*model.Trainer, error) {
	var out []*model.Trainer
	for _, t := range s.trainers {
		if includeArchived || !t.IsArchived() {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *fakeTrainerStore) Create(_ context.Context, trainer *model.Trainer) error {
	trainer.ID = uuid.New()
	trainer.CreatedAt = time.Now()
	s.trainers[trainer.ID] = trainer
	return nil
}

func (s *fakeTrainerStore) Update(_ context.Context, trainer *model.Trainer) error {
	s.trainers[trainer.ID] = trainer
	return nil
}

func (s *fakeTrainerStore) SetArchived(_ context.Context, id uuid.UUID, archived bool) error {
	t, ok := s.trainers[id]
	if !ok {
		return nil
	}
	if archived {
		now := time.Now()
		t.ArchivedAt = &now
	} else {
		t.ArchivedAt = nil
	}
	return nil
}

type fakeTemplateStore struct {
	intervals   []*model.WorkInterval
	assignments []*model.TemplateAssignment
}

func (s *fakeTemplateStore) GetIntervals(_ context.Context, trainerID uuid.UUID) ([]*model.WorkInterval, error) {
	var out []*model.WorkInterval
	for _, iv := range s.intervals {
		if iv.TrainerID == trainerID {
			out = append(out, iv)
		}
	}
	return out, nil
}

func (s *fakeTemplateStore) GetAssignments(_ context.Context, trainerID uuid.UUID) ([]*model.TemplateAssignment, error) {
	var out []*model.TemplateAssignment
	for _, a := range s.assignments {
		if a.TrainerID == trainerID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *fakeTemplateStore) CreateInterval(_ context.Context, interval *model.WorkInterval) error {
	interval.ID = uuid.New()
	interval.CreatedAt = time.Now()
	s.intervals = append(s.intervals, interval)
	return nil
}

func (s *fakeTemplateStore) DeleteInterval(_ context.Context, id uuid.UUID) error {
	for i, iv := range s.intervals {
		if iv.ID == id {
			s.intervals = append(s.intervals[:i], s.intervals[i+1:]...)
			return nil
		}
	}
	return nil
}

// UpsertAssignment повторяет семантику ON CONFLICT DO UPDATE по ключу
// (trainer_id, day_of_week, нормализованный слот)
func (s *fakeTemplateStore) UpsertAssignment(_ context.Context, assignment *model.TemplateAssignment) error {
	for _, a := range s.assignments {
		if a.TrainerID == assignment.TrainerID &&
			a.DayOfWeek == assignment.DayOfWeek &&
			schedule.NormalizeSlot(a.TimeSlot) == schedule.NormalizeSlot(assignment.TimeSlot) {
			a.ClientID = assignment.ClientID
			a.ClientType = assignment.ClientType
			assignment.ID = a.ID
			return nil
		}
	}
	assignment.ID = uuid.New()
	assignment.CreatedAt = time.Now()
	s.assignments = append(s.assignments, assignment)
	return nil
}

func (s *fakeTemplateStore) DeleteAssignment(_ context.Context, id uuid.UUID) error {
	for i, a := range s.assignments {
		if a.ID == id {
			s.assignments = append(s.assignments[:i], s.assignments[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeBookingStore struct {
	mu       sync.Mutex
	byKey    map[string]*model.Booking
	inserted []*model.Booking
	failOn   map[string]error // ключ -> ошибка вместо вставки
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{
		byKey:  make(map[string]*model.Booking),
		failOn: make(map[string]error),
	}
}

func bookingKey(trainerID uuid.UUID, date time.Time, timeSlot string) string {
	return fmt.Sprintf("%s|%s|%s", trainerID, schedule.FormatDate(date), schedule.NormalizeSlot(timeSlot))
}

func (s *fakeBookingStore) seed(b *model.Booking) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	s.byKey[bookingKey(b.TrainerID, b.Date, b.TimeSlot)] = b
}

func (s *fakeBookingStore) InsertIfAbsent(_ context.Context, booking *model.Booking) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := bookingKey(booking.TrainerID, booking.Date, booking.TimeSlot)
	if err, ok := s.failOn[key]; ok {
		return false, err
	}
	if _, exists := s.byKey[key]; exists {
		return false, nil
	}

	booking.ID = uuid.New()
	booking.CreatedAt = time.Now()
	s.byKey[key] = booking
	s.inserted = append(s.inserted, booking)
	return true, nil
}

func (s *fakeBookingStore) GetByID(_ context.Context, id uuid.UUID) (*model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.byKey {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, nil
}

func (s *fakeBookingStore) ListRange(_ context.Context, from, to time.Time, excludeArchived bool) ([]*model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*model.Booking
	for _, b := range s.byKey {
		if b.Date.Before(from) || b.Date.After(to) {
			continue
		}
		if excludeArchived && b.IsArchived() {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (s *fakeBookingStore) ListUpcomingByClient(_ context.Context, clientID uuid.UUID, from time.Time) ([]*model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*model.Booking
	for _, b := range s.byKey {
		if b.ClientID != nil && *b.ClientID == clientID && !b.Date.Before(from) && !b.IsArchived() {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *fakeBookingStore) UpdateClient(_ context.Context, id uuid.UUID, clientID *uuid.UUID, clientType model.ClientType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.byKey {
		if b.ID == id {
			b.ClientID = clientID
			b.ClientType = clientType
			return nil
		}
	}
	return fmt.Errorf("booking %s not found", id)
}

func (s *fakeBookingStore) Archive(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.byKey {
		if b.ID == id && b.ArchivedAt == nil {
			now := time.Now()
			b.ArchivedAt = &now
			return nil
		}
	}
	return nil
}

type fakeTaskStore struct {
	tasks []*model.Task
}

func (s *fakeTaskStore) Create(_ context.Context, task *model.Task) error {
	task.ID = uuid.New()
	task.CreatedAt = time.Now()
	s.tasks = append(s.tasks, task)
	return nil
}

func (s *fakeTaskStore) GetByID(_ context.Context, id uuid.UUID) (*model.Task, error) {
	for _, t := range s.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, nil
}

func (s *fakeTaskStore) List(_ context.Context, onlyOpen bool) ([]*model.Task, error) {
	var out []*model.Task
	for _, t := range s.tasks {
		if onlyOpen && t.Status != model.TaskStatusOpen {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (s *fakeTaskStore) SetStatus(_ context.Context, id uuid.UUID, status model.TaskStatus) error {
	for _, t := range s.tasks {
		if t.ID == id {
			t.Status = status
		}
	}
	return nil
}

type fakeClientStore struct {
	clients map[uuid.UUID]*model.Client
}

func newFakeClientStore(clients ...*model.Client) *fakeClientStore {
	s := &fakeClientStore{clients: make(map[uuid.UUID]*model.Client)}
	for _, c := range clients {
		s.clients[c.ID] = c
	}
	return s
}

func (s *fakeClientStore) GetByID(_ context.Context, id uuid.UUID) (*model.Client, error) {
	return s.clients[id], nil
}

func (s *fakeClientStore) Create(_ context.Context, client *model.Client) error {
	client.ID = uuid.New()
	client.CreatedAt = time.Now()
	s.clients[client.ID] = client
	return nil
}

// List повторяет поиск репозитория: имя ребёнка через ILIKE,
// телефон родителя через LIKE
func (s *fakeClientStore) List(_ context.Context, status *model.ClientStatus, search string) ([]*model.Client, error) {
	var out []*model.Client
	for _, c := range s.clients {
		if c.ArchivedAt != nil {
			continue
		}
		if status != nil && c.Status != *status {
			continue
		}
		if search != "" && !clientMatches(c, search) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func clientMatches(c *model.Client, search string) bool {
	if strings.Contains(strings.ToLower(c.ChildFullName), strings.ToLower(search)) {
		return true
	}
	return c.ParentPhone != nil && strings.Contains(*c.ParentPhone, search)
}

func (s *fakeClientStore) Update(_ context.Context, client *model.Client) error {
	s.clients[client.ID] = client
	return nil
}

func (s *fakeClientStore) SetStatus(_ context.Context, id uuid.UUID, status model.ClientStatus) error {
	if c, ok := s.clients[id]; ok {
		c.Status = status
	}
	return nil
}

func (s *fakeClientStore) Archive(_ context.Context, id uuid.UUID) error {
	if c, ok := s.clients[id]; ok {
		now := time.Now()
		c.ArchivedAt = &now
	}
	return nil
}
