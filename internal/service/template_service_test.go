package service

import (
	"context"
	"testing"

	"github.com/aquacrm/swimschool_bot/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestTemplateService(trainer *model.Trainer, templates *fakeTemplateStore, clients *fakeClientStore) *TemplateService {
	return NewTemplateService(newFakeTrainerStore(trainer), templates, clients, zap.NewNop())
}

func TestAddIntervalValidation(t *testing.T) {
	trainer := &model.Trainer{ID: uuid.New(), Name: "Анна"}
	templates := &fakeTemplateStore{}
	svc := newTestTemplateService(trainer, templates, newFakeClientStore())
	ctx := context.Background()

	_, err := svc.AddInterval(ctx, trainer.ID, 0, "09:00", "08:00")
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = svc.AddInterval(ctx, trainer.ID, 0, "09:00", "09:00")
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = svc.AddInterval(ctx, trainer.ID, 7, "08:00", "09:00")
	assert.ErrorIs(t, err, ErrInvalidDay)

	_, err = svc.AddInterval(ctx, uuid.New(), 0, "08:00", "09:00")
	assert.ErrorIs(t, err, ErrTrainerNotFound)

	assert.Empty(t, templates.intervals)

	// Время с секундами нормализуется при сохранении
	interval, err := svc.AddInterval(ctx, trainer.ID, 0, "08:00:00", "12:00:00")
	require.NoError(t, err)
	assert.Equal(t, "08:00", interval.StartTime)
	assert.Equal(t, "12:00", interval.EndTime)
}

func TestPinClientUpsertsOnSameSlot(t *testing.T) {
	trainer := &model.Trainer{ID: uuid.New(), Name: "Анна"}
	clientA := &model.Client{ID: uuid.New(), ChildFullName: "Миша", Status: model.ClientStatusActive}
	clientB := &model.Client{ID: uuid.New(), ChildFullName: "Катя", Status: model.ClientStatusActive}
	templates := &fakeTemplateStore{}
	svc := newTestTemplateService(trainer, templates, newFakeClientStore(clientA, clientB))
	ctx := context.Background()

	_, err := svc.PinClient(ctx, trainer.ID, 1, "08:00", clientA.ID, model.ClientTypeRegular)
	require.NoError(t, err)

	// Повторное закрепление того же слота перезаписывает клиента
	_, err = svc.PinClient(ctx, trainer.ID, 1, "08:00", clientB.ID, model.ClientTypeSubscription)
	require.NoError(t, err)

	require.Len(t, templates.assignments, 1)
	assert.Equal(t, clientB.ID, templates.assignments[0].ClientID)
	assert.Equal(t, model.ClientTypeSubscription, templates.assignments[0].ClientType)

	// Другой слот - отдельное закрепление
	_, err = svc.PinClient(ctx, trainer.ID, 1, "08:30", clientA.ID, model.ClientTypeRegular)
	require.NoError(t, err)
	assert.Len(t, templates.assignments, 2)
}

func TestPinClientValidation(t *testing.T) {
	trainer := &model.Trainer{ID: uuid.New(), Name: "Анна"}
	templates := &fakeTemplateStore{}
	svc := newTestTemplateService(trainer, templates, newFakeClientStore())
	ctx := context.Background()

	_, err := svc.PinClient(ctx, trainer.ID, 1, "08:00", uuid.New(), model.ClientTypeRegular)
	assert.ErrorIs(t, err, ErrClientNotFound)

	_, err = svc.PinClient(ctx, trainer.ID, -1, "08:00", uuid.New(), model.ClientTypeRegular)
	assert.ErrorIs(t, err, ErrInvalidDay)

	assert.Empty(t, templates.assignments)
}

func TestPinClientDefaultsType(t *testing.T) {
	trainer := &model.Trainer{ID: uuid.New(), Name: "Анна"}
	client := &model.Client{ID: uuid.New(), ChildFullName: "Миша", Status: model.ClientStatusActive}
	templates := &fakeTemplateStore{}
	svc := newTestTemplateService(trainer, templates, newFakeClientStore(client))

	assignment, err := svc.PinClient(context.Background(), trainer.ID, 2, "10:00:00", client.ID, "")
	require.NoError(t, err)
	assert.Equal(t, model.ClientTypeRegular, assignment.ClientType)
	assert.Equal(t, "10:00", assignment.TimeSlot)
}

func TestGetTemplate(t *testing.T) {
	trainer := &model.Trainer{ID: uuid.New(), Name: "Анна"}
	client := &model.Client{ID: uuid.New(), ChildFullName: "Миша", Status: model.ClientStatusActive}
	templates := &fakeTemplateStore{}
	svc := newTestTemplateService(trainer, templates, newFakeClientStore(client))
	ctx := context.Background()

	_, err := svc.AddInterval(ctx, trainer.ID, 0, "08:00", "12:00")
	require.NoError(t, err)
	_, err = svc.PinClient(ctx, trainer.ID, 0, "08:00", client.ID, model.ClientTypeRegular)
	require.NoError(t, err)

	tpl, err := svc.GetTemplate(ctx, trainer.ID)
	require.NoError(t, err)
	assert.Equal(t, trainer.ID, tpl.Trainer.ID)
	assert.Len(t, tpl.Intervals, 1)
	assert.Len(t, tpl.Assignments, 1)

	_, err = svc.GetTemplate(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrTrainerNotFound)
}
