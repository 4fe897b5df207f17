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

func TestCreateTrainer(t *testing.T) {
	store := newFakeTrainerStore()
	svc := NewTrainerService(store, zap.NewNop())
	ctx := context.Background()

	trainer, err := svc.Create(ctx, "  Анна Иванова  ", "+7 900 000-00-00")
	require.NoError(t, err)
	assert.Equal(t, "Анна Иванова", trainer.Name)
	require.NotNil(t, trainer.Phone)
	assert.Equal(t, "+7 900 000-00-00", *trainer.Phone)

	// Телефон необязателен
	trainer, err = svc.Create(ctx, "Борис", "")
	require.NoError(t, err)
	assert.Nil(t, trainer.Phone)

	_, err = svc.Create(ctx, "   ", "")
	assert.ErrorIs(t, err, ErrMissingRequired)
}

func TestSetArchivedHidesFromActiveList(t *testing.T) {
	store := newFakeTrainerStore()
	svc := NewTrainerService(store, zap.NewNop())
	ctx := context.Background()

	trainer, err := svc.Create(ctx, "Анна", "")
	require.NoError(t, err)

	require.NoError(t, svc.SetArchived(ctx, trainer.ID, true))

	active, err := svc.List(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := svc.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	// Возврат из архива
	require.NoError(t, svc.SetArchived(ctx, trainer.ID, false))
	active, err = svc.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	err = svc.SetArchived(ctx, uuid.New(), true)
	assert.ErrorIs(t, err, ErrTrainerNotFound)
}

func TestUpdateTrainer(t *testing.T) {
	store := newFakeTrainerStore()
	svc := NewTrainerService(store, zap.NewNop())
	ctx := context.Background()

	trainer, err := svc.Create(ctx, "Анна", "+7 900")
	require.NoError(t, err)

	// Пустой телефон стирает сохранённый
	require.NoError(t, svc.Update(ctx, trainer.ID, "Анна Петрова", ""))
	updated, err := svc.GetByID(ctx, trainer.ID)
	require.NoError(t, err)
	assert.Equal(t, "Анна Петрова", updated.Name)
	assert.Nil(t, updated.Phone)

	err = svc.Update(ctx, trainer.ID, "", "")
	assert.ErrorIs(t, err, ErrMissingRequired)

	err = svc.Update(ctx, uuid.New(), "Кто-то", "")
	assert.ErrorIs(t, err, ErrTrainerNotFound)
}

func TestTrainerModelArchived(t *testing.T) {
	trainer := &model.Trainer{ID: uuid.New(), Name: "Анна"}
	assert.False(t, trainer.IsArchived())
}
