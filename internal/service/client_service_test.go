package service

import (
	"context"
	"strings"
	"testing"

	"github.com/aquacrm/swimschool_bot/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRegisterOnline(t *testing.T) {
	clients := newFakeClientStore()
	svc := NewClientService(clients, newFakeBookingStore(), zap.NewNop())
	ctx := context.Background()

	client, err := svc.RegisterOnline(ctx, IntakeForm{
		ChildName:   "  Миша Иванов ",
		ParentName:  "Ольга",
		ParentPhone: "+79990001122",
		Comment:     "после 17:00",
	})
	require.NoError(t, err)

	assert.Equal(t, "Миша Иванов", client.ChildFullName)
	assert.Equal(t, model.ClientStatusSignedUp, client.Status)
	require.NotNil(t, client.Comment)
	assert.Equal(t, "[Онлайн-запись] после 17:00", *client.Comment)

	// Без комментария остаётся только пометка источника
	client, err = svc.RegisterOnline(ctx, IntakeForm{ChildName: "Катя", ParentPhone: "+79990001123"})
	require.NoError(t, err)
	require.NotNil(t, client.Comment)
	assert.Equal(t, "[Онлайн-запись]", *client.Comment)
}

func TestRegisterOnlineRequiresNameAndPhone(t *testing.T) {
	svc := NewClientService(newFakeClientStore(), newFakeBookingStore(), zap.NewNop())
	ctx := context.Background()

	_, err := svc.RegisterOnline(ctx, IntakeForm{ChildName: "Миша"})
	assert.ErrorIs(t, err, ErrMissingRequired)

	_, err = svc.RegisterOnline(ctx, IntakeForm{ParentPhone: "+79990001122"})
	assert.ErrorIs(t, err, ErrMissingRequired)
}

func TestUpdateClient(t *testing.T) {
	clients := newFakeClientStore()
	svc := NewClientService(clients, newFakeBookingStore(), zap.NewNop())
	ctx := context.Background()

	client := &model.Client{
		ChildFullName: "Миша Иванов",
		Status:        model.ClientStatusSignedUp,
	}
	require.NoError(t, svc.Create(ctx, client))

	phone := "+79990001122"
	client.ChildFullName = "Миша Петров"
	client.ParentPhone = &phone
	require.NoError(t, svc.Update(ctx, client))

	got, err := svc.GetByID(ctx, client.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Миша Петров", got.ChildFullName)
	require.NotNil(t, got.ParentPhone)
	assert.Equal(t, phone, *got.ParentPhone)

	err = svc.Update(ctx, &model.Client{ID: uuid.New(), ChildFullName: "Нет такого"})
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestListClientsSearch(t *testing.T) {
	phone := "+79990001122"
	clients := newFakeClientStore()
	svc := NewClientService(clients, newFakeBookingStore(), zap.NewNop())
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, &model.Client{
		ChildFullName: "Миша Иванов",
		ParentPhone:   &phone,
		Status:        model.ClientStatusActive,
	}))
	require.NoError(t, svc.Create(ctx, &model.Client{
		ChildFullName: "Катя Смирнова",
		Status:        model.ClientStatusSignedUp,
	}))

	// Поиск по имени без учёта регистра
	found, err := svc.List(ctx, nil, "миша")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Миша Иванов", found[0].ChildFullName)

	// Поиск по части телефона
	found, err = svc.List(ctx, nil, "0001122")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Миша Иванов", found[0].ChildFullName)

	// Фильтр по статусу отсекает несовпавших
	active := model.ClientStatusActive
	found, err = svc.List(ctx, &active, "Катя")
	require.NoError(t, err)
	assert.Empty(t, found)

	found, err = svc.List(ctx, nil, "нет такого")
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestSetStatusUnknownClient(t *testing.T) {
	svc := NewClientService(newFakeClientStore(), newFakeBookingStore(), zap.NewNop())

	err := svc.SetStatus(context.Background(), uuid.New(), model.ClientStatusActive)
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestExportCSV(t *testing.T) {
	phone := "+79990001122"
	clients := newFakeClientStore()
	svc := NewClientService(clients, newFakeBookingStore(), zap.NewNop())
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, &model.Client{
		ChildFullName: "Миша Иванов",
		ParentPhone:   &phone,
		Status:        model.ClientStatusActive,
	}))

	data, err := svc.ExportCSV(ctx)
	require.NoError(t, err)

	out := string(data)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Ребёнок")
	assert.Contains(t, lines[1], "Миша Иванов")
	assert.Contains(t, lines[1], phone)
	assert.Contains(t, lines[1], "ходит")
}
