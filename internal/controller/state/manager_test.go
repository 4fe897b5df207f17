package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManagerStateLifecycle(t *testing.T) {
	m := NewManager()

	assert.Equal(t, StateNone, m.GetState(1))

	m.SetState(1, StateIntakeChildName)
	assert.Equal(t, StateIntakeChildName, m.GetState(1))

	// Состояния пользователей независимы
	assert.Equal(t, StateNone, m.GetState(2))

	m.Clear(1)
	assert.Equal(t, StateNone, m.GetState(1))
}

func TestManagerDataAccumulates(t *testing.T) {
	m := NewManager()

	m.SetState(1, StateIntakeChildName)
	m.SetData(1, KeyIntakeChildName, "Миша Иванов")
	m.SetData(1, KeyIntakeParentPhone, "+7 900")

	assert.Equal(t, "Миша Иванов", m.GetString(1, KeyIntakeChildName))
	assert.Equal(t, "+7 900", m.GetString(1, KeyIntakeParentPhone))
	assert.Equal(t, "", m.GetString(1, KeyIntakeTrainerID))

	m.Clear(1)
	assert.Equal(t, "", m.GetString(1, KeyIntakeChildName))
}

func TestSetStateNoneDropsSession(t *testing.T) {
	m := NewManager()

	m.SetState(1, StateSearchClient)
	m.SetData(1, KeyClientSearch, "Миша")

	m.SetState(1, StateNone)
	assert.Equal(t, StateNone, m.GetState(1))
	assert.Equal(t, "", m.GetString(1, KeyClientSearch))
}

func TestResetStateKeepsData(t *testing.T) {
	m := NewManager()

	m.SetState(1, StateSearchClient)
	m.SetData(1, KeyClientSearch, "Миша")
	m.SetData(1, KeyClientFilter, "all")

	// Диалог завершён, фильтр и поиск переживают его
	m.ResetState(1)
	assert.Equal(t, StateNone, m.GetState(1))
	assert.Equal(t, "Миша", m.GetString(1, KeyClientSearch))
	assert.Equal(t, "all", m.GetString(1, KeyClientFilter))
}

func TestSetDataWithoutState(t *testing.T) {
	m := NewManager()

	// Данные можно писать и вне диалога (фильтры списков)
	m.SetData(1, KeyClientFilter, "ходит")
	assert.Equal(t, StateNone, m.GetState(1))
	assert.Equal(t, "ходит", m.GetString(1, KeyClientFilter))
}
