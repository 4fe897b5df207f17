package state

import (
	"sync"
)

// Manager хранит состояния диалогов пользователей в памяти.
// Перезапуск бота сбрасывает незавершённые диалоги - это приемлемо,
// любой диалог начинается заново одной командой.
type Manager struct {
	mu       sync.RWMutex
	sessions map[int64]*Session // telegramID -> Session
}

// NewManager создаёт новый менеджер состояний
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[int64]*Session),
	}
}

// GetState получает текущий шаг диалога пользователя
func (sm *Manager) GetState(telegramID int64) DialogState {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if session, exists := sm.sessions[telegramID]; exists {
		return session.State
	}
	return StateNone
}

// SetState устанавливает шаг диалога пользователя
func (sm *Manager) SetState(telegramID int64, state DialogState) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if state == StateNone {
		delete(sm.sessions, telegramID)
		return
	}

	if session, exists := sm.sessions[telegramID]; exists {
		session.State = state
		return
	}
	sm.sessions[telegramID] = &Session{
		State: state,
		Data:  make(map[string]interface{}),
	}
}

// GetData получает накопленное значение диалога
func (sm *Manager) GetData(telegramID int64, key string) (interface{}, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if session, exists := sm.sessions[telegramID]; exists {
		value, ok := session.Data[key]
		return value, ok
	}
	return nil, false
}

// GetString получает строковое значение диалога ("" если нет)
func (sm *Manager) GetString(telegramID int64, key string) string {
	if value, ok := sm.GetData(telegramID, key); ok {
		if s, isString := value.(string); isString {
			return s
		}
	}
	return ""
}

// SetData сохраняет значение текущего диалога
func (sm *Manager) SetData(telegramID int64, key string, value interface{}) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if _, exists := sm.sessions[telegramID]; !exists {
		sm.sessions[telegramID] = &Session{
			State: StateNone,
			Data:  make(map[string]interface{}),
		}
	}
	sm.sessions[telegramID].Data[key] = value
}

// ResetState завершает диалог, сохраняя накопленные данные
// (например фильтр и поиск списка клиентов)
func (sm *Manager) ResetState(telegramID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if session, exists := sm.sessions[telegramID]; exists {
		session.State = StateNone
	}
}

// Clear очищает шаг и данные диалога пользователя
func (sm *Manager) Clear(telegramID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	delete(sm.sessions, telegramID)
}
