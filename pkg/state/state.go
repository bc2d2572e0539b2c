package state

import (
	"sync"
	"time"
)

// State represents the conversational state of a chat
type State string

const (
	// StateNormal is the normal state
	StateNormal State = "normal"
	// StateAddingItems is active while the user is listing pantry items
	StateAddingItems State = "adding_items"
	// StateImportingRecipe is active while the user is pasting recipe text
	StateImportingRecipe State = "importing_recipe"
)

// stateTTL is how long a non-normal state survives without activity
const stateTTL = 10 * time.Minute

type chatState struct {
	state     State
	timestamp time.Time
}

// Manager manages per-chat conversational states
type Manager struct {
	states map[int64]chatState
	mu     sync.Mutex
}

// New creates a new state manager
func New() *Manager {
	return &Manager{
		states: make(map[int64]chatState),
	}
}

// SetState sets the state for a chat
func (m *Manager) SetState(chatID int64, state State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[chatID] = chatState{
		state:     state,
		timestamp: time.Now(),
	}
}

// GetState gets the state for a chat; stale states decay to normal
func (m *Manager) GetState(chatID int64) State {
	m.mu.Lock()
	defer m.mu.Unlock()

	cs, ok := m.states[chatID]
	if !ok {
		return StateNormal
	}
	if time.Since(cs.timestamp) > stateTTL {
		delete(m.states, chatID)
		return StateNormal
	}
	return cs.state
}

// ClearState clears the state for a chat
func (m *Manager) ClearState(chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, chatID)
}
