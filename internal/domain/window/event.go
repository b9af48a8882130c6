package window

import (
	"time"

	"github.com/GriffinCanCode/LexOS/backend/internal/shared/types"
)

// EventType identifies a window state transition
type EventType string

const (
	EventOpened    EventType = "opened"
	EventRestored  EventType = "restored"
	EventMinimized EventType = "minimized"
	EventClosed    EventType = "closed"
	EventCleared   EventType = "cleared"
)

// Event describes a state change together with the resulting snapshot.
// Seq increases by one per change. WindowID is empty for EventCleared.
type Event struct {
	Seq      uint64            `json:"seq"`
	Type     EventType         `json:"type"`
	WindowID string            `json:"window_id,omitempty"`
	Windows  []types.Window    `json:"windows"`
	Stats    types.WindowStats `json:"stats"`
	At       time.Time         `json:"at"`
}

// Snapshot is a consistent view of the collection at sequence Seq
type Snapshot struct {
	Windows []types.Window    `json:"windows"`
	Stats   types.WindowStats `json:"stats"`
	Seq     uint64            `json:"seq"`
}

// Subscribe registers fn to be called after every state change.
// No-op calls produce no event. Events are delivered one at a time in Seq
// order; fn runs before the mutating call returns and must not call
// mutating methods. The returned function unregisters fn.
func (m *Manager) Subscribe(fn func(Event)) (cancel func()) {
	m.subMu.Lock()
	m.nextSubID++
	id := m.nextSubID
	m.subscribers = append(m.subscribers, subscriber{id: id, fn: fn})
	m.subMu.Unlock()

	return func() {
		m.subMu.Lock()
		defer m.subMu.Unlock()
		for i, s := range m.subscribers {
			if s.id == id {
				m.subscribers = append(m.subscribers[:i:i], m.subscribers[i+1:]...)
				return
			}
		}
	}
}

// publish delivers an event outside the collection lock (must hold pubMu)
func (m *Manager) publish(e Event) {
	m.subMu.RLock()
	subs := make([]subscriber, len(m.subscribers))
	copy(subs, m.subscribers)
	m.subMu.RUnlock()

	for _, s := range subs {
		s.fn(e)
	}
}
