package window

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/LexOS/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/LexOS/backend/internal/shared/types"
)

// ErrInvalidArgument is returned when an operation receives a structurally invalid id
var ErrInvalidArgument = errors.New("invalid argument")

// Manager owns the set of open windows and mediates their lifecycle
type Manager struct {
	// pubMu is held by every mutation until its event has been delivered,
	// so observers see events in the order the changes were applied.
	// Lock order: pubMu, then mu.
	pubMu sync.Mutex

	mu      sync.RWMutex
	windows []*types.Window          // Protected by mu, open order
	byID    map[string]*types.Window // Protected by mu
	seq     uint64                   // Protected by mu, last event sequence

	subMu       sync.RWMutex
	subscribers []subscriber // Protected by subMu
	nextSubID   uint64       // Protected by subMu

	metrics *monitoring.Metrics
	logger  *zap.Logger
	now     func() time.Time
}

type subscriber struct {
	id uint64
	fn func(Event)
}

// NewManager creates an empty window manager
func NewManager() *Manager {
	return &Manager{
		byID:   make(map[string]*types.Window),
		logger: zap.NewNop(),
		now:    time.Now,
	}
}

// WithMetrics adds metrics tracking to the manager
func (m *Manager) WithMetrics(metrics *monitoring.Metrics) *Manager {
	m.metrics = metrics
	return m
}

// WithLogger sets the logger used for transition logs
func (m *Manager) WithLogger(logger *zap.Logger) *Manager {
	if logger != nil {
		m.logger = logger.Named("window")
	}
	return m
}

// Open creates a window for an unseen id, restores a minimized one,
// and leaves a visible one untouched.
func (m *Manager) Open(id, title string, icon types.Icon, content types.Content) error {
	_, err := m.OpenWindow(id, title, icon, content)
	return err
}

// OpenWindow is Open returning a copy of the resulting window, taken under
// the same lock as the change.
func (m *Manager) OpenWindow(id, title string, icon types.Icon, content types.Content) (types.Window, error) {
	if strings.TrimSpace(id) == "" {
		return types.Window{}, fmt.Errorf("open window: empty id: %w", ErrInvalidArgument)
	}

	m.pubMu.Lock()
	defer m.pubMu.Unlock()

	m.mu.Lock()
	var evt EventType
	w, ok := m.byID[id]
	if ok {
		if !w.IsMinimized {
			out := *w
			m.mu.Unlock()
			return out, nil
		}
		w.IsMinimized = false
		evt = EventRestored
	} else {
		w = &types.Window{
			ID:       id,
			Title:    title,
			Icon:     icon,
			Content:  content,
			OpenedAt: m.now(),
		}
		m.windows = append(m.windows, w)
		m.byID[id] = w
		evt = EventOpened
	}
	out := *w
	e := m.eventLocked(evt, id)
	m.mu.Unlock()

	m.publish(e)
	return out, nil
}

// Minimize hides the window with the given id. Reports whether state changed.
func (m *Manager) Minimize(id string) bool {
	return m.setMinimized(id, true)
}

// Maximize restores a minimized window. There is no geometry state; this is
// the inverse of Minimize. Reports whether state changed.
func (m *Manager) Maximize(id string) bool {
	return m.setMinimized(id, false)
}

func (m *Manager) setMinimized(id string, minimized bool) bool {
	m.pubMu.Lock()
	defer m.pubMu.Unlock()

	m.mu.Lock()
	w, ok := m.byID[id]
	if !ok || w.IsMinimized == minimized {
		m.mu.Unlock()
		return false
	}
	w.IsMinimized = minimized

	evt := EventRestored
	if minimized {
		evt = EventMinimized
	}
	e := m.eventLocked(evt, id)
	m.mu.Unlock()

	m.publish(e)
	return true
}

// Close removes the window with the given id, preserving the order of the rest.
func (m *Manager) Close(id string) bool {
	m.pubMu.Lock()
	defer m.pubMu.Unlock()

	m.mu.Lock()
	if _, ok := m.byID[id]; !ok {
		m.mu.Unlock()
		return false
	}

	delete(m.byID, id)
	for i, w := range m.windows {
		if w.ID == id {
			m.windows = append(m.windows[:i], m.windows[i+1:]...)
			break
		}
	}
	e := m.eventLocked(EventClosed, id)
	m.mu.Unlock()

	m.publish(e)
	return true
}

// CloseAll empties the collection and returns how many windows were removed
func (m *Manager) CloseAll() int {
	m.pubMu.Lock()
	defer m.pubMu.Unlock()

	m.mu.Lock()
	n := len(m.windows)
	if n == 0 {
		m.mu.Unlock()
		return 0
	}
	m.windows = nil
	m.byID = make(map[string]*types.Window)
	e := m.eventLocked(EventCleared, "")
	m.mu.Unlock()

	m.publish(e)
	return n
}

// Get returns a copy of the window with the given id
func (m *Manager) Get(id string) (types.Window, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	w, ok := m.byID[id]
	if !ok {
		return types.Window{}, false
	}
	return *w, true
}

// List returns a snapshot of all windows in open order
func (m *Manager) List() []types.Window {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshotLocked(false)
}

// ListMinimized returns a snapshot of minimized windows in open order
func (m *Manager) ListMinimized() []types.Window {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshotLocked(true)
}

// Len returns the number of open windows
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.windows)
}

// Snapshot returns the current windows and stats together with the sequence
// number of the last event applied
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.viewLocked()
}

// Sync runs fn with a snapshot while no change can be applied or delivered.
// Every event delivered after Sync returns has a Seq greater than the
// snapshot's. fn must not call mutating methods.
func (m *Manager) Sync(fn func(Snapshot)) {
	m.pubMu.Lock()
	defer m.pubMu.Unlock()
	fn(m.Snapshot())
}

// Stats returns manager statistics
func (m *Manager) Stats() types.WindowStats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.statsLocked()
}

// snapshotLocked copies the collection (must hold lock)
func (m *Manager) snapshotLocked(minimizedOnly bool) []types.Window {
	out := make([]types.Window, 0, len(m.windows))
	for _, w := range m.windows {
		if minimizedOnly && !w.IsMinimized {
			continue
		}
		out = append(out, *w)
	}
	return out
}

func (m *Manager) viewLocked() Snapshot {
	return Snapshot{
		Windows: m.snapshotLocked(false),
		Stats:   m.statsLocked(),
		Seq:     m.seq,
	}
}

func (m *Manager) statsLocked() types.WindowStats {
	var s types.WindowStats
	for _, w := range m.windows {
		s.Total++
		if w.IsMinimized {
			s.Minimized++
		} else {
			s.Open++
		}
	}
	return s
}

// eventLocked builds the event for a transition and records metrics (must hold lock)
func (m *Manager) eventLocked(t EventType, id string) Event {
	m.seq++
	stats := m.statsLocked()
	if m.metrics != nil {
		m.metrics.RecordWindowTransition(string(t))
		m.metrics.SetWindows(stats.Open, stats.Minimized)
	}
	m.logger.Debug("window transition",
		zap.String("event", string(t)),
		zap.String("window_id", id),
		zap.Int("total", stats.Total),
	)

	return Event{
		Seq:      m.seq,
		Type:     t,
		WindowID: id,
		Windows:  m.snapshotLocked(false),
		Stats:    stats,
		At:       m.now(),
	}
}
