package desktop

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/LexOS/backend/internal/domain/catalog"
	"github.com/GriffinCanCode/LexOS/backend/internal/domain/window"
	"github.com/GriffinCanCode/LexOS/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/LexOS/backend/internal/shared/types"
)

// ErrUnknownApp is returned when a trigger names an app missing from the catalog
var ErrUnknownApp = errors.New("unknown app")

// TaskbarItem is a restore affordance for a minimized window
type TaskbarItem struct {
	ID    string     `json:"id"`
	Title string     `json:"title"`
	Icon  types.Icon `json:"icon"`
}

// Shell binds the trigger surfaces (desktop icons, launcher, taskbar) to
// one window manager and one catalog.
type Shell struct {
	windows *window.Manager
	catalog *catalog.Catalog
	metrics *monitoring.Metrics
	logger  *zap.Logger
}

// NewShell creates a shell over the given manager and catalog
func NewShell(windows *window.Manager, apps *catalog.Catalog) *Shell {
	return &Shell{
		windows: windows,
		catalog: apps,
		logger:  zap.NewNop(),
	}
}

// WithMetrics adds launch counting to the shell
func (s *Shell) WithMetrics(metrics *monitoring.Metrics) *Shell {
	s.metrics = metrics
	return s
}

// WithLogger sets the shell logger
func (s *Shell) WithLogger(logger *zap.Logger) *Shell {
	if logger != nil {
		s.logger = logger.Named("desktop")
	}
	return s
}

// Windows returns the window manager backing the shell
func (s *Shell) Windows() *window.Manager {
	return s.windows
}

// Catalog returns the app catalog backing the shell
func (s *Shell) Catalog() *catalog.Catalog {
	return s.catalog
}

// Launch opens (or restores) the window for a catalog app.
// The app id doubles as the window id, so each app has at most one window.
func (s *Shell) Launch(appID string) (types.Window, error) {
	entry, ok := s.catalog.Lookup(appID)
	if !ok {
		return types.Window{}, fmt.Errorf("launch %q: %w", appID, ErrUnknownApp)
	}

	w, err := s.windows.OpenWindow(entry.ID, entry.Title, entry.Icon, entry.NewContent())
	if err != nil {
		return types.Window{}, fmt.Errorf("launch %q: %w", appID, err)
	}

	if s.metrics != nil {
		s.metrics.RecordAppLaunch(entry.ID)
	}
	s.logger.Info("App launched",
		zap.String("app_id", entry.ID),
		zap.String("state", string(w.State())),
	)

	return w, nil
}

// Minimize hides a window
func (s *Shell) Minimize(id string) bool {
	return s.windows.Minimize(id)
}

// Restore brings a minimized window back (the taskbar button action)
func (s *Shell) Restore(id string) bool {
	return s.windows.Maximize(id)
}

// Close closes a window
func (s *Shell) Close(id string) bool {
	return s.windows.Close(id)
}

// CloseAll closes every window
func (s *Shell) CloseAll() int {
	n := s.windows.CloseAll()
	if n > 0 {
		s.logger.Info("Closed all windows", zap.Int("count", n))
	}
	return n
}

// Taskbar returns restore affordances for minimized windows, in open order
func (s *Shell) Taskbar() []TaskbarItem {
	minimized := s.windows.ListMinimized()
	items := make([]TaskbarItem, 0, len(minimized))
	for _, w := range minimized {
		items = append(items, TaskbarItem{ID: w.ID, Title: w.Title, Icon: w.Icon})
	}
	return items
}
