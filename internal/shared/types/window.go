package types

import "time"

// WindowState represents the visible state of a window
type WindowState string

const (
	WindowOpen      WindowState = "open"
	WindowMinimized WindowState = "minimized"
)

// Icon is an opaque presentation handle (e.g. an icon name the front-end resolves)
type Icon string

// Content is an opaque renderable payload held by a window.
// The window manager stores it and hands it back; it never inspects it.
type Content interface {
	Kind() string
}

// Window represents one open application instance on the desktop
type Window struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Icon        Icon      `json:"icon"`
	Content     Content   `json:"content"`
	IsMinimized bool      `json:"is_minimized"`
	OpenedAt    time.Time `json:"opened_at"`
}

// State derives the window state from the minimized flag
func (w Window) State() WindowState {
	if w.IsMinimized {
		return WindowMinimized
	}
	return WindowOpen
}

// WindowStats contains window manager statistics
type WindowStats struct {
	Total     int `json:"total"`
	Open      int `json:"open"`
	Minimized int `json:"minimized"`
}
