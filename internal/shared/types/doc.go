// Package types provides shared data structures for the LexOS backend.
//
// Core Types:
//   - Window: One open application instance on the desktop
//   - Icon: Opaque icon handle rendered by the front-end
//   - Content: Opaque renderable payload held by a window
//   - WindowStats: Window manager statistics
//
// State Management:
//   - WindowState: open or minimized, derived from Window.IsMinimized
//
// Example Usage:
//
//	w := types.Window{
//	    ID:      "system-monitor",
//	    Title:   "System Monitor",
//	    Icon:    "activity",
//	    Content: panel,
//	}
package types
