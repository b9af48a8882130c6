// Package window implements the desktop window manager.
//
// The manager owns the authoritative, ordered collection of open windows.
// Each window is keyed by a stable id chosen by the opener (one id per app
// kind), so opening the same app twice never creates a duplicate.
//
// State machine per window:
//
//	(none) --Open--> open
//	open --Minimize--> minimized
//	minimized --Maximize|Open--> open
//	open|minimized --Close|CloseAll--> (removed)
//
// Open on an already visible window is a no-op. Minimize, Maximize and
// Close on unknown ids are no-ops. The only error is ErrInvalidArgument
// for an empty id passed to Open.
//
// Snapshots returned by List, ListMinimized and Get are copies. Title,
// Icon and Content are never mutated after creation.
//
// Example Usage:
//
//	mgr := window.NewManager().WithLogger(logger)
//	_ = mgr.Open("system-monitor", "System Monitor", "activity", panel)
//	mgr.Minimize("system-monitor")
//	for _, w := range mgr.ListMinimized() {
//	    fmt.Println(w.Title)
//	}
package window
