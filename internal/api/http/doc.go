// Package http provides the REST surface of the desktop shell.
//
// Endpoints:
//   - Health: / and /health
//   - Windows: /windows, /windows/minimized, /windows/:id,
//     /windows/:id/minimize, /windows/:id/maximize
//   - Launcher: /apps, /apps/:id/launch
//   - Taskbar: /taskbar
//   - Metrics: /metrics (Prometheus), /metrics/json
//
// Transitions on unknown window ids answer 200 with "changed": false;
// they are no-ops, not errors. Launching an id missing from the catalog
// answers 404. Errors use the {"error": "..."} body.
//
// Example Usage:
//
//	handlers := http.NewHandlers(shell, metrics, logger)
//	handlers.Register(router)
package http
