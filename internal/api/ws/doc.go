// Package ws streams desktop state to browser tabs over WebSocket.
//
// Every connection receives a welcome frame and a snapshot of the window
// list, then one window_event frame per manager state change. Clients
// drive the shell with small JSON commands.
//
// Message Types (Client → Server):
//   - open: Launch the catalog app named by id
//   - minimize, maximize, close: Transition the window named by id
//   - close_all: Close every window
//   - ping: Keep-alive ping
//
// Message Types (Server → Client):
//   - system: Welcome message
//   - snapshot: Current windows and stats
//   - window_event: A state change with the resulting window list
//   - ack: Command applied ("changed" / "closed" / "window" set per command)
//   - pong: Reply to ping
//   - error: Command rejected; the connection stays open
//
// Frames are encoded with sonic. The hub encodes each event once and
// queues it on every connection; a connection whose send buffer is full
// is dropped rather than stalling the others.
//
// Example Usage:
//
//	hub := ws.NewHub(cfg.WebSocket.SendBuffer)
//	detach := hub.Attach(shell.Windows())
//	defer detach()
//	router.GET("/stream", ws.NewHandler(shell, hub).HandleConnection)
package ws
