// Package server assembles the desktop backend: catalog, window manager,
// shell, HTTP routes, WebSocket hub and the middleware stack.
//
// Middleware order: recovery, tracing, metrics, request logging, CORS,
// then per-IP and global rate limiting when enabled. Compression wraps the whole router
// except the stream endpoint.
package server
