/*
Package monitoring provides metrics collection for the desktop backend.

# Overview

Metrics live on a per-instance Prometheus registry, so several servers
(or tests) can coexist in one process without duplicate registration.

# Features

- HTTP request metrics (latency, throughput, size)
- Window gauges (visible, minimized) and transition counters
- Catalog launch counters
- WebSocket connection and message metrics
- Uptime

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	mgr := window.NewManager().WithMetrics(metrics)
*/
package monitoring
