// Package config provides 12-factor configuration management for the LexOS backend.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags can override environment variables for development flexibility.
//
// Configuration Sections:
//   - Server: HTTP server settings (port, host)
//   - Logging: Log level, output format and sinks
//   - RateLimit: Per-IP and global rate limiting
//   - Catalog: Extra app manifest discovery
//   - WebSocket: Stream buffering
//   - Compression: gzip responses
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Server running on %s\n", cfg.Addr())
//
// Environment Variables:
//   - PORT, HOST
//   - LOG_LEVEL, LOG_DEV, LOG_OUTPUTS
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
//   - RATE_LIMIT_GLOBAL_RPS, RATE_LIMIT_GLOBAL_BURST, RATE_LIMIT_GLOBAL_ENABLED
//   - CATALOG_GLOB, WS_SEND_BUFFER, COMPRESSION_ENABLED
package config
