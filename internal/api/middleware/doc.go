// Package middleware provides the HTTP middleware stack for the desktop API.
//
// Middleware stack includes:
//   - CORS: Cross-origin resource sharing for the browser frontend
//   - RateLimit: Per-IP token bucket rate limiting with idle-client sweep
//   - GlobalRateLimit: One token bucket shared by every client
//   - RequestLogger: One zap line per request, level chosen by status
//   - Recovery: Panic recovery with a JSON 500 response
//
// Example Usage:
//
//	router.Use(middleware.Recovery(logger))
//	router.Use(middleware.RequestLogger(logger))
//	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
//	router.Use(middleware.RateLimit(middleware.RateLimitConfig{RequestsPerSecond: 100, Burst: 200}))
package middleware
