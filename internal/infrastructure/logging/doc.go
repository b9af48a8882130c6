// Package logging builds the process-wide zap logger.
//
// Production mode writes JSON lines; development mode (LOG_DEV=true)
// writes colored console output. Components take the embedded *zap.Logger
// and name themselves:
//
//	logger, err := logging.FromConfig(cfg.Logging)
//	windows := window.NewManager().WithLogger(logger.Logger)
package logging
