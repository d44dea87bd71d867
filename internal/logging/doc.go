// Package logging provides structured logging for the dealflows server and
// terminal preview.
//
// This package wraps zap logger with convenience functions for common logging
// patterns. It provides both general logging functions and helpers for the
// page lifecycle, HTTP requests and contact submissions.
//
// # Log Levels
//
//   - Debug: Per-tick counter values, websocket frames
//   - Info: Requests, page mounts and unmounts, submissions
//   - Warn: Non-fatal issues (dropped frames, slow shutdown)
//   - Error: Startup failures, listener errors
//
// # Usage
//
//	if err := logging.Initialize("debug"); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
//	logging.LogPageEvent(id, "mounted")
//
// When no level is passed and DEALFLOWS_LOG_LEVEL is unset, logging is silent.
//
// # Privacy
//
// LogSubmission records only the interest category and message length. Names,
// email addresses and message text never reach the log.
package logging
