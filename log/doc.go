// Package log provides a simple, leveled logging interface for the
// graph package.
//
// # Log Levels
//
// Five levels, in order of increasing severity:
//
//   - LogLevelDebug: detailed bookkeeping (node added, level dispatched)
//   - LogLevelInfo: general operation flow
//   - LogLevelWarn: recoverable issues
//   - LogLevelError: build/execution failures
//   - LogLevelNone: disables all output
//
// # Basic usage
//
//	logger := log.NewDefaultLogger(log.LogLevelInfo)
//	logger.Info("executing level %d", level)
//	logger.Debug("node %d dispatched", id)
//
// # golog integration
//
// For callers who prefer github.com/kataras/golog's structured output:
//
//	glogger := golog.New()
//	glogger.SetPrefix("[myapp] ")
//	logger := log.NewGologLogger(glogger)
//	log.SetDefaultLogger(logger)
//
// # Package-level default
//
// graph.Add/Branch/Merge/Variants and (*Dag).Execute/ExecuteDetailed log
// through the package-level default logger rather than requiring one to
// be threaded through every call:
//
//	log.SetDefaultLogger(log.NewDefaultLogger(log.LogLevelDebug))
//
// # Custom loggers
//
// Implement the four-method Logger interface directly for any other
// logging backend:
//
//	type CustomLogger struct{}
//
//	func (l *CustomLogger) Debug(format string, v ...any) {}
//	func (l *CustomLogger) Info(format string, v ...any)  {}
//	func (l *CustomLogger) Warn(format string, v ...any)  {}
//	func (l *CustomLogger) Error(format string, v ...any) {}
package log
