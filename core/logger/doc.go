// Package logger provides slog attribute helpers with consistent keys for
// structured logging across the module.
//
// Helpers use the empty Attr pattern for nil safety, so call sites never need
// explicit nil checks:
//
//	log.Error("subscriber callback failed",
//		logger.Error(err),
//		logger.Component("dispatcher"),
//	)
//
// An empty slog.Attr is silently dropped by slog handlers, which keeps log
// output clean when optional values are absent.
package logger
