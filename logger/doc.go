// Package logger provides structured logging for pontos using zerolog.
//
// It supports JSON and console output, level configuration and
// component-scoped loggers with structured fields.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "console"
//
// # Usage
//
//	log := logger.WithComponent("github")
//	log.Debug("page fetched", logger.Fields("page", 2, "items", 100))
package logger
