// Package logger provides structured logging on top of zerolog.
//
// It supports console and JSON output, level configuration and
// component-scoped loggers carrying structured fields.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("session")
//	log.Info("translation applied", logger.Fields("target", "hi"))
package logger
