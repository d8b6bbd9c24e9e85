// Package logger provides structured logging for promptkit using zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers with structured fields.
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
//	log := logger.WithComponent("ollama")
//	log.Debug("generate ok", logger.Fields(logger.FieldModel, "qwen2.5"))
package logger
