// Package logger provides structured logging for corekit, built on zerolog.
//
// A Logger is cheap to copy and tag. Components take a component-tagged
// logger instead of embedding a logging mixin:
//
//	log := logger.NewDefault("agent").WithComponent("shellexec")
//	log.Info("command finished", logger.Fields("exit_code", 0))
package logger
