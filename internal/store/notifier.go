package store

import (
	"go.uber.org/zap"

	"cargo-tracker/internal/logger"
)

// Notifier receives the transient user-facing notifications the store emits
// when operations reach a terminal phase.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// logNotifier is the default Notifier; it writes notifications to the
// structured log so headless deployments still surface them.
type logNotifier struct{}

func (logNotifier) Success(msg string) {
	logger.Info("notification", zap.String("kind", "success"), zap.String("message", msg))
}

func (logNotifier) Error(msg string) {
	logger.Warn("notification", zap.String("kind", "error"), zap.String("message", msg))
}
