package bootstrap

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Lifecycle actions the binaries emit. Punch and adjustment audit events
// never come through here; those travel the outbox to Kafka.
const (
	ActionServerStart    = "SERVER_START"
	ActionServerShutdown = "SERVER_SHUTDOWN"
)

// StdoutAuditLogger writes operational audit entries to the process log.
type StdoutAuditLogger struct{}

func NewStdoutAuditLogger() *StdoutAuditLogger {
	return &StdoutAuditLogger{}
}

func (l *StdoutAuditLogger) Log(ctx context.Context, entry AuditLog) {
	zap.L().Named("ops_audit").Info(entry.Action,
		zap.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
		zap.String("message", entry.Message),
		zap.Any("meta", entry.Meta),
	)
}
