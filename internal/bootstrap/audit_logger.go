package bootstrap

import "context"

// AuditLog is one operational audit entry (server lifecycle, worker
// start/stop). Domain-level audit events travel through the outbox
// instead.
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
