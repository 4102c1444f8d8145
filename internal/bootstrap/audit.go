package bootstrap

import "context"

type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

// AuditLogger records operator-level events (startup, shutdown). Request
// audit lives in the outbox, not here.
type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
