package bootstrap

import "context"

// AuditLog adalah catatan kejadian operasional level aplikasi
// (startup, shutdown), bukan log bisnis per request.
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
