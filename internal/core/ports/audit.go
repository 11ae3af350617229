package ports

import "time"

const (
	AuditLogin    = "login"
	AuditRegister = "register"
)

// AuditEvent records the outcome of an authentication operation.
type AuditEvent struct {
	Kind     string
	Username string
	Success  bool
	At       time.Time
}

// AuditSink accepts auth audit events for asynchronous processing.
type AuditSink interface {
	Record(event AuditEvent)
}
