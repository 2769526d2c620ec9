package facegate

import (
	"github.com/facegate/facegate/biometric"
	internalaudit "github.com/facegate/facegate/internal/audit"
	"github.com/facegate/facegate/internal/rate"
	"github.com/facegate/facegate/password"
	"github.com/facegate/facegate/session"
	"github.com/facegate/facegate/token"
)

// Engine defines a public type used by facegate APIs.
//
// Engine instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
// The engine is stateless between requests: the two login steps share no
// in-process state, and all shared mutable data lives in the injected
// credential store and Redis.
type Engine struct {
	config       Config
	sessionStore *session.Store
	rateLimiter  *rate.Limiter
	comparator   *biometric.Comparator
	passwordHash *password.Argon2
	tokenManager *token.Manager
	credentials  CredentialStore
	audit        *internalaudit.Dispatcher
	metrics      *Metrics
}

// Close releases the engine's background resources (the audit dispatcher).
// The Redis client and database handle are caller-owned and not closed here.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	e.audit.Close()
}

// AuditDropped reports how many audit events were dropped because the
// dispatcher buffer was full.
func (e *Engine) AuditDropped() uint64 {
	if e == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MetricsSnapshot returns a point-in-time copy of all engine counters.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil {
		return
	}
	e.metrics.Inc(id)
}
