package localauth

import (
	"sync"

	"github.com/localauth/localauth/registry"
	"github.com/localauth/localauth/session"
)

// Engine defines a public type used by localauth APIs.
//
// Engine instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Engine struct {
	config   Config
	registry *registry.Store
	sessions *session.Store
	audit    *auditDispatcher
	metrics  *Metrics

	// current mirrors the persisted session in memory so a failed
	// session write still leaves the user logged in for the rest of
	// the process lifetime.
	mu      sync.RWMutex
	current *Session
}

// Close describes the close operation and its observable behavior.
//
// Close may return an error when input validation, dependency calls, or security checks fail.
// Close does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.audit != nil {
		e.audit.Close()
	}
}

// AuditDropped describes the auditdropped operation and its observable behavior.
//
// AuditDropped may return an error when input validation, dependency calls, or security checks fail.
// AuditDropped does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
//
// MetricsSnapshot may return an error when input validation, dependency calls, or security checks fail.
// MetricsSnapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

// CurrentUser returns the in-memory authenticated identity, which may be
// ahead of persisted session state when a session write was swallowed.
func (e *Engine) CurrentUser() (string, bool) {
	if e == nil {
		return "", false
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.current == nil {
		return "", false
	}
	return e.current.Username, true
}

func (e *Engine) setCurrent(sess Session) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.current = &sess
}

func (e *Engine) clearCurrent() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.current = nil
}
