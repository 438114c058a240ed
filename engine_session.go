package localauth

import (
	"context"
	"errors"
	"time"

	"github.com/localauth/localauth/session"
)

// Logout describes the logout operation and its observable behavior.
//
// Logout may return an error when input validation, dependency calls, or security checks fail.
// Logout does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// Logout is idempotent and never fails from the caller's point of view:
// a failed session-clear is recorded and swallowed, and the in-memory
// identity is dropped regardless.
func (e *Engine) Logout(ctx context.Context) {
	if e == nil || e.sessions == nil {
		return
	}

	username, _ := e.CurrentUser()

	if err := e.sessions.Clear(ctx); err != nil {
		e.reportWriteFailed(ctx, "session", username, err)
	}
	e.clearCurrent()

	e.metricInc(MetricLogout)
	e.emitAudit(ctx, auditEventLogout, true, username, nil, nil)
}

// Bootstrap describes the bootstrap operation and its observable behavior.
//
// Bootstrap may return an error when input validation, dependency calls, or security checks fail.
// Bootstrap does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// Bootstrap performs exactly one session read. Any failure, malformed
// state included, degrades to the anonymous state; a restored session
// rehydrates the in-memory identity.
func (e *Engine) Bootstrap(ctx context.Context) BootstrapState {
	if e == nil || e.sessions == nil {
		return BootstrapState{}
	}

	start := time.Now()
	sess, ok, err := e.sessions.Get(ctx)
	if e.metrics != nil {
		e.metrics.Observe(MetricBootstrapLatency, time.Since(start))
	}

	if err != nil {
		if errors.Is(err, session.ErrMalformedSession) {
			e.reportReadDegraded(ctx, "session", err)
		} else {
			e.emitAudit(ctx, auditEventPersistenceReadDegraded, false, "", err, func() map[string]string {
				return map[string]string{
					"store": "session",
				}
			})
		}
	}
	if !ok {
		return BootstrapState{}
	}

	e.setCurrent(sess)
	e.metricInc(MetricSessionRestored)
	e.emitAudit(ctx, auditEventSessionRestored, true, sess.Username, nil, nil)

	return BootstrapState{
		Authenticated: true,
		Username:      sess.Username,
	}
}
