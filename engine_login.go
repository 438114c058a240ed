package localauth

import (
	"context"
	"errors"

	"github.com/localauth/localauth/registry"
)

// Login describes the login operation and its observable behavior.
//
// Login may return an error when input validation, dependency calls, or security checks fail.
// Login does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// Unknown username and wrong password are deliberately indistinguishable:
// both return [ErrInvalidCredentials], so error text cannot be used to
// enumerate registered usernames. A failed session write after a correct
// match is swallowed; the in-memory session proceeds.
func (e *Engine) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if e == nil || e.registry == nil || e.sessions == nil {
		return nil, ErrEngineNotReady
	}

	if username == "" || password == "" {
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, username, ErrCredentialsRequired, nil)
		return nil, ErrCredentialsRequired
	}

	cred, ok, err := e.registry.FindMatch(ctx, username, password)
	if err != nil {
		if errors.Is(err, registry.ErrMalformedRegistry) {
			e.reportReadDegraded(ctx, "registry", err)
		} else {
			e.metricInc(MetricLoginFailure)
			e.emitAudit(ctx, auditEventLoginFailure, false, username, err, nil)
			return nil, err
		}
	}
	if !ok {
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, username, ErrInvalidCredentials, nil)
		return nil, ErrInvalidCredentials
	}

	sess := Session{Username: cred.Username}
	if err := e.sessions.Set(ctx, sess); err != nil {
		e.reportWriteFailed(ctx, "session", cred.Username, err)
	}
	e.setCurrent(sess)

	e.metricInc(MetricLoginSuccess)
	e.emitAudit(ctx, auditEventLoginSuccess, true, cred.Username, nil, nil)
	return &LoginResult{Username: cred.Username}, nil
}
