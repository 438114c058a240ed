package localauth

import (
	"context"
	"errors"

	"github.com/localauth/localauth/registry"
)

// Register describes the register operation and its observable behavior.
//
// Register may return an error when input validation, dependency calls, or security checks fail.
// Register does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// Validation is ordered and short-circuits on the first failing rule:
// empty fields, password mismatch, password length, duplicate username.
// Success appends the credential to the durable registry and deliberately
// does NOT establish a session; the caller routes the user back to login.
func (e *Engine) Register(ctx context.Context, username, password, confirmPassword string) error {
	if e == nil || e.registry == nil {
		return ErrEngineNotReady
	}

	if username == "" || password == "" || confirmPassword == "" {
		return e.registerFailed(ctx, username, ErrAllFieldsRequired, "empty_field")
	}
	if password != confirmPassword {
		return e.registerFailed(ctx, username, ErrPasswordMismatch, "password_mismatch")
	}
	if len(password) < e.config.Registry.MinPasswordLength {
		return e.registerFailed(ctx, username, ErrPasswordTooShort, "password_too_short")
	}

	exists, err := e.registry.Exists(ctx, username)
	if err != nil {
		if errors.Is(err, registry.ErrMalformedRegistry) {
			// Degraded read counts as an empty registry; registration
			// proceeds and rewrites it.
			e.reportReadDegraded(ctx, "registry", err)
		} else {
			e.metricInc(MetricRegistrationFailure)
			e.emitAudit(ctx, auditEventRegistrationFailure, false, username, err, nil)
			return err
		}
	}
	if exists {
		e.metricInc(MetricRegistrationDuplicate)
		e.emitAudit(ctx, auditEventRegistrationDuplicate, false, username, ErrDuplicateUsername, nil)
		return ErrDuplicateUsername
	}

	if err := e.registry.Add(ctx, username, password); err != nil {
		if errors.Is(err, registry.ErrDuplicateUsername) {
			e.metricInc(MetricRegistrationDuplicate)
			e.emitAudit(ctx, auditEventRegistrationDuplicate, false, username, ErrDuplicateUsername, nil)
			return ErrDuplicateUsername
		}
		e.metricInc(MetricRegistrationFailure)
		e.emitAudit(ctx, auditEventRegistrationFailure, false, username, err, func() map[string]string {
			return map[string]string{
				"reason": "registry_write_failed",
			}
		})
		return err
	}

	e.metricInc(MetricRegistrationSuccess)
	e.emitAudit(ctx, auditEventRegistrationSuccess, true, username, nil, nil)
	return nil
}

func (e *Engine) registerFailed(ctx context.Context, username string, cause error, reason string) error {
	e.metricInc(MetricRegistrationFailure)
	e.emitAudit(ctx, auditEventRegistrationFailure, false, username, cause, func() map[string]string {
		return map[string]string{
			"reason": reason,
		}
	})
	return cause
}
