package localauth

import (
	"context"
	"errors"
	"time"

	"github.com/localauth/localauth/kv"
	"github.com/localauth/localauth/registry"
	"github.com/localauth/localauth/session"
)

const (
	auditEventLoginSuccess            = "login_success"
	auditEventLoginFailure            = "login_failure"
	auditEventRegistrationSuccess     = "registration_success"
	auditEventRegistrationFailure     = "registration_failure"
	auditEventRegistrationDuplicate   = "registration_duplicate"
	auditEventLogout                  = "logout"
	auditEventSessionRestored         = "session_restored"
	auditEventPersistenceWriteFailed  = "persistence_write_failed"
	auditEventPersistenceReadDegraded = "persistence_read_degraded"
)

// AuditErrorCode defines a public type used by localauth APIs.
//
// AuditErrorCode instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditErrorCode string

const (
	auditErrAllFieldsRequired   AuditErrorCode = "all_fields_required"
	auditErrPasswordMismatch    AuditErrorCode = "password_mismatch"
	auditErrPasswordTooShort    AuditErrorCode = "password_too_short"
	auditErrDuplicate           AuditErrorCode = "duplicate"
	auditErrCredentialsRequired AuditErrorCode = "credentials_required"
	auditErrInvalidCredentials  AuditErrorCode = "invalid_credentials"
	auditErrReadMalformed       AuditErrorCode = "read_malformed"
	auditErrUnavailable         AuditErrorCode = "backend_unavailable"
	auditErrInternal            AuditErrorCode = "internal_error"
)

func (e *Engine) emitAudit(
	ctx context.Context,
	eventType string,
	success bool,
	username string,
	err error,
	metadataBuilder func() map[string]string,
) {
	if e == nil || e.audit == nil {
		return
	}

	var metadata map[string]string
	if metadataBuilder != nil {
		metadata = metadataBuilder()
	}

	event := AuditEvent{
		Timestamp: time.Now().UTC(),
		EventType: eventType,
		Username:  username,
		Success:   success,
		Metadata:  metadata,
	}
	if code := auditErrorCode(err); code != "" {
		event.Error = string(code)
	}

	e.audit.Emit(ctx, event)
}

// reportReadDegraded records a malformed persisted read that was degraded
// to empty/absent. Never surfaced to the user.
func (e *Engine) reportReadDegraded(ctx context.Context, store string, err error) {
	if err == nil {
		return
	}
	e.metricInc(MetricPersistenceReadMalformed)
	e.emitAudit(ctx, auditEventPersistenceReadDegraded, false, "", err, func() map[string]string {
		return map[string]string{
			"store": store,
		}
	})
}

// reportWriteFailed records a swallowed persistence write failure. The
// in-memory state already moved on; this is the only trace.
func (e *Engine) reportWriteFailed(ctx context.Context, store, username string, err error) {
	e.metricInc(MetricPersistenceWriteFailed)
	e.emitAudit(ctx, auditEventPersistenceWriteFailed, false, username, err, func() map[string]string {
		return map[string]string{
			"store": store,
		}
	})
}

func auditErrorCode(err error) AuditErrorCode {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, ErrAllFieldsRequired):
		return auditErrAllFieldsRequired
	case errors.Is(err, ErrPasswordMismatch):
		return auditErrPasswordMismatch
	case errors.Is(err, ErrPasswordTooShort):
		return auditErrPasswordTooShort
	case errors.Is(err, ErrDuplicateUsername),
		errors.Is(err, registry.ErrDuplicateUsername):
		return auditErrDuplicate
	case errors.Is(err, ErrCredentialsRequired):
		return auditErrCredentialsRequired
	case errors.Is(err, ErrInvalidCredentials):
		return auditErrInvalidCredentials
	case errors.Is(err, registry.ErrMalformedRegistry),
		errors.Is(err, session.ErrMalformedSession):
		return auditErrReadMalformed
	case errors.Is(err, kv.ErrRedisUnavailable):
		return auditErrUnavailable
	default:
		return auditErrInternal
	}
}
