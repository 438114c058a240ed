package localauth

import (
	"context"
	"errors"
	"testing"
)

func TestRegisterSuccess(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	if err := engine.Register(ctx, "alice", "secret1", "secret1"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	// Registration must not establish a session.
	if _, ok := engine.CurrentUser(); ok {
		t.Fatal("expected no authenticated user after registration")
	}
	if state := engine.Bootstrap(ctx); state.Authenticated {
		t.Fatal("expected no persisted session after registration")
	}

	snap := engine.MetricsSnapshot()
	if got := snap.Counters[MetricRegistrationSuccess]; got != 1 {
		t.Fatalf("expected 1 registration success, got %d", got)
	}
}

func TestRegisterValidationOrder(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	// Empty fields win over every other rule, mismatch included.
	if err := engine.Register(ctx, "", "abc", "xyz"); !errors.Is(err, ErrAllFieldsRequired) {
		t.Fatalf("expected ErrAllFieldsRequired, got %v", err)
	}
	if err := engine.Register(ctx, "alice", "secret1", ""); !errors.Is(err, ErrAllFieldsRequired) {
		t.Fatalf("expected ErrAllFieldsRequired, got %v", err)
	}

	// Mismatch is checked before length: a short, mismatched pair
	// reports the mismatch.
	if err := engine.Register(ctx, "alice", "abc", "abd"); !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}

	if err := engine.Register(ctx, "alice", "abc", "abc"); !errors.Is(err, ErrPasswordTooShort) {
		t.Fatalf("expected ErrPasswordTooShort, got %v", err)
	}

	// Nothing above should have persisted a credential.
	if _, err := engine.Login(ctx, "alice", "abc"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	snap := engine.MetricsSnapshot()
	if got := snap.Counters[MetricRegistrationFailure]; got != 4 {
		t.Fatalf("expected 4 registration failures, got %d", got)
	}
}

func TestRegisterMinPasswordLengthBoundary(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	if err := engine.Register(ctx, "alice", "12345", "12345"); !errors.Is(err, ErrPasswordTooShort) {
		t.Fatalf("expected ErrPasswordTooShort for 5 chars, got %v", err)
	}
	if err := engine.Register(ctx, "alice", "123456", "123456"); err != nil {
		t.Fatalf("expected 6 chars to pass, got %v", err)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	mustRegister(t, engine, "alice", "secret1")

	// Same username with a different password is still a duplicate.
	if err := engine.Register(ctx, "alice", "other-pass", "other-pass"); !errors.Is(err, ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}

	// The original credential survives.
	if _, err := engine.Login(ctx, "alice", "secret1"); err != nil {
		t.Fatalf("Login with original password failed: %v", err)
	}

	snap := engine.MetricsSnapshot()
	if got := snap.Counters[MetricRegistrationDuplicate]; got != 1 {
		t.Fatalf("expected 1 duplicate, got %d", got)
	}
}

func TestRegisterOverwritesMalformedRegistry(t *testing.T) {
	engine, mr := newTestEngine(t)
	ctx := context.Background()

	if err := mr.Set("la:users", "{not valid json"); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	if err := engine.Register(ctx, "alice", "secret1", "secret1"); err != nil {
		t.Fatalf("Register over malformed registry failed: %v", err)
	}
	if _, err := engine.Login(ctx, "alice", "secret1"); err != nil {
		t.Fatalf("Login after recovery failed: %v", err)
	}

	snap := engine.MetricsSnapshot()
	if got := snap.Counters[MetricPersistenceReadMalformed]; got == 0 {
		t.Fatal("expected malformed read to be counted")
	}
}

func TestRegisterBackendFailureSurfaces(t *testing.T) {
	_, rdb := newTestRedis(t)

	engine, err := New().
		WithRedis(rdb).
		WithDurableStore(failingStore{}).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer engine.Close()

	err = engine.Register(context.Background(), "alice", "secret1", "secret1")
	if err == nil {
		t.Fatal("expected registration to surface the backend failure")
	}
	if !errors.Is(err, errStoreDown) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}

func TestRegisterAuditEvents(t *testing.T) {
	sink := NewChannelSink(16)
	engine, _ := newTestEngine(t, func(b *Builder) {
		b.WithAuditSink(sink)
	})
	ctx := context.Background()

	mustRegister(t, engine, "alice", "secret1")
	if err := engine.Register(ctx, "alice", "secret1", "secret1"); !errors.Is(err, ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
	engine.Close()

	var types []string
	for event := range sink.Events() {
		types = append(types, event.EventType)
		if len(types) == 2 {
			break
		}
	}

	if types[0] != auditEventRegistrationSuccess {
		t.Fatalf("expected %s first, got %s", auditEventRegistrationSuccess, types[0])
	}
	if types[1] != auditEventRegistrationDuplicate {
		t.Fatalf("expected %s second, got %s", auditEventRegistrationDuplicate, types[1])
	}
}
