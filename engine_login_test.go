package localauth

import (
	"context"
	"errors"
	"testing"
)

func TestLoginSuccess(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	mustRegister(t, engine, "alice", "secret1")

	res, err := engine.Login(ctx, "alice", "secret1")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if res.Username != "alice" {
		t.Fatalf("expected username alice, got %s", res.Username)
	}

	username, ok := engine.CurrentUser()
	if !ok || username != "alice" {
		t.Fatalf("expected current user alice, got %q ok=%v", username, ok)
	}

	snap := engine.MetricsSnapshot()
	if got := snap.Counters[MetricLoginSuccess]; got != 1 {
		t.Fatalf("expected 1 login success, got %d", got)
	}
}

func TestLoginEmptyFields(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	if _, err := engine.Login(ctx, "", "secret1"); !errors.Is(err, ErrCredentialsRequired) {
		t.Fatalf("expected ErrCredentialsRequired, got %v", err)
	}
	if _, err := engine.Login(ctx, "alice", ""); !errors.Is(err, ErrCredentialsRequired) {
		t.Fatalf("expected ErrCredentialsRequired, got %v", err)
	}
}

func TestLoginFailureIndistinguishable(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	mustRegister(t, engine, "alice", "secret1")

	// Unknown user and wrong password produce the identical error value.
	_, unknownErr := engine.Login(ctx, "mallory", "secret1")
	_, wrongPassErr := engine.Login(ctx, "alice", "wrong-pass")

	if !errors.Is(unknownErr, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", unknownErr)
	}
	if !errors.Is(wrongPassErr, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", wrongPassErr)
	}
	if unknownErr.Error() != wrongPassErr.Error() {
		t.Fatal("expected identical error text for both failure causes")
	}

	if _, ok := engine.CurrentUser(); ok {
		t.Fatal("expected no authenticated user after failed logins")
	}
}

func TestLoginIsCaseAndWhitespaceExact(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	mustRegister(t, engine, "alice", "secret1")

	if _, err := engine.Login(ctx, "Alice", "secret1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected case-sensitive match, got %v", err)
	}
	if _, err := engine.Login(ctx, "alice ", "secret1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected no trimming, got %v", err)
	}
}

func TestRegisterThenLoginFlow(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	if err := engine.Register(ctx, "bob", "hunter22", "hunter22"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, ok := engine.CurrentUser(); ok {
		t.Fatal("registration must not log the user in")
	}

	res, err := engine.Login(ctx, "bob", "hunter22")
	if err != nil {
		t.Fatalf("Login after registration failed: %v", err)
	}
	if res.Username != "bob" {
		t.Fatalf("expected username bob, got %s", res.Username)
	}
}

func TestLoginSessionWriteFailureSwallowed(t *testing.T) {
	_, rdb := newTestRedis(t)

	sink := NewChannelSink(16)
	engine, err := New().
		WithRedis(rdb).
		WithSessionStore(failingStore{}).
		WithAuditSink(sink).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	ctx := context.Background()
	mustRegister(t, engine, "alice", "secret1")

	// A correct match logs in even though the session cannot persist.
	res, err := engine.Login(ctx, "alice", "secret1")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if res.Username != "alice" {
		t.Fatalf("expected username alice, got %s", res.Username)
	}
	if username, ok := engine.CurrentUser(); !ok || username != "alice" {
		t.Fatal("expected in-memory session despite write failure")
	}

	snap := engine.MetricsSnapshot()
	if got := snap.Counters[MetricPersistenceWriteFailed]; got != 1 {
		t.Fatalf("expected 1 swallowed write failure, got %d", got)
	}
	if got := snap.Counters[MetricLoginSuccess]; got != 1 {
		t.Fatalf("expected 1 login success, got %d", got)
	}

	engine.Close()

	sawWriteFailed := false
	for event := range sink.Events() {
		if event.EventType == auditEventPersistenceWriteFailed {
			sawWriteFailed = true
			break
		}
		if event.EventType == auditEventLoginSuccess {
			break
		}
	}
	if !sawWriteFailed {
		t.Fatal("expected a persistence_write_failed audit event before login_success")
	}
}

func TestLoginUsesStoredCasing(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	mustRegister(t, engine, "Alice", "secret1")

	res, err := engine.Login(ctx, "Alice", "secret1")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if res.Username != "Alice" {
		t.Fatalf("expected stored casing preserved, got %s", res.Username)
	}
}
