// Package localauth provides a small client-side authentication engine:
// username/password registration, login verification, and single-identity
// session state, persisted through two pluggable key-value collaborators
// (one durable across restarts, one scoped to a single browsing session).
//
// The package is a demonstration model: credentials are stored and compared
// in plaintext on purpose, and there is no authorization layer. It is not
// production security and must not be treated as such.
//
// # Architecture boundaries
//
// localauth is the public surface. It exposes [Engine], [Builder], [Config],
// the sentinel validation errors, audit sinks, and metrics. The credential
// registry lives in package registry, session persistence in package
// session, the key-value collaborators in package kv, and the login/register
// form state machine in package view. Presentation (examples/) only consumes
// engine and view state; no logic flows back from it.
//
// # Failure policy
//
// Validation outcomes (duplicate username, invalid credentials, ...) are
// sentinel errors surfaced to the caller. Persistence failures are not:
// malformed stored state degrades to "empty/absent", and failed writes are
// reported through the audit sink and metrics while the in-memory session
// proceeds for the remainder of the process lifetime.
package localauth
