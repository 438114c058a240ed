// Package session provides persistence for the single current
// authenticated identity, stored as a JSON object under one key of the
// session-scoped key-value collaborator.
//
// # Degrade policy
//
// A malformed stored session reads as absent ([ErrMalformedSession] is
// returned alongside the absent result for reporting). Write and remove
// failures are returned to the caller; the Engine's policy is to log them
// and keep the in-memory identity, never to fail the user.
//
// # Architecture boundaries
//
// This package owns the {"username":...} shape of persisted session state.
// It does NOT verify credentials or decide who may log in — those
// responsibilities belong to the Engine.
//
// # What this package must NOT do
//
//   - Import localauth or registry (no upward imports).
//   - Persist the password or anything beyond the username.
package session
