// Package registry provides the durable credential registry: an
// insertion-ordered collection of username/password records serialized as a
// single JSON array under one key of the durable key-value collaborator.
//
// # Degrade policy
//
// Absent or malformed stored state reads as an empty registry. A malformed
// read is reported to the caller through [ErrMalformedRegistry] alongside
// the (empty) result so the engine can log and count it, but it never
// prevents the caller from proceeding.
//
// # Architecture boundaries
//
// This package owns the registry's JSON shape and the username-uniqueness
// invariant on write. It does NOT validate password policy or decide
// authentication outcomes — those responsibilities belong to the Engine.
//
// # What this package must NOT do
//
//   - Import localauth or session (no upward imports).
//   - Hash or otherwise transform passwords: this is an explicit
//     plaintext demo store.
//   - Read the durable collaborator through any key other than its own.
package registry
