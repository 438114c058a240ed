// Package kv defines the key-value collaborator contract that backs the
// credential registry and the session store, plus the two shipped
// implementations: a Redis-backed store and an in-memory map store.
//
// # Scoping
//
// A durable store keeps its keys under a stable prefix and survives process
// restarts. A session-scoped store additionally namespaces its keys under a
// scope ID (one browsing session); minting a fresh scope ID is equivalent to
// opening a new browser tab, while reusing a scope ID resumes the session
// that tab had.
//
// # Architecture boundaries
//
// This package owns raw string persistence only. It does NOT interpret the
// stored JSON, enforce credential uniqueness, or make authentication
// decisions — those responsibilities belong to the registry and session
// packages and the Engine above them.
//
// # What this package must NOT do
//
//   - Import localauth, registry, or session (no upward imports).
//   - Swallow backend failures: callers decide the degrade policy.
package kv
