package localauth

import "errors"

// Config defines a public type used by localauth APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Registry RegistryConfig
	Session  SessionConfig
	Audit    AuditConfig
	Metrics  MetricsConfig
}

/*
====================================
REGISTRY CONFIG
====================================
*/

// RegistryConfig defines a public type used by localauth APIs.
//
// RegistryConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type RegistryConfig struct {
	// Key is the durable collaborator key holding the JSON-encoded
	// credential array. The stored shape is fixed: [{"username":...,
	// "password":...}, ...].
	Key string

	// RedisPrefix namespaces the durable collaborator's keys when the
	// engine is built with a Redis client.
	RedisPrefix string

	// MinPasswordLength is enforced at registration only. Existing
	// credentials are never re-validated.
	MinPasswordLength int
}

/*
====================================
SESSION CONFIG
====================================
*/

// SessionConfig defines a public type used by localauth APIs.
//
// SessionConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type SessionConfig struct {
	// Key is the session-scoped collaborator key holding the
	// JSON-encoded {"username":...} object. Absent when logged out.
	Key string

	// RedisPrefix namespaces the session-scoped collaborator's keys
	// when the engine is built with a Redis client. The browsing-session
	// scope ID is appended under this prefix.
	RedisPrefix string
}

// AuditConfig defines a public type used by localauth APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig defines a public type used by localauth APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

// DefaultConfig describes the defaultconfig operation and its observable behavior.
//
// DefaultConfig may return an error when input validation, dependency calls, or security checks fail.
// DefaultConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func DefaultConfig() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		Registry: RegistryConfig{
			Key:               "users",
			RedisPrefix:       "la",
			MinPasswordLength: 6,
		},
		Session: SessionConfig{
			Key:         "currentUser",
			RedisPrefix: "las",
		},
		Audit: AuditConfig{
			Enabled:    true,
			BufferSize: 64,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 true,
			EnableLatencyHistograms: false,
		},
	}
}

func cloneConfig(cfg Config) Config {
	// All fields are value types; a shallow copy is a deep copy.
	return cfg
}

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c Config) Validate() error {
	if c.Registry.Key == "" {
		return errors.New("Registry.Key must not be empty")
	}
	if c.Session.Key == "" {
		return errors.New("Session.Key must not be empty")
	}
	if c.Registry.Key == c.Session.Key {
		return errors.New("Registry.Key and Session.Key must differ")
	}
	if c.Registry.MinPasswordLength < 1 {
		return errors.New("Registry.MinPasswordLength must be at least 1")
	}
	if c.Audit.Enabled && c.Audit.BufferSize < 0 {
		return errors.New("Audit.BufferSize must not be negative")
	}
	return nil
}
