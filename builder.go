package localauth

import (
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/localauth/localauth/kv"
	"github.com/localauth/localauth/registry"
	"github.com/localauth/localauth/session"
)

// Builder defines a public type used by localauth APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config Config
	redis  *redis.Client

	durableStore kv.Store
	sessionStore kv.Store
	sessionScope string

	auditSink AuditSink

	built bool
}

// New describes the new operation and its observable behavior.
//
// New may return an error when input validation, dependency calls, or security checks fail.
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig describes the withconfig operation and its observable behavior.
//
// WithConfig may return an error when input validation, dependency calls, or security checks fail.
// WithConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithRedis describes the withredis operation and its observable behavior.
//
// WithRedis may return an error when input validation, dependency calls, or security checks fail.
// WithRedis does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithRedis(client *redis.Client) *Builder {
	b.redis = client
	return b
}

// WithDurableStore overrides the durable collaborator. Takes precedence
// over the Redis client for credential persistence.
func (b *Builder) WithDurableStore(store kv.Store) *Builder {
	b.durableStore = store
	return b
}

// WithSessionStore overrides the session-scoped collaborator. Takes
// precedence over the Redis client for session persistence.
func (b *Builder) WithSessionStore(store kv.Store) *Builder {
	b.sessionStore = store
	return b
}

// WithSessionScope pins the browsing-session scope ID used when the
// session collaborator is derived from the Redis client. Empty means a
// fresh scope (a new browsing session) is minted at Build.
func (b *Builder) WithSessionScope(scopeID string) *Builder {
	b.sessionScope = scopeID
	return b
}

// WithAuditSink describes the withauditsink operation and its observable behavior.
//
// WithAuditSink may return an error when input validation, dependency calls, or security checks fail.
// WithAuditSink does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithMetricsEnabled describes the withmetricsenabled operation and its observable behavior.
//
// WithMetricsEnabled may return an error when input validation, dependency calls, or security checks fail.
// WithMetricsEnabled does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms describes the withlatencyhistograms operation and its observable behavior.
//
// WithLatencyHistograms may return an error when input validation, dependency calls, or security checks fail.
// WithLatencyHistograms does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build describes the build operation and its observable behavior.
//
// Build may return an error when input validation, dependency calls, or security checks fail.
// Build does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	durable := b.durableStore
	if durable == nil {
		if b.redis == nil {
			return nil, errors.New("redis client or durable store required")
		}
		durable = kv.NewRedis(b.redis, cfg.Registry.RedisPrefix)
	}

	sessionKV := b.sessionStore
	if sessionKV == nil {
		if b.redis == nil {
			return nil, errors.New("redis client or session store required")
		}
		sessionKV = kv.NewScopedRedis(b.redis, cfg.Session.RedisPrefix, b.sessionScope)
	}

	engine := &Engine{
		config:   cfg,
		registry: registry.NewStore(durable, cfg.Registry.Key),
		sessions: session.NewStore(sessionKV, cfg.Session.Key),
	}

	engine.audit = newAuditDispatcher(cfg.Audit, b.auditSink)
	engine.metrics = NewMetrics(cfg.Metrics)

	b.built = true

	return engine, nil
}
