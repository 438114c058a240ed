package localauth

import (
	"github.com/localauth/localauth/registry"
	"github.com/localauth/localauth/session"
)

// Credential is a stored username/password pair from the durable registry.
// Prefer treating it as opaque outside of tests; the password field exists
// because this is an equality-comparison demo, not a hashed store.
type Credential = registry.Credential

// Session is the single current authenticated identity. It deliberately
// carries only the username; the password is never persisted to session
// state.
type Session = session.Session

// LoginResult is returned by [Engine.Login] on success.
type LoginResult struct {
	Username string
}

// BootstrapState is returned by [Engine.Bootstrap]. When Authenticated is
// false, Username is empty and the application starts anonymous on the
// login form.
type BootstrapState struct {
	Authenticated bool
	Username      string
}
