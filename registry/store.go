package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/localauth/localauth/kv"
)

// ErrDuplicateUsername is returned by [Store.Add] when the username is
// already registered. Matching is case-sensitive and exact.
var ErrDuplicateUsername = errors.New("duplicate username")

// ErrMalformedRegistry is returned alongside an empty result when the
// stored registry value does not decode as a credential array.
var ErrMalformedRegistry = errors.New("malformed credential registry")

// Credential defines a public type used by localauth APIs.
//
// Credential instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Credential struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Store manages the credential registry over a durable key-value
// collaborator. The registry is read-modify-written as a whole on every
// Add; the mutex serializes that cycle within this process. Cross-process
// writers would need a transactional backend instead.
type Store struct {
	kv  kv.Store
	key string
	mu  sync.Mutex
}

// NewStore creates a registry [Store] over the given durable collaborator.
// key is the collaborator key holding the JSON credential array.
func NewStore(store kv.Store, key string) *Store {
	return &Store{
		kv:  store,
		key: key,
	}
}

// LoadAll returns every stored credential in insertion order. An absent
// key reads as an empty registry; a malformed value reads as an empty
// registry with [ErrMalformedRegistry]. The returned slice is always
// usable, error or not.
func (s *Store) LoadAll(ctx context.Context) ([]Credential, error) {
	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return []Credential{}, err
	}
	if !ok || raw == "" {
		return []Credential{}, nil
	}

	var creds []Credential
	if err := json.Unmarshal([]byte(raw), &creds); err != nil {
		return []Credential{}, fmt.Errorf("%w: %v", ErrMalformedRegistry, err)
	}
	if creds == nil {
		creds = []Credential{}
	}
	return creds, nil
}

// Exists reports whether a credential with exactly that username is
// present. The bool is valid even when an error is returned: degraded
// reads report false.
func (s *Store) Exists(ctx context.Context, username string) (bool, error) {
	creds, err := s.LoadAll(ctx)
	for _, c := range creds {
		if c.Username == username {
			return true, err
		}
	}
	return false, err
}

// FindMatch returns the first credential whose username and password both
// exactly equal the supplied values. As with [Store.Exists], the match
// result is valid even when an error is returned.
func (s *Store) FindMatch(ctx context.Context, username, password string) (Credential, bool, error) {
	creds, err := s.LoadAll(ctx)
	for _, c := range creds {
		if c.Username == username && c.Password == password {
			return c, true, err
		}
	}
	return Credential{}, false, err
}

// Add appends a credential and persists the full updated registry.
// Returns [ErrDuplicateUsername] when the username is already present.
// A malformed stored registry is overwritten with a fresh single-entry
// array (the degrade policy: malformed means "no users registered").
func (s *Store) Add(ctx context.Context, username, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	creds, err := s.LoadAll(ctx)
	if err != nil && !errors.Is(err, ErrMalformedRegistry) {
		return err
	}

	for _, c := range creds {
		if c.Username == username {
			return ErrDuplicateUsername
		}
	}

	creds = append(creds, Credential{Username: username, Password: password})
	data, err := json.Marshal(creds)
	if err != nil {
		return err
	}

	return s.kv.Set(ctx, s.key, string(data))
}
