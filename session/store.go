package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/localauth/localauth/kv"
)

// ErrMalformedSession is returned alongside an absent result when the
// stored session value does not decode as a session object.
var ErrMalformedSession = errors.New("malformed session state")

// Store persists the current identity through a session-scoped key-value
// collaborator. At most one session exists at a time.
type Store struct {
	kv  kv.Store
	key string
}

// NewStore creates a session [Store] over the given session-scoped
// collaborator. key is the collaborator key holding the JSON session
// object.
func NewStore(store kv.Store, key string) *Store {
	return &Store{
		kv:  store,
		key: key,
	}
}

// Get reads the persisted session. Absent and malformed state both read
// as no session; malformed state additionally reports
// [ErrMalformedSession].
func (s *Store) Get(ctx context.Context) (Session, bool, error) {
	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return Session{}, false, err
	}
	if !ok || raw == "" {
		return Session{}, false, nil
	}

	var sess Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return Session{}, false, fmt.Errorf("%w: %v", ErrMalformedSession, err)
	}
	if sess.Username == "" {
		return Session{}, false, fmt.Errorf("%w: missing username", ErrMalformedSession)
	}
	return sess, true, nil
}

// Set persists the identity. Only the username is written; the session
// object never carries the password.
func (s *Store) Set(ctx context.Context, sess Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, s.key, string(data))
}

// Clear removes the persisted session. Clearing an absent session is a
// no-op.
func (s *Store) Clear(ctx context.Context) error {
	return s.kv.Remove(ctx, s.key)
}
