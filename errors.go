package localauth

import "errors"

var (
	// ErrAllFieldsRequired is an exported constant or variable used by the authentication engine.
	ErrAllFieldsRequired = errors.New("all fields required")
	// ErrPasswordMismatch is an exported constant or variable used by the authentication engine.
	ErrPasswordMismatch = errors.New("passwords do not match")
	// ErrPasswordTooShort is an exported constant or variable used by the authentication engine.
	ErrPasswordTooShort = errors.New("password too short")
	// ErrDuplicateUsername is an exported constant or variable used by the authentication engine.
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrCredentialsRequired is an exported constant or variable used by the authentication engine.
	ErrCredentialsRequired = errors.New("username and password required")
	// ErrInvalidCredentials is an exported constant or variable used by the authentication engine.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEngineNotReady is an exported constant or variable used by the authentication engine.
	ErrEngineNotReady = errors.New("engine not initialized")
)
