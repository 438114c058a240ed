package view

import (
	"context"
	"errors"

	"github.com/localauth/localauth"
)

// Display texts for the login and register forms. The messages are part
// of the observable contract: tests and callers match on them verbatim.
const (
	MsgAllFieldsRequired    = "All fields are required."
	MsgPasswordMismatch     = "Passwords do not match."
	MsgPasswordTooShort     = "Password must be at least 6 characters long."
	MsgDuplicateUsername    = "Username already exists."
	MsgCredentialsRequired  = "Username and password are required."
	MsgInvalidCredentials   = "Invalid credentials. Please try again."
	MsgRegistrationSuccess  = "Registration successful! Please log in."
	MsgRegistrationInternal = "Failed to register. Please try again."
	MsgLoginInternal        = "Failed to log in. Please try again."
)

// Mode selects which form the machine is presenting.
type Mode int

const (
	// ModeLogin presents the sign-in form.
	ModeLogin Mode = iota
	// ModeRegister presents the account-creation form.
	ModeRegister
)

// Authenticator is the slice of the engine the form machine needs.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*localauth.LoginResult, error)
	Register(ctx context.Context, username, password, confirmPassword string) error
}

// Machine holds the form state for the combined login/register page.
// Fields are mutated directly by the caller as the user types; Submit
// methods validate through the engine and translate the outcome into
// display messages. Machine is not safe for concurrent use.
type Machine struct {
	auth Authenticator

	Mode            Mode
	Username        string
	Password        string
	ConfirmPassword string

	// ErrorMessage and SuccessMessage are mutually exclusive except for
	// one case: a registration success survives the automatic switch
	// back to the login form.
	ErrorMessage   string
	SuccessMessage string
}

// NewMachine creates a form machine starting on the login form.
func NewMachine(auth Authenticator) *Machine {
	return &Machine{auth: auth}
}

// Title returns the heading for the active form.
func (m *Machine) Title() string {
	if m.Mode == ModeRegister {
		return "Create Account"
	}
	return "Welcome Back"
}

// Subtitle returns the subheading for the active form.
func (m *Machine) Subtitle() string {
	if m.Mode == ModeRegister {
		return "Join us today"
	}
	return "Sign in to continue"
}

// ToggleMode switches between the login and register forms. All fields
// and both messages are discarded; half-typed input never leaks across
// forms.
func (m *Machine) ToggleMode() {
	if m.Mode == ModeLogin {
		m.Mode = ModeRegister
	} else {
		m.Mode = ModeLogin
	}
	m.resetFields()
	m.ErrorMessage = ""
	m.SuccessMessage = ""
}

// SubmitLogin submits the login form. It reports whether the user is now
// authenticated; on failure the typed fields are kept so the user can
// correct them, and the error message replaces any success message.
func (m *Machine) SubmitLogin(ctx context.Context) (*localauth.LoginResult, bool) {
	if m.Mode != ModeLogin {
		return nil, false
	}

	res, err := m.auth.Login(ctx, m.Username, m.Password)
	if err != nil {
		m.SuccessMessage = ""
		m.ErrorMessage = loginMessage(err)
		return nil, false
	}

	m.resetFields()
	m.ErrorMessage = ""
	m.SuccessMessage = ""
	return res, true
}

// SubmitRegister submits the registration form. Success switches back to
// the login form with a success message and clean fields; the user logs
// in explicitly afterwards. Failure keeps the typed fields.
func (m *Machine) SubmitRegister(ctx context.Context) bool {
	if m.Mode != ModeRegister {
		return false
	}

	if err := m.auth.Register(ctx, m.Username, m.Password, m.ConfirmPassword); err != nil {
		m.SuccessMessage = ""
		m.ErrorMessage = registerMessage(err)
		return false
	}

	m.Mode = ModeLogin
	m.resetFields()
	m.ErrorMessage = ""
	m.SuccessMessage = MsgRegistrationSuccess
	return true
}

func (m *Machine) resetFields() {
	m.Username = ""
	m.Password = ""
	m.ConfirmPassword = ""
}

func loginMessage(err error) string {
	switch {
	case errors.Is(err, localauth.ErrCredentialsRequired):
		return MsgCredentialsRequired
	case errors.Is(err, localauth.ErrInvalidCredentials):
		return MsgInvalidCredentials
	default:
		return MsgLoginInternal
	}
}

func registerMessage(err error) string {
	switch {
	case errors.Is(err, localauth.ErrAllFieldsRequired):
		return MsgAllFieldsRequired
	case errors.Is(err, localauth.ErrPasswordMismatch):
		return MsgPasswordMismatch
	case errors.Is(err, localauth.ErrPasswordTooShort):
		return MsgPasswordTooShort
	case errors.Is(err, localauth.ErrDuplicateUsername):
		return MsgDuplicateUsername
	default:
		return MsgRegistrationInternal
	}
}
