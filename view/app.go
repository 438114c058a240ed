package view

import (
	"context"
	"fmt"

	"github.com/localauth/localauth"
)

// Screen identifies the top-level surface the application is showing.
type Screen int

const (
	// ScreenLoading is shown while the persisted session is being checked.
	ScreenLoading Screen = iota
	// ScreenLogin is the combined login/register page.
	ScreenLogin
	// ScreenDashboard is the authenticated landing page.
	ScreenDashboard
)

// Service is the slice of the engine the application shell needs.
type Service interface {
	Authenticator
	Bootstrap(ctx context.Context) localauth.BootstrapState
	Logout(ctx context.Context)
}

// App is the top-level presentation state: which screen is active and
// who, if anyone, is signed in. App is not safe for concurrent use.
type App struct {
	svc     Service
	machine *Machine

	screen   Screen
	username string
}

// NewApp creates an application shell on the loading screen. Call
// [App.Start] to resolve the persisted session before rendering.
func NewApp(svc Service) *App {
	return &App{
		svc:     svc,
		machine: NewMachine(svc),
		screen:  ScreenLoading,
	}
}

// Start checks for a persisted session exactly once and settles on the
// dashboard or the login page. Calling Start again is a no-op.
func (a *App) Start(ctx context.Context) Screen {
	if a.screen != ScreenLoading {
		return a.screen
	}

	state := a.svc.Bootstrap(ctx)
	if state.Authenticated {
		a.username = state.Username
		a.screen = ScreenDashboard
	} else {
		a.screen = ScreenLogin
	}
	return a.screen
}

// Screen returns the active top-level surface.
func (a *App) Screen() Screen {
	return a.screen
}

// Username returns the signed-in identity, empty when anonymous.
func (a *App) Username() string {
	return a.username
}

// Machine returns the login/register form machine.
func (a *App) Machine() *Machine {
	return a.machine
}

// SubmitLogin drives the form machine and, on success, moves to the
// dashboard.
func (a *App) SubmitLogin(ctx context.Context) bool {
	res, ok := a.machine.SubmitLogin(ctx)
	if !ok {
		return false
	}

	a.username = res.Username
	a.screen = ScreenDashboard
	return true
}

// SubmitRegister drives the form machine. Registration never signs the
// user in; the shell stays on the login page.
func (a *App) SubmitRegister(ctx context.Context) bool {
	return a.machine.SubmitRegister(ctx)
}

// Logout signs out and returns to a clean login page. Always succeeds.
func (a *App) Logout(ctx context.Context) {
	a.svc.Logout(ctx)
	a.username = ""
	a.machine = NewMachine(a.svc)
	a.screen = ScreenLogin
}

// Greeting returns the dashboard welcome line for the signed-in user.
func (a *App) Greeting() string {
	return fmt.Sprintf("Welcome, %s!", a.username)
}
