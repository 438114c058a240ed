// Package view models the presentation state of the authentication flow:
// the login/register form machine and the top-level application shell.
//
// # Architecture boundaries
//
// view consumes the engine through small interfaces and owns every
// user-facing string. It holds form fields, the active mode, and the
// error/success messages; it never talks to persistence directly.
//
// # What this package must NOT do
//
//   - No credential or session storage access.
//   - No interpretation of backend errors beyond mapping known sentinel
//     values to display text.
//   - No I/O. Rendering is the caller's concern.
package view
