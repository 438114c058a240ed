package session

// Session defines a public type used by localauth APIs.
//
// Session instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Session struct {
	Username string `json:"username"`
}
