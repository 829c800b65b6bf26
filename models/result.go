package models

// Result is the outcome of a client data-layer call. Failures are carried
// as a display-ready message instead of a Go error so the UI never has to
// interpret transport errors.
type Result[T any] struct {
	Data T
	OK   bool
	// Message explains a failure, or warns about a partial success.
	Message string
	// Status is the HTTP status of a server-side failure; 0 when the server
	// was not reached.
	Status int
	// Fields lists rejected input fields of a 400 response.
	Fields []FieldError
	// SessionExpired is set when the call ended the session.
	SessionExpired bool
	// Cached marks data served from the local cache.
	Cached bool
}

// Ok wraps data in a successful Result.
func Ok[T any](data T) Result[T] {
	return Result[T]{Data: data, OK: true}
}

// Fail returns a failed Result carrying message.
func Fail[T any](message string) Result[T] {
	return Result[T]{Message: message}
}

// SessionEvent is broadcast by the client when its session changes.
type SessionEvent int

const (
	SessionStarted SessionEvent = iota + 1
	SessionEnded
	SessionExpired
)

func (e SessionEvent) String() string {
	switch e {
	case SessionStarted:
		return "started"
	case SessionEnded:
		return "ended"
	case SessionExpired:
		return "expired"
	}
	return "unknown"
}
