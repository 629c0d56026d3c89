package api

import "errors"

// ErrUnavailable covers transport-level failures: connection refused,
// timeouts, non-2xx responses, undecodable bodies. The caller sees a
// single generic condition regardless of the underlying cause.
var ErrUnavailable = errors.New("service unavailable")

// ServiceError carries the human-readable message of a response that
// arrived intact but reported success=false.
type ServiceError struct {
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}

// UserMessage extracts a message suitable for a notification: the server's
// own wording for service errors, a generic fallback otherwise.
func UserMessage(err error) string {
	var se *ServiceError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	return "operation failed, please try again"
}
