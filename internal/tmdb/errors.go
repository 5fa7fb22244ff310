package tmdb

import (
	"errors"
	"fmt"
)

// TransportError means the request never produced a usable response: it
// could not be sent, the body could not be read, or it did not decode.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ServiceError is a non-2xx response. Code and Message come from the
// service's error body when it had one.
type ServiceError struct {
	StatusCode int
	Code       int
	Message    string
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// IsUnauthorized reports whether err is a 401 from the service.
func IsUnauthorized(err error) bool {
	var se *ServiceError
	return errors.As(err, &se) && se.StatusCode == 401
}
