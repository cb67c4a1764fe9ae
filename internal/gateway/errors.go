package gateway

import (
	"errors"
	"fmt"
)

// ErrInvalidCredentials is returned by Login when the gateway rejects the
// username/password pair. Callers present it without distinguishing a
// rejection from a transport failure.
var ErrInvalidCredentials = errors.New("invalid username or password")

// RequestError covers every failed round trip: any non-2xx response or a
// transport failure (Status 0). The client never retries; the error
// propagates to the caller as-is.
type RequestError struct {
	Op      string
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("%s: %s (status %d)", e.Op, e.Message, e.Status)
}

func IsRequestFailed(err error) bool {
	var re *RequestError
	return errors.As(err, &re)
}
