package apiclient

import (
	"errors"
	"fmt"
)

// ErrUnauthenticated is returned, before any request is issued, when no
// credential is stored.
var ErrUnauthenticated = errors.New("apiclient: no stored credential")

var (
	ErrEmptyImageName = errors.New("apiclient: image name is required")
	ErrEmptyUpload    = errors.New("apiclient: upload has no content")
)

// TransportError reports a failed exchange with the inventory service.
// StatusCode is zero when no response was received.
type TransportError struct {
	Op         string
	Method     string
	URL        string
	StatusCode int
	Body       []byte
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("%s: %s %s: status %d: %v", e.Op, e.Method, e.URL, e.StatusCode, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: %s %s: status %d: %s", e.Op, e.Method, e.URL, e.StatusCode, string(e.Body))
	default:
		return fmt.Sprintf("%s: %s %s: %v", e.Op, e.Method, e.URL, e.Err)
	}
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsUnauthenticated reports whether err stems from a missing credential
func IsUnauthenticated(err error) bool {
	return errors.Is(err, ErrUnauthenticated)
}

// StatusCode returns the HTTP status carried by err, or zero
func StatusCode(err error) int {
	var te *TransportError
	if errors.As(err, &te) {
		return te.StatusCode
	}
	return 0
}
