package ndlcore

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors. Use errors.Is() to check.
var (
	// ErrTransport signals a network or connection failure.
	ErrTransport = errors.New("transport error")
	// ErrHTTPStatus signals a non-2xx response from the search API.
	ErrHTTPStatus = errors.New("unexpected http status")
	// ErrShapeMismatch signals a response body that is not a JSON array of objects.
	ErrShapeMismatch = errors.New("unexpected response shape")
	// ErrEmptyQuery signals an empty search query.
	ErrEmptyQuery = errors.New("query must not be empty")
	// ErrInvalidLimit signals a negative result limit.
	ErrInvalidLimit = errors.New("limit must not be negative")
	// ErrCountMismatch signals metadata whose total_count disagrees with the records.
	ErrCountMismatch = errors.New("total_count does not match number of records")
)

// TransportError wraps a failure to complete the HTTP round trip.
// It unwraps to the underlying error unchanged.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: GET %s: %v", ErrTransport.Error(), e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Is matches ErrTransport.
func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// HTTPStatusError carries a non-2xx status returned by the search API.
type HTTPStatusError struct {
	StatusCode int
	Status     string // e.g. "404 Not Found"
	Body       []byte
}

func (e *HTTPStatusError) Error() string {
	status := e.Status
	if status == "" {
		status = fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	if len(e.Body) == 0 {
		return fmt.Sprintf("%s: %s", ErrHTTPStatus.Error(), status)
	}
	return fmt.Sprintf("%s: %s: %s", ErrHTTPStatus.Error(), status, e.Body)
}

func (e *HTTPStatusError) Unwrap() error { return ErrHTTPStatus }

// ShapeMismatchError reports the JSON type actually received and the raw body.
type ShapeMismatchError struct {
	Type string
	Body string
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("expected API to return a list, got %s. Response: %s", e.Type, e.Body)
}

func (e *ShapeMismatchError) Unwrap() error { return ErrShapeMismatch }
