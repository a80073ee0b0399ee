package binance

import "fmt"

// AuthError means the client cannot be used at all: credentials are
// missing or empty. It is raised at construction time, before any request.
type AuthError struct {
	Msg string
}

func (e *AuthError) Error() string {
	return e.Msg
}

// APIError is an exchange rejection: an HTTP status >= 400 whose body
// carried the machine-readable {code, msg} shape.
type APIError struct {
	StatusCode int
	Code       int
	Msg        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("[%d] %s", e.Code, e.Msg)
}

// HTTPError is an HTTP status >= 400 without the {code, msg} body shape.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP error: status %d", e.StatusCode)
}

// NetworkError is a timeout, connection, or DNS failure. It is terminal
// for the invocation; the client never retries.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
