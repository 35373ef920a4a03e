// Package apierror defines the errors returned by the USOS client packages.
//
// Protocol failures are reported as *ProtocolError, which can be matched
// against ErrUnauthorized or ErrBadRequest with errors.Is:
//
//	user, err := client.GetUser(ctx, nil)
//	if errors.Is(err, apierror.ErrUnauthorized) {
//		// run the authorization handshake again
//	}
package apierror

import (
	"errors"
	"fmt"
	"io"
	"net/http"
)

var (
	// ErrUnauthorized is matched by a ProtocolError for an HTTP 401 response,
	// which USOS sends when the access token has expired or been revoked.
	ErrUnauthorized = errors.New("usos: unauthorized, the access token probably expired")

	// ErrBadRequest is matched by a ProtocolError for an HTTP 400 response.
	ErrBadRequest = errors.New("usos: bad request")

	// ErrNoAccessToken is returned when a signed request is attempted before an
	// access token has been obtained or loaded.
	ErrNoAccessToken = errors.New("usos: access token not set, did you forget to authorize?")

	// ErrNoRequestToken is returned when a verifier is exchanged before an
	// authorization URL was requested.
	ErrNoRequestToken = errors.New("usos: request token not set, get an authorization url first")

	// ErrClosed is returned by any call made after Close.
	ErrClosed = errors.New("usos: use of closed session")
)

// ProtocolError is a non-200 response from the API.
type ProtocolError struct {
	StatusCode int
	Body       string
}

func (e *ProtocolError) Error() string {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return "HTTP 401: Unauthorized. Your access key probably expired."
	case http.StatusBadRequest:
		return fmt.Sprintf("HTTP 400: Bad request: %s", e.Body)
	default:
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
	}
}

// Unwrap exposes ErrUnauthorized or ErrBadRequest for the matching status
// codes, and nil for every other code.
func (e *ProtocolError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusBadRequest:
		return ErrBadRequest
	default:
		return nil
	}
}

// IsUnauthorized reports whether err is, or wraps, a 401 ProtocolError.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// FromResponse returns nil for a 200 response, otherwise a *ProtocolError
// carrying the status code and the response body. The body is consumed in the
// error case.
func FromResponse(resp *http.Response) error {
	if resp.StatusCode == http.StatusOK {
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("HTTP %d: reading body: %w", resp.StatusCode, err)
	}

	return &ProtocolError{
		StatusCode: resp.StatusCode,
		Body:       string(body),
	}
}

// ValidationError is returned when persisted token data cannot be used.
type ValidationError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	msg := "usos: invalid token data"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
